package tags

import (
	"log/slog"
	"strings"

	"github.com/vango-dev/tagkit/pkg/capture"
)

// Options configures a Renderer.
type Options struct {
	// XHTML closes self-closing tags with " />" instead of ">".
	XHTML bool

	// AddNewlines appends a newline after every tag unless overridden by
	// the newline attribute. Default: true.
	AddNewlines bool

	// Tables classifies tag names and boolean attributes.
	// Default: DefaultTables().
	Tables *Tables

	// Logger receives debug events. Default: slog.Default().
	Logger *slog.Logger

	// Observer receives rendering events. Default: none.
	Observer Observer
}

// Option configures a Renderer.
type Option func(*Options)

// WithXHTML sets the output format.
func WithXHTML(xhtml bool) Option {
	return func(o *Options) {
		o.XHTML = xhtml
	}
}

// WithNewlines sets the default newline policy.
func WithNewlines(add bool) Option {
	return func(o *Options) {
		o.AddNewlines = add
	}
}

// WithTables sets the classification tables.
func WithTables(t *Tables) Option {
	return func(o *Options) {
		o.Tables = t
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithObserver sets the observer.
func WithObserver(obs Observer) Option {
	return func(o *Options) {
		o.Observer = obs
	}
}

func defaultOptions() Options {
	return Options{
		XHTML:       false,
		AddNewlines: true,
		Tables:      DefaultTables(),
		Logger:      slog.Default(),
		Observer:    nopObserver{},
	}
}

// Renderer holds the configuration for building tags. It is immutable and
// safe for concurrent use; per-call state lives in a View.
type Renderer struct {
	opts Options
}

// NewRenderer creates a Renderer with the given options applied over the
// defaults.
func NewRenderer(opts ...Option) *Renderer {
	return newRenderer(defaultOptions(), opts)
}

func newRenderer(base Options, opts []Option) *Renderer {
	for _, opt := range opts {
		opt(&base)
	}
	if base.Tables == nil {
		base.Tables = DefaultTables()
	}
	if base.Logger == nil {
		base.Logger = slog.Default()
	}
	if base.Observer == nil {
		base.Observer = nopObserver{}
	}
	return &Renderer{opts: base}
}

// With returns a new Renderer with opts applied over the options of r.
func (r *Renderer) With(opts ...Option) *Renderer {
	return newRenderer(r.opts, opts)
}

// XHTML reports whether the output format is XHTML.
func (r *Renderer) XHTML() bool { return r.opts.XHTML }

// AddNewlines reports whether a newline is appended after tags by default.
func (r *Renderer) AddNewlines() bool { return r.opts.AddNewlines }

// Tables returns the classification tables.
func (r *Renderer) Tables() *Tables { return r.opts.Tables }

// Logger returns the logger.
func (r *Renderer) Logger() *slog.Logger { return r.opts.Logger }

// View binds r to the rendering context of one render call. A nil ctx
// means no template engine.
func (r *Renderer) View(ctx capture.Context) *View {
	if ctx == nil {
		ctx = capture.NoEngine{}
	}
	return &View{r: r, ctx: ctx}
}

// Normalize renders attrs against the tables of r.
func (r *Renderer) Normalize(attrs Attrs) string {
	return r.opts.Tables.Normalize(attrs)
}

// ContentsFor wraps content for the named tag. Multi-line tags get a
// newline on both sides, with any resulting blank line collapsed.
// Single-line tags are wrapped only when newline is exactly true. All other
// tags get content verbatim.
func (r *Renderer) ContentsFor(name, content string, newline any) string {
	switch r.opts.Tables.ShapeOf(name) {
	case ShapeMultiLine:
		nl := r.newline(newline)
		return strings.ReplaceAll(nl+content+nl, "\n\n", "\n")
	case ShapeSingleLine:
		if newline == true {
			return "\n" + content + "\n"
		}
	}
	return content
}

// newline resolves the newline policy. A nil override uses the default;
// any override other than true disables the newline.
func (r *Renderer) newline(override any) string {
	add := override
	if add == nil {
		add = r.opts.AddNewlines
	}
	if add == true {
		return "\n"
	}
	return ""
}

func (r *Renderer) selfClosingSuffix() string {
	if r.opts.XHTML {
		return " />"
	}
	return ">"
}

// openTag returns <name attrs>.
func (r *Renderer) openTag(name string, attrs Attrs) string {
	return "<" + name + r.Normalize(attrs) + ">"
}

// closingTag returns </name> followed by the default newline. The newline
// attribute does not apply here.
func (r *Renderer) closingTag(name string) string {
	return "</" + name + ">" + r.newline(nil)
}

// selfClosingTag returns a void tag followed by the newline override or the
// default newline.
func (r *Renderer) selfClosingTag(name string, attrs Attrs, newline any) string {
	return "<" + name + r.Normalize(attrs) + r.selfClosingSuffix() + r.newline(newline)
}
