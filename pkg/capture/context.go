package capture

import "strings"

// Kind identifies a rendering context variant.
type Kind int

const (
	// KindNone means no template engine is involved.
	KindNone Kind = iota
	// KindBuffered means an eval-per-line engine owns a live output buffer.
	KindBuffered
	// KindIndented means an indentation-based engine is evaluating the view.
	KindIndented
)

// String returns the metric/log label of the kind.
func (k Kind) String() string {
	switch k {
	case KindBuffered:
		return "buffered"
	case KindIndented:
		return "indented"
	default:
		return "none"
	}
}

// Context is the rendering context of one render call.
type Context interface {
	// Kind identifies the variant.
	Kind() Kind

	// Capture runs b and returns its textual result.
	Capture(b Block) (string, error)

	// Concat streams text into the live output. Contexts without a live
	// output return text unchanged so the caller can use it as a value.
	Concat(text string) string

	// IsTemplateBlock reports whether b was authored in template code, in
	// which case markup built around it is streamed instead of returned.
	IsTemplateBlock(b Block) bool
}

// IndentationEngine is the host capability for indentation-based engines.
type IndentationEngine interface {
	Capture(b Block) (string, error)
	Concat(text string)
	IsTemplateBlock(b Block) bool
}

// Prober is optionally implemented by an IndentationEngine to report whether
// it is evaluating the current render call.
type Prober interface {
	Active() bool
}

// Select picks the rendering context for a render call: an active
// indentation engine first, then a live buffer, otherwise no engine.
func Select(engine IndentationEngine, buf *Buffer) Context {
	if engine != nil {
		if p, ok := engine.(Prober); !ok || p.Active() {
			return NewIndented(engine)
		}
	}
	if buf != nil {
		return NewBuffered(buf)
	}
	return NoEngine{}
}

// NoEngine is the context used when no template engine renders the view.
type NoEngine struct{}

// Kind returns KindNone.
func (NoEngine) Kind() Kind { return KindNone }

// Capture returns the block's own result.
func (NoEngine) Capture(b Block) (string, error) {
	if b == nil {
		return "", nil
	}
	return b.Run()
}

// Concat returns text unchanged.
func (NoEngine) Concat(text string) string { return text }

// IsTemplateBlock reports whether b carries the template marker.
func (NoEngine) IsTemplateBlock(b Block) bool {
	return b != nil && isTemplate(b)
}

// Buffered is the context of an eval-per-line engine that accumulates
// output in a Buffer.
type Buffered struct {
	out *Buffer
}

// NewBuffered returns a Buffered context writing to out. A nil out yields a
// context without a live buffer, which behaves like NoEngine.
func NewBuffered(out *Buffer) *Buffered {
	return &Buffered{out: out}
}

// Kind returns KindBuffered.
func (c *Buffered) Kind() Kind { return KindBuffered }

// Buffer returns the currently active buffer. Inside a capture this is the
// capture's fresh buffer, not the outermost one.
func (c *Buffered) Buffer() *Buffer { return c.out }

// Live reports whether an output buffer is installed.
func (c *Buffered) Live() bool { return c.out != nil }

// WithOutputBuffer installs a fresh buffer, runs fn against it and returns
// what fn wrote. The previous buffer is restored on every exit path; a panic
// inside fn propagates after the restore.
func (c *Buffered) WithOutputBuffer(fn func() error) (string, error) {
	saved := c.out
	c.out = NewBuffer()
	defer func() { c.out = saved }()

	if err := fn(); err != nil {
		return "", err
	}
	return c.out.String(), nil
}

// Capture runs b against a fresh buffer. When the block wrote nothing but
// whitespace, its return value is used instead.
func (c *Buffered) Capture(b Block) (string, error) {
	if b == nil {
		return "", nil
	}
	if !c.Live() {
		return b.Run()
	}

	var ret string
	captured, err := c.WithOutputBuffer(func() error {
		var err error
		ret, err = b.Run()
		return err
	})
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(captured) == "" {
		return ret, nil
	}
	return captured, nil
}

// Concat appends text to the active buffer.
func (c *Buffered) Concat(text string) string {
	if c.out == nil {
		return text
	}
	c.out.WriteString(text)
	return ""
}

// IsTemplateBlock reports true for any block while a buffer is live.
func (c *Buffered) IsTemplateBlock(b Block) bool {
	if b == nil {
		return false
	}
	return c.Live() || isTemplate(b)
}

// Indented delegates to an indentation-based engine.
type Indented struct {
	engine IndentationEngine
}

// NewIndented wraps engine.
func NewIndented(engine IndentationEngine) *Indented {
	return &Indented{engine: engine}
}

// Kind returns KindIndented.
func (c *Indented) Kind() Kind { return KindIndented }

// Engine returns the wrapped engine.
func (c *Indented) Engine() IndentationEngine { return c.engine }

// Capture uses the engine's capture for template blocks and runs any other
// block directly.
func (c *Indented) Capture(b Block) (string, error) {
	if b == nil {
		return "", nil
	}
	if c.engine.IsTemplateBlock(b) {
		return c.engine.Capture(b)
	}
	return b.Run()
}

// Concat forwards text to the engine.
func (c *Indented) Concat(text string) string {
	c.engine.Concat(text)
	return ""
}

// IsTemplateBlock asks the engine.
func (c *Indented) IsTemplateBlock(b Block) bool {
	return b != nil && c.engine.IsTemplateBlock(b)
}
