package tags

import (
	"sort"
	"strings"

	"github.com/vango-dev/tagkit/internal/errors"
)

// Shape is the rendering category of a tag.
type Shape int

const (
	// ShapeDefault renders content inline with no inserted newlines.
	ShapeDefault Shape = iota
	// ShapeSelfClosing renders a void tag and never emits content.
	ShapeSelfClosing
	// ShapeMultiLine wraps content in newlines.
	ShapeMultiLine
	// ShapeSingleLine wraps content in newlines only on explicit request.
	ShapeSingleLine
)

// String returns the lower-case name of the shape.
func (s Shape) String() string {
	switch s {
	case ShapeSelfClosing:
		return "self_closing"
	case ShapeMultiLine:
		return "multi_line"
	case ShapeSingleLine:
		return "single_line"
	default:
		return "default"
	}
}

// TableSpec lists the members of each classification table.
type TableSpec struct {
	MultiLine   []string `json:"multi_line" toml:"multi_line" yaml:"multi_line" koanf:"multi_line"`
	SelfClosing []string `json:"self_closing" toml:"self_closing" yaml:"self_closing" koanf:"self_closing"`
	SingleLine  []string `json:"single_line" toml:"single_line" yaml:"single_line" koanf:"single_line"`
	Boolean     []string `json:"boolean" toml:"boolean" yaml:"boolean" koanf:"boolean"`
}

// Merge returns a TableSpec holding the entries of s followed by those of
// other.
func (s TableSpec) Merge(other TableSpec) TableSpec {
	return TableSpec{
		MultiLine:   appendCopy(s.MultiLine, other.MultiLine),
		SelfClosing: appendCopy(s.SelfClosing, other.SelfClosing),
		SingleLine:  appendCopy(s.SingleLine, other.SingleLine),
		Boolean:     appendCopy(s.Boolean, other.Boolean),
	}
}

func appendCopy(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

// defaultSpec holds the built-in tables.
var defaultSpec = TableSpec{
	MultiLine: []string{
		"a", "address", "applet", "bdo", "big", "blockquote", "body", "button",
		"caption", "center", "colgroup", "dd", "dir", "div", "dl", "dt",
		"fieldset", "form", "frameset", "head", "html", "iframe", "map",
		"noframes", "noscript", "object", "ol", "optgroup", "pre", "script",
		"section", "select", "small", "style", "table", "tbody", "td", "tfoot",
		"th", "thead", "title", "tr", "tt", "ul",
	},
	SelfClosing: []string{
		"area", "base", "br", "col", "frame", "hr", "img", "input", "link",
		"meta", "param",
	},
	SingleLine: []string{
		"abbr", "acronym", "b", "cite", "code", "del", "dfn", "em", "h1", "h2",
		"h3", "h4", "h5", "h6", "i", "kbd", "label", "legend", "li", "option",
		"p", "q", "samp", "span", "strong", "sub", "sup", "var",
	},
	Boolean: []string{
		"autofocus", "checked", "disabled", "multiple", "readonly", "required",
		"selected",
	},
}

// DefaultSpec returns a copy of the built-in table lists.
func DefaultSpec() TableSpec {
	return TableSpec{}.Merge(defaultSpec)
}

// Tables is an immutable set of classification tables.
type Tables struct {
	shapes  map[string]Shape
	boolean map[string]bool
}

var defaultTables = mustTables(defaultSpec)

// DefaultTables returns the built-in tables.
func DefaultTables() *Tables {
	return defaultTables
}

func mustTables(spec TableSpec) *Tables {
	t, err := NewTables(spec)
	if err != nil {
		panic(err)
	}
	return t
}

// NewTables builds tables from spec. A tag listed in more than one shape
// table is rejected; repeating a tag within one table is allowed.
func NewTables(spec TableSpec) (*Tables, error) {
	t := &Tables{
		shapes:  make(map[string]Shape),
		boolean: make(map[string]bool, len(spec.Boolean)),
	}

	add := func(names []string, shape Shape) error {
		for _, name := range names {
			if prev, ok := t.shapes[name]; ok && prev != shape {
				return errors.New("E104").
					WithDetailf("tag %q is listed as both %s and %s", name, prev, shape)
			}
			t.shapes[name] = shape
		}
		return nil
	}

	if err := add(spec.SelfClosing, ShapeSelfClosing); err != nil {
		return nil, err
	}
	if err := add(spec.MultiLine, ShapeMultiLine); err != nil {
		return nil, err
	}
	if err := add(spec.SingleLine, ShapeSingleLine); err != nil {
		return nil, err
	}
	for _, name := range spec.Boolean {
		t.boolean[name] = true
	}
	return t, nil
}

// ShapeOf returns the shape of the named tag. Names are matched literally;
// unknown names resolve to ShapeDefault.
func (t *Tables) ShapeOf(name string) Shape {
	return t.shapes[name]
}

// IsBooleanAttr reports whether name is a boolean attribute.
func (t *Tables) IsBooleanAttr(name string) bool {
	return t.boolean[name]
}

// IsSelfClosing reports whether name is a self-closing tag.
func (t *Tables) IsSelfClosing(name string) bool {
	return t.shapes[name] == ShapeSelfClosing
}

// IsMultiLine reports whether name is a multi-line tag.
func (t *Tables) IsMultiLine(name string) bool {
	return t.shapes[name] == ShapeMultiLine
}

// IsSingleLine reports whether name is a single-line tag.
func (t *Tables) IsSingleLine(name string) bool {
	return t.shapes[name] == ShapeSingleLine
}

// Spec returns the members of each table in ascending order.
func (t *Tables) Spec() TableSpec {
	var spec TableSpec
	for name, shape := range t.shapes {
		switch shape {
		case ShapeSelfClosing:
			spec.SelfClosing = append(spec.SelfClosing, name)
		case ShapeMultiLine:
			spec.MultiLine = append(spec.MultiLine, name)
		case ShapeSingleLine:
			spec.SingleLine = append(spec.SingleLine, name)
		}
	}
	for name := range t.boolean {
		spec.Boolean = append(spec.Boolean, name)
	}
	sort.Strings(spec.MultiLine)
	sort.Strings(spec.SelfClosing)
	sort.Strings(spec.SingleLine)
	sort.Strings(spec.Boolean)
	return spec
}

// String lists the tables, one per line.
func (t *Tables) String() string {
	spec := t.Spec()
	var b strings.Builder
	b.WriteString("self_closing: " + strings.Join(spec.SelfClosing, " ") + "\n")
	b.WriteString("multi_line: " + strings.Join(spec.MultiLine, " ") + "\n")
	b.WriteString("single_line: " + strings.Join(spec.SingleLine, " ") + "\n")
	b.WriteString("boolean: " + strings.Join(spec.Boolean, " ") + "\n")
	return b.String()
}
