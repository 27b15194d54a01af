package tagkit

import (
	"testing"
)

func TestTag(t *testing.T) {
	got, err := Tag("div", "hi", Attrs{"class": "a", "id": "x"})
	if err != nil {
		t.Fatal(err)
	}
	if want := "<div class=\"a\" id=\"x\">\nhi\n</div>\n"; got != want {
		t.Errorf("Tag() = %q, want %q", got, want)
	}
}

func TestDefault(t *testing.T) {
	if Default() != Default() {
		t.Error("Default() should return a shared renderer")
	}
	if Default().XHTML() || !Default().AddNewlines() {
		t.Error("unexpected default options")
	}

	xhtml := NewRenderer(WithXHTML(true))
	out, _ := xhtml.View(nil).Tag("hr")
	if out != "<hr />\n" {
		t.Errorf("Tag(hr) = %q", out)
	}
}

func TestNewViewBuffered(t *testing.T) {
	buf := NewBuffer()
	v := NewView(NewBuffered(buf))

	_, err := v.Tag("p", TemplateBlock(func() (string, error) {
		v.Concat("streamed")
		return "", nil
	}))
	if err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "<p>streamed</p>\n" {
		t.Errorf("buffer = %q", got)
	}
}

func TestClassHelpers(t *testing.T) {
	if got := MergeClasses("alert", []string{"alert", "alert-info"}); got != "alert alert-info" {
		t.Errorf("MergeClasses() = %q", got)
	}
	attrs := MergeAttrClasses(Attrs{}, Token("btn"))
	if got := NormalizeAttributes(attrs); got != ` class="btn"` {
		t.Errorf("NormalizeAttributes() = %q", got)
	}
}
