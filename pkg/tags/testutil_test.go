package tags

import (
	"strings"
	"testing"

	"github.com/andybalholm/cascadia"
	"github.com/beevik/etree"
	"golang.org/x/net/html"

	"github.com/vango-dev/tagkit/pkg/capture"
)

// assertHaveTag fails unless markup contains an element matching selector.
// When text is given, one of the matches must have that trimmed text.
func assertHaveTag(t *testing.T, markup, selector string, text ...string) {
	t.Helper()

	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("parse %q: %v", markup, err)
	}
	sel, err := cascadia.Compile(selector)
	if err != nil {
		t.Fatalf("compile selector %q: %v", selector, err)
	}

	nodes := sel.MatchAll(doc)
	if len(nodes) == 0 {
		t.Fatalf("expected %q to match in:\n%s", selector, markup)
	}
	if len(text) == 0 {
		return
	}
	for _, n := range nodes {
		if strings.TrimSpace(nodeText(n)) == text[0] {
			return
		}
	}
	t.Fatalf("expected %q with text %q in:\n%s", selector, text[0], markup)
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(nodeText(c))
	}
	return b.String()
}

// parseXHTML parses markup as XML and returns its root element.
func parseXHTML(t *testing.T, markup string) *etree.Element {
	t.Helper()

	doc := etree.NewDocument()
	if err := doc.ReadFromString(markup); err != nil {
		t.Fatalf("not well-formed XML %q: %v", markup, err)
	}
	root := doc.Root()
	if root == nil {
		t.Fatalf("no root element in %q", markup)
	}
	return root
}

// recordingEngine is an IndentationEngine that records streamed output.
type recordingEngine struct {
	out      strings.Builder
	captures int
}

func (e *recordingEngine) Capture(b capture.Block) (string, error) {
	e.captures++
	return b.Run()
}

func (e *recordingEngine) Concat(text string) {
	e.out.WriteString(text)
}

func (e *recordingEngine) IsTemplateBlock(b capture.Block) bool {
	_, ok := b.(capture.TemplateBlock)
	return ok
}

// recordingObserver counts rendering events.
type recordingObserver struct {
	tags     []string
	shapes   []Shape
	sizes    []int
	captures []capture.Kind
	errs     []error
}

func (o *recordingObserver) TagRendered(name string, shape Shape, size int) {
	o.tags = append(o.tags, name)
	o.shapes = append(o.shapes, shape)
	o.sizes = append(o.sizes, size)
}

func (o *recordingObserver) CaptureFinished(kind capture.Kind, err error) {
	o.captures = append(o.captures, kind)
	o.errs = append(o.errs, err)
}
