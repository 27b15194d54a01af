// Package tagkit builds HTML and XHTML markup that cooperates with the
// template engine rendering the page.
//
// This is the recommended import for most applications:
//
//	import "github.com/vango-dev/tagkit"
//
// Usage:
//
//	html, _ := tagkit.Tag("div", "hi", tagkit.Attrs{"class": "a", "id": "x"})
//	classes := tagkit.MergeClasses("alert", []string{"alert", "alert-info"})
//
// Views bound to a template engine's output buffer stream nested tags into
// that buffer:
//
//	buf := tagkit.NewBuffer()
//	v := tagkit.NewView(tagkit.NewBuffered(buf))
//	v.Tag("ul", tagkit.TemplateBlock(func() (string, error) { ... }))
package tagkit

import (
	"github.com/vango-dev/tagkit/pkg/capture"
	"github.com/vango-dev/tagkit/pkg/tags"
)

// =============================================================================
// Tag Building
// =============================================================================

// Renderer holds the configuration for building tags.
type Renderer = tags.Renderer

// View builds tags for one render call.
type View = tags.View

// Option configures a Renderer.
type Option = tags.Option

// Attrs maps attribute names to values.
type Attrs = tags.Attrs

// Token is a class or attribute token that is never split on whitespace.
type Token = tags.Token

// Shape is the rendering category of a tag.
type Shape = tags.Shape

// Tables classifies tag names and boolean attributes.
type Tables = tags.Tables

// Renderer options.
var (
	WithXHTML    = tags.WithXHTML
	WithNewlines = tags.WithNewlines
	WithTables   = tags.WithTables
	WithLogger   = tags.WithLogger
	WithObserver = tags.WithObserver
)

// NewRenderer creates a Renderer.
func NewRenderer(opts ...Option) *Renderer {
	return tags.NewRenderer(opts...)
}

var defaultRenderer = tags.NewRenderer()

// Default returns the renderer with the default options: HTML output and a
// newline after every tag.
func Default() *Renderer {
	return defaultRenderer
}

// NewView binds the default renderer to ctx.
func NewView(ctx Context) *View {
	return defaultRenderer.View(ctx)
}

// Tag builds a tag with the default renderer and no template engine.
func Tag(name string, args ...any) (string, error) {
	return defaultRenderer.View(capture.NoEngine{}).Tag(name, args...)
}

// MergeClasses returns the sorted, deduplicated union of class tokens.
func MergeClasses(classes ...any) string {
	return tags.MergeClasses(classes...)
}

// MergeAttrClasses merges classes into the class entry of attrs.
func MergeAttrClasses(attrs Attrs, classes ...any) Attrs {
	return tags.MergeAttrClasses(attrs, classes...)
}

// NormalizeAttributes renders attrs as an attribute string.
func NormalizeAttributes(attrs Attrs) string {
	return tags.NormalizeAttributes(attrs)
}

// =============================================================================
// Capture
// =============================================================================

// Context is the rendering context of one render call.
type Context = capture.Context

// Block produces tag content when run.
type Block = capture.Block

// BlockFunc adapts a plain closure to a Block.
type BlockFunc = capture.BlockFunc

// TemplateBlock is a Block authored in template code.
type TemplateBlock = capture.TemplateBlock

// Buffer is the output buffer of one render call.
type Buffer = capture.Buffer

// NewBuffer returns an empty Buffer.
func NewBuffer() *Buffer {
	return capture.NewBuffer()
}

// NewBuffered returns the context of an engine writing to buf.
func NewBuffered(buf *Buffer) *capture.Buffered {
	return capture.NewBuffered(buf)
}
