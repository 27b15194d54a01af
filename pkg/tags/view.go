package tags

import (
	"reflect"

	"github.com/vango-dev/tagkit/pkg/capture"
)

// View builds tags for one render call. It carries the rendering context and
// must not be used by more than one goroutine at a time.
type View struct {
	r   *Renderer
	ctx capture.Context
}

// Renderer returns the renderer the view was created from.
func (v *View) Renderer() *Renderer { return v.r }

// Context returns the rendering context.
func (v *View) Context() capture.Context { return v.ctx }

// Tag builds the markup for the named tag.
//
// args are classified by type. An Attrs or any other map is the attribute
// map (the last one wins). A capture.Block or a supported func is the block
// (the first one wins; nil funcs are ignored). Any other value is literal
// content (the first one wins). A block takes precedence over literal
// content. Nil content renders as empty.
//
// A class entry is passed through MergeClasses before rendering, so it is
// deduplicated and sorted. The caller's map is not modified.
//
// Tags built around a template block are streamed into the live output and
// Tag returns what the context's Concat returns. Otherwise the markup is
// returned. The only error is one returned by the block.
func (v *View) Tag(name string, args ...any) (string, error) {
	attrs, block, content := splitArgs(args)
	newline := attrs[NewlineKey]
	if _, ok := attrs[ClassKey]; ok {
		attrs = MergeAttrClasses(attrs.Clone())
	}

	if block != nil {
		captured, err := v.Capture(block)
		if err != nil {
			return "", err
		}
		content = captured
	}

	shape := v.r.opts.Tables.ShapeOf(name)
	var html string
	if shape == ShapeSelfClosing {
		if content != "" {
			v.r.opts.Logger.Debug("content ignored for self-closing tag", "tag", name)
		}
		html = v.r.selfClosingTag(name, attrs, newline)
	} else {
		html = v.r.openTag(name, attrs) + v.r.ContentsFor(name, content, newline) + v.r.closingTag(name)
	}
	v.r.opts.Observer.TagRendered(name, shape, len(html))

	if v.IsBlockFromTemplate(block) {
		return v.ctx.Concat(html), nil
	}
	return html, nil
}

// Capture runs b in the rendering context and returns its textual result.
// A buffered context restores its buffer before an error or panic from b
// propagates.
func (v *View) Capture(b capture.Block) (string, error) {
	out, err := v.ctx.Capture(b)
	v.r.opts.Observer.CaptureFinished(v.ctx.Kind(), err)
	if err != nil {
		v.r.opts.Logger.Debug("block capture failed", "context", v.ctx.Kind().String(), "error", err)
	}
	return out, err
}

// Concat streams text into the live output. Without a live output text is
// returned unchanged.
func (v *View) Concat(text string) string {
	return v.ctx.Concat(text)
}

// IsBlockFromTemplate reports whether b was authored in template code.
// A nil block never is.
func (v *View) IsBlockFromTemplate(b capture.Block) bool {
	if b == nil {
		return false
	}
	return v.ctx.IsTemplateBlock(b)
}

// MergeAttrClasses is MergeAttrClasses.
func (v *View) MergeAttrClasses(attrs Attrs, classes ...any) Attrs {
	return MergeAttrClasses(attrs, classes...)
}

// splitArgs classifies the variadic arguments of Tag.
func splitArgs(args []any) (attrs Attrs, block capture.Block, content string) {
	haveContent := false
	for _, arg := range args {
		switch a := arg.(type) {
		case Attrs:
			attrs = a
			continue
		case map[string]any:
			attrs = Attrs(a)
			continue
		}
		if m, ok := dataMap(arg); ok {
			attrs = Attrs(m)
			continue
		}
		if b, ok := capture.AsBlock(arg); ok {
			if block == nil {
				block = b
			}
			continue
		}
		if arg != nil && reflect.TypeOf(arg).Kind() == reflect.Func {
			continue
		}
		if !haveContent {
			content = stringify(arg)
			haveContent = true
		}
	}
	return attrs, block, content
}
