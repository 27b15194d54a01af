// Package tags builds HTML and XHTML markup from a tag name, optional
// content or a nested block, and an attribute map.
//
// A Renderer holds the immutable configuration: output format, the
// newline policy and the classification tables. A View binds a Renderer to
// the rendering context of one render call and is the entry point for
// building tags:
//
//	r := tags.NewRenderer(tags.WithXHTML(true))
//	v := r.View(capture.NoEngine{})
//	html, _ := v.Tag("input", tags.Attrs{"type": "checkbox", "checked": true})
//	// <input checked="checked" type="checkbox" />
//
// # Tag Shapes
//
// Every tag name resolves to one of four shapes:
//
//   - ShapeSelfClosing: void elements such as br and img. Content is ignored.
//   - ShapeMultiLine: block elements. Content is wrapped in newlines.
//   - ShapeSingleLine: inline elements. Content is wrapped only when the
//     newline attribute is true.
//   - ShapeDefault: anything else. Content is emitted verbatim.
//
// # Attributes
//
// Attribute maps are normalized before rendering. The newline key is a
// control key and is never rendered, a data map expands to data-* attributes,
// boolean attributes render as name="name" when true and are dropped
// otherwise, and attributes are always emitted in ascending key order.
//
// Attribute values and content are not escaped.
package tags
