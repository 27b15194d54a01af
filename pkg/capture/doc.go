// Package capture implements the output-buffer discipline used by the tag
// builder.
//
// A render call runs in exactly one rendering Context, chosen once by Select
// and passed explicitly:
//
//   - Indented: an indentation-based template engine is evaluating the view.
//     Capture and Concat are delegated to the engine's own primitives.
//   - Buffered: a live output Buffer exists. Capturing a block swaps in a
//     fresh Buffer, runs the block, reads the fresh Buffer and restores the
//     previous one on every exit path, including error returns and panics.
//   - NoEngine: no template is involved; a block's return value is its
//     content and Concat hands text straight back to the caller.
//
// # Blocks
//
// A Block produces content. BlockFunc adapts a plain closure; TemplateBlock
// marks a closure authored inside engine-compiled template code, whose tag
// output should be streamed into the buffer rather than returned.
//
//	buf := capture.NewBuffer()
//	ctx := capture.Select(nil, buf)
//
//	html, err := ctx.Capture(capture.TemplateBlock(func() (string, error) {
//	    ctx.Concat("<p>streamed</p>")
//	    return "", nil
//	}))
//
// Captures nest strictly: the buffer restored after a capture is always the
// one that was active immediately before it.
package capture
