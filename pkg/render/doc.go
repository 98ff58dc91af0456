// Package render draws a laid out figure.
//
// # Overview
//
// Rendering is split in two. [Draw] walks a finished [scene.Figure] and
// issues drawing calls in points with the origin at the top left of the
// page. A [Canvas] turns those calls into an output format:
//
//   - SVG through ajstarks/svgo (in the [sink] subpackage)
//   - PNG through fogleman/gg
//   - PDF through go-pdf/fpdf
//
// The composition tree of a figure can be drawn as a diagram with
// Graphviz (in the [tree] subpackage).
//
//	eng := layout.New()
//	res, err := eng.Layout(ctx, fig)
//	svg, err := sink.RenderSVG(res.Scene, sink.WithConfig(cfg))
//	png, err := sink.RenderPNG(res.Scene, sink.WithConfig(cfg))
//
// Only the figure furniture is drawn: backgrounds, panels, strips, tick
// marks and labels, legends, titles and tags.
//
// [sink]: github.com/matzehuels/ggframe/pkg/render/sink
// [tree]: github.com/matzehuels/ggframe/pkg/render/tree
package render
