// Package sink writes a laid out figure in an output format.
//
// # Overview
//
// A "sink" turns a finished [scene.Figure] into bytes:
//
//   - SVG: vector output through ajstarks/svgo, optionally with the font
//     embedded
//   - PNG: raster output through fogleman/gg at the configured DPI
//   - PDF: vector output through go-pdf/fpdf with the font embedded
//
// All sinks draw through [render.Draw], so the outputs only differ in
// how text and shapes are encoded.
//
//	svg, err := sink.RenderSVG(res.Scene, sink.WithConfig(cfg), sink.WithEmbeddedFont())
//	png, err := sink.RenderPNG(res.Scene, sink.WithConfig(cfg))
//	pdf, err := sink.RenderPDF(res.Scene, sink.WithConfig(cfg))
//
// # Options
//
//   - [WithConfig]: backend config (DPI, colors, font family)
//   - [WithEmbeddedFont]: embed the font in SVG output
//   - [WithScale]: PNG resolution multiplier
//
// [scene.Figure]: github.com/matzehuels/ggframe/pkg/scene.Figure
// [render.Draw]: github.com/matzehuels/ggframe/pkg/render.Draw
package sink
