// Package pkg provides the libraries behind ggframe.
//
// # Overview
//
// ggframe lays out the frame of statistical graphics: the panel grid of
// every plot and the titles, axes, legends, strips and tags around it. A
// figure combines several plots into columns, rows and grids, and the
// layout aligns their panels across the composition.
//
// # Architecture
//
// The typical data flow:
//
//	Figure file (TOML, YAML, JSON)
//	         ↓
//	    [io] package (decode into a figure)
//	         ↓
//	    [scene] package (measure and place the items around each plot)
//	         ↓
//	    [layout] package (side spaces, tree alignment, panel solver)
//	         ↓
//	    [render] package (SVG, PNG, PDF, composition tree)
//
// # Quick Start
//
//	fig, _, err := io.ImportFile("mpg.toml")
//	if err != nil {
//	    return err
//	}
//	res, err := layout.New().Layout(ctx, fig)
//	if err != nil {
//	    return err
//	}
//	svg, err := sink.RenderSVG(res.Scene)
//
// Or run the whole pipeline with caching:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    Path:    "mpg.toml",
//	    Formats: []string{"svg", "png"},
//	})
//
// # Main Packages
//
// ## Figure model
//
// [figure] - Plots, facets, legends and the composition expression
// language ("a | b", "a / b", "a + b").
//
// [theme] - Theme elements with inheritance chains and the default theme.
//
// [io] - Figure files in TOML, YAML and JSON.
//
// ## Layout
//
// [scene] - Measured items around each plot, ready for layout.
//
// [layout] - The layout engine and its report. Subpackages:
//
//   - [layout/space]: side spaces accumulated per plot and composition
//   - [layout/items]: sizes of the items around the panels
//   - [layout/tree]: composition tree alignment of side spaces
//   - [layout/solver]: panel grid solver for a single plot
//   - [layout/translate]: placement of items in backend coordinates
//
// [gridspec] - Grid specification parameters and cell geometry.
//
// [backend] - Output resolution, pixel snapping and text measurement.
//
// [geom] - Boxes in figure fractions.
//
// [fonts] - Embedded fonts.
//
// ## Output
//
// [render] - Drawing a laid out scene on a canvas; [render/sink] provides
// SVG, PNG and PDF canvases, [render/tree] draws the composition tree.
//
// ## Infrastructure
//
// [pipeline] - Load, layout and render with caching, shared by the CLI and
// the HTTP API.
//
// [cache] - File, Redis and null caches for layouts and renders.
//
// [store] - Memory and MongoDB stores for layout reports served by the API.
//
// [observability] - Hooks around pipeline stages, cache access and HTTP
// requests.
//
// [errors] - Coded errors and input validation.
//
// [buildinfo] - Version information set at build time.
package pkg
