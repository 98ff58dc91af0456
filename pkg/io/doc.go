// Package io reads figure files.
//
// # Overview
//
// A figure file declares the plots of a figure and, optionally, how they
// are composed. The same document can be written as TOML, YAML or JSON;
// the format is picked from the file extension.
//
//	name = "mpg"
//	theme = { plot_margin = 0.03 }
//
//	[[plots]]
//	name = "p1"
//	title = "Engine size"
//	x_label = "displ"
//	x_breaks = [{ pos = 0.1, label = "2" }, { pos = 0.9, label = "7" }]
//
//	[[plots]]
//	name = "p2"
//	legend = { title = "class", keys = ["compact", "suv"] }
//	facet = { kind = "wrap", panels = ["4", "f", "r"] }
//
//	[composition]
//	expr = "p1 | p2"
//	layout = { widths = [1.0, 2.0] }
//	annotation = { title = "Fuel economy" }
//
// # Plots
//
// Every plot needs a name that is a valid identifier. Optional fields are
// title, subtitle, caption, tag, x_label, y_label, x_breaks, y_breaks,
// legend, facet and theme. A plot with spacer = true is blank and may set
// a background fill.
//
// # Composition
//
// The expression combines plot names with "|" (beside), "/" (stack), "+"
// (wrap) and "-" (beside without flattening), with parentheses for
// grouping and the name "spacer" for an empty slot. Without a composition
// a single plot is the whole figure and several plots are wrapped in
// declaration order.
//
// # Themes
//
// The top level theme applies to every plot and is overridden key by key
// by a plot's own theme. See [theme.FromMap] for the accepted values.
package io
