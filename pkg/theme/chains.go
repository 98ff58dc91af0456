package theme

// registry maps a themeable name to its fallback chain, most specific
// first. The chain does not include the name itself.
var registry = buildRegistry()

func buildRegistry() map[string][]string {
	r := map[string][]string{
		// text
		"title":            {"text"},
		"axis_title":       {"title", "text"},
		"axis_title_x":     {"axis_title", "title", "text"},
		"axis_title_y":     {"axis_title", "title", "text"},
		"axis_text":        {"text"},
		"axis_text_x":      {"axis_text", "text"},
		"axis_text_y":      {"axis_text", "text"},
		"legend_title":     {"title", "text"},
		"legend_text":      {"text"},
		"plot_title":       {"title", "text"},
		"plot_subtitle":    {"title", "text"},
		"plot_caption":     {"title", "text"},
		"plot_tag":         {"title", "text"},
		"strip_text":       {"text"},
		"strip_text_x":     {"strip_text", "text"},
		"strip_text_y":     {"strip_text", "text"},
		"axis_ticks":       {"line"},
		"axis_ticks_x":     {"axis_ticks", "line"},
		"axis_ticks_y":     {"axis_ticks", "line"},
		"axis_line":        {"line"},
		"axis_line_x":      {"axis_line", "line"},
		"axis_line_y":      {"axis_line", "line"},
		"legend_ticks":     {"line"},
		"panel_border":     {"rect"},
		"legend_key":       {"rect"},
		"strip_background": {"rect"},

		// rectangles
		"panel_background":   {"rect"},
		"plot_background":    {"rect"},
		"legend_background":  {"rect"},
		"strip_background_x": {"strip_background", "rect"},
		"strip_background_y": {"strip_background", "rect"},

		// scalars
		"plot_margin_left":     {"plot_margin"},
		"plot_margin_right":    {"plot_margin"},
		"plot_margin_top":      {"plot_margin"},
		"plot_margin_bottom":   {"plot_margin"},
		"panel_spacing_x":      {"panel_spacing"},
		"panel_spacing_y":      {"panel_spacing"},
		"strip_align_x":        {"strip_align"},
		"strip_align_y":        {"strip_align"},
		"legend_key_spacing_x": {"legend_key_spacing"},
		"legend_key_spacing_y": {"legend_key_spacing"},
	}

	// Tick marks are the one place where two axes of specificity meet:
	// major/minor and x/y. The x/y axis wins.
	for _, kind := range []string{"major", "minor"} {
		for _, axis := range []string{"x", "y"} {
			r["axis_ticks_"+kind+"_"+axis] = []string{
				"axis_ticks_" + axis, "axis_ticks_" + kind, "axis_ticks", "line",
			}
			r["axis_ticks_length_"+kind+"_"+axis] = []string{
				"axis_ticks_length_" + axis, "axis_ticks_length_" + kind, "axis_ticks_length",
			}
		}
		r["axis_ticks_"+kind] = []string{"axis_ticks", "line"}
		r["axis_ticks_length_"+kind] = []string{"axis_ticks_length"}
	}
	r["axis_ticks_length_x"] = []string{"axis_ticks_length"}
	r["axis_ticks_length_y"] = []string{"axis_ticks_length"}

	for _, side := range []string{"left", "right", "top", "bottom", "inside"} {
		r["legend_justification_"+side] = []string{"legend_justification"}
	}
	return r
}

// Chain returns the lookup order for name: the name itself followed by
// its fallbacks. Unknown names have no fallbacks.
func Chain(name string) []string {
	return append([]string{name}, registry[name]...)
}

// Known reports whether name is a registered themeable or the root of a
// chain.
func Known(name string) bool {
	if _, ok := registry[name]; ok {
		return true
	}
	return roots[name]
}

// roots are names that only appear as fallbacks or have no fallback.
var roots = func() map[string]bool {
	m := map[string]bool{
		"aspect_ratio": true, "dpi": true, "figure_size": true,
		"legend_box_spacing": true, "legend_key_size": true,
		"plot_tag_location": true, "plot_tag_position": true,
		"plot_title_position": true, "plot_caption_position": true,
		"legend_position": true, "legend_position_inside": true,
	}
	for _, chain := range registry {
		for _, name := range chain {
			if _, ok := registry[name]; !ok {
				m[name] = true
			}
		}
	}
	return m
}()
