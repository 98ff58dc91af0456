package theme

// BaseMargin is the default spacing unit in figure-width fractions.
const BaseMargin = 0.025

// Gray returns the default theme: gray panels and white grid, 11pt text.
func Gray() *Theme {
	const base = 11.0
	m := BaseMargin
	t := New()

	t.Set("figure_size", [2]float64{6.4, 4.8}).
		Set("dpi", 100.0).
		Set("plot_margin", m).
		Set("panel_spacing", m).
		Set("legend_box_spacing", m).
		Set("legend_position", "right").
		Set("legend_justification", "center").
		Set("legend_key_size", base*0.8*1.8).
		Set("legend_key_spacing", 2.0).
		Set("strip_align", 0.0).
		Set("axis_ticks_length", base/4).
		Set("axis_ticks_length_minor", base/8).
		Set("plot_title_position", "panel").
		Set("plot_caption_position", "panel").
		Set("plot_tag_location", "margin").
		Set("plot_tag_position", "topleft")

	t.SetElement("text", Element{
		Family:   ptr("Go"),
		Size:     ptr(base),
		Color:    ptr("#000000"),
		Rotation: ptr(0.0),
		Margin:   &Margin{},
	}).
		SetElement("line", Element{Color: ptr("#000000")}).
		SetElement("rect", Element{Fill: ptr("#FFFFFF"), Color: ptr("#000000")}).
		SetElement("axis_text", Element{Size: ptr(base * 0.8), Color: ptr("#4D4D4D")}).
		SetElement("axis_text_x", Element{VA: ptr("top"), Margin: &Margin{T: base / 5}}).
		SetElement("axis_text_y", Element{HA: ptr("right"), Margin: &Margin{R: base / 5}}).
		SetElement("axis_ticks", Element{Color: ptr("#333333")}).
		SetElement("axis_ticks_minor", ElementBlank()).
		SetElement("axis_line", ElementBlank()).
		SetElement("axis_title_x", Element{VA: ptr("bottom"), HA: ptr("center"), Margin: &Margin{T: m, Unit: "fig"}}).
		SetElement("axis_title_y", Element{
			Rotation: ptr(90.0), VA: ptr("center"), HA: ptr("left"),
			Margin: &Margin{R: m, Unit: "fig"},
		}).
		SetElement("legend_background", Element{Color: ptr("none")}).
		SetElement("legend_key", Element{Fill: ptr("#F2F2F2"), Color: ptr("none")}).
		SetElement("legend_text", Element{Size: ptr(base * 0.8), Margin: &Margin{T: m / 1.5, R: m / 1.5, B: m / 1.5, L: m / 1.5, Unit: "fig"}}).
		SetElement("legend_title", Element{Margin: &Margin{T: m, L: m * 2, B: m / 2, R: m * 2, Unit: "fig"}}).
		SetElement("panel_background", Element{Fill: ptr("#EBEBEB"), Color: ptr("none")}).
		SetElement("panel_border", ElementBlank()).
		SetElement("plot_background", Element{Color: ptr("#FFFFFF")}).
		SetElement("plot_caption", Element{Size: ptr(base * 0.8), HA: ptr("right"), VA: ptr("bottom"), Margin: &Margin{T: m, Unit: "fig"}}).
		SetElement("plot_subtitle", Element{VA: ptr("top"), Margin: &Margin{B: m, Unit: "fig"}}).
		SetElement("plot_title", Element{Size: ptr(base * 1.2), VA: ptr("top"), Margin: &Margin{B: m, Unit: "fig"}}).
		SetElement("plot_tag", Element{Size: ptr(base * 1.2), VA: ptr("center"), HA: ptr("center")}).
		SetElement("strip_background", Element{Color: ptr("none"), Fill: ptr("#D9D9D9")}).
		SetElement("strip_text", Element{
			Color: ptr("#1A1A1A"), Size: ptr(base * 0.8),
			Margin: &Margin{T: 1.0 / 3, R: 1.0 / 3, B: 1.0 / 3, L: 1.0 / 3, Unit: "lines"},
		}).
		SetElement("strip_text_y", Element{Rotation: ptr(-90.0)})
	return t
}

// Void returns a theme that draws nothing but text. Spacers use it.
func Void() *Theme {
	t := Gray()
	for _, name := range []string{
		"axis_text", "axis_title", "axis_ticks", "panel_background",
		"plot_background", "strip_background", "strip_text", "legend_key",
	} {
		t.SetElement(name, ElementBlank())
	}
	return t.Set("legend_position", "none")
}
