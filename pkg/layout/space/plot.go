package space

import (
	"github.com/matzehuels/ggframe/pkg/errors"
	"github.com/matzehuels/ggframe/pkg/geom"
	"github.com/matzehuels/ggframe/pkg/layout/items"
	"github.com/matzehuels/ggframe/pkg/scene"
)

// PlotSpaces holds the four sides of one plot.
type PlotSpaces struct {
	Plot  *scene.Plot
	Items *items.PlotItems
	L     *Space
	R     *Space
	T     *Space
	B     *Space

	// W and H are the figure size in inches.
	W, H float64
}

// NewPlotSpaces measures the sides of p.
//
// It returns an INVALID_CONFIG error for a tag placed in the margin at an
// (x, y) position.
func NewPlotSpaces(p *scene.Plot) (*PlotSpaces, error) {
	it := items.NewPlotItems(p)
	frame := func() geom.Box { return p.Frame.Box() }
	ps := &PlotSpaces{
		Plot:  p,
		Items: it,
		L:     newSpace(Left, plotSlots[Left], frame),
		R:     newSpace(Right, plotSlots[Right], frame),
		T:     newSpace(Top, plotSlots[Top], frame),
		B:     newSpace(Bottom, plotSlots[Bottom], frame),
		W:     p.W,
		H:     p.H,
	}

	th := p.Theme
	if it.Get("plot_tag") != nil && th.String("plot_tag_location", "margin") == "margin" {
		if pos := th.Position("plot_tag_position", "topleft"); pos.Pair {
			return nil, errors.New(errors.ErrCodeInvalidConfig,
				"Cannot have plot_tag_location='margin' if plot_tag_position=%s", pos)
		}
	}

	ps.buildLeft()
	ps.buildRight()
	ps.buildTop()
	ps.buildBottom()
	for _, s := range ps.Sides() {
		s.seal()
	}
	return ps, nil
}

// Sides returns the left, right, top and bottom spaces.
func (ps *PlotSpaces) Sides() []*Space { return []*Space{ps.L, ps.R, ps.T, ps.B} }

// Side returns the space of side.
func (ps *PlotSpaces) Side(side Side) *Space {
	switch side {
	case Left:
		return ps.L
	case Right:
		return ps.R
	case Top:
		return ps.T
	default:
		return ps.B
	}
}

// HasTag reports whether the tag takes up room on side: it must be in
// the margin and its position must name the side.
func (ps *PlotSpaces) HasTag(side Side) bool {
	th := ps.Plot.Theme
	return th.String("plot_tag_location", "margin") == "margin" &&
		th.Position("plot_tag_position", "topleft").Has(string(side))
}

// f is the factor that turns a width fraction into the height fraction of
// the same length.
func (ps *PlotSpaces) f() float64 { return ps.W / ps.H }

// protrude makes room for tick labels that reach past the panels.
func protrude(s *Space, protrusion float64) {
	if adj := protrusion - (s.Total() - s.Get(PlotMargin)); adj > 0 {
		s.values[s.pos(PlotMargin)] += adj
	}
}

func (ps *PlotSpaces) buildLeft() {
	s, it, th := ps.L, ps.Items, ps.Plot.Theme
	s.set(PlotMargin, th.Float("plot_margin_left"))

	if tag := it.Get("plot_tag"); tag != nil && ps.HasTag(Left) {
		m := th.Margin("plot_tag")
		s.set("plot_tag_margin_left", m.L)
		s.set("plot_tag", tag.Width())
		s.set("plot_tag_margin_right", m.R)
	}
	if l := it.Legend(scene.LegendLeft); l != nil {
		s.set("legend", l.Width())
		s.set("legend_box_spacing", th.Float("legend_box_spacing"))
	}
	if t := it.Get("axis_title_y"); t != nil {
		m := th.Margin("axis_title_y")
		s.set("axis_title_y_margin_left", m.L)
		s.set("axis_title_y", t.Width())
		s.set("axis_title_y_margin_right", m.R)
	}
	if w := it.AxisTextYMaxWidthAt(items.FirstCol); w > 0 {
		m := th.Margin("axis_text_y")
		s.set("axis_text_y_margin_left", m.L)
		s.set("axis_text_y", w)
		s.set("axis_text_y_margin_right", m.R)
	}
	s.set("axis_ticks_y", it.AxisTicksYMaxWidthAt(items.FirstCol))
	protrude(s, it.AxisTextXLeftProtrusion(items.All))
}

func (ps *PlotSpaces) buildRight() {
	s, it, th := ps.R, ps.Items, ps.Plot.Theme
	s.set(PlotMargin, th.Float("plot_margin_right"))

	if tag := it.Get("plot_tag"); tag != nil && ps.HasTag(Right) {
		m := th.Margin("plot_tag")
		s.set("plot_tag_margin_right", m.R)
		s.set("plot_tag", tag.Width())
		s.set("plot_tag_margin_left", m.L)
	}
	if l := it.Legend(scene.LegendRight); l != nil {
		s.set("legend", l.Width())
		s.set("legend_box_spacing", th.Float("legend_box_spacing"))
	}
	s.set("strip_text_y_extra_width", it.StripTextYExtraWidth("right"))
	protrude(s, it.AxisTextXRightProtrusion(items.All))
}

func (ps *PlotSpaces) buildTop() {
	s, it, th, F := ps.T, ps.Items, ps.Plot.Theme, ps.f()
	s.set(PlotMargin, th.Float("plot_margin_top")*F)

	if tag := it.Get("plot_tag"); tag != nil && ps.HasTag(Top) {
		m := th.Margin("plot_tag")
		s.set("plot_tag_margin_top", m.T)
		s.set("plot_tag", tag.Height())
		s.set("plot_tag_margin_bottom", m.B)
	}
	for _, name := range []string{"plot_title", "plot_subtitle"} {
		if t := it.Get(name); t != nil {
			m := th.Margin(name)
			s.set(name+"_margin_top", m.T*F)
			s.set(name, t.Height())
			s.set(name+"_margin_bottom", m.B*F)
		}
	}
	if l := it.Legend(scene.LegendTop); l != nil {
		s.set("legend", l.Height())
		s.set("legend_box_spacing", th.Float("legend_box_spacing")*F)
	}
	s.set("strip_text_x_extra_height", it.StripTextXExtraHeight("top"))
	protrude(s, it.AxisTextYTopProtrusion(items.All))
}

func (ps *PlotSpaces) buildBottom() {
	s, it, th, F := ps.B, ps.Items, ps.Plot.Theme, ps.f()
	s.set(PlotMargin, th.Float("plot_margin_bottom")*F)

	if tag := it.Get("plot_tag"); tag != nil && ps.HasTag(Bottom) {
		m := th.Margin("plot_tag")
		s.set("plot_tag_margin_bottom", m.B)
		s.set("plot_tag", tag.Height())
		s.set("plot_tag_margin_top", m.T)
	}
	if t := it.Get("plot_caption"); t != nil {
		m := th.Margin("plot_caption")
		s.set("plot_caption_margin_bottom", m.B*F)
		s.set("plot_caption", t.Height())
		s.set("plot_caption_margin_top", m.T*F)
	}
	if l := it.Legend(scene.LegendBottom); l != nil {
		s.set("legend", l.Height())
		s.set("legend_box_spacing", th.Float("legend_box_spacing")*F)
	}
	if t := it.Get("axis_title_x"); t != nil {
		m := th.Margin("axis_title_x")
		s.set("axis_title_x_margin_bottom", m.B*F)
		s.set("axis_title_x", t.Height())
		s.set("axis_title_x_margin_top", m.T*F)
	}
	if h := it.AxisTextXMaxHeightAt(items.LastRow); h > 0 {
		m := th.Margin("axis_text_x")
		s.set("axis_text_x_margin_bottom", m.B)
		s.set("axis_text_x", h)
		s.set("axis_text_x_margin_top", m.T)
	}
	s.set("axis_ticks_x", it.AxisTicksXMaxHeightAt(items.LastRow))
	protrude(s, it.AxisTextYBottomProtrusion(items.All))
}

// PanelWidth returns the width of the panel area in figure space.
func (ps *PlotSpaces) PanelWidth() float64 { return ps.R.PanelEdge() - ps.L.PanelEdge() }

// PanelHeight returns the height of the panel area in figure space.
func (ps *PlotSpaces) PanelHeight() float64 { return ps.T.PanelEdge() - ps.B.PanelEdge() }

// PlotWidth returns the width of the whole plot.
func (ps *PlotSpaces) PlotWidth() float64 { return ps.Plot.Frame.Width() }

// PlotHeight returns the height of the whole plot.
func (ps *PlotSpaces) PlotHeight() float64 { return ps.Plot.Frame.Height() }

// HorizontalSpace returns the non-panel width.
func (ps *PlotSpaces) HorizontalSpace() float64 { return ps.L.Total() + ps.R.Total() }

// VerticalSpace returns the non-panel height.
func (ps *PlotSpaces) VerticalSpace() float64 { return ps.T.Total() + ps.B.Total() }

// PlotArea returns the area inside the plot margins.
func (ps *PlotSpaces) PlotArea() geom.Box {
	return geom.Box{
		X0: ps.L.X2(PlotMargin),
		Y0: ps.B.Y2(PlotMargin),
		X1: ps.R.X1(PlotMargin),
		Y1: ps.T.Y1(PlotMargin),
	}
}

// PanelArea returns the area the panels are drawn in.
func (ps *PlotSpaces) PanelArea() geom.Box {
	return geom.Box{X0: ps.L.PanelEdge(), Y0: ps.B.PanelEdge(), X1: ps.R.PanelEdge(), Y1: ps.T.PanelEdge()}
}

// ArtistArea returns the area between the outermost artifacts: inside
// the plot margin and the tag.
func (ps *PlotSpaces) ArtistArea() geom.Box {
	return geom.Box{X0: ps.L.PlotEdge(), Y0: ps.B.PlotEdge(), X1: ps.R.PlotEdge(), Y1: ps.T.PlotEdge()}
}

// IncreaseHorizontalPlotMargin adds dw to the left and right plot margins.
func (ps *PlotSpaces) IncreaseHorizontalPlotMargin(dw float64) {
	ps.L.grow(PlotMargin, dw)
	ps.R.grow(PlotMargin, dw)
}

// IncreaseVerticalPlotMargin adds dh to the top and bottom plot margins.
func (ps *PlotSpaces) IncreaseVerticalPlotMargin(dh float64) {
	ps.T.grow(PlotMargin, dh)
	ps.B.grow(PlotMargin, dh)
}
