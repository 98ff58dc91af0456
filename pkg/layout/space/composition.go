package space

import (
	"github.com/matzehuels/ggframe/pkg/geom"
	"github.com/matzehuels/ggframe/pkg/gridspec"
	"github.com/matzehuels/ggframe/pkg/layout/items"
	"github.com/matzehuels/ggframe/pkg/scene"
)

// CompositionSpaces holds the sides around the top level composition:
// the plot margin and the annotation texts.
type CompositionSpaces struct {
	Composition *scene.Composition
	Items       *items.CompositionItems
	L           *Space
	R           *Space
	T           *Space
	B           *Space
}

// NewCompositionSpaces measures the annotation around c. The spaces are
// relative to the whole figure.
func NewCompositionSpaces(c *scene.Composition, w, h float64) *CompositionSpaces {
	it := items.NewCompositionItems(c)
	frame := func() geom.Box { return geom.Box{X1: 1, Y1: 1} }
	cs := &CompositionSpaces{
		Composition: c,
		Items:       it,
		L:           newSpace(Left, compositionSlots[Left], frame),
		R:           newSpace(Right, compositionSlots[Right], frame),
		T:           newSpace(Top, compositionSlots[Top], frame),
		B:           newSpace(Bottom, compositionSlots[Bottom], frame),
	}
	th, F := c.Theme, w/h

	cs.L.set(PlotMargin, th.Float("plot_margin_left"))
	cs.R.set(PlotMargin, th.Float("plot_margin_right"))

	cs.T.set(PlotMargin, th.Float("plot_margin_top")*F)
	for _, name := range []string{"plot_title", "plot_subtitle"} {
		if t := it.Get(name); t != nil {
			m := th.Margin(name)
			cs.T.set(name+"_margin_top", m.T*F)
			cs.T.set(name, t.Height())
			cs.T.set(name+"_margin_bottom", m.B*F)
		}
	}

	cs.B.set(PlotMargin, th.Float("plot_margin_bottom")*F)
	if t := it.Get("plot_caption"); t != nil {
		m := th.Margin("plot_caption")
		cs.B.set("plot_caption_margin_bottom", m.B*F)
		cs.B.set("plot_caption", t.Height())
		cs.B.set("plot_caption_margin_top", m.T*F)
	}

	for _, s := range cs.Sides() {
		s.seal()
	}
	return cs
}

// Sides returns the left, right, top and bottom spaces.
func (cs *CompositionSpaces) Sides() []*Space { return []*Space{cs.L, cs.R, cs.T, cs.B} }

// Params returns the params of the top level composition grid: the area
// left after the annotation.
func (cs *CompositionSpaces) Params() gridspec.Params {
	return gridspec.Params{
		Left:   cs.L.PanelEdgeRelative(),
		Right:  cs.R.PanelEdgeRelative(),
		Top:    cs.T.PanelEdgeRelative(),
		Bottom: cs.B.PanelEdgeRelative(),
	}
}

// ContentArea returns the area inside the plot margins.
func (cs *CompositionSpaces) ContentArea() geom.Box {
	return geom.Box{
		X0: cs.L.X2(PlotMargin),
		Y0: cs.B.Y2(PlotMargin),
		X1: cs.R.X1(PlotMargin),
		Y1: cs.T.Y1(PlotMargin),
	}
}
