// Package items is the read-only view of a plot's measured artifacts
// that the side spaces are computed from.
//
// Missing artifacts measure as zero: a blank themeable or empty text
// yields nil from Get, and an empty panel subset yields 0 from every
// max query.
package items

import (
	"github.com/matzehuels/ggframe/pkg/geom"
	"github.com/matzehuels/ggframe/pkg/scene"
	"github.com/matzehuels/ggframe/pkg/theme"
)

// Location selects a subset of the panels of a plot.
type Location string

// Panel subsets.
const (
	All      Location = "all"
	FirstRow Location = "first_row"
	LastRow  Location = "last_row"
	FirstCol Location = "first_col"
	LastCol  Location = "last_col"
)

// Artist is anything with a box in figure space.
type Artist interface {
	Bounds() geom.Box
}

// Geometry measures artists in figure fractions.
type Geometry struct{}

// Box returns the box of a.
func (Geometry) Box(a Artist) geom.Box { return a.Bounds() }

// Width returns the width of a.
func (Geometry) Width(a Artist) float64 { return a.Bounds().Width() }

// Height returns the height of a.
func (Geometry) Height(a Artist) float64 { return a.Bounds().Height() }

// Size returns the width and height of a.
func (Geometry) Size(a Artist) (w, h float64) {
	b := a.Bounds()
	return b.Width(), b.Height()
}

// PlotItems gives access to the artifacts of one plot.
type PlotItems struct {
	Plot     *scene.Plot
	Geometry Geometry
}

// NewPlotItems returns the items of p.
func NewPlotItems(p *scene.Plot) *PlotItems {
	return &PlotItems{Plot: p}
}

// Theme returns the theme of the plot.
func (it *PlotItems) Theme() *theme.Theme { return it.Plot.Theme }

// Get returns the text drawn for the themeable name, or nil when the
// themeable is blank, the text is empty or the plot has no such text.
func (it *PlotItems) Get(name string) *scene.Text {
	var t *scene.Text
	switch name {
	case "plot_title":
		t = it.Plot.Title
	case "plot_subtitle":
		t = it.Plot.Subtitle
	case "plot_caption":
		t = it.Plot.Caption
	case "plot_tag":
		t = it.Plot.Tag
	case "axis_title_x":
		t = it.Plot.AxisTitleX
	case "axis_title_y":
		t = it.Plot.AxisTitleY
	}
	return visible(it.Plot.Theme, name, t)
}

func visible(th *theme.Theme, name string, t *scene.Text) *scene.Text {
	if t == nil || t.Content == "" || th.IsBlank(name) {
		return nil
	}
	return t
}

// Legend returns the legend placed at position, or nil.
func (it *PlotItems) Legend(position string) *scene.Legend {
	if l := it.Plot.Legend; l != nil && l.Position == position {
		return l
	}
	return nil
}

// Panels returns the panels at loc.
func (it *PlotItems) Panels(loc Location) []*scene.Panel {
	if loc == All {
		return it.Plot.PanelList
	}
	var out []*scene.Panel
	for _, pn := range it.Plot.PanelList {
		var ok bool
		switch loc {
		case FirstRow:
			ok = pn.Cell.FirstRow()
		case LastRow:
			ok = pn.Cell.LastRow()
		case FirstCol:
			ok = pn.Cell.FirstCol()
		case LastCol:
			ok = pn.Cell.LastCol()
		}
		if ok {
			out = append(out, pn)
		}
	}
	return out
}

// maxOver returns the largest f(pn) over the panels at loc, or 0.
func (it *PlotItems) maxOver(loc Location, f func(*scene.Panel) float64) float64 {
	var m float64
	for _, pn := range it.Panels(loc) {
		m = max(m, f(pn))
	}
	return m
}

// AxisTextXMaxHeight returns the height of the tallest x label of pn.
func (it *PlotItems) AxisTextXMaxHeight(pn *scene.Panel) float64 {
	if it.Plot.Theme.IsBlank("axis_text_x") {
		return 0
	}
	return pn.XTextHeight()
}

// AxisTextYMaxWidth returns the width of the widest y label of pn.
func (it *PlotItems) AxisTextYMaxWidth(pn *scene.Panel) float64 {
	if it.Plot.Theme.IsBlank("axis_text_y") {
		return 0
	}
	return pn.YTextWidth()
}

// AxisTextXMaxHeightAt returns the height of the tallest x label at loc.
func (it *PlotItems) AxisTextXMaxHeightAt(loc Location) float64 {
	return it.maxOver(loc, it.AxisTextXMaxHeight)
}

// AxisTextYMaxWidthAt returns the width of the widest y label at loc.
func (it *PlotItems) AxisTextYMaxWidthAt(loc Location) float64 {
	return it.maxOver(loc, it.AxisTextYMaxWidth)
}

// AxisTicksXMaxHeightAt returns the length of the longest x tick at loc.
func (it *PlotItems) AxisTicksXMaxHeightAt(loc Location) float64 {
	return it.maxOver(loc, (*scene.Panel).XTickLength)
}

// AxisTicksYMaxWidthAt returns the length of the longest y tick at loc.
func (it *PlotItems) AxisTicksYMaxWidthAt(loc Location) float64 {
	return it.maxOver(loc, (*scene.Panel).YTickLength)
}

// StripTextXExtraHeight returns the height of the x strips at position
// that lies outside the panels.
func (it *PlotItems) StripTextXExtraHeight(position string) float64 {
	var m float64
	for _, s := range it.Plot.StripsX() {
		if s.Position != position {
			continue
		}
		h := s.Thickness * s.Expand
		m = max(m, h+h*s.Align, 0)
	}
	return m
}

// StripTextYExtraWidth returns the width of the y strips at position that
// lies outside the panels.
func (it *PlotItems) StripTextYExtraWidth(position string) float64 {
	var m float64
	for _, s := range it.Plot.StripsY() {
		if s.Position != position {
			continue
		}
		w := s.Thickness * s.Expand
		m = max(m, w+w*s.Align, 0)
	}
	return m
}

// labels calls f for every visible x (or y) label of the panels at loc.
func (it *PlotItems) labels(loc Location, x bool, f func(pn *scene.Panel, label *scene.Text)) {
	name := "axis_text_y"
	if x {
		name = "axis_text_x"
	}
	if it.Plot.Theme.IsBlank(name) {
		return
	}
	for _, pn := range it.Panels(loc) {
		ticks := pn.YTicks
		if x {
			ticks = pn.XTicks
		}
		for _, tk := range ticks {
			if tk.Label != nil && tk.Label.Content != "" {
				f(pn, tk.Label)
			}
		}
	}
}

// AxisTextXLeftProtrusion returns how far x labels reach left of their
// panels.
func (it *PlotItems) AxisTextXLeftProtrusion(loc Location) float64 {
	var m float64
	it.labels(loc, true, func(pn *scene.Panel, l *scene.Text) {
		m = max(m, -min(l.Box.X0-pn.Box.X0, 0))
	})
	return m
}

// AxisTextXRightProtrusion returns how far x labels reach right of their
// panels.
func (it *PlotItems) AxisTextXRightProtrusion(loc Location) float64 {
	var m float64
	it.labels(loc, true, func(pn *scene.Panel, l *scene.Text) {
		m = max(m, l.Box.X1-pn.Box.X1, 0)
	})
	return m
}

// AxisTextYTopProtrusion returns how far y labels reach above their
// panels.
func (it *PlotItems) AxisTextYTopProtrusion(loc Location) float64 {
	var m float64
	it.labels(loc, false, func(pn *scene.Panel, l *scene.Text) {
		m = max(m, l.Box.Y1-pn.Box.Y1, 0)
	})
	return m
}

// AxisTextYBottomProtrusion returns how far y labels reach below their
// panels.
func (it *PlotItems) AxisTextYBottomProtrusion(loc Location) float64 {
	var m float64
	it.labels(loc, false, func(pn *scene.Panel, l *scene.Text) {
		m = max(m, -min(l.Box.Y0-pn.Box.Y0, 0))
	})
	return m
}

// CompositionItems gives access to the annotation of a composition.
type CompositionItems struct {
	Composition *scene.Composition
	Geometry    Geometry
}

// NewCompositionItems returns the items of c.
func NewCompositionItems(c *scene.Composition) *CompositionItems {
	return &CompositionItems{Composition: c}
}

// Theme returns the theme of the composition.
func (it *CompositionItems) Theme() *theme.Theme { return it.Composition.Theme }

// Get returns the annotation text for name, or nil.
func (it *CompositionItems) Get(name string) *scene.Text {
	var t *scene.Text
	switch name {
	case "plot_title":
		t = it.Composition.Title
	case "plot_subtitle":
		t = it.Composition.Subtitle
	case "plot_caption":
		t = it.Composition.Caption
	}
	return visible(it.Composition.Theme, name, t)
}
