package tree

import (
	"gonum.org/v1/gonum/floats"
)

// PanelWidth returns the combined width of the columns' panels.
func (t *Tree) PanelWidth() float64 { return floats.Sum(t.PanelWidths()) }

// PanelHeight returns the combined height of the rows' panels.
func (t *Tree) PanelHeight() float64 { return floats.Sum(t.PanelHeights()) }

// PlotWidth returns the width of the composition grid.
func (t *Tree) PlotWidth() float64 { return t.GridSpec.Width() }

// PlotHeight returns the height of the composition grid.
func (t *Tree) PlotHeight() float64 { return t.GridSpec.Height() }

// PanelWidths returns the widest panel width of each column. After
// alignment that is the width of the column's panels.
func (t *Tree) PanelWidths() []float64 {
	def := t.PlotWidth() / float64(t.NCol)
	out := make([]float64, t.NCol)
	for c := range out {
		out[c] = widest(t.Col(c), Node.PanelWidth, def, false)
	}
	return out
}

// PanelHeights returns the tallest panel height of each row.
func (t *Tree) PanelHeights() []float64 {
	def := t.PlotHeight() / float64(t.NRow)
	out := make([]float64, t.NRow)
	for r := range out {
		out[r] = widest(t.Row(r), Node.PanelHeight, def, false)
	}
	return out
}

// PlotWidths returns the widest plot of each column.
func (t *Tree) PlotWidths() []float64 {
	def := t.PlotWidth() / float64(t.NCol)
	out := make([]float64, t.NCol)
	for c := range out {
		out[c] = widest(t.Col(c), Node.PlotWidth, def, true)
	}
	return out
}

// PlotHeights returns the tallest plot of each row.
func (t *Tree) PlotHeights() []float64 {
	def := t.PlotHeight() / float64(t.NRow)
	out := make([]float64, t.NRow)
	for r := range out {
		out[r] = widest(t.Row(r), Node.PlotHeight, def, true)
	}
	return out
}

// widest returns the largest size among the nodes, or def if there are
// none. With emptyCounts set, empty cells count as def.
func widest(nodes []Node, size func(Node) float64, def float64, emptyCounts bool) float64 {
	var vals []float64
	for _, n := range nodes {
		switch {
		case n != nil:
			vals = append(vals, size(n))
		case emptyCounts:
			vals = append(vals, def)
		}
	}
	if len(vals) == 0 {
		return def
	}
	return floats.Max(vals)
}

// Resize sets the width and height ratios of the composition grids so
// the panels get their declared relative sizes and every plot keeps its
// non-panel space.
func (t *Tree) Resize() {
	t.GridSpec.SetWidthRatios(ratios(t.PanelWidths(), t.PlotWidths(), t.Composition.Layout.Widths))
	t.GridSpec.SetHeightRatios(ratios(t.PanelHeights(), t.PlotHeights(), t.Composition.Layout.Heights))
	for _, sub := range t.SubTrees() {
		sub.Resize()
	}
}

// ratios computes grid ratios from the current panel and plot sizes.
// declared has a mean of 1, so scaling the mean panel size by it keeps
// the total panel size.
func ratios(panels, plots, declared []float64) []float64 {
	n := len(panels)
	if len(declared) != n {
		declared = make([]float64, n)
		for i := range declared {
			declared[i] = 1
		}
	}
	mean := floats.Sum(panels) / float64(n)

	out := make([]float64, n)
	floats.ScaleTo(out, mean, declared)
	nonPanel := make([]float64, n)
	floats.SubTo(nonPanel, plots, panels)
	floats.Add(out, nonPanel)
	floats.Scale(1/floats.Max(out), out)
	return out
}
