// Package solver computes the panel grid of a single plot.
//
// Given the measured sides of a plot, [Solve] returns the subplot params
// of the plot's panel grid: where the panel area starts and ends within
// the plot frame and how wide the gaps between panels are. When the plot
// asks for a fixed panel aspect ratio the panel area is shrunk on one axis
// and the difference goes into the plot margins.
package solver

import (
	"github.com/matzehuels/ggframe/pkg/errors"
	"github.com/matzehuels/ggframe/pkg/figure"
	"github.com/matzehuels/ggframe/pkg/gridspec"
	"github.com/matzehuels/ggframe/pkg/layout/items"
	"github.com/matzehuels/ggframe/pkg/layout/space"
)

// Correction records how the aspect ratio changed the panels.
type Correction string

// Corrections.
const (
	CorrectionNone   Correction = ""
	CorrectionWidth  Correction = "width"
	CorrectionHeight Correction = "height"
)

// Solution is the panel grid of one plot.
type Solution struct {
	// Params are relative to the plot frame.
	Params gridspec.Params `json:"params" bson:"params"`

	// PanelW and PanelH are the size of one panel in figure fractions.
	PanelW float64 `json:"panel_w" bson:"panel_w"`
	PanelH float64 `json:"panel_h" bson:"panel_h"`

	// SW and SH are the gaps between panels in figure fractions.
	SW float64 `json:"sw" bson:"sw"`
	SH float64 `json:"sh" bson:"sh"`

	Correction Correction `json:"correction,omitempty" bson:"correction,omitempty"`
}

// Solve computes the panel grid of ps. The aspect ratio correction grows
// the plot margins of ps.
//
// Degenerate params are returned with a DEGENERATE_GEOMETRY error; the
// caller keeps the grid's previous params.
func Solve(ps *space.PlotSpaces) (Solution, error) {
	p := ps.Plot
	nrow, ncol := max(p.NRow, 1), max(p.NCol, 1)

	var sol Solution
	switch p.Facet.Kind {
	case figure.FacetGrid:
		sol.SW, sol.SH = gridSpacing(ps)
	case figure.FacetWrap:
		sol.SW, sol.SH = wrapSpacing(ps)
	}
	sol.PanelW = (ps.PanelWidth() - sol.SW*float64(ncol-1)) / float64(ncol)
	sol.PanelH = (ps.PanelHeight() - sol.SH*float64(nrow-1)) / float64(nrow)

	sol.Params = gridspec.Params{
		Left:   ps.L.PanelEdgeRelative(),
		Right:  ps.R.PanelEdgeRelative(),
		Top:    ps.T.PanelEdgeRelative(),
		Bottom: ps.B.PanelEdgeRelative(),
	}
	if sol.PanelW <= 0 || sol.PanelH <= 0 {
		return sol, errors.New(errors.ErrCodeDegenerateGeometry,
			"plot %q has no room for its panels (panel %.4f x %.4f)", p.Name, sol.PanelW, sol.PanelH)
	}
	if sol.SW > 0 {
		sol.Params.WSpace = sol.SW / sol.PanelW
	}
	if sol.SH > 0 {
		sol.Params.HSpace = sol.SH / sol.PanelH
	}

	if r, ok := p.Facet.AspectRatio(p.Theme); ok {
		correct(ps, &sol, r, nrow, ncol)
	}
	if err := sol.Params.Validate(); err != nil {
		return sol, errors.Wrap(errors.ErrCodeDegenerateGeometry, err, "plot %q", p.Name)
	}
	return sol, nil
}

func gridSpacing(ps *space.PlotSpaces) (sw, sh float64) {
	th := ps.Plot.Theme
	return th.Float("panel_spacing_x"), th.Float("panel_spacing_y") * ps.W / ps.H
}

func wrapSpacing(ps *space.PlotSpaces) (sw, sh float64) {
	sw, sh = gridSpacing(ps)
	it, facet := ps.Items, ps.Plot.Facet

	// Only the part of the strip outside the panel needs room.
	if align := ps.Plot.Theme.Float("strip_align_x"); align > -1 {
		sh += ps.T.Get("strip_text_x_extra_height") * (1 + align)
	}
	if facet.FreeX {
		sh += it.AxisTextXMaxHeightAt(items.All) + it.AxisTicksXMaxHeightAt(items.All)
	}
	if facet.FreeY {
		sw += it.AxisTextYMaxWidthAt(items.All) + it.AxisTicksYMaxWidthAt(items.All)
	}
	return sw, sh
}

// correct shrinks the panels along one axis so each has aspect ratio r.
func correct(ps *space.PlotSpaces, sol *Solution, r float64, nrow, ncol int) {
	W, H := ps.W, ps.H
	w, h := sol.PanelW, sol.PanelH
	r0 := (h * H) / (w * W)

	switch {
	case r > r0:
		w1 := (h * H) / (r * W)
		dw := (w - w1) * float64(ncol) / 2
		sol.Params.Left += dw
		sol.Params.Right -= dw
		sol.Params.WSpace = sol.SW / w1
		sol.PanelW = w1
		sol.Correction = CorrectionWidth
		ps.IncreaseHorizontalPlotMargin(dw)
	case r < r0:
		h1 := r * w * W / H
		dh := (h - h1) * float64(nrow) / 2
		sol.Params.Top -= dh
		sol.Params.Bottom += dh
		sol.Params.HSpace = sol.SH / h1
		sol.PanelH = h1
		sol.Correction = CorrectionHeight
		ps.IncreaseVerticalPlotMargin(dh)
	}
}
