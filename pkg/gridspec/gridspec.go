// Package gridspec places cells of a grid within a figure.
//
// A [GridSpec] has nrow x ncol cells. Its [Params] are relative to the
// area the grid is placed in: the figure for a top level grid, or a cell
// of another grid when nested. Cell positions are computed on demand so
// changes to a parent grid (new ratios or params) are seen by every grid
// nested in it.
//
// All coordinates are figure fractions with the origin at the bottom left.
package gridspec

import (
	"fmt"

	"github.com/matzehuels/ggframe/pkg/geom"
)

// GridSpec is a grid of cells with relative sizes.
type GridSpec struct {
	nrow, ncol   int
	widthRatios  []float64
	heightRatios []float64
	params       Params
	parent       *Cell
	byRow        bool
}

// Option configures a GridSpec.
type Option func(*GridSpec)

// NestInto places the grid inside a cell of another grid.
func NestInto(c Cell) Option {
	return func(g *GridSpec) { g.parent = &c }
}

// ByRow sets the fill order used by [GridSpec.Cells]. The default is
// row major.
func ByRow(byRow bool) Option {
	return func(g *GridSpec) { g.byRow = byRow }
}

// New creates a grid with equal ratios that fills its parent area.
// It panics if nrow or ncol is less than one.
func New(nrow, ncol int, opts ...Option) *GridSpec {
	if nrow < 1 || ncol < 1 {
		panic(fmt.Sprintf("gridspec: invalid shape %dx%d", nrow, ncol))
	}
	g := &GridSpec{
		nrow:         nrow,
		ncol:         ncol,
		widthRatios:  ones(ncol),
		heightRatios: ones(nrow),
		params:       Full(),
		byRow:        true,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// NRow returns the number of rows.
func (g *GridSpec) NRow() int { return g.nrow }

// NCol returns the number of columns.
func (g *GridSpec) NCol() int { return g.ncol }

// Nested reports whether the grid is placed inside another grid's cell.
func (g *GridSpec) Nested() bool { return g.parent != nil }

// Parent returns the cell the grid is nested into, if any.
func (g *GridSpec) Parent() (Cell, bool) {
	if g.parent == nil {
		return Cell{}, false
	}
	return *g.parent, true
}

// Update replaces the relative params of the grid.
func (g *GridSpec) Update(p Params) { g.params = p }

// Params returns the params relative to the parent area.
func (g *GridSpec) Params() Params { return g.params }

// SubplotParams returns the params in figure coordinates.
func (g *GridSpec) SubplotParams() Params {
	p := g.params
	if g.parent == nil {
		return p
	}
	cell := g.parent.Box()
	return Params{
		Left:   cell.X0 + p.Left,
		Bottom: cell.Y0 + p.Bottom,
		Right:  cell.X1 - (1 - p.Right),
		Top:    cell.Y1 - (1 - p.Top),
		WSpace: p.WSpace,
		HSpace: p.HSpace,
	}
}

// Box returns the grid area in figure coordinates.
func (g *GridSpec) Box() geom.Box { return g.SubplotParams().Box() }

// Width returns the width of the grid area.
func (g *GridSpec) Width() float64 { return g.Box().Width() }

// Height returns the height of the grid area.
func (g *GridSpec) Height() float64 { return g.Box().Height() }

// WidthRatios returns a copy of the column ratios.
func (g *GridSpec) WidthRatios() []float64 { return append([]float64(nil), g.widthRatios...) }

// HeightRatios returns a copy of the row ratios.
func (g *GridSpec) HeightRatios() []float64 { return append([]float64(nil), g.heightRatios...) }

// SetWidthRatios sets the relative widths of the columns.
// It panics if the length does not match the number of columns.
func (g *GridSpec) SetWidthRatios(r []float64) {
	if len(r) != g.ncol {
		panic(fmt.Sprintf("gridspec: %d width ratios for %d columns", len(r), g.ncol))
	}
	g.widthRatios = append([]float64(nil), r...)
}

// SetHeightRatios sets the relative heights of the rows.
// It panics if the length does not match the number of rows.
func (g *GridSpec) SetHeightRatios(r []float64) {
	if len(r) != g.nrow {
		panic(fmt.Sprintf("gridspec: %d height ratios for %d rows", len(r), g.nrow))
	}
	g.heightRatios = append([]float64(nil), r...)
}

// Cell returns the cell at row r and column c.
func (g *GridSpec) Cell(r, c int) Cell {
	if r < 0 || r >= g.nrow || c < 0 || c >= g.ncol {
		panic(fmt.Sprintf("gridspec: cell (%d, %d) outside %dx%d grid", r, c, g.nrow, g.ncol))
	}
	return Cell{gs: g, Row: r, Col: c}
}

// Cells returns all cells in fill order.
func (g *GridSpec) Cells() []Cell {
	cells := make([]Cell, 0, g.nrow*g.ncol)
	if g.byRow {
		for r := 0; r < g.nrow; r++ {
			for c := 0; c < g.ncol; c++ {
				cells = append(cells, g.Cell(r, c))
			}
		}
		return cells
	}
	for c := 0; c < g.ncol; c++ {
		for r := 0; r < g.nrow; r++ {
			cells = append(cells, g.Cell(r, c))
		}
	}
	return cells
}

// Positions returns the figure coordinates of the cell edges.
// bottoms and tops are indexed by row from the top, lefts and rights by
// column from the left.
func (g *GridSpec) Positions() (bottoms, tops, lefts, rights []float64) {
	p := g.SubplotParams()
	tops, bottoms = spans(p.Top-p.Bottom, p.HSpace, g.heightRatios)
	for i := range tops {
		tops[i], bottoms[i] = p.Top-tops[i], p.Top-bottoms[i]
	}
	lefts, rights = spans(p.Right-p.Left, p.WSpace, g.widthRatios)
	for i := range lefts {
		lefts[i], rights[i] = p.Left+lefts[i], p.Left+rights[i]
	}
	return bottoms, tops, lefts, rights
}

// spans lays out n cells with relative sizes along a line of length total.
// Cells are separated by space times the average cell size. It returns the
// start and end offset of each cell.
func spans(total, space float64, ratios []float64) (starts, ends []float64) {
	n := len(ratios)
	cell := total / (float64(n) + space*float64(n-1))
	sep := space * cell
	var sum float64
	for _, r := range ratios {
		sum += r
	}
	norm := cell * float64(n) / sum

	starts = make([]float64, n)
	ends = make([]float64, n)
	var pos float64
	for i, r := range ratios {
		if i > 0 {
			pos += sep
		}
		starts[i] = pos
		pos += r * norm
		ends[i] = pos
	}
	return starts, ends
}

func ones(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 1
	}
	return out
}

// Cell is one cell of a grid.
type Cell struct {
	gs       *GridSpec
	Row, Col int
}

// GridSpec returns the grid the cell belongs to.
func (c Cell) GridSpec() *GridSpec { return c.gs }

// Box returns the cell area in figure coordinates.
func (c Cell) Box() geom.Box {
	bottoms, tops, lefts, rights := c.gs.Positions()
	return geom.Box{X0: lefts[c.Col], Y0: bottoms[c.Row], X1: rights[c.Col], Y1: tops[c.Row]}
}

// FirstRow reports whether the cell is in the top row.
func (c Cell) FirstRow() bool { return c.Row == 0 }

// LastRow reports whether the cell is in the bottom row.
func (c Cell) LastRow() bool { return c.Row == c.gs.nrow-1 }

// FirstCol reports whether the cell is in the left column.
func (c Cell) FirstCol() bool { return c.Col == 0 }

// LastCol reports whether the cell is in the right column.
func (c Cell) LastCol() bool { return c.Col == c.gs.ncol-1 }
