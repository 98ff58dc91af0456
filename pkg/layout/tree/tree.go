// Package tree aligns and resizes the plots of a composition.
//
// A composition becomes a tree of nodes. Leaves hold the side spaces of
// one plot; inner nodes hold the grid of a sub-composition. [Tree.Harmonise]
// lines up the axis titles, tags and panel edges of neighbouring plots by
// growing their alignment slots, then sets the width and height ratios of
// every composition grid so panels get their declared relative sizes.
package tree

import (
	"github.com/matzehuels/ggframe/pkg/figure"
	"github.com/matzehuels/ggframe/pkg/gridspec"
	"github.com/matzehuels/ggframe/pkg/layout/space"
	"github.com/matzehuels/ggframe/pkg/scene"
)

// Kind is the arrangement of a tree.
type Kind string

// Kinds.
const (
	Columns Kind = "columns" // side by side
	Rows    Kind = "rows"    // stacked
	Grid    Kind = "grid"    // wrapped
)

func kindOf(k figure.Kind) Kind {
	switch k {
	case figure.Beside:
		return Columns
	case figure.Stack:
		return Rows
	default:
		return Grid
	}
}

// Node is a *Leaf or a *Tree.
type Node interface {
	PanelWidth() float64
	PanelHeight() float64
	PlotWidth() float64
	PlotHeight() float64

	// boundary returns the spaces along one outer side of the node.
	boundary(side space.Side) []*space.Space
}

// Leaf is a single plot.
type Leaf struct {
	Spaces *space.PlotSpaces
}

// PanelWidth returns the width of the plot's panel area.
func (l *Leaf) PanelWidth() float64 { return l.Spaces.PanelWidth() }

// PanelHeight returns the height of the plot's panel area.
func (l *Leaf) PanelHeight() float64 { return l.Spaces.PanelHeight() }

// PlotWidth returns the width of the plot.
func (l *Leaf) PlotWidth() float64 { return l.Spaces.PlotWidth() }

// PlotHeight returns the height of the plot.
func (l *Leaf) PlotHeight() float64 { return l.Spaces.PlotHeight() }

func (l *Leaf) boundary(side space.Side) []*space.Space {
	return []*space.Space{l.Spaces.Side(side)}
}

// Tree is a composition. Cells of the grid without an item are nil.
type Tree struct {
	Kind        Kind
	Composition *scene.Composition
	GridSpec    *gridspec.GridSpec
	NRow, NCol  int
	cells       []Node
}

// Lookup returns the spaces of a plot.
type Lookup func(*scene.Plot) *space.PlotSpaces

// Build creates the tree of c.
func Build(c *scene.Composition, lookup Lookup) *Tree {
	t := &Tree{
		Kind:        kindOf(c.Kind),
		Composition: c,
		GridSpec:    c.Grid,
		NRow:        c.Grid.NRow(),
		NCol:        c.Grid.NCol(),
	}
	t.cells = make([]Node, t.NRow*t.NCol)
	cells := c.Grid.Cells()
	for i, it := range c.Items {
		var n Node
		switch v := it.(type) {
		case *scene.Plot:
			n = &Leaf{Spaces: lookup(v)}
		case *scene.Composition:
			n = Build(v, lookup)
		}
		t.cells[cells[i].Row*t.NCol+cells[i].Col] = n
	}
	return t
}

// At returns the node in row r and column c, or nil.
func (t *Tree) At(r, c int) Node { return t.cells[r*t.NCol+c] }

// Row returns the nodes of row r, nil for empty cells.
func (t *Tree) Row(r int) []Node { return t.cells[r*t.NCol : (r+1)*t.NCol] }

// Col returns the nodes of column c, nil for empty cells.
func (t *Tree) Col(c int) []Node {
	out := make([]Node, t.NRow)
	for r := range out {
		out[r] = t.At(r, c)
	}
	return out
}

// Children returns the non-empty nodes in row-major order.
func (t *Tree) Children() []Node {
	var out []Node
	for _, n := range t.cells {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

// SubTrees returns the direct sub-compositions.
func (t *Tree) SubTrees() []*Tree {
	var out []*Tree
	for _, n := range t.cells {
		if sub, ok := n.(*Tree); ok {
			out = append(out, sub)
		}
	}
	return out
}

// Leaves returns every plot below t in depth-first order.
func (t *Tree) Leaves() []*Leaf {
	var out []*Leaf
	for _, n := range t.Children() {
		switch v := n.(type) {
		case *Leaf:
			out = append(out, v)
		case *Tree:
			out = append(out, v.Leaves()...)
		}
	}
	return out
}

func spacesOf(nodes []Node, side space.Side) []*space.Space {
	var out []*space.Space
	for _, n := range nodes {
		if n != nil {
			out = append(out, n.boundary(side)...)
		}
	}
	return out
}

func (t *Tree) boundary(side space.Side) []*space.Space {
	switch side {
	case space.Bottom:
		return spacesOf(t.Row(t.NRow-1), side)
	case space.Top:
		return spacesOf(t.Row(0), side)
	case space.Left:
		return spacesOf(t.Col(0), side)
	default:
		return spacesOf(t.Col(t.NCol-1), side)
	}
}

// sideGroups returns the spaces of side per non-empty row (top and
// bottom) or column (left and right).
func (t *Tree) sideGroups(side space.Side) [][]*space.Space {
	var out [][]*space.Space
	if side == space.Top || side == space.Bottom {
		for r := 0; r < t.NRow; r++ {
			if s := spacesOf(t.Row(r), side); len(s) > 0 {
				out = append(out, s)
			}
		}
		return out
	}
	for c := 0; c < t.NCol; c++ {
		if s := spacesOf(t.Col(c), side); len(s) > 0 {
			out = append(out, s)
		}
	}
	return out
}

// shares reports whether items of the tree line up along side.
func (t *Tree) shares(side space.Side) bool {
	switch t.Kind {
	case Columns:
		return side == space.Top || side == space.Bottom
	case Rows:
		return side == space.Left || side == space.Right
	}
	return true
}
