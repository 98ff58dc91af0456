package tree

import (
	"gonum.org/v1/gonum/floats"

	"github.com/matzehuels/ggframe/pkg/layout/space"
)

// Harmonise aligns and then resizes the whole tree.
func (t *Tree) Harmonise() {
	t.AlignAxisTitles()
	t.Align()
	t.Resize()
}

// AlignAxisTitles gives the x axis titles of each row and the y axis
// titles of each column the same distance from their panels.
func (t *Tree) AlignAxisTitles() {
	for _, side := range []space.Side{space.Bottom, space.Left} {
		if !t.shares(side) {
			continue
		}
		for _, group := range t.sideGroups(side) {
			raise(group, (*space.Space).AxisTitleClearance, (*space.Space).AddAxisTitleAlignment)
		}
	}
	for _, sub := range t.SubTrees() {
		sub.AlignAxisTitles()
	}
}

// Align lines up the tags and then the panel edges of the tree, then
// recurses into the sub-compositions.
func (t *Tree) Align() {
	t.alignTags()
	t.alignPanels()
	for _, sub := range t.SubTrees() {
		sub.Align()
	}
}

func (t *Tree) alignTags() {
	footprint := func(s *space.Space) float64 { return s.TagSize() + s.Get(space.TagAlignment) }
	for _, side := range space.Sides {
		if !t.shares(side) {
			continue
		}
		for _, group := range t.sideGroups(side) {
			raise(group, footprint, (*space.Space).AddTagAlignment)
		}
	}
}

// alignPanels moves the panel edges of every row and column to the
// innermost edge among them.
func (t *Tree) alignPanels() {
	for _, side := range space.Sides {
		if !t.shares(side) {
			continue
		}
		for _, group := range t.sideGroups(side) {
			edges := make([]float64, len(group))
			for i, s := range group {
				edges[i] = s.PanelEdge()
			}
			switch side {
			case space.Left, space.Bottom:
				hi := floats.Max(edges)
				for i, s := range group {
					s.AddMarginAlignment(hi - edges[i])
				}
			default:
				lo := floats.Min(edges)
				for i, s := range group {
					s.AddMarginAlignment(edges[i] - lo)
				}
			}
		}
	}
}

// raise grows each space of group until measure is the same for all.
func raise(group []*space.Space, measure func(*space.Space) float64, add func(*space.Space, float64)) {
	vals := make([]float64, len(group))
	for i, s := range group {
		vals[i] = measure(s)
	}
	hi := floats.Max(vals)
	for i, s := range group {
		if d := hi - vals[i]; d > 0 {
			add(s, d)
		}
	}
}
