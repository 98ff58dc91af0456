// Package space accounts for the room taken up by artifacts on each side
// of a plot's panels.
//
// A [Space] is an ordered ledger of named slots counted from the edge of
// the plot inwards. Slots are filled once while the space is built. After
// that only the alignment slots and plot_margin can grow, which is how the
// composition aligner and the aspect-ratio correction adjust a layout.
//
// Values are figure fractions. Horizontal slots are fractions of the
// figure width and vertical slots fractions of the figure height.
package space

import (
	"fmt"

	"github.com/matzehuels/ggframe/pkg/geom"
)

// Side is one of the four sides of a panel area.
type Side string

// Sides.
const (
	Left   Side = "left"
	Right  Side = "right"
	Top    Side = "top"
	Bottom Side = "bottom"
)

// Sides lists the sides in the order they are built.
var Sides = []Side{Left, Right, Top, Bottom}

// Slots that can grow after a space is sealed.
const (
	PlotMargin         = "plot_margin"
	TagAlignment       = "tag_alignment"
	MarginAlignment    = "margin_alignment"
	AxisTitleAlignment = "axis_title_alignment"
)

// plotSlots is the slot order of each side of a plot, from the figure
// edge inwards.
var plotSlots = map[Side][]string{
	Left: {
		PlotMargin, TagAlignment,
		"plot_tag_margin_left", "plot_tag", "plot_tag_margin_right",
		MarginAlignment,
		"legend", "legend_box_spacing",
		"axis_title_y_margin_left", "axis_title_y", "axis_title_y_margin_right",
		AxisTitleAlignment,
		"axis_text_y_margin_left", "axis_text_y", "axis_text_y_margin_right",
		"axis_ticks_y",
	},
	Right: {
		PlotMargin, TagAlignment,
		"plot_tag_margin_right", "plot_tag", "plot_tag_margin_left",
		MarginAlignment,
		"legend", "legend_box_spacing",
		"strip_text_y_extra_width",
	},
	Top: {
		PlotMargin, TagAlignment,
		"plot_tag_margin_top", "plot_tag", "plot_tag_margin_bottom",
		MarginAlignment,
		"plot_title_margin_top", "plot_title", "plot_title_margin_bottom",
		"plot_subtitle_margin_top", "plot_subtitle", "plot_subtitle_margin_bottom",
		"legend", "legend_box_spacing",
		"strip_text_x_extra_height",
	},
	Bottom: {
		PlotMargin, TagAlignment,
		"plot_tag_margin_bottom", "plot_tag", "plot_tag_margin_top",
		MarginAlignment,
		"plot_caption_margin_bottom", "plot_caption", "plot_caption_margin_top",
		"legend", "legend_box_spacing",
		"axis_title_x_margin_bottom", "axis_title_x", "axis_title_x_margin_top",
		AxisTitleAlignment,
		"axis_text_x_margin_bottom", "axis_text_x", "axis_text_x_margin_top",
		"axis_ticks_x",
	},
}

// compositionSlots is the slot order around the top level composition.
var compositionSlots = map[Side][]string{
	Left:  {PlotMargin},
	Right: {PlotMargin},
	Top: {
		PlotMargin,
		"plot_title_margin_top", "plot_title", "plot_title_margin_bottom",
		"plot_subtitle_margin_top", "plot_subtitle", "plot_subtitle_margin_bottom",
	},
	Bottom: {
		PlotMargin,
		"plot_caption_margin_bottom", "plot_caption", "plot_caption_margin_top",
	},
}

// Space is the ledger of one side.
type Space struct {
	side    Side
	names   []string
	index   map[string]int
	values  []float64
	written []bool
	sealed  bool

	// frame returns the current box of the grid the space belongs to.
	frame func() geom.Box
}

func newSpace(side Side, names []string, frame func() geom.Box) *Space {
	s := &Space{
		side:    side,
		names:   names,
		index:   make(map[string]int, len(names)),
		values:  make([]float64, len(names)),
		written: make([]bool, len(names)),
		frame:   frame,
	}
	for i, n := range names {
		s.index[n] = i
	}
	return s
}

// Side returns the side of the space.
func (s *Space) Side() Side { return s.side }

// Names returns the slot names from the figure edge inwards.
func (s *Space) Names() []string { return s.names }

func (s *Space) pos(name string) int {
	i, ok := s.index[name]
	if !ok {
		panic(fmt.Sprintf("space: %s side has no slot %q", s.side, name))
	}
	return i
}

// Get returns the value of a slot.
func (s *Space) Get(name string) float64 { return s.values[s.pos(name)] }

// set fills a slot while the space is being built.
func (s *Space) set(name string, v float64) {
	i := s.pos(name)
	if s.sealed {
		panic(fmt.Sprintf("space: %s.%s set after construction", s.side, name))
	}
	if s.written[i] {
		panic(fmt.Sprintf("space: %s.%s set twice", s.side, name))
	}
	s.values[i] = v
	s.written[i] = true
}

// grow adds v to one of the slots that may change after construction.
func (s *Space) grow(name string, v float64) {
	switch name {
	case PlotMargin, TagAlignment, MarginAlignment, AxisTitleAlignment:
	default:
		panic(fmt.Sprintf("space: %s.%s cannot grow", s.side, name))
	}
	s.values[s.pos(name)] += v
}

func (s *Space) seal() { s.sealed = true }

// Total returns the sum of all slots.
func (s *Space) Total() float64 {
	var t float64
	for _, v := range s.values {
		t += v
	}
	return t
}

// SumUpto returns the sum of the slots before name.
func (s *Space) SumUpto(name string) float64 {
	var t float64
	for _, v := range s.values[:s.pos(name)] {
		t += v
	}
	return t
}

// SumIncl returns the sum of the slots up to and including name.
func (s *Space) SumIncl(name string) float64 {
	return s.SumUpto(name) + s.Get(name)
}

// Offset returns where the grid of the space sits in the figure. Left
// and bottom offsets are the lower edge of the grid; right and top
// offsets are the distance of the upper edge from 1.
func (s *Space) Offset() float64 {
	b := s.frame()
	switch s.side {
	case Left:
		return b.X0
	case Right:
		return b.X1 - 1
	case Top:
		return b.Y1 - 1
	default:
		return b.Y0
	}
}

// ToFigure converts a value relative to the grid into figure space.
func (s *Space) ToFigure(v float64) float64 { return s.Offset() + v }

// X1 returns the left edge of slot name on a left or right side.
func (s *Space) X1(name string) float64 {
	switch s.side {
	case Left:
		return s.ToFigure(s.SumUpto(name))
	case Right:
		return s.ToFigure(1 - s.SumIncl(name))
	}
	panic(fmt.Sprintf("space: X1 on %s side", s.side))
}

// X2 returns the right edge of slot name on a left or right side.
func (s *Space) X2(name string) float64 {
	switch s.side {
	case Left:
		return s.ToFigure(s.SumIncl(name))
	case Right:
		return s.ToFigure(1 - s.SumUpto(name))
	}
	panic(fmt.Sprintf("space: X2 on %s side", s.side))
}

// Y1 returns the bottom edge of slot name on a top or bottom side.
func (s *Space) Y1(name string) float64 {
	switch s.side {
	case Top:
		return s.ToFigure(1 - s.SumIncl(name))
	case Bottom:
		return s.ToFigure(s.SumUpto(name))
	}
	panic(fmt.Sprintf("space: Y1 on %s side", s.side))
}

// Y2 returns the top edge of slot name on a top or bottom side.
func (s *Space) Y2(name string) float64 {
	switch s.side {
	case Top:
		return s.ToFigure(1 - s.SumUpto(name))
	case Bottom:
		return s.ToFigure(s.SumIncl(name))
	}
	panic(fmt.Sprintf("space: Y2 on %s side", s.side))
}

// Edge returns the coordinate of the side of slot name that faces the
// figure edge.
func (s *Space) Edge(name string) float64 {
	switch s.side {
	case Left:
		return s.X1(name)
	case Right:
		return s.X2(name)
	case Top:
		return s.Y2(name)
	default:
		return s.Y1(name)
	}
}

// PanelEdgeRelative returns the panel edge relative to the grid: the
// value used for the grid params.
func (s *Space) PanelEdgeRelative() float64 {
	switch s.side {
	case Left, Bottom:
		return s.Total()
	default:
		return 1 - s.Total()
	}
}

// PanelEdge returns the panel edge on this side in figure space.
func (s *Space) PanelEdge() float64 { return s.ToFigure(s.PanelEdgeRelative()) }

// PlotEdge returns the outermost coordinate artifacts may occupy, just
// inside the plot margin and tag.
func (s *Space) PlotEdge() float64 { return s.Edge("legend") }

// AxisTitleClearance returns the distance between the axis title and the
// panels. Only left and bottom sides have axis titles.
func (s *Space) AxisTitleClearance() float64 {
	return s.Total() - s.SumUpto(AxisTitleAlignment)
}

// TagSize returns the tag extent with its margins across this side.
func (s *Space) TagSize() float64 {
	var t float64
	for i, n := range s.names {
		if n == "plot_tag" || n == "plot_tag_margin_"+string(s.side) || n == "plot_tag_margin_"+string(opposite(s.side)) {
			t += s.values[i]
		}
	}
	return t
}

// AddMarginAlignment grows the margin alignment slot.
func (s *Space) AddMarginAlignment(v float64) { s.grow(MarginAlignment, v) }

// AddAxisTitleAlignment grows the axis title alignment slot.
func (s *Space) AddAxisTitleAlignment(v float64) { s.grow(AxisTitleAlignment, v) }

// AddTagAlignment grows the tag alignment slot.
func (s *Space) AddTagAlignment(v float64) { s.grow(TagAlignment, v) }

func opposite(side Side) Side {
	switch side {
	case Left:
		return Right
	case Right:
		return Left
	case Top:
		return Bottom
	default:
		return Top
	}
}

// Entry is one slot of a space.
type Entry struct {
	Name  string  `json:"name" bson:"name"`
	Value float64 `json:"value" bson:"value"`
}

// Entries returns the slots in order.
func (s *Space) Entries() []Entry {
	out := make([]Entry, len(s.names))
	for i, n := range s.names {
		out[i] = Entry{Name: n, Value: s.values[i]}
	}
	return out
}
