package scene

import "github.com/matzehuels/ggframe/pkg/geom"

// Legend positions.
const (
	LegendRight  = "right"
	LegendLeft   = "left"
	LegendTop    = "top"
	LegendBottom = "bottom"
	LegendInside = "inside"
)

// LegendKey is one entry of a legend: a key glyph and its label.
type LegendKey struct {
	Key   geom.Box `json:"key"`
	Label *Text    `json:"label,omitempty"`
}

// Legend is a measured guide box.
type Legend struct {
	Position string `json:"position"`
	// Justification is the placement along the side for left, right, top
	// and bottom legends.
	Justification float64 `json:"justification"`
	// Anchor is the point of the panel area an inside legend is placed at,
	// and InsideJust the point of the legend placed there.
	Anchor     [2]float64 `json:"anchor,omitempty"`
	InsideJust [2]float64 `json:"inside_justification,omitempty"`

	Title *Text       `json:"title,omitempty"`
	Keys  []LegendKey `json:"keys"`
	Box   geom.Box    `json:"box"`
}

// Bounds returns the box of the legend.
func (l *Legend) Bounds() geom.Box { return l.Box }

// Width returns the legend width in figure fractions.
func (l *Legend) Width() float64 { return l.Box.Width() }

// Height returns the legend height in figure fractions.
func (l *Legend) Height() float64 { return l.Box.Height() }

// MoveTo places the bottom left corner of the legend at (x, y), moving
// everything inside with it.
func (l *Legend) MoveTo(x, y float64) {
	dx, dy := x-l.Box.X0, y-l.Box.Y0
	l.Box = l.Box.Translate(dx, dy)
	if l.Title != nil {
		l.Title.Box = l.Title.Box.Translate(dx, dy)
	}
	for i := range l.Keys {
		l.Keys[i].Key = l.Keys[i].Key.Translate(dx, dy)
		if lb := l.Keys[i].Label; lb != nil {
			lb.Box = lb.Box.Translate(dx, dy)
		}
	}
}

// Anchored places the legend so that its point (ax, ay), given as
// fractions of its size, lands on (x, y).
func (l *Legend) Anchored(x, y, ax, ay float64) {
	l.MoveTo(x-ax*l.Width(), y-ay*l.Height())
}

// Texts returns the title and key labels.
func (l *Legend) Texts() []*Text {
	var out []*Text
	if l.Title != nil {
		out = append(out, l.Title)
	}
	for _, k := range l.Keys {
		if k.Label != nil {
			out = append(out, k.Label)
		}
	}
	return out
}

// Vertical reports whether keys are stacked on top of each other.
func (l *Legend) Vertical() bool {
	return l.Position != LegendTop && l.Position != LegendBottom
}
