// Package scene holds the measured artifacts of a figure.
//
// [Build] measures every piece of text and guide of a figure and places
// the panels on their provisional grids. The layout engine then moves the
// artifacts to their final positions. All boxes are in figure fractions
// with the origin at the bottom left.
package scene

import (
	"github.com/matzehuels/ggframe/pkg/figure"
	"github.com/matzehuels/ggframe/pkg/geom"
	"github.com/matzehuels/ggframe/pkg/gridspec"
	"github.com/matzehuels/ggframe/pkg/theme"
)

// Text is a measured piece of text. The size of Box is the measured
// extent; its position is set by layout.
type Text struct {
	Name    string        `json:"name"`
	Content string        `json:"content"`
	Style   theme.Element `json:"-"`
	Box     geom.Box      `json:"box"`
}

// Width returns the width of the text in figure fractions.
func (t *Text) Width() float64 { return t.Box.Width() }

// Height returns the height of the text in figure fractions.
func (t *Text) Height() float64 { return t.Box.Height() }

// Bounds returns the box of the text.
func (t *Text) Bounds() geom.Box { return t.Box }

// MoveTo places the bottom left corner of the text at (x, y).
func (t *Text) MoveTo(x, y float64) {
	t.Box = geom.FromSize(x, y, t.Width(), t.Height())
}

// SetX moves the text horizontally so its left edge is at x.
func (t *Text) SetX(x float64) { t.MoveTo(x, t.Box.Y0) }

// SetY moves the text vertically so its bottom edge is at y.
func (t *Text) SetY(y float64) { t.MoveTo(t.Box.X0, y) }

// Tick is one tick mark of a panel axis and its label.
type Tick struct {
	Pos    float64 `json:"pos"`             // fraction along the panel
	Label  *Text   `json:"label,omitempty"` // nil when axis text is blank or not drawn
	Length float64 `json:"length"`          // figure fractions, 0 when ticks are blank
}

// Strip is a facet label drawn along one side of a panel.
type Strip struct {
	Label      *Text    `json:"label"`
	Position   string   `json:"position"` // top or right
	Align      float64  `json:"align"`
	Thickness  float64  `json:"thickness"` // label plus margins across the panel edge
	Background geom.Box `json:"background"`
	// Expand scales the background across the panel edge so all strips
	// on a side have the same size.
	Expand float64 `json:"expand"`
}

// Bounds returns the background box of the strip.
func (s *Strip) Bounds() geom.Box { return s.Background }

// Panel is one panel of a plot.
type Panel struct {
	Index  int           `json:"index"`
	Row    int           `json:"row"`
	Col    int           `json:"col"`
	Cell   gridspec.Cell `json:"-"`
	Box    geom.Box      `json:"box"`
	XTicks []Tick        `json:"x_ticks,omitempty"`
	YTicks []Tick        `json:"y_ticks,omitempty"`
	StripX *Strip        `json:"strip_x,omitempty"`
	StripY *Strip        `json:"strip_y,omitempty"`
	ShowX  bool          `json:"show_x"` // axis text and ticks below the panel
	ShowY  bool          `json:"show_y"` // axis text and ticks left of the panel
}

// Bounds returns the box of the panel.
func (p *Panel) Bounds() geom.Box { return p.Box }

// Item is a node of the scene: a *Plot or a *Composition.
type Item interface {
	sceneItem()
}

func (*Plot) sceneItem()        {}
func (*Composition) sceneItem() {}

// Plot is a measured plot.
type Plot struct {
	Name   string       `json:"name"`
	Source *figure.Plot `json:"-"`
	Theme  *theme.Theme `json:"-"`
	Spacer bool         `json:"spacer,omitempty"`
	Facet  figure.Facet `json:"-"`
	NRow   int          `json:"nrow"`
	NCol   int          `json:"ncol"`
	W      float64      `json:"-"` // figure width, inches
	H      float64      `json:"-"` // figure height, inches

	// Frame is the 1x1 grid the whole plot occupies. Panels is nested in
	// its only cell.
	Frame  *gridspec.GridSpec `json:"-"`
	Panels *gridspec.GridSpec `json:"-"`

	Title      *Text   `json:"title,omitempty"`
	Subtitle   *Text   `json:"subtitle,omitempty"`
	Caption    *Text   `json:"caption,omitempty"`
	Tag        *Text   `json:"tag,omitempty"`
	AxisTitleX *Text   `json:"axis_title_x,omitempty"`
	AxisTitleY *Text   `json:"axis_title_y,omitempty"`
	Legend     *Legend `json:"legend,omitempty"`

	PanelList []*Panel `json:"panels"`
}

// Bounds returns the area of the whole plot.
func (p *Plot) Bounds() geom.Box { return p.Frame.Box() }

// StripsX returns the x strips of all panels.
func (p *Plot) StripsX() []*Strip {
	var out []*Strip
	for _, pn := range p.PanelList {
		if pn.StripX != nil {
			out = append(out, pn.StripX)
		}
	}
	return out
}

// StripsY returns the y strips of all panels.
func (p *Plot) StripsY() []*Strip {
	var out []*Strip
	for _, pn := range p.PanelList {
		if pn.StripY != nil {
			out = append(out, pn.StripY)
		}
	}
	return out
}

// Texts returns every text of the plot that is drawn, tick labels and
// strip labels included.
func (p *Plot) Texts() []*Text {
	var out []*Text
	for _, t := range []*Text{p.Title, p.Subtitle, p.Caption, p.Tag, p.AxisTitleX, p.AxisTitleY} {
		if t != nil {
			out = append(out, t)
		}
	}
	for _, pn := range p.PanelList {
		for _, tk := range append(append([]Tick(nil), pn.XTicks...), pn.YTicks...) {
			if tk.Label != nil {
				out = append(out, tk.Label)
			}
		}
		for _, s := range []*Strip{pn.StripX, pn.StripY} {
			if s != nil {
				out = append(out, s.Label)
			}
		}
	}
	if p.Legend != nil {
		out = append(out, p.Legend.Texts()...)
	}
	return out
}

// Composition is a measured composition.
type Composition struct {
	Source *figure.Composition `json:"-"`
	Kind   figure.Kind         `json:"kind"`
	Layout figure.Layout       `json:"layout"`
	Theme  *theme.Theme        `json:"-"`

	// Grid holds the items; Items[i] is placed in Grid.Cells()[i].
	Grid  *gridspec.GridSpec `json:"-"`
	Items []Item             `json:"-"`

	// Annotation texts, set on the top level composition only.
	Title    *Text `json:"title,omitempty"`
	Subtitle *Text `json:"subtitle,omitempty"`
	Caption  *Text `json:"caption,omitempty"`
}

// Plots returns the plots of the composition in depth-first order.
func (c *Composition) Plots() []*Plot {
	var out []*Plot
	for _, it := range c.Items {
		switch v := it.(type) {
		case *Plot:
			out = append(out, v)
		case *Composition:
			out = append(out, v.Plots()...)
		}
	}
	return out
}

// Figure is the measured figure.
type Figure struct {
	Name   string  `json:"name"`
	Width  float64 `json:"width"`  // inches
	Height float64 `json:"height"` // inches
	DPI    float64 `json:"dpi"`
	Root   Item    `json:"-"`
	Plots  []*Plot `json:"plots"`
}

// Composition returns the root composition, or nil for a single plot.
func (f *Figure) Composition() *Composition {
	c, _ := f.Root.(*Composition)
	return c
}

// Texts returns every drawn text of the figure.
func (f *Figure) Texts() []*Text {
	var out []*Text
	if c := f.Composition(); c != nil {
		for _, t := range []*Text{c.Title, c.Subtitle, c.Caption} {
			if t != nil {
				out = append(out, t)
			}
		}
	}
	for _, p := range f.Plots {
		out = append(out, p.Texts()...)
	}
	return out
}
