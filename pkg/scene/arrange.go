package scene

import "github.com/matzehuels/ggframe/pkg/geom"

// Arrange positions the panels of p on its panel grid, along with the
// tick labels and strips attached to them. It runs once on the
// provisional grid during measurement and again after layout.
func (p *Plot) Arrange() {
	xva := p.Theme.VA("axis_text_x", "top")
	yha := p.Theme.HA("axis_text_y", "right")
	mx := p.Theme.Margin("axis_text_x")
	my := p.Theme.Margin("axis_text_y")

	for _, pn := range p.PanelList {
		pn.Box = pn.Cell.Box()
		pn.arrangeXText(xva, mx.T)
		pn.arrangeYText(yha, my.R)
		pn.arrangeStrips()
	}
}

// arrangeXText centers each x label on its tick and justifies it
// vertically within the row of the tallest label below the panel.
func (pn *Panel) arrangeXText(va, margin float64) {
	rowH := pn.XTextHeight()
	for _, tk := range pn.XTicks {
		if tk.Label == nil {
			continue
		}
		top := pn.Box.Y0 - tk.Length - margin
		x := pn.Box.X0 + tk.Pos*pn.Box.Width() - tk.Label.Width()/2
		y := geom.RelPosition(va, tk.Label.Height(), top-rowH, top)
		tk.Label.MoveTo(x, y)
	}
}

// arrangeYText centers each y label on its tick and justifies it
// horizontally within the column of the widest label left of the panel.
func (pn *Panel) arrangeYText(ha, margin float64) {
	colW := pn.YTextWidth()
	for _, tk := range pn.YTicks {
		if tk.Label == nil {
			continue
		}
		right := pn.Box.X0 - tk.Length - margin
		x := geom.RelPosition(ha, tk.Label.Width(), right-colW, right)
		y := pn.Box.Y0 + tk.Pos*pn.Box.Height() - tk.Label.Height()/2
		tk.Label.MoveTo(x, y)
	}
}

func (pn *Panel) arrangeStrips() {
	if s := pn.StripX; s != nil {
		h := s.Thickness * s.Expand
		y0 := pn.Box.Y1 + s.Align*h
		s.Background = geom.Box{X0: pn.Box.X0, Y0: y0, X1: pn.Box.X1, Y1: y0 + h}
		center(s.Label, s.Background)
	}
	if s := pn.StripY; s != nil {
		w := s.Thickness * s.Expand
		x0 := pn.Box.X1 + s.Align*w
		s.Background = geom.Box{X0: x0, Y0: pn.Box.Y0, X1: x0 + w, Y1: pn.Box.Y1}
		center(s.Label, s.Background)
	}
}

func center(t *Text, b geom.Box) {
	t.MoveTo(b.CenterX()-t.Width()/2, b.CenterY()-t.Height()/2)
}

// XTextHeight returns the height of the tallest x tick label.
func (pn *Panel) XTextHeight() float64 {
	var h float64
	for _, tk := range pn.XTicks {
		if tk.Label != nil {
			h = max(h, tk.Label.Height())
		}
	}
	return h
}

// YTextWidth returns the width of the widest y tick label.
func (pn *Panel) YTextWidth() float64 {
	var w float64
	for _, tk := range pn.YTicks {
		if tk.Label != nil {
			w = max(w, tk.Label.Width())
		}
	}
	return w
}

// XTickLength returns the length of the longest x tick mark.
func (pn *Panel) XTickLength() float64 {
	var l float64
	for _, tk := range pn.XTicks {
		l = max(l, tk.Length)
	}
	return l
}

// YTickLength returns the length of the longest y tick mark.
func (pn *Panel) YTickLength() float64 {
	var l float64
	for _, tk := range pn.YTicks {
		l = max(l, tk.Length)
	}
	return l
}
