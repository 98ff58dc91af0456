package render

import (
	"image/color"
	"math"
	"strings"

	"github.com/matzehuels/ggframe/pkg/backend"
	"github.com/matzehuels/ggframe/pkg/geom"
	"github.com/matzehuels/ggframe/pkg/scene"
	"github.com/matzehuels/ggframe/pkg/theme"
)

// PointsPerInch converts figure inches to points.
const PointsPerInch = 72

// LineSpacing is the distance between lines of text as a multiple of
// the font size. It matches the text measurer.
const LineSpacing = 1.2

// TextStyle is how a line of text is drawn.
type TextStyle struct {
	Family   string
	Size     float64 // points
	Color    color.Color
	Rotation float64 // degrees, counter clockwise
}

// Canvas receives drawing calls. Coordinates are points with the origin
// at the top left. A nil color means nothing is painted.
type Canvas interface {
	Rect(x, y, w, h float64, fill, stroke color.Color)
	Line(x1, y1, x2, y2 float64, stroke color.Color, width float64)
	// Text draws one line of text centered on (cx, cy).
	Text(s string, cx, cy float64, st TextStyle)
	Begin(id string)
	End()
}

// Size returns the page size of f in points.
func Size(f *scene.Figure) (w, h float64) {
	return f.Width * PointsPerInch, f.Height * PointsPerInch
}

// Draw draws f on c.
func Draw(c Canvas, f *scene.Figure, cfg backend.Config) {
	w, h := Size(f)
	d := drawer{c: c, w: w, h: h, cfg: cfg}
	c.Rect(0, 0, w, h, ParseColor(cfg.Background()), nil)

	for _, p := range f.Plots {
		d.plot(p)
	}
	if comp := f.Composition(); comp != nil {
		c.Begin("annotation")
		for _, t := range []*scene.Text{comp.Title, comp.Subtitle, comp.Caption} {
			d.text(t)
		}
		c.End()
	}
}

type drawer struct {
	c    Canvas
	w, h float64
	cfg  backend.Config
}

// box converts a figure box to a top left origin rectangle in points.
func (d drawer) box(b geom.Box) (x, y, w, h float64) {
	return b.X0 * d.w, (1 - b.Y1) * d.h, b.Width() * d.w, b.Height() * d.h
}

func (d drawer) pt(fx, fy float64) (x, y float64) {
	return fx * d.w, (1 - fy) * d.h
}

// rect draws b styled as the rectangle element name unless it is blank.
func (d drawer) rect(th *theme.Theme, name string, b geom.Box, def string) {
	if th.IsBlank(name) {
		return
	}
	e := th.Text(name)
	x, y, w, h := d.box(b)
	d.c.Rect(x, y, w, h, ParseColor(e.FillOr(def)), ParseColor(e.ColorOr("none")))
}

func (d drawer) plot(p *scene.Plot) {
	th := p.Theme
	d.c.Begin("plot-" + p.Name)
	defer d.c.End()

	d.rect(th, "plot_background", p.Frame.Box(), d.cfg.Background())
	for _, pn := range p.PanelList {
		d.panel(th, pn)
	}
	if l := p.Legend; l != nil {
		d.legend(th, l)
	}
	for _, t := range []*scene.Text{p.Title, p.Subtitle, p.Caption, p.Tag, p.AxisTitleX, p.AxisTitleY} {
		d.text(t)
	}
}

func (d drawer) panel(th *theme.Theme, pn *scene.Panel) {
	d.rect(th, "panel_background", pn.Box, "none")
	d.rect(th, "panel_border", pn.Box, "none")

	xc := ParseColor(th.Text("axis_ticks_major_x").ColorOr(d.cfg.Foreground()))
	for _, tk := range pn.XTicks {
		if tk.Length > 0 {
			x := pn.Box.X0 + tk.Pos*pn.Box.Width()
			x1, y1 := d.pt(x, pn.Box.Y0)
			x2, y2 := d.pt(x, pn.Box.Y0-tk.Length)
			d.c.Line(x1, y1, x2, y2, xc, 0.5)
		}
		d.text(tk.Label)
	}
	yc := ParseColor(th.Text("axis_ticks_major_y").ColorOr(d.cfg.Foreground()))
	for _, tk := range pn.YTicks {
		if tk.Length > 0 {
			y := pn.Box.Y0 + tk.Pos*pn.Box.Height()
			x1, y1 := d.pt(pn.Box.X0, y)
			x2, y2 := d.pt(pn.Box.X0-tk.Length, y)
			d.c.Line(x1, y1, x2, y2, yc, 0.5)
		}
		d.text(tk.Label)
	}
	if s := pn.StripX; s != nil {
		d.rect(th, "strip_background_x", s.Background, "none")
		d.text(s.Label)
	}
	if s := pn.StripY; s != nil {
		d.rect(th, "strip_background_y", s.Background, "none")
		d.text(s.Label)
	}
}

func (d drawer) legend(th *theme.Theme, l *scene.Legend) {
	d.c.Begin("legend")
	defer d.c.End()

	d.rect(th, "legend_background", l.Box, "none")
	accent := ParseColor(d.cfg.Accent())
	for _, k := range l.Keys {
		d.rect(th, "legend_key", k.Key, "none")
		// The glyph is a swatch half the size of the key.
		x, y, w, h := d.box(k.Key)
		d.c.Rect(x+w/4, y+h/4, w/2, h/2, accent, nil)
		d.text(k.Label)
	}
	d.text(l.Title)
}

// text draws t centered in its box. Lines stack along the rotated
// vertical axis.
func (d drawer) text(t *scene.Text) {
	if t == nil || t.Content == "" {
		return
	}
	st := TextStyle{
		Family:   d.cfg.FontFamily(),
		Size:     t.Style.FontSize(11),
		Color:    ParseColor(t.Style.ColorOr(d.cfg.Foreground())),
		Rotation: t.Style.Angle(),
	}
	if t.Style.Family != nil {
		st.Family = *t.Style.Family
	}
	cx, cy := d.pt(t.Box.CenterX(), t.Box.CenterY())

	lines := strings.Split(t.Content, "\n")
	rad := st.Rotation * math.Pi / 180
	// Down the page in the text's own frame.
	dx, dy := math.Sin(rad), math.Cos(rad)
	step := st.Size * LineSpacing
	for i, line := range lines {
		off := (float64(i) - float64(len(lines)-1)/2) * step
		d.c.Text(line, cx+off*dx, cy+off*dy, st)
	}
}
