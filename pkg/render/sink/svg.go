package sink

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/ggframe/pkg/errors"
	"github.com/matzehuels/ggframe/pkg/fonts"
	"github.com/matzehuels/ggframe/pkg/render"
	"github.com/matzehuels/ggframe/pkg/scene"
)

// svgUnits is the number of viewBox units per point. svgo takes integer
// coordinates, so drawing happens on a finer grid than the page.
const svgUnits = 10

// RenderSVG renders f as an SVG document.
func RenderSVG(f *scene.Figure, opts ...Option) ([]byte, error) {
	if f == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nothing to render")
	}
	o := newOptions(opts)
	w, h := render.Size(f)

	var buf bytes.Buffer
	s := svg.New(&buf)
	s.Start(iround(w), iround(h),
		fmt.Sprintf(`viewBox="0 0 %d %d"`, iround(w*svgUnits), iround(h*svgUnits)),
		fmt.Sprintf(`font-family="%s"`, fonts.FallbackFontFamily))
	if f.Name != "" {
		s.Title(f.Name)
	}
	if o.embedFont {
		family := o.cfg.FontFamily()
		s.Style("text/css", fmt.Sprintf(
			"@font-face { font-family: '%s'; src: url(data:font/ttf;base64,%s) format('truetype'); }",
			family, fonts.TTFBase64(family)))
	}
	render.Draw(&svgCanvas{s: s}, f, o.cfg)
	s.End()
	return buf.Bytes(), nil
}

type svgCanvas struct {
	s *svg.SVG
}

func (c *svgCanvas) Rect(x, y, w, h float64, fill, stroke color.Color) {
	if fill == nil && stroke == nil {
		return
	}
	c.s.Rect(u(x), u(y), u(w), u(h), paint(fill, stroke))
}

func (c *svgCanvas) Line(x1, y1, x2, y2 float64, stroke color.Color, width float64) {
	if stroke == nil {
		return
	}
	c.s.Line(u(x1), u(y1), u(x2), u(y2),
		fmt.Sprintf("stroke:%s;stroke-width:%d", render.Hex(stroke), max(u(width), 1)))
}

func (c *svgCanvas) Text(str string, cx, cy float64, st render.TextStyle) {
	x, y := u(cx), u(cy)
	attrs := []string{
		`text-anchor="middle"`,
		`dominant-baseline="central"`,
		fmt.Sprintf(`font-size="%d"`, u(st.Size)),
		fmt.Sprintf(`fill="%s"`, render.Hex(st.Color)),
	}
	if st.Family != "" {
		attrs = append(attrs, fmt.Sprintf(`font-family="'%s'"`, st.Family))
	}
	if st.Rotation != 0 {
		attrs = append(attrs, fmt.Sprintf(`transform="rotate(%g %d %d)"`, -st.Rotation, x, y))
	}
	c.s.Text(x, y, str, attrs...)
}

func (c *svgCanvas) Begin(id string) { c.s.Group(fmt.Sprintf(`id="%s"`, id)) }

func (c *svgCanvas) End() { c.s.Gend() }

func paint(fill, stroke color.Color) string {
	if stroke == nil {
		return "fill:" + render.Hex(fill)
	}
	return fmt.Sprintf("fill:%s;stroke:%s;stroke-width:%d", render.Hex(fill), render.Hex(stroke), svgUnits)
}

// u converts points to viewBox units.
func u(v float64) int { return iround(v * svgUnits) }

func iround(v float64) int { return int(math.Round(v)) }
