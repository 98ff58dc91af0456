package sink

import (
	"bytes"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"

	"github.com/matzehuels/ggframe/pkg/errors"
	"github.com/matzehuels/ggframe/pkg/fonts"
	"github.com/matzehuels/ggframe/pkg/render"
	"github.com/matzehuels/ggframe/pkg/scene"
)

// RenderPNG rasterizes f at the configured DPI times the scale.
func RenderPNG(f *scene.Figure, opts ...Option) ([]byte, error) {
	if f == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nothing to render")
	}
	o := newOptions(opts)
	w, h := render.Size(f)
	k := o.cfg.DPI() * o.scale / render.PointsPerInch

	c := &pngCanvas{
		dc:    gg.NewContext(int(math.Round(w*k)), int(math.Round(h*k))),
		k:     k,
		dpi:   o.cfg.DPI() * o.scale,
		faces: map[faceKey]font.Face{},
	}
	defer c.close()

	render.Draw(c, f, o.cfg)
	if c.err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, c.err, "render png")
	}

	var buf bytes.Buffer
	if err := c.dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

type faceKey struct {
	family string
	size   float64
}

// pngCanvas draws in pixels; k converts points to pixels.
type pngCanvas struct {
	dc    *gg.Context
	k     float64
	dpi   float64
	faces map[faceKey]font.Face
	err   error
}

func (c *pngCanvas) Rect(x, y, w, h float64, fill, stroke color.Color) {
	c.dc.DrawRectangle(x*c.k, y*c.k, w*c.k, h*c.k)
	if fill != nil {
		c.dc.SetColor(fill)
		c.dc.FillPreserve()
	}
	if stroke != nil {
		c.dc.SetColor(stroke)
		c.dc.SetLineWidth(c.k)
		c.dc.StrokePreserve()
	}
	c.dc.ClearPath()
}

func (c *pngCanvas) Line(x1, y1, x2, y2 float64, stroke color.Color, width float64) {
	if stroke == nil {
		return
	}
	c.dc.SetColor(stroke)
	c.dc.SetLineWidth(width * c.k)
	c.dc.DrawLine(x1*c.k, y1*c.k, x2*c.k, y2*c.k)
	c.dc.Stroke()
}

func (c *pngCanvas) Text(s string, cx, cy float64, st render.TextStyle) {
	if st.Color == nil {
		return
	}
	face, err := c.face(st.Family, st.Size)
	if err != nil {
		if c.err == nil {
			c.err = err
		}
		return
	}
	x, y := cx*c.k, cy*c.k
	c.dc.SetFontFace(face)
	c.dc.SetColor(st.Color)
	c.dc.Push()
	if st.Rotation != 0 {
		c.dc.RotateAbout(gg.Radians(-st.Rotation), x, y)
	}
	c.dc.DrawStringAnchored(s, x, y, 0.5, 0.35)
	c.dc.Pop()
}

func (c *pngCanvas) Begin(string) {}

func (c *pngCanvas) End() {}

func (c *pngCanvas) face(family string, size float64) (font.Face, error) {
	key := faceKey{family, size}
	if f, ok := c.faces[key]; ok {
		return f, nil
	}
	ft, err := fonts.Parse(family)
	if err != nil {
		return nil, err
	}
	f, err := opentype.NewFace(ft, &opentype.FaceOptions{Size: size, DPI: c.dpi, Hinting: font.HintingFull})
	if err != nil {
		return nil, err
	}
	c.faces[key] = f
	return f, nil
}

func (c *pngCanvas) close() {
	for _, f := range c.faces {
		f.Close()
	}
}
