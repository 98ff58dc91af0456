package sink

import (
	"bytes"
	"image/color"
	"strings"

	"codeberg.org/go-pdf/fpdf"

	"github.com/matzehuels/ggframe/pkg/errors"
	"github.com/matzehuels/ggframe/pkg/fonts"
	"github.com/matzehuels/ggframe/pkg/render"
	"github.com/matzehuels/ggframe/pkg/scene"
)

// RenderPDF renders f as a single page PDF the size of the figure.
func RenderPDF(f *scene.Figure, opts ...Option) ([]byte, error) {
	if f == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nothing to render")
	}
	o := newOptions(opts)
	w, h := render.Size(f)

	orientation := "P"
	if w > h {
		orientation = "L"
	}
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: orientation,
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: w, Ht: h},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	if f.Name != "" {
		pdf.SetTitle(f.Name, true)
	}
	for _, family := range fonts.Families() {
		pdf.AddUTF8FontFromBytes(pdfFamily(family), "", fonts.TTF(family))
	}
	pdf.AddPage()

	render.Draw(&pdfCanvas{pdf: pdf}, f, o.cfg)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render pdf")
	}
	return buf.Bytes(), nil
}

// pdfFamily maps a font family to a name fpdf accepts.
func pdfFamily(family string) string {
	for _, f := range fonts.Families() {
		if f == family {
			return strings.ToLower(strings.ReplaceAll(family, " ", ""))
		}
	}
	return pdfFamily(fonts.FontFamily)
}

type pdfCanvas struct {
	pdf *fpdf.Fpdf
}

func (c *pdfCanvas) Rect(x, y, w, h float64, fill, stroke color.Color) {
	style := ""
	if fill != nil {
		r, g, b, _ := render.RGB(fill)
		c.pdf.SetFillColor(r, g, b)
		style += "F"
	}
	if stroke != nil {
		r, g, b, _ := render.RGB(stroke)
		c.pdf.SetDrawColor(r, g, b)
		c.pdf.SetLineWidth(1)
		style += "D"
	}
	if style == "" {
		return
	}
	c.pdf.Rect(x, y, w, h, style)
}

func (c *pdfCanvas) Line(x1, y1, x2, y2 float64, stroke color.Color, width float64) {
	if stroke == nil {
		return
	}
	r, g, b, _ := render.RGB(stroke)
	c.pdf.SetDrawColor(r, g, b)
	c.pdf.SetLineWidth(width)
	c.pdf.Line(x1, y1, x2, y2)
}

func (c *pdfCanvas) Text(s string, cx, cy float64, st render.TextStyle) {
	if st.Color == nil {
		return
	}
	r, g, b, _ := render.RGB(st.Color)
	c.pdf.SetTextColor(r, g, b)
	c.pdf.SetFont(pdfFamily(st.Family), "", st.Size)
	w := c.pdf.GetStringWidth(s)

	if st.Rotation != 0 {
		c.pdf.TransformBegin()
		c.pdf.TransformRotate(st.Rotation, cx, cy)
	}
	// The baseline sits 0.35 em below the center.
	c.pdf.Text(cx-w/2, cy+st.Size*0.35, s)
	if st.Rotation != 0 {
		c.pdf.TransformEnd()
	}
}

func (c *pdfCanvas) Begin(string) {}

func (c *pdfCanvas) End() {}
