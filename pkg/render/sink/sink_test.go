package sink

import (
	"bytes"
	"context"
	"image/png"
	"strings"
	"testing"

	"github.com/matzehuels/ggframe/pkg/backend"
	"github.com/matzehuels/ggframe/pkg/figure"
	"github.com/matzehuels/ggframe/pkg/layout"
	"github.com/matzehuels/ggframe/pkg/scene"
)

func laidOut(t *testing.T) *scene.Figure {
	t.Helper()
	p := &figure.Plot{
		Name:    "p",
		Title:   "Fuel economy",
		XLabel:  "displ",
		YLabel:  "hwy",
		XBreaks: []figure.Break{{Pos: 0, Label: "2"}, {Pos: 0.5, Label: "4"}, {Pos: 1, Label: "6"}},
		YBreaks: []figure.Break{{Pos: 0, Label: "20"}, {Pos: 1, Label: "40"}},
		Legend:  &figure.Legend{Title: "class", Keys: []string{"compact", "suv"}},
	}
	res, err := layout.New(layout.WithLogger(nil)).Layout(context.Background(), &figure.Figure{Name: "mpg", Root: p})
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	return res.Scene
}

func TestRenderSVG(t *testing.T) {
	out, err := RenderSVG(laidOut(t))
	if err != nil {
		t.Fatalf("RenderSVG() error = %v", err)
	}
	s := string(out)
	for _, want := range []string{"<svg", `viewBox="0 0 4608 3456"`, "<title>mpg</title>", "Fuel economy", `id="plot-p"`, `rotate(-90`, "</svg>"} {
		if !strings.Contains(s, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
	if strings.Contains(s, "@font-face") {
		t.Error("font embedded without WithEmbeddedFont")
	}

	embedded, _ := RenderSVG(laidOut(t), WithEmbeddedFont())
	if !bytes.Contains(embedded, []byte("@font-face")) {
		t.Error("WithEmbeddedFont() did not embed the font")
	}
}

func TestRenderPNG(t *testing.T) {
	tests := []struct {
		name          string
		opts          []Option
		width, height int
	}{
		{"default dpi", nil, 640, 480},
		{"scaled", []Option{WithScale(2)}, 1280, 960},
		{"dpi", []Option{WithConfig(backend.NewConfig(backend.WithDPI(50)))}, 320, 240},
	}
	f := laidOut(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := RenderPNG(f, tt.opts...)
			if err != nil {
				t.Fatalf("RenderPNG() error = %v", err)
			}
			img, err := png.Decode(bytes.NewReader(out))
			if err != nil {
				t.Fatalf("png.Decode() error = %v", err)
			}
			if b := img.Bounds(); b.Dx() != tt.width || b.Dy() != tt.height {
				t.Errorf("size = %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.width, tt.height)
			}
		})
	}
}

func TestRenderPDF(t *testing.T) {
	out, err := RenderPDF(laidOut(t))
	if err != nil {
		t.Fatalf("RenderPDF() error = %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Errorf("output starts with %q, want %%PDF-", out[:min(len(out), 8)])
	}
}

func TestRenderNil(t *testing.T) {
	if _, err := RenderSVG(nil); err == nil {
		t.Error("RenderSVG(nil) error = nil")
	}
	if _, err := RenderPNG(nil); err == nil {
		t.Error("RenderPNG(nil) error = nil")
	}
	if _, err := RenderPDF(nil); err == nil {
		t.Error("RenderPDF(nil) error = nil")
	}
}

func TestPDFFamily(t *testing.T) {
	if got := pdfFamily("Go Mono"); got != "gomono" {
		t.Errorf("pdfFamily(Go Mono) = %q", got)
	}
	if got := pdfFamily("Comic Sans"); got != "go" {
		t.Errorf("pdfFamily(Comic Sans) = %q, want go", got)
	}
}
