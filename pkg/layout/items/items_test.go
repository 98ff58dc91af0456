package items

import (
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/ggframe/pkg/backend"
	"github.com/matzehuels/ggframe/pkg/figure"
	"github.com/matzehuels/ggframe/pkg/scene"
	"github.com/matzehuels/ggframe/pkg/theme"
)

type fixedMeasurer struct{ char, line float64 }

func (m fixedMeasurer) Measure(text string, style backend.TextStyle) (backend.Extent, error) {
	lines := strings.Split(text, "\n")
	var w float64
	for _, l := range lines {
		w = math.Max(w, float64(len(l))*m.char)
	}
	return backend.Rotate(backend.Extent{Width: w, Height: float64(len(lines)) * m.line}, style.Rotation), nil
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func build(t *testing.T, p *figure.Plot) *PlotItems {
	t.Helper()
	f, err := scene.Build(&figure.Figure{Root: p}, fixedMeasurer{char: 6, line: 10})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return NewPlotItems(f.Plots[0])
}

func TestGet(t *testing.T) {
	it := build(t, &figure.Plot{Title: "t", Caption: "c"})
	if it.Get("plot_title") == nil {
		t.Error(`Get("plot_title") = nil`)
	}
	if it.Get("plot_subtitle") != nil {
		t.Error(`Get("plot_subtitle") should be nil for empty text`)
	}
	if it.Get("legend") != nil {
		t.Error(`Get("legend") should be nil for unknown names`)
	}

	// Blanking the element after measuring still hides the text.
	it.Plot.Theme = it.Plot.Theme.Add(theme.New().SetElement("plot_caption", theme.ElementBlank()))
	if it.Get("plot_caption") != nil {
		t.Error(`Get("plot_caption") should be nil for a blank element`)
	}
}

func TestPanelsAt(t *testing.T) {
	it := build(t, &figure.Plot{
		Facet: figure.Facet{Kind: figure.FacetWrap, Panels: []string{"a", "b", "c"}},
	})
	tests := []struct {
		loc  Location
		want []int
	}{
		{All, []int{0, 1, 2}},
		{FirstRow, []int{0, 1}},
		{LastRow, []int{2}},
		{FirstCol, []int{0, 2}},
		{LastCol, []int{1}},
	}
	for _, tt := range tests {
		t.Run(string(tt.loc), func(t *testing.T) {
			got := it.Panels(tt.loc)
			if len(got) != len(tt.want) {
				t.Fatalf("len(Panels(%s)) = %d, want %d", tt.loc, len(got), len(tt.want))
			}
			for i, pn := range got {
				if pn.Index != tt.want[i] {
					t.Errorf("Panels(%s)[%d] = %d, want %d", tt.loc, i, pn.Index, tt.want[i])
				}
			}
		})
	}
}

func TestMaxQueries(t *testing.T) {
	it := build(t, &figure.Plot{
		XBreaks: []figure.Break{{Pos: 0.5, Label: "a"}, {Pos: 0.75, Label: "two\nrows"}},
		YBreaks: []figure.Break{{Pos: 0.5, Label: "wide"}},
	})
	W, H := 6.4*72, 4.8*72

	if got, want := it.AxisTextXMaxHeightAt(All), 20/H; !approx(got, want) {
		t.Errorf("AxisTextXMaxHeightAt = %v, want %v", got, want)
	}
	if got, want := it.AxisTextYMaxWidthAt(FirstCol), 24/W; !approx(got, want) {
		t.Errorf("AxisTextYMaxWidthAt = %v, want %v", got, want)
	}
	if got, want := it.AxisTicksXMaxHeightAt(LastRow), 2.75/H; !approx(got, want) {
		t.Errorf("AxisTicksXMaxHeightAt = %v, want %v", got, want)
	}
	if got, want := it.AxisTicksYMaxWidthAt(FirstCol), 2.75/W; !approx(got, want) {
		t.Errorf("AxisTicksYMaxWidthAt = %v, want %v", got, want)
	}
}

func TestEmptySubsetIsZero(t *testing.T) {
	it := NewPlotItems(&scene.Plot{Theme: theme.Gray()})
	for name, got := range map[string]float64{
		"text x":      it.AxisTextXMaxHeightAt(All),
		"text y":      it.AxisTextYMaxWidthAt(All),
		"ticks x":     it.AxisTicksXMaxHeightAt(LastRow),
		"ticks y":     it.AxisTicksYMaxWidthAt(FirstCol),
		"strip x":     it.StripTextXExtraHeight("top"),
		"strip y":     it.StripTextYExtraWidth("right"),
		"protrusion":  it.AxisTextXLeftProtrusion(All),
		"protrusion2": it.AxisTextYTopProtrusion(All),
	} {
		if got != 0 {
			t.Errorf("%s = %v, want 0", name, got)
		}
	}
}

func TestProtrusions(t *testing.T) {
	it := build(t, &figure.Plot{
		XBreaks: []figure.Break{{Pos: 0, Label: "left"}, {Pos: 1, Label: "right"}},
		YBreaks: []figure.Break{{Pos: 0, Label: "b"}, {Pos: 1, Label: "t"}},
	})
	W, H := 6.4*72, 4.8*72

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"x left", it.AxisTextXLeftProtrusion(All), 24 / W / 2},
		{"x right", it.AxisTextXRightProtrusion(All), 30 / W / 2},
		{"y top", it.AxisTextYTopProtrusion(All), 10 / H / 2},
		{"y bottom", it.AxisTextYBottomProtrusion(All), 10 / H / 2},
	}
	for _, tt := range tests {
		if !approx(tt.got, tt.want) {
			t.Errorf("%s protrusion = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestStripExtra(t *testing.T) {
	tests := []struct {
		name  string
		align float64
		want  float64 // in strip thicknesses
	}{
		{"outside", 0, 1},
		{"half in", -0.5, 0.5},
		{"inside", -1, 0},
		{"past inside", -2, 0},
		{"away", 0.5, 1.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := build(t, &figure.Plot{
				Facet: figure.Facet{Kind: figure.FacetWrap, Panels: []string{"a"}},
				Theme: theme.Gray().Add(theme.New().Set("strip_align", tt.align)),
			})
			s := it.Plot.StripsX()[0]
			if got := it.StripTextXExtraHeight("top"); !approx(got, tt.want*s.Thickness) {
				t.Errorf("StripTextXExtraHeight = %v, want %v", got, tt.want*s.Thickness)
			}
			if got := it.StripTextXExtraHeight("bottom"); got != 0 {
				t.Errorf("bottom = %v, want 0", got)
			}
		})
	}
}

func TestGeometry(t *testing.T) {
	it := build(t, &figure.Plot{Title: "abc"})
	g := it.Geometry
	w, h := g.Size(it.Get("plot_title"))
	if !approx(w, g.Width(it.Get("plot_title"))) || !approx(h, g.Height(it.Get("plot_title"))) {
		t.Errorf("Size = %v, %v", w, h)
	}
}
