package layout

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ggframe/pkg/backend"
	"github.com/matzehuels/ggframe/pkg/errors"
	"github.com/matzehuels/ggframe/pkg/figure"
	"github.com/matzehuels/ggframe/pkg/gridspec"
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

func engine() *Engine {
	return New(WithMeasurer(fixedMeasurer{char: 6, line: 10}), WithLogger(nil))
}

func breaks(labels ...string) []figure.Break {
	out := make([]figure.Break, len(labels))
	for i, l := range labels {
		out[i] = figure.Break{Pos: float64(i) / float64(max(len(labels)-1, 1)), Label: l}
	}
	return out
}

func TestLayoutSinglePlot(t *testing.T) {
	p := &figure.Plot{
		Name:    "p",
		Title:   "Title",
		XLabel:  "x",
		YLabel:  "y",
		XBreaks: breaks("0", "5", "10"),
		YBreaks: breaks("0", "1"),
		Legend:  &figure.Legend{Title: "group", Keys: []string{"a", "b"}},
	}
	res, err := engine().Layout(context.Background(), &figure.Figure{Name: "single", Root: p})
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	if res.Tree != nil {
		t.Errorf("Tree = %v, want nil for a single plot", res.Tree)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", res.Warnings.Messages())
	}

	r := res.Report
	if r.Figure != "single" || len(r.Plots) != 1 {
		t.Fatalf("report = %s with %d plots", r.Figure, len(r.Plots))
	}
	pr := r.Plot("p")
	if pr == nil {
		t.Fatal("Plot(p) = nil")
	}
	for _, side := range []string{"left", "right", "top", "bottom"} {
		if len(pr.Sides[side]) == 0 {
			t.Errorf("Sides[%s] is empty", side)
		}
	}
	if pr.Legend == nil || pr.Legend.X0 < pr.PanelArea.X1 {
		t.Errorf("legend = %v, want right of panels %v", pr.Legend, pr.PanelArea)
	}
	if pr.Degenerate {
		t.Error("Degenerate = true, want false")
	}
	if len(pr.Texts) == 0 {
		t.Error("no texts in report")
	}
}

func TestLayoutStackAlignsPanels(t *testing.T) {
	p1 := &figure.Plot{Name: "p1", YLabel: "count", YBreaks: breaks("0", "100000"), XBreaks: breaks("a", "b")}
	p2 := &figure.Plot{Name: "p2", YLabel: "n", YBreaks: breaks("0", "1"), XBreaks: breaks("a", "b")}

	res, err := engine().Layout(context.Background(), &figure.Figure{Root: figure.Div(p1, p2)})
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	a, b := res.Report.Plot("p1").PanelArea, res.Report.Plot("p2").PanelArea
	if !approx(a.X0, b.X0) || !approx(a.X1, b.X1) {
		t.Errorf("panel areas = %v and %v, want equal left and right edges", a, b)
	}
	if !(a.Y0 > b.Y1) {
		t.Errorf("p1 panels %v not above p2 panels %v", a, b)
	}
	if tr := res.Report.Tree; tr == nil || tr.Kind != "rows" || len(tr.Children) != 2 {
		t.Errorf("Tree = %+v, want rows with two children", tr)
	}
}

func TestLayoutBesideWidthRatios(t *testing.T) {
	c := figure.Or(&figure.Plot{Name: "a"}, &figure.Plot{Name: "b"})
	c.Layout.Widths = []float64{1, 3}

	res, err := engine().Layout(context.Background(), &figure.Figure{Root: c})
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	a, b := res.Report.Plot("a").PanelArea, res.Report.Plot("b").PanelArea
	if got := b.Width() / a.Width(); math.Abs(got-3) > 1e-6 {
		t.Errorf("panel width ratio = %v, want 3", got)
	}
	if !approx(a.Y0, b.Y0) || !approx(a.Y1, b.Y1) {
		t.Errorf("panel areas = %v and %v, want equal tops and bottoms", a, b)
	}
}

func TestLayoutDegenerateKeepsDefaults(t *testing.T) {
	th := theme.Gray().Add(theme.New().Set("plot_margin", 0.6))
	var sb strings.Builder
	logger := log.NewWithOptions(&sb, log.Options{})
	eng := New(WithMeasurer(fixedMeasurer{char: 6, line: 10}), WithLogger(logger))

	res, err := eng.Layout(context.Background(), &figure.Figure{Root: &figure.Plot{Name: "tight", Theme: th}})
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	if len(res.Warnings) != 1 || res.Warnings[0].Code != errors.ErrCodeDegenerateGeometry {
		t.Fatalf("Warnings = %v, want one DEGENERATE_GEOMETRY", res.Warnings)
	}
	pr := res.Report.Plot("tight")
	if pr.Params != gridspec.Default() || !pr.Degenerate {
		t.Errorf("params = %+v degenerate %v, want defaults", pr.Params, pr.Degenerate)
	}
	if !strings.Contains(sb.String(), "keeping default panel grid") {
		t.Errorf("log = %q, want the warning", sb.String())
	}
	if len(res.Report.Warnings) != 1 {
		t.Errorf("report warnings = %v", res.Report.Warnings)
	}
}

func TestLayoutConfigError(t *testing.T) {
	th := theme.Gray().Add(theme.New().Set("plot_tag_position", [2]float64{0.1, 0.9}))
	_, err := engine().Layout(context.Background(), &figure.Figure{Root: &figure.Plot{Tag: "A", Theme: th}})
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Layout() error = %v, want INVALID_CONFIG", err)
	}
}

func TestLayoutCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := engine().Layout(ctx, &figure.Figure{Root: &figure.Plot{Name: "p"}})
	if !errors.Is(err, errors.ErrCodeTimeout) {
		t.Errorf("Layout() error = %v, want TIMEOUT", err)
	}
}

func TestReportRoundTrip(t *testing.T) {
	c := figure.Add(figure.Add(&figure.Plot{Name: "a"}, &figure.Plot{Name: "b"}), &figure.Plot{Name: "c"})
	c.Annotation = &figure.Annotation{Title: "All"}
	res, err := engine().Layout(context.Background(), &figure.Figure{Name: "wrap", Root: c})
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	data, err := MarshalReport(res.Report)
	if err != nil {
		t.Fatalf("MarshalReport() error = %v", err)
	}
	got, err := UnmarshalReport(data)
	if err != nil {
		t.Fatalf("UnmarshalReport() error = %v", err)
	}
	if got.Tree == nil || got.Tree.Kind != "grid" || len(got.Tree.Children) != 4 {
		t.Fatalf("Tree = %+v, want 2x2 grid", got.Tree)
	}
	if last := got.Tree.Children[3]; last.Kind != NodeEmpty {
		t.Errorf("last cell = %s, want empty", last.Kind)
	}
	if got.Composition == nil || len(got.Composition.Texts) != 1 {
		t.Errorf("Composition = %+v, want the title", got.Composition)
	}
}
