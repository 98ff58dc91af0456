package tree

import (
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/ggframe/pkg/backend"
	"github.com/matzehuels/ggframe/pkg/figure"
	"github.com/matzehuels/ggframe/pkg/layout/space"
	"github.com/matzehuels/ggframe/pkg/scene"
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

func approx(a, b, tol float64) bool { return math.Abs(a-b) < tol }

// build lays out the composition up to the tree.
func build(t *testing.T, root *figure.Composition) (*Tree, map[string]*space.PlotSpaces) {
	t.Helper()
	f, err := scene.Build(&figure.Figure{Root: root}, fixedMeasurer{char: 6, line: 10})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	byPlot := map[*scene.Plot]*space.PlotSpaces{}
	byName := map[string]*space.PlotSpaces{}
	for _, p := range f.Plots {
		ps, err := space.NewPlotSpaces(p)
		if err != nil {
			t.Fatalf("NewPlotSpaces(%s) error = %v", p.Name, err)
		}
		byPlot[p] = ps
		byName[p.Name] = ps
	}
	return Build(f.Composition(), func(p *scene.Plot) *space.PlotSpaces { return byPlot[p] }), byName
}

func TestBuildShape(t *testing.T) {
	a, b, c := &figure.Plot{Name: "a"}, &figure.Plot{Name: "b"}, &figure.Plot{Name: "c"}
	tr, _ := build(t, figure.Or(a, figure.Div(b, c)))

	if tr.Kind != Columns || tr.NRow != 1 || tr.NCol != 2 {
		t.Fatalf("root = %s %dx%d, want columns 1x2", tr.Kind, tr.NRow, tr.NCol)
	}
	if _, ok := tr.At(0, 0).(*Leaf); !ok {
		t.Errorf("At(0, 0) = %T, want *Leaf", tr.At(0, 0))
	}
	sub, ok := tr.At(0, 1).(*Tree)
	if !ok || sub.Kind != Rows {
		t.Fatalf("At(0, 1) = %T, want rows tree", tr.At(0, 1))
	}
	if got := len(tr.Leaves()); got != 3 {
		t.Errorf("len(Leaves()) = %d, want 3", got)
	}
	if got := len(tr.boundary(space.Right)); got != 2 {
		t.Errorf("right boundary has %d spaces, want 2", got)
	}
	if got := len(tr.boundary(space.Left)); got != 1 {
		t.Errorf("left boundary has %d spaces, want 1", got)
	}
}

func TestBuildEmptyCells(t *testing.T) {
	ps := []*figure.Plot{{Name: "a"}, {Name: "b"}, {Name: "c"}}
	root := figure.Add(figure.Add(ps[0], ps[1]), ps[2])
	root.Layout.NCol = 2
	tr, _ := build(t, root)

	if tr.At(1, 1) != nil {
		t.Errorf("At(1, 1) = %v, want nil", tr.At(1, 1))
	}
	if got := len(tr.sideGroups(space.Right)); got != 2 {
		t.Errorf("right groups = %d, want 2", got)
	}
	if got := len(tr.boundary(space.Bottom)); got != 1 {
		t.Errorf("bottom boundary has %d spaces, want 1", got)
	}
}

func TestStackAlignsAxisTitles(t *testing.T) {
	p1 := &figure.Plot{Name: "p1", YLabel: "y", YBreaks: []figure.Break{{Pos: 0.5, Label: "a wide label"}}}
	p2 := &figure.Plot{Name: "p2", YLabel: "y"}
	tr, spaces := build(t, figure.Div(p1, p2))

	l1, l2 := spaces["p1"].L, spaces["p2"].L
	diff := l1.AxisTitleClearance() - l2.AxisTitleClearance()
	if diff <= 0 {
		t.Fatalf("clearance difference = %v, want positive", diff)
	}

	tr.Harmonise()

	if got := l2.Get(space.AxisTitleAlignment); !approx(got, diff, 1e-9) {
		t.Errorf("p2 axis_title_alignment = %v, want %v", got, diff)
	}
	if got := l1.Get(space.AxisTitleAlignment); got != 0 {
		t.Errorf("p1 axis_title_alignment = %v, want 0", got)
	}
	if !approx(l1.PanelEdge(), l2.PanelEdge(), 1e-9) {
		t.Errorf("panel left = %v, %v, want equal", l1.PanelEdge(), l2.PanelEdge())
	}
	if !approx(l1.X1("axis_title_y"), l2.X1("axis_title_y"), 1e-9) {
		t.Errorf("axis title x = %v, %v, want equal", l1.X1("axis_title_y"), l2.X1("axis_title_y"))
	}
}

func TestAlignPanels(t *testing.T) {
	tests := []struct {
		name  string
		root  func(ps []*figure.Plot) *figure.Composition
		sides []space.Side
	}{
		{
			name:  "beside",
			root:  func(ps []*figure.Plot) *figure.Composition { return figure.Or(ps[0], ps[1]) },
			sides: []space.Side{space.Top, space.Bottom},
		},
		{
			name:  "stack",
			root:  func(ps []*figure.Plot) *figure.Composition { return figure.Div(ps[0], ps[1]) },
			sides: []space.Side{space.Left, space.Right},
		},
		{
			name: "wrap",
			root: func(ps []*figure.Plot) *figure.Composition {
				return figure.Add(figure.Add(figure.Add(ps[0], ps[1]), ps[2]), ps[3])
			},
			sides: space.Sides,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg := &figure.Legend{Title: "legend", Keys: []string{"a", "b"}}
			ps := []*figure.Plot{
				{Name: "p0", Title: "Title", XLabel: "x"},
				{Name: "p1", Legend: lg, YLabel: "multi\nline"},
				{Name: "p2", Caption: "caption\ntwo lines"},
				{Name: "p3", Tag: "A"},
			}
			tr, _ := build(t, tt.root(ps))
			tr.Harmonise()

			for _, side := range tt.sides {
				for _, group := range tr.sideGroups(side) {
					for _, s := range group[1:] {
						if !approx(s.PanelEdge(), group[0].PanelEdge(), 1e-9) {
							t.Errorf("%s panel edges = %v, %v, want equal", side, s.PanelEdge(), group[0].PanelEdge())
						}
					}
				}
			}
		})
	}
}

func TestAlignTags(t *testing.T) {
	a := &figure.Plot{Name: "a", Tag: "A"}
	b := &figure.Plot{Name: "b", Tag: "two\nlines"}
	tr, spaces := build(t, figure.Or(a, b))
	tr.Align()

	ta, tb := spaces["a"].T, spaces["b"].T
	fa := ta.TagSize() + ta.Get(space.TagAlignment)
	fb := tb.TagSize() + tb.Get(space.TagAlignment)
	if !approx(fa, fb, 1e-9) {
		t.Errorf("tag footprints = %v, %v, want equal", fa, fb)
	}
	if got := tb.Get(space.TagAlignment); got != 0 {
		t.Errorf("taller tag alignment = %v, want 0", got)
	}
}

func TestResizeWidthRatios(t *testing.T) {
	ps := []*figure.Plot{{Name: "a"}, {Name: "b"}, {Name: "c"}, {Name: "d"}}
	root := figure.Add(figure.Add(figure.Add(ps[0], ps[1]), ps[2]), ps[3])
	root.Layout.NCol = 2
	root.Layout.Widths = []float64{1, 3}
	tr, spaces := build(t, root)
	tr.Harmonise()

	for _, row := range [][2]string{{"a", "b"}, {"c", "d"}} {
		left, right := spaces[row[0]].PanelWidth(), spaces[row[1]].PanelWidth()
		if !approx(right/left, 3, 1e-6) {
			t.Errorf("panel widths %s=%v %s=%v, ratio %v, want 3", row[0], left, row[1], right, right/left)
		}
	}
}

func TestResizePreservesNonPanelSpace(t *testing.T) {
	lg := &figure.Legend{Title: "legend", Keys: []string{"a"}}
	a := &figure.Plot{Name: "a", YLabel: "y"}
	b := &figure.Plot{Name: "b", Legend: lg}
	root := figure.Or(a, b)
	root.Layout.Widths = []float64{2, 1}
	tr, spaces := build(t, root)
	tr.Align()

	before := map[string]float64{}
	var panelTotal float64
	for name, s := range spaces {
		before[name] = s.PlotWidth() - s.PanelWidth()
		panelTotal += s.PanelWidth()
	}
	tr.Resize()

	var after float64
	for name, s := range spaces {
		if got := s.PlotWidth() - s.PanelWidth(); !approx(got, before[name], 1e-9) {
			t.Errorf("%s non-panel width = %v, want %v", name, got, before[name])
		}
		after += s.PanelWidth()
	}
	if !approx(after, panelTotal, 1e-9) {
		t.Errorf("total panel width = %v, want %v", after, panelTotal)
	}
	if got := spaces["a"].PanelWidth() / spaces["b"].PanelWidth(); !approx(got, 2, 1e-6) {
		t.Errorf("panel ratio = %v, want 2", got)
	}
}

func TestRatios(t *testing.T) {
	got := ratios([]float64{0.4, 0.4}, []float64{0.5, 0.5}, []float64{0.5, 1.5})
	// New plots: 0.2+0.1, 0.6+0.1.
	want := []float64{0.3 / 0.7, 1}
	for i := range want {
		if !approx(got[i], want[i], 1e-12) {
			t.Errorf("ratios()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
