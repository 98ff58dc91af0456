package gridspec

import (
	"math"
	"testing"

	"github.com/matzehuels/ggframe/pkg/errors"
	"github.com/matzehuels/ggframe/pkg/geom"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func boxApprox(a, b geom.Box) bool {
	return approx(a.X0, b.X0) && approx(a.Y0, b.Y0) && approx(a.X1, b.X1) && approx(a.Y1, b.Y1)
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		valid  bool
	}{
		{"full", Full(), true},
		{"inset", Params{Left: 0.1, Right: 0.9, Top: 0.8, Bottom: 0.2}, true},
		{"zero width", Params{Left: 0.5, Right: 0.5, Top: 1, Bottom: 0}, false},
		{"inverted height", Params{Left: 0, Right: 1, Top: 0.2, Bottom: 0.8}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.params.Valid(); got != tt.valid {
				t.Errorf("Valid() = %v, want %v", got, tt.valid)
			}
			err := tt.params.Validate()
			if tt.valid && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.valid && !errors.Is(err, errors.ErrCodeDegenerateGeometry) {
				t.Errorf("Validate() code = %v, want %v", errors.GetCode(err), errors.ErrCodeDegenerateGeometry)
			}
		})
	}
}

func TestCellPositions(t *testing.T) {
	g := New(2, 2)
	tests := []struct {
		r, c int
		want geom.Box
	}{
		{0, 0, geom.Box{X0: 0, Y0: 0.5, X1: 0.5, Y1: 1}},
		{0, 1, geom.Box{X0: 0.5, Y0: 0.5, X1: 1, Y1: 1}},
		{1, 0, geom.Box{X0: 0, Y0: 0, X1: 0.5, Y1: 0.5}},
		{1, 1, geom.Box{X0: 0.5, Y0: 0, X1: 1, Y1: 0.5}},
	}
	for _, tt := range tests {
		if got := g.Cell(tt.r, tt.c).Box(); !boxApprox(got, tt.want) {
			t.Errorf("Cell(%d, %d).Box() = %v, want %v", tt.r, tt.c, got, tt.want)
		}
	}
}

func TestSpacingAndRatios(t *testing.T) {
	g := New(1, 2)
	g.Update(Params{Left: 0, Right: 1, Top: 1, Bottom: 0, WSpace: 0.5})

	// cell = 1/(2 + 0.5) = 0.4, separator 0.2
	left, right := g.Cell(0, 0).Box(), g.Cell(0, 1).Box()
	if !approx(left.Width(), 0.4) || !approx(right.X0, 0.6) {
		t.Errorf("cells = %v, %v, want width 0.4 and gap 0.2", left, right)
	}

	g.Update(Full())
	g.SetWidthRatios([]float64{1, 3})
	if got := g.Cell(0, 1).Box().Width(); !approx(got, 0.75) {
		t.Errorf("ratio width = %v, want 0.75", got)
	}
}

func TestNested(t *testing.T) {
	outer := New(1, 2)
	inner := New(1, 1, NestInto(outer.Cell(0, 1)))
	inner.Update(Params{Left: 0.1, Right: 0.9, Top: 0.9, Bottom: 0.1})

	want := geom.Box{X0: 0.6, Y0: 0.1, X1: 0.9, Y1: 0.9}
	if got := inner.Box(); !boxApprox(got, want) {
		t.Errorf("Box() = %v, want %v", got, want)
	}

	// Parent changes are seen by the nested grid.
	outer.SetWidthRatios([]float64{3, 1})
	want = geom.Box{X0: 0.85, Y0: 0.1, X1: 0.9, Y1: 0.9}
	if got := inner.Box(); !boxApprox(got, want) {
		t.Errorf("Box() after resize = %v, want %v", got, want)
	}
}

func TestCellsOrder(t *testing.T) {
	g := New(2, 3, ByRow(false))
	cells := g.Cells()
	if len(cells) != 6 {
		t.Fatalf("len(Cells()) = %d, want 6", len(cells))
	}
	if cells[1].Row != 1 || cells[1].Col != 0 {
		t.Errorf("Cells()[1] = (%d, %d), want (1, 0)", cells[1].Row, cells[1].Col)
	}
	if !cells[5].LastRow() || !cells[5].LastCol() {
		t.Errorf("Cells()[5] should be in the last row and column")
	}
}
