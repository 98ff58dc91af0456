package geom

import "testing"

func TestBoxSize(t *testing.T) {
	tests := []struct {
		name  string
		box   Box
		wantW float64
		wantH float64
	}{
		{"unit", Box{0, 0, 1, 1}, 1, 1},
		{"offset", Box{0.25, 0.5, 0.75, 0.625}, 0.5, 0.125},
		{"degenerate", Box{0.5, 0.5, 0.5, 0.5}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.box.Width(); got != tt.wantW {
				t.Errorf("Width() = %v, want %v", got, tt.wantW)
			}
			if got := tt.box.Height(); got != tt.wantH {
				t.Errorf("Height() = %v, want %v", got, tt.wantH)
			}
		})
	}
}

func TestBoxUnion(t *testing.T) {
	a := Box{0, 0, 0.5, 0.5}
	b := Box{0.25, 0.25, 1, 0.75}

	got := a.Union(b)
	want := Box{0, 0, 1, 0.75}
	if got != want {
		t.Errorf("Union() = %v, want %v", got, want)
	}

	if got := a.Union(Box{}); got != a {
		t.Errorf("Union(empty) = %v, want %v", got, a)
	}
	if got := (Box{}).Union(b); got != b {
		t.Errorf("empty.Union() = %v, want %v", got, b)
	}
}

func TestBoxSub(t *testing.T) {
	outer := Box{0.5, 0.5, 1, 1}
	got := outer.Sub(Box{0, 0, 0.5, 0.5})
	want := Box{0.5, 0.5, 0.75, 0.75}
	if got != want {
		t.Errorf("Sub() = %v, want %v", got, want)
	}

	x, y := outer.Point(1, 0.5)
	if x != 1 || y != 0.75 {
		t.Errorf("Point() = (%v, %v), want (1, 0.75)", x, y)
	}
}

func TestRelPosition(t *testing.T) {
	tests := []struct {
		name            string
		j, size, lo, hi float64
		want            float64
	}{
		{"start", 0, 0.1, 0.2, 0.8, 0.2},
		{"end", 1, 0.1, 0.2, 0.8, 0.7},
		{"center", 0.5, 0.2, 0, 1, 0.4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RelPosition(tt.j, tt.size, tt.lo, tt.hi); !ApproxEqual(got, tt.want) {
				t.Errorf("RelPosition() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoxContains(t *testing.T) {
	outer := Box{X0: 0, Y0: 0, X1: 1, Y1: 1}
	tests := []struct {
		inner Box
		want  bool
	}{
		{Box{X0: 0.2, Y0: 0.2, X1: 0.8, Y1: 0.8}, true},
		{outer, true},
		{Box{X0: -0.1, Y0: 0, X1: 0.5, Y1: 0.5}, false},
		{Box{X0: 0.5, Y0: 0.5, X1: 1.5, Y1: 0.9}, false},
	}
	for _, tt := range tests {
		if got := outer.Contains(tt.inner); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.inner, got, tt.want)
		}
	}
}
