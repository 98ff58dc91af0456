package theme

import (
	"math"
	"reflect"
	"testing"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-12 }

func TestChain(t *testing.T) {
	tests := []struct {
		name string
		want []string
	}{
		{"axis_title_y", []string{"axis_title_y", "axis_title", "title", "text"}},
		{"plot_margin_left", []string{"plot_margin_left", "plot_margin"}},
		{"panel_spacing_x", []string{"panel_spacing_x", "panel_spacing"}},
		{"legend_justification_right", []string{"legend_justification_right", "legend_justification"}},
		{"figure_size", []string{"figure_size"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Chain(tt.name); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Chain(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestGetp(t *testing.T) {
	th := Gray().Add(New().Set("plot_margin_left", 0.1))

	if got := th.Float("plot_margin_left"); got != 0.1 {
		t.Errorf("Float(plot_margin_left) = %v, want 0.1", got)
	}
	if got := th.Float("plot_margin_right"); got != BaseMargin {
		t.Errorf("Float(plot_margin_right) = %v, want %v", got, BaseMargin)
	}
	if _, ok := th.Getp("no_such_property"); ok {
		t.Error("Getp(no_such_property) found a value")
	}
	if w, h := th.FigureSize(); w != 6.4 || h != 4.8 {
		t.Errorf("FigureSize() = %v, %v, want 6.4, 4.8", w, h)
	}
}

func TestTextMerge(t *testing.T) {
	th := Gray().Add(New().SetElement("axis_title", Element{Color: ptr("red")}))

	e := th.Text("axis_title_y")
	if got := e.ColorOr(""); got != "red" {
		t.Errorf("color = %v, want red", got)
	}
	if got := e.FontSize(0); got != 11 {
		t.Errorf("size = %v, want 11 (from text)", got)
	}
	if got := e.Angle(); got != 90 {
		t.Errorf("rotation = %v, want 90 (from axis_title_y)", got)
	}
}

func TestIsBlank(t *testing.T) {
	th := Gray()
	if th.IsBlank("axis_text_x") {
		t.Error("axis_text_x is blank in the default theme")
	}
	if !th.IsBlank("axis_ticks_minor_x") {
		t.Error("axis_ticks_minor_x should fall back to the blank axis_ticks_minor")
	}

	th = th.Add(New().SetElement("axis_text", ElementBlank()))
	if th.IsBlank("axis_text_x") {
		t.Error("axis_text_x is set, so the blank axis_text must not win")
	}
	th = th.Add(New().SetElement("axis_text_x", ElementBlank()))
	if !th.IsBlank("axis_text_x") {
		t.Error("axis_text_x should be blank")
	}
}

func TestMarginFig(t *testing.T) {
	tests := []struct {
		name   string
		margin Margin
		want   Margin
	}{
		{"fig", Margin{T: 0.1, L: 0.2, Unit: "fig"}, Margin{T: 0.1, L: 0.2, Unit: "fig"}},
		{"points", Margin{T: 72, R: 144}, Margin{T: 72.0 / (4 * 72), R: 144.0 / (8 * 72), Unit: "fig"}},
		{"inches", Margin{B: 1, L: 2, Unit: "in"}, Margin{B: 0.25, L: 0.25, Unit: "fig"}},
		{"lines", Margin{T: 1, Unit: "lines"}, Margin{T: 12.0 / (4 * 72), Unit: "fig"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.margin.Fig(8, 4, 12)
			if !approx(got.T, tt.want.T) || !approx(got.R, tt.want.R) ||
				!approx(got.B, tt.want.B) || !approx(got.L, tt.want.L) {
				t.Errorf("Fig() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestAlignment(t *testing.T) {
	th := Gray()
	if got := th.HA("plot_caption", "left"); got != 1 {
		t.Errorf("HA(plot_caption) = %v, want 1", got)
	}
	if got := th.HA("plot_title", "left"); got != 0 {
		t.Errorf("HA(plot_title) = %v, want 0 (default)", got)
	}
	if got := th.VA("axis_title_y", "top"); got != 0.5 {
		t.Errorf("VA(axis_title_y) = %v, want 0.5", got)
	}
	th = th.Add(New().SetElement("plot_title", Element{HA: ptr("0.25")}))
	if got := th.HA("plot_title", "left"); got != 0.25 {
		t.Errorf("HA(plot_title) = %v, want 0.25", got)
	}
}

func TestPosition(t *testing.T) {
	th := Gray()
	p := th.Position("plot_tag_position", "topleft")
	if p.Pair || p.Name != "topleft" || !p.Has("top") || !p.Has("left") || p.Has("right") {
		t.Errorf("Position() = %+v, want named topleft", p)
	}

	th = th.Add(New().Set("plot_tag_position", []any{0.1, 0.9}))
	p = th.Position("plot_tag_position", "topleft")
	if !p.Pair || p.X != 0.1 || p.Y != 0.9 {
		t.Errorf("Position() = %+v, want pair (0.1, 0.9)", p)
	}
	if p.Has("top") {
		t.Error("a pair has no named sides")
	}
	if got := p.String(); got != "(0.1, 0.9)" {
		t.Errorf("String() = %q, want %q", got, "(0.1, 0.9)")
	}
}

func TestJustification(t *testing.T) {
	th := Gray().Add(New().
		Set("legend_justification_right", "top").
		Set("legend_justification_bottom", 0.2))

	tests := []struct {
		side string
		want float64
	}{
		{"right", 1},
		{"bottom", 0.2},
		{"left", 0.5},
	}
	for _, tt := range tests {
		if got := th.Justification(tt.side); got != tt.want {
			t.Errorf("Justification(%q) = %v, want %v", tt.side, got, tt.want)
		}
	}
}

func TestFromMap(t *testing.T) {
	th, err := FromMap(map[string]any{
		"plot_margin":  int64(0),
		"figure_size":  []any{8.0, int64(4)},
		"axis_title_x": "blank",
		"plot_title": map[string]any{
			"size":   16,
			"ha":     "center",
			"margin": map[string]any{"b": 0.02, "unit": "fig"},
		},
	})
	if err != nil {
		t.Fatalf("FromMap() error = %v", err)
	}
	if got := th.Float("plot_margin_top"); got != 0 {
		t.Errorf("plot_margin_top = %v, want 0", got)
	}
	if w, h := th.FigureSize(); w != 8 || h != 4 {
		t.Errorf("FigureSize() = %v, %v, want 8, 4", w, h)
	}
	if !th.IsBlank("axis_title_x") {
		t.Error("axis_title_x should be blank")
	}
	if got := th.Text("plot_title").FontSize(0); got != 16 {
		t.Errorf("plot_title size = %v, want 16", got)
	}
	if got := th.Margin("plot_title").B; got != 0.02 {
		t.Errorf("plot_title margin b = %v, want 0.02", got)
	}
	if got := th.VA("plot_title", "center"); got != 1 {
		t.Errorf("plot_title va = %v, want 1 (kept from the base theme)", got)
	}

	for _, bad := range []map[string]any{
		{"not_a_themeable": 1},
		{"plot_title": map[string]any{"ha": "sideways"}},
		{"base": "neon"},
		{"plot_title": map[string]any{"margin": map[string]any{"x": 1}}},
	} {
		if _, err := FromMap(bad); err == nil {
			t.Errorf("FromMap(%v) error = nil, want error", bad)
		}
	}
}
