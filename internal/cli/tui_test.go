package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/ggframe/pkg/layout"
	"github.com/matzehuels/ggframe/pkg/layout/space"
)

func sampleReport() *layout.Report {
	return &layout.Report{
		Figure: "mpg",
		Width:  6.4,
		Height: 4.8,
		DPI:    100,
		Plots: []layout.PlotReport{
			{
				Name: "p1", NRow: 1, NCol: 2,
				Sides: map[string][]space.Entry{
					"left":   {{Name: "plot_margin", Value: 0.025}, {Name: "axis_title", Value: 0.04}},
					"bottom": {{Name: "plot_margin", Value: 0.03}},
				},
			},
			{Name: "gap", Spacer: true},
			{Name: "p2", NRow: 1, NCol: 1, Degenerate: true},
		},
		Warnings: []string{"plot p2: panels do not fit"},
	}
}

func press(m InspectModel, keys ...string) InspectModel {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(InspectModel)
	}
	return m
}

func TestInspectModelNavigation(t *testing.T) {
	tests := []struct {
		keys       []string
		wantCursor int
		wantSide   int
	}{
		{nil, 0, 0},
		{[]string{"down"}, 1, 0},
		{[]string{"down", "down", "down"}, 2, 0},
		{[]string{"up"}, 0, 0},
		{[]string{"j", "k"}, 0, 0},
		{[]string{"l"}, 0, 1},
		{[]string{"h"}, 0, len(space.Sides) - 1},
		{[]string{"l", "l", "l", "l"}, 0, 0},
	}
	for _, tt := range tests {
		m := press(NewInspectModel(sampleReport()), tt.keys...)
		if m.Cursor != tt.wantCursor || m.Side != tt.wantSide {
			t.Errorf("keys %v: cursor, side = %d, %d, want %d, %d", tt.keys, m.Cursor, m.Side, tt.wantCursor, tt.wantSide)
		}
	}
}

func TestInspectModelQuit(t *testing.T) {
	_, cmd := NewInspectModel(sampleReport()).Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestInspectModelView(t *testing.T) {
	m := NewInspectModel(sampleReport())
	view := m.View()
	for _, want := range []string{"mpg", "p1", "gap", "p2", "1x2 panels", "plot_margin", "axis_title", "0.0650", "panels do not fit"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}

	view = press(m, "down").View()
	if !strings.Contains(view, "spacer") {
		t.Error("View() of a spacer does not say so")
	}
}

func TestInspectModelEmpty(t *testing.T) {
	view := NewInspectModel(&layout.Report{Figure: "empty"}).View()
	if !strings.Contains(view, "no plots") {
		t.Errorf("View() = %q, want no plots", view)
	}
}

func TestSideTable(t *testing.T) {
	out := sideTable([]space.Entry{{Name: "legend", Value: 0.1}, {Name: "tag", Value: 0}})
	for _, want := range []string{"Entry", "Fraction", "legend", "0.1000", "tag", "total"} {
		if !strings.Contains(out, want) {
			t.Errorf("sideTable() missing %q", want)
		}
	}

	if out := sideTable(nil); !strings.Contains(out, "0.0000") {
		t.Errorf("sideTable(nil) = %q, want a zero total", out)
	}
}
