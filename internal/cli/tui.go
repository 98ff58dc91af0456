package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/ggframe/pkg/layout"
	"github.com/matzehuels/ggframe/pkg/layout/space"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	headerStyle       = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	tabActiveStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Underline(true)
	paneStyle         = lipgloss.NewStyle().PaddingRight(3)
)

// InspectModel is the bubbletea model of the layout inspector. The left
// pane lists the plots of a report, the right pane shows the panel grid
// and one side space of the selected plot.
type InspectModel struct {
	Report *layout.Report
	Cursor int // selected plot
	Side   int // index into space.Sides
}

// NewInspectModel creates an inspector for rep.
func NewInspectModel(rep *layout.Report) InspectModel {
	return InspectModel{Report: rep}
}

func (m InspectModel) Init() tea.Cmd {
	return nil
}

func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Report.Plots)-1 {
			m.Cursor++
		}
	case "right", "l", "tab":
		m.Side = (m.Side + 1) % len(space.Sides)
	case "left", "h", "shift+tab":
		m.Side = (m.Side + len(space.Sides) - 1) % len(space.Sides)
	}
	return m, nil
}

func (m InspectModel) View() string {
	var b strings.Builder

	rep := m.Report
	b.WriteString(StyleTitle.Render(rep.Figure))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %.2f x %.2f in @ %g dpi", rep.Width, rep.Height, rep.DPI)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ plot  ←/→ side  q quit"))
	b.WriteString("\n\n")

	if len(rep.Plots) == 0 {
		b.WriteString(listDimStyle.Render("no plots"))
		return b.String()
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		paneStyle.Render(m.plotList()),
		m.details()))
	b.WriteString("\n")

	for _, w := range rep.Warnings {
		b.WriteString(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(w) + "\n")
	}
	return b.String()
}

func (m InspectModel) plotList() string {
	var b strings.Builder
	for i, p := range m.Report.Plots {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		line := cursor + p.Name
		switch {
		case i == m.Cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case p.Spacer:
			b.WriteString(listDimStyle.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		if p.Degenerate {
			b.WriteString(" " + styleIconWarning.Render(iconWarning))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m InspectModel) details() string {
	p := m.Report.Plots[m.Cursor]
	if p.Spacer {
		return listDimStyle.Render("spacer")
	}

	var b strings.Builder
	b.WriteString(gridLine(p))
	b.WriteString("\n\n")

	tabs := make([]string, len(space.Sides))
	for i, s := range space.Sides {
		if i == m.Side {
			tabs[i] = tabActiveStyle.Render(string(s))
		} else {
			tabs[i] = listDimStyle.Render(string(s))
		}
	}
	b.WriteString(strings.Join(tabs, "  "))
	b.WriteString("\n")
	b.WriteString(sideTable(p.Sides[string(space.Sides[m.Side])]))
	return b.String()
}

// gridLine describes the panel grid of a plot.
func gridLine(p layout.PlotReport) string {
	s := p.Solution
	line := fmt.Sprintf("%dx%d panels of %.3f x %.3f, gaps %.3f / %.3f",
		p.NRow, p.NCol, s.PanelW, s.PanelH, s.SW, s.SH)
	if p.Degenerate {
		line += "  " + StyleWarning.Render("degenerate")
	}
	return line
}

// sideTable renders the entries of one side space with their total.
func sideTable(entries []space.Entry) string {
	rows := make([][]string, 0, len(entries)+1)
	total := 0.0
	for _, e := range entries {
		rows = append(rows, []string{e.Name, fmt.Sprintf("%.4f", e.Value)})
		total += e.Value
	}
	rows = append(rows, []string{"total", fmt.Sprintf("%.4f", total)})
	last := len(rows) - 1

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Entry", "Fraction").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case row == last:
				return lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
			case rows[row][1] == "0.0000":
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})
	return t.Render()
}
