package translate

import (
	"github.com/matzehuels/ggframe/pkg/errors"
	"github.com/matzehuels/ggframe/pkg/geom"
	"github.com/matzehuels/ggframe/pkg/layout/space"
	"github.com/matzehuels/ggframe/pkg/scene"
	"github.com/matzehuels/ggframe/pkg/theme"
)

// Tag locations.
const (
	TagMargin = "margin"
	TagPlot   = "plot"
	TagPanel  = "panel"
)

// tagAnchors maps named tag positions to fractions of the area the tag
// is placed in.
var tagAnchors = map[string][2]float64{
	"topleft":     {0, 1},
	"top":         {0.5, 1},
	"topright":    {1, 1},
	"left":        {0, 0.5},
	"right":       {1, 0.5},
	"bottomleft":  {0, 0},
	"bottom":      {0.5, 0},
	"bottomright": {1, 0},
}

func placeTag(ps *space.PlotSpaces, tag *scene.Text, j justifier) error {
	th := ps.Plot.Theme
	loc := th.String("plot_tag_location", TagMargin)
	pos := th.Position("plot_tag_position", "topleft")

	switch loc {
	case TagMargin:
		if pos.Pair {
			return errors.New(errors.ErrCodeInvalidConfig,
				"Cannot have plot_tag_location='margin' if plot_tag_position=%s", pos)
		}
		placeTagInMargin(ps, tag, pos, j)
		return nil
	case TagPlot, TagPanel:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown plot_tag_location %q", loc)
	}

	area := ps.PlotArea()
	if loc == TagPanel {
		area = ps.PanelArea()
	}

	if pos.Pair {
		x, y := pos.X, pos.Y
		if loc == TagPanel {
			x = area.X0 + x*area.Width()
			y = area.Y0 + y*area.Height()
		}
		ha, va := th.HA("plot_tag", "center"), th.VA("plot_tag", "center")
		tag.MoveTo(x-ha*tag.Width(), y-va*tag.Height())
		return nil
	}

	f, ok := tagAnchors[pos.Name]
	if !ok {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown plot_tag_position %q", pos.Name)
	}
	x := geom.RelPosition(f[0], tag.Width(), area.X0, area.X1)
	y := geom.RelPosition(f[1], tag.Height(), area.Y0, area.Y1)

	// Margins given as figure fractions scale with the area; others are
	// absolute.
	dx, dy := tagMarginShift(th.Margin("plot_tag"), pos.Name)
	if m := th.Text("plot_tag").Margin; m != nil && m.Unit == "fig" {
		dx *= area.Width()
		dy *= area.Height()
	}
	tag.MoveTo(x+dx, y+dy)
	return nil
}

func tagMarginShift(m theme.Margin, position string) (dx, dy float64) {
	p := theme.Position{Name: position}
	switch {
	case p.Has("top"):
		dy = -m.T
	case p.Has("bottom"):
		dy = m.B
	}
	switch {
	case p.Has("left"):
		dx = m.L
	case p.Has("right"):
		dx = -m.R
	}
	return dx, dy
}

// placeTagInMargin puts the tag in its margin slot. The tag alignment
// space on each side is split according to the tag's alignment.
func placeTagInMargin(ps *space.PlotSpaces, tag *scene.Text, pos theme.Position, j justifier) {
	th := ps.Plot.Theme
	ha, va := th.HA("plot_tag", "center"), th.VA("plot_tag", "center")

	frame := ps.Plot.Frame.Box()
	tag.MoveTo(frame.CenterX()-tag.Width()/2, frame.CenterY()-tag.Height()/2)

	if pos.Has("left") {
		tag.SetX(ps.L.X1("plot_tag") - (1-ha)*ps.L.Get(space.TagAlignment))
	}
	if pos.Has("right") {
		tag.SetX(ps.R.X1("plot_tag") + ha*ps.R.Get(space.TagAlignment))
	}
	if pos.Has("bottom") {
		tag.SetY(ps.B.Y1("plot_tag") - (1-va)*ps.B.Get(space.TagAlignment))
	}
	if pos.Has("top") {
		tag.SetY(ps.T.Y1("plot_tag") + va*ps.T.Get(space.TagAlignment))
	}

	switch pos.Name {
	case "left", "right":
		j.vertically(tag, va, "plot")
	case "top", "bottom":
		j.horizontally(tag, ha, "plot")
	}
}
