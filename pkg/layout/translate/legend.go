package translate

import (
	"github.com/matzehuels/ggframe/pkg/geom"
	"github.com/matzehuels/ggframe/pkg/layout/space"
	"github.com/matzehuels/ggframe/pkg/scene"
)

// placeLegend moves the legend into its slot, justified along the
// panels. Inside legends are placed in panel area coordinates.
func placeLegend(ps *space.PlotSpaces, l *scene.Legend) {
	panels := ps.Plot.Panels.SubplotParams()
	switch l.Position {
	case scene.LegendRight:
		y := geom.RelPosition(l.Justification, l.Height(), panels.Bottom, panels.Top)
		l.Anchored(ps.R.X2("legend"), y, 1, 0)
	case scene.LegendLeft:
		y := geom.RelPosition(l.Justification, l.Height(), panels.Bottom, panels.Top)
		l.Anchored(ps.L.X1("legend"), y, 0, 0)
	case scene.LegendTop:
		x := geom.RelPosition(l.Justification, l.Width(), panels.Left, panels.Right)
		l.Anchored(x, ps.T.Y2("legend"), 0, 1)
	case scene.LegendBottom:
		x := geom.RelPosition(l.Justification, l.Width(), panels.Left, panels.Right)
		l.Anchored(x, ps.B.Y1("legend"), 0, 0)
	case scene.LegendInside:
		area := panels.Box()
		x := area.X0 + l.Anchor[0]*area.Width()
		y := area.Y0 + l.Anchor[1]*area.Height()
		l.Anchored(x, y, l.InsideJust[0], l.InsideJust[1])
	}
}
