// Package translate moves the measured artifacts of a plot to their
// final positions once the panel grid is known.
//
// Everything is placed in figure coordinates. Text boxes are moved by
// their bottom left corner, so alignment values are turned into
// justification within a region: a left aligned title sits at the left
// of the panels, a right aligned one ends at their right edge.
package translate

import (
	"github.com/matzehuels/ggframe/pkg/backend"
	"github.com/matzehuels/ggframe/pkg/geom"
	"github.com/matzehuels/ggframe/pkg/gridspec"
	"github.com/matzehuels/ggframe/pkg/layout/space"
	"github.com/matzehuels/ggframe/pkg/scene"
)

// Translator places artifacts. The backend config is fixed for its
// lifetime.
type Translator struct {
	cfg backend.Config
}

// New returns a Translator for cfg.
func New(cfg backend.Config) *Translator {
	return &Translator{cfg: cfg}
}

// Config returns the backend config of the translator.
func (tr *Translator) Config() backend.Config { return tr.cfg }

// Plot applies params to the panel grid of ps and moves every artifact
// of the plot into place.
func (tr *Translator) Plot(ps *space.PlotSpaces, params gridspec.Params) error {
	p := ps.Plot
	p.Panels.Update(params)
	p.Arrange()
	equalizeStrips(p)

	th := p.Theme
	j := justifier{panel: ps.PanelArea(), plot: ps.ArtistArea()}
	titlePos := th.String("plot_title_position", "panel")

	if t := ps.Items.Get("plot_title"); t != nil {
		t.SetY(ps.T.Y2("plot_title") - t.Height())
		j.horizontally(t, th.HA("plot_title", "left"), titlePos)
	}
	if t := ps.Items.Get("plot_subtitle"); t != nil {
		t.SetY(ps.T.Y2("plot_subtitle") - t.Height())
		j.horizontally(t, th.HA("plot_subtitle", "left"), titlePos)
	}
	if t := ps.Items.Get("plot_caption"); t != nil {
		t.SetY(ps.B.Y1("plot_caption"))
		j.horizontally(t, th.HA("plot_caption", "right"), th.String("plot_caption_position", "panel"))
	}
	if t := ps.Items.Get("axis_title_x"); t != nil {
		t.SetY(ps.B.Y1("axis_title_x"))
		j.horizontally(t, th.HA("axis_title_x", "center"), "panel")
	}
	if t := ps.Items.Get("axis_title_y"); t != nil {
		t.SetX(ps.L.X1("axis_title_y"))
		j.vertically(t, th.VA("axis_title_y", "center"), "panel")
	}
	if p.Legend != nil {
		placeLegend(ps, p.Legend)
	}
	if t := ps.Items.Get("plot_tag"); t != nil {
		if err := placeTag(ps, t, j); err != nil {
			return err
		}
	}

	tr.snap(p.Texts(), p.Legend, ps.W, ps.H)
	return nil
}

// Composition places the annotation of the top level composition and
// shrinks its grid to the space left inside.
func (tr *Translator) Composition(cs *space.CompositionSpaces, w, h float64) {
	c := cs.Composition
	c.Grid.Update(cs.Params())

	th := c.Theme
	area := cs.ContentArea()
	j := justifier{panel: area, plot: area}
	titlePos := th.String("plot_title_position", "panel")

	var texts []*scene.Text
	if t := cs.Items.Get("plot_title"); t != nil {
		t.SetY(cs.T.Y2("plot_title") - t.Height())
		j.horizontally(t, th.HA("plot_title", "left"), titlePos)
		texts = append(texts, t)
	}
	if t := cs.Items.Get("plot_subtitle"); t != nil {
		t.SetY(cs.T.Y2("plot_subtitle") - t.Height())
		j.horizontally(t, th.HA("plot_subtitle", "left"), titlePos)
		texts = append(texts, t)
	}
	if t := cs.Items.Get("plot_caption"); t != nil {
		t.SetY(cs.B.Y1("plot_caption"))
		j.horizontally(t, th.HA("plot_caption", "right"), th.String("plot_caption_position", "panel"))
		texts = append(texts, t)
	}
	tr.snap(texts, nil, w, h)
}

// justifier places text within the panel area or the area the plot's
// artifacts take up.
type justifier struct {
	panel geom.Box
	plot  geom.Box
}

func (j justifier) region(about string) geom.Box {
	if about == "plot" {
		return j.plot
	}
	return j.panel
}

func (j justifier) horizontally(t *scene.Text, ha float64, about string) {
	r := j.region(about)
	t.SetX(geom.RelPosition(ha, t.Width(), r.X0, r.X1))
}

func (j justifier) vertically(t *scene.Text, va float64, about string) {
	r := j.region(about)
	t.SetY(geom.RelPosition(va, t.Height(), r.Y0, r.Y1))
}

// equalizeStrips gives all x strips the height of the tallest and all y
// strips the width of the widest.
func equalizeStrips(p *scene.Plot) {
	changed := false
	for _, strips := range [][]*scene.Strip{p.StripsX(), p.StripsY()} {
		var thickest float64
		for _, s := range strips {
			thickest = max(thickest, s.Thickness)
		}
		for _, s := range strips {
			if s.Thickness > 0 && s.Thickness < thickest {
				s.Expand = thickest / s.Thickness
				changed = true
			}
		}
	}
	if changed {
		p.Arrange()
	}
}

func (tr *Translator) snap(texts []*scene.Text, l *scene.Legend, w, h float64) {
	if !tr.cfg.PixelSnap() {
		return
	}
	// The legend moves its texts along, so it goes first.
	if l != nil {
		l.MoveTo(tr.cfg.Snap(l.Box.X0, w), tr.cfg.Snap(l.Box.Y0, h))
	}
	for _, t := range texts {
		t.MoveTo(tr.cfg.Snap(t.Box.X0, w), tr.cfg.Snap(t.Box.Y0, h))
	}
}
