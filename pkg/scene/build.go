package scene

import (
	"github.com/matzehuels/ggframe/pkg/backend"
	"github.com/matzehuels/ggframe/pkg/errors"
	"github.com/matzehuels/ggframe/pkg/figure"
	"github.com/matzehuels/ggframe/pkg/geom"
	"github.com/matzehuels/ggframe/pkg/gridspec"
	"github.com/matzehuels/ggframe/pkg/theme"
)

const pointsPerInch = 72

// Build measures fig and places its plots on provisional grids.
//
// Every plot gets a 1x1 frame grid in the cell it occupies and a panel
// grid nested in the frame with [gridspec.Default] params. Texts are
// measured with m and sized in fractions of the figure.
func Build(fig *figure.Figure, m backend.Measurer) (*Figure, error) {
	if fig == nil || fig.Root == nil {
		return nil, errors.New(errors.ErrCodeInvalidSpec, "figure has nothing to draw")
	}
	w, h := fig.Size()
	if w <= 0 || h <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "invalid figure_size (%g, %g)", w, h)
	}
	b := &builder{m: m, w: w, h: h}
	out := &Figure{Name: fig.Name, Width: w, Height: h, DPI: fig.Theme().DPI()}

	switch v := fig.Root.(type) {
	case *figure.Plot:
		p, err := b.plot(v, gridspec.New(1, 1))
		if err != nil {
			return nil, err
		}
		out.Root = p
		out.Plots = []*Plot{p}
	case *figure.Composition:
		c, err := b.composition(v, nil)
		if err != nil {
			return nil, err
		}
		if err := b.annotate(c, v.Annotation); err != nil {
			return nil, err
		}
		out.Root = c
		out.Plots = c.Plots()
	default:
		return nil, errors.New(errors.ErrCodeInvalidSpec, "unsupported figure item %T", fig.Root)
	}
	return out, nil
}

type builder struct {
	m    backend.Measurer
	w, h float64
}

// sized returns t with the figure size of the figure being built, so
// margins convert against the real figure.
func (b *builder) sized(t *theme.Theme) *theme.Theme {
	return t.Add(theme.New().Set("figure_size", [2]float64{b.w, b.h}))
}

// text measures content styled as the themeable name. It returns nil for
// empty content or a blank element.
func (b *builder) text(t *theme.Theme, name, content string) (*Text, error) {
	if content == "" || t.IsBlank(name) {
		return nil, nil
	}
	style := t.Text(name)
	family := ""
	if style.Family != nil {
		family = *style.Family
	}
	ext, err := b.m.Measure(content, backend.TextStyle{
		Family:   family,
		Size:     style.FontSize(11),
		Rotation: style.Angle(),
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "measure %s", name)
	}
	return &Text{
		Name:    name,
		Content: content,
		Style:   style,
		Box:     geom.FromSize(0, 0, ext.Width/(b.w*pointsPerInch), ext.Height/(b.h*pointsPerInch)),
	}, nil
}

func (b *builder) plot(p *figure.Plot, frame *gridspec.GridSpec) (*Plot, error) {
	t := b.sized(p.ResolvedTheme())
	n, nrow, ncol, err := p.Facet.Shape()
	if err != nil {
		return nil, err
	}

	sp := &Plot{
		Name:   p.Name,
		Source: p,
		Theme:  t,
		Spacer: p.Spacer,
		Facet:  p.Facet,
		NRow:   nrow,
		NCol:   ncol,
		W:      b.w,
		H:      b.h,
		Frame:  frame,
		Panels: gridspec.New(nrow, ncol, gridspec.NestInto(frame.Cell(0, 0))),
	}
	sp.Panels.Update(gridspec.Default())

	texts := []struct {
		dst     **Text
		name    string
		content string
	}{
		{&sp.Title, "plot_title", p.Title},
		{&sp.Subtitle, "plot_subtitle", p.Subtitle},
		{&sp.Caption, "plot_caption", p.Caption},
		{&sp.Tag, "plot_tag", p.Tag},
		{&sp.AxisTitleX, "axis_title_x", p.XLabel},
		{&sp.AxisTitleY, "axis_title_y", p.YLabel},
	}
	for _, tx := range texts {
		if *tx.dst, err = b.text(t, tx.name, tx.content); err != nil {
			return nil, err
		}
	}

	if sp.Legend, err = b.legend(t, p.Legend); err != nil {
		return nil, err
	}
	if err := b.panels(sp, n); err != nil {
		return nil, err
	}
	sp.Arrange()
	return sp, nil
}

// panels creates the panels of the facet in row major order.
func (b *builder) panels(sp *Plot, n int) error {
	t, f, src := sp.Theme, sp.Facet, sp.Source

	xLen, yLen := 0.0, 0.0
	if !t.IsBlank("axis_ticks_major_x") {
		xLen = t.Float("axis_ticks_length_major_x") / (b.h * pointsPerInch)
	}
	if !t.IsBlank("axis_ticks_major_y") {
		yLen = t.Float("axis_ticks_length_major_y") / (b.w * pointsPerInch)
	}

	for i := 0; i < n; i++ {
		row, col := i/sp.NCol, i%sp.NCol
		pn := &Panel{Index: i, Row: row, Col: col, Cell: sp.Panels.Cell(row, col)}

		switch f.Kind {
		case figure.FacetWrap:
			pn.ShowX = f.FreeX || row == sp.NRow-1 || i+sp.NCol >= n
			pn.ShowY = f.FreeY || col == 0
		case figure.FacetGrid:
			pn.ShowX = row == sp.NRow-1
			pn.ShowY = col == 0
		default:
			pn.ShowX, pn.ShowY = true, true
		}

		var err error
		if pn.ShowX {
			if pn.XTicks, err = b.ticks(t, "axis_text_x", src.XBreaks, xLen); err != nil {
				return err
			}
		}
		if pn.ShowY {
			if pn.YTicks, err = b.ticks(t, "axis_text_y", src.YBreaks, yLen); err != nil {
				return err
			}
		}
		if err := b.strips(sp, pn); err != nil {
			return err
		}
		sp.PanelList = append(sp.PanelList, pn)
	}
	return nil
}

func (b *builder) ticks(t *theme.Theme, name string, breaks []figure.Break, length float64) ([]Tick, error) {
	ticks := make([]Tick, 0, len(breaks))
	for _, br := range breaks {
		label, err := b.text(t, name, br.Label)
		if err != nil {
			return nil, err
		}
		ticks = append(ticks, Tick{Pos: br.Pos, Label: label, Length: length})
	}
	return ticks, nil
}

// strips adds the facet labels of a panel. Wrap panels have a strip on
// top. Grid panels have column strips along the top row and row strips
// along the right column.
func (b *builder) strips(sp *Plot, pn *Panel) error {
	t, f := sp.Theme, sp.Facet
	var xLabel, yLabel string
	switch f.Kind {
	case figure.FacetWrap:
		xLabel = f.Panels[pn.Index]
	case figure.FacetGrid:
		if pn.Row == 0 && len(f.Cols) > 0 {
			xLabel = f.Cols[pn.Col]
		}
		if pn.Col == sp.NCol-1 && len(f.Rows) > 0 {
			yLabel = f.Rows[pn.Row]
		}
	default:
		return nil
	}

	if label, err := b.text(t, "strip_text_x", xLabel); err != nil {
		return err
	} else if label != nil {
		m := t.Margin("strip_text_x")
		pn.StripX = &Strip{
			Label:     label,
			Position:  "top",
			Align:     t.Float("strip_align_x"),
			Thickness: label.Height() + m.T + m.B,
			Expand:    1,
		}
	}
	if label, err := b.text(t, "strip_text_y", yLabel); err != nil {
		return err
	} else if label != nil {
		m := t.Margin("strip_text_y")
		pn.StripY = &Strip{
			Label:     label,
			Position:  "right",
			Align:     t.Float("strip_align_y"),
			Thickness: label.Width() + m.L + m.R,
			Expand:    1,
		}
	}
	return nil
}

func (b *builder) composition(c *figure.Composition, parent *gridspec.Cell) (*Composition, error) {
	l, err := c.Finalize()
	if err != nil {
		return nil, err
	}
	opts := []gridspec.Option{gridspec.ByRow(*l.ByRow)}
	if parent != nil {
		opts = append(opts, gridspec.NestInto(*parent))
	}
	g := gridspec.New(l.NRow, l.NCol, opts...)
	g.SetWidthRatios(l.Widths)
	g.SetHeightRatios(l.Heights)

	sc := &Composition{
		Source: c,
		Kind:   c.Kind,
		Layout: l,
		Theme:  b.sized(c.Theme()),
		Grid:   g,
	}
	cells := g.Cells()
	for i, it := range c.Items {
		cell := cells[i]
		switch v := it.(type) {
		case *figure.Plot:
			p, err := b.plot(v, gridspec.New(1, 1, gridspec.NestInto(cell)))
			if err != nil {
				return nil, err
			}
			sc.Items = append(sc.Items, p)
		case *figure.Composition:
			sub, err := b.composition(v, &cell)
			if err != nil {
				return nil, err
			}
			sc.Items = append(sc.Items, sub)
		default:
			return nil, errors.New(errors.ErrCodeInvalidSpec, "unsupported composition item %T", it)
		}
	}
	return sc, nil
}

// annotate measures the title, subtitle and caption of the top level
// composition.
func (b *builder) annotate(c *Composition, a *figure.Annotation) error {
	if a == nil {
		return nil
	}
	var err error
	if c.Title, err = b.text(c.Theme, "plot_title", a.Title); err != nil {
		return err
	}
	if c.Subtitle, err = b.text(c.Theme, "plot_subtitle", a.Subtitle); err != nil {
		return err
	}
	c.Caption, err = b.text(c.Theme, "plot_caption", a.Caption)
	return err
}

func (b *builder) legend(t *theme.Theme, lg *figure.Legend) (*Legend, error) {
	if lg == nil || len(lg.Keys) == 0 {
		return nil, nil
	}
	l := &Legend{}
	pos := t.Position("legend_position", LegendRight)
	switch {
	case pos.Pair:
		l.Position = LegendInside
		l.Anchor = [2]float64{pos.X, pos.Y}
	case pos.Name == "none":
		return nil, nil
	case pos.Name == LegendInside:
		l.Position = LegendInside
		l.Anchor = [2]float64{0.5, 0.5}
		if ip := t.Position("legend_position_inside", ""); ip.Pair {
			l.Anchor = [2]float64{ip.X, ip.Y}
		}
	case pos.Name == LegendRight, pos.Name == LegendLeft, pos.Name == LegendTop, pos.Name == LegendBottom:
		l.Position = pos.Name
		l.Justification = t.Justification(pos.Name)
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown legend_position %q", pos)
	}
	if l.Position == LegendInside {
		l.InsideJust = l.Anchor
		if j := t.Position("legend_justification_inside", ""); j.Pair {
			l.InsideJust = [2]float64{j.X, j.Y}
		}
	}

	var err error
	if l.Title, err = b.text(t, "legend_title", lg.Title); err != nil {
		return nil, err
	}
	for _, k := range lg.Keys {
		label, err := b.text(t, "legend_text", k)
		if err != nil {
			return nil, err
		}
		l.Keys = append(l.Keys, LegendKey{Label: label})
	}
	b.packLegend(t, l)
	return l, nil
}

// packLegend lays out the title and keys of l with its bottom left corner
// at the origin. Keys are stacked for side and inside legends and put in
// a row for top and bottom legends.
func (b *builder) packLegend(t *theme.Theme, l *Legend) {
	keySize := t.Float("legend_key_size")
	kw, kh := keySize/(b.w*pointsPerInch), keySize/(b.h*pointsPerInch)
	sx := t.Float("legend_key_spacing_x") / (b.w * pointsPerInch)
	sy := t.Float("legend_key_spacing_y") / (b.h * pointsPerInch)
	tm := t.Margin("legend_text")

	var titleW, titleH float64
	tt := t.Margin("legend_title")
	if l.Title != nil {
		titleW = l.Title.Width() + tt.L + tt.R
		titleH = l.Title.Height() + tt.T + tt.B
	}

	labelW := func(k LegendKey) float64 {
		if k.Label == nil {
			return 0
		}
		return k.Label.Width()
	}
	labelH := func(k LegendKey) float64 {
		if k.Label == nil {
			return 0
		}
		return k.Label.Height()
	}

	n := float64(len(l.Keys))
	var width, keysH float64
	if l.Vertical() {
		var maxLabel float64
		for _, k := range l.Keys {
			maxLabel = max(maxLabel, labelW(k))
		}
		width = max(titleW, kw+tm.L+maxLabel+tm.R)
		keysH = n*kh + (n-1)*sy
	} else {
		for i, k := range l.Keys {
			if i > 0 {
				width += sx
			}
			width += kw + tm.L + labelW(k) + tm.R
			keysH = max(keysH, kh, labelH(k))
		}
		width = max(width, titleW)
	}
	height := titleH + keysH
	l.Box = geom.Box{X0: 0, Y0: 0, X1: width, Y1: height}

	if l.Title != nil {
		l.Title.MoveTo(tt.L, height-tt.T-l.Title.Height())
	}
	top := keysH
	x := 0.0
	for i := range l.Keys {
		k := &l.Keys[i]
		var y0 float64
		if l.Vertical() {
			y0 = top - float64(i+1)*kh - float64(i)*sy
		} else {
			y0 = (keysH - kh) / 2
		}
		k.Key = geom.FromSize(x, y0, kw, kh)
		if k.Label != nil {
			k.Label.MoveTo(x+kw+tm.L, y0+kh/2-k.Label.Height()/2)
		}
		if !l.Vertical() {
			x += kw + tm.L + labelW(*k) + tm.R + sx
		}
	}
}
