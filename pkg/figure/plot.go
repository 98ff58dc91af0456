// Package figure is the declarative figure model: plots, facets and
// compositions of plots.
//
// Values in this package describe what to draw. The layout engine turns
// them into measured artifacts and decides where everything goes.
package figure

import (
	"math"

	"github.com/matzehuels/ggframe/pkg/errors"
	"github.com/matzehuels/ggframe/pkg/theme"
)

// Break is a tick on an axis. Pos is the fraction along the panel.
type Break struct {
	Pos   float64 `json:"pos" yaml:"pos" toml:"pos"`
	Label string  `json:"label" yaml:"label" toml:"label"`
}

// Legend is a guide box with a title and one key per entry.
type Legend struct {
	Title string   `json:"title" yaml:"title" toml:"title"`
	Keys  []string `json:"keys" yaml:"keys" toml:"keys"`
}

// Plot is one plot: panels plus the text and guides around them.
type Plot struct {
	Name     string
	Title    string
	Subtitle string
	Caption  string
	Tag      string
	XLabel   string
	YLabel   string
	XBreaks  []Break
	YBreaks  []Break
	Legend   *Legend
	Facet    Facet
	Theme    *theme.Theme

	// Spacer marks a blank plot that only takes up a cell.
	Spacer bool
}

// NewSpacer returns a blank plot. A non-empty fill colors its background.
func NewSpacer(fill string) *Plot {
	t := theme.Void()
	if fill != "" {
		t = t.Add(theme.New().SetElement("plot_background", theme.Element{Fill: &fill}))
	}
	return &Plot{Name: "spacer", Spacer: true, Theme: t}
}

// ResolvedTheme returns the plot theme, or the default theme if unset.
func (p *Plot) ResolvedTheme() *theme.Theme {
	if p.Theme == nil {
		return theme.Gray()
	}
	return p.Theme
}

// FacetKind selects how panels are arranged.
type FacetKind string

// Facet kinds.
const (
	FacetNull FacetKind = "null"
	FacetWrap FacetKind = "wrap"
	FacetGrid FacetKind = "grid"
)

// Facet splits a plot into panels.
//
// Wrap panels are labelled by Panels and flow row by row. Grid panels are
// labelled by Rows and Cols. Free scales draw axis text on every panel of
// a wrap facet.
type Facet struct {
	Kind   FacetKind
	NRow   int
	NCol   int
	Panels []string
	Rows   []string
	Cols   []string
	FreeX  bool
	FreeY  bool
	Aspect float64 // panel height / width; 0 defers to the theme
}

// Shape returns the number of panels, rows and columns of the facet.
func (f Facet) Shape() (n, nrow, ncol int, err error) {
	switch f.Kind {
	case "", FacetNull:
		return 1, 1, 1, nil
	case FacetGrid:
		nrow, ncol = max(len(f.Rows), 1), max(len(f.Cols), 1)
		return nrow * ncol, nrow, ncol, nil
	case FacetWrap:
		n = len(f.Panels)
		if n == 0 {
			return 0, 0, 0, errors.New(errors.ErrCodeInvalidConfig, "facet_wrap needs at least one panel")
		}
		nrow, ncol = wrapShape(n, f.NRow, f.NCol)
		if nrow*ncol < n {
			return 0, 0, 0, errors.New(errors.ErrCodeInvalidConfig,
				"facet_wrap with %d rows and %d columns cannot hold %d panels", nrow, ncol, n)
		}
		return n, nrow, ncol, nil
	}
	return 0, 0, 0, errors.New(errors.ErrCodeInvalidConfig, "unknown facet %q", f.Kind)
}

// AspectRatio returns the required panel aspect ratio, if any. The facet
// value wins over the theme's aspect_ratio.
func (f Facet) AspectRatio(t *theme.Theme) (float64, bool) {
	if f.Aspect > 0 {
		return f.Aspect, true
	}
	if r, ok := t.OptFloat("aspect_ratio"); ok && r > 0 {
		return r, true
	}
	return 0, false
}

// wrapShape fills in missing dimensions for n items. Without either
// dimension the grid is as square as possible, wider than tall.
func wrapShape(n, nrow, ncol int) (int, int) {
	switch {
	case nrow <= 0 && ncol <= 0:
		ncol = int(math.Ceil(math.Sqrt(float64(n))))
		nrow = ceilDiv(n, ncol)
	case nrow <= 0:
		nrow = ceilDiv(n, ncol)
	case ncol <= 0:
		ncol = ceilDiv(n, nrow)
	}
	return nrow, ncol
}

func ceilDiv(a, b int) int { return (a + b - 1) / b }
