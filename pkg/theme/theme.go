// Package theme resolves themeable properties through explicit fallback
// chains.
//
// Every themeable name has an ordered chain of more generic names, for
// example axis_title_y -> axis_title -> title -> text. Scalar lookups
// ([Theme.Getp]) return the first value set along the chain. Text lookups
// ([Theme.Text]) merge elements from the generic end to the specific end.
package theme

import (
	"fmt"
	"maps"
	"strings"
)

// Theme holds scalar properties and elements by themeable name.
// A Theme is not modified once built; [Theme.Add] returns a new one.
type Theme struct {
	values   map[string]any
	elements map[string]Element
}

// New returns an empty theme.
func New() *Theme {
	return &Theme{values: map[string]any{}, elements: map[string]Element{}}
}

// Set stores a scalar property and returns the theme.
func (t *Theme) Set(name string, v any) *Theme {
	t.values[name] = v
	return t
}

// SetElement stores an element and returns the theme.
func (t *Theme) SetElement(name string, e Element) *Theme {
	t.elements[name] = e
	return t
}

// Add returns a copy of t with the properties of o layered on top.
// Elements set in both are merged field by field with o winning, unless
// o's element is blank.
func (t *Theme) Add(o *Theme) *Theme {
	out := &Theme{values: maps.Clone(t.values), elements: maps.Clone(t.elements)}
	if o == nil {
		return out
	}
	maps.Copy(out.values, o.values)
	for name, e := range o.elements {
		if prev, ok := out.elements[name]; ok && !e.Blank {
			prev.Blank = false
			out.elements[name] = e.inherit(prev)
			continue
		}
		out.elements[name] = e
	}
	return out
}

// Getp returns the first scalar value set along name's chain.
func (t *Theme) Getp(name string) (any, bool) {
	for _, n := range Chain(name) {
		if v, ok := t.values[n]; ok {
			return v, true
		}
	}
	return nil, false
}

// Float returns a numeric property, or 0 if unset.
func (t *Theme) Float(name string) float64 {
	v, ok := t.Getp(name)
	if !ok {
		return 0
	}
	f, _ := toFloat(v)
	return f
}

// OptFloat returns a numeric property and whether it is set.
func (t *Theme) OptFloat(name string) (float64, bool) {
	v, ok := t.Getp(name)
	if !ok || v == nil {
		return 0, false
	}
	return toFloat(v)
}

// String returns a string property, or def if unset.
func (t *Theme) String(name, def string) string {
	v, ok := t.Getp(name)
	if !ok {
		return def
	}
	if s, ok := v.(string); ok {
		return s
	}
	return def
}

// FigureSize returns the figure width and height in inches.
func (t *Theme) FigureSize() (w, h float64) {
	v, ok := t.Getp("figure_size")
	if !ok {
		return 6.4, 4.8
	}
	if p, ok := toPair(v); ok {
		return p[0], p[1]
	}
	return 6.4, 4.8
}

// DPI returns the figure resolution.
func (t *Theme) DPI() float64 {
	if d, ok := t.OptFloat("dpi"); ok && d > 0 {
		return d
	}
	return 100
}

// Element returns the most specific element set along name's chain.
func (t *Theme) Element(name string) (Element, bool) {
	for _, n := range Chain(name) {
		if e, ok := t.elements[n]; ok {
			return e, true
		}
	}
	return Element{}, false
}

// IsBlank reports whether the most specific element on name's chain is
// blank. Names without any element are not blank.
func (t *Theme) IsBlank(name string) bool {
	e, ok := t.Element(name)
	return ok && e.Blank
}

// Text returns the element for name with every unset field filled in
// from the rest of the chain.
func (t *Theme) Text(name string) Element {
	chain := Chain(name)
	var merged Element
	for i := len(chain) - 1; i >= 0; i-- {
		if e, ok := t.elements[chain[i]]; ok {
			merged = e.inherit(merged)
		}
	}
	merged.Blank = t.IsBlank(name)
	return merged
}

// Margin returns the margin of a text element in figure fractions.
func (t *Theme) Margin(name string) Margin {
	e := t.Text(name)
	if e.Margin == nil {
		return Margin{Unit: "fig"}
	}
	w, h := t.FigureSize()
	return e.Margin.Fig(w, h, e.FontSize(11))
}

// HA returns the horizontal alignment fraction of a text element, or
// the fraction for def when unset.
func (t *Theme) HA(name, def string) float64 {
	e := t.Text(name)
	s := def
	if e.HA != nil {
		s = *e.HA
	}
	f, err := HAFraction(s)
	if err != nil {
		f, _ = HAFraction(def)
	}
	return f
}

// VA returns the vertical alignment fraction of a text element, or the
// fraction for def when unset.
func (t *Theme) VA(name, def string) float64 {
	e := t.Text(name)
	s := def
	if e.VA != nil {
		s = *e.VA
	}
	f, err := VAFraction(s)
	if err != nil {
		f, _ = VAFraction(def)
	}
	return f
}

// Position is a placement that is either a named location or an (x, y)
// pair.
type Position struct {
	Name string
	X, Y float64
	Pair bool
}

// String formats the position the way it is written in figure files.
func (p Position) String() string {
	if p.Pair {
		return fmt.Sprintf("(%g, %g)", p.X, p.Y)
	}
	return p.Name
}

// Has reports whether the named position mentions side, for example
// topleft has both top and left.
func (p Position) Has(side string) bool {
	return !p.Pair && strings.Contains(p.Name, side)
}

// Position returns a property that may be a name or a pair.
func (t *Theme) Position(name, def string) Position {
	v, ok := t.Getp(name)
	if !ok {
		return Position{Name: def}
	}
	if s, ok := v.(string); ok {
		return Position{Name: s}
	}
	if p, ok := toPair(v); ok {
		return Position{X: p[0], Y: p[1], Pair: true}
	}
	return Position{Name: def}
}

// Justification returns a legend justification fraction for side.
// Named values follow [HAFraction] for top and bottom legends and
// [VAFraction] for left and right legends.
func (t *Theme) Justification(side string) float64 {
	v, ok := t.Getp("legend_justification_" + side)
	if !ok {
		return 0.5
	}
	if f, ok := toFloat(v); ok {
		return f
	}
	s, _ := v.(string)
	var (
		f   float64
		err error
	)
	if side == "top" || side == "bottom" {
		f, err = HAFraction(s)
	} else {
		f, err = VAFraction(s)
	}
	if err != nil {
		return 0.5
	}
	return f
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case int32:
		return float64(x), true
	case uint64:
		return float64(x), true
	}
	return 0, false
}

func toPair(v any) ([2]float64, bool) {
	switch x := v.(type) {
	case [2]float64:
		return x, true
	case []float64:
		if len(x) == 2 {
			return [2]float64{x[0], x[1]}, true
		}
	case []any:
		if len(x) == 2 {
			a, ok1 := toFloat(x[0])
			b, ok2 := toFloat(x[1])
			if ok1 && ok2 {
				return [2]float64{a, b}, true
			}
		}
	}
	return [2]float64{}, false
}
