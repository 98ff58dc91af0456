package figure

import (
	"github.com/matzehuels/ggframe/pkg/errors"
	"github.com/matzehuels/ggframe/pkg/theme"
)

// Item is an operand of a composition: a *Plot or a *Composition.
type Item interface {
	item()
}

func (*Plot) item()        {}
func (*Composition) item() {}

// Kind is the arrangement of a composition.
type Kind string

// Composition kinds.
const (
	Beside Kind = "beside" // side by side, one row
	Stack  Kind = "stack"  // on top of each other, one column
	Wrap   Kind = "wrap"   // flowed into a grid
)

// Layout customizes the grid of a composition. Zero values are filled in
// by [Composition.Finalize].
type Layout struct {
	NRow    int
	NCol    int
	ByRow   *bool
	Widths  []float64
	Heights []float64
}

// Annotation is the text around the top level composition.
type Annotation struct {
	Title    string
	Subtitle string
	Caption  string
	Theme    *theme.Theme
}

// Composition arranges plots and other compositions.
type Composition struct {
	Kind       Kind
	Items      []Item
	Layout     Layout
	Annotation *Annotation
}

// Or places rhs beside lhs. A beside lhs is extended instead of nested.
func Or(lhs, rhs Item) *Composition {
	if c, ok := lhs.(*Composition); ok && c.Kind == Beside {
		return c.extend(rhs)
	}
	return &Composition{Kind: Beside, Items: []Item{lhs, rhs}}
}

// Div places rhs below lhs. A stack lhs is extended instead of nested.
func Div(lhs, rhs Item) *Composition {
	if c, ok := lhs.(*Composition); ok && c.Kind == Stack {
		return c.extend(rhs)
	}
	return &Composition{Kind: Stack, Items: []Item{lhs, rhs}}
}

// Add wraps lhs and rhs into a grid. A wrap lhs is extended instead of
// nested.
func Add(lhs, rhs Item) *Composition {
	if c, ok := lhs.(*Composition); ok && c.Kind == Wrap {
		return c.extend(rhs)
	}
	return &Composition{Kind: Wrap, Items: []Item{lhs, rhs}}
}

// Sub places rhs beside lhs and always nests lhs as a single operand.
func Sub(lhs, rhs Item) *Composition {
	return &Composition{Kind: Beside, Items: []Item{lhs, rhs}}
}

// extend returns a copy of c with rhs appended, keeping the layout.
func (c *Composition) extend(rhs Item) *Composition {
	items := make([]Item, 0, len(c.Items)+1)
	items = append(items, c.Items...)
	return &Composition{
		Kind:       c.Kind,
		Items:      append(items, rhs),
		Layout:     c.Layout,
		Annotation: c.Annotation,
	}
}

// Finalize returns the layout with every dimension filled in.
//
// Stacks have one column and a row per item, besides one row and a
// column per item. Wraps default to ncol = ceil(sqrt(n)). Widths and
// heights are cycled to the grid size and normalized to a mean of 1.
func (c *Composition) Finalize() (Layout, error) {
	n := len(c.Items)
	if n == 0 {
		return Layout{}, errors.New(errors.ErrCodeInvalidConfig, "composition has no items")
	}
	l := c.Layout

	switch c.Kind {
	case Stack:
		if l.NRow == 0 {
			l.NRow = n
		} else if l.NRow < n {
			return Layout{}, errors.New(errors.ErrCodeInvalidConfig,
				"Specified fewer rows than the items in the composition.")
		}
		if l.NCol == 0 {
			l.NCol = 1
		}
	case Beside:
		if l.NCol == 0 {
			l.NCol = n
		} else if l.NCol < n {
			return Layout{}, errors.New(errors.ErrCodeInvalidConfig,
				"Specified fewer columns than the items in the composition.")
		}
		if l.NRow == 0 {
			l.NRow = 1
		}
	case Wrap:
		l.NRow, l.NCol = wrapShape(n, l.NRow, l.NCol)
	default:
		return Layout{}, errors.New(errors.ErrCodeInvalidConfig, "unknown composition kind %q", c.Kind)
	}

	if l.NRow*l.NCol < n {
		return Layout{}, errors.New(errors.ErrCodeInvalidConfig,
			"Specified fewer cells (%dx%d) than the items in the composition.", l.NRow, l.NCol)
	}
	if l.ByRow == nil {
		byRow := true
		l.ByRow = &byRow
	}

	var err error
	if l.Widths, err = ratios(l.Widths, l.NCol, "widths"); err != nil {
		return Layout{}, err
	}
	if l.Heights, err = ratios(l.Heights, l.NRow, "heights"); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// ratios cycles r to n values and scales them to a mean of 1.
func ratios(r []float64, n int, what string) ([]float64, error) {
	out := make([]float64, n)
	if len(r) == 0 {
		for i := range out {
			out[i] = 1
		}
		return out, nil
	}
	var sum float64
	for i := range out {
		out[i] = r[i%len(r)]
		if out[i] <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "%s must be positive, got %v", what, out[i])
		}
		sum += out[i]
	}
	mean := sum / float64(n)
	for i := range out {
		out[i] /= mean
	}
	return out, nil
}

// ThemeAll layers t on every plot of the composition, recursively.
func (c *Composition) ThemeAll(t *theme.Theme) {
	for _, it := range c.Items {
		switch v := it.(type) {
		case *Plot:
			if !v.Spacer {
				v.Theme = v.ResolvedTheme().Add(t)
			}
		case *Composition:
			v.ThemeAll(t)
		}
	}
}

// ThemeOuter layers t on the plots directly in the composition.
func (c *Composition) ThemeOuter(t *theme.Theme) {
	for _, it := range c.Items {
		if p, ok := it.(*Plot); ok && !p.Spacer {
			p.Theme = p.ResolvedTheme().Add(t)
		}
	}
}

// Plots returns every plot in the composition in depth-first order.
func (c *Composition) Plots() []*Plot {
	var out []*Plot
	for _, it := range c.Items {
		switch v := it.(type) {
		case *Plot:
			out = append(out, v)
		case *Composition:
			out = append(out, v.Plots()...)
		}
	}
	return out
}

// LastPlot returns the last plot added to the composition.
func (c *Composition) LastPlot() *Plot {
	switch v := c.Items[len(c.Items)-1].(type) {
	case *Plot:
		return v
	case *Composition:
		return v.LastPlot()
	}
	return nil
}

// Theme returns the theme the composition is drawn with: the theme of its
// last plot with the annotation theme layered on top.
func (c *Composition) Theme() *theme.Theme {
	t := c.LastPlot().ResolvedTheme()
	if c.Annotation != nil && c.Annotation.Theme != nil {
		t = t.Add(c.Annotation.Theme)
	}
	return t
}

// Depth returns the number of nesting levels below c.
func (c *Composition) Depth() int {
	d := 0
	for _, it := range c.Items {
		if sub, ok := it.(*Composition); ok {
			d = max(d, sub.Depth()+1)
		}
	}
	return d
}
