package figure

import "github.com/matzehuels/ggframe/pkg/theme"

// Figure is a complete figure: a single plot or a composition.
type Figure struct {
	Name string
	Root Item
}

// Theme returns the theme that sizes the figure.
func (f *Figure) Theme() *theme.Theme {
	switch v := f.Root.(type) {
	case *Plot:
		return v.ResolvedTheme()
	case *Composition:
		return v.Theme()
	}
	return theme.Gray()
}

// Size returns the figure width and height in inches.
func (f *Figure) Size() (w, h float64) {
	return f.Theme().FigureSize()
}

// Plots returns every plot of the figure in depth-first order.
func (f *Figure) Plots() []*Plot {
	switch v := f.Root.(type) {
	case *Plot:
		return []*Plot{v}
	case *Composition:
		return v.Plots()
	}
	return nil
}
