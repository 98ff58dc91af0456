package gridspec

import (
	"github.com/matzehuels/ggframe/pkg/errors"
	"github.com/matzehuels/ggframe/pkg/geom"
)

// Params are the subplot parameters of a grid.
//
// Left, Right, Top and Bottom are the edges of the grid area. WSpace and
// HSpace are the gaps between cells as fractions of the average cell
// width and height.
type Params struct {
	Left   float64 `json:"left" bson:"left"`
	Right  float64 `json:"right" bson:"right"`
	Top    float64 `json:"top" bson:"top"`
	Bottom float64 `json:"bottom" bson:"bottom"`
	WSpace float64 `json:"wspace" bson:"wspace"`
	HSpace float64 `json:"hspace" bson:"hspace"`
}

// Full returns params covering the whole parent area with no gaps.
func Full() Params {
	return Params{Left: 0, Right: 1, Top: 1, Bottom: 0}
}

// Default returns the params a panel grid starts with before layout:
// the whole parent area with gaps of a fifth of a cell. Layout falls back
// to them when the computed params are degenerate.
func Default() Params {
	return Params{Left: 0, Right: 1, Top: 1, Bottom: 0, WSpace: 0.2, HSpace: 0.2}
}

// Valid reports whether the params enclose a non-empty area.
func (p Params) Valid() bool {
	return p.Top-p.Bottom > 0 && p.Right-p.Left > 0
}

// Validate returns a DEGENERATE_GEOMETRY error if the params do not
// enclose a non-empty area.
func (p Params) Validate() error {
	if !p.Valid() {
		return errors.New(errors.ErrCodeDegenerateGeometry,
			"the parameters of the gridspec do not create a regular rectangle (left=%.4f right=%.4f bottom=%.4f top=%.4f)",
			p.Left, p.Right, p.Bottom, p.Top)
	}
	return nil
}

// Box returns the area enclosed by the params.
func (p Params) Box() geom.Box {
	return geom.Box{X0: p.Left, Y0: p.Bottom, X1: p.Right, Y1: p.Top}
}
