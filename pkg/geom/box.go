// Package geom holds the rectangle type shared by the layout and render packages.
//
// All boxes are axis aligned. Layout code works in figure fractions where (0, 0) is
// the bottom left corner of the figure and (1, 1) the top right.
package geom

import "math"

// Eps is the tolerance used when comparing layout coordinates.
const Eps = 1e-9

// Box is an axis-aligned rectangle.
type Box struct {
	X0 float64 `json:"x0" bson:"x0"` // left
	Y0 float64 `json:"y0" bson:"y0"` // bottom
	X1 float64 `json:"x1" bson:"x1"` // right
	Y1 float64 `json:"y1" bson:"y1"` // top
}

// FromSize returns the box with bottom left corner (x, y) and the given extent.
func FromSize(x, y, w, h float64) Box {
	return Box{X0: x, Y0: y, X1: x + w, Y1: y + h}
}

// Width returns the horizontal span of the box.
func (b Box) Width() float64 { return b.X1 - b.X0 }

// Height returns the vertical span of the box.
func (b Box) Height() float64 { return b.Y1 - b.Y0 }

// CenterX returns the horizontal center of the box.
func (b Box) CenterX() float64 { return (b.X0 + b.X1) / 2 }

// CenterY returns the vertical center of the box.
func (b Box) CenterY() float64 { return (b.Y0 + b.Y1) / 2 }

// Empty reports whether the box has no area.
func (b Box) Empty() bool { return b.Width() <= 0 || b.Height() <= 0 }

// Union returns the smallest box containing both b and o.
// An empty operand is ignored.
func (b Box) Union(o Box) Box {
	if b.Empty() {
		return o
	}
	if o.Empty() {
		return b
	}
	return Box{
		X0: math.Min(b.X0, o.X0),
		Y0: math.Min(b.Y0, o.Y0),
		X1: math.Max(b.X1, o.X1),
		Y1: math.Max(b.Y1, o.Y1),
	}
}

// Contains reports whether o lies inside b, within Eps.
func (b Box) Contains(o Box) bool {
	return o.X0 >= b.X0-Eps && o.Y0 >= b.Y0-Eps && o.X1 <= b.X1+Eps && o.Y1 <= b.Y1+Eps
}

// Translate returns b moved by (dx, dy).
func (b Box) Translate(dx, dy float64) Box {
	return Box{X0: b.X0 + dx, Y0: b.Y0 + dy, X1: b.X1 + dx, Y1: b.Y1 + dy}
}

// Sub maps a box given in fractions of b (0..1 on both axes) into b's space.
func (b Box) Sub(f Box) Box {
	w, h := b.Width(), b.Height()
	return Box{
		X0: b.X0 + f.X0*w,
		Y0: b.Y0 + f.Y0*h,
		X1: b.X0 + f.X1*w,
		Y1: b.Y0 + f.Y1*h,
	}
}

// Point maps fractions (fx, fy) of b into b's space.
func (b Box) Point(fx, fy float64) (float64, float64) {
	return b.X0 + fx*b.Width(), b.Y0 + fy*b.Height()
}

// ApproxEqual reports whether a and b are equal within Eps.
func ApproxEqual(a, b float64) bool {
	return math.Abs(a-b) <= Eps
}

// RelPosition justifies an item of the given size within [lo, hi] and
// returns its lower edge. j is 0 for the lower end and 1 for the upper.
func RelPosition(j, size, lo, hi float64) float64 {
	return lo*(1-j) + (hi-size)*j
}
