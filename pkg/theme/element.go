package theme

import (
	"fmt"
	"strconv"
)

// Element is a theme element. Nil fields are unset and inherit from the
// next element on the fallback chain.
type Element struct {
	Blank    bool     `json:"blank,omitempty"`
	Family   *string  `json:"family,omitempty"`
	Size     *float64 `json:"size,omitempty"`
	Color    *string  `json:"color,omitempty"`
	Fill     *string  `json:"fill,omitempty"`
	HA       *string  `json:"ha,omitempty"`
	VA       *string  `json:"va,omitempty"`
	Rotation *float64 `json:"rotation,omitempty"`
	Margin   *Margin  `json:"margin,omitempty"`
}

// ElementBlank returns an element that suppresses drawing.
func ElementBlank() Element { return Element{Blank: true} }

// inherit returns e with unset fields taken from parent.
func (e Element) inherit(parent Element) Element {
	if e.Family == nil {
		e.Family = parent.Family
	}
	if e.Size == nil {
		e.Size = parent.Size
	}
	if e.Color == nil {
		e.Color = parent.Color
	}
	if e.Fill == nil {
		e.Fill = parent.Fill
	}
	if e.HA == nil {
		e.HA = parent.HA
	}
	if e.VA == nil {
		e.VA = parent.VA
	}
	if e.Rotation == nil {
		e.Rotation = parent.Rotation
	}
	if e.Margin == nil {
		e.Margin = parent.Margin
	}
	return e
}

// FontSize returns the size in points, or def when unset.
func (e Element) FontSize(def float64) float64 {
	if e.Size == nil {
		return def
	}
	return *e.Size
}

// ColorOr returns the color, or def when unset.
func (e Element) ColorOr(def string) string {
	if e.Color == nil {
		return def
	}
	return *e.Color
}

// FillOr returns the fill, or def when unset.
func (e Element) FillOr(def string) string {
	if e.Fill == nil {
		return def
	}
	return *e.Fill
}

// Angle returns the rotation in degrees.
func (e Element) Angle() float64 {
	if e.Rotation == nil {
		return 0
	}
	return *e.Rotation
}

// Margin is the space around a text element.
type Margin struct {
	T    float64 `json:"t"`
	R    float64 `json:"r"`
	B    float64 `json:"b"`
	L    float64 `json:"l"`
	Unit string  `json:"unit,omitempty"` // pt (default), in, lines or fig
}

const pointsPerInch = 72

// Fig converts the margin to figure fractions for a figure of w x h
// inches. Top and bottom become fractions of the height, left and right
// fractions of the width. fontSize is used by the lines unit.
func (m Margin) Fig(w, h, fontSize float64) Margin {
	out := Margin{Unit: "fig"}
	conv := func(v, d float64) float64 {
		length := d * pointsPerInch
		switch m.Unit {
		case "fig":
			return v
		case "in":
			return v * pointsPerInch / length
		case "lines":
			return v * fontSize / length
		default:
			return v / length
		}
	}
	if w > 0 {
		out.L = conv(m.L, w)
		out.R = conv(m.R, w)
	}
	if h > 0 {
		out.T = conv(m.T, h)
		out.B = conv(m.B, h)
	}
	return out
}

// HAFraction converts a horizontal alignment to a fraction: left 0,
// center 0.5, right 1. Numeric strings are taken as is.
func HAFraction(ha string) (float64, error) {
	switch ha {
	case "left":
		return 0, nil
	case "center":
		return 0.5, nil
	case "right":
		return 1, nil
	}
	f, err := strconv.ParseFloat(ha, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid horizontal alignment %q", ha)
	}
	return f, nil
}

// VAFraction converts a vertical alignment to a fraction: top 1, center
// and baseline 0.5, bottom 0. Numeric strings are taken as is.
func VAFraction(va string) (float64, error) {
	switch va {
	case "top":
		return 1, nil
	case "center", "baseline", "center_baseline":
		return 0.5, nil
	case "bottom":
		return 0, nil
	}
	f, err := strconv.ParseFloat(va, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid vertical alignment %q", va)
	}
	return f, nil
}

func ptr[T any](v T) *T { return &v }
