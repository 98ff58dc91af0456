// Package backend holds the drawing-backend settings and text metrics used
// by the layout engine.
//
// A [Config] is built once with functional options and never modified.
// It is passed explicitly to the code that needs it; there is no global
// style state.
package backend

import "math"

// Config is the write-once backend configuration.
type Config struct {
	dpi        float64
	pixelSnap  bool
	fontFamily string
	background string
	foreground string
	accent     string
}

// Option configures a Config.
type Option func(*Config)

// WithDPI sets the output resolution. Non-positive values are ignored.
func WithDPI(dpi float64) Option {
	return func(c *Config) {
		if dpi > 0 {
			c.dpi = dpi
		}
	}
}

// WithPixelSnap rounds artifact positions to whole device pixels.
func WithPixelSnap(on bool) Option {
	return func(c *Config) { c.pixelSnap = on }
}

// WithFontFamily sets the default font family.
func WithFontFamily(family string) Option {
	return func(c *Config) {
		if family != "" {
			c.fontFamily = family
		}
	}
}

// WithColors sets the figure background, default text color and the
// accent used for legend keys.
func WithColors(background, foreground, accent string) Option {
	return func(c *Config) {
		if background != "" {
			c.background = background
		}
		if foreground != "" {
			c.foreground = foreground
		}
		if accent != "" {
			c.accent = accent
		}
	}
}

// NewConfig returns a Config with defaults overridden by opts.
func NewConfig(opts ...Option) Config {
	c := Config{
		dpi:        100,
		fontFamily: "Go",
		background: "#FFFFFF",
		foreground: "#000000",
		accent:     "#3366CC",
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// DPI returns the output resolution.
func (c Config) DPI() float64 { return c.dpi }

// PixelSnap reports whether positions are rounded to device pixels.
func (c Config) PixelSnap() bool { return c.pixelSnap }

// FontFamily returns the default font family.
func (c Config) FontFamily() string { return c.fontFamily }

// Background returns the figure background color.
func (c Config) Background() string { return c.background }

// Foreground returns the default text color.
func (c Config) Foreground() string { return c.foreground }

// Accent returns the legend key color.
func (c Config) Accent() string { return c.accent }

// Snap rounds a figure fraction to the device pixel grid of an axis that
// is inches long. Without pixel snapping v is returned unchanged.
func (c Config) Snap(v, inches float64) float64 {
	if !c.pixelSnap || inches <= 0 {
		return v
	}
	px := inches * c.dpi
	return math.Round(v*px) / px
}
