package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ParseColor parses "#RGB", "#RRGGBB", "#RRGGBBAA" or an SVG color name.
// It returns nil for "none", the empty string and anything it does not
// understand.
func ParseColor(s string) color.Color {
	s = strings.TrimSpace(strings.ToLower(s))
	switch {
	case s == "" || s == "none" || s == "transparent":
		return nil
	case strings.HasPrefix(s, "#"):
		c, ok := parseHex(s[1:])
		if !ok {
			return nil
		}
		return c
	}
	// Accept the British spelling used by ggplot themes.
	s = strings.ReplaceAll(s, "grey", "gray")
	if c, ok := colornames.Map[s]; ok {
		return c
	}
	return nil
}

func parseHex(h string) (color.RGBA, bool) {
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return color.RGBA{}, false
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, true
}

// Hex formats c as "#RRGGBB", or "none" for nil. Alpha is dropped.
func Hex(c color.Color) string {
	if c == nil {
		return "none"
	}
	r, g, b, _ := RGB(c)
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

// RGB returns the 8-bit channels of c, alpha as a fraction.
func RGB(c color.Color) (r, g, b int, a float64) {
	rr, gg, bb, aa := c.RGBA()
	if aa == 0 {
		return 0, 0, 0, 0
	}
	// Undo the premultiplication.
	r = int(rr * 0xffff / aa >> 8)
	g = int(gg * 0xffff / aa >> 8)
	b = int(bb * 0xffff / aa >> 8)
	return r, g, b, float64(aa) / 0xffff
}
