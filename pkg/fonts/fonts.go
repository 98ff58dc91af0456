// Package fonts provides the embedded font faces used for text metrics
// and for embedding in SVG output.
//
// The fonts are the Go font family shipped with golang.org/x/image, so
// measurement and rendering use the same outlines without any system
// font lookup.
package fonts

import (
	"encoding/base64"
	"sync"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontFamily is the default family name.
const FontFamily = "Go"

// FallbackFontFamily is the CSS font-family list used in SVG output.
const FallbackFontFamily = `'Go', 'Helvetica Neue', Arial, sans-serif`

var ttf = map[string][]byte{
	"Go":        goregular.TTF,
	"Go Bold":   gobold.TTF,
	"Go Italic": goitalic.TTF,
	"Go Mono":   gomono.TTF,
}

// Families returns the names of the embedded families.
func Families() []string {
	return []string{"Go", "Go Bold", "Go Italic", "Go Mono"}
}

// TTF returns the TrueType data of a family. Unknown families fall back
// to the regular face.
func TTF(family string) []byte {
	if b, ok := ttf[family]; ok {
		return b
	}
	return goregular.TTF
}

var (
	parsedMu sync.Mutex
	parsed   = map[string]*opentype.Font{}
)

// Parse returns the parsed font of a family. Results are cached.
func Parse(family string) (*opentype.Font, error) {
	if _, ok := ttf[family]; !ok {
		family = FontFamily
	}
	parsedMu.Lock()
	defer parsedMu.Unlock()
	if f, ok := parsed[family]; ok {
		return f, nil
	}
	f, err := opentype.Parse(ttf[family])
	if err != nil {
		return nil, err
	}
	parsed[family] = f
	return f, nil
}

// Cache for base64-encoded fonts (computed once on first access).
var (
	b64Mu sync.Mutex
	b64   = map[string]string{}
)

// TTFBase64 returns the TrueType data of a family as a base64 string.
// The result is cached after first computation.
func TTFBase64(family string) string {
	b64Mu.Lock()
	defer b64Mu.Unlock()
	if s, ok := b64[family]; ok {
		return s
	}
	s := base64.StdEncoding.EncodeToString(TTF(family))
	b64[family] = s
	return s
}
