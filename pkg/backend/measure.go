package backend

import (
	"math"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/ggframe/pkg/fonts"
)

// TextStyle is what text metrics depend on.
type TextStyle struct {
	Family   string
	Size     float64 // points
	Rotation float64 // degrees, counter clockwise
}

// Extent is the size of a piece of text in points.
type Extent struct {
	Width, Height float64
}

// Measurer reports the extent of text.
type Measurer interface {
	Measure(text string, style TextStyle) (Extent, error)
}

// FontMeasurer measures text with the embedded fonts.
// Faces are not safe for concurrent use, so access is serialized.
type FontMeasurer struct {
	mu          sync.Mutex
	faces       map[faceKey]font.Face
	lineSpacing float64
}

type faceKey struct {
	family string
	size   float64
}

// NewFontMeasurer returns a measurer using the embedded Go fonts.
func NewFontMeasurer() *FontMeasurer {
	return &FontMeasurer{faces: map[faceKey]font.Face{}, lineSpacing: 1.2}
}

// Measure returns the rotated bounding box of text. Lines are separated
// by newlines.
func (m *FontMeasurer) Measure(text string, style TextStyle) (Extent, error) {
	if text == "" {
		return Extent{}, nil
	}
	if style.Size <= 0 {
		style.Size = 11
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	face, err := m.face(style.Family, style.Size)
	if err != nil {
		return Extent{}, err
	}

	metrics := face.Metrics()
	lineHeight := fixedToFloat(metrics.Ascent + metrics.Descent)
	lines := strings.Split(text, "\n")

	var w float64
	for _, line := range lines {
		w = math.Max(w, fixedToFloat(font.MeasureString(face, line)))
	}
	h := lineHeight
	if n := len(lines); n > 1 {
		h += float64(n-1) * lineHeight * m.lineSpacing
	}
	return Rotate(Extent{Width: w, Height: h}, style.Rotation), nil
}

func (m *FontMeasurer) face(family string, size float64) (font.Face, error) {
	key := faceKey{family, size}
	if f, ok := m.faces[key]; ok {
		return f, nil
	}
	parsed, err := fonts.Parse(family)
	if err != nil {
		return nil, err
	}
	// 72 DPI makes one font unit one point.
	f, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	m.faces[key] = f
	return f, nil
}

// Close releases the cached faces.
func (m *FontMeasurer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, f := range m.faces {
		_ = f.Close()
		delete(m.faces, k)
	}
	return nil
}

// Rotate returns the bounding box of e rotated by deg degrees.
func Rotate(e Extent, deg float64) Extent {
	if deg == 0 {
		return e
	}
	rad := deg * math.Pi / 180
	sin, cos := math.Abs(math.Sin(rad)), math.Abs(math.Cos(rad))
	return Extent{
		Width:  e.Width*cos + e.Height*sin,
		Height: e.Width*sin + e.Height*cos,
	}
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
