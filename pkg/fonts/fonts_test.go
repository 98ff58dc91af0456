package fonts

import "testing"

func TestParse(t *testing.T) {
	for _, family := range append(Families(), "Unknown") {
		t.Run(family, func(t *testing.T) {
			f, err := Parse(family)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", family, err)
			}
			if f.NumGlyphs() == 0 {
				t.Errorf("Parse(%q) has no glyphs", family)
			}
		})
	}
}

func TestTTFBase64Cached(t *testing.T) {
	a := TTFBase64(FontFamily)
	b := TTFBase64(FontFamily)
	if a == "" || a != b {
		t.Error("TTFBase64() should return the same non-empty string")
	}
}
