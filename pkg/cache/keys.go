package cache

// LayoutKeyOpts are the engine options that change a layout.
type LayoutKeyOpts struct {
	DPI        float64 `json:"dpi"`
	PixelSnap  bool    `json:"pixel_snap"`
	FontFamily string  `json:"font_family"`
}

// ArtifactKeyOpts are the render options that change an artifact.
type ArtifactKeyOpts struct {
	Format    string  `json:"format"`
	Scale     float64 `json:"scale,omitempty"`
	EmbedFont bool    `json:"embed_font,omitempty"`
	Variant   string  `json:"variant,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey keys the layout report of a figure file.
	LayoutKey(figureHash string, opts LayoutKeyOpts) string
	// ArtifactKey keys one rendered output of a layout.
	ArtifactKey(layoutKey string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes every option into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey returns "layout:<sha256>".
func (DefaultKeyer) LayoutKey(figureHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", figureHash, opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(layoutKey string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutKey, opts)
}
