// Package pipeline runs the load → layout → render pipeline shared by the
// CLI and the HTTP API.
//
// # Stages
//
//  1. Load: decode a figure file (TOML, YAML or JSON) into a figure
//  2. Layout: measure, align and solve every plot of the figure
//  3. Render: draw the laid out scene in every requested format
//
// Layout reports and rendered artifacts are cached under keys derived from
// the content hash of the figure file and the options that affect them.
// When every requested artifact is cached the layout is skipped entirely.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    Path:    "mpg.toml",
//	    Formats: []string{"svg", "png"},
//	})
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("mpg.svg", res.Artifacts["svg"], 0o644)
package pipeline

import (
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ggframe/pkg/cache"
	"github.com/matzehuels/ggframe/pkg/errors"
	"github.com/matzehuels/ggframe/pkg/figure"
	ggio "github.com/matzehuels/ggframe/pkg/io"
	"github.com/matzehuels/ggframe/pkg/layout"
)

// Output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json" // the layout report
	FormatTree = "tree" // composition tree diagram as SVG
	FormatDOT  = "dot"  // composition tree as Graphviz source
)

// Defaults.
const (
	DefaultScale = 1.0
	MaxScale     = 8.0
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatTree: true,
	FormatDOT:  true,
}

// Options configures one pipeline run. The input is either the file at
// Path or Data encoded as Format.
type Options struct {
	Path   string      `json:"-"`
	Data   []byte      `json:"-"`
	Format ggio.Format `json:"-"`

	// Layout options
	DPI        float64 `json:"dpi,omitempty"` // 0 uses the figure theme
	PixelSnap  bool    `json:"pixel_snap,omitempty"`
	FontFamily string  `json:"font_family,omitempty"`

	// Render options
	Formats   []string `json:"formats,omitempty"`
	Scale     float64  `json:"scale,omitempty"` // PNG only
	EmbedFont bool     `json:"embed_font,omitempty"`
	Ratios    bool     `json:"ratios,omitempty"` // tree diagrams only

	// Refresh ignores cached entries and overwrites them.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result is the outcome of a run.
type Result struct {
	// Figure is the loaded figure.
	Figure *figure.Figure

	// FigureHash is the content hash of the figure file.
	FigureHash string

	// Layout is the full layout result. It is nil when every artifact
	// came from the cache.
	Layout *layout.Result

	// Report is the serializable layout, from the layout or the cache.
	Report *layout.Report

	// Artifacts holds the rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Warnings are the non-fatal problems of the layout.
	Warnings []string

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats holds timings and sizes of a run.
type Stats struct {
	Plots      int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo records which stages were served from the cache.
type CacheInfo struct {
	LayoutHit bool
	RenderHit bool // every artifact was cached
}

// ValidateFormat checks that format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeUnsupported,
			"invalid format: %q (must be one of: %s)", format, strings.Join(FormatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks every format.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// FormatNames returns the supported formats in sorted order.
func FormatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	slices.Sort(names)
	return names
}

// ValidateAndSetDefaults checks the options and fills in defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	switch {
	case o.Path == "" && len(o.Data) == 0:
		return errors.New(errors.ErrCodeInvalidInput, "a figure file or figure data is required")
	case o.Path != "" && len(o.Data) > 0:
		return errors.New(errors.ErrCodeInvalidInput, "give either a figure file or figure data, not both")
	case len(o.Data) > 0 && o.Format == "":
		o.Format = ggio.FormatJSON
	}

	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	o.Formats = dedupe(o.Formats)
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}

	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Scale < 0 || o.Scale > MaxScale {
		return errors.New(errors.ErrCodeInvalidInput, "scale %v out of range (0, %v]", o.Scale, MaxScale)
	}
	if o.DPI < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "dpi must be positive, got %v", o.DPI)
	}
	o.validated = true
	return nil
}

// LayoutKeyOpts returns the cache key options of the layout stage.
func (o *Options) LayoutKeyOpts(dpi float64) cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{DPI: dpi, PixelSnap: o.PixelSnap, FontFamily: o.FontFamily}
}

// ArtifactKeyOpts returns the cache key options of one artifact.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatPNG:
		k.Scale = o.Scale
	case FormatSVG:
		k.EmbedFont = o.EmbedFont
	case FormatTree, FormatDOT:
		if o.Ratios {
			k.Variant = "ratios"
		}
	}
	return k
}

func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" && !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}
