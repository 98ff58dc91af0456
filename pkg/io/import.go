package io

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/ggframe/pkg/errors"
	"github.com/matzehuels/ggframe/pkg/figure"
	"github.com/matzehuels/ggframe/pkg/theme"
)

// Format is the encoding of a figure file.
type Format string

// Supported formats.
const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatOf returns the format of path from its extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat,
		"unknown figure file extension %q (want .toml, .yaml or .json)", filepath.Ext(path))
}

// Document is a decoded figure file.
type Document struct {
	Name        string         `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Theme       map[string]any `json:"theme,omitempty" yaml:"theme,omitempty" toml:"theme,omitempty"`
	Plots       []PlotDoc      `json:"plots" yaml:"plots" toml:"plots"`
	Composition *Composition   `json:"composition,omitempty" yaml:"composition,omitempty" toml:"composition,omitempty"`
}

// PlotDoc declares one plot.
type PlotDoc struct {
	Name     string         `json:"name" yaml:"name" toml:"name"`
	Title    string         `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`
	Subtitle string         `json:"subtitle,omitempty" yaml:"subtitle,omitempty" toml:"subtitle,omitempty"`
	Caption  string         `json:"caption,omitempty" yaml:"caption,omitempty" toml:"caption,omitempty"`
	Tag      string         `json:"tag,omitempty" yaml:"tag,omitempty" toml:"tag,omitempty"`
	XLabel   string         `json:"x_label,omitempty" yaml:"x_label,omitempty" toml:"x_label,omitempty"`
	YLabel   string         `json:"y_label,omitempty" yaml:"y_label,omitempty" toml:"y_label,omitempty"`
	XBreaks  []figure.Break `json:"x_breaks,omitempty" yaml:"x_breaks,omitempty" toml:"x_breaks,omitempty"`
	YBreaks  []figure.Break `json:"y_breaks,omitempty" yaml:"y_breaks,omitempty" toml:"y_breaks,omitempty"`
	Legend   *figure.Legend `json:"legend,omitempty" yaml:"legend,omitempty" toml:"legend,omitempty"`
	Facet    *Facet         `json:"facet,omitempty" yaml:"facet,omitempty" toml:"facet,omitempty"`
	Theme    map[string]any `json:"theme,omitempty" yaml:"theme,omitempty" toml:"theme,omitempty"`
	Spacer   bool           `json:"spacer,omitempty" yaml:"spacer,omitempty" toml:"spacer,omitempty"`
	Fill     string         `json:"fill,omitempty" yaml:"fill,omitempty" toml:"fill,omitempty"`
}

// Facet declares the panels of a plot.
type Facet struct {
	Kind   string   `json:"kind" yaml:"kind" toml:"kind"`
	NRow   int      `json:"nrow,omitempty" yaml:"nrow,omitempty" toml:"nrow,omitempty"`
	NCol   int      `json:"ncol,omitempty" yaml:"ncol,omitempty" toml:"ncol,omitempty"`
	Panels []string `json:"panels,omitempty" yaml:"panels,omitempty" toml:"panels,omitempty"`
	Rows   []string `json:"rows,omitempty" yaml:"rows,omitempty" toml:"rows,omitempty"`
	Cols   []string `json:"cols,omitempty" yaml:"cols,omitempty" toml:"cols,omitempty"`
	FreeX  bool     `json:"free_x,omitempty" yaml:"free_x,omitempty" toml:"free_x,omitempty"`
	FreeY  bool     `json:"free_y,omitempty" yaml:"free_y,omitempty" toml:"free_y,omitempty"`
	Aspect float64  `json:"aspect,omitempty" yaml:"aspect,omitempty" toml:"aspect,omitempty"`
}

// Composition declares how the plots are arranged.
type Composition struct {
	Expr       string      `json:"expr" yaml:"expr" toml:"expr"`
	Layout     *Layout     `json:"layout,omitempty" yaml:"layout,omitempty" toml:"layout,omitempty"`
	Annotation *Annotation `json:"annotation,omitempty" yaml:"annotation,omitempty" toml:"annotation,omitempty"`
}

// Layout overrides the grid of the outer composition.
type Layout struct {
	NRow    int       `json:"nrow,omitempty" yaml:"nrow,omitempty" toml:"nrow,omitempty"`
	NCol    int       `json:"ncol,omitempty" yaml:"ncol,omitempty" toml:"ncol,omitempty"`
	ByRow   *bool     `json:"byrow,omitempty" yaml:"byrow,omitempty" toml:"byrow,omitempty"`
	Widths  []float64 `json:"widths,omitempty" yaml:"widths,omitempty" toml:"widths,omitempty"`
	Heights []float64 `json:"heights,omitempty" yaml:"heights,omitempty" toml:"heights,omitempty"`
}

// Annotation is the text around the whole composition.
type Annotation struct {
	Title    string         `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`
	Subtitle string         `json:"subtitle,omitempty" yaml:"subtitle,omitempty" toml:"subtitle,omitempty"`
	Caption  string         `json:"caption,omitempty" yaml:"caption,omitempty" toml:"caption,omitempty"`
	Theme    map[string]any `json:"theme,omitempty" yaml:"theme,omitempty" toml:"theme,omitempty"`
}

// Read decodes a figure file in format f from r. Unknown keys are
// rejected so that typos do not silently fall back to defaults.
//
// Read does not close r.
func Read(r io.Reader, f Format) (*Document, error) {
	var doc Document
	switch f {
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&doc)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml")
		}
		if extra := md.Undecoded(); len(extra) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidSpec, "unknown key %q", extra[0].String())
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode yaml")
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported figure format %q", f)
	}
	return &doc, nil
}

// Load decodes data in format f and builds the figure.
func Load(data []byte, f Format) (*figure.Figure, error) {
	doc, err := Read(bytes.NewReader(data), f)
	if err != nil {
		return nil, err
	}
	return doc.Figure()
}

// ImportFile reads the figure file at path. It returns the raw bytes
// alongside the figure so callers can key caches on the content.
//
// A document without a name is named after the file.
func ImportFile(path string) (*figure.Figure, []byte, error) {
	f, err := FormatOf(path)
	if err != nil {
		return nil, nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "figure file %s", path)
	}
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	fig, err := Load(data, f)
	if err != nil {
		return nil, nil, errors.Wrap(errors.GetCode(err), err, "%s", path)
	}
	if fig.Name == "" {
		fig.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return fig, data, nil
}

// Figure builds the figure the document declares.
func (d *Document) Figure() (*figure.Figure, error) {
	if len(d.Plots) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidSpec, "figure has no plots")
	}

	plots := make(map[string]*figure.Plot, len(d.Plots))
	names := make([]string, 0, len(d.Plots))
	for i := range d.Plots {
		pd := &d.Plots[i]
		if err := errors.ValidatePlotName(pd.Name); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSpec, err, "plot %d", i+1)
		}
		if _, dup := plots[pd.Name]; dup {
			return nil, errors.New(errors.ErrCodeInvalidSpec, "duplicate plot %q", pd.Name)
		}
		p, err := pd.plot(d.Theme)
		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "plot %q", pd.Name)
		}
		plots[pd.Name] = p
		names = append(names, pd.Name)
	}

	comp := d.Composition
	if comp == nil {
		if len(names) == 1 {
			return &figure.Figure{Name: d.Name, Root: plots[names[0]]}, nil
		}
		comp = &Composition{Expr: strings.Join(names, " + ")}
	}

	root, err := figure.Parse(comp.Expr, plots)
	if err != nil {
		return nil, err
	}
	c, ok := root.(*figure.Composition)
	if !ok {
		if comp.Layout != nil || comp.Annotation != nil {
			return nil, errors.New(errors.ErrCodeInvalidSpec,
				"layout and annotation need a composition of several plots, got %q", comp.Expr)
		}
		return &figure.Figure{Name: d.Name, Root: root}, nil
	}

	if l := comp.Layout; l != nil {
		c.Layout = figure.Layout{NRow: l.NRow, NCol: l.NCol, ByRow: l.ByRow, Widths: l.Widths, Heights: l.Heights}
	}
	if a := comp.Annotation; a != nil {
		c.Annotation = &figure.Annotation{Title: a.Title, Subtitle: a.Subtitle, Caption: a.Caption}
		if len(a.Theme) > 0 {
			t, err := theme.FromMap(merge(d.Theme, a.Theme))
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "annotation theme")
			}
			c.Annotation.Theme = t
		}
	}
	return &figure.Figure{Name: d.Name, Root: c}, nil
}

func (pd *PlotDoc) plot(global map[string]any) (*figure.Plot, error) {
	if pd.Spacer {
		p := figure.NewSpacer(pd.Fill)
		p.Name = pd.Name
		return p, nil
	}
	p := &figure.Plot{
		Name:     pd.Name,
		Title:    pd.Title,
		Subtitle: pd.Subtitle,
		Caption:  pd.Caption,
		Tag:      pd.Tag,
		XLabel:   pd.XLabel,
		YLabel:   pd.YLabel,
		XBreaks:  pd.XBreaks,
		YBreaks:  pd.YBreaks,
		Legend:   pd.Legend,
	}
	for _, breaks := range [][]figure.Break{p.XBreaks, p.YBreaks} {
		for _, b := range breaks {
			if b.Pos < 0 || b.Pos > 1 {
				return nil, errors.New(errors.ErrCodeInvalidSpec, "break %q at %v is outside [0, 1]", b.Label, b.Pos)
			}
		}
	}
	if f := pd.Facet; f != nil {
		p.Facet = figure.Facet{
			Kind:   figure.FacetKind(f.Kind),
			NRow:   f.NRow,
			NCol:   f.NCol,
			Panels: f.Panels,
			Rows:   f.Rows,
			Cols:   f.Cols,
			FreeX:  f.FreeX,
			FreeY:  f.FreeY,
			Aspect: f.Aspect,
		}
		if _, _, _, err := p.Facet.Shape(); err != nil {
			return nil, err
		}
	}
	if m := merge(global, pd.Theme); len(m) > 0 {
		t, err := theme.FromMap(m)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "theme")
		}
		p.Theme = t
	}
	return p, nil
}

// merge returns the keys of base overridden by those of over.
func merge(base, over map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(over))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range over {
		out[k] = v
	}
	return out
}
