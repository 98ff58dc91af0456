package layout

import (
	"bytes"
	"encoding/json"
	"io"
	"time"

	"github.com/matzehuels/ggframe/pkg/geom"
	"github.com/matzehuels/ggframe/pkg/gridspec"
	"github.com/matzehuels/ggframe/pkg/layout/solver"
	"github.com/matzehuels/ggframe/pkg/layout/space"
	"github.com/matzehuels/ggframe/pkg/layout/tree"
	"github.com/matzehuels/ggframe/pkg/scene"
)

// Report is the serializable result of a layout pass. It is what the
// CLI writes, the cache keeps and the HTTP API stores.
type Report struct {
	ID       string    `json:"id,omitempty" bson:"_id,omitempty"`
	Figure   string    `json:"figure" bson:"figure"`
	Width    float64   `json:"width" bson:"width"`   // inches
	Height   float64   `json:"height" bson:"height"` // inches
	DPI      float64   `json:"dpi" bson:"dpi"`
	Created  time.Time `json:"created" bson:"created"`
	Duration float64   `json:"duration_ms" bson:"duration_ms"`

	Plots       []PlotReport       `json:"plots" bson:"plots"`
	Composition *CompositionReport `json:"composition,omitempty" bson:"composition,omitempty"`
	Tree        *TreeNode          `json:"tree,omitempty" bson:"tree,omitempty"`
	Warnings    []string           `json:"warnings,omitempty" bson:"warnings,omitempty"`
}

// PlotReport describes the final geometry of one plot.
type PlotReport struct {
	Name       string                   `json:"name" bson:"name"`
	Spacer     bool                     `json:"spacer,omitempty" bson:"spacer,omitempty"`
	NRow       int                      `json:"nrow" bson:"nrow"`
	NCol       int                      `json:"ncol" bson:"ncol"`
	Frame      geom.Box                 `json:"frame" bson:"frame"`
	PanelArea  geom.Box                 `json:"panel_area" bson:"panel_area"`
	Params     gridspec.Params          `json:"params" bson:"params"`
	Solution   solver.Solution          `json:"solution" bson:"solution"`
	Degenerate bool                     `json:"degenerate,omitempty" bson:"degenerate,omitempty"`
	Sides      map[string][]space.Entry `json:"sides" bson:"sides"`
	Panels     []geom.Box               `json:"panels" bson:"panels"`
	Texts      []TextReport             `json:"texts" bson:"texts"`
	Legend     *geom.Box                `json:"legend,omitempty" bson:"legend,omitempty"`
}

// CompositionReport describes the annotation around a composition.
type CompositionReport struct {
	Params gridspec.Params          `json:"params" bson:"params"`
	Sides  map[string][]space.Entry `json:"sides" bson:"sides"`
	Texts  []TextReport             `json:"texts,omitempty" bson:"texts,omitempty"`
}

// TextReport is a placed text.
type TextReport struct {
	Name    string   `json:"name" bson:"name"`
	Content string   `json:"content" bson:"content"`
	Box     geom.Box `json:"box" bson:"box"`
}

// TreeNode is a node of the composition tree. Leaves carry the plot
// name, empty cells have the kind "empty".
type TreeNode struct {
	Kind         string      `json:"kind" bson:"kind"`
	Plot         string      `json:"plot,omitempty" bson:"plot,omitempty"`
	NRow         int         `json:"nrow,omitempty" bson:"nrow,omitempty"`
	NCol         int         `json:"ncol,omitempty" bson:"ncol,omitempty"`
	WidthRatios  []float64   `json:"width_ratios,omitempty" bson:"width_ratios,omitempty"`
	HeightRatios []float64   `json:"height_ratios,omitempty" bson:"height_ratios,omitempty"`
	Children     []*TreeNode `json:"children,omitempty" bson:"children,omitempty"`
}

// Tree node kinds besides the tree kinds.
const (
	NodeLeaf  = "leaf"
	NodeEmpty = "empty"
)

func newReport(sf *scene.Figure, spaces map[*scene.Plot]*space.PlotSpaces,
	solutions map[*scene.Plot]solver.Solution, cs *space.CompositionSpaces, res *Result) *Report {
	r := &Report{
		Figure:   sf.Name,
		Width:    sf.Width,
		Height:   sf.Height,
		DPI:      sf.DPI,
		Created:  time.Now().UTC(),
		Duration: float64(res.Duration.Microseconds()) / 1000,
		Warnings: res.Warnings.Messages(),
	}
	for _, p := range sf.Plots {
		ps := spaces[p]
		sol := solutions[p]
		pr := PlotReport{
			Name:       p.Name,
			Spacer:     p.Spacer,
			NRow:       p.NRow,
			NCol:       p.NCol,
			Frame:      p.Frame.Box(),
			PanelArea:  p.Panels.Box(),
			Params:     p.Panels.Params(),
			Solution:   sol,
			Degenerate: p.Panels.Params() != sol.Params,
			Sides:      sides(ps.Sides()),
			Texts:      texts(p.Texts()),
		}
		for _, pn := range p.PanelList {
			pr.Panels = append(pr.Panels, pn.Box)
		}
		if p.Legend != nil {
			b := p.Legend.Box
			pr.Legend = &b
		}
		r.Plots = append(r.Plots, pr)
	}
	if cs != nil {
		c := cs.Composition
		var ct []*scene.Text
		for _, t := range []*scene.Text{c.Title, c.Subtitle, c.Caption} {
			if t != nil {
				ct = append(ct, t)
			}
		}
		r.Composition = &CompositionReport{
			Params: c.Grid.Params(),
			Sides:  sides(cs.Sides()),
			Texts:  texts(ct),
		}
	}
	if res.Tree != nil {
		r.Tree = treeNode(res.Tree)
	}
	return r
}

func sides(ss []*space.Space) map[string][]space.Entry {
	out := make(map[string][]space.Entry, len(ss))
	for _, s := range ss {
		out[string(s.Side())] = s.Entries()
	}
	return out
}

func texts(ts []*scene.Text) []TextReport {
	out := make([]TextReport, 0, len(ts))
	for _, t := range ts {
		out = append(out, TextReport{Name: t.Name, Content: t.Content, Box: t.Box})
	}
	return out
}

func treeNode(t *tree.Tree) *TreeNode {
	n := &TreeNode{
		Kind:         string(t.Kind),
		NRow:         t.NRow,
		NCol:         t.NCol,
		WidthRatios:  t.GridSpec.WidthRatios(),
		HeightRatios: t.GridSpec.HeightRatios(),
	}
	for r := 0; r < t.NRow; r++ {
		for c := 0; c < t.NCol; c++ {
			switch v := t.At(r, c).(type) {
			case *tree.Leaf:
				n.Children = append(n.Children, &TreeNode{Kind: NodeLeaf, Plot: v.Spaces.Plot.Name})
			case *tree.Tree:
				n.Children = append(n.Children, treeNode(v))
			default:
				n.Children = append(n.Children, &TreeNode{Kind: NodeEmpty})
			}
		}
	}
	return n
}

// Plot returns the report of the named plot, or nil.
func (r *Report) Plot(name string) *PlotReport {
	for i := range r.Plots {
		if r.Plots[i].Name == name {
			return &r.Plots[i]
		}
	}
	return nil
}

// MarshalReport serializes r as indented JSON.
func MarshalReport(r *Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteReport(&buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteReport writes r as indented JSON.
func WriteReport(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// UnmarshalReport parses a report written by [MarshalReport].
func UnmarshalReport(data []byte) (*Report, error) {
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
