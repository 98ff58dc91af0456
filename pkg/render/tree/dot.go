// Package tree draws the composition tree of a figure as a diagram.
//
// [ToDOT] turns the tree of a layout report into Graphviz DOT. Columns,
// rows and grids are boxes labelled with their shape and ratios; plots
// are rounded leaves and empty cells dashed placeholders. [RenderSVG]
// and [RenderPNG] lay the graph out with the embedded Graphviz library,
// so no external binary is needed.
//
//	dot := tree.ToDOT(report.Tree, tree.Options{Ratios: true})
//	svg, err := tree.RenderSVG(ctx, dot)
package tree

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/ggframe/pkg/errors"
	"github.com/matzehuels/ggframe/pkg/layout"
)

// Options configures the diagram.
type Options struct {
	// Ratios adds the width and height ratios to composition labels.
	Ratios bool
	// Title labels the graph.
	Title string
}

// ToDOT converts a composition tree to DOT. A nil tree gives a graph
// with a single node for a figure without composition.
func ToDOT(root *layout.TreeNode, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.3;\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n", opts.Title)
	}
	buf.WriteString("\n")

	if root == nil {
		buf.WriteString("  \"n0\" [label=\"plot\"];\n")
	} else {
		w := &dotWriter{buf: &buf, opts: opts}
		w.node(root)
	}

	buf.WriteString("}\n")
	return buf.String()
}

type dotWriter struct {
	buf  *bytes.Buffer
	opts Options
	next int
}

// node writes n and its children and returns its id.
func (w *dotWriter) node(n *layout.TreeNode) string {
	id := "n" + strconv.Itoa(w.next)
	w.next++

	switch n.Kind {
	case layout.NodeLeaf:
		fmt.Fprintf(w.buf, "  %q [label=%q, fillcolor=\"#EBEBEB\"];\n", id, n.Plot)
	case layout.NodeEmpty:
		fmt.Fprintf(w.buf, "  %q [label=\"\", style=\"rounded,dashed\", width=0.4, height=0.3];\n", id)
	default:
		fmt.Fprintf(w.buf, "  %q [label=%q, shape=box, style=filled, fillcolor=\"#D9D9D9\"];\n", id, w.label(n))
	}

	for i, c := range n.Children {
		cid := w.node(c)
		fmt.Fprintf(w.buf, "  %q -> %q [taillabel=%q, fontsize=10];\n", id, cid, cellLabel(n, i))
	}
	return id
}

func (w *dotWriter) label(n *layout.TreeNode) string {
	l := fmt.Sprintf("%s %dx%d", n.Kind, n.NRow, n.NCol)
	if w.opts.Ratios {
		l += "\nwidths " + ratios(n.WidthRatios) + "\nheights " + ratios(n.HeightRatios)
	}
	return l
}

// cellLabel names the grid cell of the i-th child as row,col.
func cellLabel(n *layout.TreeNode, i int) string {
	if n.NCol == 0 {
		return ""
	}
	return fmt.Sprintf("%d,%d", i/n.NCol, i%n.NCol)
}

func ratios(r []float64) string {
	parts := make([]string, len(r))
	for i, v := range r {
		parts[i] = strconv.FormatFloat(v, 'f', 2, 64)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// RenderSVG lays out a DOT graph and renders it as SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	out, err := renderDOT(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG lays out a DOT graph and renders it as PNG.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderDOT(ctx, dot, graphviz.PNG)
}

func renderDOT(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz svg element with one whose
// width and height match the viewBox, so the diagram scales cleanly.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
