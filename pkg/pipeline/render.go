package pipeline

import (
	"context"

	"github.com/matzehuels/ggframe/pkg/backend"
	"github.com/matzehuels/ggframe/pkg/errors"
	"github.com/matzehuels/ggframe/pkg/layout"
	"github.com/matzehuels/ggframe/pkg/render/sink"
	"github.com/matzehuels/ggframe/pkg/render/tree"
)

// Render produces one output format from a layout.
func Render(ctx context.Context, res *layout.Result, format string, cfg backend.Config, opts Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeTimeout, err, "render %s", format)
	}
	switch format {
	case FormatSVG:
		sopts := []sink.Option{sink.WithConfig(cfg)}
		if opts.EmbedFont {
			sopts = append(sopts, sink.WithEmbeddedFont())
		}
		return sink.RenderSVG(res.Scene, sopts...)
	case FormatPNG:
		return sink.RenderPNG(res.Scene, sink.WithConfig(cfg), sink.WithScale(opts.Scale))
	case FormatPDF:
		return sink.RenderPDF(res.Scene, sink.WithConfig(cfg))
	case FormatJSON:
		return layout.MarshalReport(res.Report)
	case FormatDOT:
		return []byte(TreeDOT(res.Report, opts)), nil
	case FormatTree:
		return tree.RenderSVG(ctx, TreeDOT(res.Report, opts))
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format %q", format)
}

// TreeDOT returns the composition tree of a report as DOT.
func TreeDOT(rep *layout.Report, opts Options) string {
	return tree.ToDOT(rep.Tree, tree.Options{Ratios: opts.Ratios, Title: rep.Figure})
}
