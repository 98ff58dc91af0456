package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ggframe/pkg/pipeline"
)

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		flags      layoutFlags
	)
	flags.opts.Scale = pipeline.DefaultScale

	cmd := &cobra.Command{
		Use:   "render [figure file]",
		Short: "Render a figure to SVG, PNG or PDF",
		Long: `Render a figure to SVG, PNG or PDF.

Several formats can be rendered at once; they are drawn in parallel from a
single layout. Besides the drawings, json writes the layout report, tree
the composition tree as SVG and dot its Graphviz source.

Output files are named <base>.<format>, where base is --output without
its extension or the input file without its extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.options(args[0])
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], output, flags.noCache, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path (default: input without extension)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json, tree, dot (comma-separated)")
	cmd.Flags().Float64Var(&flags.opts.Scale, "scale", flags.opts.Scale, "PNG scale factor")
	cmd.Flags().BoolVar(&flags.opts.EmbedFont, "embed-font", false, "embed the font in SVG output")
	cmd.Flags().BoolVar(&flags.opts.Ratios, "ratios", false, "show width and height ratios in tree diagrams")
	flags.register(cmd)

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input, output string, noCache bool, opts pipeline.Options) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(loggerFromContext(ctx))
	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()
	res, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render %s: %w", input, err)
	}
	spinner.Stop()

	base := basePath(output, input)
	written := make([]string, 0, len(opts.Formats))
	for _, format := range opts.Formats {
		path := outputPath(base, format)
		if err := writeOutput(path, res.Artifacts[format]); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		written = append(written, path)
	}
	prog.done(fmt.Sprintf("Rendered %s", plural(len(written), "output")))

	printSuccess("Rendered %s", res.Figure.Name)
	for _, path := range written {
		printFile(path)
	}
	printSummary(res.Stats.Plots, len(res.Warnings), res.CacheInfo.RenderHit)
	printWarnings(res.Warnings)
	return nil
}
