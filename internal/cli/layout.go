package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ggframe/pkg/layout"
	"github.com/matzehuels/ggframe/pkg/pipeline"
)

// layoutFlags are the flags shared by the commands that run a layout.
type layoutFlags struct {
	noCache bool
	refresh bool
	opts    pipeline.Options
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute and overwrite cached results")
	cmd.Flags().Float64Var(&f.opts.DPI, "dpi", 0, "resolution in dots per inch (default: figure theme)")
	cmd.Flags().BoolVar(&f.opts.PixelSnap, "pixel-snap", false, "snap text positions to whole pixels")
	cmd.Flags().StringVar(&f.opts.FontFamily, "font", "", "font family used to measure text")
}

// options returns the pipeline options for input.
func (f *layoutFlags) options(input string) pipeline.Options {
	opts := f.opts
	opts.Path = input
	opts.Refresh = f.refresh
	return opts
}

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		flags  layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [figure file]",
		Short: "Lay out a figure and write the layout report",
		Long: `Lay out a figure and write the layout report.

The layout command reads a figure file (TOML, YAML or JSON), aligns its
plots and solves the panel grid of every plot. It prints a summary and
writes the full report as JSON: frame and panel boxes, side spaces,
placed texts and the composition tree.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], output, flags)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	flags.register(cmd)

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, input, output string, flags layoutFlags) error {
	runner, err := c.newRunner(flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := flags.options(input)
	opts.Formats = []string{pipeline.FormatJSON}
	opts.Logger = loggerFromContext(ctx)

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()
	res, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("lay out %s: %w", input, err)
	}
	spinner.Stop()

	if output == "" {
		output = outputPath(basePath("", input), pipeline.FormatJSON)
	}
	if err := writeOutput(output, res.Artifacts[pipeline.FormatJSON]); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Layout complete")
	printFile(output)
	printSummary(res.Stats.Plots, len(res.Warnings), res.CacheInfo.LayoutHit)
	printNewline()
	printReport(res.Report)
	printWarnings(res.Warnings)
	printNewline()
	printNextStep("Render", appName+" render "+input)
	printNextStep("Inspect", appName+" inspect "+input)

	return nil
}

// printReport prints the figure size and the panel area of every plot.
func printReport(rep *layout.Report) {
	printKeyValue("figure", rep.Figure)
	printKeyValue("size", fmt.Sprintf("%.2f x %.2f in @ %g dpi", rep.Width, rep.Height, rep.DPI))
	for _, p := range rep.Plots {
		if p.Spacer {
			printKeyValue(p.Name, "spacer")
			continue
		}
		a := p.PanelArea
		line := fmt.Sprintf("%dx%d panels  [%.3f %.3f %.3f %.3f]", p.NRow, p.NCol, a.X0, a.Y0, a.X1, a.Y1)
		if p.Degenerate {
			line += "  " + StyleWarning.Render("degenerate")
		}
		printKeyValue(p.Name, line)
	}
}
