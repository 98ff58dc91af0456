package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ggframe/pkg/pipeline"
	"github.com/matzehuels/ggframe/pkg/render/tree"
)

// treeCommand creates the tree command.
func (c *CLI) treeCommand() *cobra.Command {
	var (
		output string
		flags  layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "tree [figure file]",
		Short: "Draw the composition tree of a figure",
		Long: `Draw the composition tree of a figure.

Columns, rows and grids become boxes labelled with their shape, plots
become leaves and empty cells dashed placeholders. Edges carry the row and
column of the child. The diagram is written as SVG, or as PNG when the
output ends in .png, or as Graphviz source when it ends in .dot.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTree(cmd.Context(), args[0], output, flags)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.tree.svg)")
	cmd.Flags().BoolVar(&flags.opts.Ratios, "ratios", false, "show width and height ratios")
	flags.register(cmd)

	return cmd
}

func (c *CLI) runTree(ctx context.Context, input, output string, flags layoutFlags) error {
	if output == "" {
		output = outputPath(basePath("", input), pipeline.FormatTree)
	}

	format := pipeline.FormatTree
	ext := strings.ToLower(filepath.Ext(output))
	if ext == ".png" || ext == ".dot" {
		format = pipeline.FormatDOT
	}

	runner, err := c.newRunner(flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := flags.options(input)
	opts.Formats = []string{format}
	res, err := runner.Execute(ctx, opts)
	if err != nil {
		return fmt.Errorf("draw tree of %s: %w", input, err)
	}

	data := res.Artifacts[format]
	if ext == ".png" {
		if data, err = tree.RenderPNG(ctx, string(data)); err != nil {
			return fmt.Errorf("render png: %w", err)
		}
	}
	if err := writeOutput(output, data); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	if res.Report != nil && res.Report.Tree == nil {
		printInfo("%s has a single plot; the tree is one leaf", res.Figure.Name)
	}
	printSuccess("Composition tree drawn")
	printFile(output)
	return nil
}
