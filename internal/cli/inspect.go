package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ggframe/pkg/layout/space"
	"github.com/matzehuels/ggframe/pkg/pipeline"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		plain bool
		flags layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "inspect [figure file]",
		Short: "Browse the layout of a figure interactively",
		Long: `Browse the layout of a figure interactively.

The inspector lists the plots of the figure. For the selected plot it shows
the panel grid and the side spaces: every entry reserved between the plot
frame and the panels, in figure fractions. Use --plain to print all of it
without the interactive view.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args[0], plain, flags)
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print the layout instead of opening the inspector")
	flags.register(cmd)

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, input string, plain bool, flags layoutFlags) error {
	runner, err := c.newRunner(flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := flags.options(input)
	opts.Formats = []string{pipeline.FormatJSON}
	res, err := runner.Execute(ctx, opts)
	if err != nil {
		return fmt.Errorf("lay out %s: %w", input, err)
	}

	model := NewInspectModel(res.Report)
	if plain {
		printPlain(model)
		return nil
	}

	_, err = tea.NewProgram(model, tea.WithContext(ctx)).Run()
	return err
}

// printPlain prints every plot with all of its sides.
func printPlain(m InspectModel) {
	printKeyValue("figure", m.Report.Figure)
	for _, p := range m.Report.Plots {
		printNewline()
		fmt.Println(StyleTitle.Render(p.Name))
		if p.Spacer {
			printDetail("spacer")
			continue
		}
		fmt.Println(gridLine(p))
		for _, s := range space.Sides {
			fmt.Println(StyleNumber.Render(string(s)))
			fmt.Println(sideTable(p.Sides[string(s)]))
		}
	}
	printWarnings(m.Report.Warnings)
}
