package commands

import (
	"strings"

	"github.com/leapstack-labs/askql/internal/panel"
	"github.com/spf13/cobra"
)

// GenerateOptions holds options for the generate command.
type GenerateOptions struct {
	Run     bool
	Explain bool
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand() *cobra.Command {
	opts := &GenerateOptions{}

	cmd := &cobra.Command{
		Use:     "generate <description...>",
		Aliases: []string{"gen", "ask"},
		Short:   "Turn a description into SQL",
		Long: `Send a natural-language description to the askql service and print
the SQL it generates. With --explain the statement is also explained, and
with --run it is executed and the results are shown.`,
		Example: `  # Generate only
  askql generate top 10 customers by revenue

  # Generate, explain and run
  askql generate --explain --run orders placed last week

  # Machine-readable
  askql generate -o json "count users by country"`,
		Args: cobra.MinimumNArgs(1),
		// Failures are already reported through the renderer.
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Run, "run", false, "Execute the generated SQL")
	cmd.Flags().BoolVar(&opts.Explain, "explain", false, "Explain the generated SQL")

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string, opts *GenerateOptions) error {
	cc := NewCommandContext(cmd)
	ctx := cmd.Context()

	p := panel.New(panel.WithLogger(cc.Logger))
	p.SetPrompt(strings.Join(args, " "))

	if err := executeAction(ctx, cc, p, panel.ActionGenerate); err != nil {
		return err
	}
	report := &queryReport{Query: p.Statement()}

	if opts.Explain {
		if err := executeAction(ctx, cc, p, panel.ActionExplain); err != nil {
			_ = renderReport(cc.Renderer, report)
			return err
		}
		report.setExplanation(p.Explanation())
	}

	if opts.Run {
		if err := executeAction(ctx, cc, p, panel.ActionRun); err != nil {
			_ = renderReport(cc.Renderer, report)
			return err
		}
		report.setResult(p.Results())
	}

	return renderReport(cc.Renderer, report)
}
