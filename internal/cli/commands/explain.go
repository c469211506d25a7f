package commands

import (
	"github.com/leapstack-labs/askql/internal/panel"
	"github.com/spf13/cobra"
)

// NewExplainCommand creates the explain command.
func NewExplainCommand() *cobra.Command {
	opts := &QueryOptions{}

	cmd := &cobra.Command{
		Use:   "explain [SQL]",
		Short: "Explain SQL in plain language",
		Long: `Ask the askql service to explain a SQL statement. The statement is
taken from the arguments, from --input, or from stdin.`,
		Example: `  askql explain "SELECT country, COUNT(*) FROM users GROUP BY 1"
  askql explain --input report.sql -o markdown`,
		// Failures are already reported through the renderer.
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplain(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "Read SQL from file")

	return cmd
}

func runExplain(cmd *cobra.Command, args []string, opts *QueryOptions) error {
	query, err := readQuery(args, opts, cmd.InOrStdin())
	if err != nil {
		return err
	}

	cc := NewCommandContext(cmd)
	p := panel.New(panel.WithLogger(cc.Logger))
	p.SetStatement(query)

	if err := executeAction(cmd.Context(), cc, p, panel.ActionExplain); err != nil {
		return err
	}

	report := &queryReport{}
	report.setExplanation(p.Explanation())
	return renderReport(cc.Renderer, report)
}
