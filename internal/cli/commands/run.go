package commands

import (
	"github.com/leapstack-labs/askql/internal/panel"
	"github.com/spf13/cobra"
)

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	opts := &QueryOptions{}

	cmd := &cobra.Command{
		Use:     "run [SQL]",
		Aliases: []string{"exec"},
		Short:   "Execute SQL through the askql service",
		Long: `Execute a SQL statement through the askql service and render the
result entries: row sets as tables, executed statements and errors as
panels.

The statement is taken from the arguments, from --input, or from stdin.`,
		Example: `  askql run "SELECT * FROM users LIMIT 5"
  askql run --input report.sql
  echo "SELECT 1" | askql run -o json`,
		// Failures are already reported through the renderer.
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "Read SQL from file")

	return cmd
}

func runQuery(cmd *cobra.Command, args []string, opts *QueryOptions) error {
	query, err := readQuery(args, opts, cmd.InOrStdin())
	if err != nil {
		return err
	}

	cc := NewCommandContext(cmd)
	p := panel.New(panel.WithLogger(cc.Logger))
	p.SetStatement(query)

	if err := executeAction(cmd.Context(), cc, p, panel.ActionRun); err != nil {
		return err
	}

	report := &queryReport{}
	report.setResult(p.Results())
	return renderReport(cc.Renderer, report)
}
