package commands

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/leapstack-labs/askql/internal/clipboard"
	"github.com/leapstack-labs/askql/internal/tui"
	"github.com/spf13/cobra"
)

// UIOptions holds options for the tui command.
type UIOptions struct {
	Inline bool
}

// NewUICommand creates the tui command.
func NewUICommand() *cobra.Command {
	opts := &UIOptions{}

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Start the full-screen interactive panel",
		Long: `Start the full-screen askql panel: type a description, generate SQL,
then run, explain or copy it. Results are shown below the prompt.

Logs are written only to log.file while the panel is open.`,
		Example: `  askql tui
  askql tui --inline
  askql --log-file askql.log --log-level debug tui`,
		Annotations: map[string]string{AnnotationInteractive: "true"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUI(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Inline, "inline", false, "Render in the normal screen buffer instead of the alternate screen")

	return cmd
}

func runUI(cmd *cobra.Command, opts *UIOptions) error {
	cc := NewCommandContext(cmd)
	ctx := cmd.Context()

	m := tui.New(ctx, cc.Client, clipboard.NewOSC52(os.Stdout),
		tui.WithLogger(cc.Logger),
		tui.WithStyles(cc.Renderer.Styles()),
		tui.WithHelp(cc.Cfg.UI.ShowHelp),
	)

	progOpts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	}
	if !opts.Inline {
		progOpts = append(progOpts, tea.WithAltScreen())
	}

	cc.Logger.Debug("starting tui", "base_url", cc.Cfg.BaseURL)
	if _, err := tea.NewProgram(m, progOpts...).Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
