package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display askql version and build information.`,
		Run: func(cmd *cobra.Command, _ []string) {
			cfg := getConfig()
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "askql v%s\n", version)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Natural-language SQL client")
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Service: %s\n", cfg.BaseURL)
		},
	}
}
