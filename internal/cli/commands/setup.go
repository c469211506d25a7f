package commands

import (
	"errors"
	"log/slog"

	"github.com/leapstack-labs/askql/internal/cli/config"
	"github.com/leapstack-labs/askql/internal/cli/output"
	"github.com/leapstack-labs/askql/internal/client"
	"github.com/spf13/cobra"
)

// ErrReported is returned by commands that already printed their failure.
// The caller should exit non-zero without printing it again.
var ErrReported = errors.New("failure already reported")

// AnnotationInteractive marks commands that take over the terminal. Their
// logs go only to log.file.
const AnnotationInteractive = "askql/interactive"

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
	Client   *client.Client
}

// NewCommandContext creates a CommandContext with a service client and
// renderer.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	mode, err := output.ParseMode(cfg.OutputFormat)
	if err != nil {
		mode = output.ModeAuto
	}
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	opts := []client.Option{
		client.WithBaseURL(cfg.BaseURL),
		client.WithLogger(logger),
	}
	if v := cmd.Root().Version; v != "" {
		opts = append(opts, client.WithUserAgent("askql/"+v))
	}
	cl := client.New(opts...)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
		Client:   cl,
	}
}

// getConfig returns the current configuration, or the defaults when none
// has been loaded.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return config.Default()
}
