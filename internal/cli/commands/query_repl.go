package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/leapstack-labs/askql/internal/cli/output"
	"github.com/leapstack-labs/askql/internal/clipboard"
	"github.com/leapstack-labs/askql/internal/panel"
	"github.com/spf13/cobra"
)

const replPrompt = "askql> "

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Line-oriented interactive session",
		Long: `Start a line-oriented session. Every plain line is a description sent
to the service for SQL generation; dot-commands run, explain or copy the
last generated statement. Nothing is kept between sessions.`,
		Annotations: map[string]string{AnnotationInteractive: "true"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runREPL(cmd)
		},
	}
}

// replSession is the state of one REPL. It is driven line by line so the
// dispatch logic can be exercised without a terminal.
type replSession struct {
	cc    *CommandContext
	panel *panel.Panel
	clip  panel.Clipboard
	r     *output.Renderer
}

func newREPLSession(cc *CommandContext, clip panel.Clipboard) *replSession {
	s := &replSession{cc: cc, clip: clip, r: cc.Renderer}
	s.panel = panel.New(panel.WithLogger(cc.Logger))
	return s
}

func runREPL(cmd *cobra.Command) error {
	cc := NewCommandContext(cmd)
	sess := newREPLSession(cc, clipboard.NewOSC52(os.Stdout))

	// Configure readline; history is not persisted.
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		AutoComplete:    newDotCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "askql REPL (service: %s)\n", cc.Cfg.BaseURL)
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Describe the data you want, or type .help for commands")
	_, _ = fmt.Fprintln(cmd.OutOrStdout())

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if quit := sess.handleLine(cmd.Context(), line); quit {
			break
		}
	}

	return nil
}

// handleLine processes one input line and reports whether the session
// should end.
func (s *replSession) handleLine(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if strings.HasPrefix(line, ".") {
		return s.handleDotCommand(ctx, line)
	}

	s.panel.SetPrompt(line)
	if s.do(ctx, panel.ActionGenerate) {
		renderStatement(s.r, s.panel.Statement())
	}
	return false
}

func (s *replSession) handleDotCommand(ctx context.Context, line string) bool {
	command := strings.ToLower(strings.Fields(line)[0])

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(s.r.Writer())

	case ".run":
		if s.needStatement() && s.do(ctx, panel.ActionRun) {
			renderResults(s.r, s.panel.Results())
		}

	case ".explain":
		if s.needStatement() && s.do(ctx, panel.ActionExplain) {
			renderExplanation(s.r, s.panel.Explanation())
		}

	case ".copy":
		if !s.needStatement() {
			break
		}
		if _, err := s.panel.Copy(s.clip); err != nil {
			s.cc.Logger.Error("copy failed", "error", err)
			s.r.Error("Could not copy to clipboard.")
			break
		}
		s.r.Success(strings.TrimPrefix(s.panel.CopyLabel(), "✓ "))

	case ".show":
		if s.needStatement() {
			renderStatement(s.r, s.panel.Statement())
			renderExplanation(s.r, s.panel.Explanation())
		}

	case ".results":
		renderResults(s.r, s.panel.Results())

	case ".clear":
		s.r.Printf("\033[H\033[2J")

	default:
		s.r.Error(fmt.Sprintf("Unknown command: %s (type .help for commands)", command))
	}
	return false
}

// do executes an action and reports whether it succeeded. Failures are
// shown with the panel's fixed messages.
func (s *replSession) do(ctx context.Context, a panel.Action) bool {
	err := executeAction(ctx, s.cc, s.panel, a)
	if err != nil && !errors.Is(err, ErrReported) {
		s.r.Error(err.Error())
	}
	return err == nil
}

func (s *replSession) needStatement() bool {
	if s.panel.Statement() == "" {
		s.r.Error("No SQL yet. Describe the data you want first.")
		return false
	}
	return true
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  <description>   Generate SQL from a description
  .run            Execute the generated SQL
  .explain        Explain the generated SQL
  .copy           Copy the generated SQL to the clipboard
  .show           Show the generated SQL and its explanation
  .results        Show the last results again
  .clear          Clear the screen
  .quit / .exit   Exit the REPL
`
	_, _ = fmt.Fprintln(w, help)
}

// newDotCompleter creates a readline completer for dot-commands.
func newDotCompleter() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem(".help"),
		readline.PcItem(".run"),
		readline.PcItem(".explain"),
		readline.PcItem(".copy"),
		readline.PcItem(".show"),
		readline.PcItem(".results"),
		readline.PcItem(".clear"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
}
