package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/leapstack-labs/askql/internal/cli/output"
	"github.com/leapstack-labs/askql/internal/panel"
)

// errNoQuery is returned when run or explain gets no SQL from any source.
var errNoQuery = errors.New("no SQL given: pass it as an argument, with --input, or on stdin")

// QueryOptions holds the SQL input options shared by run and explain.
type QueryOptions struct {
	Input string
}

// readQuery determines the SQL source.
// Priority: arguments > --input file > piped stdin.
func readQuery(args []string, opts *QueryOptions, stdin io.Reader) (string, error) {
	var query string

	switch {
	case len(args) > 0:
		query = strings.Join(args, " ")
	case opts.Input != "":
		content, err := os.ReadFile(opts.Input)
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		query = string(content)
	case stdin != nil && !output.IsTerminal(stdin):
		content, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		query = string(content)
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return "", errNoQuery
	}
	return query, nil
}

// executeAction runs one panel action to completion and reports a failure
// through the renderer. Failures come back as ErrReported.
func executeAction(ctx context.Context, cc *CommandContext, p *panel.Panel, a panel.Action) error {
	err := p.Execute(ctx, cc.Client, a)
	switch {
	case errors.Is(err, panel.ErrBlankPrompt):
		cc.Renderer.Error(panel.MsgBlankPrompt)
		return ErrReported
	case err != nil:
		return err
	}

	if msg := p.Error(); msg != "" {
		cc.Renderer.Error(msg)
		return ErrReported
	}
	return nil
}
