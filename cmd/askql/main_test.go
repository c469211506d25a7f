// Package main provides tests for the askql CLI.
package main

import (
	"bytes"
	"errors"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/leapstack-labs/askql/internal/cli"
	"github.com/leapstack-labs/askql/internal/cli/commands"
	"github.com/leapstack-labs/askql/internal/cli/config"
	"github.com/leapstack-labs/askql/internal/client/clienttest"
	"github.com/leapstack-labs/askql/internal/panel"
)

// isolate keeps config discovery away from the developer's files.
func isolate(t *testing.T) {
	t.Helper()
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)
	t.Chdir(t.TempDir())
	for _, name := range []string{"ASKQL_BASE_URL", "ASKQL_OUTPUT"} {
		t.Setenv(name, "")
		_ = os.Unsetenv(name)
	}
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := cli.NewRootCmd()
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetIn(strings.NewReader(""))
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestVersionCommand(t *testing.T) {
	isolate(t)
	out, _, err := execute(t, "version")
	if err != nil {
		t.Errorf("version command error = %v", err)
	}
	if !strings.Contains(out, "askql v") {
		t.Errorf("version output should contain 'askql v', got: %s", out)
	}
}

func TestHelpCommand(t *testing.T) {
	isolate(t)
	out, _, err := execute(t, "--help")
	if err != nil {
		t.Errorf("help command error = %v", err)
	}

	for _, expected := range []string{"generate", "run", "explain", "tui", "repl", "config"} {
		if !strings.Contains(out, expected) {
			t.Errorf("help output should contain '%s', got: %s", expected, out)
		}
	}
}

func TestRootWithoutTerminalShowsHelp(t *testing.T) {
	isolate(t)
	out, _, err := execute(t)
	if err != nil {
		t.Errorf("root command error = %v", err)
	}
	if !strings.Contains(out, "Available Commands") {
		t.Errorf("expected usage output, got: %s", out)
	}
}

func TestCompletionCommand(t *testing.T) {
	out, _, err := execute(t, "completion", "bash")
	if err != nil {
		t.Fatalf("completion command error = %v", err)
	}
	if !strings.Contains(out, "askql") {
		t.Errorf("bash completion should mention askql")
	}
}

func TestGenerateAgainstService(t *testing.T) {
	isolate(t)
	srv := clienttest.New(t)
	srv.Generates("SELECT COUNT(*) FROM users;")

	out, _, err := execute(t, "--base-url", srv.URL, "-o", "markdown", "generate", "how", "many", "users")
	if err != nil {
		t.Fatalf("generate command error = %v", err)
	}
	if !strings.Contains(out, "SELECT COUNT(*) FROM users;") {
		t.Errorf("generate output should contain the statement, got: %s", out)
	}
	calls := srv.Calls()
	if len(calls) != 1 || calls[0].Prompt != "how many users" {
		t.Fatalf("unexpected calls: %+v", calls)
	}
	if ua := calls[0].Header.Get("User-Agent"); ua != "askql/"+cli.Version {
		t.Errorf("User-Agent = %q", ua)
	}
}

func TestGenerateFailureIsReported(t *testing.T) {
	isolate(t)
	srv := clienttest.New(t)
	srv.Fails(clienttest.RouteGenerate, http.StatusInternalServerError, "boom")

	_, errOut, err := execute(t, "--base-url", srv.URL, "-o", "markdown", "generate", "users")
	if !errors.Is(err, commands.ErrReported) {
		t.Fatalf("expected ErrReported, got %v", err)
	}
	if !strings.Contains(errOut, panel.MsgGenerateFailed) {
		t.Errorf("stderr should contain the failure message, got: %s", errOut)
	}
}

func TestInvalidBaseURL(t *testing.T) {
	isolate(t)
	_, _, err := execute(t, "--base-url", "ftp://nowhere", "version")
	if err == nil {
		t.Error("expected an error for a non-http base URL")
	}
}
