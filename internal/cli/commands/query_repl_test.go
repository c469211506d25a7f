package commands

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/leapstack-labs/askql/internal/cli/output"
	"github.com/leapstack-labs/askql/internal/client/clienttest"
	"github.com/leapstack-labs/askql/internal/clipboard"
	"github.com/leapstack-labs/askql/internal/panel"
	"github.com/leapstack-labs/askql/internal/present"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type replHarness struct {
	sess   *replSession
	srv    *clienttest.Server
	out    *bytes.Buffer
	errOut *bytes.Buffer
	copied []string
	clipErr error
}

func newREPLHarness(t *testing.T) *replHarness {
	t.Helper()
	h := &replHarness{
		srv:    newService(t, output.ModeMarkdown),
		out:    &bytes.Buffer{},
		errOut: &bytes.Buffer{},
	}
	cmd := &cobra.Command{}
	cmd.SetOut(h.out)
	cmd.SetErr(h.errOut)
	cmd.SetContext(context.Background())

	h.sess = newREPLSession(NewCommandContext(cmd), clipboard.Func(func(s string) error {
		if h.clipErr != nil {
			return h.clipErr
		}
		h.copied = append(h.copied, s)
		return nil
	}))
	return h
}

func (h *replHarness) line(s string) bool {
	h.out.Reset()
	h.errOut.Reset()
	return h.sess.handleLine(context.Background(), s)
}

func TestREPL_PlainLineGenerates(t *testing.T) {
	h := newREPLHarness(t)
	h.srv.Generates("SELECT * FROM orders")

	quit := h.line("  all orders  ")

	assert.False(t, quit)
	assert.Contains(t, h.out.String(), "```sql\nSELECT * FROM orders\n```")
	assert.Equal(t, "all orders", h.srv.Calls()[0].Prompt)
}

func TestREPL_BlankLineIsIgnored(t *testing.T) {
	h := newREPLHarness(t)

	assert.False(t, h.line("   "))
	assert.Empty(t, h.out.String())
	assert.Empty(t, h.srv.Calls())
}

func TestREPL_DotCommandsNeedStatement(t *testing.T) {
	h := newREPLHarness(t)

	for _, cmd := range []string{".run", ".explain", ".copy", ".show"} {
		h.line(cmd)
		assert.Contains(t, h.errOut.String(), "No SQL yet", cmd)
	}
	assert.Empty(t, h.srv.Calls())
	assert.Empty(t, h.copied)
}

func TestREPL_RunExplainCopy(t *testing.T) {
	h := newREPLHarness(t)
	h.srv.Generates("SELECT a, b FROM t")
	h.srv.Runs(rowsJSON)
	h.srv.Explains("Reads a and b from t.")

	h.line("a and b")

	h.line(".run")
	assert.Contains(t, h.out.String(), "2 rows returned")

	h.line(".explain")
	assert.Contains(t, h.out.String(), "Reads a and b from t.")

	h.line(".copy")
	assert.Equal(t, []string{"SELECT a, b FROM t"}, h.copied)
	assert.Contains(t, h.out.String(), "Copied!")

	h.line(".show")
	assert.Contains(t, h.out.String(), "SELECT a, b FROM t")
	assert.Contains(t, h.out.String(), "Reads a and b from t.")

	h.line(".results")
	assert.Contains(t, h.out.String(), "| a | b |")
}

func TestREPL_ResultsBeforeAnyRun(t *testing.T) {
	h := newREPLHarness(t)
	h.line(".results")
	assert.Contains(t, h.out.String(), present.EmptyTitle)
}

func TestREPL_FailureShowsFixedMessage(t *testing.T) {
	h := newREPLHarness(t)
	h.srv.Fails(clienttest.RouteGenerate, http.StatusServiceUnavailable, "overloaded")

	h.line("users")

	assert.Contains(t, h.errOut.String(), panel.MsgGenerateFailed)
	assert.NotContains(t, h.errOut.String(), "overloaded")
}

func TestREPL_CopyFailure(t *testing.T) {
	h := newREPLHarness(t)
	h.srv.Generates("SELECT 1")
	h.line("one")
	h.clipErr = errors.New("no terminal")

	h.line(".copy")

	assert.Contains(t, h.errOut.String(), "Could not copy")
}

func TestREPL_QuitAndUnknown(t *testing.T) {
	h := newREPLHarness(t)

	assert.True(t, h.line(".quit"))
	assert.True(t, h.line(".EXIT"))

	assert.False(t, h.line(".frobnicate"))
	assert.Contains(t, h.errOut.String(), "Unknown command: .frobnicate")

	h.line(".help")
	assert.Contains(t, h.out.String(), ".explain")
}

func TestDotCompleter(t *testing.T) {
	c := newDotCompleter()
	require.NotNil(t, c)
	assert.Len(t, c.GetChildren(), 9)
}
