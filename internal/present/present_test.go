package present

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/leapstack-labs/askql/internal/cli/output"
	"github.com/leapstack-labs/askql/internal/result"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEntries(t *testing.T, raw string) []result.Entry {
	t.Helper()
	var entries []result.Entry
	require.NoError(t, json.Unmarshal([]byte(raw), &entries))
	return entries
}

func plainStyles() *output.Styles {
	return output.NewRendererWithTTY(&bytes.Buffer{}, &bytes.Buffer{}, false, output.ModeText).Styles()
}

func TestBuild_Empty(t *testing.T) {
	assert.True(t, Build(nil).Empty)
	assert.True(t, Build([]result.Entry{}).Empty)
}

func TestBuild_ErrorEntry(t *testing.T) {
	v := Build([]result.Entry{result.ErrorEntry("no such table: x", "SELECT * FROM x")})

	require.Len(t, v.Blocks, 1)
	b := v.Blocks[0]
	assert.Equal(t, result.KindError, b.Kind)
	assert.Equal(t, ErrorTitle, b.Title)
	assert.Equal(t, "no such table: x", b.Message)
	assert.Equal(t, "SELECT * FROM x", b.Statement)
	assert.Empty(t, b.Headers)
}

func TestBuild_ExecutedEntry(t *testing.T) {
	v := Build([]result.Entry{result.ExecutedEntry("DELETE FROM t")})

	require.Len(t, v.Blocks, 1)
	b := v.Blocks[0]
	assert.Equal(t, result.KindExecuted, b.Kind)
	assert.Equal(t, ExecutedTitle, b.Title)
	assert.Equal(t, "DELETE FROM t", b.Statement)
	assert.Nil(t, b.Rows)
}

func TestBuild_RowSet(t *testing.T) {
	entries := decodeEntries(t, `[{"statement":"SELECT a, b FROM t","rows":[{"a":1,"b":null},{"a":2,"b":"x"}]}]`)

	v := Build(entries)

	require.Len(t, v.Blocks, 1)
	b := v.Blocks[0]
	assert.Equal(t, result.KindRowSet, b.Kind)
	assert.Equal(t, []string{"a", "b"}, b.Headers)
	assert.Equal(t, [][]string{{"1", "—"}, {"2", "x"}}, b.Rows)
	assert.Equal(t, "2 rows returned", b.Caption)
	assert.Equal(t, "SELECT a, b FROM t", b.Statement)
}

func TestBuild_MissingKeyInLaterRow(t *testing.T) {
	entries := decodeEntries(t, `[{"rows":[{"a":1,"b":2},{"a":3}]}]`)

	v := Build(entries)

	require.Len(t, v.Blocks, 1)
	assert.Equal(t, [][]string{{"1", "2"}, {"3", "—"}}, v.Blocks[0].Rows)
}

func TestBuild_SingularCaption(t *testing.T) {
	v := Build([]result.Entry{result.RowSetEntry("", result.NewRow(result.Cell{Column: "n", Value: 7}))})

	require.Len(t, v.Blocks, 1)
	assert.Equal(t, "1 row returned", v.Blocks[0].Caption)
}

func TestBuild_MixedKeepsOrderAndSkipsEmpty(t *testing.T) {
	entries := decodeEntries(t, `[
		{"status":"executed","statement":"CREATE TABLE t (a int)"},
		{"rows":[]},
		{"error":"boom"},
		{"rows":[{"a":1}]}
	]`)

	v := Build(entries)

	require.False(t, v.Empty)
	require.Len(t, v.Blocks, 3)
	assert.Equal(t, result.KindExecuted, v.Blocks[0].Kind)
	assert.Equal(t, result.KindError, v.Blocks[1].Kind)
	assert.Empty(t, v.Blocks[1].Statement)
	assert.Equal(t, result.KindRowSet, v.Blocks[2].Kind)
}

func TestBuild_ErrorWinsOverRows(t *testing.T) {
	entries := decodeEntries(t, `[{"error":"partial","status":"executed","rows":[{"a":1}]}]`)

	v := Build(entries)

	require.Len(t, v.Blocks, 1)
	assert.Equal(t, result.KindError, v.Blocks[0].Kind)
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name string
		v    any
		ok   bool
		want string
	}{
		{"missing", nil, false, NullPlaceholder},
		{"null", nil, true, NullPlaceholder},
		{"string", "x", true, "x"},
		{"empty string", "", true, ""},
		{"json number", json.Number("12.50"), true, "12.50"},
		{"float", 1.5, true, "1.5"},
		{"int", 42, true, "42"},
		{"bool", true, true, "true"},
		{"array", []any{json.Number("1"), "a"}, true, `[1,"a"]`},
		{"object", map[string]any{"k": "v"}, true, `{"k":"v"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatValue(tt.v, tt.ok))
		})
	}
}

func TestRowCaption(t *testing.T) {
	assert.Equal(t, "0 rows returned", RowCaption(0))
	assert.Equal(t, "1 row returned", RowCaption(1))
	assert.Equal(t, "12 rows returned", RowCaption(12))
}

func TestText_Empty(t *testing.T) {
	out := Text(plainStyles(), Build(nil))

	assert.Contains(t, out, EmptyIcon)
	assert.Contains(t, out, EmptyTitle)
	assert.Contains(t, out, EmptyHint)
	assert.NotContains(t, out, ResultsTitle)
}

func TestText_Panels(t *testing.T) {
	entries := decodeEntries(t, `[
		{"error":"syntax error","statement":"SELEC 1"},
		{"status":"executed"},
		{"statement":"SELECT a, b FROM t","rows":[{"a":1,"b":null},{"a":2,"b":"x"}]}
	]`)

	buf := &bytes.Buffer{}
	RenderText(buf, plainStyles(), Build(entries))
	out := buf.String()

	assert.Contains(t, out, ResultsTitle)
	assert.Contains(t, out, ErrorTitle)
	assert.Contains(t, out, "syntax error")
	assert.Contains(t, out, "SELEC 1")
	assert.Contains(t, out, ExecutedTitle)
	assert.Contains(t, out, StatementLabel)
	assert.Contains(t, out, "2 rows returned")
	assert.Contains(t, out, "—")
	assert.NotContains(t, out, "\x1b[")
}

func TestText_HeadersKeepCase(t *testing.T) {
	entries := decodeEntries(t, `[{"rows":[{"userName":"ann"}]}]`)

	out := Text(plainStyles(), Build(entries))

	assert.Contains(t, out, "userName")
	assert.NotContains(t, out, "USERNAME")
}

func TestMarkdown(t *testing.T) {
	entries := decodeEntries(t, `[
		{"error":"boom"},
		{"status":"executed","statement":"DROP TABLE t"},
		{"statement":"SELECT a, b FROM t","rows":[{"a":1,"b":null},{"a":2,"b":"x"}]}
	]`)

	buf := &bytes.Buffer{}
	RenderMarkdown(buf, Build(entries))
	out := buf.String()

	assert.Contains(t, out, "## "+ResultsTitle)
	assert.Contains(t, out, "### "+ErrorTitle+"\n\nboom")
	assert.Contains(t, out, "### "+ExecutedTitle)
	assert.Contains(t, out, "```sql\nDROP TABLE t\n```")
	assert.Contains(t, out, "| a | b |")
	assert.Contains(t, out, "| 1 | — |")
	assert.Contains(t, out, "| 2 | x |")
	assert.Contains(t, out, "_2 rows returned_")
}

func TestMarkdown_Empty(t *testing.T) {
	out := Markdown(Build(nil))

	assert.Equal(t, "## "+EmptyIcon+" "+EmptyTitle+"\n\n_"+EmptyHint+"_", out)
}

func TestExplanationText(t *testing.T) {
	assert.Equal(t, "Counts users.", ExplanationText(result.TextExplanation("Counts users."), "• "))
	assert.Equal(t, "• a\n• b", ExplanationText(result.ListExplanation("a", "b"), "• "))
	assert.Equal(t, "- a", ExplanationText(result.ListExplanation("a"), "- "))
}
