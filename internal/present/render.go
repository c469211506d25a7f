package present

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/leapstack-labs/askql/internal/cli/output"
	"github.com/leapstack-labs/askql/internal/result"
)

// RenderText writes v as styled terminal panels.
func RenderText(w io.Writer, st *output.Styles, v View) {
	_, _ = fmt.Fprintln(w, Text(st, v))
}

// Text lays out v as styled terminal panels, one per block.
func Text(st *output.Styles, v View) string {
	if v.Empty {
		return st.Box.Render(strings.Join([]string{
			EmptyIcon + " " + st.Bold.Render(EmptyTitle),
			st.Muted.Render(EmptyHint),
		}, "\n"))
	}

	parts := []string{st.Header1.Render(ResultsTitle)}
	for _, b := range v.Blocks {
		parts = append(parts, textBlock(st, b))
	}
	return strings.Join(parts, "\n")
}

func textBlock(st *output.Styles, b Block) string {
	var lines []string
	switch b.Kind {
	case result.KindError:
		lines = append(lines, st.Error.Bold(true).Render(b.Title), b.Message)
		lines = append(lines, textStatement(st, b.Statement)...)
		return st.ErrorBox.Render(strings.Join(lines, "\n"))
	case result.KindExecuted:
		lines = append(lines, st.Success.Bold(true).Render(b.Title))
		lines = append(lines, textStatement(st, b.Statement)...)
		return st.SuccessBox.Render(strings.Join(lines, "\n"))
	default:
		lines = append(lines, textStatement(st, b.Statement)...)
		lines = append(lines, newTable(b).Render(), st.Muted.Render(b.Caption))
		return st.Box.Render(strings.Join(lines, "\n"))
	}
}

func textStatement(st *output.Styles, stmt string) []string {
	if stmt == "" {
		return nil
	}
	return []string{st.Muted.Render(StatementLabel), st.Code.Render(stmt)}
}

// RenderMarkdown writes v as markdown.
func RenderMarkdown(w io.Writer, v View) {
	_, _ = fmt.Fprintln(w, Markdown(v))
}

// Markdown lays out v as markdown: a header per block, fenced SQL and
// markdown tables.
func Markdown(v View) string {
	var sb strings.Builder
	if v.Empty {
		sb.WriteString(output.FormatHeader(2, EmptyIcon+" "+EmptyTitle))
		sb.WriteString("\n\n_" + EmptyHint + "_")
		return sb.String()
	}

	sb.WriteString(output.FormatHeader(2, ResultsTitle))
	for _, b := range v.Blocks {
		sb.WriteString("\n\n")
		switch b.Kind {
		case result.KindError:
			sb.WriteString(output.FormatHeader(3, b.Title))
			sb.WriteString("\n\n" + b.Message)
			writeMarkdownStatement(&sb, b.Statement)
		case result.KindExecuted:
			sb.WriteString(output.FormatHeader(3, b.Title))
			writeMarkdownStatement(&sb, b.Statement)
		default:
			if b.Statement != "" {
				sb.WriteString("**" + StatementLabel + "**\n\n")
				sb.WriteString(output.FormatCodeBlock("sql", b.Statement))
				sb.WriteString("\n\n")
			}
			sb.WriteString(newTable(b).RenderMarkdown())
			sb.WriteString("\n\n_" + b.Caption + "_")
		}
	}
	return sb.String()
}

func writeMarkdownStatement(sb *strings.Builder, stmt string) {
	if stmt == "" {
		return
	}
	sb.WriteString("\n\n**" + StatementLabel + "**\n\n")
	sb.WriteString(output.FormatCodeBlock("sql", stmt))
}

func newTable(b Block) table.Writer {
	t := table.NewWriter()
	style := table.StyleLight
	style.Format.Header = text.FormatDefault
	t.SetStyle(style)

	header := make(table.Row, len(b.Headers))
	for i, h := range b.Headers {
		header[i] = h
	}
	t.AppendHeader(header)

	for _, r := range b.Rows {
		row := make(table.Row, len(r))
		for i, c := range r {
			row[i] = c
		}
		t.AppendRow(row)
	}
	return t
}
