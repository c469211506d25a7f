package tui

import (
	"strings"

	"github.com/leapstack-labs/askql/internal/panel"
	"github.com/leapstack-labs/askql/internal/present"
)

const (
	title            = "🔎 askql"
	statementHeading = "Generated SQL:"
	explainHeading   = "Explanation:"
)

// busyLabel is shown next to the spinner while a call is in flight.
func busyLabel(p panel.Phase) string {
	switch p {
	case panel.PhaseGenerating:
		return "Generating..."
	case panel.PhaseRunning:
		return "Running..."
	case panel.PhaseExplaining:
		return "Explaining..."
	default:
		return ""
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	return strings.Join([]string{m.top(), m.results.View(), m.footer()}, "\n")
}

// top renders everything above the results: title, prompt, status and the
// statement and explanation panels when they have content.
func (m *Model) top() string {
	st := m.styles
	p := m.panel

	sections := []string{
		st.Header1.Render(title),
		m.input.View(),
		m.status(),
	}
	if msg := p.Error(); msg != "" {
		sections = append(sections, st.ErrorBox.Render(st.Error.Render("⚠️ "+msg)))
	}
	if stmt := p.Statement(); stmt != "" {
		body := strings.Join([]string{
			st.Bold.Render(statementHeading),
			st.Code.Render(stmt),
			"",
			st.Muted.Render(m.actionsLine()),
		}, "\n")
		sections = append(sections, st.Box.Render(body))
	}
	if exp := p.Explanation(); !exp.IsEmpty() {
		sections = append(sections, st.InfoBox.Render(
			st.Bold.Render(explainHeading)+"\n"+present.ExplanationText(exp, "• ")))
	}
	return strings.Join(sections, "\n")
}

func (m *Model) status() string {
	if m.panel.Loading() {
		return m.spinner.View() + " " + busyLabel(m.panel.Phase())
	}
	if m.notice != "" {
		return m.styles.Warning.Render(m.notice)
	}
	return ""
}

// actionsLine lists the statement actions with the copy label.
func (m *Model) actionsLine() string {
	return strings.Join([]string{
		m.keys.Run.Help().Key + " Run",
		m.keys.Explain.Help().Key + " Explain",
		m.keys.Copy.Help().Key + " " + m.panel.CopyLabel(),
	}, "   ")
}

func (m *Model) footer() string {
	if !m.showHelp {
		return ""
	}
	return m.help.View(m.keys)
}
