package commands

import (
	"github.com/leapstack-labs/askql/internal/cli/output"
	"github.com/leapstack-labs/askql/internal/present"
	"github.com/leapstack-labs/askql/internal/result"
)

// Section titles for one-shot output.
const (
	titleStatement   = "Generated SQL"
	titleExplanation = "Explanation"
)

// queryReport is the JSON shape of a one-shot command. Only the parts a
// command produced are set.
type queryReport struct {
	Query       string              `json:"query,omitempty"`
	Explanation *result.Explanation `json:"explanation,omitempty"`
	Result      *[]result.Entry     `json:"result,omitempty"`
}

func (q *queryReport) setResult(entries []result.Entry) {
	if entries == nil {
		entries = []result.Entry{}
	}
	q.Result = &entries
}

func (q *queryReport) setExplanation(e result.Explanation) {
	q.Explanation = &e
}

// renderReport writes everything q holds in the renderer's mode.
func renderReport(r *output.Renderer, q *queryReport) error {
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(q)
	}
	if q.Query != "" {
		renderStatement(r, q.Query)
	}
	if q.Explanation != nil {
		renderExplanation(r, *q.Explanation)
	}
	if q.Result != nil {
		renderResults(r, *q.Result)
	}
	return nil
}

func renderStatement(r *output.Renderer, stmt string) {
	if r.EffectiveMode() == output.ModeMarkdown {
		r.Header(2, titleStatement)
		r.Println()
		r.Println(output.FormatCodeBlock("sql", stmt))
		r.Println()
		return
	}
	st := r.Styles()
	r.Println(st.Box.Render(st.Bold.Render(titleStatement+":") + "\n" + st.Code.Render(stmt)))
}

func renderExplanation(r *output.Renderer, e result.Explanation) {
	if e.IsEmpty() {
		return
	}
	if r.EffectiveMode() == output.ModeMarkdown {
		r.Header(2, titleExplanation)
		r.Println()
		r.Println(present.ExplanationText(e, "- "))
		r.Println()
		return
	}
	st := r.Styles()
	r.Println(st.InfoBox.Render(st.Bold.Render(titleExplanation+":") + "\n" +
		present.ExplanationText(e, "• ")))
}

func renderResults(r *output.Renderer, entries []result.Entry) {
	view := present.Build(entries)
	if r.EffectiveMode() == output.ModeMarkdown {
		present.RenderMarkdown(r.Writer(), view)
		return
	}
	present.RenderText(r.Writer(), r.Styles(), view)
}
