// Package present turns run results into displayable panels.
//
// Build is a pure function from result entries to a View; the Render
// functions lay a View out as styled terminal text or markdown.
package present

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/leapstack-labs/askql/internal/result"
)

// NullPlaceholder stands in for null or missing cell values.
const NullPlaceholder = "—"

// Fixed panel text.
const (
	ResultsTitle   = "📈 Query Results"
	EmptyIcon      = "📊"
	EmptyTitle     = "No Results Yet"
	EmptyHint      = "Generate and run a query to see results here"
	ErrorTitle     = "❌ Error"
	ExecutedTitle  = "✅ Query Executed Successfully"
	StatementLabel = "Query Statement:"
)

// Block is one rendered result entry.
type Block struct {
	Kind      result.Kind
	Title     string
	Message   string
	Statement string
	Headers   []string
	Rows      [][]string
	Caption   string
}

// View is the presentation of a whole result set. Empty views render the
// placeholder and carry no blocks.
type View struct {
	Empty  bool
	Blocks []Block
}

// Build lays out entries in order. Entries that classify as empty produce
// no block.
func Build(entries []result.Entry) View {
	if len(entries) == 0 {
		return View{Empty: true}
	}

	v := View{Blocks: make([]Block, 0, len(entries))}
	for _, e := range entries {
		switch result.Classify(e) {
		case result.KindError:
			v.Blocks = append(v.Blocks, Block{
				Kind:      result.KindError,
				Title:     ErrorTitle,
				Message:   e.Error,
				Statement: e.Statement,
			})
		case result.KindExecuted:
			v.Blocks = append(v.Blocks, Block{
				Kind:      result.KindExecuted,
				Title:     ExecutedTitle,
				Statement: e.Statement,
			})
		case result.KindRowSet:
			v.Blocks = append(v.Blocks, rowSetBlock(e))
		}
	}
	return v
}

func rowSetBlock(e result.Entry) Block {
	headers := e.Columns()
	rows := make([][]string, 0, len(e.Rows))
	for _, r := range e.Rows {
		cells := make([]string, len(headers))
		for i, h := range headers {
			cells[i] = FormatValue(r.Value(h))
		}
		rows = append(rows, cells)
	}
	return Block{
		Kind:      result.KindRowSet,
		Statement: e.Statement,
		Headers:   headers,
		Rows:      rows,
		Caption:   RowCaption(len(rows)),
	}
}

// RowCaption returns the row-count caption for n rows.
func RowCaption(n int) string {
	if n == 1 {
		return "1 row returned"
	}
	return fmt.Sprintf("%d rows returned", n)
}

// FormatValue renders a cell. ok is false for a missing key; both missing
// and null values render as NullPlaceholder. Numbers decoded as json.Number
// keep their wire text, so 2.50 stays "2.50" rather than "2.5". Nested
// arrays and objects are shown as compact JSON.
func FormatValue(v any, ok bool) string {
	if !ok || v == nil {
		return NullPlaceholder
	}
	switch x := v.(type) {
	case string:
		return x
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case []any, map[string]any:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(b)
	default:
		return fmt.Sprint(x)
	}
}

// ExplanationText renders a list explanation one point per line, each
// prefixed with bullet, and a text explanation as is.
func ExplanationText(e result.Explanation, bullet string) string {
	if !e.IsList() {
		return e.Text
	}
	lines := make([]string, len(e.Points))
	for i, pt := range e.Points {
		lines[i] = bullet + pt
	}
	return strings.Join(lines, "\n")
}
