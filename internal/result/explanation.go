package result

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Explanation is the service's description of a statement: either a single
// paragraph or an ordered list of points.
type Explanation struct {
	Text   string
	Points []string
}

// TextExplanation returns a paragraph explanation.
func TextExplanation(text string) Explanation {
	return Explanation{Text: text}
}

// ListExplanation returns a bulleted explanation.
func ListExplanation(points ...string) Explanation {
	if points == nil {
		points = []string{}
	}
	return Explanation{Points: points}
}

// IsList reports whether the explanation should be rendered as bullets.
func (e Explanation) IsList() bool {
	return e.Points != nil
}

// IsEmpty reports whether there is nothing to show.
func (e Explanation) IsEmpty() bool {
	if e.IsList() {
		return len(e.Points) == 0
	}
	return e.Text == ""
}

// String renders the explanation as plain text, one "- " line per point.
func (e Explanation) String() string {
	if !e.IsList() {
		return e.Text
	}
	var b strings.Builder
	for i, p := range e.Points {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("- ")
		b.WriteString(p)
	}
	return b.String()
}

// UnmarshalJSON accepts a JSON string, an array of strings, or null.
// Non-string array items are kept in their JSON text form.
func (e *Explanation) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*e = Explanation{}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '"':
		return json.Unmarshal(data, &e.Text)
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		e.Points = make([]string, 0, len(items))
		for _, item := range items {
			var s string
			if err := json.Unmarshal(item, &s); err != nil {
				s = string(bytes.TrimSpace(item))
			}
			e.Points = append(e.Points, s)
		}
		return nil
	default:
		return fmt.Errorf("explanation: expected string or array, got %s", truncate(data, 32))
	}
}

// MarshalJSON encodes the explanation in the same shape it was received.
func (e Explanation) MarshalJSON() ([]byte, error) {
	if e.IsList() {
		return json.Marshal(e.Points)
	}
	return json.Marshal(e.Text)
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
