package result

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Cell is a single column/value pair of a Row.
type Cell struct {
	Column string
	Value  any
}

// Row is a JSON object whose key order is preserved. Values are decoded with
// json.Number for numbers so their textual form survives unchanged.
type Row struct {
	columns []string
	values  map[string]any
}

// NewRow builds a row from cells in order. A repeated column keeps its first
// position and its last value, matching JSON object decoding.
func NewRow(cells ...Cell) Row {
	r := Row{values: make(map[string]any, len(cells))}
	for _, c := range cells {
		r.set(c.Column, c.Value)
	}
	return r
}

func (r *Row) set(col string, v any) {
	if r.values == nil {
		r.values = make(map[string]any)
	}
	if _, ok := r.values[col]; !ok {
		r.columns = append(r.columns, col)
	}
	r.values[col] = v
}

// Columns returns the keys of the row in their original order.
func (r Row) Columns() []string {
	out := make([]string, len(r.columns))
	copy(out, r.columns)
	return out
}

// Len returns the number of columns in the row.
func (r Row) Len() int {
	return len(r.columns)
}

// Value returns the value stored under col. ok is false when the row has no
// such key; a present JSON null is returned as (nil, true).
func (r Row) Value(col string) (v any, ok bool) {
	v, ok = r.values[col]
	return v, ok
}

// UnmarshalJSON decodes a JSON object, recording key order.
func (r *Row) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("row: expected JSON object, got %v", tok)
	}

	*r = Row{values: make(map[string]any)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("row: expected object key, got %v", tok)
		}
		var v any
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("row: column %q: %w", key, err)
		}
		r.set(key, v)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// MarshalJSON encodes the row as a JSON object in column order.
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range r.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.values[col])
		if err != nil {
			return nil, fmt.Errorf("row: column %q: %w", col, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
