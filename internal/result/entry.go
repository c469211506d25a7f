// Package result defines the response shapes returned by the translation
// service: result entries produced by executing statements and the
// explanation of a statement.
package result

// StatusExecuted marks a statement that ran without producing a row set.
const StatusExecuted = "executed"

// Kind discriminates the shape of an Entry.
type Kind int

// Entry kinds, in classification priority order.
const (
	KindEmpty Kind = iota
	KindError
	KindExecuted
	KindRowSet
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindError:
		return "error"
	case KindExecuted:
		return "executed"
	case KindRowSet:
		return "rows"
	default:
		return "empty"
	}
}

// Entry is one item of a run response. Exactly one shape applies, decided by
// Classify; fields belonging to other shapes are ignored.
type Entry struct {
	Statement string `json:"statement,omitempty"`
	Error     string `json:"error,omitempty"`
	Status    string `json:"status,omitempty"`
	Rows      []Row  `json:"rows,omitempty"`
}

// Classify returns the shape of e. An error wins over an executed status,
// which wins over a non-empty row set. Anything else is KindEmpty.
func Classify(e Entry) Kind {
	switch {
	case e.Error != "":
		return KindError
	case e.Status == StatusExecuted:
		return KindExecuted
	case len(e.Rows) > 0:
		return KindRowSet
	default:
		return KindEmpty
	}
}

// Kind is shorthand for Classify(e).
func (e Entry) Kind() Kind {
	return Classify(e)
}

// Columns returns the column headers of a row set: the keys of the first
// row, in order. Later rows are assumed to share them.
func (e Entry) Columns() []string {
	if len(e.Rows) == 0 {
		return nil
	}
	return e.Rows[0].Columns()
}

// ErrorEntry builds an entry that Classify reports as KindError.
func ErrorEntry(msg, statement string) Entry {
	return Entry{Error: msg, Statement: statement}
}

// ExecutedEntry builds an entry that Classify reports as KindExecuted.
func ExecutedEntry(statement string) Entry {
	return Entry{Status: StatusExecuted, Statement: statement}
}

// RowSetEntry builds an entry that Classify reports as KindRowSet when rows
// is non-empty.
func RowSetEntry(statement string, rows ...Row) Entry {
	return Entry{Statement: statement, Rows: rows}
}
