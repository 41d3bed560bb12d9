package layout

import "seatlab/internal/scene"

// Row is a named grouping of seats. Seats reference a row weakly through
// their rowId; the row itself never holds a seat list.
type Row struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	ShowLabelLeft  bool   `json:"showLabelLeft"`
	ShowLabelRight bool   `json:"showLabelRight"`
}

// Category is a named, priced, colored seat classification. Categories are
// owned by the document; seats only hold a weak category id.
type Category struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Color string  `json:"color"`
	Price float64 `json:"price"`
}

// RowTable is the document's ordered row collection.
type RowTable struct {
	rows []Row
}

// NewRowTable creates a table seeded with the given rows.
func NewRowTable(rows ...Row) *RowTable {
	t := &RowTable{}
	t.rows = append(t.rows, rows...)
	return t
}

// Rows returns a copy of the row list in creation order.
func (t *RowTable) Rows() []Row {
	out := make([]Row, len(t.rows))
	copy(out, t.rows)
	return out
}

// Len returns the number of rows.
func (t *RowTable) Len() int {
	return len(t.rows)
}

// Get returns the row with the given id.
func (t *RowTable) Get(id string) (Row, bool) {
	for _, r := range t.rows {
		if r.ID == id {
			return r, true
		}
	}
	return Row{}, false
}

// Add appends a row as-is.
func (t *RowTable) Add(r Row) {
	t.rows = append(t.rows, r)
}

// AddNext creates a row with a fresh id and the next alphabetic name and
// appends it.
func (t *RowTable) AddNext() Row {
	r := Row{ID: scene.NewID(), Name: t.NextName()}
	t.rows = append(t.rows, r)
	return r
}

// Replace swaps the whole table contents, used when a document is loaded.
func (t *RowTable) Replace(rows []Row) {
	t.rows = append(t.rows[:0:0], rows...)
}

// NextName returns the Excel-style name for the next row, continuing the
// alphabetic sequence from the current row count: A..Z, AA, AB, ...
func (t *RowTable) NextName() string {
	return AlphabeticName(len(t.rows))
}

// AlphabeticName converts a zero-based index to a base-26 alphabetic name.
func AlphabeticName(index int) string {
	name := ""
	n := index
	for {
		name = string(rune('A'+n%26)) + name
		n = n/26 - 1
		if n < 0 {
			break
		}
	}
	return name
}
