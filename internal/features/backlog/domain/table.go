package domain

// Table is a column-labeled tabular blob as handed over by the upload
// collaborator. Cell values are untyped strings; rows may be shorter than the
// header when trailing cells are empty.
type Table struct {
	Header []string `json:"header"`
	Rows   [][]string `json:"rows"`
}

// ColumnIndex returns the position of the named column, or -1 if absent.
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Cell returns the value of the given row at the given column index. Indexes
// beyond the end of a short row read as empty.
func (t *Table) Cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// RenameColumns relabels header entries according to the mapping. Labels not
// present in the mapping pass through unchanged.
func (t *Table) RenameColumns(mapping map[string]string) {
	for i, h := range t.Header {
		if canonical, ok := mapping[h]; ok {
			t.Header[i] = canonical
		}
	}
}
