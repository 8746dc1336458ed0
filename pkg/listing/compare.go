package listing

import (
	"fmt"
	"strings"
)

// ColumnMap maps a rendered column position to the record field it displays.
// Position 0 is the first data column, the row selection column is not part of the map.
type ColumnMap []string

// Field returns the record field shown in column k.
func (m ColumnMap) Field(k int) (string, bool) {
	if k < 0 || k >= len(m) {
		return "", false
	}
	return m[k], true
}

// Rendered is a snapshot of the rows a table displays, in DOM order,
// with the selection cell already removed from each row.
type Rendered struct {
	Columns ColumnMap
	Rows    [][]string
}

// Mismatch describes the first rendered cell that disagrees with the expected records.
type Mismatch struct {
	Row      int    // 0-based rendered row
	Column   int    // 0-based data column
	Field    string // record field for the column, empty if the column has no header
	Expected string
	Actual   string
	Reason   string
}

func (m Mismatch) String() string {
	if m.Reason != "" {
		return fmt.Sprintf("row %d, column %d (%s): %s", m.Row+1, m.Column+1, m.Field, m.Reason)
	}
	return fmt.Sprintf("row %d, column %d (%s): expected %q, rendered %q", m.Row+1, m.Column+1, m.Field, m.Expected, m.Actual)
}

// Compare reports whether every rendered cell equals the matching expected field.
// Only rendered rows and cells are visited: expected records past the last rendered row are never checked.
func Compare(expected []Record, rendered Rendered, mode TextMode) bool {
	_, found := FirstMismatch(expected, rendered, mode)
	return !found
}

// FirstMismatch walks rendered rows in order, cell by cell, and stops at the first disagreement.
func FirstMismatch(expected []Record, rendered Rendered, mode TextMode) (Mismatch, bool) {
	for i, row := range rendered.Rows {
		for k, cell := range row {
			actual := normalize(cell, mode)
			field, ok := rendered.Columns.Field(k)
			if !ok {
				return Mismatch{Row: i, Column: k, Actual: actual, Reason: "no header for column"}, true
			}
			if i >= len(expected) {
				return Mismatch{Row: i, Column: k, Field: field, Actual: actual, Reason: "row not in expected page"}, true
			}
			want, ok := expected[i][field]
			if !ok {
				return Mismatch{Row: i, Column: k, Field: field, Actual: actual, Reason: "field missing from record"}, true
			}
			if want != actual {
				return Mismatch{Row: i, Column: k, Field: field, Expected: want, Actual: actual}, true
			}
		}
	}
	return Mismatch{}, false
}

func normalize(text string, mode TextMode) string {
	if mode == TextTrimmed {
		return strings.TrimSpace(text)
	}
	return text
}
