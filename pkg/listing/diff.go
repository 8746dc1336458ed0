package listing

import (
	"fmt"

	"github.com/google/go-cmp/cmp"
)

// MismatchError is returned by Verifier.Verify when the rendered page diverges from the
// expected one. It unwraps to ErrListingMismatch.
type MismatchError struct {
	Mismatch Mismatch
	Diff     string // expected vs rendered rows, "-" expected, "+" rendered
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s: %s", ErrListingMismatch, e.Mismatch)
}

func (e *MismatchError) Unwrap() error { return ErrListingMismatch }

// Project lays records out as rows of the given columns, the way a table would render them.
// Fields a record lacks project to the empty string.
func Project(records []Record, cols ColumnMap) [][]string {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		row := make([]string, len(cols))
		for k, field := range cols {
			row[k] = rec[field]
		}
		rows = append(rows, row)
	}
	return rows
}

// Diff returns a readable diff between the expected page and the rendered rows, empty when equal.
// Expected rows past the rendered ones are included, unlike Compare which ignores them.
func Diff(expected []Record, rendered Rendered, mode TextMode) string {
	got := make([][]string, 0, len(rendered.Rows))
	for _, row := range rendered.Rows {
		cells := make([]string, len(row))
		for k, cell := range row {
			cells[k] = normalize(cell, mode)
		}
		got = append(got, cells)
	}
	return cmp.Diff(Project(expected, rendered.Columns), got)
}
