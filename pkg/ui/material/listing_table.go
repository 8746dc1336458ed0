package material

import (
	"fmt"

	"github.com/leggera/lg2e2e/pkg/listing"
)

// Header attributes naming the record field a column displays.
const (
	SortHeaderAttr = "mat-sort-header"
	TestIDAttr     = "data-testid"
)

const activeSortSelector = `[role="columnheader"][aria-sort]:not([aria-sort="none"])`

// ListingTable reads a table and its paginator for listing reconciliation.
// IdentityAttr is the header attribute holding the field name; sortable mainform tables use
// SortHeaderAttr, tables without sorting use TestIDAttr.
type ListingTable struct {
	Table        *Table
	Paginator    *Paginator
	IdentityAttr string
}

// HeaderIdentities reads the identity attribute of every data column header.
func (l *ListingTable) HeaderIdentities() (listing.ColumnMap, error) {
	headers := l.Table.Headers()
	count, err := headers.Count()
	if err != nil {
		return nil, fmt.Errorf("count headers: %w", err)
	}
	cols := make(listing.ColumnMap, 0, count)
	for k := 0; k < count; k++ {
		field, err := headers.Nth(k).GetAttribute(l.IdentityAttr)
		if err != nil {
			return nil, fmt.Errorf("read %s of header %d: %w", l.IdentityAttr, k+1, err)
		}
		cols = append(cols, field)
	}
	return cols, nil
}

// BodyRows reads the text content of every data cell, row by row.
func (l *ListingTable) BodyRows() ([][]string, error) {
	rows := l.Table.Rows()
	count, err := rows.Count()
	if err != nil {
		return nil, fmt.Errorf("count rows: %w", err)
	}
	res := make([][]string, 0, count)
	for i := 0; i < count; i++ {
		cells, err := DataCells(rows.Nth(i)).AllTextContents()
		if err != nil {
			return nil, fmt.Errorf("read cells of row %d: %w", i+1, err)
		}
		res = append(res, cells)
	}
	return res, nil
}

// ActiveSort reads the column and direction of the header with an active aria-sort.
func (l *ListingTable) ActiveSort() (listing.SortConfig, error) {
	header := l.Table.Self.Locator(activeSortSelector)
	count, err := header.Count()
	if err != nil {
		return listing.SortConfig{}, fmt.Errorf("count sorted headers: %w", err)
	}
	if count == 0 {
		return listing.SortConfig{}, nil
	}

	first := header.First()
	col, err := first.GetAttribute(SortHeaderAttr)
	if err != nil {
		return listing.SortConfig{}, fmt.Errorf("read sorted column: %w", err)
	}
	dir, err := first.GetAttribute("aria-sort")
	if err != nil {
		return listing.SortConfig{}, fmt.Errorf("read sort direction: %w", err)
	}
	return listing.SortConfig{Column: col, Direction: listing.ParseDirection(dir)}, nil
}

// RangeLabel returns the paginator range label.
func (l *ListingTable) RangeLabel() (string, error) {
	return l.Paginator.RangeLabel()
}

// PageSize returns the paginator page size.
func (l *ListingTable) PageSize() (int, error) {
	return l.Paginator.Size()
}

// Verifier returns a listing verifier reading this table with the given cell text mode.
func (l *ListingTable) Verifier(mode listing.TextMode) *listing.Verifier {
	return &listing.Verifier{Table: l, Text: mode}
}

// compile-time check
var _ listing.Table = (*ListingTable)(nil)
