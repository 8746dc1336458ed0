package material

import (
	"fmt"
	"slices"

	"github.com/playwright-community/playwright-go"

	"github.com/leggera/lg2e2e/pkg/ui/expect"
)

// Table wraps a mat-table whose first column holds row selection checkboxes.
type Table struct {
	Self              playwright.Locator
	SelectAllCheckbox playwright.Locator
}

// NewTable creates a Table rooted at a table element.
func NewTable(self playwright.Locator) *Table {
	return &Table{
		Self:              self,
		SelectAllCheckbox: self.Locator("th input"),
	}
}

// Headers returns the data column headers, selection column excluded.
func (t *Table) Headers() playwright.Locator {
	return t.Self.Locator("thead").GetByRole("row").Locator("> th:not(:first-of-type)")
}

// Rows returns the body rows in DOM order.
func (t *Table) Rows() playwright.Locator {
	return t.Self.Locator("tbody").GetByRole("row")
}

// DataCells returns the cells of row, selection cell excluded.
func DataCells(row playwright.Locator) playwright.Locator {
	return row.Locator("> td:not(:first-of-type)")
}

// Row finds a body row.
func (t *Table) Row(n Needle) playwright.Locator {
	return n.pick(t.Self.Locator("tbody"), "row")
}

// Header finds a column header.
func (t *Table) Header(n Needle) playwright.Locator {
	return n.pick(t.Self, "columnheader")
}

// SortByHeader clicks a column header, toggling the sort on that column.
func (t *Table) SortByHeader(n Needle) error {
	if err := t.Header(n).Click(); err != nil {
		return fmt.Errorf("click header %s: %w", n, err)
	}
	return nil
}

// ClickRow clicks a row.
func (t *Table) ClickRow(n Needle) error {
	if err := t.Row(n).Click(); err != nil {
		return fmt.Errorf("click row %s: %w", n, err)
	}
	return nil
}

// SelectRow clicks the selection checkbox of a row.
func (t *Table) SelectRow(n Needle) error {
	if err := t.Row(n).Locator("mat-checkbox").Click(); err != nil {
		return fmt.Errorf("select row %s: %w", n, err)
	}
	return nil
}

// ExpectRowsSelected checks that exactly the rows at the given 1-based positions are selected.
func (t *Table) ExpectRowsSelected(orders ...int) error {
	count, err := t.Rows().Count()
	if err != nil {
		return fmt.Errorf("count rows: %w", err)
	}
	for i := 1; i <= count; i++ {
		box := expect.Locator(t.Rows().Nth(i - 1).Locator(">td input"))
		if slices.Contains(orders, i) {
			err = box.ToBeChecked()
		} else {
			err = box.Not().ToBeChecked()
		}
		if err != nil {
			return fmt.Errorf("row %d selection: %w", i, err)
		}
	}
	return nil
}

// ExpectNoRowsSelected checks that no row checkbox is checked.
func (t *Table) ExpectNoRowsSelected() error {
	return t.ExpectRowsSelected()
}

