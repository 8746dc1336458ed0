package material

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/leggera/lg2e2e/pkg/listing"
)

// Paginator wraps a mat-paginator.
type Paginator struct {
	Self       playwright.Locator
	SizeLength playwright.Locator
	NextButton playwright.Locator
	PrevButton playwright.Locator
}

// NewPaginator creates a Paginator rooted at a mat-paginator element.
func NewPaginator(self playwright.Locator) *Paginator {
	return &Paginator{
		Self:       self,
		SizeLength: self.Locator(".mat-mdc-select-value-text"),
		NextButton: self.Locator(".mat-mdc-paginator-navigation-next"),
		PrevButton: self.Locator(".mat-mdc-paginator-navigation-previous"),
	}
}

// RangeLabel returns the raw range label text, e.g. "1 - 10 of 42".
func (p *Paginator) RangeLabel() (string, error) {
	label, err := p.Self.Locator(".mat-mdc-paginator-range-label").TextContent()
	if err != nil {
		return "", fmt.Errorf("read range label: %w", err)
	}
	return label, nil
}

// ParseLabel reads the first shown record and the total record count from the range label.
func (p *Paginator) ParseLabel() (listing.PaginationState, error) {
	label, err := p.RangeLabel()
	if err != nil {
		return listing.PaginationState{}, err
	}
	return listing.ParseRangeLabel(label)
}

// Size returns the number of records shown per page.
func (p *Paginator) Size() (int, error) {
	text, err := p.SizeLength.TextContent()
	if err != nil {
		return 0, fmt.Errorf("read page size: %w", err)
	}
	size, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("parse page size %q: %w", text, err)
	}
	return size, nil
}

// NextPage moves to the next page.
func (p *Paginator) NextPage() error {
	if err := p.NextButton.Click(); err != nil {
		return fmt.Errorf("click next page: %w", err)
	}
	return nil
}

// PrevPage moves to the previous page.
func (p *Paginator) PrevPage() error {
	if err := p.PrevButton.Click(); err != nil {
		return fmt.Errorf("click previous page: %w", err)
	}
	return nil
}
