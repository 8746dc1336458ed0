package ui

import (
	"fmt"
	"net/url"
	"path"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"

	"github.com/leggera/lg2e2e/pkg/listing"
	"github.com/leggera/lg2e2e/pkg/ui/material"
)

// MainformList wraps lg2-mainform-list, the searchable, sortable and paginated record listing
// used by the elements, collections, applications and cloud pages.
type MainformList struct {
	Self playwright.Locator

	Header         playwright.Locator
	HeaderIcon     playwright.Locator
	HeaderTitle    playwright.Locator
	AddNewButton   playwright.Locator
	DeleteButton   playwright.Locator
	DownloadButton playwright.Locator

	Table     *material.Table
	Search    *material.FormField
	Paginator *material.Paginator
	Listing   *material.ListingTable

	page playwright.Page
}

// NewMainformList creates a MainformList rooted at self. The search box lives in the page toolbar.
func NewMainformList(page playwright.Page, self playwright.Locator) *MainformList {
	header := self.Locator("#mainform-list-header")
	table := material.NewTable(self.Locator("table"))
	paginator := material.NewPaginator(self.Locator("mat-paginator"))
	return &MainformList{
		Self:           self,
		Header:         header,
		HeaderIcon:     header.Locator("mat-icon:first-of-type"),
		HeaderTitle:    header.Locator("h1"),
		AddNewButton:   header.GetByTestId("mainformListAddNewButton"),
		DeleteButton:   header.GetByTestId("mainformListDeleteButton"),
		DownloadButton: header.GetByTestId("mainformListDownloadButton"),
		Table:          table,
		Search:         material.NewFormField(page, page.Locator("#search-box")),
		Paginator:      paginator,
		Listing:        &material.ListingTable{Table: table, Paginator: paginator, IdentityAttr: material.SortHeaderAttr},
		page:           page,
	}
}

// Context returns the listing context, the last path segment of the current page url.
func (m *MainformList) Context() (string, error) {
	u, err := url.Parse(m.page.URL())
	if err != nil {
		return "", fmt.Errorf("parse page url: %w", err)
	}
	ctx := path.Base(u.Path)
	if ctx == "/" || ctx == "." {
		return "", fmt.Errorf("no listing context in %q", m.page.URL())
	}
	return ctx, nil
}

// SpySearch runs action and returns the dataset of the listing response it triggers.
func (m *MainformList) SpySearch(action func() error) ([]listing.Record, error) {
	ctx, err := m.Context()
	if err != nil {
		return nil, err
	}
	return SpyDataSource(m.page, ListingEndpoint(ctx), action)
}

// MakeSearch clears the search box, then types needle and returns the filtered dataset
// the backend answered with. An empty needle returns the unfiltered dataset.
func (m *MainformList) MakeSearch(needle string) ([]listing.Record, error) {
	if err := m.Search.Input.Fill(""); err != nil {
		return nil, fmt.Errorf("clear search: %w", err)
	}
	records, err := m.SpySearch(func() error { return m.Search.Input.Fill(needle) })
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", needle, err)
	}
	return records, nil
}

// Verifier returns the listing verifier of this mainform, cell text compared untrimmed.
func (m *MainformList) Verifier() *listing.Verifier {
	return m.Listing.Verifier(listing.TextRaw)
}

// VerifyListing checks the rendered page against reference, sorted the way the table headers say.
func (m *MainformList) VerifyListing(reference []listing.Record) error {
	return m.Verifier().Verify(reference, listing.SortFromUI)
}

// ExpectCorrectListing fails t unless the rendered page matches reference sorted and sliced
// the way the table currently shows it.
func (m *MainformList) ExpectCorrectListing(t require.TestingT, reference []listing.Record) {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	m.Verifier().Expect(t, reference, listing.SortFromUI)
}
