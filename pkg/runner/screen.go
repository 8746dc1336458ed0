package runner

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/playwright-community/playwright-go"

	"github.com/leggera/lg2e2e/pkg/listing"
	"github.com/leggera/lg2e2e/pkg/ui"
	"github.com/leggera/lg2e2e/pkg/ui/material"
)

// Targets maps the screen names accepted by the cli to the menu entries opening them.
var Targets = map[string]ui.MenuEntry{
	"elements":     ui.MenuElements,
	"collections":  ui.MenuCollections,
	"applications": ui.MenuApplications,
	"cloud":        ui.MenuCloud,
}

// TargetNames returns the known target names, sorted.
func TargetNames() []string {
	return slices.Sorted(maps.Keys(Targets))
}

// ListingScreen is a mainform listing page in a browser.
type ListingScreen struct {
	page    playwright.Page
	listing *ui.ListingPage
}

// NewListingScreen creates the screen for a named target on page.
func NewListingScreen(page playwright.Page, target string) (*ListingScreen, error) {
	entry, ok := Targets[target]
	if !ok {
		return nil, fmt.Errorf("unknown target %q, expected one of %v", target, TargetNames())
	}
	return &ListingScreen{page: page, listing: ui.NewListingPage(page, entry)}, nil
}

// Open navigates to the screen through the menu and returns the dataset it loaded.
func (s *ListingScreen) Open() ([]listing.Record, error) {
	endpoint := ui.ListingEndpoint(s.listing.Entry.Route())
	return ui.SpyDataSource(s.page, endpoint, s.listing.Navigate)
}

// Search types needle in the search box and returns the filtered dataset.
func (s *ListingScreen) Search(needle string) ([]listing.Record, error) {
	return s.listing.Mainform.MakeSearch(needle)
}

// NextPage clicks the paginator next button.
func (s *ListingScreen) NextPage() error {
	return s.listing.Mainform.Paginator.NextPage()
}

// SortBy clicks the n-th column header.
func (s *ListingScreen) SortBy(column int) error {
	if column < 1 {
		return fmt.Errorf("invalid sort column %d", column)
	}
	return s.listing.Mainform.Table.SortByHeader(material.ByOrder(column))
}

// Verify checks the rendered page against reference.
func (s *ListingScreen) Verify(reference []listing.Record) error {
	return s.listing.Mainform.VerifyListing(reference)
}

// Screenshot saves a full page screenshot to path.
func (s *ListingScreen) Screenshot(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create screenshot dir: %w", err)
	}
	if _, err := s.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	}); err != nil {
		return fmt.Errorf("screenshot: %w", err)
	}
	return nil
}
