package ui

import (
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"

	"github.com/leggera/lg2e2e/pkg/listing"
	"github.com/leggera/lg2e2e/pkg/ui/material"
)

// WizardCloudEndpoint is the listing api queried by the cloud import step.
const WizardCloudEndpoint = "**/lg2api/pages.php**"

// WizardPage wraps lg2-wizard, the new page stepper: origin, details and result steps.
type WizardPage struct {
	Page playwright.Page
	Self playwright.Locator

	Stepper *material.Stepper

	FromScratchRadio playwright.Locator
	CloudImportRadio playwright.Locator
	MiloImportRadio  playwright.Locator

	FileDropZone     playwright.Locator
	FileImportButton playwright.Locator

	NoRecordsLabel playwright.Locator
	CloudTable     *material.Table
	Search         *material.FormField
	Paginator      *material.Paginator
	CloudListing   *material.ListingTable

	Application *material.Autocomplete
	PageTitle   *material.FormField

	FinishButton  playwright.Locator
	RestartButton playwright.Locator

	Menu *Menu
}

// NewWizardPage creates a WizardPage for page.
func NewWizardPage(page playwright.Page) *WizardPage {
	self := page.Locator("lg2-wizard")
	table := material.NewTable(self.Locator("table"))
	paginator := material.NewPaginator(self.Locator("mat-paginator"))
	return &WizardPage{
		Page:             page,
		Self:             self,
		Stepper:          material.NewStepper(self.Locator("mat-stepper")),
		FromScratchRadio: self.GetByTestId("fromScratch").Locator("input"),
		MiloImportRadio:  self.GetByTestId("miloImport").Locator("input"),
		CloudImportRadio: self.GetByTestId("cloudImport").Locator("input"),
		FileDropZone:     self.Locator("ngx-file-drop > div"),
		FileImportButton: self.Locator("ngx-file-drop button"),
		NoRecordsLabel:   page.Locator("lg2-no-records"),
		CloudTable:       table,
		Search:           material.NewFormField(page, self.Locator("lg2-paginator-filter > mat-form-field")),
		Paginator:        paginator,
		// the cloud table has no sorting, headers carry the field in data-testid
		CloudListing:  &material.ListingTable{Table: table, Paginator: paginator, IdentityAttr: material.TestIDAttr},
		Application:   material.NewAutocomplete(page, self.Locator(`mat-form-field:has(input[formcontrolname="application"])`)),
		PageTitle:     material.NewFormField(page, self.Locator(`mat-form-field:has(input[formcontrolname="name"])`)),
		FinishButton:  self.GetByTestId("finishWizard"),
		RestartButton: self.GetByTestId("resetWizard"),
		Menu:          NewMenu(page.Locator("lg2-menu")),
	}
}

// Navigate opens the wizard through the menu.
func (w *WizardPage) Navigate() error {
	if err := w.Menu.Navigate(MenuWizard); err != nil {
		return err
	}
	if err := w.Page.WaitForURL(regexp.MustCompile(`/wizard`)); err != nil {
		return fmt.Errorf("wait for wizard route: %w", err)
	}
	return nil
}

// PickWithExplorer clicks the import button and answers the file chooser with file.
func (w *WizardPage) PickWithExplorer(file string) error {
	chooser, err := w.Page.ExpectFileChooser(func() error { return w.FileImportButton.Click() })
	if err != nil {
		return fmt.Errorf("wait for file chooser: %w", err)
	}
	abs, err := filepath.Abs(file)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", file, err)
	}
	if err := chooser.SetFiles(abs); err != nil {
		return fmt.Errorf("set file %s: %w", abs, err)
	}
	return nil
}

// MakeSearch clears the cloud search, types needle and returns the dataset the backend answered with.
func (w *WizardPage) MakeSearch(needle string) ([]listing.Record, error) {
	if err := w.Search.Input.Fill(""); err != nil {
		return nil, fmt.Errorf("clear search: %w", err)
	}
	records, err := SpyDataSource(w.Page, WizardCloudEndpoint, func() error { return w.Search.Input.Fill(needle) })
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", needle, err)
	}
	return records, nil
}

// SelectCloudImport picks the cloud import origin, moves to the cloud step and returns
// the dataset the step loads.
func (w *WizardPage) SelectCloudImport() ([]listing.Record, error) {
	if err := w.CloudImportRadio.Click(); err != nil {
		return nil, fmt.Errorf("pick cloud origin: %w", err)
	}
	records, err := w.OpenCloudStep()
	if err != nil {
		return nil, fmt.Errorf("select cloud import: %w", err)
	}
	return records, nil
}

// OpenCloudStep clicks next on the origin step and returns the cloud dataset it loads.
func (w *WizardPage) OpenCloudStep() ([]listing.Record, error) {
	return SpyDataSource(w.Page, WizardCloudEndpoint, w.Stepper.Next)
}

// Verifier returns the cloud listing verifier, cell text trimmed before comparison.
func (w *WizardPage) Verifier() *listing.Verifier {
	return w.CloudListing.Verifier(listing.TextTrimmed)
}

// VerifyListing checks the cloud table page against reference in dataset order.
func (w *WizardPage) VerifyListing(reference []listing.Record) error {
	return w.Verifier().Verify(reference, listing.FixedSort(listing.SortConfig{}))
}

// ExpectCorrectListing fails t unless the cloud table shows reference, unsorted, sliced by the paginator.
func (w *WizardPage) ExpectCorrectListing(t require.TestingT, reference []listing.Record) {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	w.Verifier().Expect(t, reference, listing.FixedSort(listing.SortConfig{}))
}

// CreatePage walks the wizard from scratch: next, pick application option, title, next.
func (w *WizardPage) CreatePage(application material.Needle, title string) error {
	if err := w.Stepper.Next(); err != nil {
		return err
	}
	if err := w.Application.PickOption(application); err != nil {
		return err
	}
	if err := w.PageTitle.Fill(title); err != nil {
		return fmt.Errorf("fill page title: %w", err)
	}
	return w.Stepper.Next()
}
