package ui

import (
	"fmt"
	"regexp"

	"github.com/playwright-community/playwright-go"
)

// ElementsPage wraps lg2-elements-list.
type ElementsPage struct {
	Page     playwright.Page
	Self     playwright.Locator
	Menu     *Menu
	Mainform *MainformList
}

// NewElementsPage creates an ElementsPage for page.
func NewElementsPage(page playwright.Page) *ElementsPage {
	self := page.Locator("lg2-elements-list")
	return &ElementsPage{
		Page:     page,
		Self:     self,
		Menu:     NewMenu(page.Locator("lg2-menu")),
		Mainform: NewMainformList(page, self.Locator("lg2-mainform-list")),
	}
}

// Navigate opens the elements page through the menu.
func (e *ElementsPage) Navigate() error {
	return navigate(e.Page, e.Menu, MenuElements)
}

// ListingPage is a generic mainform page, collections, applications or cloud.
type ListingPage struct {
	Page     playwright.Page
	Entry    MenuEntry
	Menu     *Menu
	Mainform *MainformList
}

// NewListingPage creates a ListingPage reached through entry. The mainform is the only one on the page.
func NewListingPage(page playwright.Page, entry MenuEntry) *ListingPage {
	return &ListingPage{
		Page:     page,
		Entry:    entry,
		Menu:     NewMenu(page.Locator("lg2-menu")),
		Mainform: NewMainformList(page, page.Locator("lg2-mainform-list")),
	}
}

// Navigate opens the page through the menu.
func (l *ListingPage) Navigate() error {
	return navigate(l.Page, l.Menu, l.Entry)
}

// DashboardPage wraps lg2-dashboard.
type DashboardPage struct {
	Page playwright.Page
	Self playwright.Locator

	UserPicture      playwright.Locator
	Actions          playwright.Locator
	Greetings        playwright.Locator
	Status           playwright.Locator
	GoToEditorButton playwright.Locator
	ExportButton     playwright.Locator
	CreateNewButton  playwright.Locator
	Snapshots        playwright.Locator
	TicksSnapshot    playwright.Locator
	ElementsSnapshot playwright.Locator
	PagesSnapshot    playwright.Locator

	Header *Header
	Menu   *Menu
}

// NewDashboardPage creates a DashboardPage for page.
func NewDashboardPage(page playwright.Page) *DashboardPage {
	self := page.Locator("lg2-dashboard")
	actions := self.Locator("#dashboard-actions")
	snapshots := self.Locator("#snapshots")
	return &DashboardPage{
		Page:             page,
		Self:             self,
		UserPicture:      self.Locator("#user-picture"),
		Actions:          actions,
		Greetings:        actions.Locator(">h1"),
		Status:           actions.Locator(">p"),
		GoToEditorButton: actions.GetByTestId("goToEditorButton"),
		ExportButton:     actions.GetByTestId("exportPageButton"),
		CreateNewButton:  actions.GetByTestId("createNewPage"),
		Snapshots:        snapshots,
		TicksSnapshot:    snapshots.GetByTestId("DASHBOARD.SNAPSHOT.TICKS"),
		ElementsSnapshot: snapshots.GetByTestId("DASHBOARD.SNAPSHOT.ELEMENTS"),
		PagesSnapshot:    snapshots.GetByTestId("DASHBOARD.SNAPSHOT.PAGES"),
		Header:           NewHeader(page),
		Menu:             NewMenu(page.Locator("lg2-menu")),
	}
}

// Navigate opens the dashboard through the menu.
func (d *DashboardPage) Navigate() error {
	return navigate(d.Page, d.Menu, MenuDashboard)
}

// entryRoutes maps menu entries to the route segment they open.
var entryRoutes = map[MenuEntry]string{
	MenuDashboard:    "dashboard",
	MenuWizard:       "wizard",
	MenuEditor:       "editor",
	MenuExport:       "export",
	MenuCloud:        "pages",
	MenuApplications: "applications",
	MenuCollections:  "collections",
	MenuElements:     "elements",
}

// Route returns the route segment the entry opens, empty for group entries.
func (e MenuEntry) Route() string {
	return entryRoutes[e]
}

func navigate(page playwright.Page, menu *Menu, entry MenuEntry) error {
	if err := menu.Navigate(entry); err != nil {
		return err
	}
	route := entry.Route()
	if route == "" {
		return nil
	}
	re := regexp.MustCompile("/" + regexp.QuoteMeta(route))
	if err := page.WaitForURL(re); err != nil {
		return fmt.Errorf("wait for %s route: %w", route, err)
	}
	return nil
}
