package ui

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// MenuEntry names an entry of the side menu.
type MenuEntry string

// Menu entries. Dashboard, Constructor, Cloud and Toolbox are top level; the rest are nested.
const (
	MenuDashboard    MenuEntry = "dashboard"
	MenuConstructor  MenuEntry = "constructor"
	MenuWizard       MenuEntry = "wizard"
	MenuEditor       MenuEntry = "editor"
	MenuExport       MenuEntry = "export"
	MenuCloud        MenuEntry = "cloud"
	MenuToolbox      MenuEntry = "toolbox"
	MenuApplications MenuEntry = "applications"
	MenuCollections  MenuEntry = "collections"
	MenuElements     MenuEntry = "elements"
)

// menuParents maps nested entries to the top level entry that expands them.
var menuParents = map[MenuEntry]MenuEntry{
	MenuWizard:       MenuConstructor,
	MenuEditor:       MenuConstructor,
	MenuExport:       MenuConstructor,
	MenuApplications: MenuToolbox,
	MenuCollections:  MenuToolbox,
	MenuElements:     MenuToolbox,
}

// Parent returns the top level entry e is nested under, or e itself.
func (e MenuEntry) Parent() MenuEntry {
	if p, ok := menuParents[e]; ok {
		return p
	}
	return e
}

// Menu wraps lg2-menu, which renders either a collapsed or an expanded wrapper.
type Menu struct {
	Self            playwright.Locator
	ClosedWrapper   playwright.Locator
	OpenWrapper     playwright.Locator
	OpenMenuButton  playwright.Locator
	CloseMenuButton playwright.Locator
}

// NewMenu creates a Menu rooted at lg2-menu.
func NewMenu(self playwright.Locator) *Menu {
	closed := self.Locator("#closed-menu-wrapper")
	open := self.Locator("#open-menu-wrapper")
	return &Menu{
		Self:            self,
		ClosedWrapper:   closed,
		OpenWrapper:     open,
		OpenMenuButton:  closed.Locator(".menu-toggler"),
		CloseMenuButton: open.Locator(".menu-toggler"),
	}
}

// Entry returns the expanded menu locator of e.
func (m *Menu) Entry(e MenuEntry) playwright.Locator {
	return m.OpenWrapper.GetByTestId(string(e) + "Entry")
}

// ClosedEntry returns the collapsed menu locator of e, falling back to its parent for nested entries.
func (m *Menu) ClosedEntry(e MenuEntry) playwright.Locator {
	return m.ClosedWrapper.GetByTestId(string(e.Parent()) + "ClosedEntry")
}

func (m *Menu) isClosed() (bool, error) {
	closed, err := m.ClosedWrapper.IsVisible()
	if err != nil {
		return false, fmt.Errorf("check menu state: %w", err)
	}
	return closed, nil
}

// Navigate opens the menu if collapsed, expands the parent category if needed and clicks e.
func (m *Menu) Navigate(e MenuEntry) error {
	closed, err := m.isClosed()
	if err != nil {
		return err
	}
	if closed {
		if err := m.OpenMenuButton.Click(); err != nil {
			return fmt.Errorf("open menu: %w", err)
		}
	}

	hidden, err := m.Entry(e).IsHidden()
	if err != nil {
		return fmt.Errorf("check %s entry: %w", e, err)
	}
	if hidden && e.Parent() != e {
		if err := m.Entry(e.Parent()).Click(); err != nil {
			return fmt.Errorf("expand %s: %w", e.Parent(), err)
		}
	}

	if err := m.Entry(e).Click(); err != nil {
		return fmt.Errorf("click %s entry: %w", e, err)
	}
	return nil
}

// Click clicks e once in whatever state the menu is. On a collapsed menu a nested entry
// forwards the click to its parent category, which opens the menu with that category expanded.
func (m *Menu) Click(e MenuEntry) error {
	closed, err := m.isClosed()
	if err != nil {
		return err
	}
	target := m.Entry(e)
	if closed {
		target = m.ClosedEntry(e)
	}
	if err := target.Click(); err != nil {
		return fmt.Errorf("click %s entry: %w", e, err)
	}
	return nil
}
