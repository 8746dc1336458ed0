package ui

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/leggera/lg2e2e/pkg/ui/expect"
)

// MonacoTimeout is how long the live preview may take to load the monaco editor.
const MonacoTimeout = 15 * time.Second

// EditorPage wraps lg2-leggera-editor, a monaco editor next to the live preview of the page.
type EditorPage struct {
	Page playwright.Page
	Self playwright.Locator
	Menu *Menu

	Input   playwright.Locator // monaco's hidden textarea receiving keystrokes
	Lines   playwright.Locator // rendered editor lines
	spinner playwright.Locator
}

// NewEditorPage creates an EditorPage for page.
func NewEditorPage(page playwright.Page) *EditorPage {
	self := page.Locator("lg2-leggera-editor")
	return &EditorPage{
		Page:    page,
		Self:    self,
		Menu:    NewMenu(page.Locator("lg2-menu")),
		Input:   self.Locator(".monaco-editor textarea.inputarea"),
		Lines:   self.Locator(".monaco-editor .view-lines"),
		spinner: self.Locator("#live-preview-container mat-spinner"),
	}
}

// Navigate opens the editor through the menu.
func (e *EditorPage) Navigate() error {
	return navigate(e.Page, e.Menu, MenuEditor)
}

// WaitForMonaco waits for the editor to show up and its live preview spinner to go away,
// i.e. monaco finished loading.
func (e *EditorPage) WaitForMonaco() error {
	timeout := playwright.Float(float64(MonacoTimeout.Milliseconds()))
	err := e.Self.WaitFor(playwright.LocatorWaitForOptions{State: playwright.WaitForSelectorStateVisible, Timeout: timeout})
	if err != nil {
		return fmt.Errorf("wait for editor: %w", err)
	}
	err = e.spinner.WaitFor(playwright.LocatorWaitForOptions{State: playwright.WaitForSelectorStateHidden, Timeout: timeout})
	if err != nil {
		return fmt.Errorf("wait for monaco: %w", err)
	}
	return nil
}

// ReplaceText focuses the editor, clears it and types text. Newlines are typed as Enter.
func (e *EditorPage) ReplaceText(text string) error {
	if err := e.Input.Focus(); err != nil {
		return fmt.Errorf("focus editor: %w", err)
	}
	kb := e.Page.Keyboard()
	for _, key := range []string{"ControlOrMeta+A", "Delete"} {
		if err := kb.Press(key); err != nil {
			return fmt.Errorf("press %s: %w", key, err)
		}
	}
	if err := kb.Type(text); err != nil {
		return fmt.Errorf("type into editor: %w", err)
	}
	return nil
}

// ExpectText checks the editor shows text. Monaco renders spaces as nbsp, which the
// assertion normalizes.
func (e *EditorPage) ExpectText(text string) error {
	if err := expect.Locator(e.Lines).ToContainText(text); err != nil {
		return fmt.Errorf("expect editor text %q: %w", text, err)
	}
	return nil
}
