package material

import (
	"fmt"

	"github.com/playwright-community/playwright-go"

	"github.com/leggera/lg2e2e/pkg/ui/expect"
)

// TabGroup wraps a mat-tab-group, or anything exposing aria tabs.
type TabGroup struct {
	Self       playwright.Locator
	CurrentTab playwright.Locator
}

// NewTabGroup creates a TabGroup rooted at self.
func NewTabGroup(self playwright.Locator) *TabGroup {
	return &TabGroup{
		Self:       self,
		CurrentTab: self.GetByRole("tab", playwright.LocatorGetByRoleOptions{Selected: playwright.Bool(true)}),
	}
}

// Tab finds a tab.
func (g *TabGroup) Tab(n Needle) playwright.Locator {
	return n.pick(g.Self, "tab")
}

// ClickTab clicks a tab.
func (g *TabGroup) ClickTab(n Needle) error {
	if err := g.Tab(n).Click(); err != nil {
		return fmt.Errorf("click tab %s: %w", n, err)
	}
	return nil
}

// ExpectTabCount checks the number of tabs.
func (g *TabGroup) ExpectTabCount(count int) error {
	return expect.Locator(g.Self.GetByRole("tab")).ToHaveCount(count)
}

// ExpectOnTab checks the current tab is the one at order.
func (g *TabGroup) ExpectOnTab(order int) error {
	id, err := g.Tab(ByOrder(order)).GetAttribute("id")
	if err != nil {
		return fmt.Errorf("read tab %d id: %w", order, err)
	}
	return expect.Locator(g.CurrentTab).ToHaveAttribute("id", id)
}

// ExpectDisabledTab checks the tab at order is disabled.
func (g *TabGroup) ExpectDisabledTab(order int) error {
	return expect.Locator(g.Tab(ByOrder(order))).ToBeDisabled()
}

// Content returns the panel controlled by the current tab.
func (g *TabGroup) Content() (playwright.Locator, error) {
	id, err := g.CurrentTab.GetAttribute("aria-controls")
	if err != nil {
		return nil, fmt.Errorf("read aria-controls: %w", err)
	}
	return g.Self.Locator("#" + id), nil
}

// Stepper wraps a mat-stepper; its steps are exposed as tabs.
type Stepper struct {
	*TabGroup
}

// NewStepper creates a Stepper rooted at a mat-stepper element.
func NewStepper(self playwright.Locator) *Stepper {
	return &Stepper{TabGroup: NewTabGroup(self)}
}

// NextButton returns the next button of the current step.
func (s *Stepper) NextButton() (playwright.Locator, error) {
	content, err := s.Content()
	if err != nil {
		return nil, err
	}
	return content.Locator(".mat-stepper-next"), nil
}

// PrevButton returns the previous button of the current step.
func (s *Stepper) PrevButton() (playwright.Locator, error) {
	content, err := s.Content()
	if err != nil {
		return nil, err
	}
	return content.Locator(".mat-stepper-previous"), nil
}

// Next clicks the next button of the current step.
func (s *Stepper) Next() error {
	btn, err := s.NextButton()
	if err != nil {
		return err
	}
	if err := btn.Click(); err != nil {
		return fmt.Errorf("click next step: %w", err)
	}
	return nil
}

// Previous clicks the previous button of the current step.
func (s *Stepper) Previous() error {
	btn, err := s.PrevButton()
	if err != nil {
		return err
	}
	if err := btn.Click(); err != nil {
		return fmt.Errorf("click previous step: %w", err)
	}
	return nil
}
