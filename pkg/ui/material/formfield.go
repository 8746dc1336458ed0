package material

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/playwright-community/playwright-go"

	"github.com/leggera/lg2e2e/pkg/ui/expect"
)

// FormField wraps a mat-form-field holding a single input.
type FormField struct {
	Self         playwright.Locator
	Title        playwright.Locator
	Input        playwright.Locator
	ActionButton playwright.Locator

	page playwright.Page // overlays (tooltips, listboxes) render outside the field
}

// NewFormField creates a FormField rooted at a mat-form-field element.
func NewFormField(page playwright.Page, self playwright.Locator) *FormField {
	return &FormField{
		Self:         self,
		Title:        self.Locator("mat-label"),
		Input:        self.Locator("input"),
		ActionButton: self.Locator("mat-icon"),
		page:         page,
	}
}

// Fill clears the input and types value.
func (f *FormField) Fill(value string) error {
	if err := f.Input.Fill(""); err != nil {
		return fmt.Errorf("clear input: %w", err)
	}
	if err := f.Input.Fill(value); err != nil {
		return fmt.Errorf("fill input: %w", err)
	}
	return nil
}

// ExpectEmpty checks the input holds no value.
func (f *FormField) ExpectEmpty() error {
	return expect.Locator(f.Input).ToBeEmpty()
}

// ExpectValue checks the input value equals v.
func (f *FormField) ExpectValue(v string) error {
	return expect.Locator(f.Input).ToHaveValue(v)
}

// ExpectDisabled checks the input is disabled.
func (f *FormField) ExpectDisabled() error {
	return expect.Locator(f.Input).ToBeDisabled()
}

// ExpectEnabled checks the input is enabled.
func (f *FormField) ExpectEnabled() error {
	return expect.Locator(f.Input).ToBeEnabled()
}

// ExpectTextField checks the input is a plain text input.
func (f *FormField) ExpectTextField() error {
	return expect.Locator(f.Input).ToHaveAttribute("type", "text")
}

// ExpectPasswordField checks the input masks its value.
func (f *FormField) ExpectPasswordField() error {
	return expect.Locator(f.Input).ToHaveAttribute("type", "password")
}

func (f *FormField) requiredMarker() playwright.Locator {
	return f.Self.Locator(".mat-mdc-form-field-required-marker")
}

// ExpectRequired checks the required marker is shown.
func (f *FormField) ExpectRequired() error {
	return expect.Locator(f.requiredMarker()).ToBeVisible()
}

// ExpectActionButton checks the suffix icon is visible.
func (f *FormField) ExpectActionButton() error {
	return expect.Locator(f.ActionButton).ToBeVisible()
}

// ExpectErrorState checks the field is marked invalid.
func (f *FormField) ExpectErrorState() error {
	return expect.HasClass(f.Self, "mat-form-field-invalid")
}

// ExpectNoErrorState checks the field is not marked invalid.
func (f *FormField) ExpectNoErrorState() error {
	return expect.NoClass(f.Self, "mat-form-field-invalid")
}

// ErrNoOptions is returned when an autocomplete offers nothing to pick.
var ErrNoOptions = errors.New("autocomplete has no options")

// Autocomplete is a form field backed by a mat-autocomplete listbox.
type Autocomplete struct {
	*FormField
}

// NewAutocomplete creates an Autocomplete rooted at a mat-form-field element.
func NewAutocomplete(page playwright.Page, self playwright.Locator) *Autocomplete {
	return &Autocomplete{FormField: NewFormField(page, self)}
}

func (a *Autocomplete) listbox() playwright.Locator {
	return a.page.GetByRole("listbox")
}

// Open clicks the input when the options overlay is not shown yet.
func (a *Autocomplete) Open() error {
	hidden, err := a.listbox().IsHidden()
	if err != nil {
		return fmt.Errorf("check listbox: %w", err)
	}
	if !hidden {
		return nil
	}
	if err := a.Input.Click(); err != nil {
		return fmt.Errorf("open autocomplete: %w", err)
	}
	return nil
}

// Option opens the overlay and finds an option.
func (a *Autocomplete) Option(n Needle) (playwright.Locator, error) {
	if err := a.Open(); err != nil {
		return nil, err
	}
	return n.pick(a.listbox(), "option"), nil
}

// PickOption opens the overlay and clicks an option.
func (a *Autocomplete) PickOption(n Needle) error {
	opt, err := a.Option(n)
	if err != nil {
		return err
	}
	if err := opt.Click(); err != nil {
		return fmt.Errorf("pick option %s: %w", n, err)
	}
	return nil
}

// RandomPick picks one of the offered options at random.
func (a *Autocomplete) RandomPick() error {
	if err := a.Open(); err != nil {
		return err
	}
	count, err := a.listbox().GetByRole("option").Count()
	if err != nil {
		return fmt.Errorf("count options: %w", err)
	}
	if count == 0 {
		return ErrNoOptions
	}
	return a.PickOption(ByOrder(rand.IntN(count) + 1)) //nolint:gosec // not security sensitive
}

