package ui

import (
	"fmt"
	"regexp"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/leggera/lg2e2e/pkg/ui/expect"
)

// DefaultSnackbarTimeout is how long the snackbar is waited for when no timeout is given.
const DefaultSnackbarTimeout = 5 * time.Second

// Snackbar wraps lg2-app-snack. The dismiss button label is the emoji of the message.
type Snackbar struct {
	Self          playwright.Locator
	Emoji         playwright.Locator
	DismissButton playwright.Locator
}

// NewSnackbar creates a Snackbar rooted at lg2-app-snack.
func NewSnackbar(self playwright.Locator) *Snackbar {
	return &Snackbar{
		Self:          self,
		Emoji:         self.Locator(".mdc-button__label"),
		DismissButton: self.Locator("button"),
	}
}

func (s *Snackbar) waitFor(state *playwright.WaitForSelectorState, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = DefaultSnackbarTimeout
	}
	return s.Self.WaitFor(playwright.LocatorWaitForOptions{
		State:   state,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
}

// WaitVisible waits for the snackbar to show up, zero timeout means the default.
func (s *Snackbar) WaitVisible(timeout time.Duration) error {
	if err := s.waitFor(playwright.WaitForSelectorStateVisible, timeout); err != nil {
		return fmt.Errorf("wait for snackbar: %w", err)
	}
	return nil
}

// WaitHidden waits for the snackbar to go away, zero timeout means the default.
func (s *Snackbar) WaitHidden(timeout time.Duration) error {
	if err := s.waitFor(playwright.WaitForSelectorStateHidden, timeout); err != nil {
		return fmt.Errorf("wait for snackbar to hide: %w", err)
	}
	return nil
}

// Expect waits for the snackbar and checks its message and emoji. message is a regular expression,
// plain messages are matched as substrings.
func (s *Snackbar) Expect(message, emoji string, timeout time.Duration) error {
	re, err := regexp.Compile(message)
	if err != nil {
		return fmt.Errorf("compile snackbar message: %w", err)
	}
	if err := s.WaitVisible(timeout); err != nil {
		return err
	}
	if err := expect.Locator(s.Self).ToHaveText(re); err != nil {
		return fmt.Errorf("expect snackbar message %q: %w", message, err)
	}
	if err := expect.Locator(s.Emoji).ToHaveText(emoji); err != nil {
		return fmt.Errorf("expect snackbar emoji %s: %w", emoji, err)
	}
	return nil
}

// Dismiss waits for the snackbar, clicks its button and waits for it to hide.
func (s *Snackbar) Dismiss() error {
	if err := s.WaitVisible(0); err != nil {
		return err
	}
	if err := s.DismissButton.Click(); err != nil {
		return fmt.Errorf("dismiss snackbar: %w", err)
	}
	return s.WaitHidden(0)
}
