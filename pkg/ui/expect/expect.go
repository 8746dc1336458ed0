// Package expect wraps playwright-go web-first assertions with the checks Leggera pages need
// repeatedly, such as class tokens and computed colours.
package expect

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/playwright-community/playwright-go"
)

// DefaultTimeoutMs is how long web-first assertions keep retrying.
const DefaultTimeoutMs = 5000

var assertions = playwright.NewPlaywrightAssertions(DefaultTimeoutMs)

// Locator returns web-first assertions for loc.
func Locator(loc playwright.Locator) playwright.LocatorAssertions {
	return assertions.Locator(loc)
}

// Page returns web-first assertions for page.
func Page(page playwright.Page) playwright.PageAssertions {
	return assertions.Page(page)
}

// ClassTokenPattern matches class as a whole token of a class attribute,
// so "horse" matches "correct horse battery" but not "horses".
func ClassTokenPattern(class string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(class) + `\b`)
}

// HasClass waits until loc carries class among its class tokens.
func HasClass(loc playwright.Locator, class string) error {
	if err := Locator(loc).ToHaveClass(ClassTokenPattern(class)); err != nil {
		return fmt.Errorf("expect class %q: %w", class, err)
	}
	return nil
}

// NoClass waits until class is not among loc's class tokens.
func NoClass(loc playwright.Locator, class string) error {
	if err := Locator(loc).Not().ToHaveClass(ClassTokenPattern(class)); err != nil {
		return fmt.Errorf("expect no class %q: %w", class, err)
	}
	return nil
}

// ContainsText waits until loc's text matches text, which is a regular expression.
func ContainsText(loc playwright.Locator, text string) error {
	re, err := regexp.Compile(text)
	if err != nil {
		return fmt.Errorf("compile text pattern: %w", err)
	}
	return ContainsPattern(loc, re)
}

// ContainsPattern waits until loc's text matches re.
func ContainsPattern(loc playwright.Locator, re *regexp.Regexp) error {
	if err := Locator(loc).ToHaveText(re); err != nil {
		return fmt.Errorf("expect text %q: %w", re, err)
	}
	return nil
}

// FillColor waits until the computed fill of loc equals color, e.g. "rgb(122, 48, 108)".
func FillColor(loc playwright.Locator, color string) error {
	if err := Locator(loc).ToHaveCSS("fill", color); err != nil {
		return fmt.Errorf("expect fill %s: %w", color, err)
	}
	return nil
}

// BackgroundColor waits until the computed background-color of loc equals color.
func BackgroundColor(loc playwright.Locator, color string) error {
	if err := Locator(loc).ToHaveCSS("background-color", color); err != nil {
		return fmt.Errorf("expect background %s: %w", color, err)
	}
	return nil
}

// ErrNotLoaded is returned when an image did not load.
var ErrNotLoaded = errors.New("image not loaded")

const backgroundImageScript = `async el => {
	const match = window.getComputedStyle(el).backgroundImage.match(/url\(["']?([^"')]+)["']?\)/);
	if (!match) return false;
	try {
		const response = await fetch(match[1], { method: 'HEAD' });
		return response.ok;
	} catch {
		return false;
	}
}`

// BackgroundImageLoaded checks that loc has a background image and that its url responds.
func BackgroundImageLoaded(loc playwright.Locator) error {
	res, err := loc.Evaluate(backgroundImageScript, nil)
	if err != nil {
		return fmt.Errorf("evaluate background image: %w", err)
	}
	if ok, _ := res.(bool); !ok {
		return fmt.Errorf("background %w", ErrNotLoaded)
	}
	return nil
}

