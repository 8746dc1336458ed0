// Package material provides page objects for the Angular Material widgets Leggera is built from:
// tables, paginators, form fields, autocompletes and steppers.
package material

import (
	"fmt"
	"regexp"

	"github.com/playwright-community/playwright-go"
)

// Needle finds one element among siblings, either by accessible name or by 1-based position.
type Needle struct {
	text  string
	order int
}

// ByText matches the first element whose accessible name contains text.
func ByText(text string) Needle {
	return Needle{text: text}
}

// ByOrder matches the n-th element, counting from 1.
func ByOrder(n int) Needle {
	return Needle{order: n}
}

func (n Needle) String() string {
	if n.text != "" {
		return fmt.Sprintf("%q", n.text)
	}
	return fmt.Sprintf("#%d", n.order)
}

// namePattern is the accessible name pattern for a text needle.
func (n Needle) namePattern() *regexp.Regexp {
	return regexp.MustCompile(regexp.QuoteMeta(n.text))
}

// pick resolves the needle within scope for the given aria role.
func (n Needle) pick(scope playwright.Locator, role playwright.AriaRole) playwright.Locator {
	if n.text != "" {
		return scope.GetByRole(role, playwright.LocatorGetByRoleOptions{Name: n.namePattern()}).First()
	}
	return scope.GetByRole(role).Nth(n.order - 1)
}
