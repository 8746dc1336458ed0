package ui

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// Language is a language code the app stores under the LEGGERA_LANGUAGE local storage key.
type Language string

// Languages offered by the language picker.
const (
	Portuguese Language = "pt"
	English    Language = "en"
	Spanish    Language = "es"
)

// Languages lists every supported language in picker order.
var Languages = []Language{Portuguese, English, Spanish}

// Theme is a theme name the app stores under the LEGGERA_THEME local storage key.
type Theme string

// Themes offered by the theme picker.
const (
	ThemeLuigi Theme = "luigi"
	ThemeSonic Theme = "sonic"
)

// Local storage keys written by the app.
const (
	StorageLanguage    = "LEGGERA_LANGUAGE"
	StorageTheme       = "LEGGERA_THEME"
	StorageCookie      = "LEGGERA_COOKIE"
	StorageBreadcrumbs = "LEGGERA_BREADCRUMBS"
	StorageCurrentPage = "LEGGERA_CURRENT_PAGE_" // suffixed with the username
)

// Header wraps lg2-header with the anon and user menus. The picker overlays render
// outside the header, so they are located from the page.
type Header struct {
	Self playwright.Locator

	AnonMenu           playwright.Locator
	RenewAnonLicense   playwright.Locator
	TrialClock         playwright.Locator
	UserMenu           playwright.Locator
	LanguagePicker     playwright.Locator
	ThemePicker        playwright.Locator
	LogoutButton       playwright.Locator
	ThemePickerMenu    playwright.Locator
	LanguagePickerMenu playwright.Locator
}

// NewHeader creates a Header for page.
func NewHeader(page playwright.Page) *Header {
	self := page.Locator("lg2-header")
	anon := self.Locator("lg2-anon-menu")
	user := self.Locator("lg2-user-menu")
	return &Header{
		Self:               self,
		AnonMenu:           anon,
		RenewAnonLicense:   anon.GetByTestId("renewAnonLicenseButton"),
		TrialClock:         anon.GetByTestId("trialClock"),
		UserMenu:           user,
		LanguagePicker:     user.GetByTestId("languagePicker"),
		ThemePicker:        user.GetByTestId("themePicker"),
		LogoutButton:       user.GetByTestId("logoutButton"),
		ThemePickerMenu:    page.Locator(".theme-menu-wrapper"),
		LanguagePickerMenu: page.Locator(".lang-menu-wrapper"),
	}
}

// languageOptionIDs maps languages to the option ids of the picker, english is flagged as uk.
var languageOptionIDs = map[Language]string{
	Portuguese: "#pt-lang",
	English:    "#uk-lang",
	Spanish:    "#es-lang",
}

// LanguageOption returns the picker option of lang.
func (h *Header) LanguageOption(lang Language) (playwright.Locator, error) {
	id, ok := languageOptionIDs[lang]
	if !ok {
		return nil, fmt.Errorf("unknown language %q", lang)
	}
	return h.LanguagePickerMenu.Locator(id), nil
}

// ThemeOption returns the picker option of theme.
func (h *Header) ThemeOption(theme Theme) playwright.Locator {
	return h.ThemePickerMenu.GetByTestId(string(theme) + "Theme")
}

// ChangeLanguage opens the language picker if needed and picks lang.
func (h *Header) ChangeLanguage(lang Language) error {
	option, err := h.LanguageOption(lang)
	if err != nil {
		return err
	}
	if err := openPicker(h.LanguagePickerMenu, h.LanguagePicker); err != nil {
		return fmt.Errorf("open language picker: %w", err)
	}
	if err := option.Click(); err != nil {
		return fmt.Errorf("pick language %s: %w", lang, err)
	}
	return nil
}

// ChangeTheme opens the theme picker if needed and picks theme.
func (h *Header) ChangeTheme(theme Theme) error {
	if err := openPicker(h.ThemePickerMenu, h.ThemePicker); err != nil {
		return fmt.Errorf("open theme picker: %w", err)
	}
	if err := h.ThemeOption(theme).Click(); err != nil {
		return fmt.Errorf("pick theme %s: %w", theme, err)
	}
	return nil
}

// WaitPickersClosed waits for both picker overlays to close.
func (h *Header) WaitPickersClosed() error {
	for _, menu := range []playwright.Locator{h.LanguagePickerMenu, h.ThemePickerMenu} {
		err := menu.WaitFor(playwright.LocatorWaitForOptions{State: playwright.WaitForSelectorStateHidden})
		if err != nil {
			return fmt.Errorf("wait for picker to close: %w", err)
		}
	}
	return nil
}

func openPicker(menu, trigger playwright.Locator) error {
	hidden, err := menu.IsHidden()
	if err != nil {
		return err
	}
	if !hidden {
		return nil
	}
	return trigger.Click()
}
