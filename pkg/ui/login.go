package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/leggera/lg2e2e/pkg/ui/material"
)

// Credentials of a registered user.
type Credentials struct {
	Username string
	Password string
}

// AnonUser is the identity generated for an anonymous session.
type AnonUser struct {
	ID    string
	Token string
}

// LoginPage wraps lg2-landing-page with its login card and anonymous login card.
type LoginPage struct {
	Page playwright.Page
	Self playwright.Locator

	StartupLogo playwright.Locator
	LoginLogo   playwright.Locator

	LoginSection         playwright.Locator
	Username             *material.FormField
	Password             *material.FormField
	ShowPasswordButton   playwright.Locator
	CookieCheckbox       playwright.Locator
	LoginButton          playwright.Locator
	GoToAnonButton       playwright.Locator
	AnonSection          playwright.Locator
	AnonPicture          playwright.Locator
	AnonID               playwright.Locator
	AnonToken            playwright.Locator
	CopyTokenButton      playwright.Locator
	ContinueAsAnonButton playwright.Locator
	AnonTokenInput       playwright.Locator
	LoginWithTokenButton playwright.Locator
	GoBackButton         playwright.Locator
	NewAnonButton        playwright.Locator

	Snackbar   *Snackbar
	Header     *Header
	Background *BackgroundSVG

	appRoot string
}

// NewLoginPage creates a LoginPage. baseURL is the deployment url and build the build number,
// the app lives under <baseURL>/<build>/leggera2/.
func NewLoginPage(page playwright.Page, baseURL, build string) *LoginPage {
	self := page.Locator("lg2-landing-page")
	login := self.Locator("lg2-login-card")
	anon := self.Locator("lg2-anon-login")
	return &LoginPage{
		Page:                 page,
		Self:                 self,
		StartupLogo:          self.Locator("lg2-mi-infinity#startup-logo"),
		LoginLogo:            self.Locator("lg2-mi-infinity#login-logo"),
		LoginSection:         login,
		Username:             material.NewFormField(page, login.Locator(`mat-form-field:has(input[formcontrolname="username"])`)),
		Password:             material.NewFormField(page, login.Locator(`mat-form-field:has(input[formcontrolname="password"])`)),
		ShowPasswordButton:   login.Locator("#show-password-button"),
		CookieCheckbox:       login.Locator("#keep-me-logged > mat-checkbox input"),
		LoginButton:          login.Locator("#login-button"),
		GoToAnonButton:       login.Locator("#anon-section-button"),
		AnonSection:          anon,
		AnonPicture:          anon.Locator("#picture-frame"),
		AnonID:               anon.Locator("p span:last-of-type"),
		AnonToken:            anon.Locator("#token > span:last-of-type"),
		CopyTokenButton:      anon.Locator("#token button"),
		ContinueAsAnonButton: anon.Locator("#main-action"),
		AnonTokenInput:       anon.Locator("mat-form-field input"),
		LoginWithTokenButton: anon.Locator("mat-form-field .mat-mdc-form-field-icon-suffix"),
		GoBackButton:         anon.Locator("#actions > button:first-of-type"),
		NewAnonButton:        anon.Locator("#actions > button:last-of-type"),
		Snackbar:             NewSnackbar(page.Locator("lg2-app-snack")),
		Header:               NewHeader(page),
		Background:           NewBackgroundSVG(self),
		appRoot:              AppRoot(baseURL, build),
	}
}

// AppRoot returns the url of the app root for a deployment and build number, build defaults to 0.
func AppRoot(baseURL, build string) string {
	if build == "" {
		build = "0"
	}
	return fmt.Sprintf("%s/%s/leggera2/", strings.TrimRight(baseURL, "/"), build)
}

// GoToAppRoot opens the app root.
func (l *LoginPage) GoToAppRoot() error {
	if _, err := l.Page.Goto(l.appRoot); err != nil {
		return fmt.Errorf("open %s: %w", l.appRoot, err)
	}
	return nil
}

// AppStart opens the app root and waits for the startup animation to finish.
func (l *LoginPage) AppStart() error {
	if err := l.GoToAppRoot(); err != nil {
		return err
	}
	err := l.LoginLogo.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateHidden,
		Timeout: playwright.Float(float64((5 * time.Second).Milliseconds())),
	})
	if err != nil {
		return fmt.Errorf("wait for startup animation: %w", err)
	}
	return nil
}

// Login fills the credentials, ticks keep-me-logged when wantCookie and submits.
func (l *LoginPage) Login(user Credentials, wantCookie bool) error {
	if err := l.Username.Fill(user.Username); err != nil {
		return fmt.Errorf("fill username: %w", err)
	}
	if err := l.Password.Fill(user.Password); err != nil {
		return fmt.Errorf("fill password: %w", err)
	}
	if wantCookie {
		if err := l.CookieCheckbox.Click(); err != nil {
			return fmt.Errorf("tick cookie checkbox: %w", err)
		}
	}
	if err := l.LoginButton.Click(); err != nil {
		return fmt.Errorf("click login: %w", err)
	}
	return nil
}

// AnonLogin logs in with an anonymous token.
func (l *LoginPage) AnonLogin(token string) error {
	if err := l.AnonTokenInput.Fill(token); err != nil {
		return fmt.Errorf("fill token: %w", err)
	}
	if err := l.LoginWithTokenButton.Click(); err != nil {
		return fmt.Errorf("click token login: %w", err)
	}
	return nil
}

// AnonInfo reads the generated anonymous identity.
func (l *LoginPage) AnonInfo() (AnonUser, error) {
	id, err := l.AnonID.TextContent()
	if err != nil {
		return AnonUser{}, fmt.Errorf("read anon id: %w", err)
	}
	token, err := l.AnonToken.TextContent()
	if err != nil {
		return AnonUser{}, fmt.Errorf("read anon token: %w", err)
	}
	return AnonUser{ID: id, Token: token}, nil
}

// BackgroundSVG wraps the animated svg background of the landing page.
type BackgroundSVG struct {
	Self      playwright.Locator
	OutTop    playwright.Locator
	InTop     playwright.Locator
	OutBottom playwright.Locator
	InBottom  playwright.Locator
}

// NewBackgroundSVG creates a BackgroundSVG under scope.
func NewBackgroundSVG(scope playwright.Locator) *BackgroundSVG {
	bg := scope.Locator("#svg-bg")
	return &BackgroundSVG{
		Self:      bg,
		OutTop:    bg.Locator("> path.out-top"),
		InTop:     bg.Locator("> path.in-top"),
		OutBottom: bg.Locator("> path.out-bottom"),
		InBottom:  bg.Locator("> path.in-bottom"),
	}
}

// Shape returns the shape of the given palette key: out-top, in-top, out-bottom or in-bottom.
func (b *BackgroundSVG) Shape(key string) (playwright.Locator, error) {
	switch key {
	case "out-top":
		return b.OutTop, nil
	case "in-top":
		return b.InTop, nil
	case "out-bottom":
		return b.OutBottom, nil
	case "in-bottom":
		return b.InBottom, nil
	}
	return nil, fmt.Errorf("unknown background shape %q", key)
}
