//go:build e2e

package e2e

import (
	"context"
	"strings"
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leggera/lg2e2e/pkg/ui"
	"github.com/leggera/lg2e2e/pkg/ui/expect"
)

func TestLogin_PageTitle(t *testing.T) {
	s, _ := fastStart(t)
	require.NoError(t, expect.Page(s.Page).ToHaveTitle("Leggera 2"))
}

func TestLogin_FormRules(t *testing.T) {
	s, _ := fastStart(t)
	lp := s.Login

	t.Run("default state", func(t *testing.T) {
		require.NoError(t, lp.Username.ExpectEmpty())
		require.NoError(t, lp.Username.ExpectRequired())
		require.NoError(t, lp.Username.ExpectNoErrorState())
		require.NoError(t, lp.Password.ExpectEmpty())
		require.NoError(t, lp.Password.ExpectPasswordField())
		require.NoError(t, lp.Password.ExpectRequired())
		require.NoError(t, lp.Password.ExpectNoErrorState())
		require.NoError(t, expect.Locator(lp.CookieCheckbox).Not().ToBeChecked())
		require.NoError(t, expect.Locator(lp.LoginButton).ToBeDisabled())
	})

	tests := []struct {
		name, username, password string
		enabled                  bool
	}{
		{name: "password missing", username: "Joe", password: "", enabled: false},
		{name: "username missing", username: "", password: "x", enabled: false},
		{name: "both filled", username: "Joe", password: "x", enabled: true},
		{name: "both cleared", username: "", password: "", enabled: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.NoError(t, lp.Username.Fill(tc.username))
			require.NoError(t, lp.Password.Fill(tc.password))
			if tc.enabled {
				require.NoError(t, expect.Locator(lp.LoginButton).ToBeEnabled())
				return
			}
			require.NoError(t, expect.Locator(lp.LoginButton).ToBeDisabled())
		})
	}

	t.Run("show password toggle", func(t *testing.T) {
		require.NoError(t, lp.ShowPasswordButton.Click())
		require.NoError(t, lp.Password.ExpectTextField())
		require.NoError(t, lp.ShowPasswordButton.Click())
		require.NoError(t, lp.Password.ExpectPasswordField())
	})

	t.Run("touched fields show errors", func(t *testing.T) {
		require.NoError(t, lp.Username.ExpectErrorState())
		require.NoError(t, lp.Password.ExpectErrorState())
	})
}

func TestLogin_Valid(t *testing.T) {
	s, user := fastStart(t)
	require.NoError(t, s.Login.Login(user, false))
	expectSnackbar(t, s.Login.Snackbar, "validLogin", 0)
}

func TestLogin_Invalid(t *testing.T) {
	s, user := fastStart(t)
	tests := []struct {
		username, password, message string
	}{
		{username: "'bobby ;tables user", password: "security101", message: "wrongSyntaxUsername"},
		{username: "nonExistingUser", password: "CorrectHorseBatteryStaple", message: "invalidCredentials"},
		{username: user.Username, password: "GoodUserbadPassowrd", message: "invalidCredentials"},
	}
	for _, tc := range tests {
		t.Run(tc.username, func(t *testing.T) {
			require.NoError(t, s.Login.Login(ui.Credentials{Username: tc.username, Password: tc.password}, false))
			expectSnackbar(t, s.Login.Snackbar, tc.message, 0)
			require.NoError(t, s.Login.Snackbar.Dismiss())
		})
	}
}

func TestLogin_Cookie(t *testing.T) {
	s, user := fastStart(t)
	require.NoError(t, s.Login.Login(user, true))
	expectSnackbar(t, s.Login.Snackbar, "validLogin", 0)
	_, err := s.Page.Reload()
	require.NoError(t, err)
	expectSnackbar(t, s.Login.Snackbar, "cookieLogin", 0)
}

func TestLogin_ExpiredCookie(t *testing.T) {
	s, user := fastStart(t)
	ctx := context.Background()

	t.Run("auth error on cookie mismatch", func(t *testing.T) {
		require.NoError(t, s.Login.Login(user, false))
		require.NoError(t, s.Login.Snackbar.Dismiss())
		require.NoError(t, api.ExpireCookie(ctx, user.Username))
		expectSnackbar(t, s.Login.Snackbar, "authError", cookiePollTimeout)
		require.NoError(t, s.Login.Snackbar.Dismiss())
	})

	t.Run("reload with expired cookie", func(t *testing.T) {
		require.NoError(t, s.Login.Login(user, true))
		require.NoError(t, s.Login.Snackbar.Dismiss())
		require.NoError(t, api.ExpireCookie(ctx, user.Username))
		_, err := s.Page.Reload()
		require.NoError(t, err)
		expectSnackbar(t, s.Login.Snackbar, "expiredCookie", 0)
	})
}

func TestLogin_AccountLocked(t *testing.T) {
	s, user := fastStart(t)
	wrong := ui.Credentials{Username: user.Username, Password: "x"}
	for range 3 {
		require.NoError(t, s.Login.Login(wrong, false))
		require.NoError(t, s.Login.Snackbar.Dismiss())
	}
	require.NoError(t, s.Login.Login(wrong, false))
	expectSnackbar(t, s.Login.Snackbar, "accountLocked", 0)
}

func TestLogin_AnonForm(t *testing.T) {
	s, _ := fastStart(t)
	lp := s.Login

	require.NoError(t, lp.GoToAnonButton.Click())
	anon, err := lp.AnonInfo()
	require.NoError(t, err)
	require.NoError(t, expect.Locator(lp.LoginSection).ToBeHidden())
	require.NoError(t, expect.Locator(lp.AnonSection).ToBeVisible())

	t.Run("default state", func(t *testing.T) {
		assert.NotEmpty(t, strings.TrimSpace(anon.ID))
		assert.NotEmpty(t, strings.TrimSpace(anon.Token))
		require.NoError(t, expect.ContainsText(lp.ContinueAsAnonButton, strings.TrimSpace(anon.ID)))
		require.NoError(t, expect.Locator(lp.AnonTokenInput).ToBeEmpty())
		require.NoError(t, expect.BackgroundImageLoaded(lp.AnonPicture))
	})

	t.Run("copy token", func(t *testing.T) {
		require.NoError(t, lp.CopyTokenButton.Click())
		expectSnackbar(t, lp.Snackbar, "tokenCopiedToClipboard", 0)
		if !cfg.Headless && cfg.Browser == "chromium" {
			// clipboard api is not exposed in headless runs
			content, err := ui.ClipboardContent(s.Page)
			require.NoError(t, err)
			assert.Equal(t, strings.TrimSpace(anon.Token), content)
		}
		require.NoError(t, lp.Snackbar.Dismiss())
	})

	t.Run("new anon user", func(t *testing.T) {
		require.NoError(t, lp.NewAnonButton.Click())
		require.NoError(t, expect.Locator(lp.AnonID).Not().ToHaveText(anon.ID))
		require.NoError(t, expect.Locator(lp.AnonToken).Not().ToHaveText(anon.Token))
	})

	t.Run("back to login", func(t *testing.T) {
		require.NoError(t, lp.GoBackButton.Click())
		require.NoError(t, expect.Locator(lp.AnonSection).ToBeHidden())
		require.NoError(t, expect.Locator(lp.LoginSection).ToBeVisible())
	})
}

func TestLogin_AnonValid(t *testing.T) {
	s, _ := fastStart(t)
	lp := s.Login
	header := ui.NewHeader(s.Page)

	require.NoError(t, lp.GoToAnonButton.Click())
	anon, err := lp.AnonInfo()
	require.NoError(t, err)
	require.NoError(t, lp.ContinueAsAnonButton.Click())
	expectSnackbar(t, lp.Snackbar, "validLogin", 0)

	reload := func() {
		t.Helper()
		_, err := s.Page.Reload()
		require.NoError(t, err)
	}

	reload()
	expectSnackbar(t, lp.Snackbar, "cookieLogin", 0)
	require.NoError(t, lp.Snackbar.Dismiss())

	// log out, then back in with the token
	require.NoError(t, header.LogoutButton.Click())
	require.NoError(t, lp.Snackbar.Dismiss())
	require.NoError(t, lp.GoToAnonButton.Click())
	require.NoError(t, lp.AnonLogin(strings.TrimSpace(anon.Token)))
	expectSnackbar(t, lp.Snackbar, "validLogin", 0)

	reload()
	expectSnackbar(t, lp.Snackbar, "cookieLogin", 0)
}

func TestLogin_AnonInvalid(t *testing.T) {
	s, _ := fastStart(t)
	lp := s.Login
	require.NoError(t, lp.GoToAnonButton.Click())
	anon, err := lp.AnonInfo()
	require.NoError(t, err)

	tests := []struct {
		name, token, message string
	}{
		{name: "blank token", token: "", message: "badToken"},
		{name: "invalid syntax", token: "'bobby ;tables token", message: "badToken"},
		{name: "unknown token", token: strings.Repeat("x", 30), message: "expiredToken"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.NoError(t, lp.AnonLogin(tc.token))
			expectSnackbar(t, lp.Snackbar, tc.message, 0)
			require.NoError(t, lp.Snackbar.Dismiss())
		})
	}

	t.Run("expired trial", func(t *testing.T) {
		header := ui.NewHeader(s.Page)
		require.NoError(t, lp.ContinueAsAnonButton.Click())
		require.NoError(t, lp.Snackbar.Dismiss())
		require.NoError(t, api.ExpireTrial(context.Background(), strings.TrimSpace(anon.ID)))
		require.NoError(t, header.LogoutButton.Click())
		require.NoError(t, lp.Snackbar.Dismiss())
		require.NoError(t, expect.Locator(lp.LoginSection).ToBeVisible())
		require.NoError(t, lp.GoToAnonButton.Click())
		require.NoError(t, lp.AnonLogin(strings.TrimSpace(anon.Token)))
		expectSnackbar(t, lp.Snackbar, "expiredToken", 0)
	})
}

func TestLogin_LoggedInAnon(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.LoggedInAnon())
	require.NoError(t, expect.Locator(ui.NewHeader(s.Page).AnonMenu).ToBeVisible())
	require.NoError(t, s.Page.Locator("lg2-dashboard").WaitFor(playwright.LocatorWaitForOptions{
		State: playwright.WaitForSelectorStateVisible,
	}))
}
