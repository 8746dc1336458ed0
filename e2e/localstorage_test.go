//go:build e2e

package e2e

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leggera/lg2e2e/pkg/ui"
)

func TestLocalStorage(t *testing.T) {
	s, user := fastStart(t)
	page := s.Page
	header := s.Login.Header

	storage := func() map[string]string {
		t.Helper()
		m, err := ui.LocalStorage(page)
		require.NoError(t, err)
		return m
	}

	t.Run("empty before login", func(t *testing.T) {
		assert.Empty(t, storage())
	})

	t.Run("login without cookie", func(t *testing.T) {
		require.NoError(t, s.Login.Login(user, false))
		require.NoError(t, ui.WaitStorageLength(page, 1))
		waitStorage(t, page, func(m map[string]string) bool {
			return m[ui.StorageTheme] == string(ui.ThemeLuigi) && m[ui.StorageLanguage] == string(ui.English)
		}, "default theme and language stored")
		assert.Empty(t, storage()[ui.StorageCookie])
	})

	t.Run("login with cookie", func(t *testing.T) {
		_, err := page.Reload()
		require.NoError(t, err)
		require.NoError(t, s.Login.Login(user, true))
		waitStorage(t, page, func(m map[string]string) bool {
			return m[ui.StorageCookie] != ""
		}, "cookie stored")
		require.NoError(t, s.Login.Snackbar.Dismiss())
	})

	t.Run("language", func(t *testing.T) {
		for _, lang := range []ui.Language{ui.Portuguese, ui.Spanish, ui.English} {
			require.NoError(t, header.WaitPickersClosed())
			require.NoError(t, header.ChangeLanguage(lang))
			require.NoError(t, ui.WaitStorageValue(page, ui.StorageLanguage, string(lang)))
		}
	})

	t.Run("theme", func(t *testing.T) {
		for _, theme := range []ui.Theme{ui.ThemeSonic, ui.ThemeLuigi} {
			require.NoError(t, header.WaitPickersClosed())
			require.NoError(t, header.ChangeTheme(theme))
			require.NoError(t, ui.WaitStorageValue(page, ui.StorageTheme, string(theme)))
		}
	})

	wizard := ui.NewWizardPage(page)
	t.Run("breadcrumbs", func(t *testing.T) {
		require.NoError(t, header.WaitPickersClosed())
		require.NoError(t, wizard.Navigate())
		waitStorage(t, page, func(m map[string]string) bool {
			return m[ui.StorageBreadcrumbs] != ""
		}, "breadcrumbs stored")
	})

	t.Run("current page", func(t *testing.T) {
		require.NoError(t, wizard.Stepper.Next())
		require.NoError(t, wizard.Application.RandomPick())
		require.NoError(t, wizard.PageTitle.Fill("local storage"))
		require.NoError(t, wizard.Stepper.Next())
		waitStorage(t, page, func(m map[string]string) bool {
			return m[ui.StorageCurrentPage+user.Username] != ""
		}, "current page stored")
	})

	t.Run("preferences survive reload", func(t *testing.T) {
		require.NoError(t, header.ChangeLanguage(ui.Spanish))
		require.NoError(t, ui.WaitStorageValue(page, ui.StorageLanguage, string(ui.Spanish)))
		require.NoError(t, header.WaitPickersClosed())
		require.NoError(t, header.ChangeTheme(ui.ThemeSonic))
		require.NoError(t, ui.WaitStorageValue(page, ui.StorageTheme, string(ui.ThemeSonic)))

		_, err := page.Reload()
		require.NoError(t, err)
		m := storage()
		assert.Equal(t, string(ui.Spanish), m[ui.StorageLanguage])
		assert.Equal(t, string(ui.ThemeSonic), m[ui.StorageTheme])
	})
}
