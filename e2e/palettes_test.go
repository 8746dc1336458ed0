//go:build e2e

package e2e

import (
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"

	"github.com/leggera/lg2e2e/pkg/fixture"
	"github.com/leggera/lg2e2e/pkg/ui"
	"github.com/leggera/lg2e2e/pkg/ui/expect"
)

const (
	logoBlack = "rgb(0, 0, 0)"
	logoWhite = "rgb(255, 255, 255)"
)

// expectLogoFill checks both halves of an infinity logo.
func expectLogoFill(t *testing.T, logo playwright.Locator, color string) {
	t.Helper()
	require.NoError(t, expect.FillColor(logo.Locator("span > svg path:first-of-type"), color), "logo span fill")
	require.NoError(t, expect.FillColor(logo.Locator("div > svg path:first-of-type"), color), "logo div fill")
}

// expectPalette checks the fill of every background shape against the named palette,
// and the background color against the palette named by background.
func expectPalette(t *testing.T, bg *ui.BackgroundSVG, name, background string) {
	t.Helper()
	palette, err := catalog.Palette(name)
	require.NoError(t, err)
	for _, key := range fixture.PaletteShapes {
		t.Run(name+" "+key, func(t *testing.T) {
			shape, err := bg.Shape(key)
			require.NoError(t, err)
			require.NoError(t, expect.FillColor(shape, palette[key]))
		})
	}
	bgPalette, err := catalog.Palette(background)
	require.NoError(t, err)
	require.NoError(t, expect.BackgroundColor(bg.Self, bgPalette["background"]), "%s background", name)
}

func TestPalettes(t *testing.T) {
	s := newSession(t)
	lp := s.Login
	require.NoError(t, lp.GoToAppRoot())

	t.Run("startup logo", func(t *testing.T) {
		expectLogoFill(t, lp.StartupLogo, logoBlack)
		require.NoError(t, expect.Locator(lp.StartupLogo).ToBeVisible())
		require.NoError(t, expect.Locator(lp.StartupLogo).ToBeHidden())
		require.NoError(t, expect.Locator(lp.LoginLogo).ToBeVisible())
	})

	t.Run("default", func(t *testing.T) {
		expectLogoFill(t, lp.LoginLogo, logoBlack)
		expectPalette(t, lp.Background, "default", "default")
	})

	// a failed login switches the shapes to the error palette, the background stays default
	t.Run("bad login", func(t *testing.T) {
		require.NoError(t, lp.Login(ui.Credentials{Username: "x", Password: "x"}, false))
		expectLogoFill(t, lp.LoginLogo, logoWhite)
		expectPalette(t, lp.Background, "error", "default")
	})

	t.Run("default after bad login", func(t *testing.T) {
		expectLogoFill(t, lp.LoginLogo, logoBlack)
		expectPalette(t, lp.Background, "default", "default")
	})

	t.Run("anon", func(t *testing.T) {
		require.NoError(t, lp.GoToAnonButton.Click())
		expectLogoFill(t, lp.LoginLogo, logoWhite)
		expectPalette(t, lp.Background, "anon", "anon")
	})

	t.Run("default after anon", func(t *testing.T) {
		require.NoError(t, lp.GoBackButton.Click())
		expectLogoFill(t, lp.LoginLogo, logoBlack)
		expectPalette(t, lp.Background, "default", "default")
	})
}
