// Package fixture provides the expected ui texts and colors of the app and the login
// preconditions shared by end-to-end suites.
package fixture

import (
	"embed"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/leggera/lg2e2e/pkg/ui"
)

//go:embed data/*.yml
var dataFS embed.FS

// Text is a translated ui text, matched literally unless Regexp is set.
type Text struct {
	Regexp bool                   `yaml:"regexp"`
	Text   map[ui.Language]string `yaml:"text"`
}

// Pattern returns the regular expression matching the text in lang, falling back to english.
// Literal texts are quoted and any whitespace run matches any other, the snackbar wraps lines.
func (t Text) Pattern(lang ui.Language) (string, error) {
	s, ok := t.Text[lang]
	if !ok || s == "" {
		s = t.Text[ui.English]
	}
	if s == "" {
		return "", fmt.Errorf("no %s text", lang)
	}
	if t.Regexp {
		return s, nil
	}
	parts := strings.Fields(s)
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(p)
	}
	return strings.Join(parts, `\s+`), nil
}

// SnackbarMessage is a message shown by the app snackbar.
type SnackbarMessage struct {
	Text  `yaml:",inline"`
	Emoji string `yaml:"emoji"`
}

// LocaleText is a translated text and the element showing it.
type LocaleText struct {
	Text    `yaml:",inline"`
	Locator string `yaml:"locator"`
}

// Palette holds the computed fill colors of the landing page background shapes.
type Palette map[string]string

// PaletteShapes lists the background shapes in drawing order.
var PaletteShapes = []string{"out-top", "in-top", "out-bottom", "in-bottom"}

// Catalog is the parsed set of expected texts and colors.
type Catalog struct {
	Snackbar map[string]SnackbarMessage
	Locales  map[string]map[string]LocaleText
	Palettes map[string]Palette
}

var loadOnce = sync.OnceValues(func() (*Catalog, error) { return loadCatalog(dataFS) })

// Load returns the embedded catalog, parsed once.
func Load() (*Catalog, error) {
	return loadOnce()
}

// MustLoad is like Load but panics on error, for test package vars.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

func loadCatalog(fsys embed.FS) (*Catalog, error) {
	c := &Catalog{}
	files := []struct {
		name string
		dst  any
	}{
		{"data/snackbar.yml", &c.Snackbar},
		{"data/locales.yml", &c.Locales},
		{"data/palettes.yml", &c.Palettes},
	}
	for _, f := range files {
		data, err := fsys.ReadFile(f.name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.name, err)
		}
		if err := yaml.Unmarshal(data, f.dst); err != nil {
			return nil, fmt.Errorf("parse %s: %w", f.name, err)
		}
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// validate checks every regexp compiles and every palette is complete.
func (c *Catalog) validate() error {
	check := func(where string, t Text) error {
		if !t.Regexp {
			return nil
		}
		for lang, s := range t.Text {
			if _, err := regexp.Compile(s); err != nil {
				return fmt.Errorf("%s (%s): %w", where, lang, err)
			}
		}
		return nil
	}
	for name, m := range c.Snackbar {
		if m.Emoji == "" {
			return fmt.Errorf("snackbar %s: no emoji", name)
		}
		if err := check("snackbar "+name, m.Text); err != nil {
			return err
		}
	}
	for section, texts := range c.Locales {
		for key, t := range texts {
			if t.Locator == "" {
				return fmt.Errorf("locale %s.%s: no locator", section, key)
			}
			if err := check("locale "+section+"."+key, t.Text); err != nil {
				return err
			}
		}
	}
	for name, p := range c.Palettes {
		for _, shape := range append(PaletteShapes, "background") {
			if p[shape] == "" {
				return fmt.Errorf("palette %s: no %s color", name, shape)
			}
		}
	}
	return nil
}

// Message returns a snackbar message by name.
func (c *Catalog) Message(name string) (SnackbarMessage, error) {
	m, ok := c.Snackbar[name]
	if !ok {
		return SnackbarMessage{}, fmt.Errorf("unknown snackbar message %q", name)
	}
	return m, nil
}

// Locale returns a translated text by section and key, e.g. "menu", "wizard".
func (c *Catalog) Locale(section, key string) (LocaleText, error) {
	t, ok := c.Locales[section][key]
	if !ok {
		return LocaleText{}, fmt.Errorf("unknown locale text %s.%s", section, key)
	}
	return t, nil
}

// Palette returns a background palette by name: default, anon or error.
func (c *Catalog) Palette(name string) (Palette, error) {
	p, ok := c.Palettes[name]
	if !ok {
		return nil, fmt.Errorf("unknown palette %q", name)
	}
	return p, nil
}
