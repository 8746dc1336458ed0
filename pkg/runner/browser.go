package runner

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

// BrowserConfig configures the browser verification runs use.
type BrowserConfig struct {
	Name     string // chromium, firefox or webkit
	Headless bool
	SlowMo   time.Duration
	Timeout  time.Duration // default timeout of every page action
	Install  bool          // install the playwright driver and browser first
}

// Browser is a launched browser shared by runs, each page gets its own context.
type Browser struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	timeout time.Duration
}

// Launch starts playwright and the configured browser.
func Launch(cfg BrowserConfig) (*Browser, error) {
	if cfg.Install {
		if err := playwright.Install(&playwright.RunOptions{Browsers: []string{cfg.Name}}); err != nil {
			return nil, fmt.Errorf("install playwright: %w", err)
		}
	}
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("run playwright: %w", err)
	}

	var bt playwright.BrowserType
	switch cfg.Name {
	case "", "chromium":
		bt = pw.Chromium
	case "firefox":
		bt = pw.Firefox
	case "webkit":
		bt = pw.WebKit
	default:
		_ = pw.Stop()
		return nil, fmt.Errorf("unsupported browser %q", cfg.Name)
	}

	browser, err := bt.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
		SlowMo:   playwright.Float(float64(cfg.SlowMo.Milliseconds())),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("launch %s: %w", bt.Name(), err)
	}
	return &Browser{pw: pw, browser: browser, timeout: cfg.Timeout}, nil
}

// NewPage opens a page in a fresh context, so cookies and local storage are not shared.
// The returned func closes both.
func (b *Browser) NewPage() (playwright.Page, func(), error) {
	bctx, err := b.browser.NewContext()
	if err != nil {
		return nil, nil, fmt.Errorf("create browser context: %w", err)
	}
	if b.timeout > 0 {
		bctx.SetDefaultTimeout(float64(b.timeout.Milliseconds()))
	}
	page, err := bctx.NewPage()
	if err != nil {
		_ = bctx.Close()
		return nil, nil, fmt.Errorf("create page: %w", err)
	}
	return page, func() {
		_ = page.Close()
		_ = bctx.Close()
	}, nil
}

// Close shuts the browser and playwright down.
func (b *Browser) Close() error {
	if err := b.browser.Close(); err != nil {
		_ = b.pw.Stop()
		return fmt.Errorf("close browser: %w", err)
	}
	if err := b.pw.Stop(); err != nil {
		return fmt.Errorf("stop playwright: %w", err)
	}
	return nil
}
