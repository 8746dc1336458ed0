package ui

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// ClipboardContent grants clipboard permissions to the page context and reads the clipboard.
// Headless chromium does not expose the clipboard, callers run it headed.
func ClipboardContent(page playwright.Page) (string, error) {
	if err := page.Context().GrantPermissions([]string{"clipboard-read", "clipboard-write"}); err != nil {
		return "", fmt.Errorf("grant clipboard permissions: %w", err)
	}
	res, err := page.Evaluate("() => navigator.clipboard.readText()")
	if err != nil {
		return "", fmt.Errorf("read clipboard: %w", err)
	}
	text, _ := res.(string)
	return text, nil
}

const localStorageScript = `() => {
	const res = {};
	for (let i = 0; i < localStorage.length; i++) {
		const key = localStorage.key(i);
		res[key] = localStorage.getItem(key);
	}
	return res;
}`

// LocalStorage dumps the page's local storage.
func LocalStorage(page playwright.Page) (map[string]string, error) {
	res, err := page.Evaluate(localStorageScript)
	if err != nil {
		return nil, fmt.Errorf("read local storage: %w", err)
	}
	raw, _ := res.(map[string]any)
	storage := make(map[string]string, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			storage[k] = s
		}
	}
	return storage, nil
}

// WaitStorageValue waits until local storage holds value under key.
func WaitStorageValue(page playwright.Page, key, value string) error {
	_, err := page.WaitForFunction("([k, v]) => localStorage.getItem(k) === v", []string{key, value})
	if err != nil {
		return fmt.Errorf("wait for local storage %s=%s: %w", key, value, err)
	}
	return nil
}

// WaitStorageLength waits until local storage holds at least n entries.
func WaitStorageLength(page playwright.Page, n int) error {
	if _, err := page.WaitForFunction("n => localStorage.length >= n", n); err != nil {
		return fmt.Errorf("wait for %d local storage entries: %w", n, err)
	}
	return nil
}
