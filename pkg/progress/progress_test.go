package progress

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T, target string) (*Logger, *bytes.Buffer) {
	t.Helper()
	l, err := NewLogger(Config{Target: target, DeployURL: "https://qa.leggera.dev", Build: "153", Dir: t.TempDir(), NoColor: true})
	require.NoError(t, err)
	var buf bytes.Buffer
	l.stdout = &buf
	return l, &buf
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path) //nolint:gosec // path from t.TempDir()
	require.NoError(t, err)
	return string(data)
}

func TestLogFilename(t *testing.T) {
	tests := map[string]string{
		"elements":            "lg2e2e-elements.txt",
		"elements,cloud":      "lg2e2e-elements-cloud.txt",
		"":                    "lg2e2e.txt",
		"../../etc/passwd":    "lg2e2e-..-..-etc-passwd.txt",
		"wizard cloud import": "lg2e2e-wizard-cloud-import.txt",
	}
	for target, want := range tests {
		assert.Equal(t, want, logFilename(target), "target %q", target)
	}
}

func TestNewLogger(t *testing.T) {
	l, _ := newTestLogger(t, "elements")
	path := l.Path()
	assert.Equal(t, "lg2e2e-elements.txt", filepath.Base(path))
	require.NoError(t, l.Close())
	assert.Empty(t, l.Path())

	content := readLog(t, path)
	assert.Contains(t, content, "# lg2e2e verification log")
	assert.Contains(t, content, "Target: elements")
	assert.Contains(t, content, "Deploy: https://qa.leggera.dev (build 153)")
	assert.Contains(t, content, "Passed: 0, failed: 0")
}

func TestLogger_Levels(t *testing.T) {
	l, buf := newTestLogger(t, "collections")
	path := l.Path()

	l.Print("searching %q", "btn")
	l.Pass("sorted by %s", "name")
	l.Fail("row %d differs", 3)

	passed, failed := l.Counts()
	assert.Equal(t, 1, passed)
	assert.Equal(t, 1, failed)
	require.NoError(t, l.Close())

	for _, out := range []string{buf.String(), readLog(t, path)} {
		assert.Contains(t, out, `searching "btn"`)
		assert.Contains(t, out, "PASS: sorted by name")
		assert.Contains(t, out, "FAIL: row 3 differs")
	}
	assert.Contains(t, readLog(t, path), "Passed: 1, failed: 1")
}

func TestLogger_Concurrent(t *testing.T) {
	l, _ := newTestLogger(t, "parallel")
	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				l.Pass("check %d", i)
				return
			}
			l.Fail("check %d", i)
		}()
	}
	wg.Wait()
	passed, failed := l.Counts()
	assert.Equal(t, 10, passed)
	assert.Equal(t, 10, failed)
	require.NoError(t, l.Close())
}

func TestLogger_PrintAligned(t *testing.T) {
	t.Setenv("COLUMNS", "80")
	l, buf := newTestLogger(t, "report")

	l.PrintAligned("first line\nsecond line\n\nfourth\n\n")
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "["))
	assert.True(t, strings.HasSuffix(lines[0], "] first line"))
	assert.Equal(t, strings.Repeat(" ", 20)+"second line", lines[1])
	assert.Empty(t, lines[2])
	assert.Equal(t, strings.Repeat(" ", 20)+"fourth", lines[3])

	buf.Reset()
	l.PrintAligned("\n\n")
	assert.Empty(t, buf.String())
	require.NoError(t, l.Close())
}

func TestWrapText(t *testing.T) {
	assert.Equal(t, "short", wrapText("short", 10))
	assert.Equal(t, "one two\nthree four", wrapText("one two three four", 9))
	assert.Equal(t, "unbreakableword", wrapText("unbreakableword", 5))
	assert.Equal(t, "any", wrapText("any", 0))
}

func TestTerminalWidth(t *testing.T) {
	t.Setenv("COLUMNS", "120")
	assert.Equal(t, 100, terminalWidth())

	t.Setenv("COLUMNS", "30")
	assert.Equal(t, 40, terminalWidth())
}

func TestLogger_NoColor(t *testing.T) {
	orig := color.NoColor
	t.Cleanup(func() { color.NoColor = orig })

	l, buf := newTestLogger(t, "nocolor")
	l.Fail("plain")
	assert.NotContains(t, buf.String(), "\x1b[")
	require.NoError(t, l.Close())
}
