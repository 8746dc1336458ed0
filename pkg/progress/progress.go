// Package progress logs verification runs to a file and to stdout, colouring outcomes.
package progress

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"golang.org/x/term"
)

var (
	passColor      = color.New(color.FgGreen)
	failColor      = color.New(color.FgRed)
	infoColor      = color.New(color.FgCyan)
	timestampColor = color.New(color.FgWhite)
)

// timestampFormat is YY-MM-DD HH:MM:SS
const timestampFormat = "06-01-02 15:04:05"

// Logger writes timestamped lines to a log file and stdout. Safe for concurrent use.
type Logger struct {
	mu        sync.Mutex
	file      *os.File
	stdout    io.Writer
	startTime time.Time
	passed    int
	failed    int
}

// Config holds logger configuration.
type Config struct {
	Target    string // what is verified, names the log file
	DeployURL string
	Build     string
	Dir       string // log file directory, empty means working directory
	NoColor   bool   // disable colour output (sets color.NoColor globally)
}

// NewLogger creates a logger writing to lg2e2e-<target>.txt and stdout.
func NewLogger(cfg Config) (*Logger, error) {
	if cfg.NoColor {
		color.NoColor = true
	}

	path := filepath.Join(cfg.Dir, logFilename(cfg.Target))
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
	}
	f, err := os.Create(path) //nolint:gosec // path derived from target name
	if err != nil {
		return nil, fmt.Errorf("create log file: %w", err)
	}

	l := &Logger{file: f, stdout: os.Stdout, startTime: time.Now()}
	l.writeFile("# lg2e2e verification log\n")
	l.writeFile("Target: %s\n", cfg.Target)
	l.writeFile("Deploy: %s (build %s)\n", cfg.DeployURL, cfg.Build)
	l.writeFile("Started: %s\n", l.startTime.Format("2006-01-02 15:04:05"))
	l.writeFile("%s\n\n", strings.Repeat("-", 60))
	return l, nil
}

var unsafeName = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// logFilename returns lg2e2e-<target>.txt with the target made file name safe.
func logFilename(target string) string {
	target = strings.Trim(unsafeName.ReplaceAllString(target, "-"), "-")
	if target == "" {
		return "lg2e2e.txt"
	}
	return "lg2e2e-" + target + ".txt"
}

// Path returns the log file path.
func (l *Logger) Path() string {
	if l.file == nil {
		return ""
	}
	return l.file.Name()
}

// Print writes an informational line.
func (l *Logger) Print(format string, args ...any) {
	l.line("", infoColor, format, args...)
}

// Pass writes a passed check in green and counts it.
func (l *Logger) Pass(format string, args ...any) {
	l.mu.Lock()
	l.passed++
	l.mu.Unlock()
	l.line("PASS: ", passColor, format, args...)
}

// Fail writes a failed check in red and counts it.
func (l *Logger) Fail(format string, args ...any) {
	l.mu.Lock()
	l.failed++
	l.mu.Unlock()
	l.line("FAIL: ", failColor, format, args...)
}

// Counts returns the number of passed and failed checks so far.
func (l *Logger) Counts() (passed, failed int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.passed, l.failed
}

func (l *Logger) line(prefix string, c *color.Color, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	ts := time.Now().Format(timestampFormat)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.writeFile("[%s] %s%s\n", ts, prefix, msg)
	l.writeStdout("%s %s\n", timestampColor.Sprintf("[%s]", ts), c.Sprint(prefix+msg))
}

// PrintAligned writes multi-line text such as a listing diff, timestamping the first line and
// indenting the rest under it. Long lines are wrapped to the terminal width.
func (l *Logger) PrintAligned(text string) {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return
	}

	ts := time.Now().Format(timestampFormat)
	indent := strings.Repeat(" ", 20) // width of "[YY-MM-DD HH:MM:SS] "
	width := terminalWidth()

	var lines []string
	for line := range strings.SplitSeq(text, "\n") {
		lines = append(lines, strings.Split(wrapText(line, width), "\n")...)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	for i, line := range lines {
		switch {
		case line == "":
			l.writeFile("\n")
			l.writeStdout("\n")
		case i == 0:
			l.writeFile("[%s] %s\n", ts, line)
			l.writeStdout("%s %s\n", timestampColor.Sprintf("[%s]", ts), infoColor.Sprint(line))
		default:
			l.writeFile("%s%s\n", indent, line)
			l.writeStdout("%s%s\n", indent, infoColor.Sprint(line))
		}
	}
}

// terminalWidth returns the content width: COLUMNS or the terminal size, minus the timestamp.
func terminalWidth() int {
	const minWidth, tsWidth = 40, 20

	w := 0
	if cols, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && cols > 0 {
		w = cols
	} else if tw, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && tw > 0 {
		w = tw
	}
	if w == 0 {
		return 80 - tsWidth
	}
	return max(w-tsWidth, minWidth)
}

// wrapText wraps text to width, breaking on word boundaries.
func wrapText(text string, width int) string {
	if width <= 0 || len(text) <= width {
		return text
	}

	var b strings.Builder
	lineLen := 0
	for i, word := range strings.Fields(text) {
		switch {
		case i == 0:
			lineLen = len(word)
		case lineLen+1+len(word) <= width:
			b.WriteString(" ")
			lineLen += 1 + len(word)
		default:
			b.WriteString("\n")
			lineLen = len(word)
		}
		b.WriteString(word)
	}
	return b.String()
}

// Elapsed returns the time since the logger was created, e.g. "3 minutes".
func (l *Logger) Elapsed() string {
	return humanize.RelTime(l.startTime, time.Now(), "", "")
}

// Close writes the summary footer and closes the log file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}

	l.writeFile("\n%s\n", strings.Repeat("-", 60))
	l.writeFile("Passed: %d, failed: %d\n", l.passed, l.failed)
	l.writeFile("Completed: %s (%s)\n", time.Now().Format("2006-01-02 15:04:05"), l.Elapsed())

	err := l.file.Close()
	l.file = nil
	if err != nil {
		return fmt.Errorf("close log file: %w", err)
	}
	return nil
}

func (l *Logger) writeFile(format string, args ...any) {
	if l.file != nil {
		fmt.Fprintf(l.file, format, args...)
	}
}

func (l *Logger) writeStdout(format string, args ...any) {
	fmt.Fprintf(l.stdout, format, args...)
}
