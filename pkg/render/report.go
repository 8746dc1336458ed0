package render

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// Check is one verified listing state, e.g. "elements: sorted by column 2".
type Check struct {
	Target string `json:"target"`
	Step   string `json:"step"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail,omitempty"` // mismatch or error text for failed checks
	Diff   string `json:"diff,omitempty"`   // expected vs rendered rows
}

// Report summarizes a verification run.
type Report struct {
	RunID     string    `json:"run_id"`
	DeployURL string    `json:"deploy_url"`
	Build     string    `json:"build"`
	Started   time.Time `json:"started"`
	Elapsed   string    `json:"elapsed"`
	Checks    []Check   `json:"checks"`
}

// Failed returns the number of failed checks.
func (r Report) Failed() int {
	n := 0
	for _, c := range r.Checks {
		if !c.Passed {
			n++
		}
	}
	return n
}

// Markdown renders the report as markdown: a header, a results table and a section per failure.
func (r Report) Markdown() string {
	var b strings.Builder
	verdict := "passed"
	if r.Failed() > 0 {
		verdict = "FAILED"
	}
	fmt.Fprintf(&b, "# Listing verification %s\n\n", verdict)
	fmt.Fprintf(&b, "- deploy: `%s` build `%s`\n", r.DeployURL, r.Build)
	if r.RunID != "" {
		fmt.Fprintf(&b, "- run: `%s`\n", r.RunID)
	}
	if !r.Started.IsZero() {
		fmt.Fprintf(&b, "- started: %s\n", r.Started.Format("2006-01-02 15:04:05"))
	}
	if r.Elapsed != "" {
		fmt.Fprintf(&b, "- took: %s\n", r.Elapsed)
	}
	fmt.Fprintf(&b, "- checks: %d, failed: %d\n\n", len(r.Checks), r.Failed())

	if len(r.Checks) == 0 {
		return b.String()
	}

	b.WriteString("| target | step | result |\n|---|---|---|\n")
	for _, c := range r.Checks {
		res := "pass"
		if !c.Passed {
			res = "**fail**"
		}
		fmt.Fprintf(&b, "| %s | %s | %s |\n", escapeCell(c.Target), escapeCell(c.Step), res)
	}

	for _, c := range r.Checks {
		if c.Passed {
			continue
		}
		fmt.Fprintf(&b, "\n## %s: %s\n\n%s\n", c.Target, c.Step, c.Detail)
		if c.Diff != "" {
			fmt.Fprintf(&b, "\n```diff\n%s\n```\n", strings.TrimRight(c.Diff, "\n"))
		}
	}
	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// Render renders the report for the terminal, wrapped to its width. With noColor the markdown
// is returned as is, so it stays readable in ci logs and pipes.
func (r Report) Render(noColor bool) (string, error) {
	md := r.Markdown()
	if noColor {
		return md, nil
	}
	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(wrapWidth()))
	if err != nil {
		return "", fmt.Errorf("report renderer: %w", err)
	}
	out, err := renderer.Render(md)
	if err != nil {
		return "", fmt.Errorf("render report %s: %w", r.RunID, err)
	}
	return out, nil
}

// wrapWidth is the report width: COLUMNS or the stdout terminal width, 80 when neither is known,
// clamped to 60..160.
func wrapWidth() int {
	const minWidth, maxWidth = 60, 160

	w := 80
	if cols, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && cols > 0 {
		w = cols
	} else if tw, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && tw > 0 {
		w = tw
	}
	return min(max(w, minWidth), maxWidth)
}
