// Package runner drives listing screens of a deployment through scripted interactions and
// verifies the rendered page after each one.
package runner

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/leggera/lg2e2e/pkg/listing"
	"github.com/leggera/lg2e2e/pkg/render"
)

// Plan is the interaction script run against a screen: open it, then optionally search,
// page forward and sort, verifying the listing after every step.
type Plan struct {
	Search     string // search needle, empty skips the search step
	SortColumn int    // 1-based column header to sort by, 0 skips sorting
	NextPages  int    // number of next page clicks
}

//go:generate moq -out mocks/screen.go -pkg mocks -skip-ensure -fmt goimports . Screen

// Screen is a listing screen of the app.
type Screen interface {
	Open() ([]listing.Record, error)                // navigate and return the dataset the screen loaded
	Search(needle string) ([]listing.Record, error) // search and return the filtered dataset
	NextPage() error
	SortBy(column int) error
	Verify(reference []listing.Record) error
	Screenshot(path string) error
}

// Logger provides progress output.
type Logger interface {
	Print(format string, args ...any)
	Pass(format string, args ...any)
	Fail(format string, args ...any)
	PrintAligned(text string) // multi-line text, e.g. a listing diff
}

// Config holds runner configuration.
type Config struct {
	Target         string // screen name, e.g. elements
	Plan           Plan
	ScreenshotsDir string // where to save a screenshot of failed checks, empty disables
	RunID          string
}

// Runner verifies one screen.
type Runner struct {
	cfg    Config
	log    Logger
	screen Screen
}

// New creates a Runner for screen.
func New(cfg Config, screen Screen, log Logger) *Runner {
	return &Runner{cfg: cfg, log: log, screen: screen}
}

// step is one interaction followed by a verification against the current reference.
type step struct {
	name   string
	action func() error
}

// Run executes the plan and returns a check per step. A listing mismatch fails the check and the
// run goes on, any other error stops the run and is returned along with the checks done so far.
func (r *Runner) Run(ctx context.Context) ([]render.Check, error) {
	var checks []render.Check
	var reference []listing.Record

	steps := []step{{name: "default listing", action: func() (err error) {
		reference, err = r.screen.Open()
		return err
	}}}
	if r.cfg.Plan.Search != "" {
		steps = append(steps, step{name: fmt.Sprintf("search %q", r.cfg.Plan.Search), action: func() (err error) {
			reference, err = r.screen.Search(r.cfg.Plan.Search)
			return err
		}})
	}
	for i := range r.cfg.Plan.NextPages {
		steps = append(steps, step{name: fmt.Sprintf("next page %d", i+1), action: r.screen.NextPage})
	}
	if col := r.cfg.Plan.SortColumn; col > 0 {
		steps = append(steps, step{name: fmt.Sprintf("sort by column %d", col), action: func() error {
			return r.screen.SortBy(col)
		}})
	}

	for i, s := range steps {
		if err := ctx.Err(); err != nil {
			return checks, fmt.Errorf("%s: %w", r.cfg.Target, err)
		}
		r.log.Print("%s: %s", r.cfg.Target, s.name)
		if err := s.action(); err != nil {
			checks = append(checks, r.fail(i, s.name, err))
			return checks, fmt.Errorf("%s: %s: %w", r.cfg.Target, s.name, err)
		}
		if err := r.screen.Verify(reference); err != nil {
			checks = append(checks, r.fail(i, s.name, err))
			if !errors.Is(err, listing.ErrListingMismatch) {
				return checks, fmt.Errorf("%s: verify %s: %w", r.cfg.Target, s.name, err)
			}
			continue
		}
		r.log.Pass("%s: %s, %d records", r.cfg.Target, s.name, len(reference))
		checks = append(checks, render.Check{Target: r.cfg.Target, Step: s.name, Passed: true})
	}
	return checks, nil
}

// fail logs a failed step with its diff, saves a screenshot and returns its check.
func (r *Runner) fail(i int, name string, err error) render.Check {
	r.log.Fail("%s: %s: %v", r.cfg.Target, name, err)
	check := render.Check{Target: r.cfg.Target, Step: name, Detail: err.Error()}
	var me *listing.MismatchError
	if errors.As(err, &me) {
		check.Diff = me.Diff
	}

	var details []string
	if check.Diff != "" {
		details = append(details, strings.TrimRight(check.Diff, "\n"))
	}
	if r.cfg.ScreenshotsDir != "" {
		path := filepath.Join(r.cfg.ScreenshotsDir, screenshotName(r.cfg.RunID, r.cfg.Target, i))
		if shotErr := r.screen.Screenshot(path); shotErr != nil {
			r.log.Print("warning: screenshot of %s: %v", name, shotErr)
		} else {
			check.Detail += "\n\nscreenshot: " + path
			details = append(details, "screenshot: "+path)
		}
	}
	if len(details) > 0 {
		r.log.PrintAligned(strings.Join(details, "\n"))
	}
	return check
}

func screenshotName(runID, target string, stepIdx int) string {
	parts := []string{target, fmt.Sprintf("step%d", stepIdx+1)}
	if runID != "" {
		parts = append([]string{runID}, parts...)
	}
	return strings.Join(parts, "-") + ".png"
}
