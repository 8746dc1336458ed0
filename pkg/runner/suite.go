package runner

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/leggera/lg2e2e/pkg/render"
)

// Opener prepares a screen for target, typically a fresh logged in page, and its logger.
// The returned func releases both.
type Opener func(ctx context.Context, target string) (Screen, Logger, func(), error)

// SuiteConfig holds the settings shared by every target of a suite.
type SuiteConfig struct {
	Targets        []string
	Plan           Plan
	Concurrency    int // max targets verified at once, 0 means no limit
	ScreenshotsDir string
	RunID          string
}

// RunSuite verifies every target, up to Concurrency at a time. Checks are returned in target
// order. A target failing to open or run does not stop the others, all such errors are joined.
func RunSuite(ctx context.Context, cfg SuiteConfig, open Opener) ([]render.Check, error) {
	results := make([][]render.Check, len(cfg.Targets))
	errs := make([]error, len(cfg.Targets))

	var g errgroup.Group
	if cfg.Concurrency > 0 {
		g.SetLimit(cfg.Concurrency)
	}
	for i, target := range cfg.Targets {
		g.Go(func() error {
			screen, log, release, err := open(ctx, target)
			if err != nil {
				errs[i] = fmt.Errorf("open %s: %w", target, err)
				results[i] = []render.Check{{Target: target, Step: "open", Detail: err.Error()}}
				return nil
			}
			defer release()
			r := New(Config{Target: target, Plan: cfg.Plan, ScreenshotsDir: cfg.ScreenshotsDir, RunID: cfg.RunID}, screen, log)
			results[i], errs[i] = r.Run(ctx)
			return nil
		})
	}
	_ = g.Wait() // goroutines report through errs

	var checks []render.Check
	for _, r := range results {
		checks = append(checks, r...)
	}
	return checks, errors.Join(errs...)
}
