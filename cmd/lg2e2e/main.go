// Package main provides lg2e2e - listing verification and test data seeding for Leggera deployments.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/jessevdk/go-flags"
	"github.com/robfig/cron/v3"

	"github.com/leggera/lg2e2e/pkg/config"
	"github.com/leggera/lg2e2e/pkg/fixture"
	"github.com/leggera/lg2e2e/pkg/notify"
	"github.com/leggera/lg2e2e/pkg/progress"
	"github.com/leggera/lg2e2e/pkg/render"
	"github.com/leggera/lg2e2e/pkg/runner"
	"github.com/leggera/lg2e2e/pkg/testapi"
	"github.com/leggera/lg2e2e/pkg/web"
)

// opts holds all command-line options.
type opts struct {
	ConfigDir string `long:"config" env:"LG2E2E_CONFIG" description:"global config directory (default ~/.config/lg2e2e)"`
	Install   bool   `long:"install" description:"write the default config and exit"`

	CreateUsers  int    `long:"create-users" description:"create N test users and print their names"`
	MockPages    string `long:"mock-pages" value-name:"USER" description:"create mock cloud pages for USER"`
	Pages        int    `long:"pages" default:"3" description:"mock pages per user, for --mock-pages and the cloud target"`
	ExpireCookie string `long:"expire-cookie" value-name:"USER" description:"expire the login cookie of USER"`
	ExpireTrial  string `long:"expire-trial" value-name:"USER" description:"expire the trial of USER"`

	Verify     []string `long:"verify" choice:"elements" choice:"collections" choice:"applications" choice:"cloud" description:"listing screen to verify, repeatable"`
	Search     string   `long:"search" description:"search needle applied after the default listing"`
	SortColumn int      `long:"sort-column" description:"1-based column header to sort by last"`
	NextPages  int      `long:"next-pages" default:"1" description:"next page clicks after the search"`
	Report     string   `long:"report" description:"write the markdown report to this file"`
	Schedule   string   `long:"schedule" description:"cron spec to repeat the verification, e.g. \"*/30 * * * *\""`
	Serve      string   `long:"serve" value-name:"ADDR" description:"stream progress to a browser on ADDR, e.g. :8080"`

	Headed  bool `long:"headed" description:"show the browser, overrides headless config"`
	NoColor bool `long:"no-color" description:"disable color output"`
	Debug   bool `short:"d" long:"debug" description:"enable debug logging"`
	Version bool `short:"v" long:"version" description:"print version and exit"`
}

var revision = "unknown"

func main() {
	fmt.Printf("lg2e2e %s\n", revision)

	var o opts
	parser := flags.NewParser(&o, flags.Default)
	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if o.Version {
		os.Exit(0)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if o.Schedule != "" || o.Serve != "" {
		restore := muteInterruptEcho(int(os.Stdin.Fd()))
		defer restore()
	}

	if err := run(ctx, o); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, o opts) error {
	if o.NoColor {
		color.NoColor = true
	}
	console := consoleLog{debug: o.Debug}

	if o.Install {
		if err := config.Install(o.ConfigDir); err != nil {
			return fmt.Errorf("install config: %w", err)
		}
		dir := o.ConfigDir
		if dir == "" {
			dir = config.DefaultConfigDir()
		}
		console.Print("config installed in %s", dir)
		return nil
	}

	cfg, err := config.Load(o.ConfigDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if o.Headed {
		cfg.Headless = false
	}
	console.Debug("deploy %s build %s, config %s, local %q", cfg.DeployURL, cfg.BuildNumber, cfg.ConfigDir(), cfg.LocalDir())

	api, err := testapi.New(testapi.Params{
		DeployURL:   cfg.DeployURL,
		BuildNumber: cfg.BuildNumber,
		RPS:         cfg.APIRPS,
	})
	if err != nil {
		return fmt.Errorf("testing api: %w", err)
	}

	if err := seed(ctx, o, api, console); err != nil {
		return err
	}
	if len(o.Verify) == 0 {
		if !hasSeedCommand(o) {
			return errors.New("nothing to do, use --verify or one of the seeding options (see --help)")
		}
		return nil
	}

	notifier, err := notify.New(cfg.NotifyParams, console)
	if err != nil {
		return fmt.Errorf("notifications: %w", err)
	}

	v := &verification{cfg: cfg, api: api, opts: o, notifier: notifier, log: console}
	if o.Serve != "" {
		if v.live, err = serve(ctx, o.Serve, cfg.DeployURL, console); err != nil {
			return err
		}
	}
	if o.Schedule != "" {
		return schedule(ctx, o.Schedule, v, console)
	}
	err = v.run(ctx)
	if v.live != nil && ctx.Err() == nil {
		console.Print("run finished, serving progress until interrupted")
		<-ctx.Done()
	}
	return err
}

// serve starts the live progress server in the background, it stops with ctx.
func serve(ctx context.Context, addr, title string, log consoleLog) (*web.Server, error) {
	live, err := web.NewServer(web.ServerConfig{Addr: addr, Title: title}, web.NewBuffer(web.DefaultBufferSize))
	if err != nil {
		return nil, fmt.Errorf("live server: %w", err)
	}
	go func() {
		if err := live.Start(ctx); err != nil {
			log.Error("%v", err)
		}
	}()
	log.Print("live progress on http://%s", addr)
	return live, nil
}

func hasSeedCommand(o opts) bool {
	return o.CreateUsers > 0 || o.MockPages != "" || o.ExpireCookie != "" || o.ExpireTrial != ""
}

// seed runs the testing api commands requested on the command line.
func seed(ctx context.Context, o opts, api *testapi.Client, log consoleLog) error {
	if o.CreateUsers > 0 {
		users, err := api.CreateTestUsers(ctx, o.CreateUsers)
		if err != nil {
			return fmt.Errorf("create users: %w", err)
		}
		for _, u := range users {
			fmt.Println(u)
		}
	}
	if o.MockPages != "" {
		if err := api.CreateMockPages(ctx, o.MockPages, o.Pages); err != nil {
			return fmt.Errorf("mock pages: %w", err)
		}
		log.Print("created %d mock pages for %s", o.Pages, o.MockPages)
	}
	if o.ExpireCookie != "" {
		if err := api.ExpireCookie(ctx, o.ExpireCookie); err != nil {
			return fmt.Errorf("expire cookie: %w", err)
		}
		log.Print("expired cookie of %s", o.ExpireCookie)
	}
	if o.ExpireTrial != "" {
		if err := api.ExpireTrial(ctx, o.ExpireTrial); err != nil {
			return fmt.Errorf("expire trial: %w", err)
		}
		log.Print("expired trial of %s", o.ExpireTrial)
	}
	return nil
}

// schedule runs v on every tick of the cron spec until ctx is canceled.
// Ticks arriving while a run is still going are skipped.
func schedule(ctx context.Context, spec string, v *verification, log consoleLog) error {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(spec, func() {
		if err := v.run(ctx); err != nil {
			log.Error("%v", err)
		}
	}); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	c.Start()
	log.Print("verification scheduled %q, next run at %s", spec, c.Entries()[0].Next.Format(time.DateTime))
	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}

// verification is one run of the listing checks over the requested targets.
type verification struct {
	cfg      *config.Config
	api      *testapi.Client
	opts     opts
	notifier *notify.Service
	log      consoleLog
	live     *web.Server // nil unless --serve
}

func (v *verification) run(ctx context.Context) error {
	runID := uuid.NewString()
	started := time.Now()
	v.log.Print("run %s: verifying %s on %s", runID, strings.Join(v.opts.Verify, ", "), v.cfg.DeployURL)
	v.publish(web.NewRunEvent(runID, "run started: "+strings.Join(v.opts.Verify, ", ")))

	browser, err := runner.Launch(runner.BrowserConfig{
		Name:     v.cfg.Browser,
		Headless: v.cfg.Headless,
		SlowMo:   time.Duration(v.cfg.SlowMoMs) * time.Millisecond,
		Timeout:  v.cfg.Timeout(),
		Install:  true,
	})
	if err != nil {
		v.notify(ctx, runID, started, nil, err)
		return err
	}
	defer func() {
		if err := browser.Close(); err != nil {
			v.log.Error("%v", err)
		}
	}()

	checks, runErr := runner.RunSuite(ctx, runner.SuiteConfig{
		Targets:        v.opts.Verify,
		Plan:           runner.Plan{Search: v.opts.Search, SortColumn: v.opts.SortColumn, NextPages: v.opts.NextPages},
		Concurrency:    v.cfg.Concurrency,
		ScreenshotsDir: v.cfg.ScreenshotsDir,
		RunID:          runID,
	}, v.opener(browser))

	report := render.Report{
		RunID:     runID,
		DeployURL: v.cfg.DeployURL,
		Build:     v.cfg.BuildNumber,
		Started:   started,
		Elapsed:   time.Since(started).Round(time.Second).String(),
		Checks:    checks,
	}
	if err := v.writeReport(report); err != nil {
		v.log.Error("%v", err)
	}
	if v.live != nil {
		v.live.SetReport(report)
		v.publish(web.NewRunEvent(runID, fmt.Sprintf("run finished: %d checks, %d failed", len(checks), report.Failed())))
	}
	v.notify(ctx, runID, started, checks, runErr)

	if runErr != nil {
		return runErr
	}
	if n := report.Failed(); n > 0 {
		return fmt.Errorf("%d of %d listing checks failed", n, len(checks))
	}
	return nil
}

// opener logs a fresh test user in on an isolated page for every target.
func (v *verification) opener(browser *runner.Browser) runner.Opener {
	return func(ctx context.Context, target string) (runner.Screen, runner.Logger, func(), error) {
		page, closePage, err := browser.NewPage()
		if err != nil {
			return nil, nil, nil, err
		}
		session := fixture.NewSession(page, v.api, v.cfg.DeployURL, v.cfg.BuildNumber, v.cfg.TestUserPassword)
		user, err := session.LoggedInUser(ctx)
		if err != nil {
			closePage()
			return nil, nil, nil, err
		}
		if target == "cloud" {
			if err := v.api.CreateMockPages(ctx, user.Username, v.opts.Pages); err != nil {
				closePage()
				return nil, nil, nil, err
			}
		}
		screen, err := runner.NewListingScreen(page, target)
		if err != nil {
			closePage()
			return nil, nil, nil, err
		}
		log, err := progress.NewLogger(progress.Config{
			Target:    target,
			DeployURL: v.cfg.DeployURL,
			Build:     v.cfg.BuildNumber,
			Dir:       config.LocalDirName,
			NoColor:   v.opts.NoColor,
		})
		if err != nil {
			closePage()
			return nil, nil, nil, err
		}
		v.log.Debug("%s: logged in as %s, log %s", target, user.Username, log.Path())
		var out runner.Logger = log
		if v.live != nil {
			out = web.NewBroadcastLogger(log, v.live, target)
		}
		return screen, out, func() {
			v.closeTargetLog(target, log)
			closePage()
		}, nil
	}
}

// closeTargetLog prints the check counts of target and closes its progress log.
func (v *verification) closeTargetLog(target string, log *progress.Logger) {
	passed, failed := log.Counts()
	v.log.Print("%s: %d passed, %d failed, log %s", target, passed, failed, log.Path())
	if err := log.Close(); err != nil {
		v.log.Error("%v", err)
	}
}

func (v *verification) publish(e web.Event) {
	if v.live == nil {
		return
	}
	if err := v.live.Publish(e); err != nil {
		v.log.Debug("publish: %v", err)
	}
}

func (v *verification) writeReport(r render.Report) error {
	out, err := r.Render(v.opts.NoColor)
	if err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	fmt.Println(out)
	if v.opts.Report == "" {
		return nil
	}
	if dir := filepath.Dir(v.opts.Report); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create report dir: %w", err)
		}
	}
	if err := os.WriteFile(v.opts.Report, []byte(r.Markdown()), 0o600); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func (v *verification) notify(ctx context.Context, runID string, started time.Time, checks []render.Check, err error) {
	v.notifier.Send(ctx, buildResult(runID, v.cfg, v.opts.Verify, started, checks, err))
}

// buildResult summarizes a run for notification channels.
func buildResult(runID string, cfg *config.Config, targets []string, started time.Time, checks []render.Check, err error) notify.Result {
	res := notify.Result{
		RunID:     runID,
		Status:    notify.StatusPassed,
		DeployURL: cfg.DeployURL,
		Build:     cfg.BuildNumber,
		Targets:   targets,
		Checks:    len(checks),
		Duration:  time.Since(started).Round(time.Second).String(),
	}
	for _, c := range checks {
		if c.Passed {
			continue
		}
		res.Failed++
		if res.Mismatch == "" && c.Diff != "" {
			res.Mismatch = fmt.Sprintf("%s, %s: %s", c.Target, c.Step, firstLine(c.Detail))
		}
	}
	if err != nil {
		res.Error = err.Error()
	}
	if res.Failed > 0 || err != nil {
		res.Status = notify.StatusFailed
	}
	return res
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

// consoleLog prints run level messages, target level output goes through progress loggers.
type consoleLog struct {
	debug bool
}

var (
	consoleInfo  = color.New(color.FgCyan)
	consoleError = color.New(color.FgRed)
	consoleDebug = color.New(color.FgHiBlack)
)

func (consoleLog) Print(format string, args ...any) {
	consoleInfo.Printf(format+"\n", args...)
}

func (consoleLog) Error(format string, args ...any) {
	consoleError.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}

func (l consoleLog) Debug(format string, args ...any) {
	if l.debug {
		consoleDebug.Printf("[debug] "+format+"\n", args...)
	}
}
