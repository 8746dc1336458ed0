package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/jessevdk/go-flags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leggera/lg2e2e/pkg/config"
	"github.com/leggera/lg2e2e/pkg/notify"
	"github.com/leggera/lg2e2e/pkg/progress"
	"github.com/leggera/lg2e2e/pkg/render"
	"github.com/leggera/lg2e2e/pkg/testapi"
	"github.com/leggera/lg2e2e/pkg/web"
)

func TestOpts_Parse(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		var o opts
		_, err := flags.NewParser(&o, flags.None).ParseArgs([]string{})
		require.NoError(t, err)
		assert.Equal(t, 3, o.Pages)
		assert.Equal(t, 1, o.NextPages)
		assert.Empty(t, o.Verify)
	})

	t.Run("repeatable targets", func(t *testing.T) {
		var o opts
		args := []string{"--verify", "elements", "--verify", "cloud", "--search", "tri", "--sort-column", "3", "--next-pages", "2"}
		_, err := flags.NewParser(&o, flags.None).ParseArgs(args)
		require.NoError(t, err)
		assert.Equal(t, []string{"elements", "cloud"}, o.Verify)
		assert.Equal(t, "tri", o.Search)
		assert.Equal(t, 3, o.SortColumn)
		assert.Equal(t, 2, o.NextPages)
	})

	t.Run("serve and schedule", func(t *testing.T) {
		var o opts
		_, err := flags.NewParser(&o, flags.None).ParseArgs([]string{"--verify", "elements", "--serve", ":8080", "--schedule", "@hourly"})
		require.NoError(t, err)
		assert.Equal(t, ":8080", o.Serve)
		assert.Equal(t, "@hourly", o.Schedule)
	})

	t.Run("unknown target", func(t *testing.T) {
		var o opts
		_, err := flags.NewParser(&o, flags.None).ParseArgs([]string{"--verify", "dashboard"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "dashboard")
	})
}

func TestRun(t *testing.T) {
	t.Run("install writes the default config", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, run(context.Background(), opts{ConfigDir: dir, Install: true, NoColor: true}))
		data, err := os.ReadFile(filepath.Join(dir, "config"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "deploy_url")
	})

	t.Run("nothing to do", func(t *testing.T) {
		err := run(context.Background(), opts{ConfigDir: t.TempDir(), NoColor: true})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "nothing to do")
	})

	t.Run("invalid config", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config"), []byte("browser = netscape\n"), 0o600))
		err := run(context.Background(), opts{ConfigDir: dir, NoColor: true})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "load config")
	})
}

func TestSeed(t *testing.T) {
	var mu sync.Mutex
	var calls []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls = append(calls, r.URL.Path+"?"+r.URL.RawQuery)
		mu.Unlock()
		if r.URL.Path == "/0/lg2api/tests/createTestUsers.php" {
			_, _ = fmt.Fprint(w, `{"ok":true,"data":["u1","u2"]}`)
			return
		}
		_, _ = fmt.Fprint(w, `{"ok":true}`)
	}))
	defer srv.Close()

	api, err := testapi.New(testapi.Params{DeployURL: srv.URL})
	require.NoError(t, err)

	o := opts{CreateUsers: 2, MockPages: "u1", Pages: 4, ExpireCookie: "u2", ExpireTrial: "anon-7"}
	require.True(t, hasSeedCommand(o))
	require.NoError(t, seed(context.Background(), o, api, consoleLog{}))
	assert.Equal(t, []string{
		"/0/lg2api/tests/createTestUsers.php?echo=true&users=2",
		"/0/lg2api/tests/createMockPage.php?pages=4&user=u1",
		"/0/lg2api/tests/expireCookie.php?user=u2",
		"/0/lg2api/tests/expireTrial.php?user=anon-7",
	}, calls)

	assert.False(t, hasSeedCommand(opts{Pages: 3}))

	srv.Close()
	err = seed(context.Background(), opts{ExpireCookie: "u2"}, api, consoleLog{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expire cookie")
}

func TestSchedule(t *testing.T) {
	t.Run("invalid spec", func(t *testing.T) {
		err := schedule(context.Background(), "every tuesday", &verification{}, consoleLog{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `invalid schedule "every tuesday"`)
	})

	t.Run("stops when canceled", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		require.NoError(t, schedule(ctx, "@every 1h", &verification{}, consoleLog{}))
	})
}

func TestServe(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	live, err := serve(ctx, "127.0.0.1:0", "https://dev.leggera.test", consoleLog{})
	require.NoError(t, err)
	require.NotNil(t, live)

	v := &verification{live: live}
	v.publish(web.NewRunEvent("r1", "run started: elements"))
	rec := httptest.NewRecorder()
	live.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/events", http.NoBody))
	assert.Contains(t, rec.Body.String(), "run started: elements")
	cancel()

	// publishing without a live server is a no-op
	(&verification{}).publish(web.NewRunEvent("r1", "ignored"))
}

func TestCloseTargetLog(t *testing.T) {
	var out bytes.Buffer
	origOut, origNoColor := color.Output, color.NoColor
	color.Output = &out
	t.Cleanup(func() { color.Output, color.NoColor = origOut, origNoColor })

	dir := t.TempDir()
	log, err := progress.NewLogger(progress.Config{Target: "cloud", DeployURL: "https://qa.leggera.dev", Build: "153",
		Dir: dir, NoColor: true})
	require.NoError(t, err)
	path := log.Path()
	log.Pass("default listing")
	log.Pass("next page 1")
	log.Fail("sort by column 2")

	(&verification{}).closeTargetLog("cloud", log)
	assert.Equal(t, fmt.Sprintf("cloud: 2 passed, 1 failed, log %s\n", path), out.String())
	assert.Empty(t, log.Path(), "log closed")
	assert.Equal(t, filepath.Join(dir, "lg2e2e-cloud.txt"), path)
}

func TestBuildResult(t *testing.T) {
	cfg := &config.Config{Values: config.Values{DeployURL: "https://qa.leggera.dev", BuildNumber: "153"}}
	started := time.Now().Add(-2 * time.Second)

	t.Run("passed", func(t *testing.T) {
		checks := []render.Check{{Target: "elements", Step: "default listing", Passed: true}}
		res := buildResult("run-1", cfg, []string{"elements"}, started, checks, nil)
		assert.Equal(t, notify.StatusPassed, res.Status)
		assert.Equal(t, "run-1", res.RunID)
		assert.Equal(t, "153", res.Build)
		assert.Equal(t, 1, res.Checks)
		assert.Zero(t, res.Failed)
		assert.Empty(t, res.Mismatch)
		assert.Equal(t, "2s", res.Duration)
	})

	t.Run("mismatch", func(t *testing.T) {
		checks := []render.Check{
			{Target: "elements", Step: "default listing", Passed: true},
			{Target: "elements", Step: "next page 1", Detail: "listing mismatch: row 1\n\nscreenshot: x.png", Diff: "-a\n+b"},
			{Target: "cloud", Step: "open", Detail: "login failed"},
		}
		res := buildResult("run-2", cfg, []string{"elements", "cloud"}, started, checks, errors.New("open cloud: login failed"))
		assert.Equal(t, notify.StatusFailed, res.Status)
		assert.Equal(t, 2, res.Failed)
		assert.Equal(t, "elements, next page 1: listing mismatch: row 1", res.Mismatch)
		assert.Equal(t, "open cloud: login failed", res.Error)
	})

	t.Run("error without checks", func(t *testing.T) {
		res := buildResult("run-3", cfg, []string{"elements"}, started, nil, errors.New("launch chromium: no display"))
		assert.Equal(t, notify.StatusFailed, res.Status)
		assert.Zero(t, res.Checks)
	})
}
