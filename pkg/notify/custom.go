package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// scriptHook runs notify_custom_script for every delivered run.
// The script is called as `script <status> <run_id>`, gets the run summary in LG2E2E_* environment
// variables and the full json Result on stdin, so simple hooks need no json parsing.
type scriptHook struct {
	path string
}

func newScriptHook(path string) *scriptHook {
	return &scriptHook{path: path}
}

// env returns the LG2E2E_* variables describing r.
func (h *scriptHook) env(r Result) []string {
	vars := map[string]string{
		"RUN_ID":     r.RunID,
		"STATUS":     r.Status,
		"DEPLOY_URL": r.DeployURL,
		"BUILD":      r.Build,
		"TARGETS":    strings.Join(r.Targets, ","),
		"CHECKS":     strconv.Itoa(r.Checks),
		"FAILED":     strconv.Itoa(r.Failed),
		"DURATION":   r.Duration,
		"MISMATCH":   r.Mismatch,
		"ERROR":      r.Error,
	}
	res := make([]string, 0, len(vars))
	for k, v := range vars {
		res = append(res, "LG2E2E_"+k+"="+v)
	}
	return res
}

func (h *scriptHook) run(ctx context.Context, r Result) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	cmd := exec.CommandContext(ctx, h.path, r.Status, r.RunID) //nolint:gosec // script path comes from user config
	cmd.Env = append(os.Environ(), h.env(r)...)
	cmd.Stdin = bytes.NewReader(payload)
	cmd.WaitDelay = time.Second // children of a killed script may hold the output pipe
	out, err := cmd.CombinedOutput()
	if err == nil {
		return nil
	}
	if tail := lastLine(out); tail != "" {
		return fmt.Errorf("hook %s for run %s: %w: %s", h.path, r.RunID, err, tail)
	}
	return fmt.Errorf("hook %s for run %s: %w", h.path, r.RunID, err)
}

// lastLine returns the last non-empty line of a script output.
func lastLine(out []byte) string {
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
