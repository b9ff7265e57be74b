package syscall

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/GriffinCanCode/hostbridge/internal/platform"
)

// runWaitDelay bounds how long a killed command may hold its output pipes.
const runWaitDelay = time.Second

// runSpec is a parsed run command.
type runSpec struct {
	line    string
	timeout time.Duration
	paths   map[string]string
}

// parseCommand accepts a plain string or an object keyed by platform name
// with a generic "command" fallback, an optional "timeout" in milliseconds
// and optional "paths" placeholders.
func parseCommand(raw json.RawMessage, keys []string) (*runSpec, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, false
	}

	var line string
	if err := json.Unmarshal(raw, &line); err == nil {
		return &runSpec{line: line}, line != ""
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, false
	}

	spec := &runSpec{}
	for _, key := range append(append([]string{}, keys...), "command") {
		if v, ok := obj[key]; ok {
			if err := json.Unmarshal(v, &spec.line); err == nil && spec.line != "" {
				break
			}
			spec.line = ""
		}
	}
	if spec.line == "" {
		return nil, false
	}

	if v, ok := obj["timeout"]; ok {
		var ms float64
		if err := json.Unmarshal(v, &ms); err == nil && ms > 0 {
			spec.timeout = time.Duration(ms * float64(time.Millisecond))
		}
	}
	if v, ok := obj["paths"]; ok {
		if err := json.Unmarshal(v, &spec.paths); err != nil {
			return nil, false
		}
	}
	return spec, true
}

// substitutePaths replaces every {name} in line with the host path of
// paths[name] in a single pass. Substituted text is never scanned again.
func (d *Dispatcher) substitutePaths(line string, paths map[string]string) (string, bool) {
	if len(paths) == 0 {
		return line, true
	}
	pairs := make([]string, 0, 2*len(paths))
	for _, name := range slices.Sorted(maps.Keys(paths)) {
		hostPath, ok := d.resolvePath(paths[name])
		if !ok {
			return "", false
		}
		pairs = append(pairs, "{"+name+"}", hostPath)
	}
	return strings.NewReplacer(pairs...).Replace(line), true
}

func (d *Dispatcher) run(ctx context.Context, raw json.RawMessage) *Result {
	spec, valid := parseCommand(raw, d.platform.Keys())
	if !valid {
		return fail(StatusIllegalCommand)
	}

	line, valid := d.substitutePaths(spec.line, spec.paths)
	if !valid {
		return fail(StatusIllegalPath)
	}

	timeout := d.runTimeout
	if spec.timeout > 0 {
		timeout = spec.timeout
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := d.platform.Shell(runCtx, line)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = runWaitDelay

	err := cmd.Run()
	out := platform.Output{Stdout: stdout.String(), Stderr: stderr.String()}

	if err != nil {
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("command timed out after %s: %w: %w", timeout, context.DeadlineExceeded, err)
		}
		return failure(err).withOutput(out)
	}
	return ok(StatusOK).withOutput(out)
}
