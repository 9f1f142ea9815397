// Package runner implements the uniform subprocess invocation used by every
// handler that shells out to kubectl, helm, or kind (spec §4.4). Arguments
// are always passed as an argv vector, never a shell string, following
// original_source/kubectl_mcp_tool/tools/kind.py's _run_kind pattern.
package runner

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Default timeouts, spec §4.4.
const (
	DefaultReadTimeout      = 30 * time.Second
	DefaultMutatingTimeout  = 300 * time.Second
	DefaultLogReadTimeout   = 60 * time.Second
	DefaultKindCreateTimeout = 600 * time.Second
	DefaultKindBuildTimeout  = 1800 * time.Second
)

// Binary names the runner knows how to invoke.
type Binary string

const (
	Kubectl Binary = "kubectl"
	Helm    Binary = "helm"
	Kind    Binary = "kind"
	Docker  Binary = "docker"
)

// Result is the outcome of a single subprocess invocation.
type Result struct {
	Success  bool
	Output   string
	Error    string
	ExitCode int
}

// Runner invokes kubectl/helm/kind with a shared rate limiter and an
// availability/version cache, per spec §4.4 and the rate-limiting expansion
// in SPEC_FULL.md's C4 section.
type Runner struct {
	limiter *rate.Limiter

	mu        sync.Mutex
	available map[Binary]bool
	versions  map[Binary]string

	// execCommandContext is overridable in tests.
	execCommandContext func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// New creates a Runner. qps/burst of 0 disables rate limiting (unlimited).
func New(qps float64, burst int) *Runner {
	var limiter *rate.Limiter
	if qps > 0 {
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(qps), burst)
	}
	return &Runner{
		limiter:            limiter,
		available:          make(map[Binary]bool),
		versions:           make(map[Binary]string),
		execCommandContext: exec.CommandContext,
	}
}

// SetExecCommandContextForTest overrides the subprocess constructor. Exported
// only so other packages' tests can exercise Deps without a real kubectl/helm/
// kind/docker binary on PATH; production code always uses exec.CommandContext.
func (r *Runner) SetExecCommandContextForTest(fn func(ctx context.Context, name string, args ...string) *exec.Cmd) {
	r.execCommandContext = fn
}

// SetAvailableForTest primes the availability cache, bypassing the PATH check.
func (r *Runner) SetAvailableForTest(binary Binary, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.available[binary] = ok
}

// Available reports whether binary is on PATH, caching the result.
func (r *Runner) Available(binary Binary) bool {
	r.mu.Lock()
	if v, ok := r.available[binary]; ok {
		r.mu.Unlock()
		return v
	}
	r.mu.Unlock()

	_, err := exec.LookPath(string(binary))
	ok := err == nil

	r.mu.Lock()
	r.available[binary] = ok
	r.mu.Unlock()
	return ok
}

// Version returns the cached `<binary> version` output, or "" if unavailable.
func (r *Runner) Version(ctx context.Context, binary Binary) string {
	r.mu.Lock()
	if v, ok := r.versions[binary]; ok {
		r.mu.Unlock()
		return v
	}
	r.mu.Unlock()

	if !r.Available(binary) {
		return ""
	}

	var args []string
	switch binary {
	case Kubectl:
		args = []string{"version", "--client", "-o", "yaml"}
	case Helm:
		args = []string{"version", "--short"}
	case Kind:
		args = []string{"version"}
	case Docker:
		args = []string{"version", "--format", "{{.Server.Version}}"}
	}

	res := r.Run(ctx, binary, args, 10*time.Second, true)
	version := ""
	if res.Success {
		version = res.Output
	}

	r.mu.Lock()
	r.versions[binary] = version
	r.mu.Unlock()
	return version
}

// Run invokes binary with args, capturing stdout/stderr separately and
// enforcing timeout. Non-zero exit populates Error with trimmed stderr.
func (r *Runner) Run(ctx context.Context, binary Binary, args []string, timeout time.Duration, captureOutput bool) *Result {
	return r.run(ctx, binary, args, timeout, captureOutput, "")
}

// RunWithStdin is Run, additionally piping stdin to the subprocess — used by
// handlers that feed rendered manifests to `kubectl apply -f -`.
func (r *Runner) RunWithStdin(ctx context.Context, binary Binary, args []string, timeout time.Duration, stdin string) *Result {
	return r.run(ctx, binary, args, timeout, true, stdin)
}

func (r *Runner) run(ctx context.Context, binary Binary, args []string, timeout time.Duration, captureOutput bool, stdin string) *Result {
	if !r.Available(binary) {
		return &Result{
			Success: false,
			Error:   fmt.Sprintf("%s: command not found on PATH", binary),
		}
	}

	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			return &Result{Success: false, Error: fmt.Sprintf("rate limit wait: %v", err)}
		}
	}

	runCtx := ctx
	var cancel context.CancelFunc
	if timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := r.execCommandContext(runCtx, string(binary), args...)

	var stdout, stderr bytes.Buffer
	if captureOutput {
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	}
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}

	err := cmd.Run()

	if runCtx.Err() == context.DeadlineExceeded {
		return &Result{
			Success: false,
			Error:   fmt.Sprintf("Command timed out after %d seconds", int(timeout.Seconds())),
		}
	}

	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			return &Result{Success: false, Error: err.Error()}
		}
	}

	if exitCode != 0 {
		return &Result{
			Success:  false,
			Error:    trimTrailingNewline(stderr.String()),
			ExitCode: exitCode,
			Output:   stdout.String(),
		}
	}

	return &Result{Success: true, Output: stdout.String(), ExitCode: 0}
}

func trimTrailingNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}

// CommandLine reproduces a human-readable invocation for ToolResult.Command.
func CommandLine(binary Binary, args []string) string {
	line := string(binary)
	for _, a := range args {
		line += " " + a
	}
	return line
}
