// Package common provides the shared dependencies and helper functions every
// tool-category package binds its handlers against: the provider (for typed
// client-go access), the subprocess runner (for kubectl/helm/kind), the
// safety-aware namespace default, and JSON/kubectl argv plumbing. This is the
// "uniform handler contract" infrastructure referenced by spec §4.8 — the
// per-tool handlers themselves stay a few lines each by calling into it.
package common

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-logr/logr"

	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/provider"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/registry"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/runner"
)

// Defaults holds the process's mutable "current" namespace and context,
// set via the cluster category's set_default_namespace / switch_context
// tools (spec §4.8 "Cluster / contexts") and consulted by every other
// category's namespace/context resolution. A single instance is shared
// across every Deps value the server constructs.
type Defaults struct {
	mu        sync.RWMutex
	namespace string
	context   string
}

// NewDefaults seeds a Defaults from the server's static configuration.
func NewDefaults(namespace string) *Defaults {
	return &Defaults{namespace: namespace}
}

func (d *Defaults) Namespace() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.namespace
}

func (d *Defaults) SetNamespace(ns string) {
	d.mu.Lock()
	d.namespace = ns
	d.mu.Unlock()
}

func (d *Defaults) Context() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.context
}

func (d *Defaults) SetContext(name string) {
	d.mu.Lock()
	d.context = name
	d.mu.Unlock()
}

// Deps bundles everything a category package's handlers need. Passed by
// value (small struct of pointers) to each category's Register function.
type Deps struct {
	Provider         *provider.Provider
	Runner           *runner.Runner
	Log              logr.Logger
	DefaultNamespace string
	Defaults         *Defaults
}

// Namespace resolves the effective namespace for a call: explicit input
// value, else the process-wide default set by set_default_namespace, else
// the server's configured default, else "default".
func (d Deps) Namespace(in registry.Input) string {
	if ns := in.String("namespace", ""); ns != "" {
		return ns
	}
	if d.Defaults != nil {
		if ns := d.Defaults.Namespace(); ns != "" {
			return ns
		}
	}
	if d.DefaultNamespace != "" {
		return d.DefaultNamespace
	}
	return "default"
}

// KubeContext resolves the optional kubeContext parameter: explicit input
// value, else the process-wide default set by switch_context, else "" (the
// provider's current/in-cluster sentinel, spec §3 ClusterContext).
func (d Deps) KubeContext(in registry.Input) string {
	if c := in.String("kubeContext", ""); c != "" {
		return c
	}
	if d.Defaults != nil {
		return d.Defaults.Context()
	}
	return ""
}

// RunKubectl shells out to kubectl with args, mapping the runner.Result into
// a registry.Result. On success, out is parsed as JSON when parseJSON is true
// (for "-o json" invocations); otherwise Output is returned as a raw string.
func (d Deps) RunKubectl(ctx context.Context, args []string, timeout time.Duration, parseJSON bool) *registry.Result {
	return d.run(ctx, runner.Kubectl, args, timeout, parseJSON)
}

// RunHelm shells out to helm.
func (d Deps) RunHelm(ctx context.Context, args []string, timeout time.Duration, parseJSON bool) *registry.Result {
	return d.run(ctx, runner.Helm, args, timeout, parseJSON)
}

// RunKind shells out to kind.
func (d Deps) RunKind(ctx context.Context, args []string, timeout time.Duration, parseJSON bool) *registry.Result {
	return d.run(ctx, runner.Kind, args, timeout, parseJSON)
}

// RunDocker shells out to docker. Used only by the kind category, to inspect
// node container labels (kind itself has no equivalent introspection command).
func (d Deps) RunDocker(ctx context.Context, args []string, timeout time.Duration, parseJSON bool) *registry.Result {
	return d.run(ctx, runner.Docker, args, timeout, parseJSON)
}

// RunKubectlWithStdin shells out to kubectl piping stdin, for handlers like
// helm_template_apply that feed generated manifests to `kubectl apply -f -`.
func (d Deps) RunKubectlWithStdin(ctx context.Context, args []string, timeout time.Duration, stdin string) *registry.Result {
	res := d.Runner.RunWithStdin(ctx, runner.Kubectl, args, timeout, stdin)
	return d.classify(runner.Kubectl, args, res, false)
}

func (d Deps) run(ctx context.Context, binary runner.Binary, args []string, timeout time.Duration, parseJSON bool) *registry.Result {
	res := d.Runner.Run(ctx, binary, args, timeout, true)
	return d.classify(binary, args, res, parseJSON)
}

func (d Deps) classify(binary runner.Binary, args []string, res *runner.Result, parseJSON bool) *registry.Result {
	command := runner.CommandLine(binary, args)

	if !res.Success {
		kind := registry.ErrorKindAPI
		switch {
		case res.Error == fmt.Sprintf("%s: command not found on PATH", binary):
			kind = registry.ErrorKindUnavailable
		case res.ExitCode == 0 && res.Error != "":
			// runner distinguishes timeouts by leaving ExitCode 0 with the
			// "Command timed out" message; classify those explicitly.
			if isTimeoutMessage(res.Error) {
				kind = registry.ErrorKindTimeout
			}
		}
		return &registry.Result{Success: false, Error: res.Error, ErrorKind: kind, Command: command}
	}

	if !parseJSON {
		return &registry.Result{Success: true, Result: res.Output, Command: command}
	}

	var parsed interface{}
	if err := json.Unmarshal([]byte(res.Output), &parsed); err != nil {
		// Not every "successful" read has JSON output (e.g. plain kubectl
		// describe); fall back to the raw string rather than failing the call.
		return &registry.Result{Success: true, Result: res.Output, Command: command}
	}
	return &registry.Result{Success: true, Result: parsed, Command: command}
}

func isTimeoutMessage(s string) bool {
	return len(s) >= len("Command timed out") && s[:len("Command timed out")] == "Command timed out"
}

// WithNamespaceArgs appends "-n <namespace>" unless namespace is "" or the
// sentinel "all" (callers pass "--all-namespaces" separately for that case).
func WithNamespaceArgs(args []string, namespace string) []string {
	if namespace == "" || namespace == "all" {
		return args
	}
	return append(args, "-n", namespace)
}

// WithContextArgs appends "--context <name>" when kubeContext is non-empty.
func WithContextArgs(args []string, kubeContext string) []string {
	if kubeContext == "" {
		return args
	}
	return append(args, "--context", kubeContext)
}
