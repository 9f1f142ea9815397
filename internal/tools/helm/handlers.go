package helm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/registry"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/tools/common"
)

type handlers struct {
	deps common.Deps
}

// subcommandsWithJSONOutput lists the `helm get/status/history` subcommands
// that support `-o json`; `get manifest/notes/hooks` only emit raw text.
var subcommandsWithJSONOutput = map[string]bool{
	"status":    true,
	"history":   true,
	"get values": true,
	"get all":    true,
}

// releaseRead builds a handler for a `helm <subcommand> <release>` read-only
// call, shared by helm_status/history/get-*.
func (h *handlers) releaseRead(subcommand string) registry.Handler {
	parseJSON := subcommandsWithJSONOutput[subcommand]
	return func(ctx context.Context, in registry.Input) (*registry.Result, error) {
		release := in.String("release", "")
		args := append(strings.Split(subcommand, " "), release)
		if parseJSON {
			args = append(args, "-o", "json")
		}
		args = common.WithNamespaceArgs(args, h.deps.Namespace(in))
		args = common.WithContextArgs(args, h.deps.KubeContext(in))
		return h.deps.RunHelm(ctx, args, readTimeout, parseJSON), nil
	}
}

// chartRead builds a handler for a `helm <subcommand> <chart>` call that
// operates on a chart reference rather than an installed release.
func (h *handlers) chartRead(subcommand string) registry.Handler {
	return func(ctx context.Context, in registry.Input) (*registry.Result, error) {
		chart := in.String("chart", "")
		args := append(strings.Split(subcommand, " "), chart)
		return h.deps.RunHelm(ctx, args, readTimeout, false), nil
	}
}

func (h *handlers) searchRepo(ctx context.Context, in registry.Input) (*registry.Result, error) {
	args := []string{"search", "repo", in.String("keyword", ""), "-o", "json"}
	return h.deps.RunHelm(ctx, args, readTimeout, true), nil
}

func (h *handlers) searchHub(ctx context.Context, in registry.Input) (*registry.Result, error) {
	args := []string{"search", "hub", in.String("keyword", ""), "-o", "json"}
	return h.deps.RunHelm(ctx, args, readTimeout, true), nil
}

func (h *handlers) repoList(ctx context.Context, in registry.Input) (*registry.Result, error) {
	return h.deps.RunHelm(ctx, []string{"repo", "list", "-o", "json"}, readTimeout, true), nil
}

func (h *handlers) repoAdd(ctx context.Context, in registry.Input) (*registry.Result, error) {
	args := []string{"repo", "add", in.String("name", ""), in.String("url", "")}
	return h.deps.RunHelm(ctx, args, mutatingTimeout, false), nil
}

func (h *handlers) repoRemove(ctx context.Context, in registry.Input) (*registry.Result, error) {
	args := []string{"repo", "remove", in.String("name", "")}
	return h.deps.RunHelm(ctx, args, mutatingTimeout, false), nil
}

func (h *handlers) repoUpdate(ctx context.Context, in registry.Input) (*registry.Result, error) {
	return h.deps.RunHelm(ctx, []string{"repo", "update"}, mutatingTimeout, false), nil
}

func (h *handlers) install(ctx context.Context, in registry.Input) (*registry.Result, error) {
	args := []string{"install", in.String("release", ""), in.String("chart", "")}
	args = common.WithNamespaceArgs(args, h.deps.Namespace(in))
	args = common.WithContextArgs(args, h.deps.KubeContext(in))
	if in.Bool("createNamespace", false) {
		args = append(args, "--create-namespace")
	}
	args = append(args, valueFlags(in)...)
	args = append(args, "-o", "json")
	return h.deps.RunHelm(ctx, args, mutatingTimeout, true), nil
}

func (h *handlers) upgrade(ctx context.Context, in registry.Input) (*registry.Result, error) {
	args := []string{"upgrade", in.String("release", ""), in.String("chart", "")}
	args = common.WithNamespaceArgs(args, h.deps.Namespace(in))
	args = common.WithContextArgs(args, h.deps.KubeContext(in))
	if in.Bool("install", false) {
		args = append(args, "--install")
	}
	args = append(args, valueFlags(in)...)
	args = append(args, "-o", "json")
	return h.deps.RunHelm(ctx, args, mutatingTimeout, true), nil
}

func (h *handlers) uninstall(ctx context.Context, in registry.Input) (*registry.Result, error) {
	args := []string{"uninstall", in.String("release", "")}
	args = common.WithNamespaceArgs(args, h.deps.Namespace(in))
	args = common.WithContextArgs(args, h.deps.KubeContext(in))
	return h.deps.RunHelm(ctx, args, mutatingTimeout, false), nil
}

func (h *handlers) rollback(ctx context.Context, in registry.Input) (*registry.Result, error) {
	args := []string{"rollback", in.String("release", "")}
	if rev := in.Int("revision", 0); rev > 0 {
		args = append(args, fmt.Sprintf("%d", rev))
	}
	args = common.WithNamespaceArgs(args, h.deps.Namespace(in))
	args = common.WithContextArgs(args, h.deps.KubeContext(in))
	return h.deps.RunHelm(ctx, args, mutatingTimeout, false), nil
}

func (h *handlers) test(ctx context.Context, in registry.Input) (*registry.Result, error) {
	args := []string{"test", in.String("release", "")}
	args = common.WithNamespaceArgs(args, h.deps.Namespace(in))
	args = common.WithContextArgs(args, h.deps.KubeContext(in))
	return h.deps.RunHelm(ctx, args, mutatingTimeout, false), nil
}

func (h *handlers) template(ctx context.Context, in registry.Input) (*registry.Result, error) {
	args := []string{"template", in.String("release", ""), in.String("chart", "")}
	args = common.WithNamespaceArgs(args, h.deps.Namespace(in))
	args = append(args, valueFlags(in)...)
	return h.deps.RunHelm(ctx, args, readTimeout, false), nil
}

// templateApply renders a chart, then pipes the rendered manifest to
// `kubectl apply -f -` via stdin — two subprocess invocations chained
// through the runner rather than a shell pipeline.
func (h *handlers) templateApply(ctx context.Context, in registry.Input) (*registry.Result, error) {
	args := []string{"template", in.String("release", ""), in.String("chart", "")}
	args = common.WithNamespaceArgs(args, h.deps.Namespace(in))
	args = append(args, valueFlags(in)...)
	rendered := h.deps.RunHelm(ctx, args, readTimeout, false)
	if !rendered.Success {
		return rendered, nil
	}

	manifest, _ := rendered.Result.(string)
	applyArgs := []string{"apply", "-f", "-"}
	applyArgs = common.WithNamespaceArgs(applyArgs, h.deps.Namespace(in))
	applyArgs = common.WithContextArgs(applyArgs, h.deps.KubeContext(in))
	return h.deps.RunKubectlWithStdin(ctx, applyArgs, mutatingTimeout, manifest), nil
}

func (h *handlers) create(ctx context.Context, in registry.Input) (*registry.Result, error) {
	return h.deps.RunHelm(ctx, []string{"create", in.String("name", "")}, mutatingTimeout, false), nil
}

func (h *handlers) lint(ctx context.Context, in registry.Input) (*registry.Result, error) {
	return h.deps.RunHelm(ctx, []string{"lint", in.String("chart", "")}, readTimeout, false), nil
}

func (h *handlers) pkg(ctx context.Context, in registry.Input) (*registry.Result, error) {
	return h.deps.RunHelm(ctx, []string{"package", in.String("chart", "")}, mutatingTimeout, false), nil
}

func (h *handlers) pull(ctx context.Context, in registry.Input) (*registry.Result, error) {
	args := []string{"pull", in.String("chart", "")}
	if in.Bool("untar", false) {
		args = append(args, "--untar")
	}
	return h.deps.RunHelm(ctx, args, mutatingTimeout, false), nil
}

func (h *handlers) dependencyList(ctx context.Context, in registry.Input) (*registry.Result, error) {
	return h.deps.RunHelm(ctx, []string{"dependency", "list", in.String("chart", "")}, readTimeout, false), nil
}

func (h *handlers) dependencyUpdate(ctx context.Context, in registry.Input) (*registry.Result, error) {
	return h.deps.RunHelm(ctx, []string{"dependency", "update", in.String("chart", "")}, mutatingTimeout, false), nil
}

func (h *handlers) dependencyBuild(ctx context.Context, in registry.Input) (*registry.Result, error) {
	return h.deps.RunHelm(ctx, []string{"dependency", "build", in.String("chart", "")}, mutatingTimeout, false), nil
}

func (h *handlers) version(ctx context.Context, in registry.Input) (*registry.Result, error) {
	return h.deps.RunHelm(ctx, []string{"version", "--short"}, readTimeout, false), nil
}

func (h *handlers) env(ctx context.Context, in registry.Input) (*registry.Result, error) {
	return h.deps.RunHelm(ctx, []string{"env"}, readTimeout, false), nil
}

// valueFlags turns the optional "values" JSON object parameter into
// `--set-json key=<json>` flags, one per top-level key, so install/upgrade
// never need a values file on disk.
func valueFlags(in registry.Input) []string {
	raw, ok := in["values"]
	if !ok {
		return nil
	}
	values, ok := raw.(map[string]interface{})
	if !ok {
		return nil
	}
	var flags []string
	for k, v := range values {
		encoded, err := json.Marshal(v)
		if err != nil {
			continue
		}
		flags = append(flags, "--set-json", fmt.Sprintf("%s=%s", k, string(encoded)))
	}
	return flags
}
