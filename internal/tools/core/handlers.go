package core

import (
	"context"

	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/registry"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/tools/common"
)

type handlers struct {
	deps common.Deps
}

func (h *handlers) getNamespaces(ctx context.Context, in registry.Input) (*registry.Result, error) {
	args := []string{"get", "namespaces", "-o", "json"}
	args = common.WithContextArgs(args, h.deps.KubeContext(in))
	return h.deps.RunKubectl(ctx, args, readTimeout, true), nil
}

func (h *handlers) list(ctx context.Context, in registry.Input, resource string) (*registry.Result, error) {
	args := []string{"get", resource, "-o", "json"}
	args = common.WithNamespaceArgs(args, h.deps.Namespace(in))
	args = common.WithContextArgs(args, h.deps.KubeContext(in))
	return h.deps.RunKubectl(ctx, args, readTimeout, true), nil
}

func (h *handlers) getConfigMaps(ctx context.Context, in registry.Input) (*registry.Result, error) {
	return h.list(ctx, in, "configmaps")
}

// getSecrets returns Secret objects as-is; the dispatcher's finishToolResult
// step runs secretmask.MaskAny over every successful result, which blanks
// data/stringData before the response leaves the process.
func (h *handlers) getSecrets(ctx context.Context, in registry.Input) (*registry.Result, error) {
	return h.list(ctx, in, "secrets")
}

func (h *handlers) getEvents(ctx context.Context, in registry.Input) (*registry.Result, error) {
	return h.list(ctx, in, "events")
}

func (h *handlers) getResourceQuotas(ctx context.Context, in registry.Input) (*registry.Result, error) {
	return h.list(ctx, in, "resourcequotas")
}

func (h *handlers) getLimitRanges(ctx context.Context, in registry.Input) (*registry.Result, error) {
	return h.list(ctx, in, "limitranges")
}
