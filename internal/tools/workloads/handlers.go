package workloads

import (
	"context"
	"fmt"

	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/registry"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/tools/common"
)

type handlers struct {
	deps common.Deps
}

func (h *handlers) list(ctx context.Context, in registry.Input, resource string) (*registry.Result, error) {
	args := []string{"get", resource, "-o", "json"}
	args = common.WithNamespaceArgs(args, h.deps.Namespace(in))
	args = common.WithContextArgs(args, h.deps.KubeContext(in))
	return h.deps.RunKubectl(ctx, args, readTimeout, true), nil
}

func (h *handlers) getDeployments(ctx context.Context, in registry.Input) (*registry.Result, error) {
	return h.list(ctx, in, "deployments")
}

func (h *handlers) getStatefulSets(ctx context.Context, in registry.Input) (*registry.Result, error) {
	return h.list(ctx, in, "statefulsets")
}

func (h *handlers) getDaemonSets(ctx context.Context, in registry.Input) (*registry.Result, error) {
	return h.list(ctx, in, "daemonsets")
}

func (h *handlers) getReplicaSets(ctx context.Context, in registry.Input) (*registry.Result, error) {
	return h.list(ctx, in, "replicasets")
}

func (h *handlers) getJobs(ctx context.Context, in registry.Input) (*registry.Result, error) {
	return h.list(ctx, in, "jobs")
}

func (h *handlers) getCronJobs(ctx context.Context, in registry.Input) (*registry.Result, error) {
	return h.list(ctx, in, "cronjobs")
}

func (h *handlers) getHPAs(ctx context.Context, in registry.Input) (*registry.Result, error) {
	return h.list(ctx, in, "horizontalpodautoscalers")
}

func (h *handlers) getPDBs(ctx context.Context, in registry.Input) (*registry.Result, error) {
	return h.list(ctx, in, "poddisruptionbudgets")
}

func (h *handlers) createDeployment(ctx context.Context, in registry.Input) (*registry.Result, error) {
	name := in.String("name", "")
	image := in.String("image", "")
	args := []string{"create", "deployment", name, "--image", image}
	args = common.WithNamespaceArgs(args, h.deps.Namespace(in))
	args = common.WithContextArgs(args, h.deps.KubeContext(in))
	if replicas := in.Int("replicas", 1); replicas > 0 {
		args = append(args, "--replicas", fmt.Sprintf("%d", replicas))
	}
	if port := in.Int("port", 0); port > 0 {
		args = append(args, "--port", fmt.Sprintf("%d", port))
	}
	return h.deps.RunKubectl(ctx, args, mutatingTimeout, false), nil
}

func (h *handlers) scaleDeployment(ctx context.Context, in registry.Input) (*registry.Result, error) {
	name := in.String("name", "")
	args := []string{"scale", "deployment", name, "--replicas", fmt.Sprintf("%d", in.Int("replicas", 1))}
	args = common.WithNamespaceArgs(args, h.deps.Namespace(in))
	args = common.WithContextArgs(args, h.deps.KubeContext(in))
	return h.deps.RunKubectl(ctx, args, mutatingTimeout, false), nil
}

func (h *handlers) restartDeployment(ctx context.Context, in registry.Input) (*registry.Result, error) {
	name := in.String("name", "")
	args := []string{"rollout", "restart", "deployment", name}
	args = common.WithNamespaceArgs(args, h.deps.Namespace(in))
	args = common.WithContextArgs(args, h.deps.KubeContext(in))
	return h.deps.RunKubectl(ctx, args, mutatingTimeout, false), nil
}
