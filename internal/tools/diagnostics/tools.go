// Package diagnostics implements the diagnostics category (spec §4.8
// "Diagnostics"): namespace comparison and the metrics-server-backed pod and
// node usage tools.
package diagnostics

import (
	"context"

	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/registry"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/runner"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/tools/common"
)

type handlers struct {
	deps common.Deps
}

func Register(reg *registry.Registry, deps common.Deps) {
	h := &handlers{deps: deps}

	reg.MustRegister(registry.Descriptor{
		Name: "compare_namespaces", Category: registry.CategoryDiagnostics,
		Description: "Compare resource counts between two namespaces.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Compare Namespaces"},
		Params: []registry.Param{
			ctxParam(),
			{Name: "namespaceA", Type: registry.TypeString, Required: true, Description: "First namespace."},
			{Name: "namespaceB", Type: registry.TypeString, Required: true, Description: "Second namespace."},
		},
		Handler: h.compareNamespaces,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "get_pod_metrics", Category: registry.CategoryDiagnostics,
		Description: "Show CPU/memory usage for pods in a namespace (requires metrics-server).",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Get Pod Metrics"},
		Params:      []registry.Param{nsParam(), ctxParam()},
		Handler:     h.getPodMetrics,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "get_node_metrics", Category: registry.CategoryDiagnostics,
		Description: "Show CPU/memory usage for nodes (requires metrics-server).",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Get Node Metrics"},
		Params:      []registry.Param{ctxParam()},
		Handler:     h.getNodeMetrics,
	})
}

func (h *handlers) compareNamespaces(ctx context.Context, in registry.Input) (*registry.Result, error) {
	a := in.String("namespaceA", "")
	b := in.String("namespaceB", "")
	kubeContext := h.deps.KubeContext(in)

	countA, cmdA, errA := h.countResources(ctx, a, kubeContext)
	if errA != nil {
		return errA, nil
	}
	countB, cmdB, errB := h.countResources(ctx, b, kubeContext)
	if errB != nil {
		return errB, nil
	}

	return registry.Ok(map[string]interface{}{
		"namespaceA": a,
		"namespaceB": b,
		"countsA":    countA,
		"countsB":    countB,
	}, cmdA+"; "+cmdB), nil
}

func (h *handlers) countResources(ctx context.Context, namespace, kubeContext string) (map[string]int, string, *registry.Result) {
	counts := map[string]int{}
	var lastCommand string
	for _, resource := range []string{"pods", "deployments", "services", "configmaps", "secrets"} {
		args := []string{"get", resource, "-n", namespace, "-o", "json"}
		args = common.WithContextArgs(args, kubeContext)
		res := h.deps.RunKubectl(ctx, args, readTimeout, true)
		lastCommand = res.Command
		if !res.Success {
			return nil, "", res
		}
		list, _ := res.Result.(map[string]interface{})
		items, _ := list["items"].([]interface{})
		counts[resource] = len(items)
	}
	return counts, lastCommand, nil
}

// kubectl top does not support `-o json`; results are parsed from its
// column-formatted text client-side would be brittle, so callers receive
// the raw table output.
func (h *handlers) getPodMetrics(ctx context.Context, in registry.Input) (*registry.Result, error) {
	args := []string{"top", "pods"}
	args = common.WithNamespaceArgs(args, h.deps.Namespace(in))
	args = common.WithContextArgs(args, h.deps.KubeContext(in))
	return h.deps.RunKubectl(ctx, args, readTimeout, false), nil
}

func (h *handlers) getNodeMetrics(ctx context.Context, in registry.Input) (*registry.Result, error) {
	args := []string{"top", "nodes"}
	args = common.WithContextArgs(args, h.deps.KubeContext(in))
	return h.deps.RunKubectl(ctx, args, readTimeout, false), nil
}

func nsParam() registry.Param {
	return registry.Param{Name: "namespace", Type: registry.TypeString, Description: "Target namespace; defaults to the server's configured default."}
}

func ctxParam() registry.Param {
	return registry.Param{Name: "kubeContext", Type: registry.TypeString, Description: "Kubernetes context to use; defaults to the current context."}
}

const readTimeout = runner.DefaultReadTimeout
