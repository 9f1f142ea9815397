// Package cost implements the cost category (spec §4.8 "Cost"): resource
// request/usage heuristics derived from kubectl and metrics-server data.
// There is no billing API wired in (no cloud SDK survived the dependency
// trim — see DESIGN.md), so every figure here is a resource-unit estimate,
// not a currency amount.
package cost

import (
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
		Name: "recommend_resource_requests", Category: registry.CategoryCost,
		Description: "Recommend CPU/memory requests for pods as 120% of their current requests; observed usage is not consulted.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Recommend Resource Requests"},
		Params:      []registry.Param{nsParam(), ctxParam()},
		Handler:     h.recommendResourceRequests,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "get_idle_resources", Category: registry.CategoryCost,
		Description: "Show current pod CPU/memory usage (kubectl top) for comparison against requests; idle workloads are not identified automatically.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Get Idle Resources"},
		Params:      []registry.Param{nsParam(), ctxParam()},
		Handler:     h.getIdleResources,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "get_quota_usage", Category: registry.CategoryCost,
		Description: "Show ResourceQuota usage versus hard limits for a namespace.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Get Quota Usage"},
		Params:      []registry.Param{nsParam(), ctxParam()},
		Handler:     h.getQuotaUsage,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "analyze_cost", Category: registry.CategoryCost,
		Description: "Estimate relative resource cost share per workload from requested CPU/memory.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Analyze Cost"},
		Params:      []registry.Param{nsParam(), ctxParam()},
		Handler:     h.analyzeCost,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "get_overprovisioned_resources", Category: registry.CategoryCost,
		Description: "Return pod requests alongside current usage (kubectl top) for comparison; workloads are not filtered by how far requests exceed usage.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Get Overprovisioned Resources"},
		Params:      []registry.Param{nsParam(), ctxParam()},
		Handler:     h.getOverprovisionedResources,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "get_cost_trends", Category: registry.CategoryCost,
		Description: "List Deployments in a namespace with creation time and replica count; no history of requested CPU/memory is kept.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Get Cost Trends"},
		Params:      []registry.Param{nsParam(), ctxParam()},
		Handler:     h.getCostTrends,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "get_namespace_allocation", Category: registry.CategoryCost,
		Description: "Show total requested CPU/memory per namespace across the cluster.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Get Namespace Allocation"},
		Params:      []registry.Param{ctxParam()},
		Handler:     h.getNamespaceAllocation,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "optimize_resource_requests", Category: registry.CategoryCost,
		Description: "Patch a Deployment's container resource requests to match recommended values.",
		Annotations: registry.Annotations{Title: "Optimize Resource Requests"},
		Params: []registry.Param{
			nsParam(), ctxParam(),
			{Name: "deployment", Type: registry.TypeString, Required: true, Description: "Deployment name."},
			{Name: "cpu", Type: registry.TypeString, Required: true, Description: "New CPU request, e.g. \"250m\"."},
			{Name: "memory", Type: registry.TypeString, Required: true, Description: "New memory request, e.g. \"256Mi\"."},
		},
		Handler: h.optimizeResourceRequests,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "get_resource_usage", Category: registry.CategoryCost,
		Description: "Show current CPU/memory usage for all pods in a namespace.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Get Resource Usage"},
		Params:      []registry.Param{nsParam(), ctxParam()},
		Handler:     h.getResourceUsage,
	})
}

func nsParam() registry.Param {
	return registry.Param{Name: "namespace", Type: registry.TypeString, Description: "Target namespace; defaults to the server's configured default."}
}

func ctxParam() registry.Param {
	return registry.Param{Name: "kubeContext", Type: registry.TypeString, Description: "Kubernetes context to use; defaults to the current context."}
}

const readTimeout = runner.DefaultReadTimeout
const mutatingTimeout = runner.DefaultMutatingTimeout
