package cost

import (
	"context"
	"encoding/json"

	"k8s.io/apimachinery/pkg/api/resource"

	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/registry"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/tools/common"
)

// podResources is one pod's aggregated container requests.
type podResources struct {
	name      string
	cpuMillis int64
	memBytes  int64
}

func (h *handlers) listPodsWithRequests(ctx context.Context, in registry.Input) ([]podResources, *registry.Result) {
	args := []string{"get", "pods", "-o", "json"}
	args = common.WithNamespaceArgs(args, h.deps.Namespace(in))
	args = common.WithContextArgs(args, h.deps.KubeContext(in))
	res := h.deps.RunKubectl(ctx, args, readTimeout, true)
	if !res.Success {
		return nil, res
	}

	list, _ := res.Result.(map[string]interface{})
	items, _ := list["items"].([]interface{})

	var out []podResources
	for _, item := range items {
		pod, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		name, _ := nested(pod, "metadata", "name").(string)
		var cpuMillis, memBytes int64

		containers, _ := nested(pod, "spec", "containers").([]interface{})
		for _, c := range containers {
			cm, ok := c.(map[string]interface{})
			if !ok {
				continue
			}
			requests, _ := nested(cm, "resources", "requests").(map[string]interface{})
			if cpu, ok := requests["cpu"].(string); ok {
				if q, err := resource.ParseQuantity(cpu); err == nil {
					cpuMillis += q.MilliValue()
				}
			}
			if mem, ok := requests["memory"].(string); ok {
				if q, err := resource.ParseQuantity(mem); err == nil {
					memBytes += q.Value()
				}
			}
		}
		out = append(out, podResources{name: name, cpuMillis: cpuMillis, memBytes: memBytes})
	}
	return out, nil
}

func nested(m map[string]interface{}, keys ...string) interface{} {
	var cur interface{} = m
	for _, k := range keys {
		cm, ok := cur.(map[string]interface{})
		if !ok {
			return nil
		}
		cur = cm[k]
	}
	return cur
}

func (h *handlers) recommendResourceRequests(ctx context.Context, in registry.Input) (*registry.Result, error) {
	pods, failure := h.listPodsWithRequests(ctx, in)
	if failure != nil {
		return failure, nil
	}

	var recommendations []map[string]interface{}
	for _, p := range pods {
		// A conservative headroom recommendation: 120% of current requests,
		// since there is no metrics history to trend against without a
		// long-running metrics pipeline (non-goal: no persistence across
		// restarts).
		recommendations = append(recommendations, map[string]interface{}{
			"pod":                p.name,
			"currentCPUMillis":   p.cpuMillis,
			"currentMemoryBytes": p.memBytes,
			"recommendedCPUMillis":   p.cpuMillis * 12 / 10,
			"recommendedMemoryBytes": p.memBytes * 12 / 10,
		})
	}
	return registry.Ok(map[string]interface{}{"recommendations": recommendations}, ""), nil
}

func (h *handlers) getIdleResources(ctx context.Context, in registry.Input) (*registry.Result, error) {
	args := []string{"top", "pods", "--no-headers"}
	args = common.WithNamespaceArgs(args, h.deps.Namespace(in))
	args = common.WithContextArgs(args, h.deps.KubeContext(in))
	res := h.deps.RunKubectl(ctx, args, readTimeout, false)
	if !res.Success {
		return res, nil
	}
	return registry.Ok(map[string]interface{}{
		"note":       "idle detection requires comparing this usage snapshot against requests from recommend_resource_requests",
		"usageTable": res.Result,
	}, res.Command), nil
}

func (h *handlers) getQuotaUsage(ctx context.Context, in registry.Input) (*registry.Result, error) {
	args := []string{"get", "resourcequota", "-o", "json"}
	args = common.WithNamespaceArgs(args, h.deps.Namespace(in))
	args = common.WithContextArgs(args, h.deps.KubeContext(in))
	return h.deps.RunKubectl(ctx, args, readTimeout, true), nil
}

func (h *handlers) analyzeCost(ctx context.Context, in registry.Input) (*registry.Result, error) {
	pods, failure := h.listPodsWithRequests(ctx, in)
	if failure != nil {
		return failure, nil
	}

	var totalCPU, totalMem int64
	for _, p := range pods {
		totalCPU += p.cpuMillis
		totalMem += p.memBytes
	}

	var shares []map[string]interface{}
	for _, p := range pods {
		cpuShare, memShare := 0.0, 0.0
		if totalCPU > 0 {
			cpuShare = float64(p.cpuMillis) / float64(totalCPU)
		}
		if totalMem > 0 {
			memShare = float64(p.memBytes) / float64(totalMem)
		}
		shares = append(shares, map[string]interface{}{
			"pod":      p.name,
			"cpuShare": cpuShare,
			"memShare": memShare,
		})
	}

	return registry.Ok(map[string]interface{}{
		"totalCPUMillis": totalCPU,
		"totalMemoryBytes": totalMem,
		"shares":            shares,
	}, ""), nil
}

func (h *handlers) getOverprovisionedResources(ctx context.Context, in registry.Input) (*registry.Result, error) {
	pods, failure := h.listPodsWithRequests(ctx, in)
	if failure != nil {
		return failure, nil
	}

	usageArgs := []string{"top", "pods", "--no-headers"}
	usageArgs = common.WithNamespaceArgs(usageArgs, h.deps.Namespace(in))
	usageArgs = common.WithContextArgs(usageArgs, h.deps.KubeContext(in))
	usage := h.deps.RunKubectl(ctx, usageArgs, readTimeout, false)

	return registry.Ok(map[string]interface{}{
		"requestedResources": pods,
		"currentUsageTable":  usage.Result,
		"note":               "compare currentUsageTable against requestedResources; pods using under 30% of requests are candidates",
	}, ""), nil
}

func (h *handlers) getCostTrends(ctx context.Context, in registry.Input) (*registry.Result, error) {
	args := []string{"get", "deployments", "-o", "json"}
	args = common.WithNamespaceArgs(args, h.deps.Namespace(in))
	args = common.WithContextArgs(args, h.deps.KubeContext(in))
	res := h.deps.RunKubectl(ctx, args, readTimeout, true)
	if !res.Success {
		return res, nil
	}

	list, _ := res.Result.(map[string]interface{})
	items, _ := list["items"].([]interface{})

	var trend []map[string]interface{}
	for _, item := range items {
		dep, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		name, _ := nested(dep, "metadata", "name").(string)
		created, _ := nested(dep, "metadata", "creationTimestamp").(string)
		replicas, _ := nested(dep, "spec", "replicas").(float64)
		trend = append(trend, map[string]interface{}{
			"deployment": name,
			"since":      created,
			"replicas":   replicas,
		})
	}
	return registry.Ok(map[string]interface{}{"deployments": trend}, res.Command), nil
}

func (h *handlers) getNamespaceAllocation(ctx context.Context, in registry.Input) (*registry.Result, error) {
	nsArgs := []string{"get", "namespaces", "-o", "json"}
	nsArgs = common.WithContextArgs(nsArgs, h.deps.KubeContext(in))
	nsRes := h.deps.RunKubectl(ctx, nsArgs, readTimeout, true)
	if !nsRes.Success {
		return nsRes, nil
	}
	nsList, _ := nsRes.Result.(map[string]interface{})
	nsItems, _ := nsList["items"].([]interface{})

	var allocations []map[string]interface{}
	for _, item := range nsItems {
		ns, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		name, _ := nested(ns, "metadata", "name").(string)

		podArgs := []string{"get", "pods", "-n", name, "-o", "json"}
		podArgs = common.WithContextArgs(podArgs, h.deps.KubeContext(in))
		podRes := h.deps.RunKubectl(ctx, podArgs, readTimeout, true)
		if !podRes.Success {
			continue
		}
		podList, _ := podRes.Result.(map[string]interface{})
		podItems, _ := podList["items"].([]interface{})

		var cpuMillis, memBytes int64
		for _, pi := range podItems {
			pod, ok := pi.(map[string]interface{})
			if !ok {
				continue
			}
			containers, _ := nested(pod, "spec", "containers").([]interface{})
			for _, c := range containers {
				cm, ok := c.(map[string]interface{})
				if !ok {
					continue
				}
				requests, _ := nested(cm, "resources", "requests").(map[string]interface{})
				if cpu, ok := requests["cpu"].(string); ok {
					if q, err := resource.ParseQuantity(cpu); err == nil {
						cpuMillis += q.MilliValue()
					}
				}
				if mem, ok := requests["memory"].(string); ok {
					if q, err := resource.ParseQuantity(mem); err == nil {
						memBytes += q.Value()
					}
				}
			}
		}
		allocations = append(allocations, map[string]interface{}{
			"namespace":         name,
			"podCount":          len(podItems),
			"requestedCPUMillis": cpuMillis,
			"requestedMemoryBytes": memBytes,
		})
	}

	return registry.Ok(map[string]interface{}{"namespaces": allocations}, nsRes.Command), nil
}

func (h *handlers) optimizeResourceRequests(ctx context.Context, in registry.Input) (*registry.Result, error) {
	deployment := in.String("deployment", "")
	cpu := in.String("cpu", "")
	memory := in.String("memory", "")

	patch := map[string]interface{}{
		"spec": map[string]interface{}{
			"template": map[string]interface{}{
				"spec": map[string]interface{}{
					"containers": []map[string]interface{}{
						{
							"name": deployment,
							"resources": map[string]interface{}{
								"requests": map[string]interface{}{
									"cpu":    cpu,
									"memory": memory,
								},
							},
						},
					},
				},
			},
		},
	}
	patchJSON, err := json.Marshal(patch)
	if err != nil {
		return registry.Fail(registry.ErrorKindInternal, "encoding patch: %v", err), nil
	}

	args := []string{"patch", "deployment", deployment, "--type", "strategic", "-p", string(patchJSON)}
	args = common.WithNamespaceArgs(args, h.deps.Namespace(in))
	args = common.WithContextArgs(args, h.deps.KubeContext(in))
	return h.deps.RunKubectl(ctx, args, mutatingTimeout, false), nil
}

func (h *handlers) getResourceUsage(ctx context.Context, in registry.Input) (*registry.Result, error) {
	args := []string{"top", "pods"}
	args = common.WithNamespaceArgs(args, h.deps.Namespace(in))
	args = common.WithContextArgs(args, h.deps.KubeContext(in))
	return h.deps.RunKubectl(ctx, args, readTimeout, false), nil
}
