package cluster

import (
	"context"

	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/registry"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/tools/common"
)

type handlers struct {
	deps common.Deps
}

func (h *handlers) listContexts(ctx context.Context, in registry.Input) (*registry.Result, error) {
	contexts, err := h.deps.Provider.ListContexts()
	if err != nil {
		return registry.Fail(registry.ErrorKindConfig, "listing contexts: %v", err), nil
	}
	out := make([]map[string]interface{}, 0, len(contexts))
	for _, c := range contexts {
		out = append(out, map[string]interface{}{
			"name":      c.Name,
			"cluster":   c.Cluster,
			"user":      c.User,
			"namespace": c.Namespace,
			"active":    c.IsActive,
		})
	}
	return registry.Ok(out, ""), nil
}

func (h *handlers) getCurrentContext(ctx context.Context, in registry.Input) (*registry.Result, error) {
	if h.deps.Defaults != nil {
		if override := h.deps.Defaults.Context(); override != "" {
			return registry.Ok(map[string]interface{}{"name": override, "source": "switch_context override"}, ""), nil
		}
	}
	name, ok := h.deps.Provider.CurrentContext()
	if !ok {
		return registry.Fail(registry.ErrorKindConfig, "no current context available"), nil
	}
	return registry.Ok(map[string]interface{}{"name": name, "source": "kubeconfig"}, ""), nil
}

func (h *handlers) describeContext(ctx context.Context, in registry.Input) (*registry.Result, error) {
	name := in.String("name", "")
	contexts, err := h.deps.Provider.ListContexts()
	if err != nil {
		return registry.Fail(registry.ErrorKindConfig, "listing contexts: %v", err), nil
	}
	for _, c := range contexts {
		if c.Name == name {
			return registry.Ok(map[string]interface{}{
				"name":      c.Name,
				"cluster":   c.Cluster,
				"user":      c.User,
				"namespace": c.Namespace,
				"active":    c.IsActive,
			}, ""), nil
		}
	}
	return registry.Fail(registry.ErrorKindInvalid, "unknown context %q", name), nil
}

func (h *handlers) switchContext(ctx context.Context, in registry.Input) (*registry.Result, error) {
	name := in.String("name", "")
	if err := h.deps.Provider.ValidateContext(name); err != nil {
		return registry.Fail(registry.ErrorKindInvalid, "%v", err), nil
	}
	h.deps.Defaults.SetContext(name)
	return registry.Ok(map[string]interface{}{"context": name}, ""), nil
}

func (h *handlers) setDefaultNamespace(ctx context.Context, in registry.Input) (*registry.Result, error) {
	namespace := in.String("namespace", "")
	h.deps.Defaults.SetNamespace(namespace)
	return registry.Ok(map[string]interface{}{"namespace": namespace}, ""), nil
}

func (h *handlers) getClusterInfo(ctx context.Context, in registry.Input) (*registry.Result, error) {
	args := []string{"cluster-info"}
	args = common.WithContextArgs(args, h.deps.KubeContext(in))
	return h.deps.RunKubectl(ctx, args, readTimeout, false), nil
}

func (h *handlers) getClusterVersion(ctx context.Context, in registry.Input) (*registry.Result, error) {
	args := []string{"version", "-o", "json"}
	args = common.WithContextArgs(args, h.deps.KubeContext(in))
	return h.deps.RunKubectl(ctx, args, readTimeout, true), nil
}

func (h *handlers) getNodes(ctx context.Context, in registry.Input) (*registry.Result, error) {
	args := []string{"get", "nodes", "-o", "json"}
	args = common.WithContextArgs(args, h.deps.KubeContext(in))
	return h.deps.RunKubectl(ctx, args, readTimeout, true), nil
}

func (h *handlers) describeNode(ctx context.Context, in registry.Input) (*registry.Result, error) {
	name := in.String("name", "")
	args := []string{"describe", "node", name}
	args = common.WithContextArgs(args, h.deps.KubeContext(in))
	return h.deps.RunKubectl(ctx, args, readTimeout, false), nil
}

func (h *handlers) getAPIResources(ctx context.Context, in registry.Input) (*registry.Result, error) {
	args := []string{"api-resources", "-o", "wide"}
	args = common.WithContextArgs(args, h.deps.KubeContext(in))
	return h.deps.RunKubectl(ctx, args, readTimeout, false), nil
}

func (h *handlers) healthCheckCluster(ctx context.Context, in registry.Input) (*registry.Result, error) {
	args := []string{"get", "nodes", "-o", "json"}
	args = common.WithContextArgs(args, h.deps.KubeContext(in))
	res := h.deps.RunKubectl(ctx, args, readTimeout, true)
	if !res.Success {
		return res, nil
	}
	nodes, _ := res.Result.(map[string]interface{})
	items, _ := nodes["items"].([]interface{})
	ready, notReady := 0, 0
	for _, item := range items {
		node, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		status, _ := node["status"].(map[string]interface{})
		conditions, _ := status["conditions"].([]interface{})
		nodeReady := false
		for _, c := range conditions {
			cm, ok := c.(map[string]interface{})
			if !ok {
				continue
			}
			if t, _ := cm["type"].(string); t == "Ready" {
				if s, _ := cm["status"].(string); s == "True" {
					nodeReady = true
				}
			}
		}
		if nodeReady {
			ready++
		} else {
			notReady++
		}
	}
	return registry.Ok(map[string]interface{}{
		"totalNodes":    len(items),
		"readyNodes":    ready,
		"notReadyNodes": notReady,
		"healthy":       notReady == 0,
	}, res.Command), nil
}
