package kind

import (
	"context"
	"strings"

	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/registry"
)

func (h *handlers) detect(ctx context.Context, in registry.Input) (*registry.Result, error) {
	res := h.deps.RunKind(ctx, []string{"version"}, readTimeout, false)
	if !res.Success {
		return registry.Ok(map[string]interface{}{
			"installed":           false,
			"installInstructions": "https://kind.sigs.k8s.io/docs/user/quick-start/#installation",
		}, res.Command), nil
	}
	return registry.Ok(map[string]interface{}{
		"installed": true,
		"version":   res.Result,
	}, res.Command), nil
}

func (h *handlers) version(ctx context.Context, in registry.Input) (*registry.Result, error) {
	return h.deps.RunKind(ctx, []string{"version"}, readTimeout, false), nil
}

func (h *handlers) listClusters(ctx context.Context, in registry.Input) (*registry.Result, error) {
	res := h.deps.RunKind(ctx, []string{"get", "clusters"}, readTimeout, false)
	if !res.Success {
		return res, nil
	}
	clusters := splitLines(res.Result)
	return registry.Ok(map[string]interface{}{
		"total":    len(clusters),
		"clusters": clusters,
	}, res.Command), nil
}

func (h *handlers) getNodes(ctx context.Context, in registry.Input) (*registry.Result, error) {
	name := in.String("name", "kind")
	res := h.deps.RunKind(ctx, []string{"get", "nodes", "--name", name}, readTimeout, false)
	if !res.Success {
		return res, nil
	}
	nodes := splitLines(res.Result)
	return registry.Ok(map[string]interface{}{
		"cluster": name,
		"total":   len(nodes),
		"nodes":   nodes,
	}, res.Command), nil
}

func (h *handlers) getKubeconfig(ctx context.Context, in registry.Input) (*registry.Result, error) {
	name := in.String("name", "kind")
	args := []string{"get", "kubeconfig", "--name", name}
	if in.Bool("internal", false) {
		args = append(args, "--internal")
	}
	res := h.deps.RunKind(ctx, args, readTimeout, false)
	if !res.Success {
		return res, nil
	}
	return registry.Ok(map[string]interface{}{
		"cluster":    name,
		"kubeconfig": res.Result,
	}, res.Command), nil
}

func (h *handlers) exportLogs(ctx context.Context, in registry.Input) (*registry.Result, error) {
	name := in.String("name", "kind")
	outputDir := in.String("outputDir", "")
	args := []string{"export", "logs", outputDir, "--name", name}
	res := h.deps.RunKind(ctx, args, longTimeout, false)
	if !res.Success {
		return res, nil
	}
	return registry.Ok(map[string]interface{}{
		"cluster":      name,
		"logDirectory": outputDir,
		"output":       res.Result,
	}, res.Command), nil
}

func (h *handlers) clusterInfo(ctx context.Context, in registry.Input) (*registry.Result, error) {
	name := in.String("name", "kind")

	clustersRes, err := h.listClusters(ctx, in)
	if err != nil || !clustersRes.Success {
		return clustersRes, err
	}
	payload, _ := clustersRes.Result.(map[string]interface{})
	clusters, _ := payload["clusters"].([]string)
	found := false
	for _, c := range clusters {
		if c == name {
			found = true
			break
		}
	}
	if !found {
		return registry.Fail(registry.ErrorKindInvalid, "cluster %q not found; available clusters: %v", name, clusters), nil
	}

	nodesRes, err := h.getNodes(ctx, in)
	if err != nil {
		return nodesRes, err
	}
	kubeconfigRes, err := h.getKubeconfig(ctx, in)
	if err != nil {
		return kubeconfigRes, err
	}

	var nodes []string
	var nodeCount int
	if nodesRes.Success {
		if nodePayload, ok := nodesRes.Result.(map[string]interface{}); ok {
			nodes, _ = nodePayload["nodes"].([]string)
			nodeCount, _ = nodePayload["total"].(int)
		}
	}

	return registry.Ok(map[string]interface{}{
		"cluster":             name,
		"nodes":               nodes,
		"nodeCount":           nodeCount,
		"kubeconfigAvailable": kubeconfigRes.Success,
	}, ""), nil
}

func (h *handlers) nodeLabels(ctx context.Context, in registry.Input) (*registry.Result, error) {
	name := in.String("name", "kind")
	nodesRes, err := h.getNodes(ctx, in)
	if err != nil || !nodesRes.Success {
		return nodesRes, err
	}
	payload, _ := nodesRes.Result.(map[string]interface{})
	nodes, _ := payload["nodes"].([]string)

	labels := map[string]interface{}{}
	for _, node := range nodes {
		res := h.deps.RunDocker(ctx, []string{"inspect", "--format", "{{json .Config.Labels}}", node}, readTimeout, true)
		if !res.Success {
			labels[node] = map[string]interface{}{"error": res.Error}
			continue
		}
		labels[node] = res.Result
	}

	return registry.Ok(map[string]interface{}{
		"cluster":    name,
		"nodeLabels": labels,
	}, ""), nil
}

func (h *handlers) createCluster(ctx context.Context, in registry.Input) (*registry.Result, error) {
	name := in.String("name", "kind")
	args := []string{"create", "cluster", "--name", name}
	if image := in.String("image", ""); image != "" {
		args = append(args, "--image", image)
	}
	if config := in.String("config", ""); config != "" {
		args = append(args, "--config", config)
	}
	if wait := in.String("wait", "5m"); wait != "" {
		args = append(args, "--wait", wait)
	}
	if in.Bool("retain", false) {
		args = append(args, "--retain")
	}
	return h.deps.RunKind(ctx, args, longTimeout, false), nil
}

func (h *handlers) deleteCluster(ctx context.Context, in registry.Input) (*registry.Result, error) {
	name := in.String("name", "kind")
	return h.deps.RunKind(ctx, []string{"delete", "cluster", "--name", name}, mutatingTimeout, false), nil
}

func (h *handlers) deleteAllClusters(ctx context.Context, in registry.Input) (*registry.Result, error) {
	return h.deps.RunKind(ctx, []string{"delete", "clusters", "--all"}, mutatingTimeout, false), nil
}

func (h *handlers) loadImage(ctx context.Context, in registry.Input) (*registry.Result, error) {
	images := in.StringSlice("images")
	if len(images) == 0 {
		return registry.Fail(registry.ErrorKindInvalid, "images must be a non-empty array"), nil
	}
	name := in.String("name", "kind")
	args := []string{"load", "docker-image", "--name", name}
	args = append(args, images...)
	for _, node := range in.StringSlice("nodes") {
		args = append(args, "--nodes", node)
	}
	return h.deps.RunKind(ctx, args, mutatingTimeout, false), nil
}

func (h *handlers) loadImageArchive(ctx context.Context, in registry.Input) (*registry.Result, error) {
	archive := in.String("archive", "")
	if archive == "" {
		return registry.Fail(registry.ErrorKindInvalid, "archive must not be empty"), nil
	}
	name := in.String("name", "kind")
	args := []string{"load", "image-archive", archive, "--name", name}
	for _, node := range in.StringSlice("nodes") {
		args = append(args, "--nodes", node)
	}
	return h.deps.RunKind(ctx, args, mutatingTimeout, false), nil
}

func (h *handlers) buildNodeImage(ctx context.Context, in registry.Input) (*registry.Result, error) {
	args := []string{"build", "node-image"}
	if image := in.String("image", ""); image != "" {
		args = append(args, "--image", image)
	}
	if base := in.String("baseImage", ""); base != "" {
		args = append(args, "--base-image", base)
	}
	if root := in.String("kubeRoot", ""); root != "" {
		args = append(args, "--kube-root", root)
	}
	return h.deps.RunKind(ctx, args, buildTimeout, false), nil
}

func (h *handlers) setKubeconfig(ctx context.Context, in registry.Input) (*registry.Result, error) {
	name := in.String("name", "kind")
	return h.deps.RunKind(ctx, []string{"export", "kubeconfig", "--name", name}, readTimeout, false), nil
}

func splitLines(v interface{}) []string {
	s, _ := v.(string)
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
