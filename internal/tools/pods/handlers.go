package pods

import (
	"context"
	"fmt"

	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/registry"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/tools/common"
)

type handlers struct {
	deps common.Deps
}

func (h *handlers) getPods(ctx context.Context, in registry.Input) (*registry.Result, error) {
	args := []string{"get", "pods", "-o", "json"}
	if in.Bool("allNamespaces", false) {
		args = append(args, "--all-namespaces")
	} else {
		args = common.WithNamespaceArgs(args, h.deps.Namespace(in))
	}
	if sel := in.String("labelSelector", ""); sel != "" {
		args = append(args, "-l", sel)
	}
	args = common.WithContextArgs(args, h.deps.KubeContext(in))
	return h.deps.RunKubectl(ctx, args, readTimeout, true), nil
}

func (h *handlers) getLogs(ctx context.Context, in registry.Input) (*registry.Result, error) {
	pod := in.String("pod", "")
	args := []string{"logs", pod}
	args = common.WithNamespaceArgs(args, h.deps.Namespace(in))
	if c := in.String("container", ""); c != "" {
		args = append(args, "-c", c)
	}
	args = append(args, "--tail", fmt.Sprintf("%d", in.Int("tailLines", 200)))
	args = common.WithContextArgs(args, h.deps.KubeContext(in))
	return h.deps.RunKubectl(ctx, args, logTimeout, false), nil
}

func (h *handlers) getPreviousLogs(ctx context.Context, in registry.Input) (*registry.Result, error) {
	pod := in.String("pod", "")
	args := []string{"logs", pod, "--previous"}
	args = common.WithNamespaceArgs(args, h.deps.Namespace(in))
	if c := in.String("container", ""); c != "" {
		args = append(args, "-c", c)
	}
	args = append(args, "--tail", fmt.Sprintf("%d", in.Int("tailLines", 200)))
	args = common.WithContextArgs(args, h.deps.KubeContext(in))
	return h.deps.RunKubectl(ctx, args, logTimeout, false), nil
}

func (h *handlers) getPodEvents(ctx context.Context, in registry.Input) (*registry.Result, error) {
	pod := in.String("pod", "")
	args := []string{"get", "events", "--field-selector", "involvedObject.name=" + pod, "-o", "json"}
	args = common.WithNamespaceArgs(args, h.deps.Namespace(in))
	args = common.WithContextArgs(args, h.deps.KubeContext(in))
	return h.deps.RunKubectl(ctx, args, readTimeout, true), nil
}

func (h *handlers) describePod(ctx context.Context, in registry.Input) (*registry.Result, error) {
	pod := in.String("pod", "")
	args := []string{"describe", "pod", pod}
	args = common.WithNamespaceArgs(args, h.deps.Namespace(in))
	args = common.WithContextArgs(args, h.deps.KubeContext(in))
	return h.deps.RunKubectl(ctx, args, readTimeout, false), nil
}

func (h *handlers) execInPod(ctx context.Context, in registry.Input) (*registry.Result, error) {
	pod := in.String("pod", "")
	command := in.StringSlice("command")
	if len(command) == 0 {
		return registry.Fail(registry.ErrorKindInvalid, "command must be a non-empty array"), nil
	}
	args := []string{"exec", pod}
	args = common.WithNamespaceArgs(args, h.deps.Namespace(in))
	if c := in.String("container", ""); c != "" {
		args = append(args, "-c", c)
	}
	args = common.WithContextArgs(args, h.deps.KubeContext(in))
	args = append(args, "--")
	args = append(args, command...)
	return h.deps.RunKubectl(ctx, args, mutatingTimeout, false), nil
}

func (h *handlers) healthCheckPods(ctx context.Context, in registry.Input) (*registry.Result, error) {
	args := []string{"get", "pods", "-o", "json"}
	args = common.WithNamespaceArgs(args, h.deps.Namespace(in))
	args = common.WithContextArgs(args, h.deps.KubeContext(in))
	res := h.deps.RunKubectl(ctx, args, readTimeout, true)
	if !res.Success {
		return res, nil
	}
	summary := summarizePodHealth(res.Result)
	return registry.Ok(summary, res.Command), nil
}

func (h *handlers) diagnosePodCrash(ctx context.Context, in registry.Input) (*registry.Result, error) {
	pod := in.String("pod", "")
	getArgs := []string{"get", "pod", pod, "-o", "json"}
	getArgs = common.WithNamespaceArgs(getArgs, h.deps.Namespace(in))
	getArgs = common.WithContextArgs(getArgs, h.deps.KubeContext(in))
	podRes := h.deps.RunKubectl(ctx, getArgs, readTimeout, true)
	if !podRes.Success {
		return podRes, nil
	}

	eventsArgs := []string{"get", "events", "--field-selector", "involvedObject.name=" + pod, "-o", "json"}
	eventsArgs = common.WithNamespaceArgs(eventsArgs, h.deps.Namespace(in))
	eventsArgs = common.WithContextArgs(eventsArgs, h.deps.KubeContext(in))
	eventsRes := h.deps.RunKubectl(ctx, eventsArgs, readTimeout, true)

	diagnosis := diagnoseCrash(podRes.Result, eventsRes.Result)
	return registry.Ok(diagnosis, podRes.Command), nil
}

func (h *handlers) diagnosePendingPods(ctx context.Context, in registry.Input) (*registry.Result, error) {
	args := []string{"get", "pods", "--field-selector", "status.phase=Pending", "-o", "json"}
	args = common.WithNamespaceArgs(args, h.deps.Namespace(in))
	args = common.WithContextArgs(args, h.deps.KubeContext(in))
	res := h.deps.RunKubectl(ctx, args, readTimeout, true)
	if !res.Success {
		return res, nil
	}
	diagnosis := diagnosePending(res.Result)
	return registry.Ok(diagnosis, res.Command), nil
}

func (h *handlers) getEvictedPods(ctx context.Context, in registry.Input) (*registry.Result, error) {
	args := []string{"get", "pods", "--field-selector", "status.phase=Failed", "-o", "json"}
	args = common.WithNamespaceArgs(args, h.deps.Namespace(in))
	args = common.WithContextArgs(args, h.deps.KubeContext(in))
	res := h.deps.RunKubectl(ctx, args, readTimeout, true)
	if !res.Success {
		return res, nil
	}
	evicted := filterEvicted(res.Result)
	return registry.Ok(evicted, res.Command), nil
}

func (h *handlers) deleteFailedPods(ctx context.Context, in registry.Input) (*registry.Result, error) {
	args := []string{"delete", "pods", "--field-selector", "status.phase=Failed"}
	args = common.WithNamespaceArgs(args, h.deps.Namespace(in))
	args = common.WithContextArgs(args, h.deps.KubeContext(in))
	return h.deps.RunKubectl(ctx, args, mutatingTimeout, false), nil
}
