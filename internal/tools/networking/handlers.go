package networking

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

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

func (h *handlers) getServices(ctx context.Context, in registry.Input) (*registry.Result, error) {
	return h.list(ctx, in, "services")
}

func (h *handlers) getEndpoints(ctx context.Context, in registry.Input) (*registry.Result, error) {
	return h.list(ctx, in, "endpoints")
}

func (h *handlers) getIngresses(ctx context.Context, in registry.Input) (*registry.Result, error) {
	return h.list(ctx, in, "ingresses")
}

// portForward starts `kubectl port-forward` detached from the request
// context, since the forward must outlive the single tool.call that started
// it. The subprocess is not tracked by the runner's rate limiter or
// availability cache; it is launched directly, mirroring how a human would
// run it from a shell.
func (h *handlers) portForward(ctx context.Context, in registry.Input) (*registry.Result, error) {
	resource := in.String("resource", "")
	localPort := in.Int("localPort", 0)
	remotePort := in.Int("remotePort", 0)
	namespace := h.deps.Namespace(in)
	kubeContext := h.deps.KubeContext(in)

	args := []string{"port-forward", resource, fmt.Sprintf("%d:%d", localPort, remotePort), "-n", namespace}
	if kubeContext != "" {
		args = append(args, "--context", kubeContext)
	}

	cmd := exec.Command("kubectl", args...)
	if err := cmd.Start(); err != nil {
		return registry.Fail(registry.ErrorKindAPI, "starting port-forward: %v", err), nil
	}
	go func() { _ = cmd.Wait() }()

	command := "kubectl " + strings.Join(args, " ")
	return registry.Ok(map[string]interface{}{
		"pid":        cmd.Process.Pid,
		"resource":   resource,
		"localPort":  localPort,
		"remotePort": remotePort,
	}, command), nil
}

func (h *handlers) checkDNS(ctx context.Context, in registry.Input) (*registry.Result, error) {
	hostname := in.String("hostname", "")
	args := []string{"run", "dns-check-probe", "--rm", "-i", "--restart=Never", "--image=busybox:1.36", "--command", "--", "nslookup", hostname}
	args = common.WithNamespaceArgs(args, h.deps.Namespace(in))
	args = common.WithContextArgs(args, h.deps.KubeContext(in))
	return h.deps.RunKubectl(ctx, args, readTimeout, false), nil
}

func (h *handlers) traceServiceChain(ctx context.Context, in registry.Input) (*registry.Result, error) {
	service := in.String("service", "")
	namespace := h.deps.Namespace(in)
	kubeContext := h.deps.KubeContext(in)

	svcArgs := []string{"get", "service", service, "-o", "json"}
	svcArgs = common.WithNamespaceArgs(svcArgs, namespace)
	svcArgs = common.WithContextArgs(svcArgs, kubeContext)
	svcRes := h.deps.RunKubectl(ctx, svcArgs, readTimeout, true)
	if !svcRes.Success {
		return svcRes, nil
	}

	epArgs := []string{"get", "endpoints", service, "-o", "json"}
	epArgs = common.WithNamespaceArgs(epArgs, namespace)
	epArgs = common.WithContextArgs(epArgs, kubeContext)
	epRes := h.deps.RunKubectl(ctx, epArgs, readTimeout, true)

	svc, _ := svcRes.Result.(map[string]interface{})
	selector, _ := nested(svc, "spec", "selector").(map[string]interface{})

	var backends []string
	if epRes.Success {
		ep, _ := epRes.Result.(map[string]interface{})
		subsets, _ := ep["subsets"].([]interface{})
		for _, s := range subsets {
			sm, ok := s.(map[string]interface{})
			if !ok {
				continue
			}
			addrs, _ := sm["addresses"].([]interface{})
			for _, a := range addrs {
				am, ok := a.(map[string]interface{})
				if !ok {
					continue
				}
				if ip, ok := am["ip"].(string); ok {
					backends = append(backends, ip)
				}
			}
		}
	}

	return registry.Ok(map[string]interface{}{
		"service":      service,
		"podSelector":  selector,
		"backendIPs":   backends,
		"hasEndpoints": len(backends) > 0,
	}, svcRes.Command), nil
}

func (h *handlers) diagnoseConnectivity(ctx context.Context, in registry.Input) (*registry.Result, error) {
	pod := in.String("pod", "")
	target := in.String("target", "")
	args := []string{"exec", pod, "--", "sh", "-c", fmt.Sprintf("nc -zv -w 3 %s 2>&1 || wget -T 3 -qO- %s 2>&1", targetHost(target), target)}
	args = common.WithNamespaceArgs(args, h.deps.Namespace(in))
	args = common.WithContextArgs(args, h.deps.KubeContext(in))
	return h.deps.RunKubectl(ctx, args, readTimeout, false), nil
}

func targetHost(target string) string {
	host := target
	if i := strings.Index(target, ":"); i >= 0 {
		host = target[:i]
	}
	return host
}

func (h *handlers) analyzeNetworkPolicies(ctx context.Context, in registry.Input) (*registry.Result, error) {
	res, _ := h.list(ctx, in, "networkpolicies")
	if !res.Success {
		return res, nil
	}
	list, _ := res.Result.(map[string]interface{})
	items, _ := list["items"].([]interface{})

	var summaries []map[string]interface{}
	for _, item := range items {
		np, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		name, _ := nested(np, "metadata", "name").(string)
		selector, _ := nested(np, "spec", "podSelector").(map[string]interface{})
		policyTypes, _ := nested(np, "spec", "policyTypes").([]interface{})
		summaries = append(summaries, map[string]interface{}{
			"name":        name,
			"podSelector": selector,
			"policyTypes": policyTypes,
		})
	}

	return registry.Ok(map[string]interface{}{
		"count":    len(summaries),
		"policies": summaries,
	}, res.Command), nil
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
