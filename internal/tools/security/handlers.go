package security

import (
	"context"

	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/registry"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/tools/common"
)

type handlers struct {
	deps common.Deps
}

func (h *handlers) namespacedList(ctx context.Context, in registry.Input, resource string) (*registry.Result, error) {
	args := []string{"get", resource, "-o", "json"}
	args = common.WithNamespaceArgs(args, h.deps.Namespace(in))
	args = common.WithContextArgs(args, h.deps.KubeContext(in))
	return h.deps.RunKubectl(ctx, args, readTimeout, true), nil
}

func (h *handlers) clusterList(ctx context.Context, in registry.Input, resource string) (*registry.Result, error) {
	args := []string{"get", resource, "-o", "json"}
	args = common.WithContextArgs(args, h.deps.KubeContext(in))
	return h.deps.RunKubectl(ctx, args, readTimeout, true), nil
}

func (h *handlers) getRoles(ctx context.Context, in registry.Input) (*registry.Result, error) {
	return h.namespacedList(ctx, in, "roles")
}

func (h *handlers) getClusterRoles(ctx context.Context, in registry.Input) (*registry.Result, error) {
	return h.clusterList(ctx, in, "clusterroles")
}

func (h *handlers) getServiceAccounts(ctx context.Context, in registry.Input) (*registry.Result, error) {
	return h.namespacedList(ctx, in, "serviceaccounts")
}

func (h *handlers) getPodSecurityStandards(ctx context.Context, in registry.Input) (*registry.Result, error) {
	namespace := h.deps.Namespace(in)
	args := []string{"get", "namespace", namespace, "-o", "json"}
	args = common.WithContextArgs(args, h.deps.KubeContext(in))
	res := h.deps.RunKubectl(ctx, args, readTimeout, true)
	if !res.Success {
		return res, nil
	}
	ns, _ := res.Result.(map[string]interface{})
	labels, _ := nested(ns, "metadata", "labels").(map[string]interface{})
	levels := map[string]interface{}{}
	for _, mode := range []string{"enforce", "audit", "warn"} {
		key := "pod-security.kubernetes.io/" + mode
		if v, ok := labels[key]; ok {
			levels[mode] = v
		}
	}
	return registry.Ok(map[string]interface{}{"namespace": namespace, "podSecurityLabels": levels}, res.Command), nil
}

func (h *handlers) getAdmissionWebhooks(ctx context.Context, in registry.Input) (*registry.Result, error) {
	mutating, err := h.clusterList(ctx, in, "mutatingwebhookconfigurations")
	if !mutating.Success {
		return mutating, err
	}
	validating, _ := h.clusterList(ctx, in, "validatingwebhookconfigurations")
	return registry.Ok(map[string]interface{}{
		"mutating":   mutating.Result,
		"validating": validating.Result,
	}, mutating.Command), nil
}

func (h *handlers) getCRDs(ctx context.Context, in registry.Input) (*registry.Result, error) {
	return h.clusterList(ctx, in, "customresourcedefinitions")
}

func (h *handlers) getPriorityClasses(ctx context.Context, in registry.Input) (*registry.Result, error) {
	return h.clusterList(ctx, in, "priorityclasses")
}

func (h *handlers) auditSecrets(ctx context.Context, in registry.Input) (*registry.Result, error) {
	res, _ := h.namespacedList(ctx, in, "secrets")
	if !res.Success {
		return res, nil
	}
	list, _ := res.Result.(map[string]interface{})
	items, _ := list["items"].([]interface{})

	var audit []map[string]interface{}
	for _, item := range items {
		secret, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		name, _ := nested(secret, "metadata", "name").(string)
		secretType, _ := secret["type"].(string)
		created, _ := nested(secret, "metadata", "creationTimestamp").(string)
		data, _ := secret["data"].(map[string]interface{})
		audit = append(audit, map[string]interface{}{
			"name":      name,
			"type":      secretType,
			"created":   created,
			"keyCount":  len(data),
		})
	}
	return registry.Ok(map[string]interface{}{"count": len(audit), "secrets": audit}, res.Command), nil
}

func (h *handlers) auditRBAC(ctx context.Context, in registry.Input) (*registry.Result, error) {
	bindingsRes, _ := h.clusterList(ctx, in, "clusterrolebindings")
	if !bindingsRes.Success {
		return bindingsRes, nil
	}
	list, _ := bindingsRes.Result.(map[string]interface{})
	items, _ := list["items"].([]interface{})

	var risky []map[string]interface{}
	for _, item := range items {
		crb, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		roleRef, _ := crb["roleRef"].(map[string]interface{})
		roleName, _ := roleRef["name"].(string)
		if roleName != "cluster-admin" {
			continue
		}
		name, _ := nested(crb, "metadata", "name").(string)
		subjects, _ := crb["subjects"].([]interface{})
		risky = append(risky, map[string]interface{}{
			"binding":  name,
			"role":     roleName,
			"subjects": subjects,
		})
	}
	return registry.Ok(map[string]interface{}{
		"clusterAdminBindings": risky,
		"count":                len(risky),
	}, bindingsRes.Command), nil
}

func (h *handlers) analyzePodSecurity(ctx context.Context, in registry.Input) (*registry.Result, error) {
	args := []string{"get", "pods", "-o", "json"}
	args = common.WithNamespaceArgs(args, h.deps.Namespace(in))
	args = common.WithContextArgs(args, h.deps.KubeContext(in))
	res := h.deps.RunKubectl(ctx, args, readTimeout, true)
	if !res.Success {
		return res, nil
	}
	list, _ := res.Result.(map[string]interface{})
	items, _ := list["items"].([]interface{})

	var findings []map[string]interface{}
	for _, item := range items {
		pod, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		name, _ := nested(pod, "metadata", "name").(string)
		var issues []string

		secCtx, _ := nested(pod, "spec", "securityContext").(map[string]interface{})
		if runAsNonRoot, ok := secCtx["runAsNonRoot"].(bool); !ok || !runAsNonRoot {
			issues = append(issues, "runAsNonRoot not set")
		}

		containers, _ := nested(pod, "spec", "containers").([]interface{})
		for _, c := range containers {
			cm, ok := c.(map[string]interface{})
			if !ok {
				continue
			}
			ctrSec, _ := cm["securityContext"].(map[string]interface{})
			if privileged, ok := ctrSec["privileged"].(bool); ok && privileged {
				issues = append(issues, "container runs privileged")
			}
			if limits, _ := nested(cm, "resources", "limits").(map[string]interface{}); len(limits) == 0 {
				issues = append(issues, "container has no resource limits")
			}
		}

		if len(issues) > 0 {
			findings = append(findings, map[string]interface{}{"pod": name, "issues": issues})
		}
	}

	return registry.Ok(map[string]interface{}{
		"flaggedPods": findings,
		"count":       len(findings),
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
