// Package core implements the core-resources category (spec §4.8 "Core
// resources"): namespaces, configmaps, secrets, events, resource quotas, and
// limit ranges. Secret values returned here pass through secretmask before
// reaching the client, applied by the dispatcher (spec §4.2, §4.6).
package core

import (
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/registry"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/runner"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/tools/common"
)

func Register(reg *registry.Registry, deps common.Deps) {
	h := &handlers{deps: deps}

	reg.MustRegister(registry.Descriptor{
		Name: "get_namespaces", Category: registry.CategoryCore,
		Description: "List all namespaces in the cluster.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Get Namespaces"},
		Params:      []registry.Param{ctxParam()},
		Handler:     h.getNamespaces,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "get_configmaps", Category: registry.CategoryCore,
		Description: "List ConfigMaps in a namespace.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Get ConfigMaps"},
		Params:      []registry.Param{nsParam(), ctxParam()},
		Handler:     h.getConfigMaps,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "get_secrets", Category: registry.CategoryCore,
		Description: "List Secrets in a namespace. Secret data and stringData are masked before being returned.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Get Secrets"},
		Params:      []registry.Param{nsParam(), ctxParam()},
		Handler:     h.getSecrets,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "get_events", Category: registry.CategoryCore,
		Description: "List recent Kubernetes events in a namespace.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Get Events"},
		Params:      []registry.Param{nsParam(), ctxParam()},
		Handler:     h.getEvents,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "get_resource_quotas", Category: registry.CategoryCore,
		Description: "List ResourceQuotas in a namespace.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Get Resource Quotas"},
		Params:      []registry.Param{nsParam(), ctxParam()},
		Handler:     h.getResourceQuotas,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "get_limit_ranges", Category: registry.CategoryCore,
		Description: "List LimitRanges in a namespace.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Get Limit Ranges"},
		Params:      []registry.Param{nsParam(), ctxParam()},
		Handler:     h.getLimitRanges,
	})
}

func nsParam() registry.Param {
	return registry.Param{Name: "namespace", Type: registry.TypeString, Description: "Target namespace; defaults to the server's configured default."}
}

func ctxParam() registry.Param {
	return registry.Param{Name: "kubeContext", Type: registry.TypeString, Description: "Kubernetes context to use; defaults to the current context."}
}

const readTimeout = runner.DefaultReadTimeout
