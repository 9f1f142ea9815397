// Package cluster implements the cluster/contexts category (spec §4.8
// "Cluster / contexts"): context enumeration and switching backed directly
// by the provider's kubeconfig parsing (spec §4.3), plus cluster-info,
// version, node listing, API resource discovery, and an aggregate health
// check built from kubectl passthrough.
package cluster

import (
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/registry"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/runner"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/tools/common"
)

func Register(reg *registry.Registry, deps common.Deps) {
	h := &handlers{deps: deps}

	reg.MustRegister(registry.Descriptor{
		Name: "list_contexts", Category: registry.CategoryCluster,
		Description: "List every context defined in the kubeconfig.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "List Contexts"},
		Handler:     h.listContexts,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "get_current_context", Category: registry.CategoryCluster,
		Description: "Return the currently active context, including any process-wide override from switch_context.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Get Current Context"},
		Handler:     h.getCurrentContext,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "describe_context", Category: registry.CategoryCluster,
		Description: "Describe a single kubeconfig context: cluster, user, and namespace.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Describe Context"},
		Params: []registry.Param{
			{Name: "name", Type: registry.TypeString, Required: true, Description: "Context name."},
		},
		Handler: h.describeContext,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "switch_context", Category: registry.CategoryCluster,
		Description: "Set the process-wide default context used by subsequent tool calls that omit kubeContext.",
		Annotations: registry.Annotations{Title: "Switch Context"},
		Params: []registry.Param{
			{Name: "name", Type: registry.TypeString, Required: true, Description: "Context name to switch to."},
		},
		Handler: h.switchContext,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "set_default_namespace", Category: registry.CategoryCluster,
		Description: "Set the process-wide default namespace used by subsequent tool calls that omit namespace.",
		Annotations: registry.Annotations{Title: "Set Default Namespace"},
		Params: []registry.Param{
			{Name: "namespace", Type: registry.TypeString, Required: true, Description: "Namespace to make the default."},
		},
		Handler: h.setDefaultNamespace,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "get_cluster_info", Category: registry.CategoryCluster,
		Description: "Show cluster control-plane endpoint information.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Get Cluster Info"},
		Params:      []registry.Param{ctxParam()},
		Handler:     h.getClusterInfo,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "get_cluster_version", Category: registry.CategoryCluster,
		Description: "Show the client and server Kubernetes versions.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Get Cluster Version"},
		Params:      []registry.Param{ctxParam()},
		Handler:     h.getClusterVersion,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "get_nodes", Category: registry.CategoryCluster,
		Description: "List cluster nodes and their status.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Get Nodes"},
		Params:      []registry.Param{ctxParam()},
		Handler:     h.getNodes,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "describe_node", Category: registry.CategoryCluster,
		Description: "Dump a single node's full status and condition detail.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Describe Node"},
		Params: []registry.Param{
			ctxParam(),
			{Name: "name", Type: registry.TypeString, Required: true, Description: "Node name."},
		},
		Handler: h.describeNode,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "get_api_resources", Category: registry.CategoryCluster,
		Description: "List API resource types the cluster's API server serves.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Get API Resources"},
		Params:      []registry.Param{ctxParam()},
		Handler:     h.getAPIResources,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "health_check_cluster", Category: registry.CategoryCluster,
		Description: "Summarize cluster health: node readiness, control-plane reachability.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Cluster Health Check"},
		Params:      []registry.Param{ctxParam()},
		Handler:     h.healthCheckCluster,
	})
}

func ctxParam() registry.Param {
	return registry.Param{Name: "kubeContext", Type: registry.TypeString, Description: "Kubernetes context to use; defaults to the current context."}
}

const readTimeout = runner.DefaultReadTimeout
