// Package networking implements the networking category (spec §4.8
// "Networking"): Services, Endpoints, Ingresses, port-forward, and the
// diagnostic tools (DNS check, service-chain trace, connectivity diagnosis,
// network-policy analysis) built on top of kubectl passthrough and
// cluster-internal exec probes.
package networking

import (
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/registry"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/runner"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/tools/common"
)

func Register(reg *registry.Registry, deps common.Deps) {
	h := &handlers{deps: deps}

	reg.MustRegister(registry.Descriptor{
		Name: "get_services", Category: registry.CategoryNetworking,
		Description: "List Services in a namespace.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Get Services"},
		Params:      []registry.Param{nsParam(), ctxParam()},
		Handler:     h.getServices,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "get_endpoints", Category: registry.CategoryNetworking,
		Description: "List Endpoints in a namespace.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Get Endpoints"},
		Params:      []registry.Param{nsParam(), ctxParam()},
		Handler:     h.getEndpoints,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "get_ingresses", Category: registry.CategoryNetworking,
		Description: "List Ingresses in a namespace.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Get Ingresses"},
		Params:      []registry.Param{nsParam(), ctxParam()},
		Handler:     h.getIngresses,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "port_forward", Category: registry.CategoryNetworking,
		Description: "Start a background port-forward from a local port to a pod or service port.",
		Annotations: registry.Annotations{Title: "Port Forward"},
		Params: []registry.Param{
			nsParam(), ctxParam(),
			{Name: "resource", Type: registry.TypeString, Required: true, Description: "Resource to forward to, e.g. \"pod/mypod\" or \"svc/myservice\"."},
			{Name: "localPort", Type: registry.TypeInteger, Required: true, Description: "Local port to bind."},
			{Name: "remotePort", Type: registry.TypeInteger, Required: true, Description: "Remote port on the resource."},
		},
		Handler: h.portForward,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "check_dns", Category: registry.CategoryNetworking,
		Description: "Resolve a DNS name from inside the cluster using a throwaway debug pod.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Check DNS"},
		Params: []registry.Param{
			nsParam(), ctxParam(),
			{Name: "hostname", Type: registry.TypeString, Required: true, Description: "Name to resolve, e.g. \"myservice.default.svc.cluster.local\"."},
		},
		Handler: h.checkDNS,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "trace_service_chain", Category: registry.CategoryNetworking,
		Description: "Trace a Service to its backing Endpoints and the pods behind them.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Trace Service Chain"},
		Params: []registry.Param{
			nsParam(), ctxParam(),
			{Name: "service", Type: registry.TypeString, Required: true, Description: "Service name."},
		},
		Handler: h.traceServiceChain,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "diagnose_connectivity", Category: registry.CategoryNetworking,
		Description: "Diagnose why a pod cannot reach a target host:port using an in-cluster exec probe.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Diagnose Connectivity"},
		Params: []registry.Param{
			nsParam(), ctxParam(),
			{Name: "pod", Type: registry.TypeString, Required: true, Description: "Source pod."},
			{Name: "target", Type: registry.TypeString, Required: true, Description: "Target host:port."},
		},
		Handler: h.diagnoseConnectivity,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "analyze_network_policies", Category: registry.CategoryNetworking,
		Description: "List NetworkPolicies in a namespace and summarize which pods they select.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Analyze Network Policies"},
		Params:      []registry.Param{nsParam(), ctxParam()},
		Handler:     h.analyzeNetworkPolicies,
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
