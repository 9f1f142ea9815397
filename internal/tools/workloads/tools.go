// Package workloads implements the deployments-and-controllers category
// (spec §4.8 "Deployments & controllers"): Deployments, StatefulSets,
// DaemonSets, ReplicaSets, Jobs/CronJobs, HorizontalPodAutoscalers, and
// PodDisruptionBudgets, plus the create/scale/restart write operations for
// Deployments.
package workloads

import (
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/registry"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/runner"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/tools/common"
)

func Register(reg *registry.Registry, deps common.Deps) {
	h := &handlers{deps: deps}

	reg.MustRegister(registry.Descriptor{
		Name: "get_deployments", Category: registry.CategoryDeployments,
		Description: "List Deployments in a namespace.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Get Deployments"},
		Params:      []registry.Param{nsParam(), ctxParam()},
		Handler:     h.getDeployments,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "get_statefulsets", Category: registry.CategoryDeployments,
		Description: "List StatefulSets in a namespace.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Get StatefulSets"},
		Params:      []registry.Param{nsParam(), ctxParam()},
		Handler:     h.getStatefulSets,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "get_daemonsets", Category: registry.CategoryDeployments,
		Description: "List DaemonSets in a namespace.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Get DaemonSets"},
		Params:      []registry.Param{nsParam(), ctxParam()},
		Handler:     h.getDaemonSets,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "get_replicasets", Category: registry.CategoryDeployments,
		Description: "List ReplicaSets in a namespace.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Get ReplicaSets"},
		Params:      []registry.Param{nsParam(), ctxParam()},
		Handler:     h.getReplicaSets,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "get_jobs", Category: registry.CategoryDeployments,
		Description: "List Jobs in a namespace.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Get Jobs"},
		Params:      []registry.Param{nsParam(), ctxParam()},
		Handler:     h.getJobs,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "get_cronjobs", Category: registry.CategoryDeployments,
		Description: "List CronJobs in a namespace.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Get CronJobs"},
		Params:      []registry.Param{nsParam(), ctxParam()},
		Handler:     h.getCronJobs,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "get_horizontal_pod_autoscalers", Category: registry.CategoryDeployments,
		Description: "List HorizontalPodAutoscalers in a namespace.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Get HPAs"},
		Params:      []registry.Param{nsParam(), ctxParam()},
		Handler:     h.getHPAs,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "get_pod_disruption_budgets", Category: registry.CategoryDeployments,
		Description: "List PodDisruptionBudgets in a namespace.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Get PodDisruptionBudgets"},
		Params:      []registry.Param{nsParam(), ctxParam()},
		Handler:     h.getPDBs,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "create_deployment", Category: registry.CategoryDeployments,
		Description: "Create a Deployment running a single container image.",
		Annotations: registry.Annotations{Title: "Create Deployment"},
		Params: []registry.Param{
			nsParam(), ctxParam(),
			{Name: "name", Type: registry.TypeString, Required: true, Description: "Deployment name."},
			{Name: "image", Type: registry.TypeString, Required: true, Description: "Container image."},
			{Name: "replicas", Type: registry.TypeInteger, Default: 1, Description: "Initial replica count."},
			{Name: "port", Type: registry.TypeInteger, Description: "Container port to expose."},
		},
		Handler: h.createDeployment,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "scale_deployment", Category: registry.CategoryDeployments,
		Description: "Scale a Deployment to a target replica count.",
		Annotations: registry.Annotations{Title: "Scale Deployment"},
		Params: []registry.Param{
			nsParam(), ctxParam(),
			{Name: "name", Type: registry.TypeString, Required: true, Description: "Deployment name."},
			{Name: "replicas", Type: registry.TypeInteger, Required: true, Description: "Target replica count."},
		},
		Handler: h.scaleDeployment,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "restart_deployment", Category: registry.CategoryDeployments,
		Description: "Trigger a rolling restart of a Deployment's pods.",
		Annotations: registry.Annotations{Title: "Restart Deployment"},
		Params: []registry.Param{
			nsParam(), ctxParam(),
			{Name: "name", Type: registry.TypeString, Required: true, Description: "Deployment name."},
		},
		Handler: h.restartDeployment,
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
