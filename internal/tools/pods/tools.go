// Package pods implements the 11 pod-category tools (spec §4.8 "Pods").
package pods

import (
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/registry"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/runner"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/tools/common"
)

// Register adds every pod-category tool to reg.
func Register(reg *registry.Registry, deps common.Deps) {
	h := &handlers{deps: deps}

	reg.MustRegister(registry.Descriptor{
		Name: "get_pods", Category: registry.CategoryPods,
		Description: "List pods in a namespace, or across all namespaces.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Get Pods"},
		Params: []registry.Param{
			nsParam(), ctxParam(),
			{Name: "allNamespaces", Type: registry.TypeBoolean, Default: false, Description: "List pods across all namespaces."},
			{Name: "labelSelector", Type: registry.TypeString, Description: "Label selector to filter pods."},
		},
		Handler: h.getPods,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "get_logs", Category: registry.CategoryPods,
		Description: "Fetch logs from a pod's container.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Get Pod Logs"},
		Params: []registry.Param{
			nsParam(), ctxParam(),
			{Name: "pod", Type: registry.TypeString, Required: true, Description: "Pod name."},
			{Name: "container", Type: registry.TypeString, Description: "Container name, if the pod has more than one."},
			{Name: "tailLines", Type: registry.TypeInteger, Default: 200, Description: "Number of lines to return from the end of the log."},
		},
		Handler: h.getLogs,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "get_previous_logs", Category: registry.CategoryPods,
		Description: "Fetch logs from a pod container's previous (crashed) instance.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Get Previous Pod Logs"},
		Params: []registry.Param{
			nsParam(), ctxParam(),
			{Name: "pod", Type: registry.TypeString, Required: true, Description: "Pod name."},
			{Name: "container", Type: registry.TypeString, Description: "Container name, if the pod has more than one."},
			{Name: "tailLines", Type: registry.TypeInteger, Default: 200, Description: "Number of lines to return from the end of the log."},
		},
		Handler: h.getPreviousLogs,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "get_pod_events", Category: registry.CategoryPods,
		Description: "List Kubernetes events involving a pod.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Get Pod Events"},
		Params: []registry.Param{
			nsParam(), ctxParam(),
			{Name: "pod", Type: registry.TypeString, Required: true, Description: "Pod name."},
		},
		Handler: h.getPodEvents,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "describe_pod", Category: registry.CategoryPods,
		Description: "Dump a pod's full status and condition detail, as kubectl describe would.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Describe Pod"},
		Params: []registry.Param{
			nsParam(), ctxParam(),
			{Name: "pod", Type: registry.TypeString, Required: true, Description: "Pod name."},
		},
		Handler: h.describePod,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "exec_in_pod", Category: registry.CategoryPods,
		Description: "Execute a command inside a running pod's container.",
		Annotations: registry.Annotations{ReadOnly: false, Destructive: false, Title: "Exec In Pod"},
		Params: []registry.Param{
			nsParam(), ctxParam(),
			{Name: "pod", Type: registry.TypeString, Required: true, Description: "Pod name."},
			{Name: "container", Type: registry.TypeString, Description: "Container name, if the pod has more than one."},
			{Name: "command", Type: registry.TypeArray, Required: true, Description: "Command and arguments to execute."},
		},
		Handler: h.execInPod,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "health_check_pods", Category: registry.CategoryPods,
		Description: "Summarize readiness/restart health for pods in a namespace.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Pod Health Check"},
		Params:      []registry.Param{nsParam(), ctxParam()},
		Handler:     h.healthCheckPods,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "diagnose_pod_crash", Category: registry.CategoryPods,
		Description: "Diagnose a CrashLoopBackOff pod: last termination reason, exit code, and recent events.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Diagnose Pod Crash"},
		Params: []registry.Param{
			nsParam(), ctxParam(),
			{Name: "pod", Type: registry.TypeString, Required: true, Description: "Pod name."},
		},
		Handler: h.diagnosePodCrash,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "diagnose_pending_pods", Category: registry.CategoryPods,
		Description: "Find pods stuck Pending and report the scheduler's PodScheduled condition message for each.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Diagnose Pending Pods"},
		Params:      []registry.Param{nsParam(), ctxParam()},
		Handler:     h.diagnosePendingPods,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "get_evicted_pods", Category: registry.CategoryPods,
		Description: "List pods in the Evicted state.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Get Evicted Pods"},
		Params:      []registry.Param{nsParam(), ctxParam()},
		Handler:     h.getEvictedPods,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "delete_failed_pods", Category: registry.CategoryPods,
		Description: "Delete pods in Failed or Evicted state to clean up a namespace.",
		Annotations: registry.Annotations{Destructive: true, Title: "Delete Failed Pods"},
		Params:      []registry.Param{nsParam(), ctxParam()},
		Handler:     h.deleteFailedPods,
	})
}

func nsParam() registry.Param {
	return registry.Param{Name: "namespace", Type: registry.TypeString, Description: "Target namespace; defaults to the server's configured default."}
}

func ctxParam() registry.Param {
	return registry.Param{Name: "kubeContext", Type: registry.TypeString, Description: "Kubernetes context to use; defaults to the current context."}
}

const readTimeout = runner.DefaultReadTimeout
const logTimeout = runner.DefaultLogReadTimeout
const mutatingTimeout = runner.DefaultMutatingTimeout
