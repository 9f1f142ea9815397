// Package operations implements the generic operations category (spec §4.8
// "Operations"): apply/patch/create/delete/label/annotate/taint/wait/cp/
// backup/explain/rollout plus node cordon/drain, the raw kubectl passthrough,
// and the natural-language tool resolver (SPEC_FULL.md C8 expansion).
package operations

import (
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/registry"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/runner"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/safety"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/tools/common"
)

// Register adds every operations-category tool. Unlike other categories,
// natural_language_query needs the registry and safety policy themselves (it
// resolves free text to another tool and re-invokes it), so they're passed
// in alongside deps rather than reached through deps.
func Register(reg *registry.Registry, deps common.Deps, policy *safety.Policy) {
	h := &handlers{deps: deps, registry: reg, policy: policy}

	reg.MustRegister(registry.Descriptor{
		Name: "apply_manifest", Category: registry.CategoryOperations,
		Description: "Apply a Kubernetes manifest (YAML or JSON).",
		Annotations: registry.Annotations{Title: "Apply Manifest"},
		Params: []registry.Param{
			ctxParam(),
			{Name: "manifest", Type: registry.TypeString, Required: true, Description: "Manifest document to apply."},
			{Name: "namespace", Type: registry.TypeString, Description: "Namespace override; otherwise namespaces come from the manifest."},
		},
		Handler: h.applyManifest,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "describe_resource", Category: registry.CategoryOperations,
		Description: "Describe any resource by kind and name (kubectl describe equivalent).",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Describe Resource"},
		Params: []registry.Param{
			nsParam(), ctxParam(),
			{Name: "kind", Type: registry.TypeString, Required: true, Description: "Resource kind, e.g. \"pod\", \"deployment\"."},
			{Name: "name", Type: registry.TypeString, Required: true, Description: "Resource name."},
		},
		Handler: h.describeResource,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "patch_resource", Category: registry.CategoryOperations,
		Description: "Patch a resource with a strategic-merge or JSON-merge patch.",
		Annotations: registry.Annotations{Title: "Patch Resource"},
		Params: []registry.Param{
			nsParam(), ctxParam(),
			{Name: "kind", Type: registry.TypeString, Required: true, Description: "Resource kind."},
			{Name: "name", Type: registry.TypeString, Required: true, Description: "Resource name."},
			{Name: "patch", Type: registry.TypeString, Required: true, Description: "Patch document (JSON)."},
			{Name: "patchType", Type: registry.TypeString, Default: "strategic", Description: "One of strategic, merge, json."},
		},
		Handler: h.patchResource,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "get_rollout_status", Category: registry.CategoryOperations,
		Description: "Show the rollout status of a Deployment, DaemonSet, or StatefulSet.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Get Rollout Status"},
		Params: []registry.Param{
			nsParam(), ctxParam(),
			{Name: "kind", Type: registry.TypeString, Default: "deployment", Description: "Controller kind."},
			{Name: "name", Type: registry.TypeString, Required: true, Description: "Controller name."},
		},
		Handler: h.rolloutStatus,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "create_from_yaml", Category: registry.CategoryOperations,
		Description: "Create resources from a YAML or JSON manifest.",
		Annotations: registry.Annotations{Title: "Create From YAML"},
		Params: []registry.Param{
			ctxParam(),
			{Name: "manifest", Type: registry.TypeString, Required: true, Description: "Manifest document to create."},
			{Name: "namespace", Type: registry.TypeString, Description: "Namespace override."},
		},
		Handler: h.createFromYAML,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "delete_resource", Category: registry.CategoryOperations,
		Description: "Delete a resource by kind and name.",
		Annotations: registry.Annotations{Destructive: true, Title: "Delete Resource"},
		Params: []registry.Param{
			nsParam(), ctxParam(),
			{Name: "kind", Type: registry.TypeString, Required: true, Description: "Resource kind."},
			{Name: "name", Type: registry.TypeString, Required: true, Description: "Resource name."},
		},
		Handler: h.deleteResource,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "kubectl_cp", Category: registry.CategoryOperations,
		Description: "Copy a file or directory to or from a pod.",
		Annotations: registry.Annotations{Title: "Kubectl Copy"},
		Params: []registry.Param{
			nsParam(), ctxParam(),
			{Name: "source", Type: registry.TypeString, Required: true, Description: "Source path, local or \"pod:path\"."},
			{Name: "destination", Type: registry.TypeString, Required: true, Description: "Destination path, local or \"pod:path\"."},
		},
		Handler: h.kubectlCp,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "backup_resource", Category: registry.CategoryOperations,
		Description: "Dump a resource's manifest as a backup document.",
		Annotations: registry.Annotations{Title: "Backup Resource"},
		Params: []registry.Param{
			nsParam(), ctxParam(),
			{Name: "kind", Type: registry.TypeString, Required: true, Description: "Resource kind."},
			{Name: "name", Type: registry.TypeString, Required: true, Description: "Resource name."},
		},
		Handler: h.backupResource,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "label_resource", Category: registry.CategoryOperations,
		Description: "Add or update labels on a resource.",
		Annotations: registry.Annotations{Title: "Label Resource"},
		Params: []registry.Param{
			nsParam(), ctxParam(),
			{Name: "kind", Type: registry.TypeString, Required: true, Description: "Resource kind."},
			{Name: "name", Type: registry.TypeString, Required: true, Description: "Resource name."},
			{Name: "labels", Type: registry.TypeObject, Required: true, Description: "Labels to set, as key/value pairs."},
		},
		Handler: h.labelResource,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "annotate_resource", Category: registry.CategoryOperations,
		Description: "Add or update annotations on a resource.",
		Annotations: registry.Annotations{Title: "Annotate Resource"},
		Params: []registry.Param{
			nsParam(), ctxParam(),
			{Name: "kind", Type: registry.TypeString, Required: true, Description: "Resource kind."},
			{Name: "name", Type: registry.TypeString, Required: true, Description: "Resource name."},
			{Name: "annotations", Type: registry.TypeObject, Required: true, Description: "Annotations to set, as key/value pairs."},
		},
		Handler: h.annotateResource,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "taint_node", Category: registry.CategoryOperations,
		// Treated as destructive for every effect: annotations are static per
		// tool name and can't vary by the call-time effect argument, and
		// NoExecute taints evict running pods (see DESIGN.md).
		Description: "Add a taint to a node; treated as destructive for every effect.",
		Annotations: registry.Annotations{Destructive: true, Title: "Taint Node"},
		Params: []registry.Param{
			ctxParam(),
			{Name: "node", Type: registry.TypeString, Required: true, Description: "Node name."},
			{Name: "key", Type: registry.TypeString, Required: true, Description: "Taint key."},
			{Name: "value", Type: registry.TypeString, Description: "Taint value."},
			{Name: "effect", Type: registry.TypeString, Required: true, Description: "One of NoSchedule, PreferNoSchedule, NoExecute."},
		},
		Handler: h.taintNode,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "wait_for_resource", Category: registry.CategoryOperations,
		Description: "Block until a resource meets a condition, or until timeout.",
		Annotations: registry.Annotations{Title: "Wait For Resource"},
		Params: []registry.Param{
			nsParam(), ctxParam(),
			{Name: "kind", Type: registry.TypeString, Required: true, Description: "Resource kind."},
			{Name: "name", Type: registry.TypeString, Required: true, Description: "Resource name."},
			{Name: "condition", Type: registry.TypeString, Default: "Ready", Description: "Condition to wait for, e.g. \"Ready\", \"condition=Available\"."},
			{Name: "timeoutSeconds", Type: registry.TypeInteger, Default: 60, Description: "Maximum seconds to wait."},
		},
		Handler: h.waitForResource,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "cordon_node", Category: registry.CategoryOperations,
		Description: "Mark a node unschedulable.",
		Annotations: registry.Annotations{Title: "Cordon Node"},
		Params:      []registry.Param{ctxParam(), {Name: "node", Type: registry.TypeString, Required: true, Description: "Node name."}},
		Handler:     h.cordonNode,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "drain_node", Category: registry.CategoryOperations,
		Description: "Cordon a node and evict its pods.",
		Annotations: registry.Annotations{Destructive: true, Title: "Drain Node"},
		Params: []registry.Param{
			ctxParam(),
			{Name: "node", Type: registry.TypeString, Required: true, Description: "Node name."},
			{Name: "ignoreDaemonSets", Type: registry.TypeBoolean, Default: true, Description: "Ignore DaemonSet-managed pods."},
			{Name: "deleteEmptyDirData", Type: registry.TypeBoolean, Default: false, Description: "Delete pods using emptyDir volumes."},
		},
		Handler: h.drainNode,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "kubectl_passthrough", Category: registry.CategoryOperations,
		Description: "Run an arbitrary kubectl subcommand not covered by a dedicated tool. Prefer a dedicated tool when one exists.",
		Annotations: registry.Annotations{Title: "Kubectl Passthrough"},
		Params: []registry.Param{
			ctxParam(),
			{Name: "args", Type: registry.TypeArray, Required: true, Description: "Full argv to pass to kubectl, e.g. [\"get\", \"pods\"]."},
		},
		Handler: h.kubectlPassthrough,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "explain_resource", Category: registry.CategoryOperations,
		Description: "Show built-in documentation for a resource field (kubectl explain).",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Explain Resource"},
		Params: []registry.Param{
			ctxParam(),
			{Name: "field", Type: registry.TypeString, Required: true, Description: "Resource or resource.field path, e.g. \"pod.spec.containers\"."},
		},
		Handler: h.explainResource,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "natural_language_query", Category: registry.CategoryOperations,
		Description: "Resolve a free-text request (e.g. \"show me pods that are crashing in prod\") to a registered tool and invoke it. The safety gate is re-applied to whichever tool is resolved.",
		Annotations: registry.Annotations{Title: "Natural Language Query"},
		Params: []registry.Param{
			nsParam(), ctxParam(),
			{Name: "query", Type: registry.TypeString, Required: true, Description: "Free-text request."},
		},
		Handler: h.naturalLanguageQuery,
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
