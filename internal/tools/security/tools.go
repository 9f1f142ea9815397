// Package security implements the security category (spec §4.8
// "Security"): RBAC objects, ServiceAccounts, pod security admission
// labels, admission webhooks, CustomResourceDefinitions, PriorityClasses,
// and the audit/analysis tools built on top of kubectl passthrough.
package security

import (
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/registry"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/runner"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/tools/common"
)

func Register(reg *registry.Registry, deps common.Deps) {
	h := &handlers{deps: deps}

	reg.MustRegister(registry.Descriptor{
		Name: "get_roles", Category: registry.CategorySecurity,
		Description: "List RBAC Roles in a namespace.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Get Roles"},
		Params:      []registry.Param{nsParam(), ctxParam()},
		Handler:     h.getRoles,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "get_cluster_roles", Category: registry.CategorySecurity,
		Description: "List cluster-scoped RBAC ClusterRoles.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Get Cluster Roles"},
		Params:      []registry.Param{ctxParam()},
		Handler:     h.getClusterRoles,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "get_service_accounts", Category: registry.CategorySecurity,
		Description: "List ServiceAccounts in a namespace.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Get Service Accounts"},
		Params:      []registry.Param{nsParam(), ctxParam()},
		Handler:     h.getServiceAccounts,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "get_pod_security_standards", Category: registry.CategorySecurity,
		Description: "Show Pod Security admission labels on a namespace.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Get Pod Security Standards"},
		Params:      []registry.Param{nsParam(), ctxParam()},
		Handler:     h.getPodSecurityStandards,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "get_admission_webhooks", Category: registry.CategorySecurity,
		Description: "List mutating and validating admission webhook configurations.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Get Admission Webhooks"},
		Params:      []registry.Param{ctxParam()},
		Handler:     h.getAdmissionWebhooks,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "get_custom_resource_definitions", Category: registry.CategorySecurity,
		Description: "List CustomResourceDefinitions registered in the cluster.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Get Custom Resource Definitions"},
		Params:      []registry.Param{ctxParam()},
		Handler:     h.getCRDs,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "get_priority_classes", Category: registry.CategorySecurity,
		Description: "List PriorityClasses in the cluster.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Get Priority Classes"},
		Params:      []registry.Param{ctxParam()},
		Handler:     h.getPriorityClasses,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "audit_secrets", Category: registry.CategorySecurity,
		Description: "Audit Secrets in a namespace by type and age; values are masked.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Audit Secrets"},
		Params:      []registry.Param{nsParam(), ctxParam()},
		Handler:     h.auditSecrets,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "audit_rbac", Category: registry.CategorySecurity,
		Description: "Flag ClusterRoleBindings that grant cluster-admin; wildcard rules in other roles are not checked.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Audit RBAC"},
		Params:      []registry.Param{ctxParam()},
		Handler:     h.auditRBAC,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "analyze_pod_security", Category: registry.CategorySecurity,
		Description: "Flag pods running as root, privileged, or without resource limits.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Analyze Pod Security"},
		Params:      []registry.Param{nsParam(), ctxParam()},
		Handler:     h.analyzePodSecurity,
	})
}

func nsParam() registry.Param {
	return registry.Param{Name: "namespace", Type: registry.TypeString, Description: "Target namespace; defaults to the server's configured default."}
}

func ctxParam() registry.Param {
	return registry.Param{Name: "kubeContext", Type: registry.TypeString, Description: "Kubernetes context to use; defaults to the current context."}
}

const readTimeout = runner.DefaultReadTimeout
