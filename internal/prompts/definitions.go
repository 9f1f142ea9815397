package prompts

// definitions declares the eight prompt templates and their parameter
// schemas (spec §4.9). Rendering source lives in templates/*.md.tmpl.
var definitions = []Template{
	{
		Name:        "troubleshoot_workload",
		Description: "Step-by-step checklist for diagnosing a misbehaving workload.",
		Params: []Param{
			{Name: "workload", Required: true, Description: "Name of the workload (deployment/statefulset/daemonset) to troubleshoot."},
			{Name: "namespace", Required: false, Default: "default", Description: "Namespace the workload lives in."},
		},
	},
	{
		Name:        "deploy_application",
		Description: "Guided procedure for rolling out a new application.",
		Params: []Param{
			{Name: "app_name", Required: true, Description: "Name to give the new application."},
			{Name: "namespace", Required: false, Default: "default", Description: "Target namespace."},
			{Name: "replicas", Required: false, Default: "3", Description: "Initial replica count."},
		},
	},
	{
		Name:        "security_audit",
		Description: "RBAC, pod-security, and secret-exposure audit checklist.",
		Params: []Param{
			{Name: "namespace", Required: false, Default: "all", Description: "Namespace to audit, or \"all\"."},
		},
	},
	{
		Name:        "cost_optimization",
		Description: "Resource-request and idle-workload cost review checklist.",
		Params: []Param{
			{Name: "namespace", Required: false, Default: "all", Description: "Namespace to analyze, or \"all\"."},
		},
	},
	{
		Name:        "disaster_recovery",
		Description: "Backup and restore readiness checklist.",
		Params: []Param{
			{Name: "scope", Required: false, Default: "cluster", Description: "Recovery scope: cluster, namespace, or workload."},
		},
	},
	{
		Name:        "debug_networking",
		Description: "Service-chain and DNS connectivity debugging checklist.",
		Params: []Param{
			{Name: "service_name", Required: true, Description: "Service to trace connectivity for."},
			{Name: "namespace", Required: false, Default: "default", Description: "Namespace the service lives in."},
		},
	},
	{
		Name:        "scale_application",
		Description: "Safe-scaling checklist covering PDBs, HPAs, and resource headroom.",
		Params: []Param{
			{Name: "app_name", Required: true, Description: "Application (deployment/statefulset) to scale."},
			{Name: "target_replicas", Required: true, Description: "Desired replica count."},
		},
	},
	{
		Name:        "upgrade_cluster",
		Description: "Version-skew-aware cluster upgrade checklist.",
		Params: []Param{
			{Name: "current_version", Required: true, Description: "Current Kubernetes version."},
			{Name: "target_version", Required: true, Description: "Target Kubernetes version."},
		},
	},
}
