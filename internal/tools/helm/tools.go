// Package helm implements the Helm category (spec §4.8 "Helm"): the full
// surface of `helm` subcommands used to inspect and manage releases, repos,
// and charts, all invoked through the subprocess runner (spec §4.4) since
// the teacher's Go Helm SDK bindings are unimplemented stubs — the original
// author's own comment on HelmManager recommends shelling out to the CLI.
package helm

import (
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/registry"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/runner"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/tools/common"
)

func Register(reg *registry.Registry, deps common.Deps) {
	h := &handlers{deps: deps}

	release := registry.Param{Name: "release", Type: registry.TypeString, Required: true, Description: "Helm release name."}
	chartRef := registry.Param{Name: "chart", Type: registry.TypeString, Required: true, Description: "Chart reference, e.g. \"bitnami/redis\" or a local path."}

	readOps := []struct {
		name, description, title, helmArgs string
	}{
		{"helm_list", "List installed Helm releases.", "Helm List", "list"},
		{"helm_status", "Show a release's current status.", "Helm Status", "status"},
		{"helm_history", "Show a release's revision history.", "Helm History", "history"},
		{"helm_get_values", "Show a release's computed values.", "Helm Get Values", "get values"},
		{"helm_get_manifest", "Show a release's rendered Kubernetes manifest.", "Helm Get Manifest", "get manifest"},
		{"helm_get_notes", "Show a release's NOTES.txt output.", "Helm Get Notes", "get notes"},
		{"helm_get_hooks", "Show a release's chart hooks.", "Helm Get Hooks", "get hooks"},
		{"helm_get_all", "Show all of a release's get-subcommand information at once.", "Helm Get All", "get all"},
	}
	for _, op := range readOps {
		op := op
		reg.MustRegister(registry.Descriptor{
			Name: op.name, Category: registry.CategoryHelm,
			Description: op.description,
			Annotations: registry.Annotations{ReadOnly: true, Title: op.title},
			Params:      []registry.Param{release, nsParam(), ctxParam()},
			Handler:     h.releaseRead(op.helmArgs),
		})
	}

	chartReadOps := []struct {
		name, description, title, helmArgs string
	}{
		{"helm_show_chart", "Show a chart's Chart.yaml.", "Helm Show Chart", "show chart"},
		{"helm_show_values", "Show a chart's default values.yaml.", "Helm Show Values", "show values"},
		{"helm_show_readme", "Show a chart's README.", "Helm Show Readme", "show readme"},
		{"helm_show_crds", "Show a chart's bundled CRDs.", "Helm Show CRDs", "show crds"},
		{"helm_show_all", "Show all chart information at once.", "Helm Show All", "show all"},
	}
	for _, op := range chartReadOps {
		op := op
		reg.MustRegister(registry.Descriptor{
			Name: op.name, Category: registry.CategoryHelm,
			Description: op.description,
			Annotations: registry.Annotations{ReadOnly: true, Title: op.title},
			Params:      []registry.Param{chartRef},
			Handler:     h.chartRead(op.helmArgs),
		})
	}

	reg.MustRegister(registry.Descriptor{
		Name: "helm_search_repo", Category: registry.CategoryHelm,
		Description: "Search added Helm repos for a chart keyword.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Helm Search Repo"},
		Params:      []registry.Param{{Name: "keyword", Type: registry.TypeString, Required: true, Description: "Search keyword."}},
		Handler:     h.searchRepo,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "helm_search_hub", Category: registry.CategoryHelm,
		Description: "Search Artifact Hub for a chart keyword.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Helm Search Hub"},
		Params:      []registry.Param{{Name: "keyword", Type: registry.TypeString, Required: true, Description: "Search keyword."}},
		Handler:     h.searchHub,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "helm_repo_list", Category: registry.CategoryHelm,
		Description: "List added Helm repos.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Helm Repo List"},
		Handler:     h.repoList,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "helm_repo_add", Category: registry.CategoryHelm,
		Description: "Add a Helm chart repository.",
		Annotations: registry.Annotations{Title: "Helm Repo Add"},
		Params: []registry.Param{
			{Name: "name", Type: registry.TypeString, Required: true, Description: "Local repo name."},
			{Name: "url", Type: registry.TypeString, Required: true, Description: "Repo URL."},
		},
		Handler: h.repoAdd,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "helm_repo_remove", Category: registry.CategoryHelm,
		Description: "Remove a Helm chart repository.",
		Annotations: registry.Annotations{Title: "Helm Repo Remove"},
		Params:      []registry.Param{{Name: "name", Type: registry.TypeString, Required: true, Description: "Local repo name."}},
		Handler:     h.repoRemove,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "helm_repo_update", Category: registry.CategoryHelm,
		Description: "Refresh local chart metadata for added repos.",
		Annotations: registry.Annotations{Title: "Helm Repo Update"},
		Handler:     h.repoUpdate,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "install_helm_chart", Category: registry.CategoryHelm,
		Description: "Install a Helm chart as a new release.",
		Annotations: registry.Annotations{Title: "Install Helm Chart"},
		Params: []registry.Param{
			release, chartRef, nsParam(), ctxParam(),
			{Name: "values", Type: registry.TypeObject, Description: "Values to override, as a JSON object."},
			{Name: "createNamespace", Type: registry.TypeBoolean, Default: false, Description: "Create the namespace if it does not exist."},
		},
		Handler: h.install,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "upgrade_helm_chart", Category: registry.CategoryHelm,
		Description: "Upgrade an existing release to a new chart version or values.",
		Annotations: registry.Annotations{Title: "Upgrade Helm Chart"},
		Params: []registry.Param{
			release, chartRef, nsParam(), ctxParam(),
			{Name: "values", Type: registry.TypeObject, Description: "Values to override, as a JSON object."},
			{Name: "install", Type: registry.TypeBoolean, Default: false, Description: "Install if the release does not already exist."},
		},
		Handler: h.upgrade,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "uninstall_helm_release", Category: registry.CategoryHelm,
		Description: "Uninstall a Helm release and delete its resources.",
		Annotations: registry.Annotations{Destructive: true, Title: "Uninstall Helm Release"},
		Params:      []registry.Param{release, nsParam(), ctxParam()},
		Handler:     h.uninstall,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "helm_rollback", Category: registry.CategoryHelm,
		Description: "Roll a release back to a previous revision.",
		Annotations: registry.Annotations{Title: "Helm Rollback"},
		Params: []registry.Param{
			release, nsParam(), ctxParam(),
			{Name: "revision", Type: registry.TypeInteger, Description: "Target revision; 0 means the previous one."},
		},
		Handler: h.rollback,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "helm_test", Category: registry.CategoryHelm,
		Description: "Run a release's test hooks.",
		Annotations: registry.Annotations{Title: "Helm Test"},
		Params:      []registry.Param{release, nsParam(), ctxParam()},
		Handler:     h.test,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "helm_template", Category: registry.CategoryHelm,
		Description: "Render a chart's manifests locally without installing (dry-run).",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Helm Template"},
		Params: []registry.Param{
			release, chartRef, nsParam(),
			{Name: "values", Type: registry.TypeObject, Description: "Values to override, as a JSON object."},
		},
		Handler: h.template,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "helm_template_apply", Category: registry.CategoryHelm,
		Description: "Render a chart's manifests and apply them with kubectl.",
		Annotations: registry.Annotations{Title: "Helm Template Apply"},
		Params: []registry.Param{
			release, chartRef, nsParam(), ctxParam(),
			{Name: "values", Type: registry.TypeObject, Description: "Values to override, as a JSON object."},
		},
		Handler: h.templateApply,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "helm_create", Category: registry.CategoryHelm,
		Description: "Scaffold a new chart directory on disk.",
		Annotations: registry.Annotations{Title: "Helm Create"},
		Params:      []registry.Param{{Name: "name", Type: registry.TypeString, Required: true, Description: "New chart name."}},
		Handler:     h.create,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "helm_lint", Category: registry.CategoryHelm,
		Description: "Lint a chart for common mistakes.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Helm Lint"},
		Params:      []registry.Param{chartRef},
		Handler:     h.lint,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "helm_package", Category: registry.CategoryHelm,
		Description: "Package a chart directory into a versioned archive.",
		Annotations: registry.Annotations{Title: "Helm Package"},
		Params:      []registry.Param{chartRef},
		Handler:     h.pkg,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "helm_pull", Category: registry.CategoryHelm,
		Description: "Download a chart archive from a repo.",
		Annotations: registry.Annotations{Title: "Helm Pull"},
		Params: []registry.Param{
			chartRef,
			{Name: "untar", Type: registry.TypeBoolean, Default: false, Description: "Unpack the archive after downloading."},
		},
		Handler: h.pull,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "helm_dependency_list", Category: registry.CategoryHelm,
		Description: "List a chart's dependencies.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Helm Dependency List"},
		Params:      []registry.Param{chartRef},
		Handler:     h.dependencyList,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "helm_dependency_update", Category: registry.CategoryHelm,
		Description: "Download a chart's declared dependencies.",
		Annotations: registry.Annotations{Title: "Helm Dependency Update"},
		Params:      []registry.Param{chartRef},
		Handler:     h.dependencyUpdate,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "helm_dependency_build", Category: registry.CategoryHelm,
		Description: "Rebuild a chart's dependencies from Chart.lock.",
		Annotations: registry.Annotations{Title: "Helm Dependency Build"},
		Params:      []registry.Param{chartRef},
		Handler:     h.dependencyBuild,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "helm_version", Category: registry.CategoryHelm,
		Description: "Show the installed Helm client version.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Helm Version"},
		Handler:     h.version,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "helm_env", Category: registry.CategoryHelm,
		Description: "Show Helm's resolved client environment variables.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Helm Env"},
		Handler:     h.env,
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
