// Package kind implements the kind category (spec §4.8 "kind"): managing
// local Kubernetes-in-Docker clusters for development and CI, grounded on
// original_source/kubectl_mcp_tool/tools/kind.py's _run_kind wrapper.
package kind

import (
	"time"

	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/registry"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/runner"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/tools/common"
)

type handlers struct {
	deps common.Deps
}

func Register(reg *registry.Registry, deps common.Deps) {
	h := &handlers{deps: deps}

	reg.MustRegister(registry.Descriptor{
		Name: "kind_detect_tool", Category: registry.CategoryKind,
		Description: "Detect whether the kind CLI is installed and report its version.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Detect kind"},
		Handler:     h.detect,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "kind_version_tool", Category: registry.CategoryKind,
		Description: "Show the kind CLI version.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "kind Version"},
		Handler:     h.version,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "kind_list_clusters_tool", Category: registry.CategoryKind,
		Description: "List all kind clusters on this host.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "List kind Clusters"},
		Handler:     h.listClusters,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "kind_get_nodes_tool", Category: registry.CategoryKind,
		Description: "List the node containers for a kind cluster.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Get kind Nodes"},
		Params:      []registry.Param{clusterParam()},
		Handler:     h.getNodes,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "kind_get_kubeconfig_tool", Category: registry.CategoryKind,
		Description: "Print the kubeconfig for a kind cluster.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Get kind Kubeconfig"},
		Params: []registry.Param{
			clusterParam(),
			{Name: "internal", Type: registry.TypeBoolean, Default: false, Description: "Return the internal (container-network) kubeconfig instead of the external one."},
		},
		Handler: h.getKubeconfig,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "kind_export_logs_tool", Category: registry.CategoryKind,
		Description: "Export a kind cluster's node logs to a directory for debugging.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Export kind Logs"},
		Params: []registry.Param{
			clusterParam(),
			{Name: "outputDir", Type: registry.TypeString, Required: true, Description: "Directory to export logs into."},
		},
		Handler: h.exportLogs,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "kind_cluster_info_tool", Category: registry.CategoryKind,
		Description: "Show node count and kubeconfig availability for a kind cluster.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "kind Cluster Info"},
		Params:      []registry.Param{clusterParam()},
		Handler:     h.clusterInfo,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "kind_node_labels_tool", Category: registry.CategoryKind,
		Description: "Show Docker labels on each node container of a kind cluster.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "kind Node Labels"},
		Params:      []registry.Param{clusterParam()},
		Handler:     h.nodeLabels,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "kind_create_cluster_tool", Category: registry.CategoryKind,
		Description: "Create a new kind cluster.",
		Annotations: registry.Annotations{Destructive: true, Title: "Create kind Cluster"},
		Params: []registry.Param{
			clusterParam(),
			{Name: "image", Type: registry.TypeString, Description: "Node image, e.g. \"kindest/node:v1.29.0\"; determines the Kubernetes version."},
			{Name: "config", Type: registry.TypeString, Description: "Path to a kind config YAML file for multi-node or custom setups."},
			{Name: "wait", Type: registry.TypeString, Default: "5m", Description: "Wait timeout for the control plane to become ready."},
			{Name: "retain", Type: registry.TypeBoolean, Default: false, Description: "Retain nodes if cluster creation fails, for debugging."},
		},
		Handler: h.createCluster,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "kind_delete_cluster_tool", Category: registry.CategoryKind,
		Description: "Delete a kind cluster.",
		Annotations: registry.Annotations{Destructive: true, Title: "Delete kind Cluster"},
		Params:      []registry.Param{clusterParam()},
		Handler:     h.deleteCluster,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "kind_delete_all_clusters_tool", Category: registry.CategoryKind,
		Description: "Delete every kind cluster on this host.",
		Annotations: registry.Annotations{Destructive: true, Title: "Delete All kind Clusters"},
		Handler:     h.deleteAllClusters,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "kind_load_image_tool", Category: registry.CategoryKind,
		Description: "Load locally built Docker images directly into kind cluster nodes, bypassing a registry push.",
		Annotations: registry.Annotations{Title: "Load Image Into kind"},
		Params: []registry.Param{
			clusterParam(),
			{Name: "images", Type: registry.TypeArray, Required: true, Description: "Docker image names to load."},
			{Name: "nodes", Type: registry.TypeArray, Description: "Specific node containers to load into; default is all nodes."},
		},
		Handler: h.loadImage,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "kind_load_image_archive_tool", Category: registry.CategoryKind,
		Description: "Load Docker images from a tar archive into kind cluster nodes.",
		Annotations: registry.Annotations{Title: "Load Image Archive Into kind"},
		Params: []registry.Param{
			clusterParam(),
			{Name: "archive", Type: registry.TypeString, Required: true, Description: "Path to the image archive (tar file)."},
			{Name: "nodes", Type: registry.TypeArray, Description: "Specific node containers to load into; default is all nodes."},
		},
		Handler: h.loadImageArchive,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "kind_build_node_image_tool", Category: registry.CategoryKind,
		Description: "Build a kind node image from a Kubernetes source tree, for testing custom Kubernetes builds.",
		Annotations: registry.Annotations{Title: "Build kind Node Image"},
		Params: []registry.Param{
			{Name: "image", Type: registry.TypeString, Description: "Name for the resulting image; default \"kindest/node:latest\"."},
			{Name: "baseImage", Type: registry.TypeString, Description: "Base image to build from."},
			{Name: "kubeRoot", Type: registry.TypeString, Description: "Path to the Kubernetes source root."},
		},
		Handler: h.buildNodeImage,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "kind_set_kubeconfig_tool", Category: registry.CategoryKind,
		Description: "Export a kind cluster's kubeconfig and set it as the current context.",
		Annotations: registry.Annotations{Title: "Set kind Kubeconfig"},
		Params:      []registry.Param{clusterParam()},
		Handler:     h.setKubeconfig,
	})
}

func clusterParam() registry.Param {
	return registry.Param{Name: "name", Type: registry.TypeString, Default: "kind", Description: "Name of the kind cluster."}
}

const (
	readTimeout     = runner.DefaultReadTimeout
	mutatingTimeout = runner.DefaultMutatingTimeout
	// longTimeout covers cluster creation and log export, which routinely
	// run past the standard mutating-call budget.
	longTimeout = 10 * time.Minute
	// buildTimeout covers node-image builds.
	buildTimeout = runner.DefaultKindBuildTimeout
)
