// Package storage implements the storage category (spec §4.8 "Storage"):
// PersistentVolumes, PersistentVolumeClaims, and StorageClasses.
package storage

import (
	"context"

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
		Name: "get_persistent_volumes", Category: registry.CategoryStorage,
		Description: "List PersistentVolumes in the cluster.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Get Persistent Volumes"},
		Params:      []registry.Param{ctxParam()},
		Handler:     h.getPersistentVolumes,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "get_persistent_volume_claims", Category: registry.CategoryStorage,
		Description: "List PersistentVolumeClaims in a namespace.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Get Persistent Volume Claims"},
		Params:      []registry.Param{nsParam(), ctxParam()},
		Handler:     h.getPersistentVolumeClaims,
	})

	reg.MustRegister(registry.Descriptor{
		Name: "get_storage_classes", Category: registry.CategoryStorage,
		Description: "List StorageClasses in the cluster.",
		Annotations: registry.Annotations{ReadOnly: true, Title: "Get Storage Classes"},
		Params:      []registry.Param{ctxParam()},
		Handler:     h.getStorageClasses,
	})
}

func (h *handlers) getPersistentVolumes(ctx context.Context, in registry.Input) (*registry.Result, error) {
	args := []string{"get", "persistentvolumes", "-o", "json"}
	args = common.WithContextArgs(args, h.deps.KubeContext(in))
	return h.deps.RunKubectl(ctx, args, readTimeout, true), nil
}

func (h *handlers) getPersistentVolumeClaims(ctx context.Context, in registry.Input) (*registry.Result, error) {
	args := []string{"get", "persistentvolumeclaims", "-o", "json"}
	args = common.WithNamespaceArgs(args, h.deps.Namespace(in))
	args = common.WithContextArgs(args, h.deps.KubeContext(in))
	return h.deps.RunKubectl(ctx, args, readTimeout, true), nil
}

func (h *handlers) getStorageClasses(ctx context.Context, in registry.Input) (*registry.Result, error) {
	args := []string{"get", "storageclasses", "-o", "json"}
	args = common.WithContextArgs(args, h.deps.KubeContext(in))
	return h.deps.RunKubectl(ctx, args, readTimeout, true), nil
}

func nsParam() registry.Param {
	return registry.Param{Name: "namespace", Type: registry.TypeString, Description: "Target namespace; defaults to the server's configured default."}
}

func ctxParam() registry.Param {
	return registry.Param{Name: "kubeContext", Type: registry.TypeString, Description: "Kubernetes context to use; defaults to the current context."}
}

const readTimeout = runner.DefaultReadTimeout
