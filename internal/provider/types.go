package provider

import (
	"errors"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
)

// ClusterContext is the identity of a target cluster (spec §3 ClusterContext).
type ClusterContext struct {
	Name      string `json:"name"`
	Cluster   string `json:"cluster"`
	User      string `json:"user"`
	Namespace string `json:"namespace"`
	IsActive  bool   `json:"is_active"`
}

// Handle is the cached per-context client set (spec §3 ApiClientHandle).
// ContextName is the empty string for the in-cluster/current-context sentinel.
type Handle struct {
	ContextName string
	Clientset   kubernetes.Interface
	RESTConfig  *rest.Config
}

var (
	// ErrUnknownContext is returned by ValidateContext for a name not present
	// in the kubeconfig.
	ErrUnknownContext = errors.New("provider: unknown kubeconfig context")
	// ErrNoCredentials is returned when neither in-cluster credentials nor a
	// readable kubeconfig are available (spec §4.3 "ConfigError").
	ErrNoCredentials = errors.New("provider: no in-cluster credentials and no usable kubeconfig")
	// ErrKubeconfigUnreadable wraps a kubeconfig parse/read failure.
	ErrKubeconfigUnreadable = errors.New("provider: kubeconfig could not be read")
)
