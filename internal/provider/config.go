// Package provider implements the context-scoped Kubernetes API client
// factory: in-cluster/kubeconfig auto-detection, multi-context caching, and
// rate limits (spec §4.3).
package provider

import (
	"os"
	"path/filepath"
)

// Type selects how the provider resolves credentials.
type Type string

const (
	TypeAuto       Type = "auto"
	TypeKubeconfig Type = "kubeconfig"
	TypeInCluster  Type = "in_cluster"
)

// Config holds every provider-level option enumerated in spec §4.3.
type Config struct {
	ProviderType          Type
	KubeconfigPath        string
	DefaultContext        string
	QPS                   float64
	Burst                 int
	RequestTimeoutSeconds int
}

// DefaultConfig returns the spec §4.3 defaults.
func DefaultConfig() Config {
	return Config{
		ProviderType:          TypeAuto,
		KubeconfigPath:        defaultKubeconfigPath(),
		QPS:                   100,
		Burst:                 200,
		RequestTimeoutSeconds: 30,
	}
}

func defaultKubeconfigPath() string {
	if p := os.Getenv("MCP_K8S_KUBECONFIG"); p != "" {
		return p
	}
	if p := os.Getenv("KUBECONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".kube", "config")
}

// ConfigFromEnv builds a Config from the environment variables listed in
// spec §6, overlaying DefaultConfig.
func ConfigFromEnv(getenv func(string) string) Config {
	cfg := DefaultConfig()

	if v := getenv("MCP_K8S_PROVIDER"); v != "" {
		cfg.ProviderType = Type(v)
	}
	if v := getenv("MCP_K8S_KUBECONFIG"); v != "" {
		cfg.KubeconfigPath = v
	} else if v := getenv("KUBECONFIG"); v != "" {
		cfg.KubeconfigPath = v
	}
	if v := getenv("MCP_K8S_CONTEXT"); v != "" {
		cfg.DefaultContext = v
	}
	if v := parseFloat(getenv("MCP_K8S_QPS")); v > 0 {
		cfg.QPS = v
	}
	if v := parseInt(getenv("MCP_K8S_BURST")); v > 0 {
		cfg.Burst = v
	}
	if v := parseInt(getenv("MCP_K8S_TIMEOUT")); v > 0 {
		cfg.RequestTimeoutSeconds = v
	}
	return cfg
}
