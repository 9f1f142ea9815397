package server

import (
	"github.com/go-logr/logr"

	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/prompts"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/provider"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/registry"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/rpc"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/runner"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/safety"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/tools/cluster"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/tools/common"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/tools/core"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/tools/cost"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/tools/diagnostics"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/tools/helm"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/tools/kind"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/tools/networking"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/tools/operations"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/tools/pods"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/tools/security"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/tools/storage"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/tools/workloads"
)

// Server bundles every long-lived component the transports share: the
// provider, runner, registry, safety policy, prompt catalog, and the
// Dispatcher built from them. Built once at startup by cmd/serve.go.
type Server struct {
	Config     *Config
	Provider   *provider.Provider
	Runner     *runner.Runner
	Registry   *registry.Registry
	Policy     *safety.Policy
	Prompts    *prompts.Catalog
	Dispatcher *rpc.Dispatcher
}

// New wires every tool category into a single registry, builds the safety
// policy over it, and assembles the Dispatcher. Mirrors the teacher's
// ServerContext construction (internal/server/context.go) but fans out over
// the tools/<category> packages instead of a single flat tool list.
func New(cfg *Config, log logr.Logger) (*Server, error) {
	prov := provider.New(cfg.Provider, log)
	run := runner.New(cfg.Provider.QPS, cfg.Provider.Burst)
	reg := registry.New()
	catalog, err := prompts.New()
	if err != nil {
		return nil, err
	}

	defaults := common.NewDefaults("")
	deps := common.Deps{
		Provider: prov,
		Runner:   run,
		Log:      log,
		Defaults: defaults,
	}

	pods.Register(reg, deps)
	workloads.Register(reg, deps)
	core.Register(reg, deps)
	cluster.Register(reg, deps)
	networking.Register(reg, deps)
	storage.Register(reg, deps)
	security.Register(reg, deps)
	helm.Register(reg, deps)
	diagnostics.Register(reg, deps)
	cost.Register(reg, deps)
	kind.Register(reg, deps)

	// The safety policy is built from the now-fully-populated registry, so it
	// must come after every other category's Register call and before
	// operations.Register, which needs the policy for natural_language_query.
	lookup := func(name string) (safety.Annotations, bool) {
		ro, destructive, ok := reg.Annotations(name)
		return safety.Annotations{ReadOnly: ro, Destructive: destructive}, ok
	}
	policy := safety.New(cfg.SafetyMode, lookup)

	operations.Register(reg, deps, policy)

	info := rpc.ServerInfo{Name: cfg.ServerName, Version: cfg.ServerVersion}
	dispatcher := rpc.New(info, reg, policy, catalog, log)

	return &Server{
		Config:     cfg,
		Provider:   prov,
		Runner:     run,
		Registry:   reg,
		Policy:     policy,
		Prompts:    catalog,
		Dispatcher: dispatcher,
	}, nil
}

// Close releases the provider's kubeconfig watcher.
func (s *Server) Close() {
	s.Provider.Close()
}
