package provider

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-logr/logr"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// Provider is the sole entry point for any Kubernetes REST access; handlers
// never read kubeconfig directly (spec §4.3).
type Provider struct {
	cfg Config
	log logr.Logger

	// Limiter is built from QPS/Burst, but no caller waits on it. The
	// subprocess runner builds its own limiter from the same settings, so
	// kubectl/helm/kind invocations do not draw from this one.
	Limiter *rate.Limiter

	mu      sync.RWMutex
	handles map[string]*Handle // keyed by context name, "" = sentinel
	group   singleflight.Group // prevents duplicate concurrent client init per key

	contextsMu    sync.RWMutex
	contextsCache []ClusterContext
	contextsValid bool

	watcher *fsnotify.Watcher
	closeCh chan struct{}
}

// New creates a Provider from cfg. It does not eagerly contact the cluster;
// api clients are created lazily per spec §3's ApiClientHandle lifecycle.
func New(cfg Config, log logr.Logger) *Provider {
	var limiter *rate.Limiter
	if cfg.QPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.QPS), max(cfg.Burst, 1))
	}
	p := &Provider{
		cfg:     cfg,
		log:     log,
		Limiter: limiter,
		handles: make(map[string]*Handle),
		closeCh: make(chan struct{}),
	}
	p.startKubeconfigWatch()
	return p
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// startKubeconfigWatch installs an fsnotify watcher on the resolved
// kubeconfig path so the context-list cache invalidates on external changes
// (SPEC_FULL.md C3 expansion). Already-issued API client handles are
// unaffected, matching the ApiClientHandle process-lifetime invariant.
func (p *Provider) startKubeconfigWatch() {
	if p.cfg.ProviderType == TypeInCluster || p.cfg.KubeconfigPath == "" {
		return
	}
	if _, err := os.Stat(p.cfg.KubeconfigPath); err != nil {
		return
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		p.log.V(1).Info("kubeconfig watch disabled", "error", err)
		return
	}
	if err := watcher.Add(p.cfg.KubeconfigPath); err != nil {
		_ = watcher.Close()
		p.log.V(1).Info("kubeconfig watch disabled", "error", err)
		return
	}
	p.watcher = watcher
	go p.watchLoop()
}

func (p *Provider) watchLoop() {
	for {
		select {
		case event, ok := <-p.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				p.invalidateContextsCache()
			}
		case err, ok := <-p.watcher.Errors:
			if !ok {
				return
			}
			p.log.V(1).Info("kubeconfig watch error", "error", err)
		case <-p.closeCh:
			return
		}
	}
}

func (p *Provider) invalidateContextsCache() {
	p.contextsMu.Lock()
	p.contextsValid = false
	p.contextsMu.Unlock()
}

// Close stops the kubeconfig watcher.
func (p *Provider) Close() {
	close(p.closeCh)
	if p.watcher != nil {
		_ = p.watcher.Close()
	}
}

// inCluster reports whether in-cluster service-account credentials exist.
func inCluster() bool {
	_, err := rest.InClusterConfig()
	return err == nil
}

// useInCluster resolves whether api_client("") should use in-cluster config,
// per the resolution order in spec §4.3.
func (p *Provider) useInCluster() bool {
	if p.cfg.ProviderType == TypeInCluster {
		return true
	}
	if p.cfg.ProviderType == TypeKubeconfig {
		return false
	}
	return inCluster()
}

// ListContexts reads the kubeconfig, or reports a single synthetic
// "in-cluster" entry when in-cluster credentials exist and no kubeconfig is
// configured.
func (p *Provider) ListContexts() ([]ClusterContext, error) {
	p.contextsMu.RLock()
	if p.contextsValid {
		defer p.contextsMu.RUnlock()
		return p.contextsCache, nil
	}
	p.contextsMu.RUnlock()

	contexts, err := p.loadContexts()
	if err != nil {
		return nil, err
	}

	p.contextsMu.Lock()
	p.contextsCache = contexts
	p.contextsValid = true
	p.contextsMu.Unlock()
	return contexts, nil
}

func (p *Provider) loadContexts() ([]ClusterContext, error) {
	if p.cfg.KubeconfigPath == "" {
		if inCluster() {
			return []ClusterContext{{Name: "in-cluster", IsActive: true}}, nil
		}
		return nil, ErrNoCredentials
	}

	raw, err := clientcmd.LoadFromFile(p.cfg.KubeconfigPath)
	if err != nil {
		if inCluster() {
			return []ClusterContext{{Name: "in-cluster", IsActive: true}}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrKubeconfigUnreadable, err)
	}

	current := raw.CurrentContext
	if p.cfg.DefaultContext != "" {
		current = p.cfg.DefaultContext
	}

	out := make([]ClusterContext, 0, len(raw.Contexts))
	for name, c := range raw.Contexts {
		out = append(out, ClusterContext{
			Name:      name,
			Cluster:   c.Cluster,
			User:      c.AuthInfo,
			Namespace: c.Namespace,
			IsActive:  name == current,
		})
	}
	return out, nil
}

// CurrentContext returns the name of the currently active context, if any.
func (p *Provider) CurrentContext() (string, bool) {
	contexts, err := p.ListContexts()
	if err != nil {
		return "", false
	}
	for _, c := range contexts {
		if c.IsActive {
			return c.Name, true
		}
	}
	return "", false
}

// ValidateContext reports whether name is a known kubeconfig context. The
// empty string (current/in-cluster sentinel) is always valid.
func (p *Provider) ValidateContext(name string) error {
	if name == "" {
		return nil
	}
	contexts, err := p.ListContexts()
	if err != nil {
		return err
	}
	for _, c := range contexts {
		if c.Name == name {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownContext, name)
}

// Client returns the cached Handle for context, creating and caching it on
// first use. Concurrent calls for the same context are coalesced by a
// singleflight.Group so only one client is ever constructed per key
// (spec §5 "prevent duplicate concurrent initialization").
func (p *Provider) Client(ctx context.Context, contextName string) (*Handle, error) {
	p.mu.RLock()
	if h, ok := p.handles[contextName]; ok {
		p.mu.RUnlock()
		return h, nil
	}
	p.mu.RUnlock()

	v, err, _ := p.group.Do(contextName, func() (interface{}, error) {
		p.mu.RLock()
		if h, ok := p.handles[contextName]; ok {
			p.mu.RUnlock()
			return h, nil
		}
		p.mu.RUnlock()

		h, err := p.buildHandle(contextName)
		if err != nil {
			return nil, err
		}

		p.mu.Lock()
		p.handles[contextName] = h
		p.mu.Unlock()
		return h, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Handle), nil
}

func (p *Provider) buildHandle(contextName string) (*Handle, error) {
	restCfg, err := p.restConfig(contextName)
	if err != nil {
		return nil, err
	}

	restCfg.QPS = float32(p.cfg.QPS)
	restCfg.Burst = p.cfg.Burst
	if p.cfg.RequestTimeoutSeconds > 0 {
		restCfg.Timeout = time.Duration(p.cfg.RequestTimeoutSeconds) * time.Second
	}

	clientset, err := kubernetes.NewForConfig(restCfg)
	if err != nil {
		return nil, fmt.Errorf("provider: building clientset for context %q: %w", contextName, err)
	}

	return &Handle{ContextName: contextName, Clientset: clientset, RESTConfig: restCfg}, nil
}

// restConfig resolves the *rest.Config for contextName per spec §4.3's
// resolution order for api_client("").
func (p *Provider) restConfig(contextName string) (*rest.Config, error) {
	if contextName == "" && p.useInCluster() {
		cfg, err := rest.InClusterConfig()
		if err == nil {
			return cfg, nil
		}
		// Fall through to kubeconfig if in-cluster config unexpectedly fails.
	}

	if p.cfg.KubeconfigPath == "" {
		return nil, ErrNoCredentials
	}

	overrides := &clientcmd.ConfigOverrides{}
	effectiveContext := contextName
	if effectiveContext == "" {
		effectiveContext = p.cfg.DefaultContext
	}
	if effectiveContext != "" {
		overrides.CurrentContext = effectiveContext
	}

	loader := clientcmd.NewDefaultClientConfigLoadingRules()
	loader.ExplicitPath = p.cfg.KubeconfigPath

	clientConfig := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(loader, overrides)
	cfg, err := clientConfig.ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKubeconfigUnreadable, err)
	}
	return cfg, nil
}

// InvalidateClient drops the cached handle for contextName, forcing the next
// Client call to rebuild it. Not part of spec §4.3's normal flow but needed
// so tests and admin tooling can force a reconnect.
func (p *Provider) InvalidateClient(contextName string) {
	p.mu.Lock()
	delete(p.handles, contextName)
	p.mu.Unlock()
}
