package registry

import (
	"sort"
	"sync"
)

// Registry is the in-memory name->descriptor map described in spec §4.5.
// It is built once at startup by category modules and is read-only
// thereafter; the mutex only guards the build phase so tests can register
// concurrently if they want to, not because concurrent registration is an
// expected runtime pattern.
type Registry struct {
	mu    sync.RWMutex
	byName map[string]Descriptor
	order []string // registration order; List re-sorts by category then name
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{byName: make(map[string]Descriptor)}
}

// Register adds a descriptor, rejecting duplicate names and descriptors that
// violate the destructive/read-only invariant.
func (r *Registry) Register(d Descriptor) error {
	if err := d.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byName[d.Name]; exists {
		return errDuplicateName(d.Name)
	}
	r.byName[d.Name] = d
	r.order = append(r.order, d.Name)
	return nil
}

// MustRegister panics on registration failure. Used by category modules at
// init time where a failure is a programming error, not a runtime condition.
func (r *Registry) MustRegister(d Descriptor) {
	if err := r.Register(d); err != nil {
		panic(err)
	}
}

// Lookup returns the descriptor for name, if registered.
func (r *Registry) Lookup(name string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.byName[name]
	return d, ok
}

// Annotations resolves a tool name to its safety-relevant annotations. Has
// the shape safety.Policy expects as its lookup function.
func (r *Registry) Annotations(name string) (readOnly, destructive bool, ok bool) {
	d, ok := r.Lookup(name)
	if !ok {
		return false, false, false
	}
	return d.Annotations.ReadOnly, d.Annotations.Destructive, true
}

// List returns every descriptor, ordered by category then name (spec §4.5).
func (r *Registry) List() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Descriptor, 0, len(r.byName))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Names returns every registered tool name, in List order.
func (r *Registry) Names() []string {
	list := r.List()
	names := make([]string, len(list))
	for i, d := range list {
		names[i] = d.Name
	}
	return names
}

// Len reports the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byName)
}
