package particle

import (
	"fmt"
	"sort"
	"sync"
)

// UnknownTypeError reports a registry lookup miss.
type UnknownTypeError struct {
	Name string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown particle type %q", e.Name)
}

// Registry is the catalog of particle types, keyed by unique name.
//
// Registration is last-write-wins: registering a name that already exists
// replaces the definition for future lookups. Instances that resolved the
// old *Type keep it; replacement never mutates already-spawned state.
//
// The registry is read-only during simulation ticks; registration happens
// at load time or between ticks.
type Registry struct {
	mu    sync.RWMutex
	types map[string]*Type
	order []string // registration order, for stable round-trips
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{types: make(map[string]*Type)}
}

// Register inserts or replaces the type under its name.
func (r *Registry) Register(t *Type) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.types[t.Name]; !exists {
		r.order = append(r.order, t.Name)
	}
	r.types[t.Name] = t
}

// Lookup returns the type registered under name, or an UnknownTypeError.
func (r *Registry) Lookup(name string) (*Type, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.types[name]
	if !ok {
		return nil, &UnknownTypeError{Name: name}
	}
	return t, nil
}

// Names returns all registered names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// SortedNames returns all registered names sorted alphabetically.
func (r *Registry) SortedNames() []string {
	names := r.Names()
	sort.Strings(names)
	return names
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.types)
}

// Each calls fn for every registered type in registration order.
func (r *Registry) Each(fn func(*Type)) {
	r.mu.RLock()
	types := make([]*Type, 0, len(r.order))
	for _, name := range r.order {
		types = append(types, r.types[name])
	}
	r.mu.RUnlock()
	for _, t := range types {
		fn(t)
	}
}
