package module

import (
	"slices"
	"sync"
)

// Registry indexes mounted modules by name so main can pull ports across modules
// after mounting (the watcher needs the scan module's reloader, for instance)
type Registry struct {
	mu   sync.RWMutex
	mods map[string]Module
}

// NewRegistry returns an empty registry
func NewRegistry() *Registry { return &Registry{mods: map[string]Module{}} }

// Add stores m under its name, replacing any module of the same name
func (r *Registry) Add(m Module) {
	r.mu.Lock()
	r.mods[m.Name()] = m
	r.mu.Unlock()
}

// Get returns the module registered under name
func (r *Registry) Get(name string) (Module, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.mods[name]
	return m, ok
}

// Names lists registered module names in order
func (r *Registry) Names() []string {
	r.mu.RLock()
	out := make([]string, 0, len(r.mods))
	for n := range r.mods {
		out = append(out, n)
	}
	r.mu.RUnlock()
	slices.Sort(out)
	return out
}

// PortsAs fetches the module registered under name and extracts a T from its ports
func PortsAs[T any](r *Registry, name string) (T, bool) {
	m, ok := r.Get(name)
	if !ok {
		var zero T
		return zero, false
	}
	return PortsOf[T](m)
}
