package probes

import (
	"context"
	"sort"
	"sync"
)

// Registry manages readiness probes
type Registry struct {
	mu     sync.RWMutex
	probes map[string]Probe
}

// NewRegistry creates a new probe registry
func NewRegistry() *Registry {
	return &Registry{
		probes: make(map[string]Probe),
	}
}

// Register adds a probe to the registry
func (r *Registry) Register(name string, probe Probe) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.probes[name] = probe
}

// Get retrieves a probe by name
func (r *Registry) Get(name string) Probe {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.probes[name]
}

// List returns all registered probe names, sorted
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.probes))
	for name := range r.probes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HealthCheckAll checks health of all registered probes
func (r *Registry) HealthCheckAll(ctx context.Context) map[string]error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	results := make(map[string]error)
	for name, probe := range r.probes {
		results[name] = probe.HealthCheck(ctx)
	}
	return results
}
