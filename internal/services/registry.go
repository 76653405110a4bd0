package services

import (
	"context"
	"sort"
	"sync"
)

// Status is the readiness view of one provider
type Status struct {
	Type    string         `json:"type"`
	Healthy bool           `json:"healthy"`
	Error   string         `json:"error,omitempty"`
	Stats   map[string]any `json:"stats,omitempty"`
}

// Registry manages service providers
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
}

// NewRegistry creates a new service registry
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]Provider),
	}
}

// Register adds a provider to the registry
func (r *Registry) Register(name string, provider Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[name] = provider
}

// List returns all registered provider names, sorted
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// StatusAll checks every provider and collects its stats when healthy.
// The bool is false if any provider is unhealthy.
func (r *Registry) StatusAll(ctx context.Context) (map[string]Status, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ready := true
	out := make(map[string]Status, len(r.providers))
	for name, p := range r.providers {
		st := Status{Type: p.Type(), Healthy: true}
		if err := p.HealthCheck(ctx); err != nil {
			st.Healthy = false
			st.Error = err.Error()
			ready = false
		} else if stats, err := p.Stats(ctx); err == nil {
			st.Stats = stats
		}
		out[name] = st
	}
	return out, ready
}
