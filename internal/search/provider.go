// Package search defines the provider adapter boundary: every web search
// backend is reduced to one strict interface producing canonical hits, so
// parsing fragility stays inside each adapter.
package search

import (
	"context"
	"sync"

	"github.com/ppiankov/veracity/internal/model"
)

// Provider is the uniform search adapter contract. Implementations must
// respect ctx cancellation and return an error rather than panic; callers
// treat any error as an empty result set for that provider only.
type Provider interface {
	// Name returns the provider identifier used in configuration
	Name() string

	// Search runs one query and returns up to maxResults hits
	Search(ctx context.Context, query string, maxResults int) ([]model.SearchHit, error)
}

// Registry manages available search providers
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
	order     []string
}

// NewRegistry creates an empty provider registry
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]Provider)}
}

// Register adds a provider. Registration order is preserved for
// deterministic round-robin interleaving downstream.
func (r *Registry) Register(p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.providers[p.Name()]; !exists {
		r.order = append(r.order, p.Name())
	}
	r.providers[p.Name()] = p
}

// Get returns a provider by name, or nil when not registered
func (r *Registry) Get(name string) Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.providers[name]
}

// Select returns providers for the given preference list, skipping names
// that are not registered. An empty preference list selects every
// registered provider in registration order.
func (r *Registry) Select(preference []string) []Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := preference
	if len(names) == 0 {
		names = r.order
	}

	var selected []Provider
	for _, name := range names {
		if p, ok := r.providers[name]; ok {
			selected = append(selected, p)
		}
	}
	return selected
}
