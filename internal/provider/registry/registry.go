// Package registry holds the adapter registry keyed by provider id.
// Dispatch from model to adapter is a pure lookup: the catalog entry names
// its provider, and the registry resolves that name.
package registry

import (
	"context"
	"errors"
	"sync"

	"github.com/davidbz/sophie/internal/domain"
)

// Registry implements the domain.ProviderRegistry interface.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]domain.Provider
	order     []string
}

// NewRegistry creates a new provider registry.
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]domain.Provider),
	}
}

// Register adds a provider to the registry. Registration happens at startup,
// before any dispatch; the registry is read-only afterwards.
func (r *Registry) Register(_ context.Context, provider domain.Provider) error {
	if provider == nil {
		return errors.New("provider cannot be nil")
	}

	name := provider.Name()
	if name == "" {
		return errors.New("provider name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.providers[name]; exists {
		return domain.Errorf(domain.KindConfiguration, "provider %s already registered", name)
	}

	r.providers[name] = provider
	r.order = append(r.order, name)

	return nil
}

// Get retrieves a provider by id. A miss means a catalog entry references an
// adapter that was never wired: a configuration error, not a user error.
func (r *Registry) Get(_ context.Context, providerName string) (domain.Provider, error) {
	if providerName == "" {
		return nil, errors.New("provider name cannot be empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	provider, exists := r.providers[providerName]
	if !exists {
		return nil, domain.Errorf(domain.KindConfiguration, "provider %s is not registered", providerName)
	}

	return provider, nil
}

// List returns all registered provider ids in registration order.
func (r *Registry) List(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names, nil
}
