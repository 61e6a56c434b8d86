package provider

import (
	"fmt"
	"sort"
	"sync"

	"github.com/kbukum/resourcekit/errors"
)

// Registry manages named provider factories and the instances created from
// them. Instances are kept in registration order.
type Registry[T Provider] struct {
	mu        sync.RWMutex
	factories map[string]Factory[T]
	instances map[string]T
	order     []string
}

// NewRegistry creates a new empty Registry.
func NewRegistry[T Provider]() *Registry[T] {
	return &Registry[T]{
		factories: make(map[string]Factory[T]),
		instances: make(map[string]T),
	}
}

// RegisterFactory registers a named factory for creating providers.
func (r *Registry[T]) RegisterFactory(name string, factory Factory[T]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// Create instantiates a provider using the named factory and config.
func (r *Registry[T]) Create(name string, cfg map[string]any) (T, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		var zero T
		return zero, errors.NotFound("provider factory", name).
			WithCause(fmt.Errorf("provider factory %q not registered", name))
	}
	return factory(cfg)
}

// Get returns a provider instance by name.
func (r *Registry[T]) Get(name string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	inst, ok := r.instances[name]
	return inst, ok
}

// Add stores a provider instance under its name. Adding a second instance
// with the same name fails.
func (r *Registry[T]) Add(instance T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	name := instance.Name()
	if _, exists := r.instances[name]; exists {
		return errors.Configuration(fmt.Sprintf("duplicate provider name %q", name)).
			WithDetail("provider", name)
	}
	r.instances[name] = instance
	r.order = append(r.order, name)
	return nil
}

// Instances returns the provider instances in the order they were added.
func (r *Registry[T]) Instances() []T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]T, len(r.order))
	for i, name := range r.order {
		out[i] = r.instances[name]
	}
	return out
}

// List returns sorted names of all registered factories.
func (r *Registry[T]) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
