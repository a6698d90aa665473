// Package registry provides a typed registry of named factories.
// Packages register their factories in init() functions, allowing the platform
// to discover and instantiate things (levels, for instance) by identifier
// without hardcoded dependencies or reflection.
package registry

import (
	"fmt"
	"sort"
	"sync"
)

// Info contains metadata about a registered factory.
type Info struct {
	ID    string
	Title string
	Order int // Position used when listing; lower comes first
}

type entry[F any] struct {
	info    Info
	factory F
}

// Registry maps identifiers to factories of type F.
type Registry[F any] struct {
	kind    string // Used in error messages, e.g. "level"
	mu      sync.RWMutex
	entries map[string]entry[F]
}

// New creates an empty registry. kind names what is registered
// and shows up in error messages.
func New[F any](kind string) *Registry[F] {
	return &Registry[F]{
		kind:    kind,
		entries: make(map[string]entry[F]),
	}
}

// Register adds a factory to the registry.
// Typically called from an init() function.
// Panics if a factory with the same ID is already registered.
func (r *Registry[F]) Register(info Info, f F) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[info.ID]; exists {
		panic(fmt.Sprintf("registry: %s %q already registered", r.kind, info.ID))
	}

	r.entries[info.ID] = entry[F]{info: info, factory: f}
}

// List returns information about all registered factories,
// sorted by Order and then by ID.
func (r *Registry[F]) List() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Info, 0, len(r.entries))
	for _, e := range r.entries {
		result = append(result, e.info)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Order != result[j].Order {
			return result[i].Order < result[j].Order
		}
		return result[i].ID < result[j].ID
	})

	return result
}

// Get returns the factory registered under id.
// Returns an error if the id is not registered.
func (r *Registry[F]) Get(id string) (F, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[id]
	if !ok {
		var zero F
		return zero, fmt.Errorf("registry: unknown %s %q", r.kind, id)
	}

	return e.factory, nil
}

// Lookup returns the metadata registered under id.
func (r *Registry[F]) Lookup(id string) (Info, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[id]
	return e.info, ok
}

// Exists checks if a factory with the given ID is registered.
func (r *Registry[F]) Exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.entries[id]
	return ok
}
