// Package sti contains the pure single-table inheritance logic: the
// discriminator registry, condition merging and registration guards.
// Nothing in this package performs I/O.
package sti

import "sync"

// DiscriminatorField is the attribute that tags every record written through
// a child model.
const DiscriminatorField = "type"

// Registry maps a child model's declared name to its discriminator value.
// Values are written once at registration and read on every scoped call.
type Registry struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewRegistry creates an empty discriminator registry.
func NewRegistry() *Registry {
	return &Registry{values: make(map[string]string)}
}

// Set stores the discriminator for model. A second call overwrites.
func (r *Registry) Set(model, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[model] = value
}

// Get returns the discriminator for model. ok is false for models that were
// never registered as children, which includes every base model.
func (r *Registry) Get(model string) (value string, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	value, ok = r.values[model]
	return value, ok
}

// Len returns the number of registered children.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.values)
}
