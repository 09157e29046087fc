package sink

import (
	"fmt"
	"sync"
)

// Registry manages configured sinks in registration order.
// It provides thread-safe registration and lookup of sinks.
type Registry struct {
	sinks map[string]Sink
	order []string
	mu    sync.RWMutex
}

// NewRegistry creates a new empty sink registry.
func NewRegistry() *Registry {
	return &Registry{
		sinks: make(map[string]Sink),
	}
}

// Register adds a sink to the registry.
// Returns an error if a sink with the same ID already exists.
func (r *Registry) Register(s Sink) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sinks[s.ID()]; exists {
		return fmt.Errorf("sink %s already registered", s.ID())
	}

	r.sinks[s.ID()] = s
	r.order = append(r.order, s.ID())
	return nil
}

// Unregister removes a sink from the registry.
func (r *Registry) Unregister(sinkID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sinks[sinkID]; !exists {
		return fmt.Errorf("%w: %s", ErrSinkNotFound, sinkID)
	}

	delete(r.sinks, sinkID)
	for i, id := range r.order {
		if id == sinkID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Get returns a sink by ID.
// Returns nil if the sink doesn't exist.
func (r *Registry) Get(sinkID string) Sink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sinks[sinkID]
}

// GetAll returns all registered sinks in registration order.
func (r *Registry) GetAll() []Sink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sinks := make([]Sink, 0, len(r.order))
	for _, id := range r.order {
		sinks = append(sinks, r.sinks[id])
	}

	return sinks
}

// IDs returns the registered sink IDs in registration order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string(nil), r.order...)
}

// Count returns the number of registered sinks.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sinks)
}
