package input

import (
	"fmt"
	"io"

	"go.uber.org/multierr"
)

// Registry polls its sources in registration order.
type Registry struct {
	ids     []string
	sources []Source
	byID    map[string]Source
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]Source)}
}

// Add appends a source under id. Ids must be unique.
func (r *Registry) Add(id string, s Source) error {
	if s == nil {
		return fmt.Errorf("input %q: nil source", id)
	}
	if _, exists := r.byID[id]; exists {
		return fmt.Errorf("input %q already registered", id)
	}
	r.ids = append(r.ids, id)
	r.sources = append(r.sources, s)
	r.byID[id] = s
	return nil
}

// Update polls every source once, stopping at the first failure.
func (r *Registry) Update() error {
	for i, s := range r.sources {
		if err := s.Update(); err != nil {
			return fmt.Errorf("input %q: %w", r.ids[i], err)
		}
	}
	return nil
}

// Get returns the source registered under id, or nil.
func (r *Registry) Get(id string) Source {
	return r.byID[id]
}

// IDs returns source ids in polling order.
func (r *Registry) IDs() []string {
	out := make([]string, len(r.ids))
	copy(out, r.ids)
	return out
}

// Len returns the number of registered sources.
func (r *Registry) Len() int {
	return len(r.sources)
}

// Close closes every source implementing io.Closer, in reverse order.
func (r *Registry) Close() error {
	var err error
	for i := len(r.sources) - 1; i >= 0; i-- {
		if c, ok := r.sources[i].(io.Closer); ok {
			err = multierr.Append(err, c.Close())
		}
	}
	return err
}
