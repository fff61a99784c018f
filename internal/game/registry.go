package game

import (
	"fmt"
	"sort"
	"sync"

	"github.com/Faultbox/ubiengine/internal/config"
	"github.com/Faultbox/ubiengine/internal/engine/input"
	"github.com/Faultbox/ubiengine/internal/game/states"
)

// StateFactory creates a new game state.
type StateFactory func(ctx *Context) (states.State, error)

// InputFactory creates an input source.
type InputFactory func(ctx *Context) (input.Source, error)

// Registry maps configuration ids to state and input constructors.
type Registry struct {
	mu     sync.RWMutex
	states map[string]StateFactory
	inputs map[string]InputFactory
}

// NewRegistry creates a registry holding only the built-in input sources.
func NewRegistry() *Registry {
	r := &Registry{
		states: make(map[string]StateFactory),
		inputs: make(map[string]InputFactory),
	}
	registerBuiltinInputs(r)
	return r
}

// DefaultRegistry is used by games that do not pass WithRegistry.
var DefaultRegistry = NewRegistry()

// RegisterState adds a state factory to the default registry.
func RegisterState(id string, f StateFactory) {
	DefaultRegistry.RegisterState(id, f)
}

// RegisterInput adds an input factory to the default registry.
func RegisterInput(id string, f InputFactory) {
	DefaultRegistry.RegisterInput(id, f)
}

// RegisterState adds a state factory.
// Panics if a state with the same id is already registered.
func (r *Registry) RegisterState(id string, f StateFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.states[id]; exists {
		panic(fmt.Sprintf("game: state %q already registered", id))
	}
	r.states[id] = f
}

// RegisterInput adds an input factory. A later registration replaces an
// earlier one, so games can override the built-in sources.
func (r *Registry) RegisterInput(id string, f InputFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inputs[id] = f
}

// States returns registered state ids, sorted.
func (r *Registry) States() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.states))
	for id := range r.states {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (r *Registry) newState(id string, ctx *Context) (states.State, error) {
	r.mu.RLock()
	f, ok := r.states[id]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: unknown state %q", config.ErrConfiguration, id)
	}
	st, err := f(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating state %q: %w", id, err)
	}
	if states.IsNil(st) {
		return nil, fmt.Errorf("%w: factory for %q returned nil", states.ErrInvalidTransition, id)
	}
	return st, nil
}

func (r *Registry) newInput(id string, ctx *Context) (input.Source, error) {
	r.mu.RLock()
	f, ok := r.inputs[id]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: unknown input manager %q", config.ErrConfiguration, id)
	}
	src, err := f(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating input %q: %w", id, err)
	}
	return src, nil
}
