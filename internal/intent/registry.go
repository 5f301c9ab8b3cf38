package intent

import (
	"fmt"
	"sync"
)

// Registry holds reusable intents by name. Writes (Register) are exclusive,
// reads are shared, so registration may happen concurrently with
// classification.
type Registry struct {
	mu      sync.RWMutex
	intents map[string]Intent
	order   []string // registration order, for List
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		intents: make(map[string]Intent),
	}
}

// Register validates and stores a custom intent. Duplicate names fail with
// ErrDuplicateIntent and leave the registry untouched.
func (r *Registry) Register(name string, examples ...string) (Intent, error) {
	in, err := New(name, examples...)
	if err != nil {
		return Intent{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.intents[in.Name]; exists {
		return Intent{}, fmt.Errorf("%w: %s", ErrDuplicateIntent, in.Name)
	}

	r.intents[in.Name] = in
	r.order = append(r.order, in.Name)
	return in, nil
}

// Get returns a registered intent by name.
func (r *Registry) Get(name string) (Intent, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	in, ok := r.intents[name]
	return in, ok
}

// List returns all registered intents in registration order.
func (r *Registry) List() []Intent {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Intent, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.intents[name])
	}
	return out
}

// SetOf builds a Set from registered intent names, preserving the given
// order. Unknown names fail with ErrUnknownIntent.
func (r *Registry) SetOf(names ...string) (Set, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	intents := make([]Intent, 0, len(names))
	for _, name := range names {
		in, ok := r.intents[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownIntent, name)
		}
		intents = append(intents, in)
	}
	return NewSet(intents...)
}
