package render

import (
	"errors"
	"fmt"
	"sync"
)

// ErrRendererNotFound is returned by Lookup and Results for unknown names.
var ErrRendererNotFound = errors.New("render: renderer not found")

// Registry holds renderers in registration order. The first one registered
// is the default until SetDefault picks another.
type Registry struct {
	mu        sync.RWMutex
	ordered   []Renderer
	byName    map[string]int
	preferred string
}

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]int)}
}

// Register adds renderers under their Name. It stops at the first nil,
// unnamed or duplicate renderer.
func (r *Registry) Register(renderers ...Renderer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, renderer := range renderers {
		if renderer == nil {
			return errors.New("render: renderer is required")
		}
		name := renderer.Name()
		if name == "" {
			return errors.New("render: renderer name is required")
		}
		if _, dup := r.byName[name]; dup {
			return fmt.Errorf("render: renderer %q already registered", name)
		}
		r.byName[name] = len(r.ordered)
		r.ordered = append(r.ordered, renderer)
		if r.preferred == "" {
			r.preferred = name
		}
	}
	return nil
}

// MustRegister is Register for init-time wiring.
func (r *Registry) MustRegister(renderers ...Renderer) {
	if err := r.Register(renderers...); err != nil {
		panic(err)
	}
}

// SetDefault makes name the renderer used for empty lookups.
func (r *Registry) SetDefault(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byName[name]; !ok {
		return fmt.Errorf("%w: %q", ErrRendererNotFound, name)
	}
	r.preferred = name
	return nil
}

// Default reports the name used for empty lookups, "" when empty.
func (r *Registry) Default() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.preferred
}

// Lookup returns the renderer called name, or the default for "".
func (r *Registry) Lookup(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lookup(name)
}

func (r *Registry) lookup(name string) (Renderer, error) {
	if name == "" {
		name = r.preferred
	}
	idx, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrRendererNotFound, name)
	}
	return r.ordered[idx], nil
}

// Results returns the renderer called name when it can show results. For
// "" it prefers the default and otherwise takes the first registered
// renderer that implements ResultsRenderer.
func (r *Registry) Results(name string) (ResultsRenderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if name != "" {
		renderer, err := r.lookup(name)
		if err != nil {
			return nil, err
		}
		out, ok := renderer.(ResultsRenderer)
		if !ok {
			return nil, fmt.Errorf("render: renderer %q cannot render results", name)
		}
		return out, nil
	}
	if renderer, err := r.lookup(""); err == nil {
		if out, ok := renderer.(ResultsRenderer); ok {
			return out, nil
		}
	}
	for _, renderer := range r.ordered {
		if out, ok := renderer.(ResultsRenderer); ok {
			return out, nil
		}
	}
	return nil, errors.New("render: no results renderer registered")
}

// Names lists renderer names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.ordered))
	for i, renderer := range r.ordered {
		names[i] = renderer.Name()
	}
	return names
}

func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byName[name]
	return ok
}
