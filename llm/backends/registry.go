package backends

import (
	"strings"
	"sync"

	"function-server/llm/shared"
)

// Registry manages backend instances keyed by name. One backend is the
// default; requests may address another by prefixing the model with the
// backend name (e.g. "ollama/llama3.1:8b").
type Registry struct {
	backends    map[string]Backend
	defaultName string
	mu          sync.RWMutex
}

// NewRegistry creates a new backend registry.
func NewRegistry() *Registry {
	return &Registry{
		backends: make(map[string]Backend),
	}
}

// Register registers a backend instance. The first registered backend
// becomes the default.
func (r *Registry) Register(backend Backend) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backends[backend.Name()] = backend
	if r.defaultName == "" {
		r.defaultName = backend.Name()
	}
}

// Get returns a registered backend by name.
func (r *Registry) Get(name string) (Backend, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	backend, exists := r.backends[name]
	if !exists {
		return nil, shared.Errorf(shared.ErrValidation, "unknown backend: %s", name)
	}
	return backend, nil
}

// Default returns the default backend.
func (r *Registry) Default() (Backend, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.defaultName == "" {
		return nil, shared.Errorf(shared.ErrValidation, "no backend configured")
	}
	return r.backends[r.defaultName], nil
}

// List returns registered backend names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.backends))
	for name := range r.backends {
		names = append(names, name)
	}
	return names
}

// ForModel resolves the backend for a requested model. A "backend/model"
// prefix selects that backend and strips the prefix; anything else goes to
// the default backend.
func (r *Registry) ForModel(model string) (Backend, string, error) {
	if idx := strings.Index(model, "/"); idx != -1 {
		backend, err := r.Get(model[:idx])
		if err != nil {
			return nil, "", err
		}
		return backend, model[idx+1:], nil
	}
	backend, err := r.Default()
	if err != nil {
		return nil, "", err
	}
	if model == "" {
		model = backend.Model()
	}
	return backend, model, nil
}
