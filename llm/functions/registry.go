package functions

import (
	"encoding/json"

	"function-server/llm/api"
	"function-server/llm/shared"
)

// FunctionSpec describes a callable function advertised to the model.
// Parameters is a JSON-Schema object kept as raw bytes so property ordering
// survives registration, rendering and listing unchanged.
type FunctionSpec struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  json.RawMessage `json:"parameters"`
}

// Registry manages the set of registered function specs. It is populated once
// at startup and frozen before the first request is served; the read path is
// therefore safe for concurrent use without locking.
type Registry struct {
	specs  map[string]FunctionSpec
	order  []string
	frozen bool
}

// NewRegistry creates an empty function registry.
func NewRegistry() *Registry {
	return &Registry{
		specs: make(map[string]FunctionSpec),
	}
}

// Register adds a function spec. Registration after Freeze or with a name
// already present fails.
func (r *Registry) Register(spec FunctionSpec) error {
	if r.frozen {
		return shared.Errorf(shared.ErrValidation, "registry is frozen: cannot register %q", spec.Name)
	}
	if spec.Name == "" {
		return shared.Errorf(shared.ErrValidation, "function name cannot be empty")
	}
	if _, exists := r.specs[spec.Name]; exists {
		return shared.Errorf(shared.ErrDuplicateFunction, "function already registered: %s", spec.Name)
	}
	r.specs[spec.Name] = spec
	r.order = append(r.order, spec.Name)
	return nil
}

// Freeze marks initialization as complete. Further Register calls fail.
func (r *Registry) Freeze() {
	r.frozen = true
}

// Get retrieves a function spec by name.
func (r *Registry) Get(name string) (FunctionSpec, error) {
	spec, exists := r.specs[name]
	if !exists {
		return FunctionSpec{}, shared.Errorf(shared.ErrFunctionNotFound, "function not found: %s", name)
	}
	return spec, nil
}

// Has reports whether a function with the given name is registered.
func (r *Registry) Has(name string) bool {
	_, exists := r.specs[name]
	return exists
}

// List returns all registered specs in insertion order.
func (r *Registry) List() []FunctionSpec {
	specs := make([]FunctionSpec, 0, len(r.order))
	for _, name := range r.order {
		specs = append(specs, r.specs[name])
	}
	return specs
}

// Len returns the number of registered functions.
func (r *Registry) Len() int {
	return len(r.order)
}

// ToolDefinitions returns the full registry in OpenAI tools shape, insertion
// order preserved.
func (r *Registry) ToolDefinitions() []api.ToolDefinition {
	defs := make([]api.ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, toDefinition(r.specs[name]))
	}
	return defs
}

// Resolve maps a request-supplied tool subset onto registered specs. Every
// referenced name must be registered; the returned definitions carry the
// registry's canonical schema for each name, in the order requested.
func (r *Registry) Resolve(tools []api.ToolDefinition) ([]api.ToolDefinition, error) {
	defs := make([]api.ToolDefinition, 0, len(tools))
	for _, tool := range tools {
		spec, exists := r.specs[tool.Function.Name]
		if !exists {
			return nil, shared.Errorf(shared.ErrValidation, "unknown tool name: %s", tool.Function.Name)
		}
		defs = append(defs, toDefinition(spec))
	}
	return defs, nil
}

func toDefinition(spec FunctionSpec) api.ToolDefinition {
	return api.ToolDefinition{
		Type: "function",
		Function: api.FunctionDefinition{
			Name:        spec.Name,
			Description: spec.Description,
			Parameters:  spec.Parameters,
		},
	}
}
