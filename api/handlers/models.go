package handlers

import (
	"net/http"
	"time"

	"function-server/api"
	"function-server/llm/backends"
)

// ModelsHandler exposes the OpenAI-compatible /v1/models discovery endpoint.
type ModelsHandler struct {
	backends *backends.Registry
}

// NewModelsHandler creates a new models handler.
func NewModelsHandler(registry *backends.Registry) *ModelsHandler {
	return &ModelsHandler{backends: registry}
}

// List handles GET /v1/models. Each configured backend contributes its
// default model, addressable as "backend/model".
func (h *ModelsHandler) List(w http.ResponseWriter, r *http.Request) {
	now := time.Now().Unix()
	entries := make([]api.ModelInfo, 0, 4)
	for _, name := range h.backends.List() {
		backend, err := h.backends.Get(name)
		if err != nil {
			writeError(w, err)
			return
		}
		id := name
		if backend.Model() != "" {
			id = name + "/" + backend.Model()
		}
		entries = append(entries, api.ModelInfo{
			ID:      id,
			Object:  "model",
			Created: now,
			OwnedBy: string(backend.Variant()),
		})
	}
	writeJSON(w, http.StatusOK, api.ModelsResponse{Object: "list", Data: entries})
}
