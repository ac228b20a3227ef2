package handlers

import (
	"net/http"

	"function-server/api"
	"function-server/llm/functions"
)

// FunctionsHandler serves the function listing endpoint.
type FunctionsHandler struct {
	registry *functions.Registry
}

// NewFunctionsHandler creates a new functions handler.
func NewFunctionsHandler(registry *functions.Registry) *FunctionsHandler {
	return &FunctionsHandler{registry: registry}
}

// List handles GET /v1/functions.
func (h *FunctionsHandler) List(w http.ResponseWriter, r *http.Request) {
	specs := h.registry.List()
	writeJSON(w, http.StatusOK, api.FunctionsResponse{
		Functions: specs,
		Count:     len(specs),
	})
}
