package api

import "function-server/llm/functions"

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error   string         `json:"error"`
	Code    string         `json:"code,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// HealthResponse represents a health or probe response body.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service,omitempty"`
}

// FunctionsResponse represents the function listing response body. Count
// always equals len(Functions).
type FunctionsResponse struct {
	Functions []functions.FunctionSpec `json:"functions"`
	Count     int                      `json:"count"`
}

// ModelsResponse is an OpenAI-compatible response wrapper for /v1/models.
type ModelsResponse struct {
	Object string      `json:"object"`
	Data   []ModelInfo `json:"data"`
}

// ModelInfo describes a single model entry (OpenAI-compatible shape).
type ModelInfo struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	OwnedBy string `json:"owned_by"`
}
