package api

// ChatCompletionRequest represents the request body for the chat completions
// endpoint. Temperature and MaxTokens are pointers so that an absent field can
// fall through to the backend's own default.
type ChatCompletionRequest struct {
	Model       string           `json:"model,omitempty"`
	Messages    []ChatMessage    `json:"messages"`
	Tools       []ToolDefinition `json:"tools,omitempty"`
	Temperature *float64         `json:"temperature,omitempty"`
	MaxTokens   *int             `json:"max_tokens,omitempty"`
	Stream      bool             `json:"stream,omitempty"`
}
