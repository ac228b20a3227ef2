package api

// Object type reported on every completion envelope.
const ObjectChatCompletion = "chat.completion"

// Finish reasons for a completion choice.
const (
	FinishReasonStop         = "stop"
	FinishReasonFunctionCall = "function_call"
)

// ChatCompletionResponse represents the response from the chat completions
// endpoint.
type ChatCompletionResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

// Choice represents a single choice in a chat completion response.
type Choice struct {
	Index        int              `json:"index"`
	Message      AssistantMessage `json:"message"`
	FinishReason string           `json:"finish_reason"`
}

// Usage represents the token usage for a chat completion request.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}
