// Package completion builds the outward OpenAI-shaped completion envelope
// from an interpreted backend result.
package completion

import (
	"time"

	"github.com/google/uuid"

	"function-server/llm/api"
	"function-server/llm/interpret"
)

// Assemble maps an interpreted result to a completion envelope with exactly
// one choice. A plain message yields finish_reason "stop" with content set;
// a function call yields finish_reason "function_call" with null content.
// usage.total_tokens always equals prompt_tokens + completion_tokens.
func Assemble(result *interpret.Result, model string, promptTokens, completionTokens int) *api.ChatCompletionResponse {
	choice := api.Choice{
		Index: 0,
		Message: api.AssistantMessage{
			Role: api.RoleAssistant,
		},
	}
	if result.IsFunctionCall() {
		choice.FinishReason = api.FinishReasonFunctionCall
		choice.Message.FunctionCall = result.FunctionCall
	} else {
		choice.FinishReason = api.FinishReasonStop
		content := result.Content
		choice.Message.Content = &content
	}

	return &api.ChatCompletionResponse{
		ID:      NewID(),
		Object:  api.ObjectChatCompletion,
		Created: time.Now().Unix(),
		Model:   model,
		Choices: []api.Choice{choice},
		Usage: api.Usage{
			PromptTokens:     promptTokens,
			CompletionTokens: completionTokens,
			TotalTokens:      promptTokens + completionTokens,
		},
	}
}

// NewID generates a unique completion id.
func NewID() string {
	return "chatcmpl-" + uuid.NewString()
}
