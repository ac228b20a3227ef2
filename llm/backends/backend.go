// Package backends defines the adapter contract between the completion
// pipeline and a configured model backend, along with the shared HTTP
// transport and the backend registry.
package backends

import (
	"context"

	"function-server/llm/api"
	"function-server/llm/shared"
	"function-server/llm/toolfmt"
)

// Variant identifies the kind of backend a configuration selects. The variant
// is fixed at startup; downstream code never inspects concrete types.
type Variant string

const (
	VariantLocalModel     Variant = "local-model"
	VariantHighThroughput Variant = "high-throughput"
	VariantOpenAI         Variant = "openai-compatible"
)

// Response is the normalized raw output of a backend call: plain text,
// native structured tool calls, or both, plus token usage when the backend
// reports it.
type Response struct {
	Text      string
	ToolCalls []api.ToolCall
	Usage     *api.Usage
}

// Backend performs one completion call against a configured model backend.
// Complete is the sole blocking point of a request; it must honor context
// cancellation and report failures as normalized errors
// (backend_unreachable, backend_timeout, backend_protocol_error).
type Backend interface {
	Name() string
	Variant() Variant
	// Model returns the backend's configured default model.
	Model() string
	// ToolStyle returns the rendering the backend expects for tools.
	ToolStyle() toolfmt.Style
	Complete(ctx context.Context, messages []api.ChatMessage, tools toolfmt.Rendered, params shared.ModelParams) (*Response, error)
}

// BuildPrompt flattens a message sequence into a single prompt string for
// backends that take raw prompts rather than structured messages.
func BuildPrompt(messages []api.ChatMessage) string {
	var b []byte
	for i, msg := range messages {
		if i > 0 {
			b = append(b, '\n')
		}
		b = append(b, string(msg.Role)...)
		b = append(b, ": "...)
		b = append(b, msg.Content...)
	}
	return string(b)
}
