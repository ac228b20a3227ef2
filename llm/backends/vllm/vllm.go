// Package vllm implements the high-throughput backend variant against a
// vLLM-style OpenAI-compatible chat completions API. Tools default to the
// inline JSON rendering; deployments whose models support native function
// calling can switch the style to native.
package vllm

import (
	"context"
	"encoding/json"
	"time"

	"function-server/llm/api"
	"function-server/llm/backends"
	"function-server/llm/shared"
	"function-server/llm/toolfmt"
)

// Config holds vLLM backend configuration.
type Config struct {
	BaseURL   string
	Model     string
	APIKey    string
	ToolStyle toolfmt.Style
	Timeout   time.Duration
	RetryMax  int
}

// Backend implements backends.Backend for vLLM.
type Backend struct {
	cfg    Config
	client *backends.HTTPClient
}

// New creates a new vLLM backend.
func New(cfg Config) *Backend {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8000"
	}
	if cfg.ToolStyle == "" {
		cfg.ToolStyle = toolfmt.StyleJSON
	}
	return &Backend{
		cfg: cfg,
		client: backends.NewHTTPClient(backends.ClientOptions{
			APIKey:   cfg.APIKey,
			Timeout:  cfg.Timeout,
			RetryMax: cfg.RetryMax,
		}),
	}
}

func (b *Backend) Name() string              { return "vllm" }
func (b *Backend) Variant() backends.Variant { return backends.VariantHighThroughput }
func (b *Backend) Model() string             { return b.cfg.Model }
func (b *Backend) ToolStyle() toolfmt.Style  { return b.cfg.ToolStyle }

type chatRequest struct {
	Model       string               `json:"model"`
	Messages    []chatMessage        `json:"messages"`
	Temperature *float64             `json:"temperature,omitempty"`
	MaxTokens   *int                 `json:"max_tokens,omitempty"`
	Tools       []api.ToolDefinition `json:"tools,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content   *string        `json:"content"`
			ToolCalls []api.ToolCall `json:"tool_calls"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage *api.Usage `json:"usage"`
}

// Complete performs one chat completion call. Inline-rendered tools are
// prepended as a system message; native-rendered tools go in the request's
// tools field.
func (b *Backend) Complete(ctx context.Context, messages []api.ChatMessage, tools toolfmt.Rendered, params shared.ModelParams) (*backends.Response, error) {
	model := params.Model
	if model == "" {
		model = b.cfg.Model
	}

	msgs := make([]chatMessage, 0, len(messages)+1)
	if tools.Inline != "" {
		msgs = append(msgs, chatMessage{
			Role:    string(api.RoleSystem),
			Content: "You may call one of the following tools:\n\n" + tools.Inline,
		})
	}
	for _, msg := range messages {
		msgs = append(msgs, chatMessage{Role: string(msg.Role), Content: msg.Content})
	}

	req := chatRequest{
		Model:       model,
		Messages:    msgs,
		Temperature: params.Temperature,
		MaxTokens:   params.MaxTokens,
		Tools:       tools.Native,
	}

	body, err := b.client.PostJSON(ctx, b.cfg.BaseURL+"/v1/chat/completions", req)
	if err != nil {
		return nil, err
	}

	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, shared.Errorf(shared.ErrBackendProtocol, "malformed completion response: %v", err)
	}
	if len(resp.Choices) == 0 {
		return nil, shared.Errorf(shared.ErrBackendProtocol, "completion response contained no choices")
	}

	choice := resp.Choices[0]
	out := &backends.Response{
		ToolCalls: choice.Message.ToolCalls,
		Usage:     resp.Usage,
	}
	if choice.Message.Content != nil {
		out.Text = *choice.Message.Content
	}
	return out, nil
}
