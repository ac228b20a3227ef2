// Package openaiapi implements the remote OpenAI-compatible backend variant
// via the go-openai client. Tools pass through natively; no inline rendering
// is needed.
package openaiapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"

	"function-server/llm/api"
	"function-server/llm/backends"
	"function-server/llm/shared"
	"function-server/llm/toolfmt"
)

// Config holds OpenAI backend configuration.
type Config struct {
	APIKey    string
	BaseURL   string
	OrgID     string
	Model     string
	ToolStyle toolfmt.Style
	Timeout   time.Duration
}

// Backend implements backends.Backend for OpenAI-compatible remote APIs.
type Backend struct {
	client *openai.Client
	cfg    Config
}

// New creates a new OpenAI backend.
func New(cfg Config) *Backend {
	if cfg.Model == "" {
		cfg.Model = openai.GPT3Dot5Turbo
	}
	if cfg.ToolStyle == "" {
		cfg.ToolStyle = toolfmt.StyleNative
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	if cfg.OrgID != "" {
		clientConfig.OrgID = cfg.OrgID
	}
	clientConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &Backend{
		client: openai.NewClientWithConfig(clientConfig),
		cfg:    cfg,
	}
}

func (b *Backend) Name() string              { return "openai" }
func (b *Backend) Variant() backends.Variant { return backends.VariantOpenAI }
func (b *Backend) Model() string             { return b.cfg.Model }
func (b *Backend) ToolStyle() toolfmt.Style  { return b.cfg.ToolStyle }

// Complete performs one chat completion call against the remote API.
func (b *Backend) Complete(ctx context.Context, messages []api.ChatMessage, tools toolfmt.Rendered, params shared.ModelParams) (*backends.Response, error) {
	model := params.Model
	if model == "" {
		model = b.cfg.Model
	}

	msgs := make([]openai.ChatCompletionMessage, 0, len(messages)+1)
	if tools.Inline != "" {
		// Deployments may force an inline style even against a native API.
		msgs = append(msgs, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: "You may call one of the following tools:\n\n" + tools.Inline,
		})
	}
	for _, msg := range messages {
		msgs = append(msgs, openai.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
			Name:    msg.Name,
		})
	}

	req := openai.ChatCompletionRequest{
		Model:    model,
		Messages: msgs,
	}
	if params.Temperature != nil {
		req.Temperature = float32(*params.Temperature)
	}
	if params.MaxTokens != nil {
		req.MaxTokens = *params.MaxTokens
	}
	for _, tool := range tools.Native {
		fn := tool.Function
		req.Tools = append(req.Tools, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        fn.Name,
				Description: fn.Description,
				Parameters:  fn.Parameters,
			},
		})
	}

	resp, err := b.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, normalizeError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, shared.Errorf(shared.ErrBackendProtocol, "completion response contained no choices")
	}

	choice := resp.Choices[0]
	out := &backends.Response{
		Text: choice.Message.Content,
		Usage: &api.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}
	for _, call := range choice.Message.ToolCalls {
		out.ToolCalls = append(out.ToolCalls, api.ToolCall{
			ID:   call.ID,
			Type: string(call.Type),
			Function: api.FunctionCall{
				Name:      call.Function.Name,
				Arguments: call.Function.Arguments,
			},
		})
	}
	return out, nil
}

func normalizeError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &shared.Error{
			Code:       shared.ErrBackendProtocol,
			Message:    "backend rejected request: " + apiErr.Message,
			HTTPStatus: apiErr.HTTPStatusCode,
		}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &shared.Error{
			Code:       shared.ErrBackendProtocol,
			Message:    "backend request failed: " + reqErr.Error(),
			HTTPStatus: reqErr.HTTPStatusCode,
		}
	}
	return backends.Classify(err)
}
