// Package ollama implements the local-model backend variant against the
// Ollama generate API. Tools are embedded inline in the prompt because the
// generate endpoint has no native tool support.
package ollama

import (
	"context"
	"encoding/json"
	"time"

	"function-server/llm/api"
	"function-server/llm/backends"
	"function-server/llm/shared"
	"function-server/llm/toolfmt"
)

// Config holds Ollama backend configuration.
type Config struct {
	BaseURL   string
	Model     string
	ToolStyle toolfmt.Style
	Timeout   time.Duration
	RetryMax  int
}

// Backend implements backends.Backend for Ollama.
type Backend struct {
	cfg    Config
	client *backends.HTTPClient
}

// New creates a new Ollama backend.
func New(cfg Config) *Backend {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:11434"
	}
	if cfg.ToolStyle == "" {
		cfg.ToolStyle = toolfmt.StyleXML
	}
	return &Backend{
		cfg: cfg,
		client: backends.NewHTTPClient(backends.ClientOptions{
			Timeout:  cfg.Timeout,
			RetryMax: cfg.RetryMax,
		}),
	}
}

func (b *Backend) Name() string              { return "ollama" }
func (b *Backend) Variant() backends.Variant { return backends.VariantLocalModel }
func (b *Backend) Model() string             { return b.cfg.Model }
func (b *Backend) ToolStyle() toolfmt.Style  { return b.cfg.ToolStyle }

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	Temperature *float64 `json:"temperature,omitempty"`
	NumPredict  *int     `json:"num_predict,omitempty"`
}

type generateResponse struct {
	Response        string `json:"response"`
	Done            bool   `json:"done"`
	PromptEvalCount int    `json:"prompt_eval_count"`
	EvalCount       int    `json:"eval_count"`
}

// Complete performs one generate call. Rendered inline tools are appended to
// the flattened prompt separated by a blank line.
func (b *Backend) Complete(ctx context.Context, messages []api.ChatMessage, tools toolfmt.Rendered, params shared.ModelParams) (*backends.Response, error) {
	prompt := backends.BuildPrompt(messages)
	if tools.Inline != "" {
		prompt = prompt + "\n\n" + tools.Inline
	}

	model := params.Model
	if model == "" {
		model = b.cfg.Model
	}

	req := generateRequest{
		Model:  model,
		Prompt: prompt,
		Stream: false,
		Options: generateOptions{
			Temperature: params.Temperature,
			NumPredict:  params.MaxTokens,
		},
	}

	body, err := b.client.PostJSON(ctx, b.cfg.BaseURL+"/api/generate", req)
	if err != nil {
		return nil, err
	}

	var resp generateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, shared.Errorf(shared.ErrBackendProtocol, "malformed generate response: %v", err)
	}

	out := &backends.Response{Text: resp.Response}
	if resp.PromptEvalCount > 0 || resp.EvalCount > 0 {
		out.Usage = &api.Usage{
			PromptTokens:     resp.PromptEvalCount,
			CompletionTokens: resp.EvalCount,
			TotalTokens:      resp.PromptEvalCount + resp.EvalCount,
		}
	}
	return out, nil
}
