package vllm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"function-server/llm/api"
	"function-server/llm/shared"
	"function-server/llm/toolfmt"
)

func TestDefaults(t *testing.T) {
	b := New(Config{Model: "qwen"})
	assert.Equal(t, "vllm", b.Name())
	assert.Equal(t, toolfmt.StyleJSON, b.ToolStyle())
}

func TestCompleteInlineTools(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{
			"choices": [{"message": {"content": "Hello!"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 9, "completion_tokens": 2, "total_tokens": 11}
		}`))
	}))
	defer srv.Close()

	b := New(Config{BaseURL: srv.URL, Model: "qwen"})
	resp, err := b.Complete(context.Background(),
		[]api.ChatMessage{{Role: api.RoleUser, Content: "Hi"}},
		toolfmt.Rendered{Style: toolfmt.StyleJSON, Inline: `{"tools": []}`},
		shared.ModelParams{})
	require.NoError(t, err)

	// Inline tools ride in as a leading system message.
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.True(t, strings.Contains(got.Messages[0].Content, `{"tools": []}`))
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Empty(t, got.Tools)

	assert.Equal(t, "Hello!", resp.Text)
	require.NotNil(t, resp.Usage)
	assert.Equal(t, 11, resp.Usage.TotalTokens)
}

func TestCompleteNativeTools(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{
			"choices": [{"message": {
				"content": null,
				"tool_calls": [{"id": "call_1", "type": "function",
					"function": {"name": "get_weather", "arguments": "{\"city\":\"Paris\"}"}}]
			}, "finish_reason": "tool_calls"}]
		}`))
	}))
	defer srv.Close()

	tools := []api.ToolDefinition{{
		Type: "function",
		Function: api.FunctionDefinition{
			Name:       "get_weather",
			Parameters: json.RawMessage(`{"type":"object"}`),
		},
	}}

	b := New(Config{BaseURL: srv.URL, Model: "qwen", ToolStyle: toolfmt.StyleNative})
	resp, err := b.Complete(context.Background(),
		[]api.ChatMessage{{Role: api.RoleUser, Content: "Weather in Paris?"}},
		toolfmt.Rendered{Style: toolfmt.StyleNative, Native: tools},
		shared.ModelParams{})
	require.NoError(t, err)

	require.Len(t, got.Messages, 1)
	require.Len(t, got.Tools, 1)
	assert.Equal(t, "get_weather", got.Tools[0].Function.Name)

	assert.Empty(t, resp.Text)
	require.Len(t, resp.ToolCalls, 1)
	assert.Equal(t, "get_weather", resp.ToolCalls[0].Function.Name)
	assert.JSONEq(t, `{"city":"Paris"}`, resp.ToolCalls[0].Function.Arguments)
}

func TestCompleteNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer srv.Close()

	b := New(Config{BaseURL: srv.URL, Model: "qwen"})
	_, err := b.Complete(context.Background(),
		[]api.ChatMessage{{Role: api.RoleUser, Content: "Hi"}},
		toolfmt.Rendered{}, shared.ModelParams{})
	require.Error(t, err)

	var se *shared.Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, shared.ErrBackendProtocol, se.Code)
}
