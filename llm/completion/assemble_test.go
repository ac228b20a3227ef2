package completion

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"function-server/llm/api"
	"function-server/llm/interpret"
)

func TestAssemblePlainMessage(t *testing.T) {
	result := &interpret.Result{Content: "Hello!"}
	resp := Assemble(result, "llama3.1:8b", 12, 3)

	assert.Equal(t, api.ObjectChatCompletion, resp.Object)
	assert.Equal(t, "llama3.1:8b", resp.Model)
	require.Len(t, resp.Choices, 1)

	choice := resp.Choices[0]
	assert.Equal(t, 0, choice.Index)
	assert.Equal(t, api.FinishReasonStop, choice.FinishReason)
	assert.Equal(t, api.RoleAssistant, choice.Message.Role)
	require.NotNil(t, choice.Message.Content)
	assert.Equal(t, "Hello!", *choice.Message.Content)
	assert.Nil(t, choice.Message.FunctionCall)
}

func TestAssembleFunctionCall(t *testing.T) {
	result := &interpret.Result{
		FunctionCall: &api.FunctionCall{Name: "crm_create_lead", Arguments: `{"name":"John Doe"}`},
	}
	resp := Assemble(result, "gpt-4o-mini", 20, 7)

	require.Len(t, resp.Choices, 1)
	choice := resp.Choices[0]
	assert.Equal(t, api.FinishReasonFunctionCall, choice.FinishReason)
	assert.Nil(t, choice.Message.Content)
	require.NotNil(t, choice.Message.FunctionCall)
	assert.Equal(t, "crm_create_lead", choice.Message.FunctionCall.Name)
	assert.JSONEq(t, `{"name":"John Doe"}`, choice.Message.FunctionCall.Arguments)
}

func TestAssembleFunctionCallSerializesNullContent(t *testing.T) {
	result := &interpret.Result{
		FunctionCall: &api.FunctionCall{Name: "crm_create_lead", Arguments: "{}"},
	}
	data, err := json.Marshal(Assemble(result, "m", 1, 1))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	choices := decoded["choices"].([]any)
	message := choices[0].(map[string]any)["message"].(map[string]any)
	content, present := message["content"]
	assert.True(t, present, "content field must be serialized")
	assert.Nil(t, content)
}

func TestAssembleUsageInvariant(t *testing.T) {
	tests := []struct{ prompt, completion int }{
		{0, 0},
		{12, 3},
		{1024, 256},
	}
	for _, tt := range tests {
		resp := Assemble(&interpret.Result{Content: "x"}, "m", tt.prompt, tt.completion)
		assert.Equal(t, tt.prompt, resp.Usage.PromptTokens)
		assert.Equal(t, tt.completion, resp.Usage.CompletionTokens)
		assert.Equal(t, tt.prompt+tt.completion, resp.Usage.TotalTokens)
	}
}

func TestAssembleIDAndCreated(t *testing.T) {
	before := time.Now().Unix()
	first := Assemble(&interpret.Result{Content: "x"}, "m", 0, 0)
	second := Assemble(&interpret.Result{Content: "x"}, "m", 0, 0)
	after := time.Now().Unix()

	assert.NotEqual(t, first.ID, second.ID)
	assert.Contains(t, first.ID, "chatcmpl-")
	assert.GreaterOrEqual(t, first.Created, before)
	assert.LessOrEqual(t, first.Created, after)
}

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 0, EstimateTokens(""))
	assert.Equal(t, 3, EstimateTokens("hello, world!"))

	msgs := []api.ChatMessage{
		{Role: api.RoleUser, Content: "hello, world!"},
		{Role: api.RoleAssistant, Content: ""},
	}
	assert.Equal(t, 3+4+0+4, EstimateMessageTokens(msgs))
}
