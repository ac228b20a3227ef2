package toolfmt

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"function-server/llm/api"
)

func sampleTools() []api.ToolDefinition {
	return []api.ToolDefinition{
		{
			Type: "function",
			Function: api.FunctionDefinition{
				Name:        "crm_create_lead",
				Description: "Create a lead in the CRM",
				Parameters:  json.RawMessage(`{"type":"object","properties":{"name":{"type":"string"},"email":{"type":"string"}},"required":["name"]}`),
			},
		},
		{
			Type: "function",
			Function: api.FunctionDefinition{
				Name:        "send_email",
				Description: "Send an email to a contact",
				Parameters:  json.RawMessage(`{"type":"object","properties":{"to":{"type":"string"}}}`),
			},
		},
	}
}

func TestRenderDeterministic(t *testing.T) {
	tools := sampleTools()
	for _, style := range []Style{StyleJSON, StyleXML} {
		first, err := Render(tools, style)
		require.NoError(t, err)
		second, err := Render(tools, style)
		require.NoError(t, err)
		assert.Equal(t, first.Inline, second.Inline, "style %s", style)
	}
}

func TestRenderPreservesParameterOrder(t *testing.T) {
	// "zulu" precedes "alpha" in the registered schema; rendering must not
	// reorder properties.
	tools := []api.ToolDefinition{{
		Type: "function",
		Function: api.FunctionDefinition{
			Name:       "ordered",
			Parameters: json.RawMessage(`{"type":"object","properties":{"zulu":{"type":"string"},"alpha":{"type":"string"}}}`),
		},
	}}

	rendered, err := Render(tools, StyleJSON)
	require.NoError(t, err)
	zulu := indexOf(rendered.Inline, `"zulu"`)
	alpha := indexOf(rendered.Inline, `"alpha"`)
	require.GreaterOrEqual(t, zulu, 0)
	require.GreaterOrEqual(t, alpha, 0)
	assert.Less(t, zulu, alpha)

	rendered, err = Render(tools, StyleXML)
	require.NoError(t, err)
	assert.Less(t, indexOf(rendered.Inline, `"zulu"`), indexOf(rendered.Inline, `"alpha"`))
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}

func TestRenderEmptyToolSet(t *testing.T) {
	for _, style := range []Style{StyleJSON, StyleXML, StyleNative} {
		rendered, err := Render(nil, style)
		require.NoError(t, err)
		assert.Empty(t, rendered.Inline)
		assert.Empty(t, rendered.Native)
	}
}

func TestRenderUnsupportedStyle(t *testing.T) {
	_, err := Render(sampleTools(), Style("yaml"))
	require.Error(t, err)
}

func TestFormatRoundTrip(t *testing.T) {
	tools := sampleTools()
	want := []string{"crm_create_lead", "send_email"}

	for _, style := range []Style{StyleJSON, StyleXML, StyleNative} {
		t.Run(string(style), func(t *testing.T) {
			rendered, err := Render(tools, style)
			require.NoError(t, err)
			names, err := RenderedNames(rendered)
			require.NoError(t, err)
			assert.Equal(t, want, names)
		})
	}
}

func TestXMLRoundTripEscapedName(t *testing.T) {
	tools := []api.ToolDefinition{{
		Type: "function",
		Function: api.FunctionDefinition{
			Name:        `odd"name`,
			Description: "tools & <brackets>",
		},
	}}
	rendered, err := Render(tools, StyleXML)
	require.NoError(t, err)
	names, err := RenderedNames(rendered)
	require.NoError(t, err)
	assert.Equal(t, []string{`odd"name`}, names)
}

func TestParseCallXML(t *testing.T) {
	text := "I will create the lead.\n<tool_call>{\"name\": \"crm_create_lead\", \"arguments\": {\"name\": \"John Doe\"}}</tool_call>"
	call, found := ParseCall(text, StyleXML)
	require.True(t, found)
	assert.Equal(t, "crm_create_lead", call.Name)
	assert.JSONEq(t, `{"name":"John Doe"}`, call.Arguments)
}

func TestParseCallJSON(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantName string
		wantArgs string
		found    bool
	}{
		{
			name:     "bare object",
			text:     `{"name": "crm_create_lead", "arguments": {"name": "John Doe"}}`,
			wantName: "crm_create_lead",
			wantArgs: `{"name":"John Doe"}`,
			found:    true,
		},
		{
			name:     "surrounded by prose",
			text:     `Sure, calling now: {"name": "send_email", "arguments": {"to": "a@b.c"}} done.`,
			wantName: "send_email",
			wantArgs: `{"to":"a@b.c"}`,
			found:    true,
		},
		{
			name:     "double-encoded arguments",
			text:     `{"name": "send_email", "arguments": "{\"to\": \"a@b.c\"}"}`,
			wantName: "send_email",
			wantArgs: `{"to":"a@b.c"}`,
			found:    true,
		},
		{
			name:     "missing arguments",
			text:     `{"name": "mcp_list_services"}`,
			wantName: "mcp_list_services",
			wantArgs: `{}`,
			found:    true,
		},
		{
			name:  "no call present",
			text:  "Hello! How can I help?",
			found: false,
		},
		{
			name:  "object without name key",
			text:  `{"status": "ok"}`,
			found: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			call, found := ParseCall(tt.text, StyleJSON)
			require.Equal(t, tt.found, found)
			if !tt.found {
				return
			}
			assert.Equal(t, tt.wantName, call.Name)
			assert.JSONEq(t, tt.wantArgs, call.Arguments)
		})
	}
}

func TestParseCallNativeNeverMatches(t *testing.T) {
	_, found := ParseCall(`{"name": "crm_create_lead", "arguments": {}}`, StyleNative)
	assert.False(t, found)
}

func TestParseCallMalformedEnvelope(t *testing.T) {
	// A tool_call wrapper around garbage is not a recognized call.
	_, found := ParseCall("<tool_call>{not json}</tool_call>", StyleXML)
	assert.False(t, found)
}
