package toolfmt

import (
	"encoding/json"
	"regexp"
	"strings"

	"function-server/llm/shared"
)

// InlineCall is a serialized function call recovered from model output text.
// Arguments carries the raw argument text as written by the model; the
// interpreter decides whether it is well-formed.
type InlineCall struct {
	Name      string
	Arguments string
}

// Inline call convention: for xml style the model wraps the call in
// <tool_call>{"name": ..., "arguments": {...}}</tool_call>; for json style it
// emits a bare JSON object carrying a "name" key.
var toolCallRE = regexp.MustCompile(`(?s)<tool_call>\s*(\{.*?\})\s*</tool_call>`)

// ParseCall scans model output text for an embedded serialized call in the
// given style. It is the inverse of Render's inline encodings; the native
// style never embeds calls in text, so it never matches.
func ParseCall(text string, style Style) (*InlineCall, bool) {
	switch style {
	case StyleXML:
		m := toolCallRE.FindStringSubmatch(text)
		if m == nil {
			return nil, false
		}
		return decodeCall([]byte(m[1]))
	case StyleJSON:
		return scanJSONCall(text)
	default:
		return nil, false
	}
}

// scanJSONCall tries each candidate object start left to right and returns
// the first decodable JSON object carrying a "name" key.
func scanJSONCall(text string) (*InlineCall, bool) {
	for i := 0; i < len(text); i++ {
		if text[i] != '{' {
			continue
		}
		dec := json.NewDecoder(strings.NewReader(text[i:]))
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			continue
		}
		if call, ok := decodeCall(raw); ok {
			return call, true
		}
	}
	return nil, false
}

func decodeCall(data []byte) (*InlineCall, bool) {
	var payload struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments"`
	}
	if err := json.Unmarshal(data, &payload); err != nil || payload.Name == "" {
		return nil, false
	}
	call := &InlineCall{Name: payload.Name, Arguments: "{}"}
	if len(payload.Arguments) > 0 {
		args := strings.TrimSpace(string(payload.Arguments))
		// A JSON string value means the arguments were double-encoded.
		if strings.HasPrefix(args, `"`) {
			var inner string
			if err := json.Unmarshal(payload.Arguments, &inner); err != nil {
				return nil, false
			}
			args = inner
		}
		call.Arguments = args
	}
	return call, true
}

// RenderedNames recovers the ordered function names from a rendered tool
// block. It is the format round-trip counterpart of Render.
func RenderedNames(rendered Rendered) ([]string, error) {
	switch rendered.Style {
	case StyleNative:
		names := make([]string, 0, len(rendered.Native))
		for _, tool := range rendered.Native {
			names = append(names, tool.Function.Name)
		}
		return names, nil
	case StyleJSON:
		if rendered.Inline == "" {
			return nil, nil
		}
		var tools []struct {
			Function struct {
				Name string `json:"name"`
			} `json:"function"`
		}
		if err := json.Unmarshal([]byte(rendered.Inline), &tools); err != nil {
			return nil, shared.Errorf(shared.ErrValidation, "malformed rendered tools: %v", err)
		}
		names := make([]string, 0, len(tools))
		for _, tool := range tools {
			names = append(names, tool.Function.Name)
		}
		return names, nil
	case StyleXML:
		matches := toolNameRE.FindAllStringSubmatch(rendered.Inline, -1)
		names := make([]string, 0, len(matches))
		for _, m := range matches {
			names = append(names, unescapeXML(m[1]))
		}
		return names, nil
	default:
		return nil, shared.Errorf(shared.ErrValidation, "unsupported tool format: %s", rendered.Style)
	}
}

var toolNameRE = regexp.MustCompile(`<tool name="([^"]*)">`)
