// Package interpret classifies raw backend output into one normalized result:
// either a plain assistant message or a validated function call. Backends
// differ in how calls surface (native structured fields vs. serialized text),
// so interpretation is style-aware but downstream code only ever sees Result.
package interpret

import (
	"encoding/json"

	"function-server/llm/api"
	"function-server/llm/backends"
	"function-server/llm/functions"
	"function-server/llm/shared"
	"function-server/llm/toolfmt"
)

// Result is the normalized outcome of a backend call. Exactly one of Content
// or FunctionCall is populated.
type Result struct {
	Content      string
	FunctionCall *api.FunctionCall
}

// IsFunctionCall reports whether the result is a function-call directive.
func (r *Result) IsFunctionCall() bool { return r.FunctionCall != nil }

// Interpret classifies a backend response. A native structured call must name
// a registered function (unknown_function otherwise) and carry well-formed
// JSON arguments (argument_parse_error otherwise). Failing a native call, the
// text is scanned for a serialized call in the backend's tool style; a
// recovered call whose name is registered is validated the same way, while an
// unregistered name leaves the text to stand as a plain message.
func Interpret(resp *backends.Response, registry *functions.Registry, style toolfmt.Style) (*Result, error) {
	if len(resp.ToolCalls) > 0 {
		call := resp.ToolCalls[0].Function
		if !registry.Has(call.Name) {
			return nil, shared.Errorf(shared.ErrUnknownFunction, "backend called unknown function: %s", call.Name)
		}
		args, err := normalizeArguments(call.Arguments)
		if err != nil {
			return nil, err
		}
		return &Result{FunctionCall: &api.FunctionCall{Name: call.Name, Arguments: args}}, nil
	}

	if inline, found := toolfmt.ParseCall(resp.Text, style); found && registry.Has(inline.Name) {
		args, err := normalizeArguments(inline.Arguments)
		if err != nil {
			return nil, err
		}
		return &Result{FunctionCall: &api.FunctionCall{Name: inline.Name, Arguments: args}}, nil
	}

	return &Result{Content: resp.Text}, nil
}

// normalizeArguments validates that arguments are a well-formed JSON object
// and returns them unchanged. Empty arguments normalize to an empty object.
func normalizeArguments(raw string) (string, error) {
	if raw == "" {
		return "{}", nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return "", shared.Errorf(shared.ErrArgumentParse, "function arguments are not a JSON object: %v", err)
	}
	return raw, nil
}
