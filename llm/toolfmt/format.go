// Package toolfmt renders registered function definitions into the
// representation a backend expects, and parses function calls back out of
// model output. Rendering is a pure function of its inputs: identical tools
// and style always produce byte-identical output, and parameter schemas are
// embedded exactly as registered.
package toolfmt

import (
	"encoding/json"
	"strings"

	"function-server/llm/api"
	"function-server/llm/shared"
)

// Style selects how tools are represented for a backend.
type Style string

const (
	// StyleJSON embeds a JSON array mirroring the OpenAI tools field shape
	// inline in the prompt, for backends without native tool support.
	StyleJSON Style = "json"
	// StyleXML embeds a <tools>...</tools> block inline in the prompt.
	StyleXML Style = "xml"
	// StyleNative passes the OpenAI tools array through unchanged, for
	// backends that accept it natively.
	StyleNative Style = "native"
)

// Rendered is the backend-ready representation of a tool set. Inline is
// populated for json and xml styles, Native for the native style.
type Rendered struct {
	Style  Style
	Inline string
	Native []api.ToolDefinition
}

// Render produces the backend-appropriate representation of the given tools.
// An empty tool set renders to the zero value for the style: nothing is
// embedded and no tools array is sent.
func Render(tools []api.ToolDefinition, style Style) (Rendered, error) {
	rendered := Rendered{Style: style}
	if len(tools) == 0 {
		return rendered, nil
	}
	switch style {
	case StyleNative:
		rendered.Native = tools
	case StyleJSON:
		data, err := json.Marshal(tools)
		if err != nil {
			return Rendered{}, shared.Errorf(shared.ErrValidation, "failed to encode tools: %v", err)
		}
		rendered.Inline = string(data)
	case StyleXML:
		rendered.Inline = renderXML(tools)
	default:
		return Rendered{}, shared.Errorf(shared.ErrValidation, "unsupported tool format: %s", style)
	}
	return rendered, nil
}

func renderXML(tools []api.ToolDefinition) string {
	var b strings.Builder
	b.WriteString("<tools>")
	for _, tool := range tools {
		fn := tool.Function
		b.WriteString(`<tool name="`)
		b.WriteString(escapeXML(fn.Name))
		b.WriteString(`">`)
		b.WriteString("<description>")
		b.WriteString(escapeXML(fn.Description))
		b.WriteString("</description>")
		if len(fn.Parameters) > 0 {
			b.WriteString("<parameters>")
			b.Write(fn.Parameters)
			b.WriteString("</parameters>")
		}
		b.WriteString("</tool>")
	}
	b.WriteString("</tools>")
	return b.String()
}

var (
	escapeXML = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	).Replace
	unescapeXML = strings.NewReplacer(
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&amp;", "&",
	).Replace
)
