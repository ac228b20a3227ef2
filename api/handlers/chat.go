package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	llmapi "function-server/llm/api"
	"function-server/llm/backends"
	"function-server/llm/completion"
	"function-server/llm/functions"
	"function-server/llm/interpret"
	"function-server/llm/shared"
	"function-server/llm/toolfmt"
)

// ChatHandler handles OpenAI-compatible chat completion requests.
type ChatHandler struct {
	backends  *backends.Registry
	functions *functions.Registry
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(backendRegistry *backends.Registry, functionRegistry *functions.Registry) *ChatHandler {
	return &ChatHandler{backends: backendRegistry, functions: functionRegistry}
}

//	curl -X POST http://localhost:8080/v1/chat/completions \
//	  -H "Content-Type: application/json" \
//	  -d '{
//	        "messages": [
//	          {"role":"user","content":"Create a lead for John Doe"}
//	        ],
//	        "tools": [{"type":"function","function":{"name":"crm_create_lead"}}]
//	      }'
func (h *ChatHandler) ChatCompletions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSONError(w, http.StatusMethodNotAllowed, string(shared.ErrValidation), "use POST method")
		return
	}

	var req llmapi.ChatCompletionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, string(shared.ErrValidation), "invalid JSON request: "+err.Error())
		return
	}
	if req.Stream {
		writeJSONError(w, http.StatusBadRequest, string(shared.ErrValidation), "streaming is not supported: set stream=false or omit the field")
		return
	}
	if err := shared.ValidateMessages(req.Messages); err != nil {
		writeError(w, err)
		return
	}

	backend, model, err := h.backends.ForModel(req.Model)
	if err != nil {
		writeError(w, err)
		return
	}

	// Advertise the requested subset of the registry, or all of it. Every
	// referenced name must be registered; this fails before any backend call.
	var tools []llmapi.ToolDefinition
	if req.Tools == nil {
		tools = h.functions.ToolDefinitions()
	} else {
		tools, err = h.functions.Resolve(req.Tools)
		if err != nil {
			writeError(w, err)
			return
		}
	}

	style := backend.ToolStyle()
	rendered, err := toolfmt.Render(tools, style)
	if err != nil {
		writeError(w, err)
		return
	}

	params := shared.ModelParams{
		Model:       model,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}

	resp, err := backend.Complete(r.Context(), req.Messages, rendered, params)
	if err != nil {
		slog.Error("backend call failed", "backend", backend.Name(), "model", model, "error", err)
		writeError(w, err)
		return
	}

	result, err := interpret.Interpret(resp, h.functions, style)
	if err != nil {
		slog.Error("failed to interpret backend response", "backend", backend.Name(), "error", err)
		writeError(w, err)
		return
	}

	promptTokens, completionTokens := usageCounts(resp, req.Messages)
	envelope := completion.Assemble(result, model, promptTokens, completionTokens)
	writeJSON(w, http.StatusOK, envelope)
}

// usageCounts prefers backend-reported usage and falls back to estimates.
func usageCounts(resp *backends.Response, messages []llmapi.ChatMessage) (int, int) {
	if resp.Usage != nil {
		return resp.Usage.PromptTokens, resp.Usage.CompletionTokens
	}
	return completion.EstimateMessageTokens(messages), completion.EstimateTokens(resp.Text)
}
