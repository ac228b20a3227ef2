package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"function-server/api"
	"function-server/llm/shared"
)

// writeJSONError writes a JSON error response.
func writeJSONError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(api.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// writeError maps a normalized pipeline error onto an HTTP status and a
// machine-readable code. Timeouts surface as 504, other backend-side
// failures as 502, caller mistakes as 400.
func writeError(w http.ResponseWriter, err error) {
	var se *shared.Error
	if !errors.As(err, &se) {
		writeJSONError(w, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}
	writeJSONError(w, statusFor(se.Code), string(se.Code), se.Message)
}

func statusFor(code shared.ErrorCode) int {
	switch code {
	case shared.ErrValidation, shared.ErrDuplicateFunction, shared.ErrFunctionNotFound:
		return http.StatusBadRequest
	case shared.ErrBackendTimeout:
		return http.StatusGatewayTimeout
	case shared.ErrBackendUnreachable, shared.ErrBackendProtocol,
		shared.ErrUnknownFunction, shared.ErrArgumentParse:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeJSON writes a successful JSON response.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
