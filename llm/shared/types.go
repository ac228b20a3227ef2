package shared

import "fmt"

// ErrorCode defines normalized error codes surfaced to HTTP callers.
type ErrorCode string

const (
	ErrValidation         ErrorCode = "validation_error"
	ErrDuplicateFunction  ErrorCode = "duplicate_function"
	ErrFunctionNotFound   ErrorCode = "function_not_found"
	ErrUnknownFunction    ErrorCode = "unknown_function"
	ErrArgumentParse      ErrorCode = "argument_parse_error"
	ErrBackendUnreachable ErrorCode = "backend_unreachable"
	ErrBackendTimeout     ErrorCode = "backend_timeout"
	ErrBackendProtocol    ErrorCode = "backend_protocol_error"
)

// Error is a normalized error carried across the registry, formatter,
// backends and interpreter so handlers can map every failure to a single
// machine-readable code.
type Error struct {
	Code    ErrorCode
	Message string
	// Optional: HTTP status returned by the upstream backend, when relevant.
	HTTPStatus int
}

func (e *Error) Error() string { return e.Message }

// Errorf builds a normalized error with a formatted message.
func Errorf(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// ModelParams holds per-request sampling parameters. Nil fields mean the
// backend's own default applies.
type ModelParams struct {
	Model       string
	Temperature *float64
	MaxTokens   *int
}
