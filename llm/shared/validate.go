package shared

import (
	"function-server/llm/api"
)

// ValidateMessages checks a request message sequence before any backend call.
func ValidateMessages(messages []api.ChatMessage) error {
	if len(messages) == 0 {
		return Errorf(ErrValidation, "messages cannot be empty")
	}
	for i, msg := range messages {
		if msg.Role == "" {
			return Errorf(ErrValidation, "message %d: role cannot be empty", i)
		}
		switch msg.Role {
		case api.RoleSystem, api.RoleUser, api.RoleAssistant, api.RoleFunction:
		default:
			return Errorf(ErrValidation, "message %d: invalid role %q", i, msg.Role)
		}
	}
	return nil
}
