package api

// Role is the role of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleFunction  Role = "function"
)

// ChatMessage represents a single message in a conversation. Order within the
// messages slice is significant: most recent last.
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
	Name    string `json:"name,omitempty"`
}

// AssistantMessage is the message carried by a completion choice. Content is a
// pointer so it serializes as null when the assistant requested a function
// call instead of replying with text.
type AssistantMessage struct {
	Role         Role          `json:"role"`
	Content      *string       `json:"content"`
	FunctionCall *FunctionCall `json:"function_call,omitempty"`
}
