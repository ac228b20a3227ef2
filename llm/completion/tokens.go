package completion

import (
	"unicode/utf8"

	"function-server/llm/api"
)

// EstimateTokens estimates the number of tokens in a string. This is a rough
// runes/4 heuristic; accurate counts require model-specific tokenizers, and
// backends that report real usage take precedence.
func EstimateTokens(text string) int { return utf8.RuneCountInString(text) / 4 }

// EstimateMessageTokens estimates prompt tokens for a message sequence,
// adding a small per-message overhead for role framing.
func EstimateMessageTokens(messages []api.ChatMessage) int {
	total := 0
	for _, msg := range messages {
		total += EstimateTokens(msg.Content) + 4
	}
	return total
}
