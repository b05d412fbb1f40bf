package llm

import "context"

// Message is one turn of a chat exchange.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatModel is a minimal abstraction for chat-based LLMs used by the domain.
// It intentionally hides concrete providers to preserve dependency direction.
// History carries the whole conversation including the seed exchange; the
// provider returns the assistant's reply text or a classified error (see
// errors.go). No streaming; whole-response only.
type ChatModel interface {
	Chat(ctx context.Context, model string, history []Message) (string, error)
}
