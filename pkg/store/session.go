package store

import "time"

// ChatMessage is a single turn in a sidebar conversation.
type ChatMessage struct {
	Role      string    `json:"role"` // "user" | "assistant"
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatSession is the in-memory state of one chat sidebar conversation.
// Sessions are ephemeral: they live in the cache and are not part of the
// CRM snapshot.
type ChatSession struct {
	ID        string        `json:"id"`
	Messages  []ChatMessage `json:"messages"`
	CreatedAt time.Time     `json:"created_at"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)
