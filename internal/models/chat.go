package models

import "time"

type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
	ChatRoleSystem    ChatRole = "system"
)

// ChatMessage is a single utterance in a session. Messages are keyed by ID so
// that appends stay idempotent across retries.
type ChatMessage struct {
	ID         string    `json:"id"`
	Role       ChatRole  `json:"role"`
	Content    string    `json:"content"`
	Timestamp  time.Time `json:"timestamp"`
	References []string  `json:"references,omitempty"`
	Intent     string    `json:"intent,omitempty"`
	Confidence float64   `json:"confidence,omitempty"`
}

// ChatSession is an ordered, append-only conversation between an operator and
// the assistant. Messages are ordered by insertion and never reordered.
type ChatSession struct {
	ID           string        `json:"sessionId"`
	Messages     []ChatMessage `json:"messages"`
	CreatedAt    time.Time     `json:"createdAt"`
	LastActiveAt time.Time     `json:"lastActiveAt"`
}
