package model

import "time"

// Message roles. A message's role is fixed at creation and never mutated.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single turn in a conversation.
type Message struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Role      string    `json:"role"`
	Timestamp time.Time `json:"timestamp"`
	Sources   []string  `json:"sources,omitempty"` // citations, assistant messages only
}

// Chat stores a conversation thread and its metadata. Messages are
// append-only; their order is the conversation order.
type Chat struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ProjectID string    `json:"project_id,omitempty"` // empty means unfiled
}

// Project is a static grouping label chats may belong to. Projects are
// seeded once at startup and are not created or destroyed afterwards.
type Project struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}
