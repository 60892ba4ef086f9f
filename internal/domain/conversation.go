package domain

import (
	"time"

	"github.com/google/uuid"
)

// MessageRole is the author of a chat message.
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Conversation is one chat thread, scoped to a locally generated device
// id rather than an authenticated account.
type Conversation struct {
	ID        uuid.UUID
	DeviceID  string
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Message is one turn in a conversation. ToolCalls holds the signatures
// recorded by the orchestrator for that turn; the resolved payloads are
// never persisted, replay regenerates them.
type Message struct {
	ID             uuid.UUID
	ConversationID uuid.UUID
	Role           MessageRole
	Content        string
	NavigationHint NavigationHint
	ToolCalls      []ToolCall
	CreatedAt      time.Time
}

// Note is a user study note, optionally grouped under a scripture
// reference for display filtering.
type Note struct {
	ID        uuid.UUID
	DeviceID  string
	Reference *string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
