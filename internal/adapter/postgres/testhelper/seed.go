package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/klappy/unfoldingtheword/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedConversation creates a conversation for a fresh device id.
// Returns the filled domain.Conversation.
func SeedConversation(t *testing.T, pool *pgxpool.Pool) domain.Conversation {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	conv := domain.Conversation{
		ID:        uuid.New(),
		DeviceID:  "device-" + uniqueSuffix(),
		Title:     "Seed conversation",
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO conversations (id, device_id, title, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		conv.ID, conv.DeviceID, conv.Title, conv.CreatedAt, conv.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("SeedConversation: %v", err)
	}

	return conv
}

// SeedMessage creates one message in a conversation.
func SeedMessage(t *testing.T, pool *pgxpool.Pool, conversationID uuid.UUID, role domain.MessageRole, content string) domain.Message {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	msg := domain.Message{
		ID:             uuid.New(),
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
		CreatedAt:      now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO messages (id, conversation_id, role, content, tool_calls, created_at)
		 VALUES ($1, $2, $3, $4, '[]'::jsonb, $5)`,
		msg.ID, msg.ConversationID, string(msg.Role), msg.Content, msg.CreatedAt,
	)
	if err != nil {
		t.Fatalf("SeedMessage: %v", err)
	}

	return msg
}

// SeedNote creates a note for the given device.
func SeedNote(t *testing.T, pool *pgxpool.Pool, deviceID, content string) domain.Note {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	note := domain.Note{
		ID:        uuid.New(),
		DeviceID:  deviceID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO notes (id, device_id, reference, content, created_at, updated_at)
		 VALUES ($1, $2, NULL, $3, $4, $5)`,
		note.ID, note.DeviceID, note.Content, note.CreatedAt, note.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("SeedNote: %v", err)
	}

	return note
}
