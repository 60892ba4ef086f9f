// Package message implements the message repository using PostgreSQL.
// Tool-call signatures are stored as a JSONB array alongside each
// assistant message; results are never persisted.
package message

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/klappy/unfoldingtheword/internal/adapter/postgres"
	"github.com/klappy/unfoldingtheword/internal/domain"
)

var sq = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const columns = "id, conversation_id, role, content, navigation_hint, tool_calls, created_at"

type row struct {
	ID             uuid.UUID `db:"id"`
	ConversationID uuid.UUID `db:"conversation_id"`
	Role           string    `db:"role"`
	Content        string    `db:"content"`
	NavigationHint *string   `db:"navigation_hint"`
	ToolCalls      []byte    `db:"tool_calls"`
	CreatedAt      time.Time `db:"created_at"`
}

func (r row) toDomain() (domain.Message, error) {
	calls, err := domain.DecodeToolCalls(r.ToolCalls)
	if err != nil {
		return domain.Message{}, fmt.Errorf("decode tool_calls for message %s: %w", r.ID, err)
	}

	msg := domain.Message{
		ID:             r.ID,
		ConversationID: r.ConversationID,
		Role:           domain.MessageRole(r.Role),
		Content:        r.Content,
		ToolCalls:      calls,
		CreatedAt:      r.CreatedAt,
	}
	if r.NavigationHint != nil {
		msg.NavigationHint = domain.NavigationHint(*r.NavigationHint)
	}
	return msg, nil
}

// Repo provides message persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new message repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Create inserts one message and returns the persisted record.
func (r *Repo) Create(ctx context.Context, msg *domain.Message) (*domain.Message, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	calls, err := domain.EncodeToolCalls(msg.ToolCalls)
	if err != nil {
		return nil, fmt.Errorf("encode tool_calls: %w", err)
	}

	var hint *string
	if msg.NavigationHint != "" {
		h := string(msg.NavigationHint)
		hint = &h
	}

	sql, args, err := sq.Insert("messages").
		Columns("id", "conversation_id", "role", "content", "navigation_hint", "tool_calls", "created_at").
		Values(msg.ID, msg.ConversationID, string(msg.Role), msg.Content, hint, calls, msg.CreatedAt).
		Suffix("RETURNING " + columns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert message: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, q, &rw, sql, args...); err != nil {
		return nil, postgres.MapError(err, "message", msg.ID)
	}

	result, err := rw.toDomain()
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ListByConversation returns a conversation's messages in chronological
// order. A zero limit means no limit. The slice is never nil.
func (r *Repo) ListByConversation(ctx context.Context, conversationID uuid.UUID, limit int) ([]*domain.Message, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	builder := sq.Select(columns).
		From("messages").
		Where(squirrel.Eq{"conversation_id": conversationID}).
		OrderBy("created_at ASC, id ASC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list messages: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	messages := make([]*domain.Message, len(rows))
	for i, rw := range rows {
		msg, err := rw.toDomain()
		if err != nil {
			return nil, err
		}
		messages[i] = &msg
	}
	return messages, nil
}

// LatestAssistant returns the newest assistant message in a
// conversation, or domain.ErrNotFound when there is none. Replay loads
// its tool-call signatures from here.
func (r *Repo) LatestAssistant(ctx context.Context, conversationID uuid.UUID) (*domain.Message, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := sq.Select(columns).
		From("messages").
		Where(squirrel.Eq{"conversation_id": conversationID, "role": string(domain.RoleAssistant)}).
		OrderBy("created_at DESC, id DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build latest assistant message: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, q, &rw, sql, args...); err != nil {
		return nil, postgres.MapError(err, "message", conversationID)
	}

	result, err := rw.toDomain()
	if err != nil {
		return nil, err
	}
	return &result, nil
}
