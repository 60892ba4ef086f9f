// Package conversation implements the conversation repository using
// PostgreSQL. Every read and write is scoped by device_id so one device
// can never see another's history.
package conversation

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

const columns = "id, device_id, title, created_at, updated_at"

type row struct {
	ID        uuid.UUID `db:"id"`
	DeviceID  string    `db:"device_id"`
	Title     string    `db:"title"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r row) toDomain() domain.Conversation {
	return domain.Conversation{
		ID:        r.ID,
		DeviceID:  r.DeviceID,
		Title:     r.Title,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// Repo provides conversation persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new conversation repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Create inserts a new conversation and returns the persisted record.
func (r *Repo) Create(ctx context.Context, conv *domain.Conversation) (*domain.Conversation, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := sq.Insert("conversations").
		Columns("id", "device_id", "title", "created_at", "updated_at").
		Values(conv.ID, conv.DeviceID, conv.Title, conv.CreatedAt, conv.UpdatedAt).
		Suffix("RETURNING " + columns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert conversation: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, q, &rw, sql, args...); err != nil {
		return nil, postgres.MapError(err, "conversation", conv.ID)
	}

	result := rw.toDomain()
	return &result, nil
}

// GetByID returns a conversation by primary key. Returns
// domain.ErrNotFound if it does not exist or belongs to another device.
func (r *Repo) GetByID(ctx context.Context, deviceID string, id uuid.UUID) (*domain.Conversation, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := sq.Select(columns).
		From("conversations").
		Where(squirrel.Eq{"id": id, "device_id": deviceID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get conversation: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, q, &rw, sql, args...); err != nil {
		return nil, postgres.MapError(err, "conversation", id)
	}

	result := rw.toDomain()
	return &result, nil
}

// List returns a device's conversations ordered by most recently
// updated, plus the total count. The slice is never nil.
func (r *Repo) List(ctx context.Context, deviceID string, limit, offset int) ([]*domain.Conversation, int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	countSQL, countArgs, err := sq.Select("count(*)").
		From("conversations").
		Where(squirrel.Eq{"device_id": deviceID}).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count conversations: %w", err)
	}

	var total int
	if err := pgxscan.Get(ctx, q, &total, countSQL, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("count conversations: %w", err)
	}

	sql, args, err := sq.Select(columns).
		From("conversations").
		Where(squirrel.Eq{"device_id": deviceID}).
		OrderBy("updated_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list conversations: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, 0, fmt.Errorf("list conversations: %w", err)
	}

	conversations := make([]*domain.Conversation, len(rows))
	for i, rw := range rows {
		c := rw.toDomain()
		conversations[i] = &c
	}
	return conversations, total, nil
}

// Touch bumps updated_at so the conversation sorts to the top of the
// device's list. Returns domain.ErrNotFound for a foreign conversation.
func (r *Repo) Touch(ctx context.Context, deviceID string, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := sq.Update("conversations").
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "device_id": deviceID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build touch conversation: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "conversation", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("conversation %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// SetTitle updates the conversation title.
func (r *Repo) SetTitle(ctx context.Context, deviceID string, id uuid.UUID, title string) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := sq.Update("conversations").
		Set("title", title).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "device_id": deviceID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set conversation title: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "conversation", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("conversation %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Delete removes a conversation and, via cascade, its messages.
// Returns domain.ErrNotFound if it does not exist or belongs to
// another device.
func (r *Repo) Delete(ctx context.Context, deviceID string, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := sq.Delete("conversations").
		Where(squirrel.Eq{"id": id, "device_id": deviceID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete conversation: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "conversation", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("conversation %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
