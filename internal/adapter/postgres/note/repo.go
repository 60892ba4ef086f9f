// Package note implements the note repository using PostgreSQL.
package note

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

const columns = "id, device_id, reference, content, created_at, updated_at"

type row struct {
	ID        uuid.UUID `db:"id"`
	DeviceID  string    `db:"device_id"`
	Reference *string   `db:"reference"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r row) toDomain() domain.Note {
	return domain.Note{
		ID:        r.ID,
		DeviceID:  r.DeviceID,
		Reference: r.Reference,
		Content:   r.Content,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// Repo provides note persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new note repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Create inserts a new note and returns the persisted record.
func (r *Repo) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := sq.Insert("notes").
		Columns("id", "device_id", "reference", "content", "created_at", "updated_at").
		Values(note.ID, note.DeviceID, note.Reference, note.Content, note.CreatedAt, note.UpdatedAt).
		Suffix("RETURNING " + columns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert note: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, q, &rw, sql, args...); err != nil {
		return nil, postgres.MapError(err, "note", note.ID)
	}

	result := rw.toDomain()
	return &result, nil
}

// GetByID returns a note by primary key. Returns domain.ErrNotFound if
// the note does not exist or belongs to another device.
func (r *Repo) GetByID(ctx context.Context, deviceID string, id uuid.UUID) (*domain.Note, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := sq.Select(columns).
		From("notes").
		Where(squirrel.Eq{"id": id, "device_id": deviceID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get note: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, q, &rw, sql, args...); err != nil {
		return nil, postgres.MapError(err, "note", id)
	}

	result := rw.toDomain()
	return &result, nil
}

// List returns a device's notes ordered by most recently updated,
// optionally filtered to an exact reference, plus the total count for
// the same filter. The slice is never nil.
func (r *Repo) List(ctx context.Context, deviceID string, reference *string, limit, offset int) ([]*domain.Note, int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	where := squirrel.Eq{"device_id": deviceID}
	if reference != nil {
		where["reference"] = *reference
	}

	countSQL, countArgs, err := sq.Select("count(*)").From("notes").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count notes: %w", err)
	}

	var total int
	if err := pgxscan.Get(ctx, q, &total, countSQL, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("count notes: %w", err)
	}

	sql, args, err := sq.Select(columns).
		From("notes").
		Where(where).
		OrderBy("updated_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list notes: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, 0, fmt.Errorf("list notes: %w", err)
	}

	notes := make([]*domain.Note, len(rows))
	for i, rw := range rows {
		n := rw.toDomain()
		notes[i] = &n
	}
	return notes, total, nil
}

// Count returns the number of notes a device has.
func (r *Repo) Count(ctx context.Context, deviceID string) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := sq.Select("count(*)").
		From("notes").
		Where(squirrel.Eq{"device_id": deviceID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count notes: %w", err)
	}

	var total int
	if err := pgxscan.Get(ctx, q, &total, sql, args...); err != nil {
		return 0, fmt.Errorf("count notes: %w", err)
	}
	return total, nil
}

// Update replaces a note's content and reference and returns the
// updated record. Returns domain.ErrNotFound for a foreign note.
func (r *Repo) Update(ctx context.Context, deviceID string, id uuid.UUID, reference *string, content string) (*domain.Note, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := sq.Update("notes").
		Set("reference", reference).
		Set("content", content).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "device_id": deviceID}).
		Suffix("RETURNING " + columns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update note: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, q, &rw, sql, args...); err != nil {
		return nil, postgres.MapError(err, "note", id)
	}

	result := rw.toDomain()
	return &result, nil
}

// Delete removes a note. Returns domain.ErrNotFound if the note does
// not exist or belongs to another device.
func (r *Repo) Delete(ctx context.Context, deviceID string, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := sq.Delete("notes").
		Where(squirrel.Eq{"id": id, "device_id": deviceID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete note: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "note", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("note %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
