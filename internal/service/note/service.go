package note

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/klappy/unfoldingtheword/internal/domain"
)

const (
	DefaultMaxNotes = 1000
	DefaultLimit    = 50
)

type noteRepo interface {
	Create(ctx context.Context, note *domain.Note) (*domain.Note, error)
	GetByID(ctx context.Context, deviceID string, id uuid.UUID) (*domain.Note, error)
	List(ctx context.Context, deviceID string, reference *string, limit, offset int) ([]*domain.Note, int, error)
	Count(ctx context.Context, deviceID string) (int, error)
	Update(ctx context.Context, deviceID string, id uuid.UUID, reference *string, content string) (*domain.Note, error)
	Delete(ctx context.Context, deviceID string, id uuid.UUID) error
}

// Service provides study note operations, scoped per device.
type Service struct {
	notes    noteRepo
	maxNotes int
	log      *slog.Logger
}

// NewService creates a new Note service. maxNotes caps the number of
// notes a device can hold; 0 uses DefaultMaxNotes.
func NewService(
	log *slog.Logger,
	notes noteRepo,
	maxNotes int,
) *Service {
	if maxNotes <= 0 {
		maxNotes = DefaultMaxNotes
	}
	return &Service{
		notes:    notes,
		maxNotes: maxNotes,
		log:      log.With("service", "note"),
	}
}

// trimOrNil trims whitespace. Returns nil if result is empty.
func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
