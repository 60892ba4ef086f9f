package note

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/klappy/unfoldingtheword/internal/domain"
	"github.com/klappy/unfoldingtheword/pkg/ctxutil"
)

// ListNotes returns a paginated list of the device's notes, optionally
// filtered by exact scripture reference.
func (s *Service) ListNotes(ctx context.Context, input ListNotesInput) ([]*domain.Note, int, error) {
	deviceID, ok := ctxutil.DeviceIDFromCtx(ctx)
	if !ok {
		return nil, 0, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, 0, err
	}

	limit := input.Limit
	if limit == 0 {
		limit = DefaultLimit
	}

	notes, totalCount, err := s.notes.List(ctx, deviceID, trimOrNil(input.Reference), limit, input.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list notes: %w", err)
	}

	return notes, totalCount, nil
}

// GetNote returns a single note by ID.
func (s *Service) GetNote(ctx context.Context, noteID uuid.UUID) (*domain.Note, error) {
	deviceID, ok := ctxutil.DeviceIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	n, err := s.notes.GetByID(ctx, deviceID, noteID)
	if err != nil {
		return nil, fmt.Errorf("get note: %w", err)
	}

	return n, nil
}
