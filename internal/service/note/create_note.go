package note

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/klappy/unfoldingtheword/internal/domain"
	"github.com/klappy/unfoldingtheword/pkg/ctxutil"
)

// CreateNote creates a new study note for the current device.
func (s *Service) CreateNote(ctx context.Context, input CreateNoteInput) (*domain.Note, error) {
	deviceID, ok := ctxutil.DeviceIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	content := strings.TrimSpace(input.Content)
	reference := trimOrNil(input.Reference)

	count, err := s.notes.Count(ctx, deviceID)
	if err != nil {
		return nil, fmt.Errorf("count notes: %w", err)
	}
	if count >= s.maxNotes {
		return nil, domain.NewValidationError("notes", fmt.Sprintf("note limit reached (max %d notes)", s.maxNotes))
	}

	now := time.Now().UTC()
	created, err := s.notes.Create(ctx, &domain.Note{
		ID:        uuid.New(),
		DeviceID:  deviceID,
		Reference: reference,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}

	s.log.InfoContext(ctx, "note created",
		slog.String("device_id", deviceID),
		slog.String("note_id", created.ID.String()),
	)

	return created, nil
}
