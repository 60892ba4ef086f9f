package note

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/klappy/unfoldingtheword/internal/domain"
	"github.com/klappy/unfoldingtheword/pkg/ctxutil"
)

// UpdateNote updates a note's content and reference.
func (s *Service) UpdateNote(ctx context.Context, input UpdateNoteInput) (*domain.Note, error) {
	deviceID, ok := ctxutil.DeviceIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.notes.Update(ctx, deviceID, input.NoteID, trimOrNil(input.Reference), strings.TrimSpace(input.Content))
	if err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}

	s.log.InfoContext(ctx, "note updated",
		slog.String("device_id", deviceID),
		slog.String("note_id", input.NoteID.String()),
	)

	return updated, nil
}
