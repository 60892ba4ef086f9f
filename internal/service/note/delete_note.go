package note

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/klappy/unfoldingtheword/internal/domain"
	"github.com/klappy/unfoldingtheword/pkg/ctxutil"
)

// DeleteNote deletes a note by ID.
func (s *Service) DeleteNote(ctx context.Context, input DeleteNoteInput) error {
	deviceID, ok := ctxutil.DeviceIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return err
	}

	if err := s.notes.Delete(ctx, deviceID, input.NoteID); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}

	s.log.InfoContext(ctx, "note deleted",
		slog.String("device_id", deviceID),
		slog.String("note_id", input.NoteID.String()),
	)

	return nil
}
