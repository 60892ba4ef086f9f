package orchestrator

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/klappy/unfoldingtheword/internal/domain"
	notesvc "github.com/klappy/unfoldingtheword/internal/service/note"
)

// applyNoteMutation executes a mutating note signature in the live turn.
// Replay later skips these, so they run exactly once. The returned
// resource lets the client show the touched note without a refetch.
func (s *Service) applyNoteMutation(ctx context.Context, call domain.ToolCall) (*domain.Resource, error) {
	switch call.Tool {
	case domain.ToolCreateNote:
		var reference *string
		if ref := call.StringArg("reference"); ref != "" {
			reference = &ref
		}
		created, err := s.notes.CreateNote(ctx, notesvc.CreateNoteInput{
			Reference: reference,
			Content:   call.StringArg("content"),
		})
		if err != nil {
			return nil, fmt.Errorf("create note: %w", err)
		}
		return noteResource(created), nil

	case domain.ToolUpdateNote:
		noteID, err := uuid.Parse(call.StringArg("note_id"))
		if err != nil {
			return nil, fmt.Errorf("parse note_id: %w", err)
		}
		var reference *string
		if ref := call.StringArg("reference"); ref != "" {
			reference = &ref
		}
		updated, err := s.notes.UpdateNote(ctx, notesvc.UpdateNoteInput{
			NoteID:    noteID,
			Reference: reference,
			Content:   call.StringArg("content"),
		})
		if err != nil {
			return nil, fmt.Errorf("update note: %w", err)
		}
		return noteResource(updated), nil

	case domain.ToolDeleteNote:
		noteID, err := uuid.Parse(call.StringArg("note_id"))
		if err != nil {
			return nil, fmt.Errorf("parse note_id: %w", err)
		}
		if err := s.notes.DeleteNote(ctx, notesvc.DeleteNoteInput{NoteID: noteID}); err != nil {
			return nil, fmt.Errorf("delete note: %w", err)
		}
		return nil, nil

	default:
		return nil, fmt.Errorf("not a mutating tool: %s", call.Tool)
	}
}

func noteResource(n *domain.Note) *domain.Resource {
	res := &domain.Resource{
		ID:      n.ID.String(),
		Kind:    domain.KindUserNote,
		Title:   "Note",
		Content: n.Content,
	}
	if n.Reference != nil {
		res.Title = *n.Reference
		res.Reference = *n.Reference
	}
	return res
}
