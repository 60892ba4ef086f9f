package note

import (
	"strings"

	"github.com/google/uuid"
	"github.com/klappy/unfoldingtheword/internal/domain"
)

// CreateNoteInput holds the parameters for creating a note.
type CreateNoteInput struct {
	Reference *string
	Content   string
}

// Validate checks all fields and collects all errors.
func (i CreateNoteInput) Validate() error {
	var errs []domain.FieldError

	content := strings.TrimSpace(i.Content)
	if content == "" {
		errs = append(errs, domain.FieldError{Field: "content", Message: "required"})
	}
	if len(content) > 10000 {
		errs = append(errs, domain.FieldError{Field: "content", Message: "max 10000 characters"})
	}

	if i.Reference != nil {
		ref := strings.TrimSpace(*i.Reference)
		if len(ref) > 100 {
			errs = append(errs, domain.FieldError{Field: "reference", Message: "max 100 characters"})
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListNotesInput holds the parameters for listing notes.
type ListNotesInput struct {
	Reference *string
	Limit     int
	Offset    int
}

// Validate checks all fields and collects all errors.
func (i ListNotesInput) Validate() error {
	var errs []domain.FieldError
	if i.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be non-negative"})
	}
	if i.Limit > 200 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "max 200"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be non-negative"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateNoteInput holds the parameters for updating a note.
type UpdateNoteInput struct {
	NoteID    uuid.UUID
	Reference *string
	Content   string
}

// Validate checks all fields and collects all errors.
func (i UpdateNoteInput) Validate() error {
	var errs []domain.FieldError

	if i.NoteID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "note_id", Message: "required"})
	}

	content := strings.TrimSpace(i.Content)
	if content == "" {
		errs = append(errs, domain.FieldError{Field: "content", Message: "required"})
	}
	if len(content) > 10000 {
		errs = append(errs, domain.FieldError{Field: "content", Message: "max 10000 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// DeleteNoteInput holds the parameters for deleting a note.
type DeleteNoteInput struct {
	NoteID uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i DeleteNoteInput) Validate() error {
	if i.NoteID == uuid.Nil {
		return domain.NewValidationError("note_id", "required")
	}
	return nil
}
