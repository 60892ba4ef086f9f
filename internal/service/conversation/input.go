package conversation

import (
	"strings"

	"github.com/google/uuid"
	"github.com/klappy/unfoldingtheword/internal/domain"
)

// CreateConversationInput holds the parameters for creating a conversation.
type CreateConversationInput struct {
	Title string
}

// Validate checks all fields and collects all errors.
func (i CreateConversationInput) Validate() error {
	if len(strings.TrimSpace(i.Title)) > 200 {
		return domain.NewValidationError("title", "max 200 characters")
	}
	return nil
}

// ListConversationsInput holds the parameters for listing conversations.
type ListConversationsInput struct {
	Limit  int
	Offset int
}

// Validate checks all fields and collects all errors.
func (i ListConversationsInput) Validate() error {
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

// DeleteConversationInput holds the parameters for deleting a conversation.
type DeleteConversationInput struct {
	ConversationID uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i DeleteConversationInput) Validate() error {
	if i.ConversationID == uuid.Nil {
		return domain.NewValidationError("conversation_id", "required")
	}
	return nil
}
