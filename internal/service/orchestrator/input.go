package orchestrator

import (
	"strings"

	"github.com/google/uuid"
	"github.com/klappy/unfoldingtheword/internal/adapter/provider/claude"
	"github.com/klappy/unfoldingtheword/internal/domain"
	"github.com/klappy/unfoldingtheword/internal/service/replay"
)

// OrchestrateInput holds the parameters for one chat turn.
type OrchestrateInput struct {
	// ConversationID continues an existing thread; nil starts a new one.
	ConversationID *uuid.UUID
	Message        string
	// ClientHistory is the caller-supplied transcript, used only when no
	// ConversationID is given; stored threads use the persisted turns.
	ClientHistory []claude.Turn
	// ScriptureContext is the passage the client currently displays,
	// included in the answer prompt as grounding.
	ScriptureContext string
	ResponseLanguage string
	Voice            bool
	Prefs            replay.Prefs
}

// Validate checks all fields and collects all errors. The message
// length cap is enforced by the service, which knows its configuration.
func (i OrchestrateInput) Validate(maxMessageLength int) error {
	var errs []domain.FieldError

	message := strings.TrimSpace(i.Message)
	if message == "" {
		errs = append(errs, domain.FieldError{Field: "message", Message: "required"})
	}
	if len(message) > maxMessageLength {
		errs = append(errs, domain.FieldError{Field: "message", Message: "too long"})
	}

	if i.ConversationID != nil && *i.ConversationID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "conversation_id", Message: "must not be the zero UUID"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
