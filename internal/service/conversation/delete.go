package conversation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/klappy/unfoldingtheword/internal/domain"
	"github.com/klappy/unfoldingtheword/pkg/ctxutil"
)

// Delete removes a conversation and, via the schema cascade, its messages.
func (s *Service) Delete(ctx context.Context, input DeleteConversationInput) error {
	deviceID, ok := ctxutil.DeviceIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return err
	}

	if err := s.conversations.Delete(ctx, deviceID, input.ConversationID); err != nil {
		return fmt.Errorf("delete conversation: %w", err)
	}

	s.log.InfoContext(ctx, "conversation deleted",
		slog.String("device_id", deviceID),
		slog.String("conversation_id", input.ConversationID.String()),
	)

	return nil
}
