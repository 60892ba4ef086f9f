package conversation

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/klappy/unfoldingtheword/internal/domain"
	"github.com/klappy/unfoldingtheword/pkg/ctxutil"
)

// ConversationWithMessages bundles a conversation with its full turn
// history in chronological order.
type ConversationWithMessages struct {
	Conversation *domain.Conversation
	Messages     []*domain.Message
}

// Get returns a conversation and its messages.
func (s *Service) Get(ctx context.Context, conversationID uuid.UUID) (*ConversationWithMessages, error) {
	deviceID, ok := ctxutil.DeviceIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	conv, err := s.conversations.GetByID(ctx, deviceID, conversationID)
	if err != nil {
		return nil, fmt.Errorf("get conversation: %w", err)
	}

	messages, err := s.messages.ListByConversation(ctx, conversationID, 0)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	return &ConversationWithMessages{
		Conversation: conv,
		Messages:     messages,
	}, nil
}
