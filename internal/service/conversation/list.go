package conversation

import (
	"context"
	"fmt"

	"github.com/klappy/unfoldingtheword/internal/domain"
	"github.com/klappy/unfoldingtheword/pkg/ctxutil"
)

// List returns the device's conversations, most recently updated first.
func (s *Service) List(ctx context.Context, input ListConversationsInput) ([]*domain.Conversation, int, error) {
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

	conversations, totalCount, err := s.conversations.List(ctx, deviceID, limit, input.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list conversations: %w", err)
	}

	return conversations, totalCount, nil
}
