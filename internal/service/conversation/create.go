package conversation

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

// Create starts a new conversation for the current device.
func (s *Service) Create(ctx context.Context, input CreateConversationInput) (*domain.Conversation, error) {
	deviceID, ok := ctxutil.DeviceIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = DefaultTitle
	}

	now := time.Now().UTC()
	conv, err := s.conversations.Create(ctx, &domain.Conversation{
		ID:        uuid.New(),
		DeviceID:  deviceID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}

	s.log.InfoContext(ctx, "conversation created",
		slog.String("device_id", deviceID),
		slog.String("conversation_id", conv.ID.String()),
	)

	return conv, nil
}
