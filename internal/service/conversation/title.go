package conversation

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/klappy/unfoldingtheword/internal/domain"
	"github.com/klappy/unfoldingtheword/pkg/ctxutil"
)

// TitleFromMessage derives a conversation title from the first user
// message, truncated at a word boundary.
func TitleFromMessage(message string) string {
	title := strings.Join(strings.Fields(message), " ")
	if title == "" {
		return DefaultTitle
	}
	if len(title) <= titleMaxLength {
		return title
	}

	cut := titleMaxLength
	for cut > 0 && !unicode.IsSpace(rune(title[cut])) {
		cut--
	}
	if cut == 0 {
		cut = titleMaxLength
	}
	return strings.TrimSpace(title[:cut]) + "…"
}

// SetTitle renames a conversation.
func (s *Service) SetTitle(ctx context.Context, conversationID uuid.UUID, title string) error {
	deviceID, ok := ctxutil.DeviceIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return domain.NewValidationError("title", "required")
	}

	if err := s.conversations.SetTitle(ctx, deviceID, conversationID, title); err != nil {
		return fmt.Errorf("set conversation title: %w", err)
	}

	return nil
}
