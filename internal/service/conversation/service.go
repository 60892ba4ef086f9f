package conversation

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/klappy/unfoldingtheword/internal/domain"
	"github.com/klappy/unfoldingtheword/internal/service/replay"
)

const (
	DefaultLimit = 50
	// DefaultTitle is used until the first user message supplies one.
	DefaultTitle = "New conversation"

	titleMaxLength = 80
)

type conversationRepo interface {
	Create(ctx context.Context, conv *domain.Conversation) (*domain.Conversation, error)
	GetByID(ctx context.Context, deviceID string, id uuid.UUID) (*domain.Conversation, error)
	List(ctx context.Context, deviceID string, limit, offset int) ([]*domain.Conversation, int, error)
	SetTitle(ctx context.Context, deviceID string, id uuid.UUID, title string) error
	Delete(ctx context.Context, deviceID string, id uuid.UUID) error
}

type messageRepo interface {
	ListByConversation(ctx context.Context, conversationID uuid.UUID, limit int) ([]*domain.Message, error)
	LatestAssistant(ctx context.Context, conversationID uuid.UUID) (*domain.Message, error)
}

type replayer interface {
	Replay(ctx context.Context, calls []domain.ToolCall, prefs replay.Prefs) (*replay.State, error)
}

// Service provides conversation history operations, scoped per device.
type Service struct {
	conversations conversationRepo
	messages      messageRepo
	replay        replayer
	log           *slog.Logger
}

// NewService creates a new Conversation service.
func NewService(
	log *slog.Logger,
	conversations conversationRepo,
	messages messageRepo,
	replaySvc replayer,
) *Service {
	return &Service{
		conversations: conversations,
		messages:      messages,
		replay:        replaySvc,
		log:           log.With("service", "conversation"),
	}
}
