package orchestrator

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/klappy/unfoldingtheword/internal/adapter/provider/claude"
	"github.com/klappy/unfoldingtheword/internal/config"
	"github.com/klappy/unfoldingtheword/internal/domain"
	"github.com/klappy/unfoldingtheword/internal/service/intent"
	notesvc "github.com/klappy/unfoldingtheword/internal/service/note"
	"github.com/klappy/unfoldingtheword/internal/service/replay"
)

const (
	DefaultMaxMessageLength = 4000
	DefaultMaxHistoryTurns  = 20
)

type classifier interface {
	Classify(ctx context.Context, message string) intent.Result
}

type llm interface {
	SelectTools(ctx context.Context, system string, history []claude.Turn, message string, tools []claude.ToolSpec) ([]domain.ToolCall, string, error)
	StreamText(ctx context.Context, system string, history []claude.Turn, message string, onDelta func(string) error) (string, error)
}

type toolExecutor interface {
	Execute(ctx context.Context, calls []domain.ToolCall, prefs replay.Prefs) (*replay.State, error)
}

type conversationRepo interface {
	Create(ctx context.Context, conv *domain.Conversation) (*domain.Conversation, error)
	GetByID(ctx context.Context, deviceID string, id uuid.UUID) (*domain.Conversation, error)
	Touch(ctx context.Context, deviceID string, id uuid.UUID) error
}

type messageRepo interface {
	Create(ctx context.Context, msg *domain.Message) (*domain.Message, error)
	ListByConversation(ctx context.Context, conversationID uuid.UUID, limit int) ([]*domain.Message, error)
}

type noteManager interface {
	CreateNote(ctx context.Context, input notesvc.CreateNoteInput) (*domain.Note, error)
	UpdateNote(ctx context.Context, input notesvc.UpdateNoteInput) (*domain.Note, error)
	DeleteNote(ctx context.Context, input notesvc.DeleteNoteInput) error
}

// Service drives one chat turn end to end: classify, select tools,
// execute, stream the answer, persist the turn with its signatures.
type Service struct {
	intents       classifier
	llm           llm
	executor      toolExecutor
	conversations conversationRepo
	messages      messageRepo
	notes         noteManager
	log           *slog.Logger

	maxMessageLength int
	maxHistoryTurns  int
}

// NewService creates a new Orchestrator service.
func NewService(
	log *slog.Logger,
	cfg config.ChatConfig,
	intents classifier,
	llmClient llm,
	executor toolExecutor,
	conversations conversationRepo,
	messages messageRepo,
	notes noteManager,
) *Service {
	maxLen := cfg.MaxMessageLength
	if maxLen <= 0 {
		maxLen = DefaultMaxMessageLength
	}
	maxTurns := cfg.MaxHistoryTurns
	if maxTurns <= 0 {
		maxTurns = DefaultMaxHistoryTurns
	}
	return &Service{
		intents:          intents,
		llm:              llmClient,
		executor:         executor,
		conversations:    conversations,
		messages:         messages,
		notes:            notes,
		log:              log.With("service", "orchestrator"),
		maxMessageLength: maxLen,
		maxHistoryTurns:  maxTurns,
	}
}
