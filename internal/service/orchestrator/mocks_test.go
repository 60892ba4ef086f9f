package orchestrator

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/klappy/unfoldingtheword/internal/adapter/provider/claude"
	"github.com/klappy/unfoldingtheword/internal/domain"
	"github.com/klappy/unfoldingtheword/internal/service/intent"
	notesvc "github.com/klappy/unfoldingtheword/internal/service/note"
	"github.com/klappy/unfoldingtheword/internal/service/replay"
)

type classifierMock struct {
	ClassifyFunc func(ctx context.Context, message string) intent.Result

	mu    sync.RWMutex
	calls struct {
		Classify []string
	}
}

func (m *classifierMock) Classify(ctx context.Context, message string) intent.Result {
	if m.ClassifyFunc == nil {
		panic("classifierMock.ClassifyFunc is nil")
	}
	m.mu.Lock()
	m.calls.Classify = append(m.calls.Classify, message)
	m.mu.Unlock()
	return m.ClassifyFunc(ctx, message)
}

func (m *classifierMock) ClassifyCalls() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls.Classify
}

type llmMock struct {
	SelectToolsFunc func(ctx context.Context, system string, history []claude.Turn, message string, tools []claude.ToolSpec) ([]domain.ToolCall, string, error)
	StreamTextFunc  func(ctx context.Context, system string, history []claude.Turn, message string, onDelta func(string) error) (string, error)

	mu    sync.RWMutex
	calls struct {
		SelectTools []string
		StreamText  []string
	}
}

func (m *llmMock) SelectTools(ctx context.Context, system string, history []claude.Turn, message string, tools []claude.ToolSpec) ([]domain.ToolCall, string, error) {
	if m.SelectToolsFunc == nil {
		panic("llmMock.SelectToolsFunc is nil")
	}
	m.mu.Lock()
	m.calls.SelectTools = append(m.calls.SelectTools, message)
	m.mu.Unlock()
	return m.SelectToolsFunc(ctx, system, history, message, tools)
}

func (m *llmMock) StreamText(ctx context.Context, system string, history []claude.Turn, message string, onDelta func(string) error) (string, error) {
	if m.StreamTextFunc == nil {
		panic("llmMock.StreamTextFunc is nil")
	}
	m.mu.Lock()
	m.calls.StreamText = append(m.calls.StreamText, system)
	m.mu.Unlock()
	return m.StreamTextFunc(ctx, system, history, message, onDelta)
}

func (m *llmMock) SelectToolsCalls() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls.SelectTools
}

func (m *llmMock) StreamTextCalls() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls.StreamText
}

type executorMock struct {
	ExecuteFunc func(ctx context.Context, calls []domain.ToolCall, prefs replay.Prefs) (*replay.State, error)

	mu    sync.RWMutex
	calls struct {
		Execute [][]domain.ToolCall
	}
}

func (m *executorMock) Execute(ctx context.Context, calls []domain.ToolCall, prefs replay.Prefs) (*replay.State, error) {
	if m.ExecuteFunc == nil {
		panic("executorMock.ExecuteFunc is nil")
	}
	m.mu.Lock()
	m.calls.Execute = append(m.calls.Execute, calls)
	m.mu.Unlock()
	return m.ExecuteFunc(ctx, calls, prefs)
}

func (m *executorMock) ExecuteCalls() [][]domain.ToolCall {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls.Execute
}

type conversationRepoMock struct {
	CreateFunc  func(ctx context.Context, conv *domain.Conversation) (*domain.Conversation, error)
	GetByIDFunc func(ctx context.Context, deviceID string, id uuid.UUID) (*domain.Conversation, error)
	TouchFunc   func(ctx context.Context, deviceID string, id uuid.UUID) error

	mu    sync.RWMutex
	calls struct {
		Create  []*domain.Conversation
		GetByID []uuid.UUID
		Touch   []uuid.UUID
	}
}

func (m *conversationRepoMock) Create(ctx context.Context, conv *domain.Conversation) (*domain.Conversation, error) {
	if m.CreateFunc == nil {
		panic("conversationRepoMock.CreateFunc is nil")
	}
	m.mu.Lock()
	m.calls.Create = append(m.calls.Create, conv)
	m.mu.Unlock()
	return m.CreateFunc(ctx, conv)
}

func (m *conversationRepoMock) GetByID(ctx context.Context, deviceID string, id uuid.UUID) (*domain.Conversation, error) {
	if m.GetByIDFunc == nil {
		panic("conversationRepoMock.GetByIDFunc is nil")
	}
	m.mu.Lock()
	m.calls.GetByID = append(m.calls.GetByID, id)
	m.mu.Unlock()
	return m.GetByIDFunc(ctx, deviceID, id)
}

func (m *conversationRepoMock) Touch(ctx context.Context, deviceID string, id uuid.UUID) error {
	if m.TouchFunc == nil {
		panic("conversationRepoMock.TouchFunc is nil")
	}
	m.mu.Lock()
	m.calls.Touch = append(m.calls.Touch, id)
	m.mu.Unlock()
	return m.TouchFunc(ctx, deviceID, id)
}

func (m *conversationRepoMock) CreateCalls() []*domain.Conversation {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls.Create
}

type messageRepoMock struct {
	CreateFunc             func(ctx context.Context, msg *domain.Message) (*domain.Message, error)
	ListByConversationFunc func(ctx context.Context, conversationID uuid.UUID, limit int) ([]*domain.Message, error)

	mu    sync.RWMutex
	calls struct {
		Create             []*domain.Message
		ListByConversation []uuid.UUID
	}
}

func (m *messageRepoMock) Create(ctx context.Context, msg *domain.Message) (*domain.Message, error) {
	if m.CreateFunc == nil {
		panic("messageRepoMock.CreateFunc is nil")
	}
	m.mu.Lock()
	m.calls.Create = append(m.calls.Create, msg)
	m.mu.Unlock()
	return m.CreateFunc(ctx, msg)
}

func (m *messageRepoMock) ListByConversation(ctx context.Context, conversationID uuid.UUID, limit int) ([]*domain.Message, error) {
	if m.ListByConversationFunc == nil {
		panic("messageRepoMock.ListByConversationFunc is nil")
	}
	m.mu.Lock()
	m.calls.ListByConversation = append(m.calls.ListByConversation, conversationID)
	m.mu.Unlock()
	return m.ListByConversationFunc(ctx, conversationID, limit)
}

func (m *messageRepoMock) CreateCalls() []*domain.Message {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls.Create
}

type noteManagerMock struct {
	CreateNoteFunc func(ctx context.Context, input notesvc.CreateNoteInput) (*domain.Note, error)
	UpdateNoteFunc func(ctx context.Context, input notesvc.UpdateNoteInput) (*domain.Note, error)
	DeleteNoteFunc func(ctx context.Context, input notesvc.DeleteNoteInput) error

	mu    sync.RWMutex
	calls struct {
		CreateNote []notesvc.CreateNoteInput
		UpdateNote []notesvc.UpdateNoteInput
		DeleteNote []notesvc.DeleteNoteInput
	}
}

func (m *noteManagerMock) CreateNote(ctx context.Context, input notesvc.CreateNoteInput) (*domain.Note, error) {
	if m.CreateNoteFunc == nil {
		panic("noteManagerMock.CreateNoteFunc is nil")
	}
	m.mu.Lock()
	m.calls.CreateNote = append(m.calls.CreateNote, input)
	m.mu.Unlock()
	return m.CreateNoteFunc(ctx, input)
}

func (m *noteManagerMock) UpdateNote(ctx context.Context, input notesvc.UpdateNoteInput) (*domain.Note, error) {
	if m.UpdateNoteFunc == nil {
		panic("noteManagerMock.UpdateNoteFunc is nil")
	}
	m.mu.Lock()
	m.calls.UpdateNote = append(m.calls.UpdateNote, input)
	m.mu.Unlock()
	return m.UpdateNoteFunc(ctx, input)
}

func (m *noteManagerMock) DeleteNote(ctx context.Context, input notesvc.DeleteNoteInput) error {
	if m.DeleteNoteFunc == nil {
		panic("noteManagerMock.DeleteNoteFunc is nil")
	}
	m.mu.Lock()
	m.calls.DeleteNote = append(m.calls.DeleteNote, input)
	m.mu.Unlock()
	return m.DeleteNoteFunc(ctx, input)
}

func (m *noteManagerMock) CreateNoteCalls() []notesvc.CreateNoteInput {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls.CreateNote
}
