package conversation

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/klappy/unfoldingtheword/internal/domain"
	"github.com/klappy/unfoldingtheword/internal/service/replay"
)

type conversationRepoMock struct {
	CreateFunc   func(ctx context.Context, conv *domain.Conversation) (*domain.Conversation, error)
	GetByIDFunc  func(ctx context.Context, deviceID string, id uuid.UUID) (*domain.Conversation, error)
	ListFunc     func(ctx context.Context, deviceID string, limit, offset int) ([]*domain.Conversation, int, error)
	SetTitleFunc func(ctx context.Context, deviceID string, id uuid.UUID, title string) error
	DeleteFunc   func(ctx context.Context, deviceID string, id uuid.UUID) error

	mu    sync.RWMutex
	calls struct {
		Create   []*domain.Conversation
		GetByID  []uuid.UUID
		List     []string
		SetTitle []string
		Delete   []uuid.UUID
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

func (m *conversationRepoMock) List(ctx context.Context, deviceID string, limit, offset int) ([]*domain.Conversation, int, error) {
	if m.ListFunc == nil {
		panic("conversationRepoMock.ListFunc is nil")
	}
	m.mu.Lock()
	m.calls.List = append(m.calls.List, deviceID)
	m.mu.Unlock()
	return m.ListFunc(ctx, deviceID, limit, offset)
}

func (m *conversationRepoMock) SetTitle(ctx context.Context, deviceID string, id uuid.UUID, title string) error {
	if m.SetTitleFunc == nil {
		panic("conversationRepoMock.SetTitleFunc is nil")
	}
	m.mu.Lock()
	m.calls.SetTitle = append(m.calls.SetTitle, title)
	m.mu.Unlock()
	return m.SetTitleFunc(ctx, deviceID, id, title)
}

func (m *conversationRepoMock) Delete(ctx context.Context, deviceID string, id uuid.UUID) error {
	if m.DeleteFunc == nil {
		panic("conversationRepoMock.DeleteFunc is nil")
	}
	m.mu.Lock()
	m.calls.Delete = append(m.calls.Delete, id)
	m.mu.Unlock()
	return m.DeleteFunc(ctx, deviceID, id)
}

func (m *conversationRepoMock) CreateCalls() []*domain.Conversation {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls.Create
}

func (m *conversationRepoMock) DeleteCalls() []uuid.UUID {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls.Delete
}

type messageRepoMock struct {
	ListByConversationFunc func(ctx context.Context, conversationID uuid.UUID, limit int) ([]*domain.Message, error)
	LatestAssistantFunc    func(ctx context.Context, conversationID uuid.UUID) (*domain.Message, error)

	mu    sync.RWMutex
	calls struct {
		ListByConversation []uuid.UUID
		LatestAssistant    []uuid.UUID
	}
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

func (m *messageRepoMock) ListByConversationCalls() []uuid.UUID {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls.ListByConversation
}

func (m *messageRepoMock) LatestAssistant(ctx context.Context, conversationID uuid.UUID) (*domain.Message, error) {
	if m.LatestAssistantFunc == nil {
		panic("messageRepoMock.LatestAssistantFunc is nil")
	}
	m.mu.Lock()
	m.calls.LatestAssistant = append(m.calls.LatestAssistant, conversationID)
	m.mu.Unlock()
	return m.LatestAssistantFunc(ctx, conversationID)
}

type replayerMock struct {
	ReplayFunc func(ctx context.Context, calls []domain.ToolCall, prefs replay.Prefs) (*replay.State, error)

	mu    sync.RWMutex
	calls struct {
		Replay [][]domain.ToolCall
	}
}

func (m *replayerMock) Replay(ctx context.Context, calls []domain.ToolCall, prefs replay.Prefs) (*replay.State, error) {
	if m.ReplayFunc == nil {
		panic("replayerMock.ReplayFunc is nil")
	}
	m.mu.Lock()
	m.calls.Replay = append(m.calls.Replay, calls)
	m.mu.Unlock()
	return m.ReplayFunc(ctx, calls, prefs)
}

func (m *replayerMock) ReplayCalls() [][]domain.ToolCall {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls.Replay
}
