package note

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/klappy/unfoldingtheword/internal/domain"
)

// noteRepoMock is a hand-rolled mock of noteRepo. Methods panic when
// their Func field is unset so missing expectations fail loudly.
type noteRepoMock struct {
	CreateFunc  func(ctx context.Context, note *domain.Note) (*domain.Note, error)
	GetByIDFunc func(ctx context.Context, deviceID string, id uuid.UUID) (*domain.Note, error)
	ListFunc    func(ctx context.Context, deviceID string, reference *string, limit, offset int) ([]*domain.Note, int, error)
	CountFunc   func(ctx context.Context, deviceID string) (int, error)
	UpdateFunc  func(ctx context.Context, deviceID string, id uuid.UUID, reference *string, content string) (*domain.Note, error)
	DeleteFunc  func(ctx context.Context, deviceID string, id uuid.UUID) error

	mu    sync.RWMutex
	calls struct {
		Create  []*domain.Note
		GetByID []uuid.UUID
		List    []string
		Count   []string
		Update  []uuid.UUID
		Delete  []uuid.UUID
	}
}

func (m *noteRepoMock) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	if m.CreateFunc == nil {
		panic("noteRepoMock.CreateFunc is nil")
	}
	m.mu.Lock()
	m.calls.Create = append(m.calls.Create, note)
	m.mu.Unlock()
	return m.CreateFunc(ctx, note)
}

func (m *noteRepoMock) GetByID(ctx context.Context, deviceID string, id uuid.UUID) (*domain.Note, error) {
	if m.GetByIDFunc == nil {
		panic("noteRepoMock.GetByIDFunc is nil")
	}
	m.mu.Lock()
	m.calls.GetByID = append(m.calls.GetByID, id)
	m.mu.Unlock()
	return m.GetByIDFunc(ctx, deviceID, id)
}

func (m *noteRepoMock) List(ctx context.Context, deviceID string, reference *string, limit, offset int) ([]*domain.Note, int, error) {
	if m.ListFunc == nil {
		panic("noteRepoMock.ListFunc is nil")
	}
	m.mu.Lock()
	m.calls.List = append(m.calls.List, deviceID)
	m.mu.Unlock()
	return m.ListFunc(ctx, deviceID, reference, limit, offset)
}

func (m *noteRepoMock) Count(ctx context.Context, deviceID string) (int, error) {
	if m.CountFunc == nil {
		panic("noteRepoMock.CountFunc is nil")
	}
	m.mu.Lock()
	m.calls.Count = append(m.calls.Count, deviceID)
	m.mu.Unlock()
	return m.CountFunc(ctx, deviceID)
}

func (m *noteRepoMock) Update(ctx context.Context, deviceID string, id uuid.UUID, reference *string, content string) (*domain.Note, error) {
	if m.UpdateFunc == nil {
		panic("noteRepoMock.UpdateFunc is nil")
	}
	m.mu.Lock()
	m.calls.Update = append(m.calls.Update, id)
	m.mu.Unlock()
	return m.UpdateFunc(ctx, deviceID, id, reference, content)
}

func (m *noteRepoMock) Delete(ctx context.Context, deviceID string, id uuid.UUID) error {
	if m.DeleteFunc == nil {
		panic("noteRepoMock.DeleteFunc is nil")
	}
	m.mu.Lock()
	m.calls.Delete = append(m.calls.Delete, id)
	m.mu.Unlock()
	return m.DeleteFunc(ctx, deviceID, id)
}

func (m *noteRepoMock) CreateCalls() []*domain.Note {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls.Create
}

func (m *noteRepoMock) CountCalls() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls.Count
}

func (m *noteRepoMock) ListCalls() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls.List
}

func (m *noteRepoMock) DeleteCalls() []uuid.UUID {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls.Delete
}
