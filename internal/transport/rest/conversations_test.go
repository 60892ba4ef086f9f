package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/klappy/unfoldingtheword/internal/domain"
	conversationsvc "github.com/klappy/unfoldingtheword/internal/service/conversation"
	"github.com/klappy/unfoldingtheword/internal/service/replay"
)

type conversationServiceMock struct {
	CreateFunc func(ctx context.Context, input conversationsvc.CreateConversationInput) (*domain.Conversation, error)
	GetFunc    func(ctx context.Context, conversationID uuid.UUID) (*conversationsvc.ConversationWithMessages, error)
	ListFunc   func(ctx context.Context, input conversationsvc.ListConversationsInput) ([]*domain.Conversation, int, error)
	DeleteFunc func(ctx context.Context, input conversationsvc.DeleteConversationInput) error
	ReplayFunc func(ctx context.Context, conversationID uuid.UUID, prefs replay.Prefs) (*conversationsvc.ReplayResult, error)
}

func (m *conversationServiceMock) Create(ctx context.Context, input conversationsvc.CreateConversationInput) (*domain.Conversation, error) {
	return m.CreateFunc(ctx, input)
}

func (m *conversationServiceMock) Get(ctx context.Context, conversationID uuid.UUID) (*conversationsvc.ConversationWithMessages, error) {
	return m.GetFunc(ctx, conversationID)
}

func (m *conversationServiceMock) List(ctx context.Context, input conversationsvc.ListConversationsInput) ([]*domain.Conversation, int, error) {
	return m.ListFunc(ctx, input)
}

func (m *conversationServiceMock) Delete(ctx context.Context, input conversationsvc.DeleteConversationInput) error {
	return m.DeleteFunc(ctx, input)
}

func (m *conversationServiceMock) Replay(ctx context.Context, conversationID uuid.UUID, prefs replay.Prefs) (*conversationsvc.ReplayResult, error) {
	return m.ReplayFunc(ctx, conversationID, prefs)
}

func testConversation() *domain.Conversation {
	return &domain.Conversation{
		ID:        uuid.New(),
		DeviceID:  "device-1",
		Title:     "Romans study",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

func TestConversationsCreate(t *testing.T) {
	t.Parallel()

	svc := &conversationServiceMock{
		CreateFunc: func(_ context.Context, input conversationsvc.CreateConversationInput) (*domain.Conversation, error) {
			if input.Title != "Romans study" {
				t.Errorf("expected title forwarded, got %q", input.Title)
			}
			return testConversation(), nil
		},
	}
	h := NewConversationsHandler(svc, slog.Default())

	rec := postJSON(t, h.Create, "/api/conversations", `{"title":"Romans study"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rec.Code)
	}

	var resp conversationResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Title != "Romans study" {
		t.Errorf("expected title in response, got %q", resp.Title)
	}
}

func TestConversationsList_Pagination(t *testing.T) {
	t.Parallel()

	svc := &conversationServiceMock{
		ListFunc: func(_ context.Context, input conversationsvc.ListConversationsInput) ([]*domain.Conversation, int, error) {
			if input.Limit != 10 || input.Offset != 20 {
				t.Errorf("expected limit=10 offset=20, got %d/%d", input.Limit, input.Offset)
			}
			return []*domain.Conversation{testConversation()}, 42, nil
		},
	}
	h := NewConversationsHandler(svc, slog.Default())

	req := httptest.NewRequest(http.MethodGet, "/api/conversations?limit=10&offset=20", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp struct {
		Conversations []conversationResponse `json:"conversations"`
		TotalCount    int                    `json:"totalCount"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Conversations) != 1 {
		t.Fatalf("expected one conversation, got %d", len(resp.Conversations))
	}
	if resp.TotalCount != 42 {
		t.Errorf("expected totalCount 42, got %d", resp.TotalCount)
	}
}

func TestConversationsList_BadLimit(t *testing.T) {
	t.Parallel()

	h := NewConversationsHandler(&conversationServiceMock{}, slog.Default())

	req := httptest.NewRequest(http.MethodGet, "/api/conversations?limit=abc", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestConversationsGet_IncludesMessages(t *testing.T) {
	t.Parallel()

	conv := testConversation()
	svc := &conversationServiceMock{
		GetFunc: func(_ context.Context, conversationID uuid.UUID) (*conversationsvc.ConversationWithMessages, error) {
			if conversationID != conv.ID {
				t.Errorf("expected lookup by path id, got %s", conversationID)
			}
			return &conversationsvc.ConversationWithMessages{
				Conversation: conv,
				Messages: []*domain.Message{
					{
						ID:             uuid.New(),
						ConversationID: conv.ID,
						Role:           domain.RoleUser,
						Content:        "read Romans 8",
						CreatedAt:      time.Now().UTC(),
					},
					{
						ID:             uuid.New(),
						ConversationID: conv.ID,
						Role:           domain.RoleAssistant,
						Content:        "Romans 8 says...",
						NavigationHint: domain.NavScripture,
						ToolCalls: []domain.ToolCall{
							{Tool: domain.ToolGetScripture, Args: map[string]any{"reference": "Romans 8"}},
						},
						CreatedAt: time.Now().UTC(),
					},
				},
			}, nil
		},
	}
	h := NewConversationsHandler(svc, slog.Default())

	req := httptest.NewRequest(http.MethodGet, "/api/conversations/"+conv.ID.String(), nil)
	req.SetPathValue("id", conv.ID.String())
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp struct {
		Conversation conversationResponse `json:"conversation"`
		Messages     []messageResponse    `json:"messages"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Messages) != 2 {
		t.Fatalf("expected two messages, got %d", len(resp.Messages))
	}
	if resp.Messages[0].ToolCalls == nil {
		t.Error("expected toolCalls to serialize as an empty array, not null")
	}
	if len(resp.Messages[1].ToolCalls) != 1 {
		t.Errorf("expected one recorded signature, got %d", len(resp.Messages[1].ToolCalls))
	}
	if resp.Messages[1].NavigationHint != string(domain.NavScripture) {
		t.Errorf("expected navigation hint, got %q", resp.Messages[1].NavigationHint)
	}
}

func TestConversationsGet_NotFound(t *testing.T) {
	t.Parallel()

	svc := &conversationServiceMock{
		GetFunc: func(context.Context, uuid.UUID) (*conversationsvc.ConversationWithMessages, error) {
			return nil, domain.ErrNotFound
		},
	}
	h := NewConversationsHandler(svc, slog.Default())

	id := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/api/conversations/"+id.String(), nil)
	req.SetPathValue("id", id.String())
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestConversationsDelete(t *testing.T) {
	t.Parallel()

	deleted := false
	svc := &conversationServiceMock{
		DeleteFunc: func(_ context.Context, input conversationsvc.DeleteConversationInput) error {
			deleted = true
			return nil
		},
	}
	h := NewConversationsHandler(svc, slog.Default())

	id := uuid.New()
	req := httptest.NewRequest(http.MethodDelete, "/api/conversations/"+id.String(), nil)
	req.SetPathValue("id", id.String())
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}
	if !deleted {
		t.Error("expected delete to reach the service")
	}
}

func TestConversationsReplay(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	svc := &conversationServiceMock{
		ReplayFunc: func(_ context.Context, conversationID uuid.UUID, prefs replay.Prefs) (*conversationsvc.ReplayResult, error) {
			if conversationID != id {
				t.Errorf("expected replay for path id, got %s", conversationID)
			}
			if prefs.Language != "es" || prefs.Organization != "unfoldingWord" {
				t.Errorf("expected query prefs forwarded, got %+v", prefs)
			}
			return &conversationsvc.ReplayResult{
				State: &replay.State{
					Scripture: &domain.ScripturePassage{Reference: "Romans 8:28", Text: "And we know..."},
					Resources: []domain.Resource{},
				},
				ToolCalls: []domain.ToolCall{
					{Tool: domain.ToolGetScripture, Args: map[string]any{"reference": "Romans 8:28"}},
				},
			}, nil
		},
	}
	h := NewConversationsHandler(svc, slog.Default())

	req := httptest.NewRequest(http.MethodGet, "/api/conversations/"+id.String()+"/replay?language=es&organization=unfoldingWord", nil)
	req.SetPathValue("id", id.String())
	rec := httptest.NewRecorder()
	h.Replay(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp struct {
		Scripture *domain.ScripturePassage `json:"scripture"`
		Resources []domain.Resource        `json:"resources"`
		ToolCalls []domain.ToolCall        `json:"toolCalls"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Scripture == nil || resp.Scripture.Reference != "Romans 8:28" {
		t.Errorf("expected replayed scripture pane, got %+v", resp.Scripture)
	}
	if resp.Resources == nil {
		t.Error("expected resources to serialize as an empty array, not null")
	}
	if len(resp.ToolCalls) != 1 {
		t.Fatalf("expected one replayed signature, got %d", len(resp.ToolCalls))
	}
	if resp.ToolCalls[0].Tool != domain.ToolGetScripture {
		t.Errorf("expected scripture signature, got %q", resp.ToolCalls[0].Tool)
	}
}

func TestConversationsReplay_InvalidID(t *testing.T) {
	t.Parallel()

	h := NewConversationsHandler(&conversationServiceMock{}, slog.Default())

	req := httptest.NewRequest(http.MethodGet, "/api/conversations/nope/replay", nil)
	req.SetPathValue("id", "nope")
	rec := httptest.NewRecorder()
	h.Replay(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestConversationsDelete_InvalidID(t *testing.T) {
	t.Parallel()

	h := NewConversationsHandler(&conversationServiceMock{}, slog.Default())

	req := httptest.NewRequest(http.MethodDelete, "/api/conversations/nope", nil)
	req.SetPathValue("id", "nope")
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}
