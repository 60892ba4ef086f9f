package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/klappy/unfoldingtheword/internal/domain"
	conversationsvc "github.com/klappy/unfoldingtheword/internal/service/conversation"
	"github.com/klappy/unfoldingtheword/internal/service/replay"
)

// conversationService defines the minimal interface needed by
// ConversationsHandler.
type conversationService interface {
	Create(ctx context.Context, input conversationsvc.CreateConversationInput) (*domain.Conversation, error)
	Get(ctx context.Context, conversationID uuid.UUID) (*conversationsvc.ConversationWithMessages, error)
	List(ctx context.Context, input conversationsvc.ListConversationsInput) ([]*domain.Conversation, int, error)
	Delete(ctx context.Context, input conversationsvc.DeleteConversationInput) error
	Replay(ctx context.Context, conversationID uuid.UUID, prefs replay.Prefs) (*conversationsvc.ReplayResult, error)
}

// ConversationsHandler serves conversation CRUD endpoints.
type ConversationsHandler struct {
	svc conversationService
	log *slog.Logger
}

// NewConversationsHandler creates a ConversationsHandler.
func NewConversationsHandler(svc conversationService, logger *slog.Logger) *ConversationsHandler {
	return &ConversationsHandler{svc: svc, log: logger.With("handler", "conversations")}
}

type conversationResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type messageResponse struct {
	ID             string            `json:"id"`
	Role           string            `json:"role"`
	Content        string            `json:"content"`
	NavigationHint string            `json:"navigationHint,omitempty"`
	ToolCalls      []domain.ToolCall `json:"toolCalls"`
	CreatedAt      time.Time         `json:"createdAt"`
}

type createConversationRequest struct {
	Title string `json:"title,omitempty"`
}

// Create handles POST /api/conversations.
func (h *ConversationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createConversationRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	conv, err := h.svc.Create(r.Context(), conversationsvc.CreateConversationInput{Title: req.Title})
	if err != nil {
		writeDomainError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toConversationResponse(conv))
}

// List handles GET /api/conversations.
func (h *ConversationsHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := paginationParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	conversations, total, err := h.svc.List(r.Context(), conversationsvc.ListConversationsInput{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeDomainError(h.log, w, r, err)
		return
	}

	items := make([]conversationResponse, 0, len(conversations))
	for _, conv := range conversations {
		items = append(items, toConversationResponse(conv))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"conversations": items,
		"totalCount":    total,
	})
}

// Get handles GET /api/conversations/{id}.
func (h *ConversationsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid conversation id")
		return
	}

	result, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeDomainError(h.log, w, r, err)
		return
	}

	messages := make([]messageResponse, 0, len(result.Messages))
	for _, msg := range result.Messages {
		toolCalls := msg.ToolCalls
		if toolCalls == nil {
			toolCalls = []domain.ToolCall{}
		}
		messages = append(messages, messageResponse{
			ID:             msg.ID.String(),
			Role:           string(msg.Role),
			Content:        msg.Content,
			NavigationHint: string(msg.NavigationHint),
			ToolCalls:      toolCalls,
			CreatedAt:      msg.CreatedAt,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"conversation": toConversationResponse(result.Conversation),
		"messages":     messages,
	})
}

// Replay handles GET /api/conversations/{id}/replay. It re-executes
// the latest assistant turn's tool-call signatures and returns the
// reconstructed pane state.
func (h *ConversationsHandler) Replay(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid conversation id")
		return
	}

	q := r.URL.Query()
	prefs := replay.Prefs{
		Language:     q.Get("language"),
		Organization: q.Get("organization"),
		Resource:     q.Get("resource"),
	}

	result, err := h.svc.Replay(r.Context(), id, prefs)
	if err != nil {
		writeDomainError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		*replay.State
		ToolCalls []domain.ToolCall `json:"toolCalls"`
	}{result.State, result.ToolCalls})
}

// Delete handles DELETE /api/conversations/{id}.
func (h *ConversationsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid conversation id")
		return
	}

	if err := h.svc.Delete(r.Context(), conversationsvc.DeleteConversationInput{ConversationID: id}); err != nil {
		writeDomainError(h.log, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toConversationResponse(conv *domain.Conversation) conversationResponse {
	return conversationResponse{
		ID:        conv.ID.String(),
		Title:     conv.Title,
		CreatedAt: conv.CreatedAt,
		UpdatedAt: conv.UpdatedAt,
	}
}

func paginationParams(r *http.Request) (limit, offset int, err error) {
	q := r.URL.Query()
	if v := q.Get("limit"); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil {
			return 0, 0, domain.NewValidationError("limit", "must be an integer")
		}
	}
	if v := q.Get("offset"); v != "" {
		offset, err = strconv.Atoi(v)
		if err != nil {
			return 0, 0, domain.NewValidationError("offset", "must be an integer")
		}
	}
	return limit, offset, nil
}
