package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/klappy/unfoldingtheword/internal/adapter/provider/claude"
	"github.com/klappy/unfoldingtheword/internal/domain"
	"github.com/klappy/unfoldingtheword/internal/markdown"
	"github.com/klappy/unfoldingtheword/internal/service/orchestrator"
	"github.com/klappy/unfoldingtheword/internal/service/replay"
	"github.com/klappy/unfoldingtheword/internal/trace"
)

// orchestratorService defines the minimal interface needed by ChatHandler.
type orchestratorService interface {
	Orchestrate(ctx context.Context, input orchestrator.OrchestrateInput, sink orchestrator.Sink) (*orchestrator.Result, error)
}

// ChatHandler serves the conversational endpoint.
type ChatHandler struct {
	svc    orchestratorService
	tracer *trace.Recorder
	log    *slog.Logger
}

// NewChatHandler creates a ChatHandler. tracer may be nil.
func NewChatHandler(svc orchestratorService, tracer *trace.Recorder, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{svc: svc, tracer: tracer, log: logger.With("handler", "chat")}
}

type historyTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Message             string        `json:"message"`
	ConversationID      string        `json:"conversationId,omitempty"`
	ConversationHistory []historyTurn `json:"conversationHistory,omitempty"`
	ScriptureContext    string        `json:"scriptureContext,omitempty"`
	ResponseLanguage    string        `json:"responseLanguage,omitempty"`
	Stream              *bool         `json:"stream,omitempty"`
	IsVoiceRequest      bool          `json:"isVoiceRequest,omitempty"`
	UserPrefs           prefsRequest  `json:"userPrefs"`
}

type prefsRequest struct {
	Language     string `json:"language,omitempty"`
	Organization string `json:"organization,omitempty"`
	Resource     string `json:"resource,omitempty"`
}

type chatResponse struct {
	orchestrator.Metadata
	Response  string `json:"response"`
	VoiceText string `json:"voiceText,omitempty"`
}

// Chat handles POST /api/chat.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input, err := toOrchestrateInput(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	stream := req.Stream == nil || *req.Stream
	if !stream {
		h.respondJSON(w, r, input, req.IsVoiceRequest)
		return
	}

	span := h.tracer.Start(r.Context(), "chat", "")
	sink := &chatSink{w: w, span: span, ctx: r.Context()}
	result, err := h.svc.Orchestrate(r.Context(), input, sink)
	if err != nil {
		span.Error(r.Context(), err)
		if sink.sse == nil {
			// Nothing streamed yet, a plain HTTP error is still possible.
			writeDomainError(h.log, w, r, err)
			return
		}
		h.log.ErrorContext(r.Context(), "chat stream failed", slog.String("error", err.Error()))
		sink.sse.Event("error", map[string]string{"error": "stream failed"}) //nolint:errcheck
		return
	}
	span.Complete(r.Context())

	if req.IsVoiceRequest {
		if err := sink.sse.Event("voice_response", map[string]string{"text": markdown.Strip(result.Summary)}); err != nil {
			h.log.WarnContext(r.Context(), "voice frame failed", slog.String("error", err.Error()))
			return
		}
	}
	sink.sse.Done() //nolint:errcheck
}

func (h *ChatHandler) respondJSON(w http.ResponseWriter, r *http.Request, input orchestrator.OrchestrateInput, voice bool) {
	result, err := h.svc.Orchestrate(r.Context(), input, nil)
	if err != nil {
		writeDomainError(h.log, w, r, err)
		return
	}

	resp := chatResponse{Metadata: result.Metadata, Response: result.Summary}
	if voice {
		resp.VoiceText = markdown.Strip(result.Summary)
	}
	writeJSON(w, http.StatusOK, resp)
}

func toOrchestrateInput(req chatRequest) (orchestrator.OrchestrateInput, error) {
	input := orchestrator.OrchestrateInput{
		Message:          req.Message,
		ScriptureContext: req.ScriptureContext,
		ResponseLanguage: req.ResponseLanguage,
		Voice:            req.IsVoiceRequest,
		Prefs: replay.Prefs{
			Language:     req.UserPrefs.Language,
			Organization: req.UserPrefs.Organization,
			Resource:     req.UserPrefs.Resource,
		},
	}

	if req.ConversationID != "" {
		id, err := uuid.Parse(req.ConversationID)
		if err != nil {
			return input, domain.NewValidationError("conversationId", "must be a UUID")
		}
		input.ConversationID = &id
	}

	for _, turn := range req.ConversationHistory {
		role := domain.RoleUser
		if turn.Role == string(domain.RoleAssistant) {
			role = domain.RoleAssistant
		}
		input.ClientHistory = append(input.ClientHistory, claude.Turn{Role: role, Content: turn.Content})
	}

	return input, nil
}

// chatSink adapts the SSE writer to the orchestrator's sink. The SSE
// response starts lazily on the first metadata frame so earlier
// failures can still use plain HTTP statuses.
type chatSink struct {
	w    http.ResponseWriter
	sse  *sseWriter
	span *trace.Span
	ctx  context.Context
}

func (s *chatSink) Metadata(meta orchestrator.Metadata) error {
	sse, err := newSSEWriter(s.w)
	if err != nil {
		return err
	}
	s.sse = sse
	s.span.SetIntent(string(meta.Intent))
	return s.sse.Event("metadata", meta)
}

func (s *chatSink) Delta(text string) error {
	s.span.FirstToken(s.ctx)
	return s.sse.Event("content", map[string]string{"content": text})
}
