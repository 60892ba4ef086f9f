package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/klappy/unfoldingtheword/internal/domain"
	"github.com/klappy/unfoldingtheword/internal/markdown"
	"github.com/klappy/unfoldingtheword/internal/service/replay"
)

// VoiceHandler executes a single tool call relayed from the realtime
// speech channel's function-call event.
type VoiceHandler struct {
	executor toolExecutor
	log      *slog.Logger
}

// NewVoiceHandler creates a VoiceHandler.
func NewVoiceHandler(executor toolExecutor, logger *slog.Logger) *VoiceHandler {
	return &VoiceHandler{executor: executor, log: logger.With("handler", "voice")}
}

type voiceToolRequest struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
	UserPrefs prefsRequest    `json:"userPrefs"`
}

type voiceToolResponse struct {
	*replay.State
	// SpokenText is a markdown-free rendering for speech synthesis.
	SpokenText string `json:"spokenText,omitempty"`
}

// Tool handles POST /api/voice/tool.
func (h *VoiceHandler) Tool(w http.ResponseWriter, r *http.Request) {
	var req voiceToolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if !domain.KnownTool(req.Name) {
		writeError(w, http.StatusBadRequest, "unknown tool: "+req.Name)
		return
	}

	args := map[string]any{}
	if len(req.Arguments) > 0 {
		if err := json.Unmarshal(req.Arguments, &args); err != nil {
			writeError(w, http.StatusBadRequest, "arguments must be a JSON object")
			return
		}
	}

	call := domain.ToolCall{Tool: req.Name, Args: args}
	state, err := h.executor.Execute(r.Context(), []domain.ToolCall{call}, replay.Prefs{
		Language:     req.UserPrefs.Language,
		Organization: req.UserPrefs.Organization,
		Resource:     req.UserPrefs.Resource,
	})
	if err != nil {
		writeDomainError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, voiceToolResponse{
		State:      state,
		SpokenText: spokenText(state),
	})
}

// spokenText flattens the tool result into speakable plain text.
func spokenText(state *replay.State) string {
	if state == nil {
		return ""
	}
	if state.Scripture != nil && state.Scripture.Text != "" {
		return markdown.Strip(state.Scripture.Text)
	}
	if len(state.Resources) > 0 {
		return markdown.Strip(state.Resources[0].Content)
	}
	return ""
}
