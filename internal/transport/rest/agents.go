package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/klappy/unfoldingtheword/internal/domain"
	"github.com/klappy/unfoldingtheword/internal/service/replay"
)

// toolExecutor defines the minimal interface needed by the sub-agent
// and voice handlers.
type toolExecutor interface {
	Execute(ctx context.Context, calls []domain.ToolCall, prefs replay.Prefs) (*replay.State, error)
}

// AgentsHandler serves the direct sub-agent endpoints. Each executes a
// single tool through the same path the orchestrator uses and returns
// the payload without streaming.
type AgentsHandler struct {
	executor toolExecutor
	log      *slog.Logger
}

// NewAgentsHandler creates an AgentsHandler.
func NewAgentsHandler(executor toolExecutor, logger *slog.Logger) *AgentsHandler {
	return &AgentsHandler{executor: executor, log: logger.With("handler", "agents")}
}

type agentRequest struct {
	Reference string       `json:"reference,omitempty"`
	Term      string       `json:"term,omitempty"`
	Filter    string       `json:"filter,omitempty"`
	Query     string       `json:"query,omitempty"`
	Scope     string       `json:"scope,omitempty"`
	ScopeType string       `json:"scopeType,omitempty"`
	Type      string       `json:"type,omitempty"`
	UserPrefs prefsRequest `json:"userPrefs"`
}

func (req agentRequest) prefs() replay.Prefs {
	return replay.Prefs{
		Language:     req.UserPrefs.Language,
		Organization: req.UserPrefs.Organization,
		Resource:     req.UserPrefs.Resource,
	}
}

// Scripture handles POST /api/agents/scripture.
func (h *AgentsHandler) Scripture(w http.ResponseWriter, r *http.Request) {
	var req agentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Reference == "" {
		writeError(w, http.StatusBadRequest, "reference is required")
		return
	}

	args := map[string]any{"reference": req.Reference}
	if req.Filter != "" {
		args["filter"] = req.Filter
	}
	h.execute(w, r, domain.ToolCall{Tool: domain.ToolGetScripture, Args: args}, req.prefs())
}

// Resource handles POST /api/agents/resource. The type field selects
// the tool: notes (default), questions, word, or academy.
func (h *AgentsHandler) Resource(w http.ResponseWriter, r *http.Request) {
	var req agentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var tool string
	switch req.Type {
	case "", "notes":
		tool = domain.ToolGetNotes
	case "questions":
		tool = domain.ToolGetQuestions
	case "word":
		tool = domain.ToolGetWord
	case "academy":
		tool = domain.ToolGetAcademy
	default:
		writeError(w, http.StatusBadRequest, "type must be notes, questions, word, or academy")
		return
	}

	switch tool {
	case domain.ToolGetWord:
		// A bare reference resolves the passage's word links instead.
		if req.Term == "" && req.Reference == "" {
			writeError(w, http.StatusBadRequest, "term or reference is required for word lookups")
			return
		}
	case domain.ToolGetAcademy:
		if req.Term == "" {
			writeError(w, http.StatusBadRequest, "term is required for academy lookups")
			return
		}
	default:
		if req.Reference == "" {
			writeError(w, http.StatusBadRequest, "reference is required")
			return
		}
	}

	args := map[string]any{}
	if req.Reference != "" {
		args["reference"] = req.Reference
	}
	if req.Term != "" {
		args["term"] = req.Term
	}
	if req.Filter != "" {
		args["filter"] = req.Filter
	}
	h.execute(w, r, domain.ToolCall{Tool: tool, Args: args}, req.prefs())
}

// Search handles POST /api/agents/search.
func (h *AgentsHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req agentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	args := map[string]any{"query": req.Query}
	if req.Scope != "" {
		args["scope"] = req.Scope
	}
	if req.ScopeType != "" {
		args["scopeType"] = req.ScopeType
	}
	h.execute(w, r, domain.ToolCall{Tool: domain.ToolSearchAll, Args: args}, req.prefs())
}

// Note handles POST /api/agents/note, listing the device's saved notes.
func (h *AgentsHandler) Note(w http.ResponseWriter, r *http.Request) {
	var req agentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	args := map[string]any{}
	if req.Reference != "" {
		args["reference"] = req.Reference
	}
	h.execute(w, r, domain.ToolCall{Tool: domain.ToolGetUserNotes, Args: args}, req.prefs())
}

func (h *AgentsHandler) execute(w http.ResponseWriter, r *http.Request, call domain.ToolCall, prefs replay.Prefs) {
	state, err := h.executor.Execute(r.Context(), []domain.ToolCall{call}, prefs)
	if err != nil {
		writeDomainError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}
