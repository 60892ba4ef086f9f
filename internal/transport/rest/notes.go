package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/klappy/unfoldingtheword/internal/domain"
	notesvc "github.com/klappy/unfoldingtheword/internal/service/note"
)

// noteService defines the minimal interface needed by NotesHandler.
type noteService interface {
	CreateNote(ctx context.Context, input notesvc.CreateNoteInput) (*domain.Note, error)
	GetNote(ctx context.Context, noteID uuid.UUID) (*domain.Note, error)
	ListNotes(ctx context.Context, input notesvc.ListNotesInput) ([]*domain.Note, int, error)
	UpdateNote(ctx context.Context, input notesvc.UpdateNoteInput) (*domain.Note, error)
	DeleteNote(ctx context.Context, input notesvc.DeleteNoteInput) error
}

// NotesHandler serves study note CRUD endpoints.
type NotesHandler struct {
	svc noteService
	log *slog.Logger
}

// NewNotesHandler creates a NotesHandler.
func NewNotesHandler(svc noteService, logger *slog.Logger) *NotesHandler {
	return &NotesHandler{svc: svc, log: logger.With("handler", "notes")}
}

type noteRequest struct {
	Reference *string `json:"reference,omitempty"`
	Content   string  `json:"content"`
}

type noteResponse struct {
	ID        string    `json:"id"`
	Reference string    `json:"reference,omitempty"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Create handles POST /api/notes.
func (h *NotesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	note, err := h.svc.CreateNote(r.Context(), notesvc.CreateNoteInput{
		Reference: req.Reference,
		Content:   req.Content,
	})
	if err != nil {
		writeDomainError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toNoteResponse(note))
}

// List handles GET /api/notes.
func (h *NotesHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := paginationParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var reference *string
	if ref := r.URL.Query().Get("reference"); ref != "" {
		reference = &ref
	}

	notes, total, err := h.svc.ListNotes(r.Context(), notesvc.ListNotesInput{
		Reference: reference,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		writeDomainError(h.log, w, r, err)
		return
	}

	items := make([]noteResponse, 0, len(notes))
	for _, note := range notes {
		items = append(items, toNoteResponse(note))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"notes":      items,
		"totalCount": total,
	})
}

// Get handles GET /api/notes/{id}.
func (h *NotesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid note id")
		return
	}

	note, err := h.svc.GetNote(r.Context(), id)
	if err != nil {
		writeDomainError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toNoteResponse(note))
}

// Update handles PUT /api/notes/{id}.
func (h *NotesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid note id")
		return
	}

	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	note, err := h.svc.UpdateNote(r.Context(), notesvc.UpdateNoteInput{
		NoteID:    id,
		Reference: req.Reference,
		Content:   req.Content,
	})
	if err != nil {
		writeDomainError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toNoteResponse(note))
}

// Delete handles DELETE /api/notes/{id}.
func (h *NotesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid note id")
		return
	}

	if err := h.svc.DeleteNote(r.Context(), notesvc.DeleteNoteInput{NoteID: id}); err != nil {
		writeDomainError(h.log, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toNoteResponse(note *domain.Note) noteResponse {
	resp := noteResponse{
		ID:        note.ID.String(),
		Content:   note.Content,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
	if note.Reference != nil {
		resp.Reference = *note.Reference
	}
	return resp
}
