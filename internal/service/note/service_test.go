package note

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/klappy/unfoldingtheword/internal/domain"
	"github.com/klappy/unfoldingtheword/pkg/ctxutil"
)

func newTestService(t *testing.T, mock *noteRepoMock) *Service {
	t.Helper()
	return &Service{
		notes:    mock,
		maxNotes: DefaultMaxNotes,
		log:      slog.Default(),
	}
}

func deviceCtx() context.Context {
	return ctxutil.WithDeviceID(context.Background(), "device-1")
}

func TestCreateNote_Success(t *testing.T) {
	t.Parallel()

	ref := "John 3:16"
	mock := &noteRepoMock{
		CountFunc: func(ctx context.Context, deviceID string) (int, error) {
			return 3, nil
		},
		CreateFunc: func(ctx context.Context, n *domain.Note) (*domain.Note, error) {
			return n, nil
		},
	}

	svc := newTestService(t, mock)

	created, err := svc.CreateNote(deviceCtx(), CreateNoteInput{
		Reference: &ref,
		Content:   "  God's love for the world  ",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created.Content != "God's love for the world" {
		t.Errorf("content: got %q", created.Content)
	}
	if created.Reference == nil || *created.Reference != ref {
		t.Errorf("reference: got %v, want %q", created.Reference, ref)
	}
	if created.DeviceID != "device-1" {
		t.Errorf("device id: got %q", created.DeviceID)
	}
	if len(mock.CountCalls()) != 1 {
		t.Errorf("Count calls: got %d, want 1", len(mock.CountCalls()))
	}
}

func TestCreateNote_NoDeviceID(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &noteRepoMock{})

	_, err := svc.CreateNote(context.Background(), CreateNoteInput{Content: "x"})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("got %v, want ErrUnauthorized", err)
	}
}

func TestCreateNote_EmptyContent(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &noteRepoMock{})

	_, err := svc.CreateNote(deviceCtx(), CreateNoteInput{Content: "   "})

	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("got %v, want ValidationError", err)
	}
	if vErr.Errors[0].Field != "content" {
		t.Errorf("field: got %q, want content", vErr.Errors[0].Field)
	}
}

func TestCreateNote_LimitReached(t *testing.T) {
	t.Parallel()

	mock := &noteRepoMock{
		CountFunc: func(ctx context.Context, deviceID string) (int, error) {
			return DefaultMaxNotes, nil
		},
	}
	svc := newTestService(t, mock)

	_, err := svc.CreateNote(deviceCtx(), CreateNoteInput{Content: "one more"})

	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("got %v, want ValidationError", err)
	}
	if len(mock.CreateCalls()) != 0 {
		t.Errorf("Create should not be called, got %d calls", len(mock.CreateCalls()))
	}
}

func TestCreateNote_BlankReferenceDropped(t *testing.T) {
	t.Parallel()

	blank := "   "
	mock := &noteRepoMock{
		CountFunc: func(ctx context.Context, deviceID string) (int, error) { return 0, nil },
		CreateFunc: func(ctx context.Context, n *domain.Note) (*domain.Note, error) {
			if n.Reference != nil {
				t.Errorf("reference should be nil, got %q", *n.Reference)
			}
			return n, nil
		},
	}
	svc := newTestService(t, mock)

	if _, err := svc.CreateNote(deviceCtx(), CreateNoteInput{Reference: &blank, Content: "note"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestListNotes_DefaultLimit(t *testing.T) {
	t.Parallel()

	mock := &noteRepoMock{
		ListFunc: func(ctx context.Context, deviceID string, reference *string, limit, offset int) ([]*domain.Note, int, error) {
			if limit != DefaultLimit {
				t.Errorf("limit: got %d, want %d", limit, DefaultLimit)
			}
			if reference != nil {
				t.Errorf("reference should be nil, got %q", *reference)
			}
			return []*domain.Note{{ID: uuid.New(), DeviceID: deviceID, Content: "a", CreatedAt: time.Now()}}, 1, nil
		},
	}
	svc := newTestService(t, mock)

	notes, total, err := svc.ListNotes(deviceCtx(), ListNotesInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notes) != 1 || total != 1 {
		t.Errorf("got %d notes, total %d", len(notes), total)
	}
}

func TestListNotes_ReferenceFilter(t *testing.T) {
	t.Parallel()

	ref := "Romans 8:28"
	mock := &noteRepoMock{
		ListFunc: func(ctx context.Context, deviceID string, reference *string, limit, offset int) ([]*domain.Note, int, error) {
			if reference == nil || *reference != ref {
				t.Errorf("reference: got %v, want %q", reference, ref)
			}
			return nil, 0, nil
		},
	}
	svc := newTestService(t, mock)

	if _, _, err := svc.ListNotes(deviceCtx(), ListNotesInput{Reference: &ref}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestListNotes_InvalidLimit(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &noteRepoMock{})

	_, _, err := svc.ListNotes(deviceCtx(), ListNotesInput{Limit: 500})

	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("got %v, want ValidationError", err)
	}
}

func TestUpdateNote_TrimsContent(t *testing.T) {
	t.Parallel()

	noteID := uuid.New()
	mock := &noteRepoMock{
		UpdateFunc: func(ctx context.Context, deviceID string, id uuid.UUID, reference *string, content string) (*domain.Note, error) {
			if content != "trimmed" {
				t.Errorf("content: got %q, want %q", content, "trimmed")
			}
			return &domain.Note{ID: id, DeviceID: deviceID, Content: content}, nil
		},
	}
	svc := newTestService(t, mock)

	updated, err := svc.UpdateNote(deviceCtx(), UpdateNoteInput{NoteID: noteID, Content: "  trimmed  "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.ID != noteID {
		t.Errorf("id: got %v, want %v", updated.ID, noteID)
	}
}

func TestUpdateNote_NotFound(t *testing.T) {
	t.Parallel()

	mock := &noteRepoMock{
		UpdateFunc: func(ctx context.Context, deviceID string, id uuid.UUID, reference *string, content string) (*domain.Note, error) {
			return nil, domain.ErrNotFound
		},
	}
	svc := newTestService(t, mock)

	_, err := svc.UpdateNote(deviceCtx(), UpdateNoteInput{NoteID: uuid.New(), Content: "x"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestUpdateNote_ContentTooLong(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &noteRepoMock{})

	_, err := svc.UpdateNote(deviceCtx(), UpdateNoteInput{
		NoteID:  uuid.New(),
		Content: strings.Repeat("a", 10001),
	})

	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("got %v, want ValidationError", err)
	}
}

func TestDeleteNote_Success(t *testing.T) {
	t.Parallel()

	noteID := uuid.New()
	mock := &noteRepoMock{
		DeleteFunc: func(ctx context.Context, deviceID string, id uuid.UUID) error {
			return nil
		},
	}
	svc := newTestService(t, mock)

	if err := svc.DeleteNote(deviceCtx(), DeleteNoteInput{NoteID: noteID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mock.DeleteCalls()) != 1 || mock.DeleteCalls()[0] != noteID {
		t.Errorf("Delete calls: got %v", mock.DeleteCalls())
	}
}

func TestDeleteNote_NilID(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &noteRepoMock{})

	err := svc.DeleteNote(deviceCtx(), DeleteNoteInput{})

	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("got %v, want ValidationError", err)
	}
}
