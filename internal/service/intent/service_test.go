package intent

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/klappy/unfoldingtheword/internal/domain"
)

func newTestService(mock *classifierMock) *Service {
	return &Service{llm: mock, log: slog.Default()}
}

func TestClassify_BareReferenceSkipsModel(t *testing.T) {
	t.Parallel()

	mock := &classifierMock{}
	svc := newTestService(mock)

	got := svc.Classify(context.Background(), "John 3:16")

	if !got.Direct {
		t.Error("expected direct result for bare reference")
	}
	if got.Intent != domain.IntentRead {
		t.Errorf("intent: got %q, want read", got.Intent)
	}
	if got.Reference == nil || got.Reference.Book != "John" || got.Reference.Chapter != 3 || got.Reference.Verse != 16 {
		t.Errorf("reference: got %+v", got.Reference)
	}
	if len(mock.ClassifyCalls()) != 0 {
		t.Errorf("model calls: got %d, want 0", len(mock.ClassifyCalls()))
	}
}

func TestClassify_Labels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		message string
		label   string
		want    domain.Intent
	}{
		{"locate", "where does the Bible talk about forgiveness", "locate", domain.IntentLocate},
		{"understand", "why did Jesus weep", "understand", domain.IntentUnderstand},
		{"note", "save a note about this passage", "note", domain.IntentNote},
		{"read", "show me the passage about the prodigal son", "read", domain.IntentRead},
		{"unknown label defaults to read", "hmm", "banana", domain.IntentRead},
		{"label with trailing noise", "find hope in the psalms", "locate", domain.IntentLocate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			mock := &classifierMock{
				ClassifyFunc: func(ctx context.Context, system, message string) (string, error) {
					return tt.label, nil
				},
			}
			svc := newTestService(mock)

			got := svc.Classify(context.Background(), tt.message)
			if got.Intent != tt.want {
				t.Errorf("intent: got %q, want %q", got.Intent, tt.want)
			}
			if got.Direct {
				t.Error("full sentences must not be direct")
			}
		})
	}
}

func TestClassify_ModelErrorFallsBackToRead(t *testing.T) {
	t.Parallel()

	mock := &classifierMock{
		ClassifyFunc: func(ctx context.Context, system, message string) (string, error) {
			return "", errors.New("api unavailable")
		},
	}
	svc := newTestService(mock)

	got := svc.Classify(context.Background(), "tell me about grace")
	if got.Intent != domain.IntentRead {
		t.Errorf("intent: got %q, want read", got.Intent)
	}
}

func TestClassify_EmbeddedReference(t *testing.T) {
	t.Parallel()

	mock := &classifierMock{
		ClassifyFunc: func(ctx context.Context, system, message string) (string, error) {
			return "understand", nil
		},
	}
	svc := newTestService(mock)

	got := svc.Classify(context.Background(), "what does John 3:16 mean?")
	if got.Intent != domain.IntentUnderstand {
		t.Errorf("intent: got %q, want understand", got.Intent)
	}
	if got.Reference == nil || got.Reference.Book != "John" || got.Reference.Verse != 16 {
		t.Errorf("embedded reference: got %+v", got.Reference)
	}
	if got.Direct {
		t.Error("embedded reference must not be direct")
	}
}

func TestFindEmbeddedReference_NoBareBookNames(t *testing.T) {
	t.Parallel()

	if _, ok := findEmbeddedReference("the gospel of john is my favorite"); ok {
		t.Error("a book name without a chapter must not count as a reference")
	}
}
