// Package intent decides what a chat message is asking for before any
// expensive model call happens. Bare scripture references short-circuit
// to a direct fetch; everything else goes through one cheap
// single-token classification.
package intent

import (
	"context"
	"log/slog"
	"strings"

	"github.com/klappy/unfoldingtheword/internal/domain"
)

const systemPrompt = `You classify a Bible study message into exactly one category.
Reply with a single lowercase word and nothing else:
read - the user wants to read or see a scripture passage
locate - the user wants to find where something occurs in scripture
understand - the user wants an explanation, meaning, or background
note - the user wants to save, list, change, or delete a personal note`

type classifier interface {
	Classify(ctx context.Context, system, message string) (string, error)
}

// Result is the classification outcome. Reference is non-nil when the
// message contains a recognizable scripture reference; Direct marks a
// message that IS a bare reference and needs no model round at all.
type Result struct {
	Intent    domain.Intent
	Reference *domain.Reference
	Direct    bool
}

// Service classifies chat messages.
type Service struct {
	llm classifier
	log *slog.Logger
}

// NewService creates a new intent service.
func NewService(log *slog.Logger, llm classifier) *Service {
	return &Service{
		llm: llm,
		log: log.With("service", "intent"),
	}
}

// Classify determines the intent of a message. A message that is
// nothing but a scripture reference never reaches the model. A model
// failure or an answer outside the known labels falls back to the read
// intent; classification is routing, not correctness, so it degrades
// instead of erroring.
func (s *Service) Classify(ctx context.Context, message string) Result {
	if ref, ok := domain.ParseReference(message); ok {
		return Result{Intent: domain.IntentRead, Reference: &ref, Direct: true}
	}

	result := Result{Intent: domain.IntentRead}
	if ref, ok := findEmbeddedReference(message); ok {
		result.Reference = &ref
	}

	answer, err := s.llm.Classify(ctx, systemPrompt, message)
	if err != nil {
		s.log.WarnContext(ctx, "classification failed, defaulting to read",
			slog.String("error", err.Error()))
		return result
	}

	intent := domain.ParseIntent(answer)
	if intent == domain.IntentRead && answer != string(domain.IntentRead) {
		s.log.WarnContext(ctx, "unknown intent label, defaulting to read",
			slog.String("label", answer))
	}

	result.Intent = intent
	return result
}

// findEmbeddedReference scans the message for a scripture reference
// appearing inside a longer sentence, like "what does John 3:16 mean".
func findEmbeddedReference(message string) (domain.Reference, bool) {
	words := strings.Fields(message)
	// A reference is at most three tokens ("1 Corinthians 13:4-7").
	for size := 3; size >= 1; size-- {
		for start := 0; start+size <= len(words); start++ {
			candidate := strings.Join(words[start:start+size], " ")
			candidate = strings.Trim(candidate, ".,;:!?\"'")
			ref, ok := domain.ParseReference(candidate)
			if !ok || ref.Chapter == 0 {
				// A bare book name inside a sentence is too weak a signal.
				continue
			}
			return ref, true
		}
	}
	return domain.Reference{}, false
}
