package orchestrator

import (
	"github.com/google/uuid"
	"github.com/klappy/unfoldingtheword/internal/domain"
)

// Metadata is the pane payload sent to the client before any answer
// tokens: everything it needs to render scripture, resources, and
// search panels while the text is still streaming.
type Metadata struct {
	ConversationID     uuid.UUID                `json:"conversationId"`
	Intent             domain.Intent            `json:"intent"`
	NavigationHint     domain.NavigationHint    `json:"navigationHint"`
	ToolCalls          []domain.ToolCall        `json:"toolCalls"`
	Scripture          *domain.ScripturePassage `json:"scripture,omitempty"`
	ScriptureReference string                   `json:"scriptureReference,omitempty"`
	Resources          []domain.Resource        `json:"resources"`
	SearchQuery        string                   `json:"searchQuery,omitempty"`
	SearchMatches      []domain.ScriptureMatch  `json:"searchMatches,omitempty"`
	SearchResults      *domain.SearchResults    `json:"searchResults,omitempty"`
	Language           string                   `json:"language"`
	Organization       string                   `json:"organization"`
}

// Result is the settled outcome of one chat turn.
type Result struct {
	Metadata Metadata
	// Summary is the full assistant answer, accumulated across deltas.
	Summary string
}

// Sink receives the turn's output in order: exactly one Metadata call,
// then zero or more Delta calls. A Sink error aborts streaming.
type Sink interface {
	Metadata(meta Metadata) error
	Delta(text string) error
}

type nopSink struct{}

func (nopSink) Metadata(Metadata) error { return nil }
func (nopSink) Delta(string) error      { return nil }
