package domain

import "time"

// TracePhase is a lifecycle transition of a traced entity.
type TracePhase string

const (
	PhaseStart      TracePhase = "start"
	PhaseFirstToken TracePhase = "first-token"
	PhaseComplete   TracePhase = "complete"
	PhaseError      TracePhase = "error"
)

// TraceEvent is an observability record of one phase transition for a
// named pipeline entity (orchestrator, upstream fetch, llm, replay).
// It instruments latency; it carries no business meaning.
type TraceEvent struct {
	ID        string
	Timestamp time.Time
	Entity    string
	Phase     TracePhase
	Duration  time.Duration
	Message   string
	Level     string
	Metadata  map[string]string
}
