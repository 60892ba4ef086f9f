// Package trace records lifecycle events of the orchestration pipeline:
// start, first token, completion, and failure, with durations. Events go
// to structured logs and, when wired, to Prometheus.
package trace

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/klappy/unfoldingtheword/internal/domain"
	"github.com/klappy/unfoldingtheword/internal/metrics"
)

// Recorder emits trace events. A nil Recorder is a no-op, so callers
// never have to guard.
type Recorder struct {
	log     *slog.Logger
	metrics *metrics.Metrics
}

// NewRecorder creates a Recorder. metrics may be nil.
func NewRecorder(log *slog.Logger, m *metrics.Metrics) *Recorder {
	return &Recorder{log: log.With("component", "trace"), metrics: m}
}

// Span tracks one entity from start to settlement.
type Span struct {
	rec        *Recorder
	id         uuid.UUID
	entity     string
	intent     string
	start      time.Time
	firstToken bool
}

// Start opens a span for the given entity.
func (r *Recorder) Start(ctx context.Context, entity, intent string) *Span {
	s := &Span{
		rec:    r,
		id:     uuid.New(),
		entity: entity,
		intent: intent,
		start:  time.Now(),
	}
	if r != nil {
		r.emit(ctx, s, domain.PhaseStart, 0, "")
	}
	return s
}

// SetIntent sets the intent label used on completion metrics. Safe on a
// nil or unstarted span.
func (s *Span) SetIntent(intent string) {
	if s == nil {
		return
	}
	s.intent = intent
}

// FirstToken marks the first streamed token. Subsequent calls are no-ops.
func (s *Span) FirstToken(ctx context.Context) {
	if s == nil || s.rec == nil || s.firstToken {
		return
	}
	s.firstToken = true
	elapsed := time.Since(s.start)
	s.rec.emit(ctx, s, domain.PhaseFirstToken, elapsed, "")
	if s.rec.metrics != nil {
		s.rec.metrics.FirstTokenLatency.Observe(elapsed.Seconds())
	}
}

// Complete settles the span successfully.
func (s *Span) Complete(ctx context.Context) {
	if s == nil || s.rec == nil {
		return
	}
	elapsed := time.Since(s.start)
	s.rec.emit(ctx, s, domain.PhaseComplete, elapsed, "")
	if s.rec.metrics != nil {
		s.rec.metrics.OrchestrationDuration.WithLabelValues(s.intent).Observe(elapsed.Seconds())
	}
}

// Error settles the span with a failure.
func (s *Span) Error(ctx context.Context, err error) {
	if s == nil || s.rec == nil {
		return
	}
	s.rec.emit(ctx, s, domain.PhaseError, time.Since(s.start), err.Error())
}

func (r *Recorder) emit(ctx context.Context, s *Span, phase domain.TracePhase, duration time.Duration, message string) {
	event := domain.TraceEvent{
		ID:        s.id.String(),
		Timestamp: time.Now().UTC(),
		Entity:    s.entity,
		Phase:     phase,
		Duration:  duration,
		Message:   message,
	}

	attrs := []slog.Attr{
		slog.String("trace_id", event.ID),
		slog.String("entity", event.Entity),
		slog.String("phase", string(event.Phase)),
	}
	if event.Duration > 0 {
		attrs = append(attrs, slog.Duration("duration", event.Duration))
	}
	if event.Message != "" {
		attrs = append(attrs, slog.String("message", event.Message))
	}

	level := slog.LevelDebug
	if phase == domain.PhaseError {
		level = slog.LevelWarn
	}
	r.log.LogAttrs(ctx, level, "trace."+string(phase), attrs...)
}
