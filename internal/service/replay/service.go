// Package replay rebuilds a conversation's content pane from persisted
// tool-call signatures. Only the signatures {tool, args} are stored;
// every result is fetched fresh, concurrently, and merged in signature
// order so the outcome is deterministic regardless of which fetch
// finishes first.
package replay

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/klappy/unfoldingtheword/internal/adapter/provider/translationhelps"
	"github.com/klappy/unfoldingtheword/internal/domain"
	"github.com/klappy/unfoldingtheword/pkg/ctxutil"
)

// maxConcurrentCalls bounds the fan-out of one replay round.
const maxConcurrentCalls = 8

type contentFetcher interface {
	FetchScripture(ctx context.Context, req translationhelps.ScriptureRequest) (*domain.ScripturePassage, []domain.ScriptureMatch, error)
	FetchNotes(ctx context.Context, req translationhelps.ResourceRequest) ([]domain.Resource, error)
	FetchQuestions(ctx context.Context, req translationhelps.ResourceRequest) ([]domain.Resource, error)
	FetchWordLinks(ctx context.Context, req translationhelps.ResourceRequest) ([]domain.Resource, error)
	FetchWord(ctx context.Context, req translationhelps.ResourceRequest) ([]domain.Resource, error)
	FetchAcademy(ctx context.Context, req translationhelps.ResourceRequest) ([]domain.Resource, error)
	Search(ctx context.Context, req translationhelps.SearchRequest) (*domain.SearchResults, error)
}

type noteLister interface {
	List(ctx context.Context, deviceID string, reference *string, limit, offset int) ([]*domain.Note, int, error)
}

// State is the merged outcome of one replay round. Scripture and Search
// follow last-writer-wins by signature order; Resources accumulate in
// signature order.
type State struct {
	Scripture *domain.ScripturePassage `json:"scripture,omitempty"`
	Matches   []domain.ScriptureMatch  `json:"matches,omitempty"`
	Resources []domain.Resource        `json:"resources"`
	Search    *domain.SearchResults    `json:"searchResults,omitempty"`
}

// Prefs carries the per-request content scope.
type Prefs struct {
	Language     string
	Organization string
	Resource     string
}

// roundRecorder receives per-round and per-signature observations.
// Satisfied by *metrics.Metrics; nil disables instrumentation.
type roundRecorder interface {
	ObserveReplayDuration(duration time.Duration)
	RecordReplayCall(tool, status string)
}

// Service replays tool-call signatures against the content providers.
type Service struct {
	content contentFetcher
	notes   noteLister
	log     *slog.Logger
	metrics roundRecorder

	mu       sync.Mutex
	inflight map[string]*replayRound
}

// replayRound identifies one in-flight replay so a superseded round can
// be removed from the inflight map only by itself.
type replayRound struct {
	cancel context.CancelFunc
}

// NewService creates a new replay service.
func NewService(log *slog.Logger, content contentFetcher, notes noteLister, m roundRecorder) *Service {
	return &Service{
		content: content,
		notes:   notes,
		log:     log.With("service", "replay"),
		metrics: m,
	}
}

// Replay executes the given signatures and merges their results.
// Starting a new replay aborts the device's own replay still in
// flight; the client only ever wants the state of the conversation it
// just opened, and other devices' rounds are untouched. Individual
// call failures drop that call's contribution and nothing else.
// Mutating signatures (note writes) are recorded in history but never
// re-executed here.
func (s *Service) Replay(ctx context.Context, calls []domain.ToolCall, prefs Prefs) (*State, error) {
	deviceID, _ := ctxutil.DeviceIDFromCtx(ctx)

	ctx, cancel := context.WithCancel(ctx)
	round := &replayRound{cancel: cancel}

	s.mu.Lock()
	if s.inflight == nil {
		s.inflight = make(map[string]*replayRound)
	}
	if prev := s.inflight[deviceID]; prev != nil {
		prev.cancel()
	}
	s.inflight[deviceID] = round
	s.mu.Unlock()

	defer func() {
		cancel()
		s.mu.Lock()
		if s.inflight[deviceID] == round {
			delete(s.inflight, deviceID)
		}
		s.mu.Unlock()
	}()

	return s.Execute(ctx, calls, prefs)
}

// Execute runs the signatures concurrently and merges per-signature
// results in signature order. Unlike Replay it does not abort prior
// rounds, so the orchestrator can use it for live tool execution.
func (s *Service) Execute(ctx context.Context, calls []domain.ToolCall, prefs Prefs) (*State, error) {
	if s.metrics != nil {
		defer func(start time.Time) {
			s.metrics.ObserveReplayDuration(time.Since(start))
		}(time.Now())
	}

	results := make([]*State, len(calls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentCalls)
	for i, call := range calls {
		g.Go(func() error {
			partial, err := s.executeOne(gctx, call, prefs)
			if err != nil {
				// Context cancellation aborts the whole round; anything
				// else only loses this call's contribution.
				if gctx.Err() != nil {
					return gctx.Err()
				}
				s.recordCall(call.Tool, "error")
				s.log.WarnContext(gctx, "tool call failed during replay",
					slog.String("tool", call.Tool), slog.String("error", err.Error()))
				return nil
			}
			if partial == nil {
				s.recordCall(call.Tool, "skipped")
			} else {
				s.recordCall(call.Tool, "ok")
			}
			results[i] = partial
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := &State{Resources: []domain.Resource{}}
	for _, partial := range results {
		if partial == nil {
			continue
		}
		if partial.Scripture != nil {
			merged.Scripture = partial.Scripture
			merged.Matches = partial.Matches
		}
		if partial.Search != nil {
			merged.Search = partial.Search
		}
		merged.Resources = append(merged.Resources, partial.Resources...)
	}
	return merged, nil
}

func (s *Service) executeOne(ctx context.Context, call domain.ToolCall, prefs Prefs) (*State, error) {
	switch call.Tool {
	case domain.ToolGetScripture:
		reference := call.StringArg("reference")
		filter := call.StringArg("filter")
		passage, matches, err := s.content.FetchScripture(ctx, translationhelps.ScriptureRequest{
			Reference:    reference,
			Language:     prefs.Language,
			Organization: prefs.Organization,
			Resource:     prefs.Resource,
			Filter:       filter,
		})
		if err != nil {
			return nil, err
		}
		return &State{Scripture: passage, Matches: matches}, nil

	case domain.ToolGetNotes:
		return s.fetchResources(ctx, call, prefs, s.content.FetchNotes)

	case domain.ToolGetQuestions:
		return s.fetchResources(ctx, call, prefs, s.content.FetchQuestions)

	case domain.ToolGetWord:
		if call.StringArg("term") == "" && call.StringArg("word") == "" {
			return s.fetchWordStudies(ctx, call, prefs)
		}
		return s.fetchResources(ctx, call, prefs, s.content.FetchWord)

	case domain.ToolGetAcademy:
		return s.fetchResources(ctx, call, prefs, s.content.FetchAcademy)

	case domain.ToolSearchAll:
		query := call.StringArg("query")
		scope := call.StringArg("scope")
		scopeType := call.StringArg("scopeType")
		results, err := s.content.Search(ctx, translationhelps.SearchRequest{
			Query:        query,
			Scope:        scope,
			ScopeType:    scopeType,
			Language:     prefs.Language,
			Organization: prefs.Organization,
		})
		if err != nil {
			return nil, err
		}
		return &State{Search: results}, nil

	case domain.ToolGetUserNotes:
		deviceID, ok := ctxutil.DeviceIDFromCtx(ctx)
		if !ok {
			return nil, domain.ErrUnauthorized
		}
		var reference *string
		if ref := call.StringArg("reference"); ref != "" {
			reference = &ref
		}
		notes, _, err := s.notes.List(ctx, deviceID, reference, 100, 0)
		if err != nil {
			return nil, err
		}
		resources := make([]domain.Resource, 0, len(notes))
		for _, n := range notes {
			res := domain.Resource{
				ID:      n.ID.String(),
				Kind:    domain.KindUserNote,
				Title:   "Note",
				Content: n.Content,
			}
			if n.Reference != nil {
				res.Reference = *n.Reference
				res.Title = *n.Reference
			}
			resources = append(resources, res)
		}
		return &State{Resources: resources}, nil

	case domain.ToolCreateNote, domain.ToolUpdateNote, domain.ToolDeleteNote:
		// Note mutations already happened in the live turn.
		return nil, nil

	default:
		s.log.WarnContext(ctx, "unknown tool signature skipped", slog.String("tool", call.Tool))
		return nil, nil
	}
}

// fetchWordStudies serves a word lookup that carries only a reference:
// it resolves the passage's word links, then fetches every linked
// definition concurrently, merging in link order. A failed definition
// fetch falls back to the link stub so the term still surfaces.
func (s *Service) fetchWordStudies(ctx context.Context, call domain.ToolCall, prefs Prefs) (*State, error) {
	reference := call.StringArg("reference")
	if reference == "" {
		return nil, domain.NewValidationError("term", "term or reference is required")
	}

	links, err := s.content.FetchWordLinks(ctx, translationhelps.ResourceRequest{
		Reference:    reference,
		Language:     prefs.Language,
		Organization: prefs.Organization,
	})
	if err != nil {
		return nil, err
	}

	definitions := make([][]domain.Resource, len(links))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentCalls)
	for i, link := range links {
		term := link.Title
		if term == "" {
			continue
		}
		g.Go(func() error {
			defs, err := s.content.FetchWord(gctx, translationhelps.ResourceRequest{
				Term:         term,
				Reference:    reference,
				Language:     prefs.Language,
				Organization: prefs.Organization,
			})
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				s.log.WarnContext(gctx, "word definition lookup failed",
					slog.String("term", term), slog.String("error", err.Error()))
				return nil
			}
			definitions[i] = defs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	resources := make([]domain.Resource, 0, len(links))
	for i, link := range links {
		if len(definitions[i]) > 0 {
			resources = append(resources, definitions[i]...)
			continue
		}
		resources = append(resources, link)
	}
	return &State{Resources: resources}, nil
}

func (s *Service) recordCall(tool, status string) {
	if s.metrics != nil {
		s.metrics.RecordReplayCall(tool, status)
	}
}

type resourceFetch func(ctx context.Context, req translationhelps.ResourceRequest) ([]domain.Resource, error)

func (s *Service) fetchResources(ctx context.Context, call domain.ToolCall, prefs Prefs, fetch resourceFetch) (*State, error) {
	reference := call.StringArg("reference")
	term := call.StringArg("term")
	if term == "" {
		term = call.StringArg("word")
	}
	filter := call.StringArg("filter")

	resources, err := fetch(ctx, translationhelps.ResourceRequest{
		Reference:    reference,
		Term:         term,
		Language:     prefs.Language,
		Organization: prefs.Organization,
		Filter:       filter,
	})
	if err != nil {
		return nil, err
	}
	return &State{Resources: resources}, nil
}
