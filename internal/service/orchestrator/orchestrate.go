package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/klappy/unfoldingtheword/internal/adapter/provider/claude"
	conversationsvc "github.com/klappy/unfoldingtheword/internal/service/conversation"
	"github.com/klappy/unfoldingtheword/internal/service/intent"
	"github.com/klappy/unfoldingtheword/internal/service/replay"
	"github.com/klappy/unfoldingtheword/pkg/ctxutil"

	"github.com/klappy/unfoldingtheword/internal/domain"
)

// Orchestrate runs one chat turn. The sink receives exactly one
// Metadata call before any Delta; pass nil for non-streaming callers.
func (s *Service) Orchestrate(ctx context.Context, input OrchestrateInput, sink Sink) (*Result, error) {
	deviceID, ok := ctxutil.DeviceIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if sink == nil {
		sink = nopSink{}
	}

	if err := input.Validate(s.maxMessageLength); err != nil {
		return nil, err
	}

	conv, history, err := s.resolveConversation(ctx, deviceID, input)
	if err != nil {
		return nil, err
	}

	if _, err := s.messages.Create(ctx, &domain.Message{
		ID:             uuid.New(),
		ConversationID: conv.ID,
		Role:           domain.RoleUser,
		Content:        input.Message,
		CreatedAt:      time.Now().UTC(),
	}); err != nil {
		return nil, fmt.Errorf("persist user message: %w", err)
	}

	classified := s.intents.Classify(ctx, input.Message)

	calls, state, err := s.runToolRound(ctx, input, history, classified)
	if err != nil {
		return nil, err
	}

	meta := Metadata{
		ConversationID: conv.ID,
		Intent:         classified.Intent,
		NavigationHint: deriveNavigation(calls),
		ToolCalls:      calls,
		SearchQuery:    searchQuery(calls),
		Language:       input.Prefs.Language,
		Organization:   input.Prefs.Organization,
		Resources:      []domain.Resource{},
	}
	if state != nil {
		meta.Scripture = state.Scripture
		meta.SearchMatches = state.Matches
		meta.SearchResults = state.Search
		if state.Resources != nil {
			meta.Resources = state.Resources
		}
		if state.Scripture != nil {
			meta.ScriptureReference = state.Scripture.Reference
		}
	}

	if err := sink.Metadata(meta); err != nil {
		return nil, fmt.Errorf("emit metadata: %w", err)
	}

	system := answerPrompt(classified.Intent, state, input.ScriptureContext, input.ResponseLanguage)
	summary, err := s.llm.StreamText(ctx, system, history, input.Message, sink.Delta)
	if err != nil {
		return nil, fmt.Errorf("stream answer: %w", err)
	}

	if _, err := s.messages.Create(ctx, &domain.Message{
		ID:             uuid.New(),
		ConversationID: conv.ID,
		Role:           domain.RoleAssistant,
		Content:        summary,
		NavigationHint: meta.NavigationHint,
		ToolCalls:      calls,
		CreatedAt:      time.Now().UTC(),
	}); err != nil {
		return nil, fmt.Errorf("persist assistant message: %w", err)
	}

	if err := s.conversations.Touch(ctx, deviceID, conv.ID); err != nil {
		s.log.WarnContext(ctx, "touch conversation failed",
			slog.String("conversation_id", conv.ID.String()),
			slog.String("error", err.Error()),
		)
	}

	s.log.InfoContext(ctx, "turn complete",
		slog.String("conversation_id", conv.ID.String()),
		slog.String("intent", string(classified.Intent)),
		slog.String("navigation", string(meta.NavigationHint)),
		slog.Int("tool_calls", len(calls)),
	)

	return &Result{Metadata: meta, Summary: summary}, nil
}

// resolveConversation loads the target thread and its recent turns, or
// starts a new thread titled after the first message.
func (s *Service) resolveConversation(ctx context.Context, deviceID string, input OrchestrateInput) (*domain.Conversation, []claude.Turn, error) {
	if input.ConversationID == nil {
		now := time.Now().UTC()
		conv, err := s.conversations.Create(ctx, &domain.Conversation{
			ID:        uuid.New(),
			DeviceID:  deviceID,
			Title:     conversationsvc.TitleFromMessage(input.Message),
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("create conversation: %w", err)
		}
		return conv, input.ClientHistory, nil
	}

	conv, err := s.conversations.GetByID(ctx, deviceID, *input.ConversationID)
	if err != nil {
		return nil, nil, fmt.Errorf("get conversation: %w", err)
	}

	stored, err := s.messages.ListByConversation(ctx, conv.ID, 0)
	if err != nil {
		return nil, nil, fmt.Errorf("list history: %w", err)
	}
	if keep := s.maxHistoryTurns * 2; len(stored) > keep {
		stored = stored[len(stored)-keep:]
	}
	return conv, toTurns(stored), nil
}

// runToolRound picks and executes the turn's tool calls. Every selected
// signature is returned for persistence whether or not it succeeded.
func (s *Service) runToolRound(ctx context.Context, input OrchestrateInput, history []claude.Turn, classified intent.Result) ([]domain.ToolCall, *replay.State, error) {
	if classified.Direct && classified.Reference != nil {
		calls := []domain.ToolCall{{
			Tool: domain.ToolGetScripture,
			Args: map[string]any{"reference": classified.Reference.String()},
		}}
		state, err := s.executor.Execute(ctx, calls, input.Prefs)
		if err != nil {
			return nil, nil, fmt.Errorf("execute direct fetch: %w", err)
		}
		if state != nil && state.Scripture != nil {
			return calls, state, nil
		}
		// The reference resolved to nothing; let the model take over.
	}

	calls, _, err := s.llm.SelectTools(ctx, selectionPrompt(classified.Intent), history, input.Message, toolSpecs())
	if err != nil {
		return nil, nil, fmt.Errorf("select tools: %w", err)
	}

	var mutationResources []domain.Resource
	for _, call := range calls {
		if !call.Mutating() {
			continue
		}
		if res, err := s.applyNoteMutation(ctx, call); err != nil {
			s.log.WarnContext(ctx, "note mutation failed",
				slog.String("tool", call.Tool),
				slog.String("error", err.Error()),
			)
		} else if res != nil {
			mutationResources = append(mutationResources, *res)
		}
	}

	state, err := s.executor.Execute(ctx, calls, input.Prefs)
	if err != nil {
		return nil, nil, fmt.Errorf("execute tools: %w", err)
	}
	if state != nil && len(mutationResources) > 0 {
		state.Resources = append(state.Resources, mutationResources...)
	}

	return calls, state, nil
}

func toTurns(history []*domain.Message) []claude.Turn {
	turns := make([]claude.Turn, 0, len(history))
	for _, m := range history {
		turns = append(turns, claude.Turn{Role: m.Role, Content: m.Content})
	}
	return turns
}
