package conversation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/klappy/unfoldingtheword/internal/domain"
	"github.com/klappy/unfoldingtheword/internal/service/replay"
	"github.com/klappy/unfoldingtheword/pkg/ctxutil"
)

// ReplayResult is the regenerated pane state for a reloaded
// conversation, together with the signatures that produced it.
type ReplayResult struct {
	State     *replay.State
	ToolCalls []domain.ToolCall
}

// Replay rebuilds the pane state of a conversation by re-executing the
// tool-call signatures recorded on its latest assistant message. A
// conversation with no assistant turns yet yields an empty state.
func (s *Service) Replay(ctx context.Context, conversationID uuid.UUID, prefs replay.Prefs) (*ReplayResult, error) {
	deviceID, ok := ctxutil.DeviceIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if _, err := s.conversations.GetByID(ctx, deviceID, conversationID); err != nil {
		return nil, fmt.Errorf("get conversation: %w", err)
	}

	latest, err := s.messages.LatestAssistant(ctx, conversationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &ReplayResult{
				State:     &replay.State{Resources: []domain.Resource{}},
				ToolCalls: []domain.ToolCall{},
			}, nil
		}
		return nil, fmt.Errorf("latest assistant message: %w", err)
	}

	state, err := s.replay.Replay(ctx, latest.ToolCalls, prefs)
	if err != nil {
		return nil, fmt.Errorf("replay signatures: %w", err)
	}

	calls := latest.ToolCalls
	if calls == nil {
		calls = []domain.ToolCall{}
	}

	s.log.InfoContext(ctx, "conversation replayed",
		slog.String("conversation_id", conversationID.String()),
		slog.Int("tool_calls", len(calls)),
	)

	return &ReplayResult{State: state, ToolCalls: calls}, nil
}
