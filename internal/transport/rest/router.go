package rest

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/klappy/unfoldingtheword/internal/config"
	"github.com/klappy/unfoldingtheword/internal/metrics"
	"github.com/klappy/unfoldingtheword/internal/transport/middleware"
)

// RouterDeps bundles everything the router needs.
type RouterDeps struct {
	Chat          *ChatHandler
	Agents        *AgentsHandler
	Voice         *VoiceHandler
	Conversations *ConversationsHandler
	Notes         *NotesHandler
	Health        *HealthHandler

	Logger          *slog.Logger
	Metrics         *metrics.Metrics
	CORS            config.CORSConfig
	RateLimiter     *middleware.RateLimiter
	RateLimitPerMin int
}

// NewRouter builds the HTTP routing table. All /api routes require the
// X-Device-Id header; the chat route is additionally rate limited per
// device. Health and metrics are left open for probes and scrapers.
func NewRouter(deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health/live", deps.Health.Live)
	mux.HandleFunc("GET /health/ready", deps.Health.Ready)
	mux.HandleFunc("GET /health", deps.Health.Health)
	mux.Handle("GET /metrics", promhttp.Handler())

	device := middleware.RequireDevice()
	api := func(h http.HandlerFunc) http.Handler { return device(h) }

	chat := middleware.Chain(device)
	if deps.RateLimiter != nil && deps.RateLimitPerMin > 0 {
		chat = middleware.Chain(device, deps.RateLimiter.Limit(deps.RateLimitPerMin))
	}
	mux.Handle("POST /api/chat", chat(http.HandlerFunc(deps.Chat.Chat)))

	mux.Handle("POST /api/agents/scripture", api(deps.Agents.Scripture))
	mux.Handle("POST /api/agents/resource", api(deps.Agents.Resource))
	mux.Handle("POST /api/agents/search", api(deps.Agents.Search))
	mux.Handle("POST /api/agents/note", api(deps.Agents.Note))

	mux.Handle("POST /api/voice/tool", api(deps.Voice.Tool))

	mux.Handle("POST /api/conversations", api(deps.Conversations.Create))
	mux.Handle("GET /api/conversations", api(deps.Conversations.List))
	mux.Handle("GET /api/conversations/{id}", api(deps.Conversations.Get))
	mux.Handle("GET /api/conversations/{id}/replay", api(deps.Conversations.Replay))
	mux.Handle("DELETE /api/conversations/{id}", api(deps.Conversations.Delete))

	mux.Handle("POST /api/notes", api(deps.Notes.Create))
	mux.Handle("GET /api/notes", api(deps.Notes.List))
	mux.Handle("GET /api/notes/{id}", api(deps.Notes.Get))
	mux.Handle("PUT /api/notes/{id}", api(deps.Notes.Update))
	mux.Handle("DELETE /api/notes/{id}", api(deps.Notes.Delete))

	chain := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(deps.Logger),
		middleware.CORS(deps.CORS),
		middleware.Logger(deps.Logger),
		middleware.Metrics(deps.Metrics),
	)
	return chain(mux)
}
