package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/klappy/unfoldingtheword/internal/adapter/postgres"
	conversationrepo "github.com/klappy/unfoldingtheword/internal/adapter/postgres/conversation"
	messagerepo "github.com/klappy/unfoldingtheword/internal/adapter/postgres/message"
	noterepo "github.com/klappy/unfoldingtheword/internal/adapter/postgres/note"
	"github.com/klappy/unfoldingtheword/internal/adapter/provider/claude"
	"github.com/klappy/unfoldingtheword/internal/adapter/provider/translationhelps"
	"github.com/klappy/unfoldingtheword/internal/config"
	"github.com/klappy/unfoldingtheword/internal/metrics"
	conversationsvc "github.com/klappy/unfoldingtheword/internal/service/conversation"
	"github.com/klappy/unfoldingtheword/internal/service/intent"
	notesvc "github.com/klappy/unfoldingtheword/internal/service/note"
	"github.com/klappy/unfoldingtheword/internal/service/orchestrator"
	"github.com/klappy/unfoldingtheword/internal/service/replay"
	"github.com/klappy/unfoldingtheword/internal/trace"
	"github.com/klappy/unfoldingtheword/internal/transport/middleware"
	"github.com/klappy/unfoldingtheword/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects
// to the database, wires adapters into services, and serves HTTP until
// ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.MigrateOnStart {
		if err := runMigrations(ctx, cfg.Database, logger); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
	}

	promMetrics := metrics.New()
	tracer := trace.NewRecorder(logger, promMetrics)

	llmClient := claude.NewClient(cfg.LLM, logger, promMetrics)
	contentClient := translationhelps.NewClient(cfg.Content, logger, promMetrics)

	conversationRepo := conversationrepo.New(pool)
	messageRepo := messagerepo.New(pool)
	noteRepo := noterepo.New(pool)

	intentSvc := intent.NewService(logger, llmClient)
	replaySvc := replay.NewService(logger, contentClient, noteRepo, promMetrics)
	noteSvc := notesvc.NewService(logger, noteRepo, cfg.Chat.MaxNotesPerUser)
	conversationSvc := conversationsvc.NewService(logger, conversationRepo, messageRepo, replaySvc)
	orchestratorSvc := orchestrator.NewService(
		logger,
		cfg.Chat,
		intentSvc,
		llmClient,
		replaySvc,
		conversationRepo,
		messageRepo,
		noteSvc,
	)

	rateLimiter := middleware.NewRateLimiter(time.Minute)
	defer rateLimiter.Stop()

	router := rest.NewRouter(rest.RouterDeps{
		Chat:          rest.NewChatHandler(orchestratorSvc, tracer, logger),
		Agents:        rest.NewAgentsHandler(replaySvc, logger),
		Voice:         rest.NewVoiceHandler(replaySvc, logger),
		Conversations: rest.NewConversationsHandler(conversationSvc, logger),
		Notes:         rest.NewNotesHandler(noteSvc, logger),
		Health:        rest.NewHealthHandler(pool, BuildVersion()),

		Logger:          logger,
		Metrics:         promMetrics,
		CORS:            cfg.CORS,
		RateLimiter:     rateLimiter,
		RateLimitPerMin: cfg.Server.RateLimitPerMin,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
