package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"event-chat/internal/chat"
	"event-chat/internal/config"
	"event-chat/internal/db"
	"event-chat/internal/middleware"
	"event-chat/internal/session"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	// Platform layer: Postgres for history, Redis for sessions.
	database, err := db.NewDatabase(cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer database.Close()
	logger.Info().Msg("connected to postgres")

	if err := database.AutoMigrate(); err != nil {
		logger.Fatal().Err(err).Msg("migration failed")
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	logger.Info().Msg("connected to redis")

	// Realtime core. The registry is built once here and handed to the
	// admission gate and the hub; nothing else touches it.
	sessions := session.NewRedisStore(redisClient, cfg.SessionSecret)
	repo := chat.NewRepository(database.Conn)
	registry := chat.NewRegistry()
	hub := chat.NewHub(registry, repo, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go hub.Run(ctx)

	gate := chat.NewGate(sessions, registry, hub, logger)
	chatHandler := chat.NewHandler(gate, repo, logger)
	sessionAuth := middleware.NewSessionAuth(sessions)

	r := chi.NewRouter()
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)

	// The websocket endpoint runs its own admission check after the
	// upgrade, so it stays outside the HTTP auth group.
	r.Get("/ws", chatHandler.ServeWS)

	r.Group(func(r chi.Router) {
		r.Use(sessionAuth.Handle)
		r.Get("/history", chatHandler.History)
	})

	srv := &http.Server{Addr: cfg.Addr, Handler: r}
	go func() {
		logger.Info().Str("addr", cfg.Addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown incomplete")
	}
}
