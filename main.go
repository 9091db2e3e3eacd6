package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"chatroom-service/internal/api"
	"chatroom-service/internal/config"
	"chatroom-service/internal/db"
	"chatroom-service/internal/handlers"
	"chatroom-service/internal/observability"
	"chatroom-service/internal/rabbitmq"
	"chatroom-service/internal/repositories"
	"chatroom-service/internal/service"
	"chatroom-service/internal/telemetry"
)

func main() {
	cfg := config.Load()
	logger := observability.NewLogger(cfg.Env, cfg.LogLevel)
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	shutdownTracer, err := observability.InitTracer(ctx, cfg.OTLPEndpoint, cfg.Env)
	if err != nil {
		logger.Fatal().Err(err).Msg("tracer init failed")
	}

	database, err := db.Connect(ctx, cfg.DBDriver, cfg.DBDSN, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to db")
	}
	defer database.Close()

	checks := map[string]handlers.HealthCheck{"database": database.PingContext}

	var presence repositories.PresenceTracker = repositories.NewSQLPresence(database)
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = repositories.DialRedis(ctx, cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis connection failed")
		}
		defer redisClient.Close()
		presence = repositories.NewRedisPresence(redisClient)
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
		logger.Info().Msg("presence tracked in redis")
	}

	publisher := rabbitmq.NewPublisher(cfg.AMQPURL, cfg.AuditExchange, logger)
	defer publisher.Close()
	logger.Info().
		Str("mode", rabbitmq.PublisherMode(publisher)).
		Str("reason", rabbitmq.PublisherNoopReason(publisher)).
		Msg("audit publisher ready")
	audit := telemetry.NewAuditEmitter(publisher, cfg.AuditRoutingKey, "chatroom-service", cfg.Env)

	svc := service.New(service.Stores{
		Users:       repositories.NewUserRepo(database),
		Presence:    presence,
		Chatrooms:   repositories.NewChatroomRepo(database),
		Memberships: repositories.NewMembershipRepo(database),
		Messages:    repositories.NewMessageRepo(database),
	}, service.WithTimeout(cfg.StoreTimeout))

	router := api.NewRouter(api.Deps{
		Accounts:  svc,
		Chatrooms: svc,
		Messages:  svc,
		Audit:     audit,
		Health:    checks,
		Logger:    logger,
		StaticDir: cfg.StaticDir,
		Debug:     cfg.IsDevelopment(),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().
			Str("port", cfg.Port).
			Str("env", cfg.Env).
			Str("db_driver", cfg.DBDriver).
			Msg("starting chatroom server")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("tracer shutdown failed")
	}

	logger.Info().Msg("server stopped")
}
