package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/gobank/internal/adapter/http"
	"github.com/iho/gobank/internal/adapter/http/handler"
	"github.com/iho/gobank/internal/adapter/repository/memory"
	postgresRepo "github.com/iho/gobank/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/gobank/internal/adapter/repository/redis"
	"github.com/iho/gobank/internal/infrastructure/config"
	"github.com/iho/gobank/internal/infrastructure/logger"
	"github.com/iho/gobank/internal/infrastructure/metrics"
	"github.com/iho/gobank/internal/infrastructure/notifier"
	"github.com/iho/gobank/internal/infrastructure/postgres"
	"github.com/iho/gobank/internal/infrastructure/redis"
	"github.com/iho/gobank/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	log.Logger = logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	ctx := context.Background()

	store := memory.NewAccountStore()
	idGen := memory.NewULIDGenerator()
	m := metrics.New()

	// The transfer log is in-memory unless a database is configured.
	var transferLog usecase.TransferLog = memory.NewTransferLog()
	var pool *pgxpool.Pool

	if cfg.DatabaseURL != "" {
		pool, err = postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to postgres")
		}
		defer pool.Close()
		log.Info().Msg("connected to postgres")

		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}

		transferLog = postgresRepo.NewTransferLog(pool)
	}

	// Notifications fall back to the structured log when Redis is absent.
	var transferNotifier usecase.Notifier = notifier.NewLogNotifier(log.Logger)
	var idempotencyStore usecase.IdempotencyStore
	var redisClient *goredis.Client

	if cfg.RedisURL != "" {
		redisClient, err = redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()
		log.Info().Msg("connected to redis")

		transferNotifier = notifier.NewRedisNotifier(redisClient, cfg.NotifyChannel, idGen)
		idempotencyStore = redisRepo.NewIdempotencyStore(redisClient)
	}

	accountUC := usecase.NewAccountUseCase(store, m)
	transferUC := usecase.NewTransferUseCase(store, transferNotifier, transferLog, idGen, m)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:   handler.NewAccountHandler(accountUC),
		TransferHandler:  handler.NewTransferHandler(transferUC),
		HealthHandler:    handler.NewHealthHandler(pool, redisClient),
		Logger:           log.Logger,
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
