package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/lamesa/ordering-gateway/internal/api"
	redisstore "github.com/lamesa/ordering-gateway/internal/infrastructure/db/redis"
	"github.com/lamesa/ordering-gateway/internal/infrastructure/queue"
	"github.com/lamesa/ordering-gateway/internal/infrastructure/upstream"
	"github.com/lamesa/ordering-gateway/internal/pkg/config"
	"github.com/lamesa/ordering-gateway/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("error closing redis")
		}
	}()

	client := upstream.NewClient(cfg.Upstream.GraphQLURL, cfg.Upstream.Timeout, log)

	compensation := queue.NewDispatcher(cfg.Checkout.CompensationWorkers, client, log)
	compensation.Start(ctx)

	e := api.NewRouter(cfg, rdb, client, compensation)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting ordering gateway")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
