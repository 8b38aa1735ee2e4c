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

	"github.com/chamathdew/hiruayurvedaresorts/internal/api"
	"github.com/chamathdew/hiruayurvedaresorts/internal/infrastructure/ai"
	"github.com/chamathdew/hiruayurvedaresorts/internal/infrastructure/config"
	mongodb "github.com/chamathdew/hiruayurvedaresorts/internal/infrastructure/db/mongo"
	redisdb "github.com/chamathdew/hiruayurvedaresorts/internal/infrastructure/db/redis"
	"github.com/chamathdew/hiruayurvedaresorts/internal/infrastructure/storage"
	"github.com/chamathdew/hiruayurvedaresorts/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(shutdownCtx)
	}()

	if err := mongodb.NewAuthRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}
	if err := mongodb.NewGuestRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("guest index creation failed")
	}

	// Redis backs the dashboard stats cache; the API works without it.
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, stats cache disabled")
		rdb = nil
	} else {
		defer rdb.Close()
	}

	if cfg.Gemini.APIKey == "" {
		log.Warn().Msg("GEMINI_API_KEY not set, document extraction will refuse calls")
	}
	extractor := ai.NewGeminiExtractor(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.Timeout, log)
	store := storage.NewLocalStore(cfg.UploadDir)

	e := api.NewRouter(cfg, db, rdb, extractor, store)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting api server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		os.Exit(1)
	}
}
