package main

import (
	"context"
	"flag"
	"log"
	"net/http"

	"github.com/stackit-team/stackit-server/internal/auth"
	"github.com/stackit-team/stackit-server/internal/config"
	"github.com/stackit-team/stackit-server/internal/notify"
	"github.com/stackit-team/stackit-server/internal/server"
	"github.com/stackit-team/stackit-server/internal/storage"
	"github.com/stackit-team/stackit-server/internal/storage/inmemory"
	"github.com/stackit-team/stackit-server/internal/storage/postgres"
	"github.com/stackit-team/stackit-server/internal/suggest"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	storageType := flag.String("storage", "in-memory", "Storage type (in-memory or postgres)")
	flag.Parse()

	cfg := config.Load()

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	var store storage.Storage
	logger.Info("starting server", zap.String("storage", *storageType))
	if *storageType == "postgres" {
		if cfg.DatabaseURL == "" {
			logger.Fatal("DATABASE_URL must be set for postgres storage")
		}
		store, err = postgres.New(cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("failed to connect to postgres", zap.Error(err))
		}
	} else {
		mem := inmemory.New()
		seedTags(mem, logger)
		store = mem
	}

	var suggester suggest.Suggester
	if cfg.GeminiKey != "" {
		suggester, err = suggest.NewGemini(context.Background(), cfg.GeminiKey, cfg.GeminiModel)
		if err != nil {
			logger.Fatal("failed to init tag suggester", zap.Error(err))
		}
	} else {
		logger.Warn("GEMINI_API_KEY not set, tag suggestion disabled")
	}

	tokens := auth.NewManager(cfg.JWTSecret, cfg.TokenTTL)
	hub := notify.NewHub()
	notifier := notify.New(store, hub, logger)

	srv := server.New(store, tokens, notifier, hub, suggester, logger)

	logger.Info("listening", zap.String("port", cfg.Port))
	if err := http.ListenAndServe(":"+cfg.Port, srv.Routes()); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		parsed = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(parsed)
	return cfg.Build()
}

// seedTags pre-creates a default tag set so the in-memory backend has
// something for the suggestion filter to match against.
func seedTags(store storage.Storage, logger *zap.Logger) {
	ctx := context.Background()
	for _, name := range []string{"React", "JWT", "Next.js", "Prisma", "Tailwind"} {
		if _, err := store.CreateTag(ctx, name); err != nil {
			logger.Warn("failed to seed tag", zap.String("name", name), zap.Error(err))
		}
	}
}
