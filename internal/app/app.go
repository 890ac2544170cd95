// Package app wires configuration into the services shared by the HTTP
// server and the command line tool.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-scribe/errors"
	"github.com/johnquangdev/meeting-scribe/internal/adapter/repository"
	"github.com/johnquangdev/meeting-scribe/internal/domain/repositories"
	"github.com/johnquangdev/meeting-scribe/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-scribe/internal/infrastructure/database"
	"github.com/johnquangdev/meeting-scribe/internal/infrastructure/storage"
	"github.com/johnquangdev/meeting-scribe/internal/usecase/archive"
	"github.com/johnquangdev/meeting-scribe/internal/usecase/followup"
	"github.com/johnquangdev/meeting-scribe/internal/usecase/summary"
	"github.com/johnquangdev/meeting-scribe/internal/usecase/transcription"
	"github.com/johnquangdev/meeting-scribe/pkg/ai"
	"github.com/johnquangdev/meeting-scribe/pkg/config"
)

// summaryCache is the cache surface shared by the memory and Redis stores
type summaryCache interface {
	summary.Cache
	Close() error
}

// App holds the configured services
type App struct {
	Config        *config.Config
	Logger        *zap.Logger
	Transcription *transcription.Service
	Summary       *summary.Service
	FollowUp      *followup.Service
	Archive       *archive.Service
	History       repositories.HistoryRepository

	db    *gorm.DB
	cache summaryCache
}

// New builds every service from cfg. Optional backends (database, Redis,
// object storage) are only connected when enabled.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	a := &App{Config: cfg, Logger: log}

	if cfg.Database.Enabled {
		log.Info("📦 Connecting to database...")
		db, err := database.NewPostgresDB(cfg, log)
		if err != nil {
			return nil, err
		}
		a.db = db
		if cfg.Database.AutoMigrate {
			if _, err := database.Migrate(db, log); err != nil {
				a.Close()
				return nil, err
			}
		}
		a.History = repository.NewHistoryRepository(db)
	}

	if cfg.Redis.Enabled {
		log.Info("📦 Connecting to Redis...")
		rs, err := cache.NewRedisStore(ctx, &cfg.Redis)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.cache = rs
	} else {
		a.cache = cache.NewMemoryStore()
	}

	var store archive.ObjectStore
	switch cfg.Storage.Type {
	case config.StorageLocal:
		ls, err := storage.NewLocalStore(cfg.Storage.LocalDir)
		if err != nil {
			a.Close()
			return nil, err
		}
		store = ls
	case config.StorageMinIO:
		log.Info("📦 Connecting to MinIO...")
		mc, err := storage.NewMinIOClient(ctx, &cfg.Storage)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to create MinIO client: %w", err)
		}
		store = mc
	}
	a.Archive = archive.NewService(store, cfg.Storage.URLExpiry, log)

	openai := ai.NewOpenAIClient(&cfg.OpenAI, log)

	var transcriber transcription.Transcriber = openai
	if cfg.Transcribe.Provider == config.ProviderAssemblyAI {
		transcriber = ai.NewAssemblyAIClient(&cfg.AssemblyAI, log)
	}

	a.Transcription = transcription.NewService(transcriber, cfg.Transcribe.Provider, cfg.Transcribe, a.History, log)
	a.Summary = summary.NewService(openai, cfg.Summary, a.cache, a.History, log)
	a.FollowUp = followup.NewService(openai, cfg.Summary.Model, log)

	log.Info("✅ Services initialized",
		zap.String("provider", cfg.Transcribe.Provider),
		zap.Bool("database", a.History != nil),
		zap.Bool("redis", cfg.Redis.Enabled),
		zap.Bool("archive", a.Archive.Enabled()))

	return a, nil
}

// Migrate applies the history schema
func (a *App) Migrate() (int, error) {
	if a.db == nil {
		return 0, errors.ErrConfiguration("migrations require the database").
			WithHint("set DB_ENABLED=true and configure DB_HOST")
	}
	n, err := database.Migrate(a.db, a.Logger)
	if err != nil {
		return 0, errors.ErrDBQueryFailed("migrate", err)
	}
	return n, nil
}

// Close releases backend connections
func (a *App) Close() error {
	var firstErr error
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			firstErr = err
		}
	}
	if a.db != nil {
		if err := database.CloseDB(a.db); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
