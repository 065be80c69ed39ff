package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"quizforge/internal/config"
	"quizforge/internal/model"
	"quizforge/internal/pkg/db"
	"quizforge/internal/question"
	"quizforge/internal/service"
	"quizforge/internal/storage"
)

// app holds everything a command needs.
type app struct {
	cfg       *config.Config
	store     storage.Store
	engine    *service.Engine
	providers *question.Registry
}

func newApp(ctx context.Context, configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	setLogLevel(cfg.Log.Level)

	store, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	loc, err := cfg.Game.Location()
	if err != nil {
		store.Close()
		return nil, err
	}

	engine := service.NewEngine(store, storage.NewKeys(cfg.Storage.KeyPrefix), service.Options{
		GachaCost: cfg.Game.GachaCost,
		Location:  loc,
	})

	providers := question.NewRegistry()
	if err := providers.Register(question.NewBankProvider(nil)); err != nil {
		store.Close()
		return nil, err
	}
	if cfg.Provider.OpenAI.APIKey != "" {
		openAI := question.NewOpenAIProvider(question.OpenAIConfig{
			APIKey:  cfg.Provider.OpenAI.APIKey,
			Model:   cfg.Provider.OpenAI.Model,
			BaseURL: cfg.Provider.OpenAI.BaseURL,
			Timeout: cfg.Provider.Timeout,
		})
		if err := providers.Register(openAI); err != nil {
			store.Close()
			return nil, err
		}
	}

	log.Debug().
		Str("driver", cfg.Storage.Driver).
		Strs("providers", providers.Names()).
		Msg("Engine ready")

	return &app{cfg: cfg, store: store, engine: engine, providers: providers}, nil
}

func openStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		log.Warn().Msg("Using in-memory storage, progress will not be saved")
		return storage.NewMemoryStore(), nil
	case config.DriverSQLite:
		sqlDB, err := db.OpenSQLite(cfg.Storage.SQLite.Path)
		if err != nil {
			return nil, err
		}
		store, err := storage.NewSQLiteStore(ctx, sqlDB)
		if err != nil {
			sqlDB.Close()
			return nil, err
		}
		return store, nil
	case config.DriverPostgres:
		pool, err := db.NewPostgresPool(ctx, &cfg.Database)
		if err != nil {
			return nil, err
		}
		store, err := storage.NewPostgresStore(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		return store, nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}

func setLogLevel(level string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

func (a *app) Close() error {
	return a.store.Close()
}

// user resolves a username to a registered user.
func (a *app) user(ctx context.Context, username string) (*model.User, error) {
	if username == "" {
		return nil, fmt.Errorf("--user is required")
	}
	return a.engine.Users.Login(ctx, username)
}
