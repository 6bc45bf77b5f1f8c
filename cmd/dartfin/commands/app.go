package commands

import (
	"context"
	"fmt"

	"github.com/wonny/dartfin/internal/external/dart"
	"github.com/wonny/dartfin/internal/financial"
	"github.com/wonny/dartfin/internal/ratio"
	"github.com/wonny/dartfin/internal/registry"
	"github.com/wonny/dartfin/pkg/config"
	"github.com/wonny/dartfin/pkg/database"
	"github.com/wonny/dartfin/pkg/logger"
	"github.com/wonny/dartfin/pkg/redis"
)

// app holds the wired components shared by all commands
type app struct {
	cfg       *config.Config
	log       *logger.Logger
	redis     *redis.Client
	db        *database.DB
	dart      *dart.Client // nil without an API key
	manager   *registry.Manager
	financial *financial.Service // nil without an API key
}

// newApp wires config, logging, storage and clients.
// requireDART fails early for commands that cannot work offline.
func newApp(ctx context.Context, requireDART bool) (*app, error) {
	// 1. Load config
	cfg, err := config.LoadWithEnvFile(envFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	if requireDART {
		if err := cfg.RequireDARTKey(); err != nil {
			return nil, err
		}
	}

	// 2. Initialize logger
	log := logger.New(cfg)
	a := &app{cfg: cfg, log: log}

	// 3. Redis (optional): statement cache + shared DART rate limit
	rc, err := redis.New(cfg)
	if err != nil {
		log.WithError(err).Warn("Redis unavailable, continuing without cache")
		rc = redis.Disabled()
	}
	a.redis = rc

	// 4. Registry store
	store, err := a.openStore(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	// 5. DART client
	var source registry.CatalogSource
	if cfg.DART.APIKey != "" {
		a.dart = dart.NewClient(cfg, log)
		if rc.Enabled() {
			a.dart.WithSharedLimit(redis.NewRateLimiter(rc, "dartfin"))
		}
		source = a.dart
	}

	// 6. Registry + financial service
	a.manager = registry.NewManager(registry.NewIndex(), store, source, log)

	if a.dart != nil {
		engine, err := ratio.NewDefaultEngine()
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("load ratio definitions: %w", err)
		}
		a.financial = financial.NewService(a.dart, redis.NewCache(rc, "dartfin"), engine, log)
	}

	return a, nil
}

func (a *app) openStore(ctx context.Context) (registry.Store, error) {
	switch a.cfg.Registry.Store {
	case config.StorePostgres:
		db, err := database.New(ctx, a.cfg)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		a.db = db

		store := registry.NewPostgresStore(db)
		if err := store.Migrate(ctx); err != nil {
			return nil, err
		}
		a.log.Info("Using Postgres registry store")
		return store, nil

	default:
		a.log.WithField("path", a.cfg.Registry.CachePath).Debug("Using file registry store")
		return registry.NewFileStore(a.cfg.Registry.CachePath), nil
	}
}

// Close releases database and Redis connections
func (a *app) Close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.redis != nil {
		a.redis.Close()
	}
}
