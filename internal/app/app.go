package app

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	dbpkg "github.com/mthstanley/stockpot/internal/data/db"
	httpserver "github.com/mthstanley/stockpot/internal/http"
	"github.com/mthstanley/stockpot/internal/observability"
	"github.com/mthstanley/stockpot/internal/platform/logger"
)

type App struct {
	Log        *logger.Logger
	DB         *gorm.DB
	Cfg        Config
	Repos      Repos
	Aggregates Aggregates
	Services   Services
	Server     *httpserver.Server
	Metrics    *observability.Metrics

	dbService    *dbpkg.Service
	otelShutdown func(context.Context) error
}

// New connects to the database, migrates the schema and wires every layer.
// A nil log is built from cfg.LogMode.
func New(cfg Config, log *logger.Logger) (*App, error) {
	if log == nil {
		l, err := logger.New(cfg.LogMode)
		if err != nil {
			return nil, fmt.Errorf("init logger: %w", err)
		}
		log = l
	}

	otelShutdown := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		Environment: cfg.Environment,
		Version:     cfg.Version,
	})
	metrics := observability.Init(log)

	dbService, err := dbpkg.NewService(cfg.DB, log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}
	if err := dbService.AutoMigrateAll(); err != nil {
		_ = dbService.Close()
		log.Sync()
		return nil, fmt.Errorf("database automigrate: %w", err)
	}
	theDB := dbService.DB()
	sqlDB, err := theDB.DB()
	if err != nil {
		_ = dbService.Close()
		return nil, fmt.Errorf("database handle: %w", err)
	}

	reposet := wireRepos(theDB, log)
	aggregateset := wireAggregates(theDB, log, reposet, metrics)
	serviceset, err := wireServices(theDB, log, cfg, reposet, aggregateset)
	if err != nil {
		_ = dbService.Close()
		log.Sync()
		return nil, err
	}
	handlerset := wireHandlers(log, serviceset, sqlDB)
	middleware := wireMiddleware(log, serviceset)
	server := wireServer(log, cfg, handlerset, middleware, metrics)

	return &App{
		Log:          log,
		DB:           theDB,
		Cfg:          cfg,
		Repos:        reposet,
		Aggregates:   aggregateset,
		Services:     serviceset,
		Server:       server,
		Metrics:      metrics,
		dbService:    dbService,
		otelShutdown: otelShutdown,
	}, nil
}

// Run serves HTTP (and metrics, when enabled) until ctx is cancelled or a
// server fails.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.Server.Run(gctx, a.Cfg.Addr, a.Cfg.shutdownTimeout())
	})
	if a.Metrics != nil {
		a.Metrics.StartDBCollector(gctx, a.Log, a.DB)
		a.Metrics.StartRedisCollector(gctx, a.Log, a.Cfg.RedisAddr)
		g.Go(func() error {
			return a.Metrics.Serve(gctx, a.Log, a.Cfg.MetricsAddr)
		})
	}
	return g.Wait()
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), a.Cfg.shutdownTimeout())
		if err := a.otelShutdown(ctx); err != nil && a.Log != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
		cancel()
	}
	if err := a.dbService.Close(); err != nil && a.Log != nil {
		a.Log.Warn("database close failed", "error", err)
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
