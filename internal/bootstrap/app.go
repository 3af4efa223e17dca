// Package bootstrap assembles the engine from configuration. The HTTP server
// and the MCP server share it so both run the same detector registry.
package bootstrap

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/nfl-edge/internal/cache"
	"github.com/stitts-dev/nfl-edge/internal/detectors"
	"github.com/stitts-dev/nfl-edge/internal/edge"
	"github.com/stitts-dev/nfl-edge/internal/providers"
	"github.com/stitts-dev/nfl-edge/internal/services"
	"github.com/stitts-dev/nfl-edge/internal/store"
	"github.com/stitts-dev/nfl-edge/pkg/config"
	"github.com/stitts-dev/nfl-edge/pkg/database"
)

type App struct {
	Config   *config.Config
	Logger   *logrus.Logger
	DB       *database.DB
	Cache    cache.Cache
	Breakers *providers.CircuitBreakerService
	Store    *store.Store
	Analyzer *edge.Analyzer
	Warmer   *services.CacheWarmer
}

// New connects to the database and cache and wires providers, detectors and
// the analyzer. Close releases what New opened.
func New(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*App, error) {
	db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	c, err := cache.New(ctx, cfg.CacheBackend, cfg.RedisURL, logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}

	app, err := Assemble(cfg, db, c, logger)
	if err != nil {
		db.Close()
		return nil, err
	}
	return app, nil
}

// Assemble wires the engine over an existing database and cache.
func Assemble(cfg *config.Config, db *database.DB, c cache.Cache, logger *logrus.Logger) (*App, error) {
	breakers := providers.NewCircuitBreakerService(cfg.CircuitBreakerThreshold, cfg.CircuitBreakerTimeout, logger)

	weather := providers.NewOpenWeatherProvider(providers.OpenWeatherOptions{
		APIKey:    cfg.OpenWeatherAPIKey,
		BaseURL:   cfg.OpenWeatherBaseURL,
		Timeout:   cfg.ExternalAPITimeout,
		RateLimit: cfg.WeatherRateLimit,
		CacheTTL:  cfg.WeatherCacheTTL,
	}, c, breakers, logger)

	odds := providers.NewOddsProvider(providers.OddsOptions{
		APIKey:    cfg.OddsAPIKey,
		BaseURL:   cfg.OddsBaseURL,
		Timeout:   cfg.ExternalAPITimeout,
		RateLimit: cfg.OddsRateLimit,
		CacheTTL:  cfg.OddsCacheTTL,
	}, c, breakers, logger)

	st := store.New(db, store.Options{Season: cfg.Season, CurrentWeek: cfg.CurrentWeek})

	registry := detectors.DefaultRegistry(detectors.Dependencies{
		Season:          cfg.Season,
		Teams:           st,
		Games:           st,
		Injuries:        st,
		Logs:            st,
		Defense:         st,
		Career:          st,
		Weather:         weather,
		Lines:           odds,
		Cache:           c,
		MatchupCacheTTL: cfg.MatchupCacheTTL,
		Logger:          logger,
	})

	runner, err := edge.NewRunner(registry, edge.RunnerOptions{
		Timeout:     cfg.DetectorTimeout,
		Concurrency: cfg.DetectorConcurrency,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build detector runner: %w", err)
	}

	analyzer := edge.NewAnalyzer(edge.NewResolver(st, st), runner, logger)

	warmer := services.NewCacheWarmer(st, st, weather, odds, breakers, services.WarmerOptions{
		Season:   cfg.Season,
		Interval: cfg.WarmInterval,
	}, logger)

	return &App{
		Config:   cfg,
		Logger:   logger,
		DB:       db,
		Cache:    c,
		Breakers: breakers,
		Store:    st,
		Analyzer: analyzer,
		Warmer:   warmer,
	}, nil
}

// StartBackgroundJobs starts the cache warmer when enabled.
func (a *App) StartBackgroundJobs() error {
	if !a.Config.EnableBackgroundJobs {
		a.Logger.WithField("component", "bootstrap").Info("Background jobs disabled")
		return nil
	}
	return a.Warmer.Start()
}

func (a *App) Close() {
	if err := a.Warmer.Stop(); err != nil {
		a.Logger.WithError(err).Warn("Failed to stop cache warmer")
	}
	if closer, ok := a.Cache.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			a.Logger.WithError(err).Warn("Failed to close cache")
		}
	}
	if err := a.DB.Close(); err != nil {
		a.Logger.WithError(err).Warn("Failed to close database")
	}
}
