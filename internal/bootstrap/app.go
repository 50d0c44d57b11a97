// Package bootstrap handles application initialization and lifecycle
// management for the content-service.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/petalhealth/content-service/internal/api"
	"github.com/petalhealth/content-service/internal/fetcher"
	"github.com/petalhealth/content-service/internal/handlers"
	"github.com/petalhealth/content-service/internal/logger"
	"github.com/petalhealth/content-service/internal/metadata"
	"github.com/petalhealth/content-service/internal/overrides"
	"github.com/petalhealth/content-service/internal/store"
)

const version = "dev"

// Start initializes and runs the content-service.
func Start() error {
	// Phase 1: Load config and create logger
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := CreateLogger(cfg, version)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	// Phase 2: Setup Redis-backed snapshot cache and event publisher (optional)
	snapshots, publisher := SetupRedis(cfg, log)

	// Phase 3: Build the fetcher and the content store
	client := fetcher.New(cfg.Content.Endpoints.URLMap(), cfg.Content.FetchTimeout, log)

	st, err := store.New(store.NewRemoteSource(client), log,
		store.WithSnapshots(snapshots),
		store.WithEvents(publisher),
		store.WithRemoteEnabled(cfg.Content.RemoteEnabled()),
	)
	if err != nil {
		return fmt.Errorf("failed to build content store: %w", err)
	}

	if hydrateErr := st.Hydrate(context.Background()); hydrateErr != nil {
		log.Warn("Failed to hydrate from snapshot cache, serving bundled data",
			logger.Error(hydrateErr),
		)
	}

	// Phase 4: Start the overrides watcher (optional)
	watcherCtx, stopWatcher := context.WithCancel(context.Background())
	defer stopWatcher()
	if cfg.Content.OverridesDir != "" {
		watcher, watchErr := overrides.NewWatcher(cfg.Content.OverridesDir, st, log)
		if watchErr != nil {
			return fmt.Errorf("failed to start overrides watcher: %w", watchErr)
		}
		go func() {
			if runErr := watcher.Run(watcherCtx); runErr != nil {
				log.Error("Overrides watcher stopped", logger.Error(runErr))
			}
		}()
	}

	// Phase 5: Setup and run HTTP server
	router := api.NewRouter(api.Handlers{
		Content: handlers.NewContentHandler(st, log),
		Admin:   handlers.NewAdminHandler(st, metadata.NewExtractor(log), publisher, log),
		Debug:   handlers.NewDebugHandler(st, client, log),
	}, cfg, log)

	log.Info("Starting HTTP server",
		logger.String("host", cfg.Server.Host),
		logger.Int("port", cfg.Server.Port),
		logger.Bool("use_remote_data", cfg.Content.RemoteEnabled()),
	)

	if runErr := RunHTTPServer(cfg, router, log); runErr != nil {
		log.Error("Server error", logger.Error(runErr))
		return fmt.Errorf("server error: %w", runErr)
	}

	log.Info("Server exited")
	return nil
}
