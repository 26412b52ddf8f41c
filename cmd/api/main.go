package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gabriel/anime-stream-api/internal/cache"
	"github.com/gabriel/anime-stream-api/internal/config"
	apihttp "github.com/gabriel/anime-stream-api/internal/http"
	providerdefaults "github.com/gabriel/anime-stream-api/internal/providers/defaults"
	"github.com/gabriel/anime-stream-api/internal/resolver"
	"github.com/gabriel/anime-stream-api/internal/scraper"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})
	logger := slog.New(handler)
	slog.SetDefault(logger)

	var store *cache.Store
	if cfg.CacheEnabled {
		store, err = cache.Open(cfg.SQLitePath)
		if err != nil {
			slog.Error("failed to open cache", "path", cfg.SQLitePath, "error", err)
			os.Exit(1)
		}
		defer store.Close()
	}

	fetcher := scraper.NewFetcher(scraper.FetcherOptions{
		BaseURL:    cfg.SourceBaseURL,
		Timeout:    time.Duration(cfg.FetchTimeoutSecs) * time.Second,
		MaxRetries: cfg.FetchRetries,
	})

	registry, registryErr := providerdefaults.NewRegistry(fetcher, cfg.YAMLProvidersPath)
	if registryErr != nil {
		slog.Warn("provider registry loaded with warnings", "error", registryErr)
	}

	service := scraper.NewService(fetcher, resolver.New(registry, cfg.ResolverWorkers, logger), logger)
	app := apihttp.NewServer(cfg, store, service, registry)

	janitorCtx, janitorCancel := context.WithCancel(context.Background())
	var janitor *cache.Janitor
	if store != nil {
		janitor = cache.NewJanitor(store, cache.JanitorConfig{
			Interval: time.Duration(cfg.CacheTTLMinutes) * time.Minute / 4,
		}, slog.Default())
		janitor.Start(janitorCtx)
	}

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server stopped", "error", err)
		}
	}()

	slog.Info("api started", "port", cfg.Port, "env", cfg.Environment, "source", cfg.SourceBaseURL)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	slog.Info("shutting down server")
	janitorCancel()
	if janitor != nil {
		janitor.StopWait(2 * time.Second)
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}
