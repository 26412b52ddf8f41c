package handlers_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/gabriel/anime-stream-api/internal/cache"
	"github.com/gabriel/anime-stream-api/internal/config"
	apihttp "github.com/gabriel/anime-stream-api/internal/http"
	providerdefaults "github.com/gabriel/anime-stream-api/internal/providers/defaults"
	"github.com/gabriel/anime-stream-api/internal/resolver"
	"github.com/gabriel/anime-stream-api/internal/scraper"
)

// setupTestApp wires the full route surface against an httptest upstream
// standing in for the provider site. Handlers returning mux-unhandled
// paths see a plain 404 from the upstream.
func setupTestApp(t *testing.T, mux *http.ServeMux, withCache bool) (*fiber.App, *cache.Store) {
	t.Helper()

	upstream := httptest.NewServer(mux)
	t.Cleanup(upstream.Close)

	fetcher := scraper.NewFetcher(scraper.FetcherOptions{
		Timeout:     5 * time.Second,
		MaxRetries:  0,
		BaseURL:     upstream.URL,
		MinInterval: time.Millisecond,
	})
	registry, err := providerdefaults.NewRegistry(fetcher, "")
	if err != nil {
		t.Fatalf("build registry: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := scraper.NewService(fetcher, resolver.New(registry, 4, logger), logger)

	var store *cache.Store
	if withCache {
		store, err = cache.Open(filepath.Join(t.TempDir(), "cache.sqlite"))
		if err != nil {
			t.Fatalf("open cache: %v", err)
		}
		t.Cleanup(func() { _ = store.Close() })
	}

	cfg := config.Config{AppName: "test-app", CacheTTLMinutes: 60}
	app := apihttp.NewServer(cfg, store, service, registry)
	t.Cleanup(func() { _ = app.Shutdown() })

	return app, store
}

func doRequest(t *testing.T, app *fiber.App, path string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s: %v", path, err)
	}
	return res
}
