package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/gabriel/anime-stream-api/internal/cache"
	"github.com/gabriel/anime-stream-api/internal/config"
	"github.com/gabriel/anime-stream-api/internal/http/handlers"
	"github.com/gabriel/anime-stream-api/internal/providers"
	"github.com/gabriel/anime-stream-api/internal/scraper"
)

// NewServer wires the route surface. store may be nil when the response
// cache is disabled; every other dependency is required.
func NewServer(cfg config.Config, store *cache.Store, service *scraper.Service, registry *providers.Registry) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: cfg.AppName,
	})

	app.Use(recover.New())

	ttl := time.Duration(cfg.CacheTTLMinutes) * time.Minute
	health := handlers.NewHealthHandler(store)
	anime := handlers.NewAnimeHandler(service, store, ttl)
	providerHandlers := handlers.NewProvidersHandler(registry)

	app.Get("/health", health.Check)
	app.Get("/v1/health", health.Check)

	v1 := app.Group("/v1")
	v1.Get("/search", anime.Search)
	v1.Get("/anime/:id", anime.GetInfo)
	v1.Get("/anime/:id/episodes/:number/sources", anime.GetVideoSources)
	v1.Get("/latest/episodes", anime.GetLatestEpisodes)
	v1.Get("/latest/animes", anime.GetLatestAnimes)
	v1.Get("/providers", providerHandlers.List)

	return app
}
