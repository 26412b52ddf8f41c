package handlers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/gabriel/anime-stream-api/internal/cache"
	"github.com/gabriel/anime-stream-api/internal/models"
	"github.com/gabriel/anime-stream-api/internal/scraper"
)

type AnimeHandler struct {
	service   *scraper.Service
	responder *responder
}

func NewAnimeHandler(service *scraper.Service, store *cache.Store, ttl time.Duration) *AnimeHandler {
	return &AnimeHandler{
		service:   service,
		responder: newResponder(store, ttl),
	}
}

func (h *AnimeHandler) Search(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "query parameter is required"})
	}

	return h.responder.serve(c, "search:"+strings.ToLower(query), func() (any, error) {
		results, err := h.service.Search(c.Context(), query)
		if err != nil {
			return nil, err
		}
		return fiber.Map{"results": results}, nil
	})
}

func (h *AnimeHandler) GetInfo(c *fiber.Ctx) error {
	animeID := strings.TrimSpace(c.Params("id"))
	if animeID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "anime id is required"})
	}

	return h.responder.serve(c, "anime:"+animeID, func() (any, error) {
		detail, err := h.service.GetAnimeInfo(c.Context(), animeID)
		if err != nil {
			return nil, err
		}
		return detail, nil
	})
}

func (h *AnimeHandler) GetVideoSources(c *fiber.Ctx) error {
	animeID := strings.TrimSpace(c.Params("id"))
	episode, err := strconv.Atoi(c.Params("number"))
	if err != nil || episode <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "episode number must be a positive integer"})
	}

	lang := strings.ToUpper(strings.TrimSpace(c.Query("lang")))
	key := fmt.Sprintf("sources:%s:%d:%s", animeID, episode, lang)

	return h.responder.serve(c, key, func() (any, error) {
		sources, err := h.service.GetVideoSources(c.Context(), animeID, episode)
		if err != nil {
			return nil, err
		}
		if lang != "" {
			sources = filterByLang(sources, lang)
		}
		return fiber.Map{"sources": sources}, nil
	})
}

func (h *AnimeHandler) GetLatestEpisodes(c *fiber.Ctx) error {
	return h.responder.serve(c, "latest:episodes", func() (any, error) {
		episodes, err := h.service.GetLatestEpisodes(c.Context())
		if err != nil {
			return nil, err
		}
		return fiber.Map{"episodes": episodes}, nil
	})
}

func (h *AnimeHandler) GetLatestAnimes(c *fiber.Ctx) error {
	return h.responder.serve(c, "latest:animes", func() (any, error) {
		animes, err := h.service.GetLatestAnimes(c.Context())
		if err != nil {
			return nil, err
		}
		return fiber.Map{"animes": animes}, nil
	})
}

// filterByLang keeps sources of one language group plus entries with no
// group at all (iframe-only embeds carry none).
func filterByLang(sources []models.VideoSource, lang string) []models.VideoSource {
	filtered := make([]models.VideoSource, 0, len(sources))
	for _, source := range sources {
		if source.Lang == "" || source.Lang == lang {
			filtered = append(filtered, source)
		}
	}
	return filtered
}
