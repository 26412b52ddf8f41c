package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/gabriel/anime-stream-api/internal/cache"
)

type HealthHandler struct {
	store *cache.Store
}

func NewHealthHandler(store *cache.Store) *HealthHandler {
	return &HealthHandler{store: store}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	cacheState := "disabled"
	if h.store != nil {
		cacheState = "up"
		if err := h.store.Ping(); err != nil {
			cacheState = "down"
		}
	}

	return c.JSON(fiber.Map{
		"status": "ok",
		"cache":  cacheState,
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
