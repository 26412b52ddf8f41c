package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gabriel/anime-stream-api/internal/providers"
)

type ProvidersHandler struct {
	registry *providers.Registry
}

func NewProvidersHandler(registry *providers.Registry) *ProvidersHandler {
	return &ProvidersHandler{registry: registry}
}

func (h *ProvidersHandler) List(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"items": h.registry.List()})
}
