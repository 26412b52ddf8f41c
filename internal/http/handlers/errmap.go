package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gabriel/anime-stream-api/internal/scraper"
)

// statusForError translates core error kinds into HTTP statuses. The
// mapping lives here so the core never reasons about HTTP.
func statusForError(err error) int {
	switch scraper.KindOf(err) {
	case scraper.KindValidation:
		return fiber.StatusBadRequest
	case scraper.KindNotFound:
		return fiber.StatusNotFound
	case scraper.KindBlocked:
		return fiber.StatusServiceUnavailable
	case scraper.KindTimeout:
		return fiber.StatusGatewayTimeout
	case scraper.KindNetwork, scraper.KindParse:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

func respondError(c *fiber.Ctx, err error) error {
	return c.Status(statusForError(err)).JSON(fiber.Map{
		"message": err.Error(),
		"kind":    string(scraper.KindOf(err)),
	})
}
