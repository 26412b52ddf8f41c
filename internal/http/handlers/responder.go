package handlers

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/gabriel/anime-stream-api/internal/cache"
)

// responder wraps the response cache shared by the scraping handlers.
// Cache trouble is never a request failure: a broken read falls through
// to the live pipeline, a broken write only logs.
type responder struct {
	store *cache.Store
	ttl   time.Duration
}

func newResponder(store *cache.Store, ttl time.Duration) *responder {
	return &responder{store: store, ttl: ttl}
}

// serve answers from the cache when possible, otherwise runs load and
// caches the successful payload. Errors from load are never cached.
func (r *responder) serve(c *fiber.Ctx, key string, load func() (any, error)) error {
	if r.store != nil {
		payload, hit, err := r.store.Get(key)
		if err != nil {
			slog.Warn("cache read failed", "key", key, "error", err)
		} else if hit {
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.Send(payload)
		}
	}

	result, err := load()
	if err != nil {
		return respondError(c, err)
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to encode response"})
	}

	if r.store != nil {
		if err := r.store.Set(key, payload, r.ttl); err != nil {
			slog.Warn("cache write failed", "key", key, "error", err)
		}
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(payload)
}
