package handlers

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/gabriel/anime-stream-api/internal/scraper"
)

func TestStatusForError(t *testing.T) {
	cases := []struct {
		kind scraper.Kind
		want int
	}{
		{scraper.KindValidation, fiber.StatusBadRequest},
		{scraper.KindNotFound, fiber.StatusNotFound},
		{scraper.KindBlocked, fiber.StatusServiceUnavailable},
		{scraper.KindTimeout, fiber.StatusGatewayTimeout},
		{scraper.KindNetwork, fiber.StatusBadGateway},
		{scraper.KindParse, fiber.StatusBadGateway},
	}
	for _, tc := range cases {
		err := &scraper.Error{Kind: tc.kind, Op: "test", Err: fmt.Errorf("boom")}
		if got := statusForError(err); got != tc.want {
			t.Fatalf("statusForError(%s) = %d, want %d", tc.kind, got, tc.want)
		}
	}
}

func TestStatusForErrorUnknownDefaultsToBadGateway(t *testing.T) {
	// Unrecognized errors classify as network faults upstream of the
	// status mapping.
	if got := statusForError(fmt.Errorf("some infrastructure error")); got != fiber.StatusBadGateway {
		t.Fatalf("expected 502 for an unclassified error, got %d", got)
	}
}
