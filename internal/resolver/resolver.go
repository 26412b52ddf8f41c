package resolver

import (
	"context"
	"log/slog"
	"sync"

	"github.com/gabriel/anime-stream-api/internal/models"
	"github.com/gabriel/anime-stream-api/internal/providers"
)

// UnknownProvider marks a source whose embed matched no registered
// provider. The raw reference is preserved so callers keep a fallback.
const UnknownProvider = "unknown"

const defaultWorkers = 4

// Resolver turns the embeds of an episode page into VideoSources by
// dispatching each to its provider's decoder. One provider's failure
// never suppresses the others: a failed decode yields an error-flagged
// entry in place.
type Resolver struct {
	registry *providers.Registry
	workers  int
	logger   *slog.Logger
}

func New(registry *providers.Registry, workers int, logger *slog.Logger) *Resolver {
	if workers <= 0 {
		workers = defaultWorkers
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{registry: registry, workers: workers, logger: logger}
}

// Resolve decodes every embed, up to r.workers concurrently. Results come
// back in embed (document) order regardless of decode timing. Zero embeds
// resolve to an empty slice, not an error.
func (r *Resolver) Resolve(ctx context.Context, embeds []providers.Embed) []models.VideoSource {
	sources := make([]models.VideoSource, len(embeds))
	if len(embeds) == 0 {
		return sources
	}

	sem := make(chan struct{}, r.workers)
	var wg sync.WaitGroup

	for i, embed := range embeds {
		wg.Add(1)
		go func(i int, embed providers.Embed) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			sources[i] = r.resolveOne(ctx, embed)
		}(i, embed)
	}
	wg.Wait()

	return sources
}

func (r *Resolver) resolveOne(ctx context.Context, embed providers.Embed) models.VideoSource {
	provider, ok := r.registry.Resolve(embed)
	if !ok {
		return models.VideoSource{
			Provider: UnknownProvider,
			Lang:     embed.Lang,
			Quality:  embed.Quality,
			Embed:    embed.Raw(),
		}
	}

	playable, err := provider.Decode(ctx, embed)
	if err != nil {
		r.logger.Warn("provider decode failed",
			"provider", provider.Key(), "server", embed.Server, "error", err)
		return models.VideoSource{
			Provider: provider.Key(),
			Lang:     embed.Lang,
			Quality:  embed.Quality,
			Embed:    embed.Raw(),
			Error:    true,
		}
	}

	return models.VideoSource{
		Provider: provider.Key(),
		Lang:     embed.Lang,
		URL:      playable,
		Quality:  embed.Quality,
		Embed:    embed.Raw(),
	}
}
