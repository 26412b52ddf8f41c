package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/gabriel/anime-stream-api/internal/models"
	"github.com/gabriel/anime-stream-api/internal/providers"
	"github.com/gabriel/anime-stream-api/internal/resolver"
)

// Service is the core surface the HTTP layer consumes. It is stateless
// between requests; concurrent calls need no locking.
type Service struct {
	fetcher  *Fetcher
	resolver *resolver.Resolver
	logger   *slog.Logger
}

func NewService(fetcher *Fetcher, res *resolver.Resolver, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{fetcher: fetcher, resolver: res, logger: logger}
}

// Search returns the summaries for a query, page order preserved.
// Empty or whitespace-only queries are rejected before any fetch.
func (s *Service) Search(ctx context.Context, query string) ([]models.AnimeSummary, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, validationErr("search", "query must not be empty")
	}

	doc, err := s.fetchDocument(ctx, s.fetcher.BaseURL()+"/browse?q="+url.QueryEscape(trimmed))
	if err != nil {
		return nil, err
	}

	summaries, dropped := extractSearch(doc)
	if dropped > 0 {
		s.logger.Debug("search entries dropped", "query", trimmed, "dropped", dropped)
	}
	if summaries == nil {
		summaries = []models.AnimeSummary{}
	}
	return summaries, nil
}

// GetAnimeInfo returns the full metadata for animeID, episode index
// ascending. A page that redirects to the site's error page reports
// NotFound, not a parse failure.
func (s *Service) GetAnimeInfo(ctx context.Context, animeID string) (models.AnimeDetail, error) {
	id := idFromSlug(animeID)
	if id == "" {
		return models.AnimeDetail{}, validationErr("anime_info", "anime id must not be empty")
	}

	doc, err := s.fetchDocument(ctx, s.fetcher.BaseURL()+"/anime/"+url.PathEscape(id))
	if err != nil {
		return models.AnimeDetail{}, err
	}

	return extractDetail(doc, id)
}

// GetVideoSources resolves every provider embed on the episode page, in
// page order. Individual provider failures surface as error-flagged
// entries; only a failure of the episode page itself fails the call.
func (s *Service) GetVideoSources(ctx context.Context, animeID string, episode int) ([]models.VideoSource, error) {
	id := idFromSlug(animeID)
	if id == "" {
		return nil, validationErr("video_sources", "anime id must not be empty")
	}
	if episode <= 0 {
		return nil, validationErr("video_sources", "episode number must be positive, got %d", episode)
	}

	doc, err := s.fetchDocument(ctx, fmt.Sprintf("%s/ver/%s-%d", s.fetcher.BaseURL(), url.PathEscape(id), episode))
	if err != nil {
		return nil, err
	}

	embeds := extractEmbeds(doc)
	return s.resolver.Resolve(ctx, embeds), nil
}

func (s *Service) GetLatestEpisodes(ctx context.Context) ([]models.LatestEpisode, error) {
	doc, err := s.fetchDocument(ctx, s.fetcher.BaseURL()+"/")
	if err != nil {
		return nil, err
	}

	episodes, dropped := extractLatestEpisodes(doc)
	if dropped > 0 {
		s.logger.Debug("latest-episode entries dropped", "dropped", dropped)
	}
	if episodes == nil {
		episodes = []models.LatestEpisode{}
	}
	return episodes, nil
}

func (s *Service) GetLatestAnimes(ctx context.Context) ([]models.AnimeSummary, error) {
	doc, err := s.fetchDocument(ctx, s.fetcher.BaseURL()+"/")
	if err != nil {
		return nil, err
	}

	summaries, dropped := extractLatestAnimes(doc)
	if dropped > 0 {
		s.logger.Debug("latest-anime entries dropped", "dropped", dropped)
	}
	if summaries == nil {
		summaries = []models.AnimeSummary{}
	}
	return summaries, nil
}

func (s *Service) fetchDocument(ctx context.Context, endpoint string) (*Document, error) {
	raw, err := s.fetcher.Fetch(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	return ParseDocument(raw)
}

// Fetch lets the service's fetcher double as the PageFetcher used by
// redirect-style providers for their secondary loads.
var _ providers.PageFetcher = (*Fetcher)(nil)
