package models

import "time"

// AnimeSummary is the lightweight record produced by listing pages
// (search results, latest-anime rails). Immutable once constructed.
type AnimeSummary struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Poster   string `json:"poster,omitempty"`
	Type     string `json:"type,omitempty"`
	Synopsis string `json:"synopsis,omitempty"`
}

// AnimeDetail extends the summary identity with the full metadata of a
// detail page. Episodes are ordered by number ascending.
type AnimeDetail struct {
	ID       string       `json:"id"`
	Title    string       `json:"title"`
	Poster   string       `json:"poster,omitempty"`
	Type     string       `json:"type,omitempty"`
	Synopsis string       `json:"synopsis,omitempty"`
	Genres   []string     `json:"genres,omitempty"`
	Status   string       `json:"status,omitempty"`
	Episodes []EpisodeRef `json:"episodes"`
}

type EpisodeRef struct {
	AnimeID    string     `json:"animeId"`
	Number     int        `json:"number"`
	ReleasedAt *time.Time `json:"releasedAt,omitempty"`
}

// LatestEpisode pairs an episode reference with enough of its parent
// anime to render a listing entry without a second fetch.
type LatestEpisode struct {
	AnimeID    string `json:"animeId"`
	AnimeTitle string `json:"animeTitle"`
	Number     int    `json:"number"`
	Preview    string `json:"preview,omitempty"`
}

// VideoSource is one resolved playback option for an episode. Provider is
// a key from the provider registry, or "unknown" when no registered
// provider matched the embed; Embed then preserves the raw reference
// verbatim. Error marks a provider whose decoder failed — the entry is
// kept so one broken provider never hides the others.
type VideoSource struct {
	Provider string `json:"provider"`
	Lang     string `json:"lang,omitempty"`
	URL      string `json:"url,omitempty"`
	Quality  string `json:"quality,omitempty"`
	Embed    string `json:"embed,omitempty"`
	Error    bool   `json:"error,omitempty"`
}
