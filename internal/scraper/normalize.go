package scraper

import (
	"net/url"
	"path"
	"strings"
)

// Normalization is the last step before a record crosses the core
// boundary: identifiers are derived deterministically from the provider's
// slug, text fields are trimmed, and records missing required fields are
// dropped and counted rather than emitted half-empty.

// idFromSlug derives the stable public identifier for a provider slug.
// Same slug in, same identifier out — callers may cache by it.
func idFromSlug(slug string) string {
	trimmed := strings.Trim(strings.TrimSpace(slug), "/")
	if trimmed == "" {
		return ""
	}
	trimmed = strings.TrimPrefix(trimmed, "anime/")
	return strings.ToLower(trimmed)
}

// idFromHref extracts the anime identifier from a detail-page link
// (absolute or relative /anime/<slug>).
func idFromHref(href string) string {
	trimmed := strings.TrimSpace(href)
	if trimmed == "" {
		return ""
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return ""
	}
	segments := strings.Split(strings.Trim(path.Clean(parsed.Path), "/"), "/")
	if len(segments) < 2 || segments[0] != "anime" {
		return ""
	}
	return idFromSlug(segments[1])
}

// episodeRefFromHref splits a watch link (/ver/<slug>-<n>) into anime id
// and episode number. Returns ok=false when the link has another shape.
func episodeRefFromHref(href string) (animeID string, number int, ok bool) {
	trimmed := strings.TrimSpace(href)
	if trimmed == "" {
		return "", 0, false
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", 0, false
	}
	segments := strings.Split(strings.Trim(path.Clean(parsed.Path), "/"), "/")
	if len(segments) < 2 || segments[0] != "ver" {
		return "", 0, false
	}

	slug := segments[1]
	dash := strings.LastIndex(slug, "-")
	if dash <= 0 || dash == len(slug)-1 {
		return "", 0, false
	}
	number = parsePositiveInt(slug[dash+1:])
	if number <= 0 {
		return "", 0, false
	}
	animeID = idFromSlug(slug[:dash])
	if animeID == "" {
		return "", 0, false
	}
	return animeID, number, true
}

func parsePositiveInt(raw string) int {
	n := 0
	for _, r := range raw {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
		if n > 1_000_000 {
			return 0
		}
	}
	return n
}

// dedupeGenres trims, lowercases for comparison, and keeps first-seen
// casing. Genre sets are unordered upstream; output keeps page order for
// stability.
func dedupeGenres(raw []string) []string {
	if len(raw) == 0 {
		return nil
	}
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, genre := range raw {
		trimmed := strings.TrimSpace(genre)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}
