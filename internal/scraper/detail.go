package scraper

import (
	"regexp"
	"sort"
	"strconv"

	"github.com/gabriel/anime-stream-api/internal/models"
)

// The detail page carries its episode index as a script global rather
// than markup: var episodes = [[<number>, <internal id>], ...];
var (
	episodesArrayPattern = regexp.MustCompile(`(?s)var\s+episodes\s*=\s*\[(.*?)\]\s*;`)
	episodePairPattern   = regexp.MustCompile(`\[\s*(\d+)\s*,`)
)

// extractDetail builds the full metadata for animeID from its detail
// page. A page with no title is the site's error/redirect page, reported
// as NotFound; absent optional fields degrade to zero values instead.
func extractDetail(doc *Document, animeID string) (models.AnimeDetail, error) {
	title := doc.Text("div.Ficha h1.Title")
	if title == "" {
		title = doc.Text("h1.Title")
	}
	if title == "" {
		return models.AnimeDetail{}, newError(KindNotFound, "detail", errMissingAnime(animeID))
	}

	detail := models.AnimeDetail{
		ID:       animeID,
		Title:    title,
		Poster:   doc.Attr("div.AnimeCover figure img", "src"),
		Type:     doc.Text("span.Type"),
		Synopsis: doc.Text("div.Description p"),
		Status:   doc.Text("p.AnmStt span"),
		Genres:   dedupeGenres(doc.EachText("nav.Nav-Genres a")),
		Episodes: extractEpisodeIndex(doc, animeID),
	}
	return detail, nil
}

// extractEpisodeIndex parses the episode script global. The site lists
// newest first; output is number ascending with duplicates collapsed.
func extractEpisodeIndex(doc *Document, animeID string) []models.EpisodeRef {
	script := doc.InlineScript("var episodes")
	if script == "" {
		return []models.EpisodeRef{}
	}
	arrayMatch := episodesArrayPattern.FindStringSubmatch(script)
	if arrayMatch == nil {
		return []models.EpisodeRef{}
	}

	seen := map[int]struct{}{}
	episodes := make([]models.EpisodeRef, 0)
	for _, pair := range episodePairPattern.FindAllStringSubmatch(arrayMatch[1], -1) {
		number, err := strconv.Atoi(pair[1])
		if err != nil || number <= 0 {
			continue
		}
		if _, dup := seen[number]; dup {
			continue
		}
		seen[number] = struct{}{}
		episodes = append(episodes, models.EpisodeRef{AnimeID: animeID, Number: number})
	}

	sort.Slice(episodes, func(i, j int) bool {
		return episodes[i].Number < episodes[j].Number
	})
	return episodes
}

type missingAnimeError struct {
	animeID string
}

func (e *missingAnimeError) Error() string {
	return "anime " + e.animeID + " does not exist upstream"
}

func errMissingAnime(animeID string) error {
	return &missingAnimeError{animeID: animeID}
}
