package scraper

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/gabriel/anime-stream-api/internal/models"
)

// Listing extraction walks the provider's list markup (search results,
// home-page rails). Page order is the site's own ranking and is kept
// as-is. Entries missing an identifier or title are dropped and counted;
// a partial listing is expected, not an error.

func extractSearch(doc *Document) ([]models.AnimeSummary, int) {
	return extractAnimeList(doc)
}

func extractLatestAnimes(doc *Document) ([]models.AnimeSummary, int) {
	return extractAnimeList(doc)
}

func extractAnimeList(doc *Document) ([]models.AnimeSummary, int) {
	var summaries []models.AnimeSummary
	dropped := 0

	doc.Find("ul.ListAnimes li article.Anime").Each(func(_ int, item *goquery.Selection) {
		href, _ := item.Find("a").First().Attr("href")
		summary := models.AnimeSummary{
			ID:    idFromHref(href),
			Title: collapseWhitespace(item.Find("h3.Title").First().Text()),
			Type:  collapseWhitespace(item.Find("span.Type").First().Text()),
		}
		if poster, ok := item.Find("figure img").First().Attr("src"); ok {
			summary.Poster = collapseWhitespace(poster)
		}
		summary.Synopsis = collapseWhitespace(item.Find("div.Description p").Last().Text())

		if summary.ID == "" || summary.Title == "" {
			dropped++
			return
		}
		summaries = append(summaries, summary)
	})

	return summaries, dropped
}

func extractLatestEpisodes(doc *Document) ([]models.LatestEpisode, int) {
	var episodes []models.LatestEpisode
	dropped := 0

	doc.Find("ul.ListEpisodios li a").Each(func(_ int, item *goquery.Selection) {
		href, _ := item.Attr("href")
		animeID, number, ok := episodeRefFromHref(href)
		entry := models.LatestEpisode{
			AnimeID:    animeID,
			AnimeTitle: collapseWhitespace(item.Find("strong.Title").First().Text()),
			Number:     number,
		}
		if preview, found := item.Find("span.Image img").First().Attr("src"); found {
			entry.Preview = collapseWhitespace(preview)
		}

		if !ok || entry.AnimeTitle == "" {
			dropped++
			return
		}
		episodes = append(episodes, entry)
	})

	return episodes, dropped
}
