package scraper

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gabriel/anime-stream-api/internal/providers"
)

// The episode page lists its players in a script global keyed by language
// group: var videos = {"SUB": [{server, title, code|url}, ...], ...};
// Some providers additionally (or only) appear as literal iframes.
var videosObjectPattern = regexp.MustCompile(`(?s)var\s+videos\s*=\s*(\{.*?\})\s*;`)

type videoEntry struct {
	Server string `json:"server"`
	Title  string `json:"title"`
	URL    string `json:"url"`
	Code   string `json:"code"`
	Format string `json:"format"`
}

// extractEmbeds lifts every player reference off an episode page in
// document order: script entries first (group order as written, not map
// order), then iframes the script did not already cover.
func extractEmbeds(doc *Document) []providers.Embed {
	embeds := extractScriptEmbeds(doc)

	seen := make(map[string]struct{}, len(embeds))
	for _, embed := range embeds {
		if embed.URL != "" {
			seen[embed.URL] = struct{}{}
		}
	}

	doc.Find("div.Video iframe").Each(func(_ int, frame *goquery.Selection) {
		src, ok := frame.Attr("src")
		src = strings.TrimSpace(src)
		if !ok || src == "" {
			return
		}
		if _, dup := seen[src]; dup {
			return
		}
		seen[src] = struct{}{}
		embeds = append(embeds, providers.Embed{
			Server: serverFromURL(src),
			URL:    src,
		})
	})

	return embeds
}

func extractScriptEmbeds(doc *Document) []providers.Embed {
	script := doc.InlineScript("var videos")
	if script == "" {
		return nil
	}
	objectMatch := videosObjectPattern.FindStringSubmatch(script)
	if objectMatch == nil {
		return nil
	}

	// json.Decoder token walk keeps the written key order; unmarshalling
	// into a map would randomize the language groups.
	decoder := json.NewDecoder(strings.NewReader(objectMatch[1]))
	if _, err := decoder.Token(); err != nil {
		return nil
	}

	var embeds []providers.Embed
	for decoder.More() {
		keyToken, err := decoder.Token()
		if err != nil {
			return embeds
		}
		lang, _ := keyToken.(string)

		var entries []videoEntry
		if err := decoder.Decode(&entries); err != nil {
			return embeds
		}
		for _, entry := range entries {
			server := strings.TrimSpace(entry.Server)
			url := strings.TrimSpace(entry.URL)
			code := strings.TrimSpace(entry.Code)
			if server == "" && url == "" && code == "" {
				continue
			}
			if server == "" {
				server = serverFromURL(url)
			}
			embeds = append(embeds, providers.Embed{
				Server:  server,
				Title:   strings.TrimSpace(entry.Title),
				Lang:    strings.ToUpper(strings.TrimSpace(lang)),
				URL:     url,
				Code:    code,
				Quality: strings.TrimSpace(entry.Format),
			})
		}
	}

	return embeds
}

// serverFromURL guesses a marker for iframe-only embeds from the host
// name ("https://www.yourupload.com/embed/x" -> "yourupload").
func serverFromURL(rawURL string) string {
	trimmed := strings.TrimPrefix(strings.TrimPrefix(rawURL, "https://"), "http://")
	host, _, _ := strings.Cut(trimmed, "/")
	host = strings.TrimPrefix(host, "www.")
	name, _, _ := strings.Cut(host, ".")
	return strings.ToLower(name)
}
