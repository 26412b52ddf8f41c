package streamtape

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/gabriel/anime-stream-api/internal/providers"
)

var (
	robotLinkPattern = regexp.MustCompile(`getElementById\('robotlink'\)\.innerHTML\s*=\s*'([^']+)'\s*\+\s*\('([^']+)'\)`)
	mp4Pattern       = regexp.MustCompile(`https?://[^\s<>"']+\.mp4[^\s<>"']*`)
	m3u8Pattern      = regexp.MustCompile(`https?://[^\s<>"']+\.m3u8[^\s<>"']*`)
)

// Streamtape is redirect-style: the page embed points at an intermediate
// player page, and the final link only exists inside that page's script.
// Decoding costs one extra fetch, done through the shared fetcher so it
// inherits the same retry/timeout policy as every page load.
type Provider struct {
	fetcher providers.PageFetcher
}

func NewProvider(fetcher providers.PageFetcher) *Provider {
	return &Provider{fetcher: fetcher}
}

func (p *Provider) Key() string  { return "streamtape" }
func (p *Provider) Name() string { return "Streamtape" }
func (p *Provider) Kind() string { return providers.KindNative }

func (p *Provider) Match(embed providers.Embed) bool {
	server := strings.ToLower(embed.Server)
	if server == "stape" || server == "streamtape" {
		return true
	}
	return strings.Contains(strings.ToLower(embed.Raw()), "streamtape.com")
}

func (p *Provider) Decode(ctx context.Context, embed providers.Embed) (string, error) {
	pageURL := strings.TrimSpace(embed.Raw())
	if pageURL == "" {
		return "", fmt.Errorf("embed has no url")
	}
	if !strings.HasPrefix(pageURL, "http://") && !strings.HasPrefix(pageURL, "https://") {
		return "", fmt.Errorf("embed url is not absolute: %s", pageURL)
	}

	body, err := p.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return "", fmt.Errorf("fetch player page: %w", err)
	}

	playable, found := extractPlayableURL(string(body))
	if !found {
		return "", fmt.Errorf("no playable link in player page")
	}
	return playable, nil
}

// extractPlayableURL tries the robotlink script split first (the page
// assembles the download URL from two halves, the second with a 4-char
// junk prefix), then falls back to any literal mp4/m3u8 URL.
func extractPlayableURL(body string) (string, bool) {
	if match := robotLinkPattern.FindStringSubmatch(body); match != nil {
		tail := match[2]
		if len(tail) > 4 {
			tail = tail[4:]
		}
		link := match[1] + tail
		if strings.HasPrefix(link, "//") {
			link = "https:" + link
		}
		return link, true
	}

	if link := mp4Pattern.FindString(body); link != "" {
		return link, true
	}
	if link := m3u8Pattern.FindString(body); link != "" {
		return link, true
	}
	return "", false
}
