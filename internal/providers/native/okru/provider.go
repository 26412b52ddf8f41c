package okru

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/gabriel/anime-stream-api/internal/providers"
)

var videoIDPattern = regexp.MustCompile(`^\d+$`)
var embedIDPattern = regexp.MustCompile(`/videoembed/(\d+)`)

// ok.ru entries carry a numeric video id; the playable reference is the
// videoembed URL built from it.
type Provider struct{}

func NewProvider() *Provider { return &Provider{} }

func (p *Provider) Key() string  { return "okru" }
func (p *Provider) Name() string { return "Odnoklassniki" }
func (p *Provider) Kind() string { return providers.KindNative }

func (p *Provider) Match(embed providers.Embed) bool {
	server := strings.ToLower(embed.Server)
	if server == "okru" || server == "ok" {
		return true
	}
	return strings.Contains(strings.ToLower(embed.Raw()), "ok.ru")
}

func (p *Provider) Decode(_ context.Context, embed providers.Embed) (string, error) {
	if id := embedIDPattern.FindStringSubmatch(embed.URL); id != nil {
		return "https://ok.ru/videoembed/" + id[1], nil
	}

	code := strings.TrimSpace(embed.Code)
	if code == "" {
		return "", fmt.Errorf("embed has no video id")
	}
	if !videoIDPattern.MatchString(code) {
		return "", fmt.Errorf("video id is not numeric: %s", code)
	}
	return "https://ok.ru/videoembed/" + code, nil
}
