package yourupload

import (
	"context"
	"fmt"
	"strings"

	"github.com/gabriel/anime-stream-api/internal/providers"
)

// YourUpload embeds ship a ready iframe URL; decoding only validates it.
type Provider struct{}

func NewProvider() *Provider { return &Provider{} }

func (p *Provider) Key() string  { return "yourupload" }
func (p *Provider) Name() string { return "YourUpload" }
func (p *Provider) Kind() string { return providers.KindNative }

func (p *Provider) Match(embed providers.Embed) bool {
	server := strings.ToLower(embed.Server)
	if server == "yourupload" || server == "yu" {
		return true
	}
	return strings.Contains(strings.ToLower(embed.Raw()), "yourupload.com")
}

func (p *Provider) Decode(_ context.Context, embed providers.Embed) (string, error) {
	raw := strings.TrimSpace(embed.Raw())
	if raw == "" {
		return "", fmt.Errorf("embed has no url")
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return "", fmt.Errorf("embed url is not absolute: %s", raw)
	}
	return raw, nil
}
