package mega

import (
	"context"
	"fmt"
	"strings"

	"github.com/gabriel/anime-stream-api/internal/providers"
)

// Mega links arrive either as /embed/ URLs (playable as-is) or as /file/
// share links that map 1:1 onto the embed form.
type Provider struct{}

func NewProvider() *Provider { return &Provider{} }

func (p *Provider) Key() string  { return "mega" }
func (p *Provider) Name() string { return "MEGA" }
func (p *Provider) Kind() string { return providers.KindNative }

func (p *Provider) Match(embed providers.Embed) bool {
	if strings.EqualFold(embed.Server, "mega") {
		return true
	}
	return strings.Contains(strings.ToLower(embed.Raw()), "mega.nz")
}

func (p *Provider) Decode(_ context.Context, embed providers.Embed) (string, error) {
	raw := strings.TrimSpace(embed.Raw())
	if raw == "" {
		return "", fmt.Errorf("embed has no url")
	}
	if strings.Contains(raw, "/embed/") {
		return raw, nil
	}
	if strings.Contains(raw, "/file/") {
		return strings.Replace(raw, "/file/", "/embed/", 1), nil
	}
	return "", fmt.Errorf("unrecognized mega link shape: %s", raw)
}
