package streamwish

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/gabriel/anime-stream-api/internal/providers"
)

// StreamWish entries carry the player URL base64-encoded in the code
// field. The site flips between standard and URL-safe alphabets, so both
// are tried before giving up.
type Provider struct{}

func NewProvider() *Provider { return &Provider{} }

func (p *Provider) Key() string  { return "streamwish" }
func (p *Provider) Name() string { return "StreamWish" }
func (p *Provider) Kind() string { return providers.KindNative }

func (p *Provider) Match(embed providers.Embed) bool {
	server := strings.ToLower(embed.Server)
	if server == "sw" || server == "streamwish" {
		return true
	}
	return strings.Contains(strings.ToLower(embed.URL), "streamwish")
}

func (p *Provider) Decode(_ context.Context, embed providers.Embed) (string, error) {
	// Pages occasionally ship the plain URL instead of a payload.
	if url := strings.TrimSpace(embed.URL); strings.HasPrefix(url, "https://") || strings.HasPrefix(url, "http://") {
		return url, nil
	}

	payload := strings.TrimSpace(embed.Code)
	if payload == "" {
		return "", fmt.Errorf("embed has no payload")
	}

	decoded, err := decodeBase64(payload)
	if err != nil {
		return "", fmt.Errorf("decode payload: %w", err)
	}
	if !strings.HasPrefix(decoded, "http://") && !strings.HasPrefix(decoded, "https://") {
		return "", fmt.Errorf("decoded payload is not a url")
	}
	return decoded, nil
}

func decodeBase64(payload string) (string, error) {
	for _, encoding := range []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	} {
		decoded, err := encoding.DecodeString(payload)
		if err == nil {
			return string(decoded), nil
		}
	}
	return "", fmt.Errorf("payload is not base64")
}
