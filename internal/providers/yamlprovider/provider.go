package yamlprovider

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/gabriel/anime-stream-api/internal/providers"
)

type Provider struct {
	config Config
}

func NewProvider(cfg Config) (*Provider, error) {
	if err := cfg.normalizeAndValidate(); err != nil {
		return nil, err
	}
	return &Provider{config: cfg}, nil
}

func (p *Provider) Key() string  { return p.config.Key }
func (p *Provider) Name() string { return p.config.Name }
func (p *Provider) Kind() string { return providers.KindYAML }

func (p *Provider) Match(embed providers.Embed) bool {
	server := strings.ToLower(strings.TrimSpace(embed.Server))
	for _, marker := range p.config.Markers {
		if server == marker {
			return true
		}
	}

	raw := strings.ToLower(embed.Raw())
	for _, fragment := range p.config.HostFragments {
		if strings.Contains(raw, fragment) {
			return true
		}
	}
	return false
}

func (p *Provider) Decode(_ context.Context, embed providers.Embed) (string, error) {
	switch p.config.Decode.Mode {
	case ModeDirect:
		url := strings.TrimSpace(embed.Raw())
		if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
			return "", fmt.Errorf("embed url is not absolute")
		}
		return url, nil

	case ModeBase64:
		payload := strings.TrimSpace(embed.Code)
		if payload == "" {
			return "", fmt.Errorf("embed has no payload")
		}
		decoded, err := decodeAnyBase64(payload)
		if err != nil {
			return "", err
		}
		if !strings.HasPrefix(decoded, "http://") && !strings.HasPrefix(decoded, "https://") {
			return "", fmt.Errorf("decoded payload is not a url")
		}
		return decoded, nil

	case ModeTemplate:
		code := strings.TrimSpace(embed.Code)
		if code == "" {
			return "", fmt.Errorf("embed has no code for template")
		}
		return strings.ReplaceAll(p.config.Decode.URLTemplate, "{code}", code), nil
	}

	return "", fmt.Errorf("unsupported decode mode %q", p.config.Decode.Mode)
}

func decodeAnyBase64(payload string) (string, error) {
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
