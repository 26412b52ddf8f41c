package streamwish

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/gabriel/anime-stream-api/internal/providers"
)

func TestMatch(t *testing.T) {
	p := NewProvider()

	if !p.Match(providers.Embed{Server: "sw"}) {
		t.Fatalf("expected sw marker to match")
	}
	if !p.Match(providers.Embed{Server: "StreamWish"}) {
		t.Fatalf("expected full marker to match case-insensitively")
	}
	if !p.Match(providers.Embed{URL: "https://streamwish.to/e/abc"}) {
		t.Fatalf("expected host match")
	}
	if p.Match(providers.Embed{Server: "yu"}) {
		t.Fatalf("expected foreign marker not to match")
	}
}

func TestDecodeBase64Payload(t *testing.T) {
	p := NewProvider()

	payload := base64.StdEncoding.EncodeToString([]byte("https://streamwish.to/e/abc"))
	url, err := p.Decode(context.Background(), providers.Embed{Server: "sw", Code: payload})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if url != "https://streamwish.to/e/abc" {
		t.Fatalf("unexpected url: %s", url)
	}

	rawPayload := base64.RawURLEncoding.EncodeToString([]byte("https://streamwish.to/e/xyz"))
	url, err = p.Decode(context.Background(), providers.Embed{Server: "sw", Code: rawPayload})
	if err != nil {
		t.Fatalf("decode raw-url alphabet: %v", err)
	}
	if url != "https://streamwish.to/e/xyz" {
		t.Fatalf("unexpected url: %s", url)
	}
}

func TestDecodePlainURLPassesThrough(t *testing.T) {
	p := NewProvider()

	url, err := p.Decode(context.Background(), providers.Embed{Server: "sw", URL: "https://streamwish.to/e/plain"})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if url != "https://streamwish.to/e/plain" {
		t.Fatalf("unexpected url: %s", url)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	p := NewProvider()

	if _, err := p.Decode(context.Background(), providers.Embed{Server: "sw"}); err == nil {
		t.Fatalf("expected an error for an empty payload")
	}
	notAURL := base64.StdEncoding.EncodeToString([]byte("hello world"))
	if _, err := p.Decode(context.Background(), providers.Embed{Server: "sw", Code: notAURL}); err == nil {
		t.Fatalf("expected an error for a non-url payload")
	}
}
