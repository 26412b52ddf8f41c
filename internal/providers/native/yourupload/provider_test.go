package yourupload

import (
	"context"
	"testing"

	"github.com/gabriel/anime-stream-api/internal/providers"
)

func TestMatchAndDecode(t *testing.T) {
	p := NewProvider()

	if !p.Match(providers.Embed{Server: "yu"}) || !p.Match(providers.Embed{Server: "YourUpload"}) {
		t.Fatalf("expected yourupload markers to match")
	}
	if !p.Match(providers.Embed{URL: "https://www.yourupload.com/embed/abc"}) {
		t.Fatalf("expected host match")
	}
	if p.Match(providers.Embed{Server: "sw"}) {
		t.Fatalf("expected foreign marker not to match")
	}

	url, err := p.Decode(context.Background(), providers.Embed{Server: "yu", URL: "https://www.yourupload.com/embed/abc"})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if url != "https://www.yourupload.com/embed/abc" {
		t.Fatalf("unexpected url: %s", url)
	}

	if _, err := p.Decode(context.Background(), providers.Embed{Server: "yu", URL: "/embed/abc"}); err == nil {
		t.Fatalf("expected an error for a relative url")
	}
	if _, err := p.Decode(context.Background(), providers.Embed{Server: "yu"}); err == nil {
		t.Fatalf("expected an error for a missing url")
	}
}
