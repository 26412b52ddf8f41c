package streamtape

import (
	"context"
	"fmt"
	"testing"

	"github.com/gabriel/anime-stream-api/internal/providers"
)

type fakeFetcher struct {
	body []byte
	err  error
	urls []string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	f.urls = append(f.urls, url)
	return f.body, f.err
}

func TestMatch(t *testing.T) {
	p := NewProvider(&fakeFetcher{})

	if !p.Match(providers.Embed{Server: "stape"}) {
		t.Fatalf("expected stape marker to match")
	}
	if !p.Match(providers.Embed{URL: "https://streamtape.com/e/abc"}) {
		t.Fatalf("expected host match")
	}
	if p.Match(providers.Embed{Server: "okru"}) {
		t.Fatalf("expected foreign marker not to match")
	}
}

func TestDecodeRobotLink(t *testing.T) {
	playerPage := `<html><body>
<div id="robotlink"></div>
<script>
document.getElementById('robotlink').innerHTML = '//streamtape.com/get_video?id=abc' + ('xcdf&token=secret');
</script>
</body></html>`

	fetcher := &fakeFetcher{body: []byte(playerPage)}
	p := NewProvider(fetcher)

	url, err := p.Decode(context.Background(), providers.Embed{Server: "stape", URL: "https://streamtape.com/e/abc"})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if url != "https://streamtape.com/get_video?id=abc&token=secret" {
		t.Fatalf("unexpected url: %s", url)
	}
	if len(fetcher.urls) != 1 || fetcher.urls[0] != "https://streamtape.com/e/abc" {
		t.Fatalf("expected one player-page fetch, got %v", fetcher.urls)
	}
}

func TestDecodeFallsBackToLiteralMediaURL(t *testing.T) {
	playerPage := `<html><body>
<video src="https://cdn.streamtape.com/v/abc/video.mp4?expiry=123"></video>
</body></html>`

	p := NewProvider(&fakeFetcher{body: []byte(playerPage)})

	url, err := p.Decode(context.Background(), providers.Embed{Server: "stape", URL: "https://streamtape.com/e/abc"})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if url != "https://cdn.streamtape.com/v/abc/video.mp4?expiry=123" {
		t.Fatalf("unexpected url: %s", url)
	}
}

func TestDecodeErrors(t *testing.T) {
	p := NewProvider(&fakeFetcher{err: fmt.Errorf("upstream down")})
	if _, err := p.Decode(context.Background(), providers.Embed{Server: "stape", URL: "https://streamtape.com/e/abc"}); err == nil {
		t.Fatalf("expected the fetch error to surface")
	}

	p = NewProvider(&fakeFetcher{body: []byte("<html><body>nothing here</body></html>")})
	if _, err := p.Decode(context.Background(), providers.Embed{Server: "stape", URL: "https://streamtape.com/e/abc"}); err == nil {
		t.Fatalf("expected an error when no playable link exists")
	}

	p = NewProvider(&fakeFetcher{})
	if _, err := p.Decode(context.Background(), providers.Embed{Server: "stape", URL: "not-a-url"}); err == nil {
		t.Fatalf("expected an error for a relative embed url")
	}
	if _, err := p.Decode(context.Background(), providers.Embed{Server: "stape"}); err == nil {
		t.Fatalf("expected an error for an empty embed")
	}
}
