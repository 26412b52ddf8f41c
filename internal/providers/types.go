package providers

import "context"

const (
	KindNative = "native"
	KindYAML   = "yaml"
)

// Embed is one player reference lifted from an episode page, before any
// decoding. Server is the marker string the page uses to identify the
// hosting provider; exactly one of URL/Code is usually set — URL for
// iframe-style embeds, Code for opaque encoded payloads.
type Embed struct {
	Server  string `json:"server"`
	Title   string `json:"title,omitempty"`
	Lang    string `json:"lang,omitempty"`
	URL     string `json:"url,omitempty"`
	Code    string `json:"code,omitempty"`
	Quality string `json:"quality,omitempty"`
}

// Raw returns whichever reference the page supplied, preserved verbatim.
func (e Embed) Raw() string {
	if e.URL != "" {
		return e.URL
	}
	return e.Code
}

// PageFetcher is the one capability redirect-style providers need: a
// secondary fetch with the same retry/timeout policy as every other page
// load.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Provider decodes one hosting provider's embed format to a canonical
// playable URL. Match decides whether an embed belongs to this provider;
// Decode must be safe to call concurrently.
type Provider interface {
	Key() string
	Name() string
	Kind() string
	Match(embed Embed) bool
	Decode(ctx context.Context, embed Embed) (string, error)
}
