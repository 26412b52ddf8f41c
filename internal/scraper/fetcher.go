package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

// FetchError reports a failed page fetch. Kind distinguishes a missing
// page from a blocked request from a transient network fault so callers
// can pick between a user-facing 404 and a retryable 503.
type FetchError struct {
	Kind       Kind
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("fetch %s: %s (status %d)", e.URL, e.Kind, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

type FetcherOptions struct {
	Timeout     time.Duration
	MaxRetries  int
	BaseURL     string
	MinInterval time.Duration
}

// Fetcher retrieves raw page content with a bounded timeout and a small
// number of retries for transient failures. It keeps no state between
// calls beyond a politeness window toward the upstream site.
type Fetcher struct {
	httpClient *http.Client
	baseURL    string
	maxRetries int

	requestMu          sync.Mutex
	nextAllowedRequest time.Time
	minRequestInterval time.Duration
}

func NewFetcher(opts FetcherOptions) *Fetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = 12 * time.Second
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.MinInterval <= 0 {
		opts.MinInterval = 150 * time.Millisecond
	}
	return &Fetcher{
		httpClient:         &http.Client{Timeout: opts.Timeout},
		baseURL:            strings.TrimRight(opts.BaseURL, "/"),
		maxRetries:         opts.MaxRetries,
		minRequestInterval: opts.MinInterval,
	}
}

func (f *Fetcher) BaseURL() string { return f.baseURL }

// Fetch retrieves endpoint, retrying transient failures (network faults,
// timeouts, 429, 5xx) with backoff. Non-transient HTTP errors (404, 403)
// fail immediately with the matching kind.
func (f *Fetcher) Fetch(ctx context.Context, endpoint string) ([]byte, error) {
	attempts := f.maxRetries + 1

	var lastErr *FetchError
	for attempt := 0; attempt < attempts; attempt++ {
		if err := f.waitForRequestWindow(ctx); err != nil {
			return nil, &FetchError{Kind: KindNetwork, URL: endpoint, Err: err}
		}

		body, fetchErr := f.fetchOnce(ctx, endpoint)
		if fetchErr == nil {
			f.deferRequests(f.minRequestInterval)
			return body, nil
		}

		lastErr = fetchErr
		if !transient(fetchErr.Kind) {
			f.deferRequests(f.minRequestInterval)
			return nil, fetchErr
		}
		if ctx.Err() != nil {
			return nil, fetchErr
		}
		f.deferRequests(retryDelay(attempt))
	}

	return nil, lastErr
}

func (f *Fetcher) fetchOnce(ctx context.Context, endpoint string) ([]byte, *FetchError) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &FetchError{Kind: KindNetwork, URL: endpoint, Err: err}
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "es-ES,es;q=0.9,en;q=0.8")
	if f.baseURL != "" {
		req.Header.Set("Referer", f.baseURL+"/")
	}

	res, err := f.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Kind: classifyTransportError(err), URL: endpoint, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode >= 200 && res.StatusCode < 300 {
		rawBody, readErr := io.ReadAll(res.Body)
		if readErr != nil {
			return nil, &FetchError{Kind: KindNetwork, URL: endpoint, Err: readErr}
		}
		return rawBody, nil
	}

	fetchErr := &FetchError{URL: endpoint, StatusCode: res.StatusCode}
	switch {
	case res.StatusCode == http.StatusNotFound:
		fetchErr.Kind = KindNotFound
	case res.StatusCode == http.StatusForbidden, res.StatusCode == http.StatusTooManyRequests:
		fetchErr.Kind = KindBlocked
		fetchErr.Err = cooldownHint(res.Header.Get("Retry-After"))
	case res.StatusCode >= 500:
		fetchErr.Kind = KindNetwork
	default:
		fetchErr.Kind = KindNotFound
	}
	return nil, fetchErr
}

// Only pure network faults and timeouts are retried; any 4xx, including
// blocked/rate-limited responses, is final and left to the caller.
func transient(kind Kind) bool {
	return kind == KindNetwork || kind == KindTimeout
}

func classifyTransportError(err error) Kind {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}
	return KindNetwork
}

// cooldownHint preserves the upstream Retry-After as error context so
// operators can see how long the site asked us to back off.
type cooldownError struct {
	delay time.Duration
}

func (e *cooldownError) Error() string {
	return "upstream asked for a " + e.delay.String() + " cooldown"
}

func cooldownHint(header string) error {
	if header == "" {
		return nil
	}
	seconds, err := strconv.Atoi(strings.TrimSpace(header))
	if err != nil || seconds <= 0 {
		return nil
	}
	return &cooldownError{delay: time.Duration(seconds) * time.Second}
}

func retryDelay(attempt int) time.Duration {
	switch attempt {
	case 0:
		return 350 * time.Millisecond
	case 1:
		return 800 * time.Millisecond
	default:
		return 1500 * time.Millisecond
	}
}

func (f *Fetcher) waitForRequestWindow(ctx context.Context) error {
	for {
		f.requestMu.Lock()
		nextAllowed := f.nextAllowedRequest
		f.requestMu.Unlock()

		now := time.Now().UTC()
		if !nextAllowed.After(now) {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Until(nextAllowed)):
		}
	}
}

func (f *Fetcher) deferRequests(delay time.Duration) {
	if delay <= 0 {
		delay = f.minRequestInterval
	}

	next := time.Now().UTC().Add(delay)
	f.requestMu.Lock()
	if next.After(f.nextAllowedRequest) {
		f.nextAllowedRequest = next
	}
	f.requestMu.Unlock()
}
