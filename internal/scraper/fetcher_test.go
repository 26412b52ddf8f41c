package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestFetcher(baseURL string, retries int) *Fetcher {
	return NewFetcher(FetcherOptions{
		Timeout:     5 * time.Second,
		MaxRetries:  retries,
		BaseURL:     baseURL,
		MinInterval: time.Millisecond,
	})
}

func TestFetchRetriesTransientFailures(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) <= 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer server.Close()

	fetcher := newTestFetcher(server.URL, 3)
	body, err := fetcher.Fetch(context.Background(), server.URL+"/browse")
	if err != nil {
		t.Fatalf("fetch after transient failures: %v", err)
	}
	if len(body) == 0 {
		t.Fatalf("expected a body on the successful attempt")
	}
	if got := atomic.LoadInt32(&calls); got != 4 {
		t.Fatalf("expected 4 attempts, got %d", got)
	}
}

func TestFetchExhaustsRetries(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	fetcher := newTestFetcher(server.URL, 1)
	_, err := fetcher.Fetch(context.Background(), server.URL+"/")
	if err == nil {
		t.Fatalf("expected an error after exhausting retries")
	}
	if kind := KindOf(err); kind != KindNetwork {
		t.Fatalf("expected network kind, got %s", kind)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("expected 2 attempts with one retry, got %d", got)
	}
}

func TestFetchDoesNotRetryNotFound(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	fetcher := newTestFetcher(server.URL, 3)
	_, err := fetcher.Fetch(context.Background(), server.URL+"/anime/missing")
	if err == nil {
		t.Fatalf("expected an error for a 404")
	}
	if kind := KindOf(err); kind != KindNotFound {
		t.Fatalf("expected not_found kind, got %s", kind)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected a single attempt for a 404, got %d", got)
	}
}

func TestFetchDoesNotRetryBlocked(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Retry-After", "120")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	fetcher := newTestFetcher(server.URL, 3)
	_, err := fetcher.Fetch(context.Background(), server.URL+"/browse")
	if err == nil {
		t.Fatalf("expected an error for a 429")
	}
	if kind := KindOf(err); kind != KindBlocked {
		t.Fatalf("expected blocked kind, got %s", kind)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected a single attempt for a blocked response, got %d", got)
	}
}

func TestFetchSendsBrowserHeaders(t *testing.T) {
	var gotUA, gotReferer string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotReferer = r.Header.Get("Referer")
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	fetcher := newTestFetcher(server.URL, 0)
	if _, err := fetcher.Fetch(context.Background(), server.URL+"/"); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if gotUA != userAgent {
		t.Fatalf("unexpected user agent: %s", gotUA)
	}
	if gotReferer != server.URL+"/" {
		t.Fatalf("unexpected referer: %s", gotReferer)
	}
}

func TestFetchHonorsCancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fetcher := newTestFetcher(server.URL, 3)
	start := time.Now()
	_, err := fetcher.Fetch(ctx, server.URL+"/")
	if err == nil {
		t.Fatalf("expected an error with a cancelled context")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("cancelled fetch should not sit through retry backoff, took %s", elapsed)
	}
}
