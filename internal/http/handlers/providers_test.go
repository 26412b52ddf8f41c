package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gabriel/anime-stream-api/internal/providers"
)

func TestProvidersEndpointListsRegisteredDecoders(t *testing.T) {
	app, _ := setupTestApp(t, http.NewServeMux(), false)

	res := doRequest(t, app, "/v1/providers")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var body struct {
		Items []providers.Descriptor `json:"items"`
	}
	decodeBody(t, res, &body)

	if len(body.Items) != 5 {
		t.Fatalf("expected the 5 native providers, got %d", len(body.Items))
	}
	for i := 1; i < len(body.Items); i++ {
		if body.Items[i-1].Key >= body.Items[i].Key {
			t.Fatalf("expected keys sorted ascending, got %+v", body.Items)
		}
	}

	found := map[string]bool{}
	for _, item := range body.Items {
		found[item.Key] = true
		if item.Kind != providers.KindNative {
			t.Fatalf("expected only native providers here: %+v", item)
		}
	}
	for _, key := range []string{"mega", "okru", "streamtape", "streamwish", "yourupload"} {
		if !found[key] {
			t.Fatalf("missing provider %s in %+v", key, body.Items)
		}
	}
}
