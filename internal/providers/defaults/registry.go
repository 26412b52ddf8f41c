package defaults

import (
	"fmt"

	"github.com/gabriel/anime-stream-api/internal/providers"
	"github.com/gabriel/anime-stream-api/internal/providers/native/mega"
	"github.com/gabriel/anime-stream-api/internal/providers/native/okru"
	"github.com/gabriel/anime-stream-api/internal/providers/native/streamtape"
	"github.com/gabriel/anime-stream-api/internal/providers/native/streamwish"
	"github.com/gabriel/anime-stream-api/internal/providers/native/yourupload"
	"github.com/gabriel/anime-stream-api/internal/providers/yamlprovider"
)

// NewRegistry builds the startup provider registry: the native decoders
// plus any YAML-declared providers found under yamlProvidersPath. YAML
// load failures come back as a non-nil error next to the usable registry.
func NewRegistry(fetcher providers.PageFetcher, yamlProvidersPath string) (*providers.Registry, error) {
	registry := providers.NewRegistry()
	_ = registry.Register(streamwish.NewProvider())
	_ = registry.Register(yourupload.NewProvider())
	_ = registry.Register(okru.NewProvider())
	_ = registry.Register(streamtape.NewProvider(fetcher))
	_ = registry.Register(mega.NewProvider())

	loaded, loadErr := yamlprovider.LoadFromDir(yamlProvidersPath)
	for _, provider := range loaded {
		if err := registry.Register(provider); err != nil {
			if loadErr == nil {
				loadErr = fmt.Errorf("register yaml provider %q: %w", provider.Key(), err)
			}
		}
	}

	return registry, loadErr
}
