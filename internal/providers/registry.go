package providers

import (
	"fmt"
	"sort"
)

// Registry holds the known providers. It is built once at startup and
// passed explicitly into the resolver; registration after that point is
// a programming error, so no locking is needed on the read path.
type Registry struct {
	byKey   map[string]Provider
	ordered []Provider
}

type Descriptor struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Kind string `json:"kind"`
}

func NewRegistry() *Registry {
	return &Registry{byKey: map[string]Provider{}}
}

func (r *Registry) Register(provider Provider) error {
	if provider == nil {
		return fmt.Errorf("provider is nil")
	}

	key := provider.Key()
	if key == "" {
		return fmt.Errorf("provider key is required")
	}
	if _, exists := r.byKey[key]; exists {
		return fmt.Errorf("provider %q already registered", key)
	}

	r.byKey[key] = provider
	r.ordered = append(r.ordered, provider)
	return nil
}

func (r *Registry) Get(key string) (Provider, bool) {
	provider, ok := r.byKey[key]
	return provider, ok
}

// Resolve finds the provider whose marker matches the embed, in
// registration order. ok=false means the embed belongs to no known
// provider and should surface as "unknown" rather than being dropped.
func (r *Registry) Resolve(embed Embed) (Provider, bool) {
	for _, provider := range r.ordered {
		if provider.Match(embed) {
			return provider, true
		}
	}
	return nil, false
}

func (r *Registry) List() []Descriptor {
	items := make([]Descriptor, 0, len(r.ordered))
	for _, provider := range r.ordered {
		items = append(items, Descriptor{
			Key:  provider.Key(),
			Name: provider.Name(),
			Kind: provider.Kind(),
		})
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].Key < items[j].Key
	})

	return items
}
