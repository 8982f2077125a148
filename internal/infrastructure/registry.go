package infrastructure

import (
	"strings"

	"github.com/tornado-product/fusion-media-provider/internal/domain"
)

// NewProvider creates a provider by name. Names are matched
// case-insensitively; an empty API key is rejected before any network
// use.
func NewProvider(name, apiKey string) (domain.Provider, error) {
	if apiKey == "" {
		return nil, domain.ErrAPIKeyMissing
	}

	switch strings.ToLower(name) {
	case "pixabay":
		return NewPixabayProvider(apiKey), nil
	case "pexels":
		return NewPexelsProvider(apiKey), nil
	default:
		return nil, &domain.UnknownProviderError{Name: name}
	}
}

// ConfiguredProviders builds every provider with an API key set, in
// fixed registration order: Pixabay, then Pexels. Registration order
// determines aggregated item ordering, so it must not vary per process.
func ConfiguredProviders(cfg domain.ProvidersConfig) ([]domain.Provider, error) {
	entries := []struct {
		name string
		key  string
	}{
		{"pixabay", cfg.Pixabay.APIKey},
		{"pexels", cfg.Pexels.APIKey},
	}

	var providers []domain.Provider
	for _, e := range entries {
		if e.key == "" {
			continue
		}
		provider, err := NewProvider(e.name, e.key)
		if err != nil {
			return nil, err
		}
		providers = append(providers, provider)
	}
	return providers, nil
}
