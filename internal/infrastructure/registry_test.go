package infrastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tornado-product/fusion-media-provider/internal/domain"
)

func TestNewProvider(t *testing.T) {
	provider, err := NewProvider("pixabay", "key")
	require.NoError(t, err)
	assert.Equal(t, "Pixabay", provider.Name())

	provider, err = NewProvider("PEXELS", "key")
	require.NoError(t, err)
	assert.Equal(t, "Pexels", provider.Name())
}

func TestNewProvider_EmptyAPIKey(t *testing.T) {
	_, err := NewProvider("pixabay", "")
	assert.ErrorIs(t, err, domain.ErrAPIKeyMissing)
}

func TestNewProvider_Unknown(t *testing.T) {
	_, err := NewProvider("shutterstock", "key")
	assert.True(t, domain.IsUnknownProvider(err))
}

func TestConfiguredProviders_FixedOrder(t *testing.T) {
	cfg := domain.ProvidersConfig{
		Pixabay: domain.ProviderConfig{APIKey: "pix"},
		Pexels:  domain.ProviderConfig{APIKey: "pex"},
	}

	for i := 0; i < 20; i++ {
		providers, err := ConfiguredProviders(cfg)
		require.NoError(t, err)
		require.Len(t, providers, 2)
		assert.Equal(t, "Pixabay", providers[0].Name())
		assert.Equal(t, "Pexels", providers[1].Name())
	}
}

func TestConfiguredProviders_SkipsMissingKeys(t *testing.T) {
	providers, err := ConfiguredProviders(domain.ProvidersConfig{
		Pexels: domain.ProviderConfig{APIKey: "pex"},
	})
	require.NoError(t, err)
	require.Len(t, providers, 1)
	assert.Equal(t, "Pexels", providers[0].Name())

	providers, err = ConfiguredProviders(domain.ProvidersConfig{})
	require.NoError(t, err)
	assert.Empty(t, providers)
}
