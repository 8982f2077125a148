package app

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/tornado-product/fusion-media-provider/internal/domain"
)

// Aggregator fans one logical search out to every registered provider
// and merges the per-provider results. The provider list is append-only
// and read-only once searches are in flight, so no locking is needed
// around it.
type Aggregator struct {
	providers []domain.Provider
	logger    *zap.Logger
}

// NewAggregator creates a new aggregator
func NewAggregator(logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{logger: logger}
}

// Register appends a provider. Registration order determines item
// ordering in aggregated results and is the tie-break for name lookups
// when two providers share a name (first match wins).
func (a *Aggregator) Register(provider domain.Provider) {
	a.providers = append(a.providers, provider)
}

// Providers returns the registered providers in registration order
func (a *Aggregator) Providers() []domain.Provider {
	return a.providers
}

// Search dispatches the query to every registered provider concurrently
// and merges the results once all calls have settled. A failing provider
// is logged and omitted; only when every provider fails does the call
// fail with ErrAllProvidersFailed. With no providers registered it fails
// immediately with ErrNoProviders, making no network calls.
//
// The aggregate TotalPages is the sum of each provider's total_pages —
// the page count when paginating each provider independently, not the
// page count of the merged item set.
func (a *Aggregator) Search(ctx context.Context, params domain.SearchParams) (*domain.AggregatedSearchResult, error) {
	if len(a.providers) == 0 {
		return nil, domain.ErrNoProviders
	}

	results := make([]*domain.SearchResult, len(a.providers))
	errs := make([]error, len(a.providers))

	var wg sync.WaitGroup
	for i, provider := range a.providers {
		wg.Add(1)
		go func(i int, provider domain.Provider) {
			defer wg.Done()
			results[i], errs[i] = dispatch(ctx, provider, params)
		}(i, provider)
	}
	wg.Wait()

	agg := &domain.AggregatedSearchResult{
		Provider: "all",
		Page:     params.Page,
		PerPage:  params.Limit,
	}

	for i, res := range results {
		if errs[i] != nil {
			a.logger.Warn("provider search failed",
				zap.String("provider", a.providers[i].Name()),
				zap.String("query", params.Query),
				zap.Error(errs[i]))
			continue
		}

		if len(agg.ProviderResults) == 0 {
			agg.Provider = res.Provider
		}
		agg.Total += res.Total
		agg.TotalHits += res.TotalHits
		agg.TotalPages += res.TotalPages
		agg.Items = append(agg.Items, res.Items...)
		agg.ProviderResults = append(agg.ProviderResults, *res)
	}

	if len(agg.ProviderResults) == 0 {
		return nil, domain.ErrAllProvidersFailed
	}

	return agg, nil
}

// SearchFromProvider routes the query to a single provider by name.
// Matching is case-insensitive. The provider's own error is returned
// verbatim.
func (a *Aggregator) SearchFromProvider(ctx context.Context, name string, params domain.SearchParams) (*domain.SearchResult, error) {
	provider := a.lookup(name)
	if provider == nil {
		return nil, &domain.UnknownProviderError{Name: name}
	}
	return dispatch(ctx, provider, params)
}

// GetMedia resolves an id by asking each provider in registration order.
// The first provider that resolves the id wins; if none do, the call
// fails with a NotFoundError.
func (a *Aggregator) GetMedia(ctx context.Context, id string, mediaType domain.MediaType) (*domain.MediaItem, error) {
	for _, provider := range a.providers {
		item, err := provider.GetMedia(ctx, id, mediaType)
		if err == nil {
			return item, nil
		}
		a.logger.Debug("provider lookup missed",
			zap.String("provider", provider.Name()),
			zap.String("id", id),
			zap.Error(err))
	}
	return nil, &domain.NotFoundError{ID: id, MediaType: mediaType}
}

// GetMediaFromProvider resolves an id through a single provider by name.
// Matching is case-insensitive.
func (a *Aggregator) GetMediaFromProvider(ctx context.Context, name, id string, mediaType domain.MediaType) (*domain.MediaItem, error) {
	provider := a.lookup(name)
	if provider == nil {
		return nil, &domain.UnknownProviderError{Name: name}
	}
	return provider.GetMedia(ctx, id, mediaType)
}

// lookup finds the first registered provider with a matching name
func (a *Aggregator) lookup(name string) domain.Provider {
	for _, provider := range a.providers {
		if strings.EqualFold(provider.Name(), name) {
			return provider
		}
	}
	return nil
}

// dispatch selects the search operation by media type
func dispatch(ctx context.Context, provider domain.Provider, params domain.SearchParams) (*domain.SearchResult, error) {
	if params.MediaType == domain.MediaTypeVideo {
		return provider.SearchVideos(ctx, params.Query, params.Limit, params.Page)
	}
	return provider.SearchImages(ctx, params.Query, params.Limit, params.Page)
}
