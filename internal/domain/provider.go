package domain

import "context"

// Provider is the contract a media source must implement. Implementations
// perform exactly one upstream call per invocation; retries and caching
// are the caller's responsibility.
//
// A search with zero matches returns a SearchResult with empty Items and
// Total 0, never a nil result. Every MediaItem carries the adapter's
// Name() in its Provider field.
type Provider interface {
	// Name returns the stable identifier used for routing and for the
	// provider field stamped on returned items
	Name() string

	// SearchImages searches for images matching the query
	SearchImages(ctx context.Context, query string, limit, page int) (*SearchResult, error)

	// SearchVideos searches for videos matching the query
	SearchVideos(ctx context.Context, query string, limit, page int) (*SearchResult, error)

	// GetMedia resolves a single media item by provider-scoped id
	GetMedia(ctx context.Context, id string, mediaType MediaType) (*MediaItem, error)
}
