package domain

// SearchParams holds the parameters for one logical search. Values are
// plain; the fluent setters operate on a copy so a fully-formed params
// value can be built in one chain.
type SearchParams struct {
	Query     string    `json:"query"`
	Limit     int       `json:"limit"`
	Page      int       `json:"page"`
	MediaType MediaType `json:"media_type"`
}

// NewSearchParams creates search parameters with the default page size
func NewSearchParams(query string, mediaType MediaType) SearchParams {
	return SearchParams{
		Query:     query,
		Limit:     20,
		Page:      1,
		MediaType: mediaType,
	}
}

// WithLimit returns a copy with the per-page limit set
func (p SearchParams) WithLimit(limit int) SearchParams {
	p.Limit = limit
	return p
}

// WithPage returns a copy with the 1-based page number set
func (p SearchParams) WithPage(page int) SearchParams {
	p.Page = page
	return p
}

// SearchResult is one provider's paginated response. Total is the
// provider-reported count of all matching items; TotalHits is the count
// actually retrievable subject to provider-side caps.
type SearchResult struct {
	Total      int         `json:"total"`
	TotalHits  int         `json:"total_hits"`
	Page       int         `json:"page"`
	PerPage    int         `json:"per_page"`
	TotalPages int         `json:"total_pages"`
	Items      []MediaItem `json:"items"`
	Provider   string      `json:"provider"`
}

// TotalPages computes ceil(total/perPage) without the overflow-prone
// total+perPage-1 form. Returns 0 when total or perPage is zero.
func TotalPages(total, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 0
	}
	pages := total / perPage
	if total%perPage != 0 {
		pages++
	}
	return pages
}

// AggregatedSearchResult is the fan-out result across all registered
// providers for one logical query. Items are concatenated in provider
// registration order, then provider-internal order.
//
// TotalPages is the SUM of each provider's total_pages: the number of
// pages across all providers when paginating each independently. It is a
// planning aid, not the page count of the merged item set.
type AggregatedSearchResult struct {
	Provider        string         `json:"provider"`
	Total           int            `json:"total"`
	TotalHits       int            `json:"total_hits"`
	Page            int            `json:"page"`
	PerPage         int            `json:"per_page"`
	TotalPages      int            `json:"total_pages"`
	Items           []MediaItem    `json:"items"`
	ProviderResults []SearchResult `json:"provider_results"`
}
