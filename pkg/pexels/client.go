package pexels

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// BaseURL is the Pexels API root. Photo endpoints live under /v1,
// video endpoints under /videos.
const BaseURL = "https://api.pexels.com"

var (
	// ErrRateLimited is returned on HTTP 429
	ErrRateLimited = errors.New("pexels: rate limit exceeded")

	// ErrInvalidAPIKey is returned on HTTP 401/403
	ErrInvalidAPIKey = errors.New("pexels: invalid api key")
)

// APIError is returned for other non-success responses
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("pexels: HTTP %d: %s", e.StatusCode, e.Message)
}

// Client is a typed Pexels REST client. Authentication uses the API key
// in the Authorization header.
type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a new Pexels client
func NewClient(apiKey string) *Client {
	return &Client{
		APIKey:     apiKey,
		BaseURL:    BaseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// SearchParams holds photo/video search parameters. Query supports
// natural language ("group of people working").
type SearchParams struct {
	Query       string
	Orientation string // landscape, portrait, square
	Size        string // large, medium, small
	Locale      string
	PerPage     int // 1-80, default 15
	Page        int
}

// SearchPhotos searches Pexels for photos
func (c *Client) SearchPhotos(ctx context.Context, params SearchParams) (*PhotosResponse, error) {
	q := url.Values{}
	q.Set("query", params.Query)
	setPagination(q, params.PerPage, params.Page)
	if params.Orientation != "" {
		q.Set("orientation", params.Orientation)
	}
	if params.Size != "" {
		q.Set("size", params.Size)
	}
	if params.Locale != "" {
		q.Set("locale", params.Locale)
	}

	var resp PhotosResponse
	if err := c.get(ctx, "/v1/search", q, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CuratedPhotos fetches the curated photo feed
func (c *Client) CuratedPhotos(ctx context.Context, perPage, page int) (*PhotosResponse, error) {
	q := url.Values{}
	setPagination(q, perPage, page)

	var resp PhotosResponse
	if err := c.get(ctx, "/v1/curated", q, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetPhoto fetches a single photo by id
func (c *Client) GetPhoto(ctx context.Context, id int64) (*Photo, error) {
	var photo Photo
	if err := c.get(ctx, "/v1/photos/"+strconv.FormatInt(id, 10), nil, &photo); err != nil {
		return nil, err
	}
	return &photo, nil
}

// SearchVideos searches Pexels for videos
func (c *Client) SearchVideos(ctx context.Context, params SearchParams) (*VideosResponse, error) {
	q := url.Values{}
	q.Set("query", params.Query)
	setPagination(q, params.PerPage, params.Page)
	if params.Orientation != "" {
		q.Set("orientation", params.Orientation)
	}
	if params.Size != "" {
		q.Set("size", params.Size)
	}
	if params.Locale != "" {
		q.Set("locale", params.Locale)
	}

	var resp VideosResponse
	if err := c.get(ctx, "/videos/search", q, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PopularVideos fetches the popular video feed
func (c *Client) PopularVideos(ctx context.Context, perPage, page int) (*VideosResponse, error) {
	q := url.Values{}
	setPagination(q, perPage, page)

	var resp VideosResponse
	if err := c.get(ctx, "/videos/popular", q, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetVideo fetches a single video by id
func (c *Client) GetVideo(ctx context.Context, id int64) (*Video, error) {
	var video Video
	if err := c.get(ctx, "/videos/videos/"+strconv.FormatInt(id, 10), nil, &video); err != nil {
		return nil, err
	}
	return &video, nil
}

// setPagination applies the documented 1-80 per_page range, default 15
func setPagination(q url.Values, perPage, page int) {
	if perPage <= 0 {
		perPage = 15
	}
	if perPage > 80 {
		perPage = 80
	}
	q.Set("per_page", strconv.Itoa(perPage))
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
}

// get performs the request and maps non-success statuses to typed errors
func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("pexels: build request: %w", err)
	}
	req.Header.Set("Authorization", c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("pexels: request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("pexels: decode response: %w", err)
		}
		return nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return ErrRateLimited
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrInvalidAPIKey
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{StatusCode: resp.StatusCode, Message: string(body)}
	}
}
