package pixabay

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	// BaseURL is the Pixabay image API endpoint
	BaseURL = "https://pixabay.com/api/"
	// VideoBaseURL is the Pixabay video API endpoint
	VideoBaseURL = "https://pixabay.com/api/videos/"

	maxQueryLength = 100
)

// Client is a typed Pixabay REST client. All search and lookup calls
// authenticate with the API key passed as a query parameter.
type Client struct {
	APIKey       string
	BaseURL      string
	VideoBaseURL string
	HTTPClient   *http.Client
}

// NewClient creates a new Pixabay client
func NewClient(apiKey string) *Client {
	return &Client{
		APIKey:       apiKey,
		BaseURL:      BaseURL,
		VideoBaseURL: VideoBaseURL,
		HTTPClient:   &http.Client{Timeout: 30 * time.Second},
	}
}

// clampPerPage enforces the documented 3-200 range, defaulting to 20
func clampPerPage(perPage int) int {
	if perPage == 0 {
		return 20
	}
	if perPage < 3 {
		return 3
	}
	if perPage > 200 {
		return 200
	}
	return perPage
}

// SearchImages searches Pixabay for images. The query is URL-encoded
// automatically and must not exceed 100 characters.
func (c *Client) SearchImages(ctx context.Context, query string, perPage, page int) (*ImageResponse, error) {
	params := SearchImageParams{Query: query, PerPage: perPage, Page: page}
	return c.SearchImagesAdvanced(ctx, params)
}

// SearchImagesAdvanced searches Pixabay for images with the full
// parameter set
func (c *Client) SearchImagesAdvanced(ctx context.Context, params SearchImageParams) (*ImageResponse, error) {
	if len(params.Query) > maxQueryLength {
		return nil, &APIError{StatusCode: http.StatusBadRequest, Message: "query must not exceed 100 characters"}
	}

	q := url.Values{}
	q.Set("key", c.APIKey)
	if params.Query != "" {
		q.Set("q", params.Query)
	}
	q.Set("per_page", strconv.Itoa(clampPerPage(params.PerPage)))
	if params.Page > 0 {
		q.Set("page", strconv.Itoa(params.Page))
	}
	if params.ImageType != "" {
		q.Set("image_type", string(params.ImageType))
	}
	if params.Orientation != "" {
		q.Set("orientation", string(params.Orientation))
	}
	if params.Category != "" {
		q.Set("category", string(params.Category))
	}
	if params.MinWidth > 0 {
		q.Set("min_width", strconv.Itoa(params.MinWidth))
	}
	if params.MinHeight > 0 {
		q.Set("min_height", strconv.Itoa(params.MinHeight))
	}
	if params.Colors != "" {
		q.Set("colors", params.Colors)
	}
	if params.EditorsChoice {
		q.Set("editors_choice", "true")
	}
	if params.SafeSearch {
		q.Set("safesearch", "true")
	}
	if params.Order != "" {
		q.Set("order", string(params.Order))
	}
	if params.Lang != "" {
		q.Set("lang", params.Lang)
	}

	var resp ImageResponse
	if err := c.get(ctx, c.BaseURL, q, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetImage fetches a single image by id
func (c *Client) GetImage(ctx context.Context, id int64) (*Image, error) {
	q := url.Values{}
	q.Set("key", c.APIKey)
	q.Set("id", strconv.FormatInt(id, 10))

	var resp ImageResponse
	if err := c.get(ctx, c.BaseURL, q, &resp); err != nil {
		return nil, err
	}
	if len(resp.Hits) == 0 {
		return nil, &NotFoundError{ID: id}
	}
	return &resp.Hits[0], nil
}

// SearchVideos searches Pixabay for videos
func (c *Client) SearchVideos(ctx context.Context, query string, perPage, page int) (*VideoResponse, error) {
	params := SearchVideoParams{Query: query, PerPage: perPage, Page: page}
	return c.SearchVideosAdvanced(ctx, params)
}

// SearchVideosAdvanced searches Pixabay for videos with the full
// parameter set
func (c *Client) SearchVideosAdvanced(ctx context.Context, params SearchVideoParams) (*VideoResponse, error) {
	if len(params.Query) > maxQueryLength {
		return nil, &APIError{StatusCode: http.StatusBadRequest, Message: "query must not exceed 100 characters"}
	}

	q := url.Values{}
	q.Set("key", c.APIKey)
	if params.Query != "" {
		q.Set("q", params.Query)
	}
	q.Set("per_page", strconv.Itoa(clampPerPage(params.PerPage)))
	if params.Page > 0 {
		q.Set("page", strconv.Itoa(params.Page))
	}
	if params.VideoType != "" {
		q.Set("video_type", string(params.VideoType))
	}
	if params.Category != "" {
		q.Set("category", string(params.Category))
	}
	if params.MinWidth > 0 {
		q.Set("min_width", strconv.Itoa(params.MinWidth))
	}
	if params.MinHeight > 0 {
		q.Set("min_height", strconv.Itoa(params.MinHeight))
	}
	if params.EditorsChoice {
		q.Set("editors_choice", "true")
	}
	if params.SafeSearch {
		q.Set("safesearch", "true")
	}
	if params.Order != "" {
		q.Set("order", string(params.Order))
	}
	if params.Lang != "" {
		q.Set("lang", params.Lang)
	}

	var resp VideoResponse
	if err := c.get(ctx, c.VideoBaseURL, q, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetVideo fetches a single video by id
func (c *Client) GetVideo(ctx context.Context, id int64) (*Video, error) {
	q := url.Values{}
	q.Set("key", c.APIKey)
	q.Set("id", strconv.FormatInt(id, 10))

	var resp VideoResponse
	if err := c.get(ctx, c.VideoBaseURL, q, &resp); err != nil {
		return nil, err
	}
	if len(resp.Hits) == 0 {
		return nil, &NotFoundError{ID: id}
	}
	return &resp.Hits[0], nil
}

// get performs the request and maps non-success statuses to typed errors
func (c *Client) get(ctx context.Context, baseURL string, query url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("pixabay: build request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("pixabay: request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("pixabay: decode response: %w", err)
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

// SearchImageParams holds the advanced image search parameters
type SearchImageParams struct {
	Query         string
	PerPage       int // 3-200, default 20
	Page          int
	ImageType     ImageType
	Orientation   Orientation
	Category      Category
	MinWidth      int
	MinHeight     int
	Colors        string // hex value such as "ffffff"
	EditorsChoice bool
	SafeSearch    bool
	Order         Order
	Lang          string
}

// SearchVideoParams holds the advanced video search parameters
type SearchVideoParams struct {
	Query         string
	PerPage       int // 3-200, default 20
	Page          int
	VideoType     VideoType
	Category      Category
	MinWidth      int
	MinHeight     int
	EditorsChoice bool
	SafeSearch    bool
	Order         Order
	Lang          string
}
