package pexels

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// Collection is one Pexels media collection
type Collection struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Private     bool   `json:"private"`
	MediaCount  int    `json:"media_count"`
	PhotosCount int    `json:"photos_count"`
	VideosCount int    `json:"videos_count"`
}

// CollectionsResponse is the response for a collections listing
type CollectionsResponse struct {
	TotalResults int          `json:"total_results"`
	Page         int          `json:"page"`
	PerPage      int          `json:"per_page"`
	Collections  []Collection `json:"collections"`
	NextPage     string       `json:"next_page,omitempty"`
	PrevPage     string       `json:"prev_page,omitempty"`
}

// CollectionMediaItem is one entry of a collection's media listing. The
// wire format mixes photos and videos in a single array discriminated
// by a "type" field, so the raw body is kept for typed decoding.
type CollectionMediaItem struct {
	Type string
	raw  json.RawMessage
}

// UnmarshalJSON keeps the raw entry alongside the extracted type tag
func (m *CollectionMediaItem) UnmarshalJSON(data []byte) error {
	var tag struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return err
	}
	m.Type = tag.Type
	m.raw = append(json.RawMessage(nil), data...)
	return nil
}

// Photo decodes the entry as a photo. Fails when Type is not "Photo".
func (m *CollectionMediaItem) Photo() (*Photo, error) {
	if m.Type != "Photo" {
		return nil, fmt.Errorf("pexels: media item is %q, not a photo", m.Type)
	}
	var photo Photo
	if err := json.Unmarshal(m.raw, &photo); err != nil {
		return nil, err
	}
	return &photo, nil
}

// Video decodes the entry as a video. Fails when Type is not "Video".
func (m *CollectionMediaItem) Video() (*Video, error) {
	if m.Type != "Video" {
		return nil, fmt.Errorf("pexels: media item is %q, not a video", m.Type)
	}
	var video Video
	if err := json.Unmarshal(m.raw, &video); err != nil {
		return nil, err
	}
	return &video, nil
}

// CollectionMediaResponse is the response for a collection's media
type CollectionMediaResponse struct {
	ID           string                `json:"id"`
	TotalResults int                   `json:"total_results"`
	Page         int                   `json:"page"`
	PerPage      int                   `json:"per_page"`
	Media        []CollectionMediaItem `json:"media"`
	NextPage     string                `json:"next_page,omitempty"`
	PrevPage     string                `json:"prev_page,omitempty"`
}

// CollectionMediaParams filters a collection media listing. Type may be
// "photos" or "videos"; Sort may be "asc" or "desc".
type CollectionMediaParams struct {
	Type    string
	Sort    string
	PerPage int
	Page    int
}

// Collections fetches the account's own collections
func (c *Client) Collections(ctx context.Context, perPage, page int) (*CollectionsResponse, error) {
	q := url.Values{}
	setPagination(q, perPage, page)

	var resp CollectionsResponse
	if err := c.get(ctx, "/v1/collections", q, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// FeaturedCollections fetches the featured collections feed
func (c *Client) FeaturedCollections(ctx context.Context, perPage, page int) (*CollectionsResponse, error) {
	q := url.Values{}
	setPagination(q, perPage, page)

	var resp CollectionsResponse
	if err := c.get(ctx, "/v1/collections/featured", q, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CollectionMedia fetches the media items of one collection by id
func (c *Client) CollectionMedia(ctx context.Context, id string, params CollectionMediaParams) (*CollectionMediaResponse, error) {
	q := url.Values{}
	setPagination(q, params.PerPage, params.Page)
	if params.Type != "" {
		q.Set("type", params.Type)
	}
	if params.Sort != "" {
		q.Set("sort", params.Sort)
	}

	var resp CollectionMediaResponse
	if err := c.get(ctx, "/v1/collections/"+url.PathEscape(id), q, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
