package domain

import (
	"fmt"
	"strings"
)

// MediaType represents the kind of media asset
type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

// ParseMediaType parses a media type from a string (case-insensitive)
func ParseMediaType(s string) (MediaType, error) {
	switch strings.ToLower(s) {
	case "image":
		return MediaTypeImage, nil
	case "video":
		return MediaTypeVideo, nil
	default:
		return "", fmt.Errorf("invalid media type: %s", s)
	}
}

// String returns the string representation of the media type
func (t MediaType) String() string {
	return string(t)
}

// ValidateMediaType checks if a media type is valid
func ValidateMediaType(t MediaType) bool {
	return t == MediaTypeImage || t == MediaTypeVideo
}

// VideoFile represents one downloadable rendition of a video
type VideoFile struct {
	Quality   string `json:"quality"`
	URL       string `json:"url"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Size      int64  `json:"size"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// MediaUrls holds the renditions available for a media item.
// Thumbnail is always present; the other tiers depend on the provider
// and media type. VideoFiles is populated for videos only.
type MediaUrls struct {
	Thumbnail  string      `json:"thumbnail"`
	Medium     string      `json:"medium,omitempty"`
	Large      string      `json:"large,omitempty"`
	Original   string      `json:"original,omitempty"`
	VideoFiles []VideoFile `json:"video_files,omitempty"`
}

// MediaMetadata holds dimensions, duration and provider-reported counters.
// Counters are zero when the provider does not expose them.
type MediaMetadata struct {
	Width     int   `json:"width,omitempty"`
	Height    int   `json:"height,omitempty"`
	Size      int64 `json:"size,omitempty"`
	Duration  int   `json:"duration,omitempty"`
	Views     int64 `json:"views,omitempty"`
	Downloads int64 `json:"downloads,omitempty"`
	Likes     int64 `json:"likes,omitempty"`
}

// MediaItem is the provider-agnostic representation of one searchable asset.
// Provider always matches the Name() of the adapter that produced the item;
// single-provider routing and result attribution rely on it. IDs are scoped
// to the provider and are not globally unique.
type MediaItem struct {
	ID          string        `json:"id"`
	MediaType   MediaType     `json:"media_type"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Tags        []string      `json:"tags"`
	Author      string        `json:"author"`
	AuthorURL   string        `json:"author_url"`
	SourceURL   string        `json:"source_url"`
	Provider    string        `json:"provider"`
	Urls        MediaUrls     `json:"urls"`
	Metadata    MediaMetadata `json:"metadata"`
}
