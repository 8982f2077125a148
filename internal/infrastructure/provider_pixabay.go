package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tornado-product/fusion-media-provider/internal/domain"
	"github.com/tornado-product/fusion-media-provider/pkg/pixabay"
)

const pixabayName = "Pixabay"

// PixabayProvider adapts the Pixabay API to the Provider contract
type PixabayProvider struct {
	client *pixabay.Client
}

// NewPixabayProvider creates a new Pixabay provider
func NewPixabayProvider(apiKey string) *PixabayProvider {
	return &PixabayProvider{client: pixabay.NewClient(apiKey)}
}

// Name returns the provider identifier
func (p *PixabayProvider) Name() string {
	return pixabayName
}

// processPixabayQuery normalizes multi-keyword input. Pixabay joins
// keywords with +; whitespace, commas, semicolons and pipes all act as
// separators.
func processPixabayQuery(query string) string {
	fields := strings.FieldsFunc(query, func(r rune) bool {
		return r == ' ' || r == ',' || r == ';' || r == '|'
	})
	return strings.Join(fields, "+")
}

// SearchImages searches Pixabay for images
func (p *PixabayProvider) SearchImages(ctx context.Context, query string, limit, page int) (*domain.SearchResult, error) {
	resp, err := p.client.SearchImages(ctx, processPixabayQuery(query), limit, page)
	if err != nil {
		return nil, err
	}

	items := make([]domain.MediaItem, 0, len(resp.Hits))
	for i := range resp.Hits {
		items = append(items, pixabayImageToItem(&resp.Hits[i]))
	}

	return &domain.SearchResult{
		Total:      resp.Total,
		TotalHits:  resp.TotalHits,
		Page:       page,
		PerPage:    limit,
		TotalPages: domain.TotalPages(resp.Total, limit),
		Items:      items,
		Provider:   pixabayName,
	}, nil
}

// SearchVideos searches Pixabay for videos
func (p *PixabayProvider) SearchVideos(ctx context.Context, query string, limit, page int) (*domain.SearchResult, error) {
	resp, err := p.client.SearchVideos(ctx, processPixabayQuery(query), limit, page)
	if err != nil {
		return nil, err
	}

	items := make([]domain.MediaItem, 0, len(resp.Hits))
	for i := range resp.Hits {
		items = append(items, pixabayVideoToItem(&resp.Hits[i]))
	}

	return &domain.SearchResult{
		Total:      resp.Total,
		TotalHits:  resp.TotalHits,
		Page:       page,
		PerPage:    limit,
		TotalPages: domain.TotalPages(resp.Total, limit),
		Items:      items,
		Provider:   pixabayName,
	}, nil
}

// GetMedia resolves a single Pixabay image or video by id
func (p *PixabayProvider) GetMedia(ctx context.Context, id string, mediaType domain.MediaType) (*domain.MediaItem, error) {
	idNum, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, &domain.NotFoundError{ID: id, MediaType: mediaType, Provider: pixabayName}
	}

	switch mediaType {
	case domain.MediaTypeVideo:
		vid, err := p.client.GetVideo(ctx, idNum)
		if err != nil {
			return nil, mapPixabayLookupErr(err, id, mediaType)
		}
		item := pixabayVideoToItem(vid)
		return &item, nil
	default:
		img, err := p.client.GetImage(ctx, idNum)
		if err != nil {
			return nil, mapPixabayLookupErr(err, id, mediaType)
		}
		item := pixabayImageToItem(img)
		return &item, nil
	}
}

// mapPixabayLookupErr translates SDK not-found errors into the domain kind
func mapPixabayLookupErr(err error, id string, mediaType domain.MediaType) error {
	var nfe *pixabay.NotFoundError
	if errors.As(err, &nfe) {
		return &domain.NotFoundError{ID: id, MediaType: mediaType, Provider: pixabayName}
	}
	return err
}

func pixabayImageToItem(img *pixabay.Image) domain.MediaItem {
	return domain.MediaItem{
		ID:          strconv.FormatInt(img.ID, 10),
		MediaType:   domain.MediaTypeImage,
		Title:       img.Tags,
		Description: img.Tags,
		Tags:        splitTags(img.Tags),
		Author:      img.User,
		AuthorURL:   pixabayUserURL(img.User, img.UserID),
		SourceURL:   img.PageURL,
		Provider:    pixabayName,
		Urls: domain.MediaUrls{
			Thumbnail:  img.PreviewURL,
			Medium:     img.WebformatURL,
			Large:      img.LargeImageURL,
			Original:   img.ImageURL,
			VideoFiles: nil,
		},
		Metadata: domain.MediaMetadata{
			Width:     img.ImageWidth,
			Height:    img.ImageHeight,
			Size:      img.ImageSize,
			Views:     img.Views,
			Downloads: img.Downloads,
			Likes:     img.Likes,
		},
	}
}

func pixabayVideoToItem(vid *pixabay.Video) domain.MediaItem {
	renditions := []struct {
		quality string
		r       pixabay.VideoRendition
	}{
		{"large", vid.Videos.Large},
		{"medium", vid.Videos.Medium},
		{"small", vid.Videos.Small},
		{"tiny", vid.Videos.Tiny},
	}

	var files []domain.VideoFile
	for _, rend := range renditions {
		if rend.r.URL == "" {
			continue
		}
		files = append(files, domain.VideoFile{
			Quality:   rend.quality,
			URL:       rend.r.URL,
			Width:     rend.r.Width,
			Height:    rend.r.Height,
			Size:      rend.r.Size,
			Thumbnail: rend.r.Thumbnail,
		})
	}

	var thumbnail string
	if len(files) > 0 {
		thumbnail = files[0].Thumbnail
	}

	urls := domain.MediaUrls{
		Thumbnail:  thumbnail,
		VideoFiles: files,
	}
	for _, f := range files {
		switch f.Quality {
		case "medium":
			urls.Medium = f.URL
		case "large":
			urls.Large = f.URL
		}
	}

	return domain.MediaItem{
		ID:          strconv.FormatInt(vid.ID, 10),
		MediaType:   domain.MediaTypeVideo,
		Title:       vid.Tags,
		Description: vid.Tags,
		Tags:        splitTags(vid.Tags),
		Author:      vid.User,
		AuthorURL:   pixabayUserURL(vid.User, vid.UserID),
		SourceURL:   vid.PageURL,
		Provider:    pixabayName,
		Urls:        urls,
		Metadata: domain.MediaMetadata{
			Width:     vid.Videos.Large.Width,
			Height:    vid.Videos.Large.Height,
			Size:      vid.Videos.Large.Size,
			Duration:  vid.Duration,
			Views:     vid.Views,
			Downloads: vid.Downloads,
			Likes:     vid.Likes,
		},
	}
}

// splitTags turns Pixabay's comma-separated tag string into a list
func splitTags(tags string) []string {
	parts := strings.Split(tags, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func pixabayUserURL(user string, userID int64) string {
	return fmt.Sprintf("https://pixabay.com/users/%s-%d/", user, userID)
}
