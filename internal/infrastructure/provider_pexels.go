package infrastructure

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/tornado-product/fusion-media-provider/internal/domain"
	"github.com/tornado-product/fusion-media-provider/pkg/pexels"
)

const pexelsName = "Pexels"

// PexelsProvider adapts the Pexels API to the Provider contract
type PexelsProvider struct {
	client *pexels.Client
}

// NewPexelsProvider creates a new Pexels provider
func NewPexelsProvider(apiKey string) *PexelsProvider {
	return &PexelsProvider{client: pexels.NewClient(apiKey)}
}

// Name returns the provider identifier
func (p *PexelsProvider) Name() string {
	return pexelsName
}

// processPexelsQuery normalizes multi-keyword input. Pexels takes
// natural-language queries, so list separators become plain spaces.
func processPexelsQuery(query string) string {
	fields := strings.FieldsFunc(query, func(r rune) bool {
		return r == ',' || r == ';' || r == '|'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if t := strings.Join(strings.Fields(f), " "); t != "" {
			out = append(out, t)
		}
	}
	return strings.Join(out, " ")
}

// SearchImages searches Pexels for photos
func (p *PexelsProvider) SearchImages(ctx context.Context, query string, limit, page int) (*domain.SearchResult, error) {
	resp, err := p.client.SearchPhotos(ctx, pexels.SearchParams{
		Query:   processPexelsQuery(query),
		PerPage: limit,
		Page:    page,
	})
	if err != nil {
		return nil, err
	}

	items := make([]domain.MediaItem, 0, len(resp.Photos))
	for i := range resp.Photos {
		items = append(items, pexelsPhotoToItem(&resp.Photos[i]))
	}

	return &domain.SearchResult{
		Total:      resp.TotalResults,
		TotalHits:  len(items),
		Page:       page,
		PerPage:    limit,
		TotalPages: domain.TotalPages(resp.TotalResults, limit),
		Items:      items,
		Provider:   pexelsName,
	}, nil
}

// SearchVideos searches Pexels for videos
func (p *PexelsProvider) SearchVideos(ctx context.Context, query string, limit, page int) (*domain.SearchResult, error) {
	resp, err := p.client.SearchVideos(ctx, pexels.SearchParams{
		Query:   processPexelsQuery(query),
		PerPage: limit,
		Page:    page,
	})
	if err != nil {
		return nil, err
	}

	items := make([]domain.MediaItem, 0, len(resp.Videos))
	for i := range resp.Videos {
		items = append(items, pexelsVideoToItem(&resp.Videos[i]))
	}

	return &domain.SearchResult{
		Total:      resp.TotalResults,
		TotalHits:  len(items),
		Page:       page,
		PerPage:    limit,
		TotalPages: domain.TotalPages(resp.TotalResults, limit),
		Items:      items,
		Provider:   pexelsName,
	}, nil
}

// GetMedia resolves a single Pexels photo or video by id
func (p *PexelsProvider) GetMedia(ctx context.Context, id string, mediaType domain.MediaType) (*domain.MediaItem, error) {
	idNum, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, &domain.NotFoundError{ID: id, MediaType: mediaType, Provider: pexelsName}
	}

	switch mediaType {
	case domain.MediaTypeVideo:
		vid, err := p.client.GetVideo(ctx, idNum)
		if err != nil {
			return nil, mapPexelsLookupErr(err, id, mediaType)
		}
		item := pexelsVideoToItem(vid)
		return &item, nil
	default:
		photo, err := p.client.GetPhoto(ctx, idNum)
		if err != nil {
			return nil, mapPexelsLookupErr(err, id, mediaType)
		}
		item := pexelsPhotoToItem(photo)
		return &item, nil
	}
}

// mapPexelsLookupErr translates a 404 into the domain not-found kind
func mapPexelsLookupErr(err error, id string, mediaType domain.MediaType) error {
	var apiErr *pexels.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == 404 {
		return &domain.NotFoundError{ID: id, MediaType: mediaType, Provider: pexelsName}
	}
	return err
}

func pexelsPhotoToItem(photo *pexels.Photo) domain.MediaItem {
	return domain.MediaItem{
		ID:          strconv.FormatInt(photo.ID, 10),
		MediaType:   domain.MediaTypeImage,
		Title:       photo.Alt,
		Description: photo.Alt,
		Tags:        nil,
		Author:      photo.Photographer,
		AuthorURL:   photo.PhotographerURL,
		SourceURL:   photo.URL,
		Provider:    pexelsName,
		Urls: domain.MediaUrls{
			Thumbnail: photo.Src.Tiny,
			Medium:    photo.Src.Medium,
			Large:     photo.Src.Large,
			Original:  photo.Src.Original,
		},
		Metadata: domain.MediaMetadata{
			Width:  photo.Width,
			Height: photo.Height,
		},
	}
}

func pexelsVideoToItem(vid *pexels.Video) domain.MediaItem {
	files := make([]domain.VideoFile, 0, len(vid.VideoFiles))
	for _, vf := range vid.VideoFiles {
		files = append(files, domain.VideoFile{
			Quality: pexelsQualityTag(vf),
			URL:     vf.Link,
			Width:   vf.Width,
			Height:  vf.Height,
			Size:    vf.Size,
		})
	}

	urls := domain.MediaUrls{
		Thumbnail:  vid.Image,
		VideoFiles: files,
	}
	for _, f := range files {
		switch f.Quality {
		case "medium":
			if urls.Medium == "" {
				urls.Medium = f.URL
			}
		case "large":
			if urls.Large == "" {
				urls.Large = f.URL
			}
		}
	}

	title := "Video"
	if len(vid.Tags) > 0 {
		title = strings.Join(vid.Tags, ", ")
	}

	return domain.MediaItem{
		ID:          strconv.FormatInt(vid.ID, 10),
		MediaType:   domain.MediaTypeVideo,
		Title:       title,
		Description: "",
		Tags:        vid.Tags,
		Author:      vid.User.Name,
		AuthorURL:   vid.User.URL,
		SourceURL:   vid.URL,
		Provider:    pexelsName,
		Urls:        urls,
		Metadata: domain.MediaMetadata{
			Width:    vid.Width,
			Height:   vid.Height,
			Duration: vid.Duration,
		},
	}
}

// pexelsQualityTag maps Pexels quality labels and dimensions onto the
// normalized tiny/small/medium/large tags used by quality selection
func pexelsQualityTag(vf pexels.VideoFile) string {
	switch strings.ToLower(vf.Quality) {
	case "uhd":
		return "large"
	case "hd":
		if vf.Width >= 1920 || vf.Height >= 1920 {
			return "large"
		}
		return "medium"
	case "sd":
		if vf.Width >= 960 || vf.Height >= 960 {
			return "small"
		}
		return "tiny"
	default:
		return strings.ToLower(vf.Quality)
	}
}
