package domain

import (
	"fmt"
	"strings"
)

// ImageQuality is a preferred image rendition tier
type ImageQuality string

const (
	ImageQualityThumbnail ImageQuality = "thumbnail"
	ImageQualityMedium    ImageQuality = "medium"
	ImageQualityLarge     ImageQuality = "large"
	ImageQualityOriginal  ImageQuality = "original"
)

// ImageQualityOrder lists image tiers from most to least preferred.
// Quality fallback walks this order starting at the requested tier.
var ImageQualityOrder = []ImageQuality{
	ImageQualityOriginal,
	ImageQualityLarge,
	ImageQualityMedium,
	ImageQualityThumbnail,
}

// ParseImageQuality parses an image quality from a string (case-insensitive)
func ParseImageQuality(s string) (ImageQuality, error) {
	switch strings.ToLower(s) {
	case "thumbnail":
		return ImageQualityThumbnail, nil
	case "medium":
		return ImageQualityMedium, nil
	case "large":
		return ImageQualityLarge, nil
	case "original":
		return ImageQualityOriginal, nil
	default:
		return "", fmt.Errorf("invalid image quality: %s", s)
	}
}

// String returns the string representation of the image quality
func (q ImageQuality) String() string {
	return string(q)
}

// VideoQuality is a preferred video rendition tier. Tags match the
// quality labels providers attach to video files (tiny ~360p up to
// large ~1080p).
type VideoQuality string

const (
	VideoQualityTiny   VideoQuality = "tiny"
	VideoQualitySmall  VideoQuality = "small"
	VideoQualityMedium VideoQuality = "medium"
	VideoQualityLarge  VideoQuality = "large"
)

// VideoQualityOrder lists video tiers from most to least preferred
var VideoQualityOrder = []VideoQuality{
	VideoQualityLarge,
	VideoQualityMedium,
	VideoQualitySmall,
	VideoQualityTiny,
}

// ParseVideoQuality parses a video quality from a string (case-insensitive)
func ParseVideoQuality(s string) (VideoQuality, error) {
	switch strings.ToLower(s) {
	case "tiny":
		return VideoQualityTiny, nil
	case "small":
		return VideoQualitySmall, nil
	case "medium":
		return VideoQualityMedium, nil
	case "large":
		return VideoQualityLarge, nil
	default:
		return "", fmt.Errorf("invalid video quality: %s", s)
	}
}

// String returns the string representation of the video quality
func (q VideoQuality) String() string {
	return string(q)
}

// MinWidth returns the minimum pixel width expected for the tier, used
// when a provider supplies no quality tags on its video files
func (q VideoQuality) MinWidth() int {
	switch q {
	case VideoQualityTiny:
		return 640
	case VideoQualitySmall:
		return 960
	case VideoQualityMedium:
		return 1280
	case VideoQualityLarge:
		return 1920
	default:
		return 0
	}
}
