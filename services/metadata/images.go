package metadata

import "strings"

const tmdbImageBaseURL = "https://image.tmdb.org/t/p"

// ImageSize is one of the size tokens TMDB's image CDN accepts.
type ImageSize string

const (
	ImageW92      ImageSize = "w92"
	ImageW154     ImageSize = "w154"
	ImageW185     ImageSize = "w185"
	ImageW300     ImageSize = "w300"
	ImageW342     ImageSize = "w342"
	ImageW500     ImageSize = "w500"
	ImageW780     ImageSize = "w780"
	ImageW1280    ImageSize = "w1280"
	ImageOriginal ImageSize = "original"
)

const (
	posterSize   = ImageW500
	backdropSize = ImageOriginal
	profileSize  = ImageW185
)

var knownImageSizes = map[ImageSize]bool{
	ImageW92: true, ImageW154: true, ImageW185: true, ImageW300: true, ImageW342: true,
	ImageW500: true, ImageW780: true, ImageW1280: true, ImageOriginal: true,
}

// ImageURL joins the image host, size and a TMDB path fragment. An empty path
// yields an empty URL so callers can show a placeholder.
func ImageURL(path string, size ImageSize) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if !knownImageSizes[size] {
		size = posterSize
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return tmdbImageBaseURL + "/" + string(size) + path
}
