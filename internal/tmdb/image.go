package tmdb

import "strings"

const (
	// DefaultImageSize is used when no size token is given.
	// Valid sizes: w92, w154, w185, w342, w500, w780, original.
	DefaultImageSize = "w500"

	// PlaceholderImage is served for movies without artwork.
	PlaceholderImage = "/placeholder-movie.jpg"
)

// ImageURL resolves an image path against the configured CDN.
func (c *Client) ImageURL(path *string, size string) string {
	return ImageURL(c.imageBaseURL, path, size)
}

// ImageURL returns base/size+path, or PlaceholderImage when path is nil or empty.
func ImageURL(base string, path *string, size string) string {
	if path == nil || *path == "" {
		return PlaceholderImage
	}
	if size == "" {
		size = DefaultImageSize
	}
	p := *path
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return strings.TrimRight(base, "/") + "/" + size + p
}
