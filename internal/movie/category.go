package movie

import "fmt"

// Category is a provider-curated listing.
type Category string

const (
	NowPlaying Category = "now_playing"
	Popular    Category = "popular"
	TopRated   Category = "top_rated"
)

// Categories lists every listing in display order.
var Categories = []Category{NowPlaying, Popular, TopRated}

// Valid reports whether c is a known listing.
func (c Category) Valid() bool {
	switch c {
	case NowPlaying, Popular, TopRated:
		return true
	}
	return false
}

// Label is the human-readable listing name.
func (c Category) Label() string {
	switch c {
	case NowPlaying:
		return "now playing"
	case Popular:
		return "popular"
	case TopRated:
		return "top rated"
	default:
		return string(c)
	}
}

// ParseCategory accepts the wire name ("now_playing") or a dashed alias ("now-playing").
func ParseCategory(s string) (Category, error) {
	switch s {
	case "now_playing", "now-playing":
		return NowPlaying, nil
	case "popular":
		return Popular, nil
	case "top_rated", "top-rated":
		return TopRated, nil
	}
	return "", fmt.Errorf("unknown category %q: must be one of now-playing, popular, top-rated", s)
}
