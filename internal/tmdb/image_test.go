package tmdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestImageURL(t *testing.T) {
	tests := []struct {
		name string
		base string
		path *string
		size string
		want string
	}{
		{"default size", DefaultImageBaseURL, strPtr("/abc.jpg"), "", "https://image.tmdb.org/t/p/w500/abc.jpg"},
		{"explicit size", DefaultImageBaseURL, strPtr("/abc.jpg"), "original", "https://image.tmdb.org/t/p/original/abc.jpg"},
		{"trailing slash base", "https://cdn.example/t/p/", strPtr("/abc.jpg"), "w92", "https://cdn.example/t/p/w92/abc.jpg"},
		{"path without slash", DefaultImageBaseURL, strPtr("abc.jpg"), "w185", "https://image.tmdb.org/t/p/w185/abc.jpg"},
		{"nil path", DefaultImageBaseURL, nil, "w500", PlaceholderImage},
		{"empty path", DefaultImageBaseURL, strPtr(""), "w500", PlaceholderImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ImageURL(tt.base, tt.path, tt.size))
		})
	}
}

func TestClient_ImageURL(t *testing.T) {
	c := NewClient("tok", WithImageBaseURL("https://img.local"))
	assert.Equal(t, "https://img.local/w500/x.png", c.ImageURL(strPtr("/x.png"), ""))
	assert.Equal(t, PlaceholderImage, c.ImageURL(nil, ""))
}
