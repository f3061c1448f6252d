package v1

import (
	"github.com/vmunix/cineverse/internal/movie"
	"github.com/vmunix/cineverse/internal/store"
)

// movieResponse is the API representation of a movie.
type movieResponse struct {
	movie.Movie
	PosterURL   string `json:"poster_url"`
	BackdropURL string `json:"backdrop_url"`
	Favorite    bool   `json:"favorite"`
	Watchlist   bool   `json:"watchlist"`
}

// listResponse wraps a movie collection.
type listResponse struct {
	Page       int             `json:"page,omitempty"`
	TotalPages int             `json:"total_pages,omitempty"`
	Results    []movieResponse `json:"results"`
	Total      int             `json:"total"`
}

// detailResponse is the response for GET /movies/{id}.
type detailResponse struct {
	*movie.Details
	PosterURL   string         `json:"poster_url"`
	BackdropURL string         `json:"backdrop_url"`
	Favorite    bool           `json:"favorite"`
	Watchlist   bool           `json:"watchlist"`
	Directors   []string       `json:"directors"`
	Credits     *movie.Credits `json:"credits"`
}

// toggleResponse is the response for POST /{collection}/{id}/toggle.
type toggleResponse struct {
	MovieID    int64  `json:"movie_id"`
	Collection string `json:"collection"`
	Active     bool   `json:"active"`
	Size       int    `json:"size"`
}

// statusResponse is the response for GET /status.
type statusResponse struct {
	Status        string         `json:"status"`
	Favorites     int            `json:"favorites"`
	Watchlist     int            `json:"watchlist"`
	Listings      map[string]int `json:"listings"`
	SearchResults int            `json:"search_results"`
	Loading       bool           `json:"loading"`
	SearchLoading bool           `json:"search_loading"`
	DetailLoading bool           `json:"detail_loading"`
	LastError     string         `json:"last_error,omitempty"`
	History       bool           `json:"history"`
}

// EventResponse is the API representation of a persisted collection event.
type EventResponse struct {
	ID         int64  `json:"id"`
	EventType  string `json:"event_type"`
	EntityType string `json:"entity_type"`
	EntityID   int64  `json:"entity_id"`
	Payload    string `json:"payload"`
	OccurredAt string `json:"occurred_at"`
}

type listEventsResponse struct {
	Items []EventResponse `json:"items"`
	Total int             `json:"total"`
	Limit int             `json:"limit"`
}

type imageResponse struct {
	URL string `json:"url"`
}

func (s *Server) toMovieResponses(movies []movie.Movie) []movieResponse {
	out := make([]movieResponse, len(movies))
	for i, m := range movies {
		out[i] = movieResponse{
			Movie:       m,
			PosterURL:   s.deps.Metadata.ImageURL(m.PosterPath, ""),
			BackdropURL: s.deps.Metadata.ImageURL(m.BackdropPath, ""),
			Favorite:    s.deps.Catalog.Contains(store.Favorites, m.ID),
			Watchlist:   s.deps.Catalog.Contains(store.Watchlist, m.ID),
		}
	}
	return out
}

func (s *Server) listOf(movies []movie.Movie) listResponse {
	return listResponse{Results: s.toMovieResponses(movies), Total: len(movies)}
}
