package v1

import (
	"context"
	"errors"
	"log/slog"

	"github.com/vmunix/cineverse/internal/events"
	"github.com/vmunix/cineverse/internal/movie"
	"github.com/vmunix/cineverse/internal/store"
	"github.com/vmunix/cineverse/internal/tmdb"
)

// Catalog is the stateful movie store the API reads and mutates.
type Catalog interface {
	FetchListing(ctx context.Context, category movie.Category, page int) error
	Listing(category movie.Category) []movie.Movie
	SearchMovies(ctx context.Context, query string, page int) error
	SearchResults() []movie.Movie
	ClearSearchResults()
	FetchMovieDetail(ctx context.Context, id int64) error
	CurrentMovie() *movie.Details
	CurrentCredits() *movie.Credits
	Collection(c store.Collection) []movie.Movie
	Contains(c store.Collection, id int64) bool
	Add(ctx context.Context, c store.Collection, r movie.Record) error
	Remove(ctx context.Context, c store.Collection, id int64) error
	Snapshot() store.Snapshot
}

// Metadata covers the stateless TMDB reads that bypass the store.
type Metadata interface {
	MovieDetails(ctx context.Context, id int64) (*movie.Details, error)
	SimilarMovies(ctx context.Context, id int64, page int) (*movie.Page, error)
	Discover(ctx context.Context, params tmdb.DiscoverParams) (*movie.Page, error)
	ImageURL(path *string, size string) string
}

// ServerDeps contains all dependencies for the API server.
// Required dependencies must be non-nil; optional dependencies may be nil.
type ServerDeps struct {
	// Required dependencies
	Catalog  Catalog
	Metadata Metadata

	// Optional dependencies
	EventLog *events.EventLog // collection history, nil when storage is not sqlite
	Logger   *slog.Logger
}

// Validate checks that all required dependencies are provided.
func (d ServerDeps) Validate() error {
	if d.Catalog == nil {
		return errors.New("catalog is required")
	}
	if d.Metadata == nil {
		return errors.New("metadata client is required")
	}
	return nil
}
