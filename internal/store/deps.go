package store

//go:generate mockgen -destination=mocks/mock_deps.go -package=mocks github.com/vmunix/cineverse/internal/store MetadataClient,Persistence

import (
	"context"

	"github.com/vmunix/cineverse/internal/movie"
)

// MetadataClient is the subset of the TMDB client the store reads through.
type MetadataClient interface {
	Listing(ctx context.Context, category movie.Category, page int) (*movie.Page, error)
	Search(ctx context.Context, query string, page int) (*movie.Page, error)
	MovieDetails(ctx context.Context, id int64) (*movie.Details, error)
	MovieCredits(ctx context.Context, id int64) (*movie.Credits, error)
}

// Persistence is the durable home of the favorites and watchlist collections.
type Persistence interface {
	Load(ctx context.Context, key string) ([]movie.Movie, error)
	Save(ctx context.Context, key string, movies []movie.Movie) error
}
