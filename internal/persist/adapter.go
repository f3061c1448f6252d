package persist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vmunix/cineverse/internal/movie"
)

// Collection keys.
const (
	FavoritesKey = "favorites"
	WatchlistKey = "watchlist"
)

var errNotSequence = errors.New("stored value is not a JSON array")

// storedMovie is the on-disk entry. Entries written before genre_ids was
// normalized may carry detail-shaped genre objects instead.
type storedMovie struct {
	movie.Movie
	Genres []movie.Genre `json:"genres,omitempty"`
}

// Adapter reads and writes movie collections. Corrupted values are never
// surfaced to callers: they are deleted and read back as empty.
type Adapter struct {
	backend Backend
	log     *slog.Logger
	heal    map[string]bool // keys re-persisted when loading repaired entries
}

// NewAdapter creates an adapter over backend.
func NewAdapter(backend Backend, log *slog.Logger) *Adapter {
	if log == nil {
		log = slog.Default()
	}
	return &Adapter{
		backend: backend,
		log:     log.With("component", "persist"),
		heal:    map[string]bool{WatchlistKey: true},
	}
}

// Load returns the collection stored under key, or an empty collection when the
// key is absent or its value is corrupted. Every entry comes back with non-nil
// GenreIDs. An error is returned only when the backend itself fails.
func (a *Adapter) Load(ctx context.Context, key string) ([]movie.Movie, error) {
	data, ok, err := a.backend.Get(ctx, key)
	if err != nil {
		return []movie.Movie{}, fmt.Errorf("load %s: %w", key, err)
	}
	if !ok {
		return []movie.Movie{}, nil
	}

	entries, err := decode(data)
	if err != nil {
		a.log.Warn("discarding corrupted collection", "key", key, "error", err)
		if err := a.backend.Delete(ctx, key); err != nil {
			a.log.Warn("failed to delete corrupted collection", "key", key, "error", err)
		}
		return []movie.Movie{}, nil
	}

	movies := make([]movie.Movie, 0, len(entries))
	repaired := 0
	for _, e := range entries {
		m := e.Movie
		var changed bool
		m.GenreIDs, changed = movie.NormalizeGenreIDs(e.GenreIDs, e.Genres)
		if changed {
			repaired++
		}
		movies = append(movies, m)
	}

	movies, dropped := movie.Dedupe(movies)
	if dropped > 0 {
		a.log.Warn("dropped duplicate entries", "key", key, "count", dropped)
	}

	if a.heal[key] && (repaired > 0 || dropped > 0) {
		a.log.Info("fixed missing genre_ids", "key", key, "repaired", repaired)
		if err := a.Save(ctx, key, movies); err != nil {
			a.log.Warn("failed to persist repaired collection", "key", key, "error", err)
		}
	}

	return movies, nil
}

// Save overwrites the value under key with the full collection.
func (a *Adapter) Save(ctx context.Context, key string, movies []movie.Movie) error {
	out := make([]movie.Movie, len(movies))
	for i, m := range movies {
		m.GenreIDs, _ = movie.NormalizeGenreIDs(m.GenreIDs, nil)
		out[i] = m
	}

	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := a.backend.Put(ctx, key, data); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Close releases the backend.
func (a *Adapter) Close() error {
	return a.backend.Close()
}

func decode(data []byte) ([]storedMovie, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, errNotSequence
	}
	var entries []storedMovie
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return entries, nil
}
