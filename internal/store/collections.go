package store

import (
	"context"
	"fmt"

	"github.com/vmunix/cineverse/internal/events"
	"github.com/vmunix/cineverse/internal/movie"
)

// ToggleFavorite removes r from favorites when present and appends it
// otherwise. It reports whether the movie is a favorite afterwards.
func (s *Store) ToggleFavorite(ctx context.Context, r movie.Record) (bool, error) {
	return s.Toggle(ctx, Favorites, r)
}

// ToggleWatchlist is ToggleFavorite for the watchlist.
func (s *Store) ToggleWatchlist(ctx context.Context, r movie.Record) (bool, error) {
	return s.Toggle(ctx, Watchlist, r)
}

// AddFavorite appends r to favorites unless it is already present.
func (s *Store) AddFavorite(ctx context.Context, r movie.Record) error {
	return s.Add(ctx, Favorites, r)
}

// RemoveFavorite drops id from favorites. Absent ids are a no-op.
func (s *Store) RemoveFavorite(ctx context.Context, id int64) error {
	return s.Remove(ctx, Favorites, id)
}

// AddToWatchlist appends r to the watchlist unless it is already present.
func (s *Store) AddToWatchlist(ctx context.Context, r movie.Record) error {
	return s.Add(ctx, Watchlist, r)
}

// RemoveFromWatchlist drops id from the watchlist. Absent ids are a no-op.
func (s *Store) RemoveFromWatchlist(ctx context.Context, id int64) error {
	return s.Remove(ctx, Watchlist, id)
}

// Toggle flips membership of r in collection c and writes the collection
// through to persistence before returning. A failed save is returned but the
// in-memory change is kept.
func (s *Store) Toggle(ctx context.Context, c Collection, r movie.Record) (bool, error) {
	if err := c.validate(); err != nil {
		return false, err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if s.Contains(c, r.MovieID()) {
		return false, s.removeLocked(ctx, c, r.MovieID())
	}
	return true, s.addLocked(ctx, c, r)
}

// Add appends r to collection c unless it is already present.
func (s *Store) Add(ctx context.Context, c Collection, r movie.Record) error {
	if err := c.validate(); err != nil {
		return err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.addLocked(ctx, c, r)
}

// Remove drops id from collection c.
func (s *Store) Remove(ctx context.Context, c Collection, id int64) error {
	if err := c.validate(); err != nil {
		return err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.removeLocked(ctx, c, id)
}

func (s *Store) addLocked(ctx context.Context, c Collection, r movie.Record) error {
	m := movie.Canonical(r)

	s.mu.Lock()
	if movie.Contains(s.collections[c], m.ID) {
		s.mu.Unlock()
		return nil
	}
	items := append(movie.Clone(s.collections[c]), m)
	s.collections[c] = items
	snapshot := movie.Clone(items)
	s.mu.Unlock()

	return s.commit(ctx, c, m, true, snapshot)
}

func (s *Store) removeLocked(ctx context.Context, c Collection, id int64) error {
	s.mu.Lock()
	i := movie.IndexOf(s.collections[c], id)
	if i < 0 {
		s.mu.Unlock()
		return nil
	}
	m := s.collections[c][i]
	items := movie.Remove(s.collections[c], id)
	s.collections[c] = items
	snapshot := movie.Clone(items)
	s.mu.Unlock()

	return s.commit(ctx, c, m, false, snapshot)
}

// commit saves the collection snapshot and announces the change.
func (s *Store) commit(ctx context.Context, c Collection, m movie.Movie, added bool, snapshot []movie.Movie) error {
	var saveErr error
	if err := s.persist.Save(ctx, string(c), snapshot); err != nil {
		s.log.Error("failed to save collection", "collection", c, "movie_id", m.ID, "error", err)
		saveErr = fmt.Errorf("save %s: %w", c, err)
	} else {
		s.log.Debug("collection updated", "collection", c, "movie_id", m.ID, "added", added, "size", len(snapshot))
	}

	_ = s.bus.Publish(ctx, events.NewCollectionChanged(string(c), m.ID, m.Title, added, len(snapshot)))
	return saveErr
}

func (c Collection) validate() error {
	switch c {
	case Favorites, Watchlist:
		return nil
	}
	return fmt.Errorf("unknown collection %q", string(c))
}

// ParseCollection maps a user-supplied name to a Collection.
func ParseCollection(name string) (Collection, error) {
	c := Collection(name)
	if err := c.validate(); err != nil {
		return "", err
	}
	return c, nil
}
