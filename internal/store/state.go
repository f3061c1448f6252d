package store

import (
	"github.com/vmunix/cineverse/internal/events"
	"github.com/vmunix/cineverse/internal/movie"
)

// Every accessor returns a copy; callers may keep or modify the result freely.

// Listing returns the accumulated pages of category.
func (s *Store) Listing(category movie.Category) []movie.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return movie.Clone(s.listings[category])
}

// SearchResults returns the accumulated search pages.
func (s *Store) SearchResults() []movie.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return movie.Clone(s.searchResults)
}

// CurrentMovie returns the last successfully fetched detail, or nil.
func (s *Store) CurrentMovie() *movie.Details {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	d := *s.current
	d.Movie = movie.Clone([]movie.Movie{s.current.Movie})[0]
	d.Genres = append([]movie.Genre(nil), s.current.Genres...)
	return &d
}

// CurrentCredits returns the credits fetched alongside CurrentMovie, or nil.
func (s *Store) CurrentCredits() *movie.Credits {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.credits == nil {
		return nil
	}
	c := *s.credits
	c.Cast = append([]movie.CastMember(nil), s.credits.Cast...)
	c.Crew = append([]movie.CrewMember(nil), s.credits.Crew...)
	return &c
}

// Favorites returns the favorites in insertion order.
func (s *Store) Favorites() []movie.Movie {
	return s.Collection(Favorites)
}

// Watchlist returns the watchlist in insertion order.
func (s *Store) Watchlist() []movie.Movie {
	return s.Collection(Watchlist)
}

// Collection returns the members of c in insertion order.
func (s *Store) Collection(c Collection) []movie.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return movie.Clone(s.collections[c])
}

// IsFavorite reports whether id is in favorites.
func (s *Store) IsFavorite(id int64) bool {
	return s.Contains(Favorites, id)
}

// InWatchlist reports whether id is in the watchlist.
func (s *Store) InWatchlist(id int64) bool {
	return s.Contains(Watchlist, id)
}

// Contains reports whether id is a member of c.
func (s *Store) Contains(c Collection, id int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return movie.Contains(s.collections[c], id)
}

// Loading reports whether any listing request is in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listingLoading > 0
}

// SearchLoading reports whether a search request is in flight.
func (s *Store) SearchLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.searchLoading > 0
}

// DetailLoading reports whether a detail request is in flight.
func (s *Store) DetailLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.detailLoading > 0
}

// Err returns the message of the most recent failed operation. It is cleared
// when the next operation starts.
func (s *Store) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errMsg
}

// Subscribe returns a channel receiving change events for collection c.
// The channel is closed by Unsubscribe or Close.
func (s *Store) Subscribe(c Collection, bufferSize int) <-chan events.Event {
	return s.bus.Subscribe(string(c), bufferSize)
}

// Unsubscribe stops delivery to ch and closes it.
func (s *Store) Unsubscribe(ch <-chan events.Event) {
	s.bus.Unsubscribe(ch)
}

// Snapshot is a point-in-time view of the store.
type Snapshot struct {
	Listings       map[movie.Category][]movie.Movie `json:"listings"`
	SearchResults  []movie.Movie                    `json:"search_results"`
	Favorites      []movie.Movie                    `json:"favorites"`
	Watchlist      []movie.Movie                    `json:"watchlist"`
	Loading        bool                             `json:"loading"`
	SearchLoading  bool                             `json:"search_loading"`
	DetailLoading  bool                             `json:"detail_loading"`
	Error          string                           `json:"error,omitempty"`
	CurrentMovieID int64                            `json:"current_movie_id,omitempty"`
}

// Snapshot returns a consistent copy of the whole state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Listings:      make(map[movie.Category][]movie.Movie, len(movie.Categories)),
		SearchResults: movie.Clone(s.searchResults),
		Favorites:     movie.Clone(s.collections[Favorites]),
		Watchlist:     movie.Clone(s.collections[Watchlist]),
		Loading:       s.listingLoading > 0,
		SearchLoading: s.searchLoading > 0,
		DetailLoading: s.detailLoading > 0,
		Error:         s.errMsg,
	}
	for _, c := range movie.Categories {
		snap.Listings[c] = movie.Clone(s.listings[c])
	}
	if s.current != nil {
		snap.CurrentMovieID = s.current.ID
	}
	return snap
}
