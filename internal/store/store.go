// Package store holds the in-memory movie state and keeps it in sync with the
// metadata provider and the local persisted collections.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/vmunix/cineverse/internal/events"
	"github.com/vmunix/cineverse/internal/movie"
)

// Collection names a persisted user collection. The name doubles as the
// persistence key and the event topic.
type Collection string

const (
	Favorites Collection = "favorites"
	Watchlist Collection = "watchlist"
)

// User-facing failure messages, one per operation category.
const (
	MsgSearch = "failed to search movies"
	MsgDetail = "failed to fetch movie details"
)

// ListingMessage returns the failure message for a listing category.
func ListingMessage(c movie.Category) string {
	return fmt.Sprintf("failed to fetch %s movies", c.Label())
}

// OpError is returned by store operations whose upstream call failed.
// Message is safe to show to users; Err is the underlying cause.
type OpError struct {
	Op      string
	Message string
	Err     error
}

func (e *OpError) Error() string {
	return e.Message + ": " + e.Err.Error()
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the store logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Store) {
		s.log = log
	}
}

// WithEventLog persists every collection change to log.
func WithEventLog(log *events.EventLog) Option {
	return func(s *Store) {
		s.eventLog = log
	}
}

// Store is the explicitly constructed application state. Create one with New,
// call Initialize once, and Close when done.
type Store struct {
	client   MetadataClient
	persist  Persistence
	bus      *events.Bus
	eventLog *events.EventLog
	log      *slog.Logger

	// writeMu serializes collection mutations with their write-through save so
	// the persisted value always matches the latest in-memory collection.
	writeMu sync.Mutex

	mu             sync.RWMutex
	listings       map[movie.Category][]movie.Movie
	listingIssued  map[movie.Category]uint64
	listingApplied map[movie.Category]uint64
	searchResults  []movie.Movie
	current        *movie.Details
	credits        *movie.Credits
	collections    map[Collection][]movie.Movie
	listingLoading int
	searchLoading  int
	detailLoading  int
	errMsg         string
}

// New creates a store reading through client and writing through persist.
func New(client MetadataClient, persist Persistence, opts ...Option) *Store {
	s := &Store{
		client:         client,
		persist:        persist,
		listings:       make(map[movie.Category][]movie.Movie),
		listingIssued:  make(map[movie.Category]uint64),
		listingApplied: make(map[movie.Category]uint64),
		searchResults:  []movie.Movie{},
		collections: map[Collection][]movie.Movie{
			Favorites: {},
			Watchlist: {},
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	s.log = s.log.With("component", "store")
	s.bus = events.NewBus(s.eventLog, s.log)
	return s
}

// Initialize rehydrates favorites and watchlist, then fetches page 1 of every
// listing concurrently. Storage problems degrade to empty collections and
// listing failures are recorded in Err; neither aborts initialization.
func (s *Store) Initialize(ctx context.Context) error {
	if err := s.LoadCollections(ctx); err != nil {
		return err
	}

	var g errgroup.Group
	for _, category := range movie.Categories {
		g.Go(func() error {
			// failures are recorded in Err and logged by FetchListing
			_ = s.FetchListing(ctx, category, 1)
			return nil
		})
	}
	_ = g.Wait()

	s.log.Info("store initialized",
		"favorites", len(s.Favorites()),
		"watchlist", len(s.Watchlist()))
	return nil
}

// LoadCollections rehydrates favorites and watchlist from persistence without
// touching the network. A collection that cannot be read starts empty.
func (s *Store) LoadCollections(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	for _, c := range []Collection{Favorites, Watchlist} {
		items, err := s.persist.Load(ctx, string(c))
		if err != nil {
			s.log.Warn("failed to load collection, starting empty", "collection", c, "error", err)
			items = nil
		}
		canonical := make([]movie.Movie, 0, len(items))
		for _, m := range items {
			canonical = append(canonical, movie.Canonical(m))
		}
		canonical, _ = movie.Dedupe(canonical)

		s.mu.Lock()
		s.collections[c] = canonical
		s.mu.Unlock()
	}
	return nil
}

// Close tears the store down and closes every subscription channel.
func (s *Store) Close() error {
	return s.bus.Close()
}

// FetchListing fetches one page of a listing. Page 1 replaces the collection;
// later pages append without de-duplication. Requests are never cancelled by
// newer ones, so the last response to complete wins.
func (s *Store) FetchListing(ctx context.Context, category movie.Category, page int) error {
	if !category.Valid() {
		return fmt.Errorf("unknown listing category %q", category)
	}
	if page < 1 {
		return fmt.Errorf("invalid page %d: pages start at 1", page)
	}

	s.mu.Lock()
	s.listingLoading++
	s.errMsg = ""
	s.listingIssued[category]++
	seq := s.listingIssued[category]
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.listingLoading--
		s.mu.Unlock()
	}()

	p, err := s.client.Listing(ctx, category, page)
	if err != nil {
		return s.fail("fetch listing", ListingMessage(category), err, "category", category, "page", page)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq < s.listingApplied[category] {
		s.log.Warn("stale listing response applied over newer data",
			"category", category, "page", page, "request", seq, "newest_applied", s.listingApplied[category])
	} else {
		s.listingApplied[category] = seq
	}
	s.listings[category] = mergePage(s.listings[category], p.Results, page)
	return nil
}

// SearchMovies fetches one page of search results with the same replace/append
// rules as FetchListing.
func (s *Store) SearchMovies(ctx context.Context, query string, page int) error {
	if page < 1 {
		return fmt.Errorf("invalid page %d: pages start at 1", page)
	}

	s.mu.Lock()
	s.searchLoading++
	s.errMsg = ""
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.searchLoading--
		s.mu.Unlock()
	}()

	p, err := s.client.Search(ctx, query, page)
	if err != nil {
		return s.fail("search", MsgSearch, err, "query", query, "page", page)
	}

	s.mu.Lock()
	s.searchResults = mergePage(s.searchResults, p.Results, page)
	s.mu.Unlock()
	return nil
}

// ClearSearchResults empties the search result collection.
func (s *Store) ClearSearchResults() {
	s.mu.Lock()
	s.searchResults = []movie.Movie{}
	s.mu.Unlock()
}

// FetchMovieDetail fetches detail and credits concurrently. Both must succeed;
// on any failure the previous detail and credits are kept.
func (s *Store) FetchMovieDetail(ctx context.Context, id int64) error {
	s.mu.Lock()
	s.detailLoading++
	s.errMsg = ""
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.detailLoading--
		s.mu.Unlock()
	}()

	var (
		details *movie.Details
		credits *movie.Credits
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		details, err = s.client.MovieDetails(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		credits, err = s.client.MovieCredits(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return s.fail("fetch detail", MsgDetail, err, "movie_id", id)
	}

	s.mu.Lock()
	s.current = details
	s.credits = credits
	s.mu.Unlock()
	return nil
}

func (s *Store) fail(op, msg string, err error, attrs ...any) error {
	s.log.Error(msg, append(attrs, "error", err)...)
	s.mu.Lock()
	s.errMsg = msg
	s.mu.Unlock()
	return &OpError{Op: op, Message: msg, Err: err}
}

func mergePage(existing, results []movie.Movie, page int) []movie.Movie {
	if page == 1 {
		return movie.Clone(results)
	}
	return append(existing, movie.Clone(results)...)
}
