// Package favorite exposes per-movie membership views over the store's
// favorites and watchlist collections.
package favorite

import (
	"context"
	"sync"

	"github.com/vmunix/cineverse/internal/events"
	"github.com/vmunix/cineverse/internal/movie"
	"github.com/vmunix/cineverse/internal/store"
)

// Collections is the part of the store a Toggle depends on.
type Collections interface {
	Contains(c store.Collection, id int64) bool
	Toggle(ctx context.Context, c store.Collection, r movie.Record) (bool, error)
	Subscribe(c store.Collection, bufferSize int) <-chan events.Event
	Unsubscribe(ch <-chan events.Event)
}

// Toggle is a membership view of one movie in one collection. Active is always
// read from the store, so two Toggles for the same movie never disagree.
type Toggle struct {
	store      Collections
	collection store.Collection
	record     movie.Record

	sub     <-chan events.Event
	changes chan bool
	done    chan struct{}
	once    sync.Once
	wg      sync.WaitGroup
}

// NewFavorite returns the favorites toggle for r.
func NewFavorite(s Collections, r movie.Record) *Toggle {
	return newToggle(s, store.Favorites, r)
}

// NewWatchlist returns the watchlist toggle for r.
func NewWatchlist(s Collections, r movie.Record) *Toggle {
	return newToggle(s, store.Watchlist, r)
}

func newToggle(s Collections, c store.Collection, r movie.Record) *Toggle {
	t := &Toggle{
		store:      s,
		collection: c,
		record:     r,
		sub:        s.Subscribe(c, 16),
		changes:    make(chan bool, 1),
		done:       make(chan struct{}),
	}
	t.wg.Add(1)
	go t.watch()
	return t
}

// MovieID returns the id of the movie this toggle tracks.
func (t *Toggle) MovieID() int64 {
	return t.record.MovieID()
}

// Collection returns the collection this toggle tracks.
func (t *Toggle) Collection() store.Collection {
	return t.collection
}

// Active reports whether the movie is currently a member.
func (t *Toggle) Active() bool {
	return t.store.Contains(t.collection, t.record.MovieID())
}

// Toggle flips membership and reports the new state.
func (t *Toggle) Toggle(ctx context.Context) (bool, error) {
	return t.store.Toggle(ctx, t.collection, t.record)
}

// Changes receives the recomputed Active value after every change to the
// collection. Only the latest value is kept for slow readers. The channel is
// closed by Close or when the store shuts down.
func (t *Toggle) Changes() <-chan bool {
	return t.changes
}

// Close stops change delivery. It is safe to call more than once.
func (t *Toggle) Close() {
	t.once.Do(func() {
		close(t.done)
		t.store.Unsubscribe(t.sub)
	})
	t.wg.Wait()
}

func (t *Toggle) watch() {
	defer t.wg.Done()
	defer close(t.changes)

	for {
		select {
		case _, ok := <-t.sub:
			if !ok {
				return
			}
			active := t.Active()
			select {
			case <-t.changes:
			default:
			}
			t.changes <- active
		case <-t.done:
			return
		}
	}
}
