package events

import "fmt"

// EntityMovie is the entity type of every collection event.
const EntityMovie = "movie"

// Collection topics.
const (
	TopicFavorites = "favorites"
	TopicWatchlist = "watchlist"
)

// Collection event types.
const (
	EventFavoriteAdded    = TopicFavorites + ".added"
	EventFavoriteRemoved  = TopicFavorites + ".removed"
	EventWatchlistAdded   = TopicWatchlist + ".added"
	EventWatchlistRemoved = TopicWatchlist + ".removed"
)

// CollectionChanged is emitted after a movie is added to or removed from a
// persisted collection.
type CollectionChanged struct {
	BaseEvent
	MovieID int64  `json:"movie_id"`
	Title   string `json:"title"`
	Added   bool   `json:"added"`
	Size    int    `json:"size"` // collection size after the change
}

// NewCollectionChanged builds the event for topic (TopicFavorites or TopicWatchlist).
func NewCollectionChanged(topic string, movieID int64, title string, added bool, size int) *CollectionChanged {
	action := "removed"
	if added {
		action = "added"
	}
	return &CollectionChanged{
		BaseEvent: NewBaseEvent(fmt.Sprintf("%s.%s", topic, action), EntityMovie, movieID),
		MovieID:   movieID,
		Title:     title,
		Added:     added,
		Size:      size,
	}
}
