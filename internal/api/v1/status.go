package v1

import (
	"net/http"
	"strconv"
	"time"

	"github.com/vmunix/cineverse/internal/events"
	"github.com/vmunix/cineverse/internal/store"
)

// requireEventLog wraps a handler and returns 503 if history is not recorded.
func (s *Server) requireEventLog(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.deps.EventLog == nil {
			writeError(w, http.StatusServiceUnavailable, "NO_EVENT_LOG", "Event log not configured")
			return
		}
		next(w, r)
	}
}

func (s *Server) getStatus(w http.ResponseWriter, _ *http.Request) {
	snap := s.deps.Catalog.Snapshot()

	resp := statusResponse{
		Status:        "ok",
		Favorites:     len(snap.Favorites),
		Watchlist:     len(snap.Watchlist),
		Listings:      make(map[string]int, len(snap.Listings)),
		SearchResults: len(snap.SearchResults),
		Loading:       snap.Loading,
		SearchLoading: snap.SearchLoading,
		DetailLoading: snap.DetailLoading,
		LastError:     snap.Error,
		History:       s.deps.EventLog != nil,
	}
	for category, movies := range snap.Listings {
		resp.Listings[string(category)] = len(movies)
	}
	writeJSON(w, http.StatusOK, resp)
}

// listHistory returns recent collection events, newest first. ?collection=
// narrows to one collection; ?movie_id= returns one movie's full history.
func (s *Server) listHistory(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 50)
	if err != nil || limit < 0 {
		writeError(w, http.StatusBadRequest, "INVALID_LIMIT", "limit must be a non-negative integer")
		return
	}
	const maxLimit = 1000
	if limit > maxLimit {
		limit = maxLimit
	}

	var raw []events.RawEvent
	if idStr := r.URL.Query().Get("movie_id"); idStr != "" {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_ID", "movie_id must be an integer")
			return
		}
		raw, err = s.deps.EventLog.ForEntity(r.Context(), events.EntityMovie, id)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "EVENT_ERROR", err.Error())
			return
		}
	} else if name := r.URL.Query().Get("collection"); name != "" {
		c, err := store.ParseCollection(name)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_COLLECTION", err.Error())
			return
		}
		raw, err = s.deps.EventLog.ForTopic(r.Context(), string(c), limit)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "EVENT_ERROR", err.Error())
			return
		}
	} else {
		raw, err = s.deps.EventLog.Recent(r.Context(), limit)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "EVENT_ERROR", err.Error())
			return
		}
	}

	resp := listEventsResponse{
		Items: make([]EventResponse, len(raw)),
		Total: len(raw),
		Limit: limit,
	}
	for i, e := range raw {
		resp.Items[i] = EventResponse{
			ID:         e.ID,
			EventType:  e.EventType,
			EntityType: e.EntityType,
			EntityID:   e.EntityID,
			Payload:    e.Payload,
			OccurredAt: e.OccurredAt.Format(time.RFC3339),
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
