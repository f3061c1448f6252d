package v1

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/vmunix/cineverse/internal/movie"
	"github.com/vmunix/cineverse/internal/store"
)

// listCollection serves favorites or watchlist, optionally filtered by
// ?genre=<id> and ?q=<title>.
func (s *Server) listCollection(c store.Collection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		movies := s.deps.Catalog.Collection(c)

		if g := r.URL.Query().Get("genre"); g != "" {
			genreID, err := strconv.Atoi(g)
			if err != nil {
				writeError(w, http.StatusBadRequest, "INVALID_GENRE", "genre must be a numeric genre id")
				return
			}
			movies = movie.FilterByGenre(movies, genreID)
		}
		if q := r.URL.Query().Get("q"); q != "" {
			movies = movie.FilterByTitle(movies, q)
		}

		writeJSON(w, http.StatusOK, s.listOf(movies))
	}
}

// toggle flips membership of {id}. The membership check decides the
// direction: a member is removed by id, anything else is added from the
// request body when one is sent, otherwise from the detail entity fetched
// from TMDB. A racing request can make the chosen Add or Remove a no-op but
// never turns a removal into an add.
func (s *Server) toggle(c store.Collection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
			return
		}

		if s.deps.Catalog.Contains(c, id) {
			if err := s.deps.Catalog.Remove(r.Context(), c, id); err != nil {
				writeError(w, http.StatusInternalServerError, "SAVE_FAILED", err.Error())
				return
			}
			s.writeToggled(w, c, id, false)
			return
		}

		record, err := s.toggleRecord(r, id)
		var badReq *badRequestError
		switch {
		case errors.As(err, &badReq):
			writeError(w, http.StatusBadRequest, badReq.code, badReq.msg)
			return
		case err != nil:
			s.log.Error("fetch movie for toggle failed", "movie_id", id, "error", err)
			writeUpstreamError(w, err, "failed to fetch movie details")
			return
		}
		if err := s.deps.Catalog.Add(r.Context(), c, record); err != nil {
			writeError(w, http.StatusInternalServerError, "SAVE_FAILED", err.Error())
			return
		}
		s.writeToggled(w, c, id, true)
	}
}

type badRequestError struct {
	code, msg string
}

func (e *badRequestError) Error() string { return e.msg }

// toggleRecord builds the record to add for id. The body is decoded as a
// detail entity so a movie posted back from GET /movies/{id} keeps its genre
// objects for genre_ids projection. Body problems are *badRequestError; any
// other error comes from the TMDB fetch.
func (s *Server) toggleRecord(r *http.Request, id int64) (movie.Record, error) {
	var d movie.Details
	err := json.NewDecoder(r.Body).Decode(&d)
	switch {
	case errors.Is(err, io.EOF):
		details, err := s.deps.Metadata.MovieDetails(r.Context(), id)
		if err != nil {
			return nil, err
		}
		return *details, nil
	case err != nil:
		return nil, &badRequestError{code: "INVALID_JSON", msg: err.Error()}
	case d.ID != 0 && d.ID != id:
		return nil, &badRequestError{code: "ID_MISMATCH", msg: "body id does not match path id"}
	}
	d.ID = id
	if len(d.Genres) > 0 {
		return d, nil
	}
	return d.Movie, nil
}

func (s *Server) writeToggled(w http.ResponseWriter, c store.Collection, id int64, active bool) {
	writeJSON(w, http.StatusOK, toggleResponse{
		MovieID:    id,
		Collection: string(c),
		Active:     active,
		Size:       len(s.deps.Catalog.Collection(c)),
	})
}
