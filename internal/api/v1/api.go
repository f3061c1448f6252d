// Package v1 implements the native REST API.
package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/vmunix/cineverse/internal/store"
	"github.com/vmunix/cineverse/internal/tmdb"
)

// Server is the v1 API server.
type Server struct {
	deps ServerDeps
	log  *slog.Logger

	// The catalog keeps one result set per view, so a fetch and the read that
	// follows it must not interleave with another request for the same view.
	listingMu sync.Mutex
	searchMu  sync.Mutex
	detailMu  sync.Mutex
}

// New creates a new v1 API server.
func New(deps ServerDeps) (*Server, error) {
	if err := deps.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dependencies: %w", err)
	}
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Server{deps: deps, log: log.With("component", "api")}, nil
}

// RegisterRoutes registers API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	// Browse
	mux.HandleFunc("GET /api/v1/listings/{category}", s.listing)
	mux.HandleFunc("GET /api/v1/search", s.search)
	mux.HandleFunc("DELETE /api/v1/search", s.clearSearch)
	mux.HandleFunc("GET /api/v1/discover", s.discover)

	// Movies
	mux.HandleFunc("GET /api/v1/movies/{id}", s.getMovie)
	mux.HandleFunc("GET /api/v1/movies/{id}/similar", s.similar)

	// Collections
	mux.HandleFunc("GET /api/v1/favorites", s.listCollection(store.Favorites))
	mux.HandleFunc("POST /api/v1/favorites/{id}/toggle", s.toggle(store.Favorites))
	mux.HandleFunc("GET /api/v1/watchlist", s.listCollection(store.Watchlist))
	mux.HandleFunc("POST /api/v1/watchlist/{id}/toggle", s.toggle(store.Watchlist))

	// System
	mux.HandleFunc("GET /api/v1/status", s.getStatus)
	mux.HandleFunc("GET /api/v1/history", s.requireEventLog(s.listHistory))
	mux.HandleFunc("GET /api/v1/images", s.imageURL)
}

// Error response
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message, Code: errCode})
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

// writeUpstreamError maps a TMDB or store failure to a response. message is
// used when err carries no user-facing message of its own.
func writeUpstreamError(w http.ResponseWriter, err error, message string) {
	var opErr *store.OpError
	if errors.As(err, &opErr) {
		message = opErr.Message
	}

	switch {
	case errors.Is(err, tmdb.ErrNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", message)
	case errors.Is(err, tmdb.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, "RATE_LIMITED", message)
	case errors.Is(err, tmdb.ErrUnauthorized):
		writeError(w, http.StatusBadGateway, "UPSTREAM_UNAUTHORIZED", message)
	default:
		writeError(w, http.StatusBadGateway, "UPSTREAM_ERROR", message)
	}
}

// pathID extracts an integer ID from the URL path.
func pathID(r *http.Request, name string) (int64, error) {
	idStr := r.PathValue(name)
	if idStr == "" {
		return 0, fmt.Errorf("missing path parameter: %s", name)
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", name, idStr)
	}
	return id, nil
}

// queryInt extracts an optional integer from query string.
func queryInt(r *http.Request, name string, defaultVal int) (int, error) {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal, nil
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", name, val)
	}
	return i, nil
}

// queryPage extracts the 1-based page parameter.
func queryPage(r *http.Request) (int, error) {
	page, err := queryInt(r, "page", 1)
	if err != nil {
		return 0, err
	}
	if page < 1 {
		return 0, fmt.Errorf("invalid page: %d", page)
	}
	return page, nil
}
