package v1

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/vmunix/cineverse/internal/movie"
	"github.com/vmunix/cineverse/internal/store"
	"github.com/vmunix/cineverse/internal/tmdb"
)

// listing returns the accumulated pages of a listing after fetching page.
func (s *Server) listing(w http.ResponseWriter, r *http.Request) {
	category, err := movie.ParseCategory(r.PathValue("category"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_CATEGORY", err.Error())
		return
	}
	page, err := queryPage(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_PAGE", err.Error())
		return
	}

	s.listingMu.Lock()
	defer s.listingMu.Unlock()

	if err := s.deps.Catalog.FetchListing(r.Context(), category, page); err != nil {
		writeUpstreamError(w, err, store.ListingMessage(category))
		return
	}

	resp := s.listOf(s.deps.Catalog.Listing(category))
	resp.Page = page
	writeJSON(w, http.StatusOK, resp)
}

// search returns the accumulated search pages after fetching page.
func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "MISSING_QUERY", "query parameter q is required")
		return
	}
	page, err := queryPage(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_PAGE", err.Error())
		return
	}

	s.searchMu.Lock()
	defer s.searchMu.Unlock()

	if err := s.deps.Catalog.SearchMovies(r.Context(), query, page); err != nil {
		writeUpstreamError(w, err, store.MsgSearch)
		return
	}

	resp := s.listOf(s.deps.Catalog.SearchResults())
	resp.Page = page
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) clearSearch(w http.ResponseWriter, _ *http.Request) {
	s.searchMu.Lock()
	s.deps.Catalog.ClearSearchResults()
	s.searchMu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

// getMovie fetches detail and credits through the catalog.
func (s *Server) getMovie(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}

	s.detailMu.Lock()
	defer s.detailMu.Unlock()

	if err := s.deps.Catalog.FetchMovieDetail(r.Context(), id); err != nil {
		writeUpstreamError(w, err, store.MsgDetail)
		return
	}

	details := s.deps.Catalog.CurrentMovie()
	credits := s.deps.Catalog.CurrentCredits()
	if details == nil {
		writeError(w, http.StatusBadGateway, "UPSTREAM_ERROR", store.MsgDetail)
		return
	}
	resp := detailResponse{
		Details:     details,
		PosterURL:   s.deps.Metadata.ImageURL(details.PosterPath, ""),
		BackdropURL: s.deps.Metadata.ImageURL(details.BackdropPath, "original"),
		Favorite:    s.deps.Catalog.Contains(store.Favorites, id),
		Watchlist:   s.deps.Catalog.Contains(store.Watchlist, id),
		Directors:   []string{},
		Credits:     credits,
	}
	if credits != nil {
		for _, d := range credits.Directors() {
			resp.Directors = append(resp.Directors, d.Name)
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) similar(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}
	page, err := queryPage(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_PAGE", err.Error())
		return
	}

	p, err := s.deps.Metadata.SimilarMovies(r.Context(), id, page)
	if err != nil {
		s.log.Error("similar movies failed", "movie_id", id, "error", err)
		writeUpstreamError(w, err, "failed to fetch similar movies")
		return
	}
	writeJSON(w, http.StatusOK, s.pageResponse(p))
}

func (s *Server) discover(w http.ResponseWriter, r *http.Request) {
	page, err := queryPage(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_PAGE", err.Error())
		return
	}
	year, err := queryInt(r, "year", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_YEAR", err.Error())
		return
	}
	params := tmdb.DiscoverParams{
		Page:               page,
		SortBy:             r.URL.Query().Get("sort_by"),
		WithGenres:         r.URL.Query().Get("with_genres"),
		PrimaryReleaseYear: year,
	}
	if v := r.URL.Query().Get("vote_average_gte"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_VOTE_AVERAGE", "vote_average_gte must be a number")
			return
		}
		params.VoteAverageGTE = f
	}

	p, err := s.deps.Metadata.Discover(r.Context(), params)
	if err != nil {
		s.log.Error("discover failed", "error", err)
		writeUpstreamError(w, err, "failed to discover movies")
		return
	}
	writeJSON(w, http.StatusOK, s.pageResponse(p))
}

func (s *Server) imageURL(w http.ResponseWriter, r *http.Request) {
	var path *string
	if p := r.URL.Query().Get("path"); p != "" {
		path = &p
	}
	writeJSON(w, http.StatusOK, imageResponse{URL: s.deps.Metadata.ImageURL(path, r.URL.Query().Get("size"))})
}

func (s *Server) pageResponse(p *movie.Page) listResponse {
	resp := s.listOf(p.Results)
	resp.Page = p.Page
	resp.TotalPages = p.TotalPages
	resp.Total = p.TotalResults
	return resp
}
