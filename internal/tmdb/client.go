// Package tmdb provides a client for The Movie Database API v3.
package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/vmunix/cineverse/internal/movie"
)

const (
	DefaultBaseURL      = "https://api.themoviedb.org/3"
	DefaultImageBaseURL = "https://image.tmdb.org/t/p"
	DefaultLanguage     = "zh-CN"
	defaultTimeout      = 10 * time.Second
)

// Sentinel errors for TMDB API responses.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized: invalid or missing bearer token")
	ErrRateLimited  = errors.New("rate limited: too many requests")
)

// APIError is returned for non-2xx responses without a dedicated sentinel.
type APIError struct {
	StatusCode int
	Status     string
	Message    string // TMDB status_message, when present
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("TMDB API error: %s: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("TMDB API error: %s", e.Status)
}

// Client is a TMDB API client authenticated with a v4 read access token.
// It holds no state between calls.
type Client struct {
	token        string
	baseURL      string
	imageBaseURL string
	language     string
	httpClient   *http.Client
	log          *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithImageBaseURL sets the image CDN base URL.
func WithImageBaseURL(url string) Option {
	return func(c *Client) {
		c.imageBaseURL = url
	}
}

// WithLanguage sets the language parameter sent with every request.
func WithLanguage(lang string) Option {
	return func(c *Client) {
		c.language = lang
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets a logger for debug output.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.log = log.With("component", "tmdb")
	}
}

// NewClient creates a new TMDB client. An empty token is accepted; requests
// will then fail with ErrUnauthorized.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		token:        token,
		baseURL:      DefaultBaseURL,
		imageBaseURL: DefaultImageBaseURL,
		language:     DefaultLanguage,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NowPlaying fetches one page of movies currently in theaters.
func (c *Client) NowPlaying(ctx context.Context, page int) (*movie.Page, error) {
	return c.Listing(ctx, movie.NowPlaying, page)
}

// Popular fetches one page of popular movies.
func (c *Client) Popular(ctx context.Context, page int) (*movie.Page, error) {
	return c.Listing(ctx, movie.Popular, page)
}

// TopRated fetches one page of the highest rated movies.
func (c *Client) TopRated(ctx context.Context, page int) (*movie.Page, error) {
	return c.Listing(ctx, movie.TopRated, page)
}

// Listing fetches one page of a curated listing.
func (c *Client) Listing(ctx context.Context, category movie.Category, page int) (*movie.Page, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("unknown listing category %q", category)
	}
	var p movie.Page
	if err := c.get(ctx, "/movie/"+string(category), pageParams(page), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Search searches movies by title.
func (c *Client) Search(ctx context.Context, query string, page int) (*movie.Page, error) {
	params := pageParams(page)
	params.Set("query", query)

	var p movie.Page
	if err := c.get(ctx, "/search/movie", params, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// DiscoverParams filters /discover/movie. Zero values are omitted.
type DiscoverParams struct {
	Page               int
	SortBy             string // defaults to popularity.desc
	WithGenres         string // comma (AND) or pipe (OR) separated genre ids
	PrimaryReleaseYear int
	VoteAverageGTE     float64
}

func (p DiscoverParams) values() url.Values {
	v := pageParams(p.Page)
	sortBy := p.SortBy
	if sortBy == "" {
		sortBy = "popularity.desc"
	}
	v.Set("sort_by", sortBy)
	if p.WithGenres != "" {
		v.Set("with_genres", p.WithGenres)
	}
	if p.PrimaryReleaseYear > 0 {
		v.Set("primary_release_year", strconv.Itoa(p.PrimaryReleaseYear))
	}
	if p.VoteAverageGTE > 0 {
		v.Set("vote_average.gte", strconv.FormatFloat(p.VoteAverageGTE, 'f', -1, 64))
	}
	return v
}

// Discover fetches movies matching filter criteria, used for recommendations.
func (c *Client) Discover(ctx context.Context, params DiscoverParams) (*movie.Page, error) {
	var p movie.Page
	if err := c.get(ctx, "/discover/movie", params.values(), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// MovieDetails fetches the detail entity for one movie.
func (c *Client) MovieDetails(ctx context.Context, id int64) (*movie.Details, error) {
	var d movie.Details
	if err := c.get(ctx, fmt.Sprintf("/movie/%d", id), url.Values{}, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// MovieCredits fetches cast and crew for one movie.
func (c *Client) MovieCredits(ctx context.Context, id int64) (*movie.Credits, error) {
	var cr movie.Credits
	if err := c.get(ctx, fmt.Sprintf("/movie/%d/credits", id), url.Values{}, &cr); err != nil {
		return nil, err
	}
	return &cr, nil
}

// SimilarMovies fetches one page of movies similar to id.
func (c *Client) SimilarMovies(ctx context.Context, id int64, page int) (*movie.Page, error) {
	var p movie.Page
	if err := c.get(ctx, fmt.Sprintf("/movie/%d/similar", id), pageParams(page), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func pageParams(page int) url.Values {
	if page < 1 {
		page = 1
	}
	v := url.Values{}
	v.Set("page", strconv.Itoa(page))
	return v
}

// get performs an authenticated GET and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	start := time.Now()

	params.Set("language", c.language)
	reqURL := c.baseURL + endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkResponse(resp); err != nil {
		if c.log != nil {
			c.log.Debug("request failed", "endpoint", endpoint, "status", resp.StatusCode, "error", err)
		}
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	if c.log != nil {
		c.log.Debug("request completed", "endpoint", endpoint, "duration_ms", time.Since(start).Milliseconds())
	}
	return nil
}

// checkResponse maps non-2xx statuses to sentinel errors or an *APIError.
func checkResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	switch resp.StatusCode {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusTooManyRequests:
		return ErrRateLimited
	}

	apiErr := &APIError{StatusCode: resp.StatusCode, Status: resp.Status}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var payload struct {
		StatusMessage string `json:"status_message"`
	}
	if json.Unmarshal(body, &payload) == nil {
		apiErr.Message = payload.StatusMessage
	}
	return apiErr
}
