package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vmunix/cineverse/internal/movie"
	"github.com/vmunix/cineverse/internal/store"
	"github.com/vmunix/cineverse/internal/tmdb"
)

var browseCmd = &cobra.Command{
	Use:   "browse <category>",
	Short: "Show a TMDB listing",
	Long: `Show one of the TMDB listings: now-playing, popular or top-rated.

Examples:
  cineverse browse popular
  cineverse browse top-rated --pages 3`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"now-playing", "popular", "top-rated"},
	RunE:      runBrowseCmd,
}

var searchCmd = &cobra.Command{
	Use:   "search <query>...",
	Short: "Search TMDB by title",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearchCmd,
}

var showCmd = &cobra.Command{
	Use:   "show <movie-id>",
	Short: "Show movie details and credits",
	Args:  cobra.ExactArgs(1),
	RunE:  runShowCmd,
}

var similarCmd = &cobra.Command{
	Use:   "similar <movie-id>",
	Short: "List movies similar to a movie",
	Args:  cobra.ExactArgs(1),
	RunE:  runSimilarCmd,
}

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Discover movies by genre, year and rating",
	Long: `Discover movies with TMDB filters.

Examples:
  cineverse discover --genres 18,35 --year 2023
  cineverse discover --sort-by vote_average.desc --min-vote 8`,
	Args: cobra.NoArgs,
	RunE: runDiscoverCmd,
}

func init() {
	rootCmd.AddCommand(browseCmd, searchCmd, showCmd, similarCmd, discoverCmd)

	browseCmd.Flags().Int("pages", 1, "Number of pages to load")
	searchCmd.Flags().Int("pages", 1, "Number of pages to load")
	similarCmd.Flags().Int("page", 1, "Page number")

	discoverCmd.Flags().Int("page", 1, "Page number")
	discoverCmd.Flags().String("sort-by", "", "Sort order (e.g. popularity.desc)")
	discoverCmd.Flags().String("genres", "", "Comma-separated genre IDs")
	discoverCmd.Flags().Int("year", 0, "Primary release year")
	discoverCmd.Flags().Float64("min-vote", 0, "Minimum vote average")
}

func runBrowseCmd(cmd *cobra.Command, args []string) error {
	category, err := movie.ParseCategory(args[0])
	if err != nil {
		return err
	}
	pages, _ := cmd.Flags().GetInt("pages")

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	for page := 1; page <= pages; page++ {
		if err := a.store.FetchListing(cmd.Context(), category, page); err != nil {
			return err
		}
	}

	movies := a.store.Listing(category)
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), movies)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s (%d):\n\n", strings.ToUpper(category.Label()[:1])+category.Label()[1:], len(movies))
	printMovies(cmd.OutOrStdout(), movies, a.marks)
	return nil
}

func runSearchCmd(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	pages, _ := cmd.Flags().GetInt("pages")

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	for page := 1; page <= pages; page++ {
		if err := a.store.SearchMovies(cmd.Context(), query, page); err != nil {
			return err
		}
	}

	results := a.store.SearchResults()
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), results)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Results for %q (%d):\n\n", query, len(results))
	printMovies(cmd.OutOrStdout(), results, a.marks)
	return nil
}

func runShowCmd(cmd *cobra.Command, args []string) error {
	id, err := parseMovieID(args[0])
	if err != nil {
		return err
	}

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.store.FetchMovieDetail(cmd.Context(), id); err != nil {
		return err
	}
	details := a.store.CurrentMovie()
	credits := a.store.CurrentCredits()

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"movie":     details,
			"credits":   credits,
			"favorite":  a.store.IsFavorite(id),
			"watchlist": a.store.InWatchlist(id),
		})
	}
	printDetails(cmd.OutOrStdout(), details, credits, a.tmdb.ImageURL(details.PosterPath, ""), a.marks(id))
	return nil
}

func runSimilarCmd(cmd *cobra.Command, args []string) error {
	id, err := parseMovieID(args[0])
	if err != nil {
		return err
	}
	page, _ := cmd.Flags().GetInt("page")

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	p, err := a.tmdb.SimilarMovies(cmd.Context(), id, page)
	if err != nil {
		return fmt.Errorf("failed to fetch similar movies: %w", err)
	}
	return a.printPage(cmd, p)
}

func runDiscoverCmd(cmd *cobra.Command, _ []string) error {
	var params tmdb.DiscoverParams
	params.Page, _ = cmd.Flags().GetInt("page")
	params.SortBy, _ = cmd.Flags().GetString("sort-by")
	params.WithGenres, _ = cmd.Flags().GetString("genres")
	params.PrimaryReleaseYear, _ = cmd.Flags().GetInt("year")
	params.VoteAverageGTE, _ = cmd.Flags().GetFloat64("min-vote")

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	p, err := a.tmdb.Discover(cmd.Context(), params)
	if err != nil {
		return fmt.Errorf("failed to discover movies: %w", err)
	}
	return a.printPage(cmd, p)
}

func (a *app) printPage(cmd *cobra.Command, p *movie.Page) error {
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), p)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Page %d of %d (%d results):\n\n", p.Page, p.TotalPages, p.TotalResults)
	printMovies(cmd.OutOrStdout(), p.Results, a.marks)
	return nil
}

// marks flags favorites with F and watchlist entries with W.
func (a *app) marks(id int64) string {
	var b strings.Builder
	if a.store.Contains(store.Favorites, id) {
		b.WriteByte('F')
	}
	if a.store.Contains(store.Watchlist, id) {
		b.WriteByte('W')
	}
	return b.String()
}

func parseMovieID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid movie ID: %s", s)
	}
	return id, nil
}
