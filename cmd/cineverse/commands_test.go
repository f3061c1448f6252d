package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/cineverse/internal/movie"
)

func ptr[T any](v T) *T { return &v }

func fightClubRoutes() map[string]any {
	runtime := 139
	return map[string]any{
		"/movie/550": movie.Details{
			Movie: movie.Movie{
				ID:          550,
				Title:       "Fight Club",
				ReleaseDate: "1999-10-15",
				PosterPath:  ptr("/pB8BM7pdSp6B6Ih7QZ4DrQ3PmJK.jpg"),
				VoteAverage: 8.4,
				VoteCount:   27000,
			},
			Runtime: &runtime,
			Genres:  []movie.Genre{{ID: 18, Name: "Drama"}},
			Tagline: "Mischief. Mayhem. Soap.",
		},
		"/movie/550/credits": movie.Credits{
			ID:   550,
			Cast: []movie.CastMember{{Name: "Edward Norton", Character: "The Narrator"}},
			Crew: []movie.CrewMember{{Name: "David Fincher", Job: "Director"}},
		},
		"/movie/194": movie.Details{
			Movie:  movie.Movie{ID: 194, Title: "Amélie", ReleaseDate: "2001-04-25"},
			Genres: []movie.Genre{{ID: 35, Name: "Comedy"}},
		},
		"/movie/348": movie.Details{
			Movie:  movie.Movie{ID: 348, Title: "Alien", ReleaseDate: "1979-05-25"},
			Genres: []movie.Genre{{ID: 27, Name: "Horror"}},
		},
		"/movie/popular": movie.Page{
			Page: 1,
			Results: []movie.Movie{
				{ID: 550, Title: "Fight Club", ReleaseDate: "1999-10-15", VoteAverage: 8.4},
				{ID: 13, Title: "Forrest Gump", ReleaseDate: "1994-06-23", VoteAverage: 8.5},
			},
			TotalPages:   1,
			TotalResults: 2,
		},
		"/search/movie": movie.Page{
			Page:         1,
			Results:      []movie.Movie{{ID: 550, Title: "Fight Club", ReleaseDate: "1999-10-15"}},
			TotalPages:   1,
			TotalResults: 1,
		},
		"/movie/550/similar": movie.Page{
			Page:         1,
			Results:      []movie.Movie{{ID: 807, Title: "Se7en"}},
			TotalPages:   4,
			TotalResults: 80,
		},
		"/discover/movie": movie.Page{
			Page:         2,
			Results:      []movie.Movie{{ID: 680, Title: "Pulp Fiction"}},
			TotalPages:   9,
			TotalResults: 180,
		},
	}
}

func testConfig(t *testing.T, driver string) string {
	t.Helper()
	upstream := fakeTMDB(t, fightClubRoutes())
	return writeTestConfig(t, upstream.URL, driver)
}

func TestBrowse(t *testing.T) {
	cfg := testConfig(t, "sqlite")

	out, err := runCLI(t, "--config", cfg, "browse", "popular")
	require.NoError(t, err)
	assert.Contains(t, out, "Popular (2)")
	assert.Contains(t, out, "Fight Club")
	assert.Contains(t, out, "Forrest Gump")
	assert.Contains(t, out, "1994")
}

func TestBrowse_JSON(t *testing.T) {
	cfg := testConfig(t, "sqlite")

	out, err := runCLI(t, "--config", cfg, "--json", "browse", "popular")
	require.NoError(t, err)

	var movies []movie.Movie
	require.NoError(t, json.Unmarshal([]byte(out), &movies))
	require.Len(t, movies, 2)
	assert.Equal(t, int64(550), movies[0].ID)
}

func TestBrowse_InvalidCategory(t *testing.T) {
	cfg := testConfig(t, "sqlite")

	_, err := runCLI(t, "--config", cfg, "browse", "upcoming")
	require.Error(t, err)
}

func TestBrowse_UpstreamFailure(t *testing.T) {
	upstream := fakeTMDB(t, map[string]any{})
	cfg := writeTestConfig(t, upstream.URL, "memory")

	_, err := runCLI(t, "--config", cfg, "browse", "top-rated")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch top rated movies")
}

func TestSearch(t *testing.T) {
	cfg := testConfig(t, "sqlite")

	out, err := runCLI(t, "--config", cfg, "search", "fight", "club")
	require.NoError(t, err)
	assert.Contains(t, out, `Results for "fight club" (1)`)
	assert.Contains(t, out, "Fight Club")
}

func TestShow(t *testing.T) {
	cfg := testConfig(t, "sqlite")

	out, err := runCLI(t, "--config", cfg, "show", "550")
	require.NoError(t, err)
	assert.Contains(t, out, "Fight Club (1999)")
	assert.Contains(t, out, "Mischief. Mayhem. Soap.")
	assert.Contains(t, out, "Runtime:  139m")
	assert.Contains(t, out, "Genres:   Drama")
	assert.Contains(t, out, "Director: David Fincher")
	assert.Contains(t, out, "Edward Norton as The Narrator")
	assert.Contains(t, out, "https://img.test/t/p/w500/pB8BM7pdSp6B6Ih7QZ4DrQ3PmJK.jpg")
}

func TestShow_Errors(t *testing.T) {
	cfg := testConfig(t, "sqlite")

	_, err := runCLI(t, "--config", cfg, "show", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid movie ID")

	_, err = runCLI(t, "--config", cfg, "show", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch movie details")
}

func TestSimilarAndDiscover(t *testing.T) {
	cfg := testConfig(t, "sqlite")

	out, err := runCLI(t, "--config", cfg, "similar", "550")
	require.NoError(t, err)
	assert.Contains(t, out, "Page 1 of 4 (80 results)")
	assert.Contains(t, out, "Se7en")

	out, err = runCLI(t, "--config", cfg, "discover", "--genres", "18", "--page", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Page 2 of 9")
	assert.Contains(t, out, "Pulp Fiction")
}

func TestFavorites_TogglePersists(t *testing.T) {
	cfg := testConfig(t, "sqlite")

	out, err := runCLI(t, "--config", cfg, "favorites", "toggle", "550")
	require.NoError(t, err)
	assert.Contains(t, out, "Added Fight Club to favorites (1)")

	out, err = runCLI(t, "--config", cfg, "favorites", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "favorites (1)")
	assert.Contains(t, out, "Fight Club")

	// flags show up in other views
	out, err = runCLI(t, "--config", cfg, "browse", "popular")
	require.NoError(t, err)
	assert.Contains(t, out, "F   550")

	out, err = runCLI(t, "--config", cfg, "favorites", "toggle", "550")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed Fight Club from favorites (0)")

	out, err = runCLI(t, "--config", cfg, "favorites", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No movies found")
}

func TestFavorites_ToggleUnknownMovie(t *testing.T) {
	cfg := testConfig(t, "sqlite")

	_, err := runCLI(t, "--config", cfg, "favorites", "toggle", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch movie 1")
}

func TestWatchlist_AddRemoveAndFilter(t *testing.T) {
	cfg := testConfig(t, "sqlite")

	for _, id := range []string{"194", "348"} {
		_, err := runCLI(t, "--config", cfg, "watchlist", "add", id)
		require.NoError(t, err)
	}

	out, err := runCLI(t, "--config", cfg, "--json", "watchlist", "list", "--title", "amelie")
	require.NoError(t, err)
	var movies []movie.Movie
	require.NoError(t, json.Unmarshal([]byte(out), &movies))
	require.Len(t, movies, 1)
	assert.Equal(t, int64(194), movies[0].ID)

	out, err = runCLI(t, "--config", cfg, "--json", "watchlist", "list", "--genre", "27")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &movies))
	require.Len(t, movies, 1)
	assert.Equal(t, int64(348), movies[0].ID)

	out, err = runCLI(t, "--config", cfg, "watchlist", "rm", "348")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed Alien from watchlist (1)")

	// favorites are unaffected
	out, err = runCLI(t, "--config", cfg, "favorites", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No movies found")
}

func TestHistory(t *testing.T) {
	cfg := testConfig(t, "sqlite")

	_, err := runCLI(t, "--config", cfg, "favorites", "toggle", "550")
	require.NoError(t, err)
	_, err = runCLI(t, "--config", cfg, "watchlist", "toggle", "194")
	require.NoError(t, err)

	out, err := runCLI(t, "--config", cfg, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "History (2)")
	assert.Contains(t, out, "favorites.added")
	assert.Contains(t, out, "watchlist.added")
	assert.Contains(t, out, "Fight Club")
	assert.Less(t, strings.Index(out, "watchlist.added"), strings.Index(out, "favorites.added"), "newest first")

	out, err = runCLI(t, "--config", cfg, "history", "--movie", "194")
	require.NoError(t, err)
	assert.Contains(t, out, "History (1)")
	assert.NotContains(t, out, "Fight Club")

	out, err = runCLI(t, "--config", cfg, "history", "--collection", "favorites")
	require.NoError(t, err)
	assert.Contains(t, out, "History (1)")
	assert.Contains(t, out, "Fight Club")

	out, err = runCLI(t, "--config", cfg, "history", "--type", "watchlist.added")
	require.NoError(t, err)
	assert.Contains(t, out, "History (1)")
	assert.NotContains(t, out, "favorites.added")

	_, err = runCLI(t, "--config", cfg, "history", "--type", "favorites.starred")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown event type")
	assert.Contains(t, err.Error(), "favorites.removed")
}

func TestHistory_RequiresSQLite(t *testing.T) {
	cfg := testConfig(t, "memory")

	_, err := runCLI(t, "--config", cfg, "history")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sqlite")
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")

	out, err := runCLI(t, "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)
	_, err = os.Stat(path)
	require.NoError(t, err)

	_, err = runCLI(t, "init", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = runCLI(t, "init", "--force", path)
	require.NoError(t, err)
}

func TestConfigPath(t *testing.T) {
	cfg := testConfig(t, "memory")
	t.Setenv("CINEVERSE_CONFIG", cfg)

	out, err := runCLI(t, "config", "path")
	require.NoError(t, err)
	assert.Contains(t, out, "* env")
	assert.Contains(t, out, cfg)

	t.Setenv("CINEVERSE_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	out, err = runCLI(t, "config", "path")
	require.NoError(t, err)
	assert.Contains(t, out, "cwd")
	assert.Contains(t, out, "/etc/cineverse/config.toml")
	assert.Contains(t, out, "No config file found")
	assert.NotContains(t, out, "*")
}

func TestConfigTest(t *testing.T) {
	cfg := testConfig(t, "sqlite")

	out, err := runCLI(t, "config", "test", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration valid!")
	assert.Contains(t, out, "token:     set")

	bad := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[storage]\ndriver = \"floppy\"\n"), 0600))
	out, err = runCLI(t, "config", "test", bad)
	require.Error(t, err)
	assert.Contains(t, out, "Validation errors:")
}

func TestConfigShow_MasksToken(t *testing.T) {
	cfg := testConfig(t, "sqlite")

	out, err := runCLI(t, "--config", cfg, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "# source: "+cfg)
	assert.Contains(t, out, "********")
	assert.NotContains(t, out, "test-token")
}

func TestImage(t *testing.T) {
	cfg := testConfig(t, "memory")

	out, err := runCLI(t, "--config", cfg, "image", "/abc.jpg", "--size", "original")
	require.NoError(t, err)
	assert.Equal(t, "https://img.test/t/p/original/abc.jpg\n", out)

	out, err = runCLI(t, "--config", cfg, "image", "/abc.jpg")
	require.NoError(t, err)
	assert.Equal(t, "https://img.test/t/p/w500/abc.jpg\n", out)
}
