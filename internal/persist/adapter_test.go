package persist

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/cineverse/internal/movie"
)

// testLogger returns a discard logger for tests.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// backends returns one fresh instance of every driver.
func backends(t *testing.T) map[string]Backend {
	t.Helper()

	sqlite, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	bolt, err := OpenBolt(filepath.Join(t.TempDir(), "cineverse.db"))
	require.NoError(t, err)

	out := map[string]Backend{
		DriverMemory: NewMemoryBackend(),
		DriverSQLite: sqlite,
		DriverBolt:   bolt,
	}
	t.Cleanup(func() {
		for _, b := range out {
			_ = b.Close()
		}
	})
	return out
}

func TestAdapter_LoadMissingKey(t *testing.T) {
	for name, backend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			a := NewAdapter(backend, testLogger())
			got, err := a.Load(context.Background(), FavoritesKey)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

func TestAdapter_SaveLoadRoundTrip(t *testing.T) {
	for name, backend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			a := NewAdapter(backend, testLogger())

			poster := "/d5NXSklXo0qyIYkgV94XAgMIckC.jpg"
			in := []movie.Movie{
				{ID: 438631, Title: "Dune", PosterPath: &poster, GenreIDs: []int{878, 12}},
				{ID: 550, Title: "Fight Club", GenreIDs: []int{}},
			}
			require.NoError(t, a.Save(ctx, FavoritesKey, in))

			got, err := a.Load(ctx, FavoritesKey)
			require.NoError(t, err)
			assert.Equal(t, in, got)
		})
	}
}

func TestAdapter_SaveOverwrites(t *testing.T) {
	ctx := context.Background()
	a := NewAdapter(NewMemoryBackend(), testLogger())

	require.NoError(t, a.Save(ctx, WatchlistKey, []movie.Movie{{ID: 1, GenreIDs: []int{}}, {ID: 2, GenreIDs: []int{}}}))
	require.NoError(t, a.Save(ctx, WatchlistKey, []movie.Movie{{ID: 3, GenreIDs: []int{}}}))

	got, err := a.Load(ctx, WatchlistKey)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(3), got[0].ID)
}

func TestAdapter_SaveEmptyWritesArray(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	a := NewAdapter(backend, testLogger())

	require.NoError(t, a.Save(ctx, FavoritesKey, nil))
	raw, ok, err := backend.Get(ctx, FavoritesKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestAdapter_SaveNormalizesNilGenreIDs(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	a := NewAdapter(backend, testLogger())

	require.NoError(t, a.Save(ctx, FavoritesKey, []movie.Movie{{ID: 1}}))
	raw, _, err := backend.Get(ctx, FavoritesKey)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"genre_ids":[]`)
}

func TestAdapter_CorruptedValue(t *testing.T) {
	corrupt := map[string]string{
		"scalar":        `42`,
		"string":        `"hello"`,
		"object":        `{"id": 1}`,
		"null":          `null`,
		"truncated":     `[{"id": 1, "title": "Du`,
		"not json":      `favorites!`,
		"empty":         ``,
		"bad elements":  `[1, 2, 3]`,
		"wrong id type": `[{"id": "abc"}]`,
	}

	for backendName, backend := range backends(t) {
		for name, value := range corrupt {
			t.Run(backendName+"/"+name, func(t *testing.T) {
				ctx := context.Background()
				require.NoError(t, backend.Put(ctx, WatchlistKey, []byte(value)))

				a := NewAdapter(backend, testLogger())
				got, err := a.Load(ctx, WatchlistKey)
				require.NoError(t, err)
				require.NotNil(t, got)
				assert.Empty(t, got)

				_, ok, err := backend.Get(ctx, WatchlistKey)
				require.NoError(t, err)
				assert.False(t, ok, "corrupted key should be deleted")
			})
		}
	}
}

func TestAdapter_WatchlistSelfHeals(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	legacy := `[
		{"id": 438631, "title": "Dune", "runtime": 155, "genres": [{"id": 878, "name": "Science Fiction"}, {"id": 12, "name": "Adventure"}]},
		{"id": 550, "title": "Fight Club", "genre_ids": [18]},
		{"id": 13, "title": "Forrest Gump"}
	]`
	require.NoError(t, backend.Put(ctx, WatchlistKey, []byte(legacy)))

	a := NewAdapter(backend, testLogger())
	got, err := a.Load(ctx, WatchlistKey)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []int{878, 12}, got[0].GenreIDs)
	assert.Equal(t, []int{18}, got[1].GenreIDs)
	assert.Equal(t, []int{}, got[2].GenreIDs)

	// The repaired collection was written back.
	raw, ok, err := backend.Get(ctx, WatchlistKey)
	require.NoError(t, err)
	require.True(t, ok)
	var stored []map[string]any
	require.NoError(t, json.Unmarshal(raw, &stored))
	require.Len(t, stored, 3)
	assert.Equal(t, []any{float64(878), float64(12)}, stored[0]["genre_ids"])
	assert.NotContains(t, stored[0], "genres")
	assert.Equal(t, []any{}, stored[2]["genre_ids"])
}

func TestAdapter_FavoritesNormalizedWithoutRewrite(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	legacy := `[{"id": 438631, "title": "Dune", "genres": [{"id": 878, "name": "Science Fiction"}]}]`
	require.NoError(t, backend.Put(ctx, FavoritesKey, []byte(legacy)))

	a := NewAdapter(backend, testLogger())
	got, err := a.Load(ctx, FavoritesKey)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []int{878}, got[0].GenreIDs)

	raw, _, err := backend.Get(ctx, FavoritesKey)
	require.NoError(t, err)
	assert.Equal(t, legacy, string(raw), "favorites are not rewritten on load")
}

func TestAdapter_LoadDropsDuplicates(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	require.NoError(t, backend.Put(ctx, FavoritesKey, []byte(`[{"id":1,"title":"a","genre_ids":[]},{"id":1,"title":"b","genre_ids":[]}]`)))

	got, err := NewAdapter(backend, testLogger()).Load(ctx, FavoritesKey)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].Title)
}

type failingBackend struct {
	MemoryBackend
}

func (failingBackend) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("disk on fire")
}

func TestAdapter_BackendError(t *testing.T) {
	a := NewAdapter(&failingBackend{}, testLogger())
	got, err := a.Load(context.Background(), FavoritesKey)
	assert.ErrorContains(t, err, "disk on fire")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestOpen(t *testing.T) {
	b, err := Open(DriverMemory, "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryBackend{}, b)

	b, err = Open(DriverBolt, filepath.Join(t.TempDir(), "x", "bolt.db"))
	require.NoError(t, err)
	assert.IsType(t, &BoltBackend{}, b)
	require.NoError(t, b.Close())

	b, err = Open("", filepath.Join(t.TempDir(), "x", "cineverse.sqlite"))
	require.NoError(t, err)
	assert.IsType(t, &SQLiteBackend{}, b)
	require.NoError(t, b.Close())

	_, err = Open("redis", "")
	assert.ErrorContains(t, err, "unknown storage driver")
}
