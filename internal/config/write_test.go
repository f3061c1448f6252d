package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cineverse", "config.toml")

	require.NoError(t, WriteDefault(path, false), "WriteDefault failed")

	content, err := os.ReadFile(path)
	require.NoError(t, err, "failed to read written file")

	assert.Contains(t, string(content), "[tmdb]")
	assert.Contains(t, string(content), "[storage]")
	assert.Contains(t, string(content), "${CINEVERSE_TMDB_TOKEN:-}")
}

func TestWriteDefault_LoadsCleanly(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, WriteDefault(path, false))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "zh-CN", cfg.TMDB.Language)
	assert.Empty(t, cfg.TMDB.Token)
}

func TestConfig_Write(t *testing.T) {
	clearEnv(t)
	cfg := Default()
	cfg.Server.Port = 9000
	cfg.Storage.Driver = "memory"

	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	require.NoError(t, cfg.Write(path), "Write failed")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9000, loaded.Server.Port)
	assert.Equal(t, "memory", loaded.Storage.Driver)
	assert.Equal(t, cfg.TMDB.Timeout, loaded.TMDB.Timeout)
}

func TestWriteDefault_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("# mine\n"), 0600))

	err := WriteDefault(path, false)
	require.ErrorIs(t, err, ErrExists)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# mine\n", string(content))

	require.NoError(t, WriteDefault(path, true))
	content, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "[tmdb]")
}

func TestConfig_Write_PrivateAndNoTempLeft(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := Default()
	cfg.TMDB.Token = "secret"
	require.NoError(t, cfg.Write(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "config.toml", entries[0].Name())
}

func TestConfig_Redacted(t *testing.T) {
	cfg := Default()
	cfg.TMDB.Token = "secret"

	shown := cfg.Redacted()
	assert.Equal(t, "********", shown.TMDB.Token)
	assert.Equal(t, "secret", cfg.TMDB.Token, "original untouched")

	cfg.TMDB.Token = ""
	assert.Empty(t, cfg.Redacted().TMDB.Token)
}
