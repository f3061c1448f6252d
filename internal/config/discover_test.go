package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")

	path := DefaultPath()
	assert.Contains(t, path, filepath.Join(".config", "cineverse", "config.toml"))
}

func TestDefaultPath_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")

	assert.Equal(t, "/custom/config/cineverse/config.toml", DefaultPath())
}

func TestDiscover_EnvVar(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[server]"), 0644))

	t.Setenv(EnvConfig, cfgPath)

	path, err := Discover()
	require.NoError(t, err)
	assert.Equal(t, cfgPath, path)
}

func TestDiscover_EnvVarNotFound(t *testing.T) {
	t.Setenv(EnvConfig, "/nonexistent/config.toml")

	_, err := Discover()
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvConfig)
}

func TestDiscover_CurrentDir(t *testing.T) {
	t.Setenv(EnvConfig, "")

	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "config.toml"), []byte("[server]"), 0644))
	t.Chdir(tmp)

	path, err := Discover()
	require.NoError(t, err)
	assert.Equal(t, "config.toml", filepath.Base(path))
}

func TestDiscover_XDG(t *testing.T) {
	t.Setenv(EnvConfig, "")
	t.Chdir(t.TempDir())

	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	want := filepath.Join(xdg, "cineverse", "config.toml")
	require.NoError(t, WriteDefault(want, false))

	path, err := Discover()
	require.NoError(t, err)
	assert.Equal(t, want, path)
}

func TestDiscover_NotFound(t *testing.T) {
	t.Setenv(EnvConfig, "")
	t.Setenv("XDG_CONFIG_HOME", "/nonexistent/xdg")
	t.Chdir(t.TempDir())

	_, err := Discover()
	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "/nonexistent/xdg/cineverse/config.toml")
	assert.Contains(t, err.Error(), SystemPath)
}

func TestDiscover_SkipsDirectory(t *testing.T) {
	t.Setenv(EnvConfig, "")
	tmp := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(tmp, "config.toml"), 0755))
	t.Chdir(tmp)

	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	want := filepath.Join(xdg, "cineverse", "config.toml")
	require.NoError(t, WriteDefault(want, false))

	path, err := Discover()
	require.NoError(t, err)
	assert.Equal(t, want, path)
}

func TestDiscover_EnvVarDirectory(t *testing.T) {
	t.Setenv(EnvConfig, t.TempDir())

	_, err := Discover()
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "is a directory")
}

func TestCandidates(t *testing.T) {
	t.Setenv(EnvConfig, "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")

	got := Candidates()
	require.Len(t, got, 3)
	assert.Equal(t, []string{"cwd", "xdg", "system"}, []string{got[0].Source, got[1].Source, got[2].Source})
	assert.Equal(t, "/xdg/cineverse/config.toml", got[1].Path)

	t.Setenv(EnvConfig, "/tmp/only.toml")
	assert.Equal(t, []Candidate{{Path: "/tmp/only.toml", Source: "env"}}, Candidates())
}
