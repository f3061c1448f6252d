package config

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigError_Error_Empty(t *testing.T) {
	e := &ConfigError{Path: "/etc/cineverse/config.toml"}
	if got := e.Error(); got != "" {
		t.Errorf("expected empty string for no errors, got %q", got)
	}
}

func TestConfigError_Error_MissingVars(t *testing.T) {
	e := &ConfigError{
		Path:    "/etc/cineverse/config.toml",
		Missing: []string{"CINEVERSE_TMDB_TOKEN", "SECRET"},
	}
	got := e.Error()
	if !strings.Contains(got, "missing environment variables") {
		t.Errorf("expected 'missing environment variables', got %q", got)
	}
	if !strings.Contains(got, "CINEVERSE_TMDB_TOKEN") || !strings.Contains(got, "SECRET") {
		t.Errorf("expected var names in error, got %q", got)
	}
	if !strings.Contains(got, "/etc/cineverse/config.toml") {
		t.Errorf("expected path in error, got %q", got)
	}
}

func TestConfigError_Error_ValidationErrors(t *testing.T) {
	e := &ConfigError{
		Errors: []string{"server.port: must be 1-65535", "storage.driver: unknown"},
	}
	got := e.Error()
	if !strings.Contains(got, "validation failed") {
		t.Errorf("expected 'validation failed', got %q", got)
	}
	if !strings.Contains(got, "  - storage.driver") {
		t.Errorf("expected indented field name in error, got %q", got)
	}
}

func TestConfigError_HasErrors(t *testing.T) {
	if (&ConfigError{}).HasErrors() {
		t.Error("empty error should report no errors")
	}
	if !(&ConfigError{Missing: []string{"X"}}).HasErrors() {
		t.Error("missing vars should report errors")
	}
}

func TestNewConfigError_DedupesAndSortsMissing(t *testing.T) {
	e := newConfigError("/c.toml", []string{
		"ZED",
		"CINEVERSE_TMDB_TOKEN: set your read access token",
		"ZED",
		"CINEVERSE_TMDB_TOKEN",
	}, nil)

	assert.Equal(t, []string{"CINEVERSE_TMDB_TOKEN: set your read access token", "ZED"}, e.Missing)
	assert.Equal(t, []string{"CINEVERSE_TMDB_TOKEN", "ZED"}, e.MissingNames())
}

func TestConfigError_IsInvalid(t *testing.T) {
	var err error = newConfigError("", nil, []string{"server.port: must be 1-65535"})
	assert.ErrorIs(t, err, ErrInvalid)
	assert.False(t, errors.Is(errors.New("other"), ErrInvalid))
	assert.NotContains(t, err.Error(), "\n\n")
	assert.False(t, strings.HasSuffix(err.Error(), "\n"))
}
