// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Environment variables that override file values.
const (
	EnvConfig       = "CINEVERSE_CONFIG"
	EnvToken        = "CINEVERSE_TMDB_TOKEN"
	EnvBaseURL      = "CINEVERSE_TMDB_BASE_URL"
	EnvImageBaseURL = "CINEVERSE_TMDB_IMAGE_BASE_URL"
)

// Config is the root configuration structure.
type Config struct {
	TMDB    TMDBConfig    `toml:"tmdb"`
	Storage StorageConfig `toml:"storage"`
	Log     LogConfig     `toml:"log"`
	Server  ServerConfig  `toml:"server"`
}

type TMDBConfig struct {
	BaseURL      string        `toml:"base_url"`
	ImageBaseURL string        `toml:"image_base_url"`
	Token        string        `toml:"token"`
	Language     string        `toml:"language"`
	Timeout      time.Duration `toml:"timeout"`
}

type StorageConfig struct {
	Driver string `toml:"driver"` // sqlite, bolt or memory
	Path   string `toml:"path"`
}

type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"` // JSON log file; empty logs text to stderr
}

type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	cfg.applyEnv()
	return cfg
}

// Load reads, substitutes, parses and validates the configuration file.
func Load(path string) (*Config, error) {
	cfg, missing, err := load(path)
	if err != nil {
		return nil, err
	}

	cfgErr := newConfigError(path, missing, cfg.Validate())
	if cfgErr.HasErrors() {
		return nil, cfgErr
	}
	return cfg, nil
}

// LoadWithoutValidation parses the file but skips Validate and missing
// variable checks. Used by tooling that inspects partial configs.
func LoadWithoutValidation(path string) (*Config, error) {
	cfg, _, err := load(path)
	return cfg, err
}

// LoadOrDefault loads path, or the discovered config when path is empty.
// When nothing is found the defaults plus environment overrides are returned.
// The second return value is the file that was read, or "".
func LoadOrDefault(path string) (*Config, string, error) {
	if path == "" {
		found, err := Discover()
		if errors.Is(err, ErrNotFound) {
			return Default(), "", nil
		}
		if err != nil {
			return nil, "", err
		}
		path = found
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

func load(path string) (*Config, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()
	return &cfg, missing, nil
}

func (c *Config) applyDefaults() {
	if c.TMDB.BaseURL == "" {
		c.TMDB.BaseURL = "https://api.themoviedb.org/3"
	}
	if c.TMDB.ImageBaseURL == "" {
		c.TMDB.ImageBaseURL = "https://image.tmdb.org/t/p"
	}
	if c.TMDB.Language == "" {
		c.TMDB.Language = "zh-CN"
	}
	if c.TMDB.Timeout == 0 {
		c.TMDB.Timeout = 10 * time.Second
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "sqlite"
	}
	if c.Storage.Path == "" {
		c.Storage.Path = DefaultDataPath(c.Storage.Driver)
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Server.Host == "" {
		c.Server.Host = "127.0.0.1"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8585
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvToken); v != "" {
		c.TMDB.Token = v
	}
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.TMDB.BaseURL = v
	}
	if v := os.Getenv(EnvImageBaseURL); v != "" {
		c.TMDB.ImageBaseURL = v
	}
}

// DefaultDataPath returns the XDG data location for a storage driver.
func DefaultDataPath(driver string) string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "./data/cineverse.db"
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	name := "cineverse.db"
	if driver == "bolt" {
		name = "cineverse.bolt"
	}
	return filepath.Join(dataHome, "cineverse", name)
}

// envVarPattern matches ${VAR}, ${VAR:-default} and ${VAR:?message}.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?:(:-|:\?)([^}]*))?\}`)

// substituteEnvVars replaces variable references with environment values.
// Unresolved references are left in place and reported in missing.
func substituteEnvVars(content string) (string, []string) {
	var missing []string
	result := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		parts := envVarPattern.FindStringSubmatch(match)
		name, op, arg := parts[1], parts[2], parts[3]
		value, ok := os.LookupEnv(name)

		switch op {
		case ":-":
			if !ok || value == "" {
				return arg
			}
			return value
		case ":?":
			if !ok || value == "" {
				missing = append(missing, fmt.Sprintf("%s: %s", name, strings.TrimSpace(arg)))
				return match
			}
			return value
		}

		if !ok {
			missing = append(missing, name)
			return match
		}
		return value
	})
	return result, missing
}
