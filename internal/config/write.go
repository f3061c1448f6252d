package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

//go:embed default_config.toml
var defaultConfig string

// ErrExists is returned by WriteDefault when path is already present and
// overwrite was not requested.
var ErrExists = errors.New("config already exists")

// WriteDefault writes the commented default config to path, creating parent
// directories. An existing file is only replaced when overwrite is set.
func WriteDefault(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s: %w", path, ErrExists)
		}
	}
	return writeAtomic(path, []byte(defaultConfig))
}

// Write encodes c as TOML and replaces path with it.
func (c *Config) Write(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return writeAtomic(path, data)
}

// Redacted returns a copy of c with the TMDB token masked.
func (c *Config) Redacted() Config {
	out := *c
	if out.TMDB.Token != "" {
		out.TMDB.Token = "********"
	}
	return out
}

// writeAtomic writes data to a temp file beside path and renames it into
// place, so readers never see a half-written config. The file is 0600 since
// it may carry the TMDB token.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".config-*.toml")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
