package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SystemPath is the machine-wide config location, checked last.
const SystemPath = "/etc/cineverse/config.toml"

// ErrNotFound is returned by Discover when no candidate file exists.
var ErrNotFound = errors.New("config not found")

// Candidate is one location Discover looks at.
type Candidate struct {
	Path   string `json:"path"`
	Source string `json:"source"` // env, cwd, xdg or system
}

// DefaultPath returns $XDG_CONFIG_HOME/cineverse/config.toml, falling back
// to ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "./config.toml"
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "cineverse", "config.toml")
}

// Candidates lists the locations Discover checks, in order. When
// CINEVERSE_CONFIG is set it is the only candidate.
func Candidates() []Candidate {
	if p := os.Getenv(EnvConfig); p != "" {
		return []Candidate{{Path: p, Source: "env"}}
	}
	return []Candidate{
		{Path: "./config.toml", Source: "cwd"},
		{Path: DefaultPath(), Source: "xdg"},
		{Path: SystemPath, Source: "system"},
	}
}

// Discover returns the first candidate that exists as a regular file.
// A CINEVERSE_CONFIG that points nowhere is reported as is instead of
// falling through to the other locations.
func Discover() (string, error) {
	cands := Candidates()
	checked := make([]string, 0, len(cands))
	for _, c := range cands {
		err := checkFile(c.Path)
		if err == nil {
			return c.Path, nil
		}
		if c.Source == "env" {
			return "", fmt.Errorf("%s=%s: %w", EnvConfig, c.Path, err)
		}
		checked = append(checked, c.Path)
	}
	return "", fmt.Errorf("%w, checked: %s", ErrNotFound, strings.Join(checked, ", "))
}

func checkFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}
