package config

import (
	"fmt"
	"net/url"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true,
}

var validDrivers = map[string]bool{
	"sqlite": true, "bolt": true, "memory": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid). The TMDB token is not
// checked; requests without one fail upstream with ErrUnauthorized.
func (c *Config) Validate() []string {
	var errs []string

	for name, raw := range map[string]string{
		"tmdb.base_url":       c.TMDB.BaseURL,
		"tmdb.image_base_url": c.TMDB.ImageBaseURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Sprintf("%s: must be an absolute URL, got %q", name, raw))
		}
	}
	if c.TMDB.Timeout < 0 {
		errs = append(errs, fmt.Sprintf("tmdb.timeout: must not be negative, got %s", c.TMDB.Timeout))
	}

	if !validDrivers[c.Storage.Driver] {
		errs = append(errs, fmt.Sprintf("storage.driver: must be one of sqlite, bolt, memory; got %q", c.Storage.Driver))
	}
	if c.Storage.Driver != "memory" && c.Storage.Path == "" {
		errs = append(errs, "storage.path: required")
	}

	if !validLogLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("log.level: must be one of debug, info, warn, error; got %q", c.Log.Level))
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port: must be between 1 and 65535, got %d", c.Server.Port))
	}

	return errs
}
