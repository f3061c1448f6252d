package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmunix/cineverse/internal/config"
	"github.com/vmunix/cineverse/internal/events"
	"github.com/vmunix/cineverse/internal/persist"
	"github.com/vmunix/cineverse/internal/store"
	"github.com/vmunix/cineverse/internal/tmdb"
)

// app holds the components shared by every command.
type app struct {
	cfg      *config.Config
	log      *slog.Logger
	tmdb     *tmdb.Client
	persist  *persist.Adapter
	store    *store.Store
	eventLog *events.EventLog // nil unless storage is sqlite
	logFile  io.Closer
}

// openApp loads configuration and wires the client, persistence and store.
// Collections are rehydrated; listings are not fetched.
func openApp(ctx context.Context) (*app, error) {
	cfg, path, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, err
	}

	logger, logFile, err := setupLogger(cfg.Log)
	if err != nil {
		return nil, err
	}
	if path != "" {
		logger.Debug("config loaded", "path", path)
	}

	client := tmdb.NewClient(cfg.TMDB.Token,
		tmdb.WithBaseURL(cfg.TMDB.BaseURL),
		tmdb.WithImageBaseURL(cfg.TMDB.ImageBaseURL),
		tmdb.WithLanguage(cfg.TMDB.Language),
		tmdb.WithHTTPClient(&http.Client{Timeout: cfg.TMDB.Timeout}),
		tmdb.WithLogger(logger),
	)

	backend, err := persist.Open(cfg.Storage.Driver, cfg.Storage.Path)
	if err != nil {
		closeQuietly(logFile)
		return nil, fmt.Errorf("open storage: %w", err)
	}

	a := &app{
		cfg:     cfg,
		log:     logger,
		tmdb:    client,
		persist: persist.NewAdapter(backend, logger),
		logFile: logFile,
	}

	opts := []store.Option{store.WithLogger(logger)}
	if sb, ok := backend.(*persist.SQLiteBackend); ok {
		a.eventLog = events.NewEventLog(sb.DB())
		opts = append(opts, store.WithEventLog(a.eventLog))
	}
	a.store = store.New(client, a.persist, opts...)

	if err := a.store.LoadCollections(ctx); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

// Close releases the store, storage and log file.
func (a *app) Close() error {
	var errs []error
	if err := a.store.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := a.persist.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close storage: %w", err))
	}
	closeQuietly(a.logFile)
	return errors.Join(errs...)
}

// setupLogger logs text to stderr, or JSON to cfg.File when set.
func setupLogger(cfg config.LogConfig) (*slog.Logger, io.Closer, error) {
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.Level)}
	if cfg.File == "" {
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), nil, nil
	}

	logPath := cfg.File
	if strings.HasPrefix(logPath, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		logPath = filepath.Join(home, logPath[1:])
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return slog.New(slog.NewJSONHandler(f, opts)), f, nil
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func closeQuietly(c io.Closer) {
	if c != nil {
		_ = c.Close()
	}
}
