// Package server runs the HTTP API until its context is cancelled.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

// Config for the HTTP server.
type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// Job is a background task that runs alongside the server and stops with it.
type Job func(ctx context.Context) error

// Runner manages the HTTP server and its background jobs.
type Runner struct {
	handler http.Handler
	config  Config
	logger  *slog.Logger
	jobs    []Job
}

// NewRunner creates a new runner.
func NewRunner(handler http.Handler, cfg Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 30 * time.Second
	}
	return &Runner{
		handler: handler,
		config:  cfg,
		logger:  logger.With("component", "server"),
	}
}

// Go registers a job started by Run.
func (r *Runner) Go(job Job) {
	r.jobs = append(r.jobs, job)
}

// Run listens on the configured address and serves until ctx is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", r.config.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", r.config.Addr, err)
	}
	return r.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled or a job fails, then shuts down
// gracefully. It blocks until every component has stopped.
func (r *Runner) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           LogRequests(r.handler, r.logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		r.logger.Info("server listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})

	for _, job := range r.jobs {
		g.Go(func() error {
			return job(ctx)
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		r.logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), r.config.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		r.logger.Info("server stopped")
		return nil
	})

	return g.Wait()
}
