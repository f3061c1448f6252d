package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	v1 "github.com/vmunix/cineverse/internal/api/v1"
	"github.com/vmunix/cineverse/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API",
	Long: `Serve listings, search, details and the favorites and watchlist
collections over HTTP under /api/v1.

Examples:
  cineverse serve
  cineverse serve --addr 0.0.0.0:8585 --prune-after 720h`,
	Args: cobra.NoArgs,
	RunE: runServeCmd,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address (default from config)")
	serveCmd.Flags().Duration("prune-after", 0, "Delete history older than this (0 keeps everything)")
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	pruneAfter, _ := cmd.Flags().GetDuration("prune-after")

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if addr == "" {
		addr = net.JoinHostPort(a.cfg.Server.Host, strconv.Itoa(a.cfg.Server.Port))
	}

	if err := a.store.Initialize(ctx); err != nil {
		return err
	}
	if msg := a.store.Err(); msg != "" {
		a.log.Warn("initial listings incomplete", "error", msg)
	}

	api, err := v1.New(v1.ServerDeps{
		Catalog:  a.store,
		Metadata: a.tmdb,
		EventLog: a.eventLog,
		Logger:   a.log,
	})
	if err != nil {
		return fmt.Errorf("api: %w", err)
	}
	mux := http.NewServeMux()
	api.RegisterRoutes(mux)

	runner := server.NewRunner(mux, server.Config{Addr: addr}, a.log)
	if a.eventLog != nil && pruneAfter > 0 {
		runner.Go(func(ctx context.Context) error {
			a.pruneHistory(ctx, pruneAfter)
			return nil
		})
	}

	a.log.Info("cineverse starting",
		"version", version,
		"addr", addr,
		"storage", a.cfg.Storage.Driver,
		"history", a.eventLog != nil)
	return runner.Run(ctx)
}

// pruneHistory deletes old events now and then hourly until ctx is done.
func (a *app) pruneHistory(ctx context.Context, olderThan time.Duration) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		n, err := a.eventLog.Prune(ctx, olderThan)
		if err != nil {
			a.log.Error("history prune failed", "error", err)
		} else if n > 0 {
			a.log.Info("history pruned", "deleted", n)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
