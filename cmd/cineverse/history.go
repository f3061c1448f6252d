package main

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vmunix/cineverse/internal/events"
	"github.com/vmunix/cineverse/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent favorites and watchlist changes",
	Long: `Show recorded collection changes, newest first.

History is recorded only with the sqlite storage driver.

Examples:
  cineverse history
  cineverse history -n 50
  cineverse history --movie 550
  cineverse history --collection watchlist
  cineverse history --type favorites.removed`,
	Args: cobra.NoArgs,
	RunE: runHistoryCmd,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	historyCmd.Flags().Int64("movie", 0, "Only events for this movie ID")
	historyCmd.Flags().String("collection", "", "Only events for favorites or watchlist")
	historyCmd.Flags().String("type", "", "Only events of this type, e.g. favorites.added")
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	movieID, _ := cmd.Flags().GetInt64("movie")
	collection, _ := cmd.Flags().GetString("collection")
	eventType, _ := cmd.Flags().GetString("type")

	registry := events.DefaultRegistry()
	if eventType != "" && !slices.Contains(registry.Types(), eventType) {
		return fmt.Errorf("unknown event type %q (known: %s)", eventType, strings.Join(registry.Types(), ", "))
	}

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	if a.eventLog == nil {
		return errors.New("history requires the sqlite storage driver")
	}

	var raw []events.RawEvent
	switch {
	case movieID > 0:
		raw, err = a.eventLog.ForEntity(cmd.Context(), events.EntityMovie, movieID)
	case collection != "":
		c, perr := store.ParseCollection(collection)
		if perr != nil {
			return perr
		}
		raw, err = a.eventLog.ForTopic(cmd.Context(), string(c), limit)
	default:
		raw, err = a.eventLog.Recent(cmd.Context(), limit)
	}
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	if eventType != "" {
		raw = slices.DeleteFunc(raw, func(e events.RawEvent) bool { return e.EventType != eventType })
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), raw)
	}

	w := cmd.OutOrStdout()
	if len(raw) == 0 {
		fmt.Fprintln(w, "No events")
		return nil
	}

	fmt.Fprintf(w, "History (%d):\n\n", len(raw))
	fmt.Fprintf(w, "  %-12s %-20s %-8s %-30s\n", "TIME", "TYPE", "MOVIE", "TITLE")
	fmt.Fprintln(w, "  "+strings.Repeat("-", 72))
	for _, e := range raw {
		title := ""
		if cc, err := events.Decode[*events.CollectionChanged](registry, e); err == nil {
			title = cc.Title
		}
		fmt.Fprintf(w, "  %-12s %-20s %-8d %-30s\n",
			formatTimeAgo(e.OccurredAt), e.EventType, e.EntityID, truncate(title, 30))
	}
	return nil
}
