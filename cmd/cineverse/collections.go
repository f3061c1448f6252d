package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vmunix/cineverse/internal/favorite"
	"github.com/vmunix/cineverse/internal/movie"
	"github.com/vmunix/cineverse/internal/store"
)

func init() {
	rootCmd.AddCommand(
		newCollectionCmd(store.Favorites, "Manage favorite movies"),
		newCollectionCmd(store.Watchlist, "Manage the watchlist"),
	)
}

// newCollectionCmd builds the list/toggle/add/remove command tree for c.
func newCollectionCmd(c store.Collection, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   string(c),
		Short: short,
	}

	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"filter"},
		Short:   fmt.Sprintf("List %s", c),
		Long: fmt.Sprintf(`List %[1]s, optionally filtered by genre ID or fuzzy title.

Examples:
  cineverse %[1]s list
  cineverse %[1]s list --genre 18
  cineverse %[1]s list --title "amelie"`, c),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCollectionList(cmd, c)
		},
	}
	list.Flags().Int("genre", 0, "Only movies with this genre ID")
	list.Flags().String("title", "", "Only movies whose title resembles this")

	toggle := &cobra.Command{
		Use:   "toggle <movie-id>",
		Short: fmt.Sprintf("Add a movie to %s, or remove it if present", c),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCollectionToggle(cmd, c, args[0])
		},
	}

	add := &cobra.Command{
		Use:   "add <movie-id>",
		Short: fmt.Sprintf("Add a movie to %s", c),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCollectionAdd(cmd, c, args[0])
		},
	}

	remove := &cobra.Command{
		Use:     "remove <movie-id>",
		Aliases: []string{"rm"},
		Short:   fmt.Sprintf("Remove a movie from %s", c),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCollectionRemove(cmd, c, args[0])
		},
	}

	cmd.AddCommand(list, toggle, add, remove)
	return cmd
}

func runCollectionList(cmd *cobra.Command, c store.Collection) error {
	genre, _ := cmd.Flags().GetInt("genre")
	title, _ := cmd.Flags().GetString("title")

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	movies := a.store.Collection(c)
	if genre != 0 {
		movies = movie.FilterByGenre(movies, genre)
	}
	if title != "" {
		movies = movie.FilterByTitle(movies, title)
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), movies)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s (%d):\n\n", c, len(movies))
	printMovies(cmd.OutOrStdout(), movies, a.marks)
	return nil
}

func runCollectionToggle(cmd *cobra.Command, c store.Collection, arg string) error {
	id, err := parseMovieID(arg)
	if err != nil {
		return err
	}

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	r, err := a.record(cmd.Context(), c, id)
	if err != nil {
		return err
	}

	var t *favorite.Toggle
	if c == store.Favorites {
		t = favorite.NewFavorite(a.store, r)
	} else {
		t = favorite.NewWatchlist(a.store, r)
	}
	defer t.Close()

	active, err := t.Toggle(cmd.Context())
	if err != nil {
		return err
	}
	return printToggle(cmd, a, c, r, active)
}

func runCollectionAdd(cmd *cobra.Command, c store.Collection, arg string) error {
	id, err := parseMovieID(arg)
	if err != nil {
		return err
	}

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	r, err := a.record(cmd.Context(), c, id)
	if err != nil {
		return err
	}
	if err := a.store.Add(cmd.Context(), c, r); err != nil {
		return err
	}
	return printToggle(cmd, a, c, r, true)
}

func runCollectionRemove(cmd *cobra.Command, c store.Collection, arg string) error {
	id, err := parseMovieID(arg)
	if err != nil {
		return err
	}

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	removed := movie.Movie{ID: id}
	for _, m := range a.store.Collection(c) {
		if m.ID == id {
			removed = m
		}
	}
	if err := a.store.Remove(cmd.Context(), c, id); err != nil {
		return err
	}
	return printToggle(cmd, a, c, removed, false)
}

// record returns the stored entry when id is already in c, otherwise the
// movie's details from TMDB.
func (a *app) record(ctx context.Context, c store.Collection, id int64) (movie.Record, error) {
	for _, m := range a.store.Collection(c) {
		if m.ID == id {
			return m, nil
		}
	}
	details, err := a.tmdb.MovieDetails(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch movie %d: %w", id, err)
	}
	return details, nil
}

func printToggle(cmd *cobra.Command, a *app, c store.Collection, r movie.Record, active bool) error {
	m := movie.Canonical(r)
	size := len(a.store.Collection(c))
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"movie_id":   m.ID,
			"collection": c,
			"active":     active,
			"size":       size,
		})
	}

	title := m.Title
	if title == "" {
		title = fmt.Sprintf("movie %d", m.ID)
	}
	if active {
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s to %s (%d)\n", title, c, size)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from %s (%d)\n", title, c, size)
	}
	return nil
}
