package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/vmunix/cineverse/internal/movie"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// marker returns the collection flags column for a movie.
type marker func(id int64) string

func noMarks(int64) string { return "" }

func printMovies(w io.Writer, movies []movie.Movie, mark marker) {
	if len(movies) == 0 {
		fmt.Fprintln(w, "No movies found")
		return
	}
	if mark == nil {
		mark = noMarks
	}

	fmt.Fprintf(w, "  %-3s %-8s %-40s %-5s %-5s\n", "", "ID", "TITLE", "YEAR", "VOTE")
	fmt.Fprintln(w, "  "+strings.Repeat("-", 65))
	for _, m := range movies {
		year := "-"
		if y := m.Year(); y > 0 {
			year = fmt.Sprint(y)
		}
		fmt.Fprintf(w, "  %-3s %-8d %-40s %-5s %-5.1f\n",
			mark(m.ID), m.ID, truncate(m.Title, 40), year, m.VoteAverage)
	}
}

func printDetails(w io.Writer, d *movie.Details, credits *movie.Credits, posterURL string, mark string) {
	year := ""
	if y := d.Year(); y > 0 {
		year = fmt.Sprintf(" (%d)", y)
	}
	fmt.Fprintf(w, "%s%s %s\n", d.Title, year, mark)
	if d.Tagline != "" {
		fmt.Fprintf(w, "  %s\n", d.Tagline)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  ID:       %d\n", d.ID)
	if d.OriginalTitle != "" && d.OriginalTitle != d.Title {
		fmt.Fprintf(w, "  Original: %s\n", d.OriginalTitle)
	}
	if d.Runtime != nil {
		fmt.Fprintf(w, "  Runtime:  %dm\n", *d.Runtime)
	}
	if len(d.Genres) > 0 {
		names := make([]string, len(d.Genres))
		for i, g := range d.Genres {
			names[i] = g.Name
		}
		fmt.Fprintf(w, "  Genres:   %s\n", strings.Join(names, ", "))
	}
	fmt.Fprintf(w, "  Rating:   %.1f (%d votes)\n", d.VoteAverage, d.VoteCount)
	fmt.Fprintf(w, "  Poster:   %s\n", posterURL)

	if credits != nil {
		var directors []string
		for _, c := range credits.Directors() {
			directors = append(directors, c.Name)
		}
		if len(directors) > 0 {
			fmt.Fprintf(w, "  Director: %s\n", strings.Join(directors, ", "))
		}
		if len(credits.Cast) > 0 {
			fmt.Fprintln(w, "  Cast:")
			for i, c := range credits.Cast {
				if i == 5 {
					break
				}
				fmt.Fprintf(w, "    %s as %s\n", c.Name, c.Character)
			}
		}
	}

	if d.Overview != "" {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  %s\n", d.Overview)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func formatTimeAgo(t time.Time) string {
	if t.IsZero() {
		return "never"
	}

	ago := time.Since(t)
	switch {
	case ago < time.Minute:
		return "just now"
	case ago < time.Hour:
		return fmt.Sprintf("%dm ago", int(ago.Minutes()))
	case ago < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(ago.Hours()))
	default:
		days := int(ago.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	}
}
