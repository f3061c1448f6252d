package movie

// Record is a movie as it arrives from upstream: either a listing entry (Movie)
// or a detail entity (Details). Canonical turns any Record into the one internal
// shape, so code past the boundary never inspects which endpoint a movie came from.
type Record interface {
	MovieID() int64
	canonical() Movie
}

// MovieID returns the stable TMDB id.
func (m Movie) MovieID() int64 { return m.ID }

func (m Movie) canonical() Movie {
	out := m.clone()
	out.GenreIDs, _ = NormalizeGenreIDs(m.GenreIDs, nil)
	return out
}

func (d Details) canonical() Movie {
	out := d.Movie.clone()
	out.GenreIDs, _ = NormalizeGenreIDs(d.Movie.GenreIDs, d.Genres)
	return out
}

// Canonical returns the canonical Movie for r with GenreIDs guaranteed non-nil.
func Canonical(r Record) Movie {
	return r.canonical()
}

// NormalizeGenreIDs returns ids unchanged when present. Otherwise it projects
// the genre objects' ids in their original order, or an empty slice when both
// are absent. changed reports whether ids was absent.
func NormalizeGenreIDs(ids []int, genres []Genre) (out []int, changed bool) {
	if ids != nil {
		return ids, false
	}
	out = make([]int, 0, len(genres))
	for _, g := range genres {
		out = append(out, g.ID)
	}
	return out, true
}

func (m Movie) clone() Movie {
	out := m
	if m.GenreIDs != nil {
		out.GenreIDs = append(make([]int, 0, len(m.GenreIDs)), m.GenreIDs...)
	}
	return out
}
