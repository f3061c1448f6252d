package movie

// IndexOf returns the position of the movie with the given id, or -1.
func IndexOf(movies []Movie, id int64) int {
	for i, m := range movies {
		if m.ID == id {
			return i
		}
	}
	return -1
}

// Contains reports whether a movie with the given id is present.
func Contains(movies []Movie, id int64) bool {
	return IndexOf(movies, id) >= 0
}

// Remove returns movies without the entry for id. The input is not modified.
func Remove(movies []Movie, id int64) []Movie {
	i := IndexOf(movies, id)
	if i < 0 {
		return movies
	}
	out := make([]Movie, 0, len(movies)-1)
	out = append(out, movies[:i]...)
	return append(out, movies[i+1:]...)
}

// Dedupe drops later entries that repeat an earlier id.
// Returns the filtered slice and how many entries were dropped.
func Dedupe(movies []Movie) ([]Movie, int) {
	seen := make(map[int64]bool, len(movies))
	out := make([]Movie, 0, len(movies))
	for _, m := range movies {
		if seen[m.ID] {
			continue
		}
		seen[m.ID] = true
		out = append(out, m)
	}
	return out, len(movies) - len(out)
}

// Clone returns a copy of movies that shares no backing array with the input.
func Clone(movies []Movie) []Movie {
	if movies == nil {
		return []Movie{}
	}
	out := make([]Movie, len(movies))
	for i, m := range movies {
		out[i] = m.clone()
	}
	return out
}

// FilterByGenre returns the movies tagged with genreID.
func FilterByGenre(movies []Movie, genreID int) []Movie {
	out := []Movie{}
	for _, m := range movies {
		for _, id := range m.GenreIDs {
			if id == genreID {
				out = append(out, m)
				break
			}
		}
	}
	return out
}
