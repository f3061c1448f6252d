package movie

import (
	"strings"
	"unicode"

	"github.com/hbollon/go-edlib"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// titleMatchThreshold is the minimum Jaro-Winkler similarity for a fuzzy hit.
const titleMatchThreshold = 0.85

// CleanTitle normalizes a title for local matching.
// Lowercases, removes accents and punctuation, strips leading articles and collapses whitespace.
func CleanTitle(title string) string {
	s := strings.ToLower(title)
	s = removeAccents(s)

	s = strings.ReplaceAll(s, "&", " and ")
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "'", "")
	s = strings.ReplaceAll(s, ".", " ")

	// "Léon: The Professional" -> strip articles on both sides of the colon
	parts := strings.Split(s, ":")
	for i, part := range parts {
		parts[i] = stripLeadingArticle(strings.TrimSpace(part))
	}
	s = strings.Join(parts, " ")

	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

func removeAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

func stripLeadingArticle(s string) string {
	for _, art := range []string{"the ", "a ", "an "} {
		if strings.HasPrefix(s, art) {
			return strings.TrimPrefix(s, art)
		}
	}
	return s
}

// TitleScore rates how well query matches the movie's title or original title.
// Substring hits score 1; otherwise the best Jaro-Winkler similarity is returned.
func TitleScore(m Movie, query string) float64 {
	q := CleanTitle(query)
	if q == "" {
		return 0
	}
	best := 0.0
	for _, title := range []string{m.Title, m.OriginalTitle} {
		t := CleanTitle(title)
		if t == "" {
			continue
		}
		if strings.Contains(t, q) {
			return 1
		}
		if score := float64(edlib.JaroWinklerSimilarity(q, t)); score > best {
			best = score
		}
	}
	return best
}

// FilterByTitle returns the movies whose title matches query, keeping input order.
// An empty query matches everything.
func FilterByTitle(movies []Movie, query string) []Movie {
	if strings.TrimSpace(query) == "" {
		return Clone(movies)
	}
	out := []Movie{}
	for _, m := range movies {
		if TitleScore(m, query) >= titleMatchThreshold {
			out = append(out, m)
		}
	}
	return out
}
