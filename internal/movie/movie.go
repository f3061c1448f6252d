// Package movie defines the canonical movie model shared by the metadata client,
// the persistence adapter and the store.
package movie

import "strconv"

// Movie is the canonical movie shape. It matches the TMDB listing schema.
// A nil GenreIDs means the field was absent upstream.
type Movie struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title"`
	Overview         string  `json:"overview"`
	PosterPath       *string `json:"poster_path"`
	BackdropPath     *string `json:"backdrop_path"`
	ReleaseDate      string  `json:"release_date"` // "2024-03-01"
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	Popularity       float64 `json:"popularity"`
	GenreIDs         []int   `json:"genre_ids"`
	Adult            bool    `json:"adult"`
	Video            bool    `json:"video"`
	OriginalLanguage string  `json:"original_language"`
}

// Genre is a TMDB genre object.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ProductionCompany is a studio credited on a movie.
type ProductionCompany struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	LogoPath      *string `json:"logo_path"`
	OriginCountry string  `json:"origin_country"`
}

// ProductionCountry is a country credited on a movie.
type ProductionCountry struct {
	ISO3166 string `json:"iso_3166_1"`
	Name    string `json:"name"`
}

// SpokenLanguage is a language spoken in a movie.
type SpokenLanguage struct {
	EnglishName string `json:"english_name"`
	ISO639      string `json:"iso_639_1"`
	Name        string `json:"name"`
}

// Details is the detail-endpoint shape. TMDB omits genre_ids here and sends
// full genre objects instead.
type Details struct {
	Movie
	Runtime             *int                `json:"runtime"` // minutes
	Genres              []Genre             `json:"genres"`
	ProductionCompanies []ProductionCompany `json:"production_companies"`
	ProductionCountries []ProductionCountry `json:"production_countries"`
	SpokenLanguages     []SpokenLanguage    `json:"spoken_languages"`
	Status              string              `json:"status"`
	Tagline             string              `json:"tagline"`
	Budget              int64               `json:"budget"`
	Revenue             int64               `json:"revenue"`
	Homepage            string              `json:"homepage"`
	IMDBID              string              `json:"imdb_id"`
}

// CastMember is an actor credit.
type CastMember struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Character   string  `json:"character"`
	ProfilePath *string `json:"profile_path"`
	Order       int     `json:"order"`
}

// CrewMember is a crew credit.
type CrewMember struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Job         string  `json:"job"`
	Department  string  `json:"department"`
	ProfilePath *string `json:"profile_path"`
}

// Credits holds cast and crew for one movie.
type Credits struct {
	ID   int64        `json:"id"`
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

// Directors returns the crew members credited with the Director job.
func (c *Credits) Directors() []CrewMember {
	var out []CrewMember
	for _, m := range c.Crew {
		if m.Job == "Director" {
			out = append(out, m)
		}
	}
	return out
}

// Page is the paginated envelope returned by list endpoints.
type Page struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// HasMore reports whether a later page exists.
func (p *Page) HasMore() bool {
	return p.Page < p.TotalPages
}

// Year extracts the year from ReleaseDate.
func (m *Movie) Year() int {
	if len(m.ReleaseDate) < 4 {
		return 0
	}
	year, err := strconv.Atoi(m.ReleaseDate[:4])
	if err != nil {
		return 0
	}
	return year
}
