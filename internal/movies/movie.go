// internal/movies/movie.go
package movies

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Movie is the detail record for one title.
type Movie struct {
	Title     string
	Year      string
	Released  string
	Runtime   string
	Genre     string
	Director  string
	Writer    string
	Actors    string
	Plot      string
	IMDbID    string
	Rating    decimal.NullDecimal // imdbRating; invalid when the service reports N/A
	BoxOffice decimal.NullDecimal // US dollars
}

// Summary is one search hit.
type Summary struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	IMDbID string `json:"imdbID"`
}

type rawMovie struct {
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Released   string `json:"Released"`
	Runtime    string `json:"Runtime"`
	Genre      string `json:"Genre"`
	Director   string `json:"Director"`
	Writer     string `json:"Writer"`
	Actors     string `json:"Actors"`
	Plot       string `json:"Plot"`
	IMDbID     string `json:"imdbID"`
	IMDbRating string `json:"imdbRating"`
	BoxOffice  string `json:"BoxOffice"`
	Response   string `json:"Response"`
	Error      string `json:"Error"`
}

type rawSearch struct {
	Search       []Summary `json:"Search"`
	TotalResults string    `json:"totalResults"`
	Response     string    `json:"Response"`
}

func (r rawMovie) toMovie() *Movie {
	m := &Movie{
		Title:    r.Title,
		Year:     r.Year,
		Released: r.Released,
		Runtime:  r.Runtime,
		Genre:    r.Genre,
		Director: r.Director,
		Writer:   r.Writer,
		Actors:   r.Actors,
		Plot:     r.Plot,
		IMDbID:   r.IMDbID,
	}
	if d, ok := parseAmount(r.IMDbRating); ok {
		m.Rating = decimal.NewNullDecimal(d)
	}
	if d, ok := parseAmount(r.BoxOffice); ok {
		m.BoxOffice = decimal.NewNullDecimal(d)
	}
	return m
}

// parseAmount reads values such as "7.8" or "$108,327,830".
// "N/A" and empty strings are invalid.
func parseAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(strings.NewReplacer("$", "", ",", "").Replace(s))
	if s == "" || strings.EqualFold(s, "N/A") {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}
