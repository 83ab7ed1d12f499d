package omdb

import (
	"strconv"
	"strings"
	"time"

	"github.com/abelbrown/popcorn/internal/model"
)

// notAvailable is OMDb's placeholder for missing fields.
const notAvailable = "N/A"

// releasedLayout is the format of the Released field, e.g. "16 Jul 2010".
const releasedLayout = "02 Jan 2006"

// searchResponse is the body of a ?s= request.
type searchResponse struct {
	Search   []searchHit `json:"Search"`
	Response string      `json:"Response"`
	Error    string      `json:"Error"`
}

// searchHit is one element of searchResponse.Search.
type searchHit struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	ImdbID string `json:"imdbID"`
	Poster string `json:"Poster"`
}

// detailResponse is the body of an ?i= request. Fields we never display are
// not decoded.
type detailResponse struct {
	Title      string      `json:"Title"`
	Year       string      `json:"Year"`
	ImdbID     string      `json:"imdbID"`
	Released   string      `json:"Released"`
	ImdbRating string      `json:"imdbRating"`
	Plot       string      `json:"Plot"`
	Poster     string      `json:"Poster"`
	Runtime    runtimeText `json:"Runtime"`
	Response   string      `json:"Response"`
	Error      string      `json:"Error"`
}

// runtimeText decodes OMDb runtimes of the form "<n> min".
type runtimeText int

// UnmarshalJSON accepts "<n> min", "<n> mins", "N/A" and "".
func (r *runtimeText) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return ErrInvalidRuntimeFormat
	}

	s = strings.TrimSpace(s)
	if s == "" || s == notAvailable {
		*r = 0
		return nil
	}

	parts := strings.Fields(s)
	if len(parts) != 2 || (parts[1] != "min" && parts[1] != "mins") {
		return ErrInvalidRuntimeFormat
	}

	n, err := strconv.ParseInt(parts[0], 10, 32)
	if err != nil || n < 0 {
		return ErrInvalidRuntimeFormat
	}

	*r = runtimeText(n)
	return nil
}

func (h searchHit) toModel() model.Movie {
	return model.Movie{
		ID:        h.ImdbID,
		Title:     h.Title,
		Year:      h.Year,
		PosterURL: orEmpty(h.Poster),
	}
}

func (d detailResponse) toModel() model.MovieDetail {
	released, _ := parseReleased(d.Released)
	return model.MovieDetail{
		Movie: model.Movie{
			ID:        d.ImdbID,
			Title:     d.Title,
			Year:      d.Year,
			PosterURL: orEmpty(d.Poster),
		},
		Plot:           orEmpty(d.Plot),
		Released:       released,
		ReleasedRaw:    orEmpty(d.Released),
		ExternalRating: parseRating(d.ImdbRating),
		RuntimeMinutes: int(d.Runtime),
	}
}

// parseReleased parses "16 Jul 2010". Returns the zero time and false for
// "N/A" or anything else it cannot read.
func parseReleased(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == notAvailable {
		return time.Time{}, false
	}
	t, err := time.Parse(releasedLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// parseRating parses "8.8". Unknown ratings are 0.
func parseRating(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

func orEmpty(s string) string {
	if s == notAvailable {
		return ""
	}
	return s
}
