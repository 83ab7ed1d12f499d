// Package model defines the movie records popcorn passes between the OMDb
// client, the controllers and the UI.
//
// Provider field names never leave the omdb package; everything here is the
// internal shape.
package model

import "time"

// Movie is a single search hit.
type Movie struct {
	ID        string // IMDb identifier, e.g. "tt1375666"
	Title     string
	Year      string // provider text; ranges like "2011–2019" occur for series
	PosterURL string // empty when the provider has none
}

// MovieDetail is the full record for the selected movie.
type MovieDetail struct {
	Movie

	Plot           string
	Released       time.Time // zero when unknown
	ReleasedRaw    string    // provider text, kept for display when unparsable
	ExternalRating float64   // IMDb rating, 0 when unknown
	RuntimeMinutes int       // 0 when unknown
}

// WatchedEntry is one movie on the user's watched list.
type WatchedEntry struct {
	ID             string
	Title          string
	PosterURL      string
	ExternalRating float64
	UserRating     int // 1..10
	RuntimeMinutes int
}

// NewWatchedEntry combines a loaded detail with the user's committed rating.
func NewWatchedEntry(d MovieDetail, userRating int) WatchedEntry {
	return WatchedEntry{
		ID:             d.ID,
		Title:          d.Title,
		PosterURL:      d.PosterURL,
		ExternalRating: d.ExternalRating,
		UserRating:     userRating,
		RuntimeMinutes: d.RuntimeMinutes,
	}
}

// Summary aggregates the watched list. Averages are 0 for an empty list.
type Summary struct {
	Count             int
	AvgExternalRating float64
	AvgUserRating     float64
	AvgRuntimeMinutes float64
}
