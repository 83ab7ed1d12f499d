package e2e

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
)

// fakeOMDb serves a fixed catalogue in OMDb's response shapes.
type fakeOMDb struct {
	*httptest.Server
	searches atomic.Int32
	details  atomic.Int32
}

func newFakeOMDb() *fakeOMDb {
	f := &fakeOMDb{}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	return f
}

func (f *fakeOMDb) serve(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	w.Header().Set("Content-Type", "application/json")

	if q.Get("apikey") == "" {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"Response":"False","Error":"No API key provided."}`))
		return
	}

	if id := q.Get("i"); id != "" {
		f.details.Add(1)
		if id != "tt1375666" {
			w.Write([]byte(`{"Response":"False","Error":"Incorrect IMDb ID."}`))
			return
		}
		w.Write([]byte(`{
			"Title": "Inception",
			"Year": "2010",
			"Released": "16 Jul 2010",
			"Runtime": "148 min",
			"Plot": "A thief who steals corporate secrets through dream-sharing technology.",
			"Poster": "N/A",
			"imdbRating": "8.8",
			"imdbID": "tt1375666",
			"Response": "True"
		}`))
		return
	}

	f.searches.Add(1)
	if !strings.HasPrefix("inception", strings.ToLower(q.Get("s"))) {
		w.Write([]byte(`{"Response":"False","Error":"Movie not found!"}`))
		return
	}
	w.Write([]byte(`{
		"Search": [
			{"Title": "Inception", "Year": "2010", "imdbID": "tt1375666", "Type": "movie", "Poster": "N/A"},
			{"Title": "Inception: The Cobol Job", "Year": "2010", "imdbID": "tt5295894", "Type": "movie", "Poster": "N/A"}
		],
		"totalResults": "2",
		"Response": "True"
	}`))
}

// seedHome writes a config under homeDir/.popcorn pointing at endpoint.
func seedHome(homeDir, endpoint string) error {
	dataDir := filepath.Join(homeDir, ".popcorn")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return err
	}
	cfg := map[string]any{
		"omdb": map[string]any{
			"base_url":            endpoint,
			"api_key":             "e2e-key",
			"timeout_ms":          2000,
			"request_interval_ms": 10,
		},
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dataDir, "config.json"), data, 0644)
}
