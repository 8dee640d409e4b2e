// Package testutil provides fake TVmaze catalog servers and JSON fixtures for tests.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// ShowFixture describes one /search/shows entry.
type ShowFixture struct {
	ID      int
	Name    string
	Summary string
	// ImageMedium is the medium image URL; empty renders "image": null.
	ImageMedium string
}

// EpisodeFixture describes one /shows/{id}/episodes entry.
type EpisodeFixture struct {
	ID     int
	Name   string
	Season int
	Number int
}

// SearchResponseJSON renders a /search/shows payload for the given shows.
func SearchResponseJSON(shows ...ShowFixture) string {
	entries := make([]map[string]interface{}, 0, len(shows))
	for i, s := range shows {
		var image interface{}
		if s.ImageMedium != "" {
			image = map[string]string{
				"medium":   s.ImageMedium,
				"original": s.ImageMedium,
			}
		}
		entries = append(entries, map[string]interface{}{
			"score": 1.0 / float64(i+1),
			"show": map[string]interface{}{
				"id":      s.ID,
				"name":    s.Name,
				"summary": s.Summary,
				"image":   image,
			},
		})
	}
	return mustJSON(entries)
}

// EpisodesResponseJSON renders a /shows/{id}/episodes payload for the given episodes.
func EpisodesResponseJSON(episodes ...EpisodeFixture) string {
	entries := make([]map[string]interface{}, 0, len(episodes))
	for _, e := range episodes {
		entries = append(entries, map[string]interface{}{
			"id":     e.ID,
			"name":   e.Name,
			"season": e.Season,
			"number": e.Number,
		})
	}
	return mustJSON(entries)
}

func mustJSON(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}

// JSONHandler answers every request with the given status and body.
func JSONHandler(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

// CatalogServer is a fake catalog that routes requests by URL path and records them.
type CatalogServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []*http.Request
}

// NewCatalogServer starts a fake catalog. Paths not in routes answer 404.
// The server is closed when the test ends.
func NewCatalogServer(t testing.TB, routes map[string]http.HandlerFunc) *CatalogServer {
	t.Helper()
	cs := &CatalogServer{}
	cs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cs.mu.Lock()
		cs.requests = append(cs.requests, r.Clone(r.Context()))
		cs.mu.Unlock()

		if h, ok := routes[r.URL.Path]; ok {
			h(w, r)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(cs.Close)
	return cs
}

// Requests returns the requests received so far.
func (cs *CatalogServer) Requests() []*http.Request {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return append([]*http.Request(nil), cs.requests...)
}
