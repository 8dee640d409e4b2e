package client

import (
	"context"
	"net/http"
	"reflect"
	"testing"

	"github.com/Belphemur/ShowFinder/internal/config"
	"github.com/Belphemur/ShowFinder/internal/models"
	"github.com/Belphemur/ShowFinder/internal/testutil"
)

const testPlaceholder = "https://img.test/missing.png"

func newTestClient(baseURL string) Client {
	return NewClient(&config.Config{
		CatalogBaseURL:      baseURL,
		PlaceholderImageURL: testPlaceholder,
		ClientTimeout:       "10s",
	})
}

func TestClient_SearchShows(t *testing.T) {
	server := testutil.NewCatalogServer(t, map[string]http.HandlerFunc{
		"/search/shows": testutil.JSONHandler(http.StatusOK, testutil.SearchResponseJSON(
			testutil.ShowFixture{ID: 1, Name: "Lost", Summary: "<p>s</p>", ImageMedium: "a.jpg"},
			testutil.ShowFixture{ID: 2, Name: "X", Summary: ""},
			testutil.ShowFixture{ID: 3, Name: "Lost Girl", Summary: "<p><b>Bo</b></p>", ImageMedium: "https://static.tvmaze.com/c.jpg"},
		)),
	})

	c := newTestClient(server.URL)
	defer c.Close()

	shows := c.SearchShows(context.Background(), "lost")

	expected := []models.Show{
		{ID: 1, Name: "Lost", Summary: "<p>s</p>", ImageURL: "a.jpg"},
		{ID: 2, Name: "X", Summary: "", ImageURL: testPlaceholder},
		{ID: 3, Name: "Lost Girl", Summary: "<p><b>Bo</b></p>", ImageURL: "https://static.tvmaze.com/c.jpg"},
	}
	if !reflect.DeepEqual(shows, expected) {
		t.Errorf("Expected shows %+v, got %+v", expected, shows)
	}
}

func TestClient_SearchShows_QueryEscaping(t *testing.T) {
	tests := []struct {
		name     string
		term     string
		rawQuery string
	}{
		{"plain", "lost", "q=lost"},
		{"spaces and symbols", "law & order: svu", "q=law+%26+order%3A+svu"},
		{"empty term is sent as-is", "", "q="},
		{"unicode", "café", "q=caf%C3%A9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := testutil.NewCatalogServer(t, map[string]http.HandlerFunc{
				"/search/shows": testutil.JSONHandler(http.StatusOK, "[]"),
			})
			c := newTestClient(server.URL)

			shows := c.SearchShows(context.Background(), tt.term)
			if shows == nil || len(shows) != 0 {
				t.Errorf("Expected empty non-nil slice, got %#v", shows)
			}

			reqs := server.Requests()
			if len(reqs) != 1 {
				t.Fatalf("Expected exactly 1 request, got %d", len(reqs))
			}
			if reqs[0].URL.RawQuery != tt.rawQuery {
				t.Errorf("Expected raw query %q, got %q", tt.rawQuery, reqs[0].URL.RawQuery)
			}
			if reqs[0].URL.Query().Get("q") != tt.term {
				t.Errorf("Expected decoded term %q, got %q", tt.term, reqs[0].URL.Query().Get("q"))
			}
		})
	}
}

func TestClient_SearchShows_MissingOptionalFields(t *testing.T) {
	// name and summary absent, image present but without a medium URL
	body := `[{"score":1,"show":{"id":7,"image":{"original":"big.jpg"}}},{"score":0.5,"show":{"id":8,"name":"Eight","summary":null,"image":null}}]`
	server := testutil.NewCatalogServer(t, map[string]http.HandlerFunc{
		"/search/shows": testutil.JSONHandler(http.StatusOK, body),
	})

	shows := newTestClient(server.URL).SearchShows(context.Background(), "x")

	expected := []models.Show{
		{ID: 7, Name: "", Summary: "", ImageURL: testPlaceholder},
		{ID: 8, Name: "Eight", Summary: "", ImageURL: testPlaceholder},
	}
	if !reflect.DeepEqual(shows, expected) {
		t.Errorf("Expected shows %+v, got %+v", expected, shows)
	}
}

func TestClient_SearchShows_DefaultPlaceholder(t *testing.T) {
	server := testutil.NewCatalogServer(t, map[string]http.HandlerFunc{
		"/search/shows": testutil.JSONHandler(http.StatusOK, testutil.SearchResponseJSON(
			testutil.ShowFixture{ID: 2, Name: "X"},
		)),
	})

	c := NewClient(&config.Config{CatalogBaseURL: server.URL + "/"})
	shows := c.SearchShows(context.Background(), "x")

	if len(shows) != 1 {
		t.Fatalf("Expected 1 show, got %d", len(shows))
	}
	if shows[0].ImageURL != config.DefaultPlaceholderImageURL {
		t.Errorf("Expected default placeholder %q, got %q", config.DefaultPlaceholderImageURL, shows[0].ImageURL)
	}
}

func TestClient_ListEpisodes(t *testing.T) {
	server := testutil.NewCatalogServer(t, map[string]http.HandlerFunc{
		"/shows/5/episodes": testutil.JSONHandler(http.StatusOK, testutil.EpisodesResponseJSON(
			testutil.EpisodeFixture{ID: 10, Name: "Pilot", Season: 1, Number: 1},
			testutil.EpisodeFixture{ID: 11, Name: "Tabula Rasa", Season: 1, Number: 3},
		)),
	})

	episodes := newTestClient(server.URL).ListEpisodes(context.Background(), 5)

	expected := []models.Episode{
		{ID: 10, Name: "Pilot", Season: 1, Number: 1},
		{ID: 11, Name: "Tabula Rasa", Season: 1, Number: 3},
	}
	if !reflect.DeepEqual(episodes, expected) {
		t.Errorf("Expected episodes %+v, got %+v", expected, episodes)
	}
}

func TestClient_ListEpisodes_VerbatimCopy(t *testing.T) {
	// Specials come back with a null number; no defaulting is applied.
	body := `[{"id":99,"name":"Special","season":2,"number":null}]`
	server := testutil.NewCatalogServer(t, map[string]http.HandlerFunc{
		"/shows/1/episodes": testutil.JSONHandler(http.StatusOK, body),
	})

	episodes := newTestClient(server.URL).ListEpisodes(context.Background(), 1)

	expected := []models.Episode{{ID: 99, Name: "Special", Season: 2, Number: 0}}
	if !reflect.DeepEqual(episodes, expected) {
		t.Errorf("Expected episodes %+v, got %+v", expected, episodes)
	}
}

func TestClient_RequestHeaders(t *testing.T) {
	server := testutil.NewCatalogServer(t, map[string]http.HandlerFunc{
		"/search/shows": testutil.JSONHandler(http.StatusOK, "[]"),
	})

	c := NewClient(&config.Config{CatalogBaseURL: server.URL, UserAgent: "showfinder-test/1.0"})
	c.SearchShows(context.Background(), "x")

	reqs := server.Requests()
	if len(reqs) != 1 {
		t.Fatalf("Expected 1 request, got %d", len(reqs))
	}
	if ua := reqs[0].Header.Get("User-Agent"); ua != "showfinder-test/1.0" {
		t.Errorf("Expected configured User-Agent, got %q", ua)
	}
	if accept := reqs[0].Header.Get("Accept"); accept != "application/json" {
		t.Errorf("Expected Accept application/json, got %q", accept)
	}
	if ae := reqs[0].Header.Get("Accept-Encoding"); ae != acceptEncoding {
		t.Errorf("Expected Accept-Encoding %q, got %q", acceptEncoding, ae)
	}
	if reqs[0].Method != http.MethodGet {
		t.Errorf("Expected GET, got %s", reqs[0].Method)
	}
}

func TestClient_Latin1Body(t *testing.T) {
	// "Café" encoded as ISO-8859-1
	body := append([]byte(`[{"show":{"id":4,"name":"Caf`), 0xE9)
	body = append(body, []byte(`"}}]`)...)

	server := testutil.NewCatalogServer(t, map[string]http.HandlerFunc{
		"/search/shows": func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json; charset=ISO-8859-1")
			_, _ = w.Write(body)
		},
	})

	shows := newTestClient(server.URL).SearchShows(context.Background(), "cafe")
	if len(shows) != 1 {
		t.Fatalf("Expected 1 show, got %d", len(shows))
	}
	if shows[0].Name != "Café" {
		t.Errorf("Expected name converted to UTF-8 'Café', got %q", shows[0].Name)
	}
}

func TestNewClient_InvalidSettingsFallBack(t *testing.T) {
	c := NewClient(&config.Config{
		ClientTimeout:         "not-a-duration",
		ProxyConnectionString: "://bad proxy",
	}).(*client)

	if c.httpClient.Timeout.Seconds() != 30 {
		t.Errorf("Expected default 30s timeout, got %v", c.httpClient.Timeout)
	}
	if c.baseURL != config.DefaultCatalogBaseURL {
		t.Errorf("Expected default base URL, got %q", c.baseURL)
	}
	if c.placeholderImage != config.DefaultPlaceholderImageURL {
		t.Errorf("Expected default placeholder, got %q", c.placeholderImage)
	}
}
