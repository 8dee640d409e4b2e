package main

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Belphemur/ShowFinder/internal/config"
	"github.com/Belphemur/ShowFinder/internal/dom"
	"github.com/Belphemur/ShowFinder/internal/models"
	"github.com/Belphemur/ShowFinder/internal/testutil"
)

// useCatalog points the global configuration at a fake catalog for one test.
func useCatalog(t *testing.T) {
	t.Helper()
	server := testutil.NewCatalogServer(t, map[string]http.HandlerFunc{
		"/search/shows": testutil.JSONHandler(http.StatusOK, testutil.SearchResponseJSON(
			testutil.ShowFixture{ID: 5, Name: "Lost", Summary: "<p>s</p>", ImageMedium: "a.jpg"},
		)),
		"/shows/5/episodes": testutil.JSONHandler(http.StatusOK, testutil.EpisodesResponseJSON(
			testutil.EpisodeFixture{ID: 10, Name: "Pilot", Season: 1, Number: 1},
		)),
	})

	cfg := config.GetConfig()
	original := *cfg
	cfg.CatalogBaseURL = server.URL
	cfg.RateLimit.RequestsPerSecond = 0
	t.Cleanup(func() { *cfg = original })
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		outputFormat = "table"
		renderEpisodesOf = 0
	})
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSearchCommand(t *testing.T) {
	useCatalog(t)

	out, err := run(t, "search", "lost")
	require.NoError(t, err)
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "Lost")
	assert.Contains(t, out, "a.jpg")
}

func TestEpisodesCommand_JSON(t *testing.T) {
	useCatalog(t)

	out, err := run(t, "episodes", "5", "-o", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":10,"name":"Pilot","season":1,"number":1}]`, out)
}

func TestEpisodesCommand_InvalidID(t *testing.T) {
	_, err := run(t, "episodes", "five")
	assert.ErrorContains(t, err, "show id must be an integer")
}

func TestRenderCommand(t *testing.T) {
	useCatalog(t)

	out, err := run(t, "render", "lost", "--episodes", "5")
	require.NoError(t, err)

	p, err := dom.Load([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, 1, p.ShowsList.Children().Length())
	assert.Equal(t, "Pilot (season 1, number 1)", strings.TrimSpace(p.EpisodesList.Find("li").Text()))
	assert.True(t, dom.IsVisible(p.EpisodesArea))
}

func TestPrintRecords_UnknownFormat(t *testing.T) {
	outputFormat = "xml"
	t.Cleanup(func() { outputFormat = "table" })

	err := printRecords(&bytes.Buffer{}, []models.Show{}, nil)
	assert.ErrorContains(t, err, "xml")
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "showfinder: dev\n", out)
}
