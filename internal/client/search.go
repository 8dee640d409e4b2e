package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/Belphemur/ShowFinder/internal/apperrors"
	"github.com/Belphemur/ShowFinder/internal/config"
	"github.com/Belphemur/ShowFinder/internal/diagnostics"
	"github.com/Belphemur/ShowFinder/internal/models"
)

// SearchShows queries the catalog for shows matching term, in relevance order.
// The term is sent as-is; an empty term is left to the catalog to interpret.
// Any failure is reported and yields an empty slice.
func (c *client) SearchShows(ctx context.Context, term string) []models.Show {
	logger := config.GetLogger()
	searchURL := fmt.Sprintf("%s/search/shows?%s", c.baseURL, url.Values{"q": {term}}.Encode())

	var (
		results []models.TVMazeSearchResult
		shows   []models.Show
	)
	err := c.getJSON(ctx, endpointSearch, searchURL, &results, func() (err error) {
		shows, err = c.toShows(searchURL, results)
		return err
	})
	if err != nil {
		diagnostics.Capture(ctx, err, "Error fetching shows", map[string]string{
			"endpoint": endpointSearch,
			"term":     term,
		})
		return []models.Show{}
	}

	logger.Debug().Str("term", term).Int("count", len(shows)).Msg("Show search completed")
	return shows
}

// toShows validates raw search results and maps them into display records.
func (c *client) toShows(sourceURL string, results []models.TVMazeSearchResult) ([]models.Show, error) {
	shows := make([]models.Show, 0, len(results))
	for i, result := range results {
		if result.Show == nil {
			return nil, &apperrors.ErrMalformedResponse{URL: sourceURL, Reason: fmt.Sprintf("entry %d has no show", i)}
		}
		if result.Show.ID == nil {
			return nil, &apperrors.ErrMalformedResponse{URL: sourceURL, Reason: fmt.Sprintf("entry %d has no show id", i)}
		}

		shows = append(shows, models.Show{
			ID:       *result.Show.ID,
			Name:     stringOrEmpty(result.Show.Name),
			Summary:  stringOrEmpty(result.Show.Summary),
			ImageURL: c.imageURL(result.Show.Image),
		})
	}
	return shows, nil
}

// imageURL returns the medium image when the catalog provides one, the placeholder otherwise.
func (c *client) imageURL(image *models.TVMazeImage) string {
	if image == nil || image.Medium == "" {
		return c.placeholderImage
	}
	return image.Medium
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
