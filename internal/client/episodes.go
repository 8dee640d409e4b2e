package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Belphemur/ShowFinder/internal/apperrors"
	"github.com/Belphemur/ShowFinder/internal/config"
	"github.com/Belphemur/ShowFinder/internal/diagnostics"
	"github.com/Belphemur/ShowFinder/internal/models"
)

// ListEpisodes fetches every episode of the given show.
// Any failure is reported and yields an empty slice.
func (c *client) ListEpisodes(ctx context.Context, showID int) []models.Episode {
	logger := config.GetLogger()
	episodesURL := fmt.Sprintf("%s/shows/%d/episodes", c.baseURL, showID)
	tags := map[string]string{
		"endpoint": endpointEpisodes,
		"show_id":  fmt.Sprint(showID),
	}

	var (
		raw      []models.TVMazeEpisode
		episodes []models.Episode
	)
	err := c.getJSON(ctx, endpointEpisodes, episodesURL, &raw, func() (err error) {
		episodes, err = toEpisodes(episodesURL, raw)
		return err
	})
	if err != nil {
		var status *apperrors.ErrUnexpectedStatus
		if errors.As(err, &status) && status.StatusCode == http.StatusNotFound {
			err = fmt.Errorf("%w: %w", apperrors.NewShowNotFoundError(showID), err)
		}
		diagnostics.Capture(ctx, err, "Error fetching episodes", tags)
		return []models.Episode{}
	}

	logger.Debug().Int("show_id", showID).Int("count", len(episodes)).Msg("Episode listing completed")
	return episodes
}

// toEpisodes maps raw episodes verbatim; only the identifier is required.
func toEpisodes(sourceURL string, raw []models.TVMazeEpisode) ([]models.Episode, error) {
	episodes := make([]models.Episode, 0, len(raw))
	for i, ep := range raw {
		if ep.ID == nil {
			return nil, &apperrors.ErrMalformedResponse{URL: sourceURL, Reason: fmt.Sprintf("episode %d has no id", i)}
		}
		episodes = append(episodes, models.Episode{
			ID:     *ep.ID,
			Name:   ep.Name,
			Season: ep.Season,
			Number: ep.Number,
		})
	}
	return episodes, nil
}
