// Package ui connects user events on the search page to the catalog client
// and the renderers.
package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Belphemur/ShowFinder/internal/client"
	"github.com/Belphemur/ShowFinder/internal/dom"
	"github.com/Belphemur/ShowFinder/internal/metrics"
	"github.com/Belphemur/ShowFinder/internal/render"
)

// Dispatch outcomes recorded in metrics.UIEventsTotal.
const (
	outcomeHandled = "handled"
	outcomeIgnored = "ignored"
	outcomeUnbound = "unbound"
	outcomeError   = "error"
)

// Controller owns the event bindings of one page.
// Construct it once per view and call Attach once before dispatching.
type Controller struct {
	catalog  client.Client
	view     View
	logger   zerolog.Logger
	shows    *render.ShowRenderer
	episodes *render.EpisodeRenderer

	attach   sync.Once
	mu       sync.RWMutex
	bindings []binding
}

func NewController(catalog client.Client, view View, logger zerolog.Logger) *Controller {
	return &Controller{
		catalog:  catalog,
		view:     view,
		logger:   logger,
		shows:    render.NewShowRenderer(),
		episodes: render.NewEpisodeRenderer(),
	}
}

// Attach registers the page's event handlers. Calls after the first are no-ops.
//
// These are the only entry points: a submit on the search form runs a search,
// and a click on any episodes action inside the shows list loads that show's
// episodes.
func (c *Controller) Attach() {
	c.attach.Do(func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.bindings = append(c.bindings,
			binding{event: EventSubmit, root: dom.SearchFormSelector, handler: c.onSearch},
			binding{event: EventClick, root: dom.ShowsListSelector, filter: render.EpisodesActionSelector, handler: c.onEpisodes},
		)
	})
}

// Dispatch runs the handler bound to ev, if any. Events no binding matches are
// dropped without error.
func (c *Controller) Dispatch(ctx context.Context, ev Event) error {
	c.mu.RLock()
	bindings := c.bindings
	c.mu.RUnlock()
	if len(bindings) == 0 {
		return ErrNoHandler
	}

	var handler Handler
	err := c.view.Read(ctx, func(p *dom.Page) error {
		for _, b := range bindings {
			if b.matches(p, ev) {
				handler = b.handler
				return nil
			}
		}
		return nil
	})
	if err != nil {
		c.count(ev, outcomeError)
		return fmt.Errorf("resolve %s event: %w", ev.Type, err)
	}
	if handler == nil {
		c.logger.Debug().Str("event", string(ev.Type)).Str("target", ev.Target).Msg("No handler bound for event")
		c.count(ev, outcomeUnbound)
		return nil
	}

	if err := handler(ctx, ev); err != nil {
		c.count(ev, outcomeError)
		return err
	}
	return nil
}

func (c *Controller) count(ev Event, outcome string) {
	metrics.UIEventsTotal.WithLabelValues(string(ev.Type), outcome).Inc()
}

func (c *Controller) onSearch(ctx context.Context, ev Event) error {
	term := ev.Values.Get("term")

	err := c.view.Update(ctx, func(p *dom.Page) error {
		p.SetTerm(term)
		dom.Hide(p.EpisodesArea)
		return nil
	})
	if err != nil {
		return fmt.Errorf("prepare search: %w", err)
	}

	shows := c.catalog.SearchShows(ctx, term)
	c.logger.Debug().Str("term", term).Int("shows", len(shows)).Msg("Rendering search results")

	err = c.view.Update(ctx, func(p *dom.Page) error {
		return c.shows.Render(p.ShowsList, shows)
	})
	if err != nil {
		return fmt.Errorf("render shows: %w", err)
	}
	c.count(ev, outcomeHandled)
	return nil
}

func (c *Controller) onEpisodes(ctx context.Context, ev Event) error {
	var rawID string
	err := c.view.Read(ctx, func(p *dom.Page) error {
		card := p.ShowsList.Find(ev.Target).First().Closest(render.ShowCardSelector)
		rawID = card.AttrOr(render.ShowIDAttr, "")
		return nil
	})
	if err != nil {
		return fmt.Errorf("resolve show card: %w", err)
	}

	showID, err := strconv.Atoi(strings.TrimSpace(rawID))
	if err != nil {
		c.logger.Warn().Str("target", ev.Target).Str("show_id", rawID).Msg("Ignoring episodes click without a valid show id")
		c.count(ev, outcomeIgnored)
		return nil
	}

	episodes := c.catalog.ListEpisodes(ctx, showID)
	c.logger.Debug().Int("show_id", showID).Int("episodes", len(episodes)).Msg("Rendering episodes")

	err = c.view.Update(ctx, func(p *dom.Page) error {
		return c.episodes.Render(p.EpisodesList, p.EpisodesArea, episodes)
	})
	if err != nil {
		return fmt.Errorf("render episodes: %w", err)
	}
	c.count(ev, outcomeHandled)
	return nil
}
