// Package render draws show cards and episode lists into the page document.
// Both renderers fully replace the content of their container on every call.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/Masterminds/sprig"
	"github.com/PuerkitoBio/goquery"

	"github.com/Belphemur/ShowFinder/internal/dom"
	"github.com/Belphemur/ShowFinder/internal/models"
)

// Selectors the renderers produce and the controller relies on.
const (
	ShowCardSelector       = ".Show"
	EpisodesActionSelector = ".Show-getEpisodes"
	ShowIDAttr             = "data-show-id"
)

//go:embed templates
var templateFS embed.FS

var funcs = template.FuncMap{
	// markup inserts catalog-provided HTML as-is.
	"markup": func(s string) template.HTML { return template.HTML(s) },
}

func parse(name string) *template.Template {
	return template.Must(template.New(name).
		Funcs(sprig.FuncMap()).
		Funcs(funcs).
		ParseFS(templateFS, "templates/"+name))
}

var (
	showCardTemplate    = parse("show_card.html")
	episodeItemTemplate = parse("episode_item.html")
)

// EpisodesActionTarget is the selector identifying the episodes action of a show's card.
func EpisodesActionTarget(showID int) string {
	return fmt.Sprintf(`%s[%s="%d"] %s`, ShowCardSelector, ShowIDAttr, showID, EpisodesActionSelector)
}

// ShowRenderer draws one card per show.
type ShowRenderer struct {
	card *template.Template
}

func NewShowRenderer() *ShowRenderer {
	return &ShowRenderer{card: showCardTemplate}
}

type cardData struct {
	Show      models.Show
	ClickForm string
	Target    string
}

// Render replaces the children of container with one card per show, in input order.
func (r *ShowRenderer) Render(container *goquery.Selection, shows []models.Show) error {
	container.Empty()

	var buf bytes.Buffer
	for _, show := range shows {
		buf.Reset()
		err := r.card.Execute(&buf, cardData{
			Show:      show,
			ClickForm: dom.ClickFormID,
			Target:    EpisodesActionTarget(show.ID),
		})
		if err != nil {
			return fmt.Errorf("render show %d: %w", show.ID, err)
		}
		container.AppendHtml(buf.String())
	}
	return nil
}

// EpisodeRenderer draws one list item per episode and reveals the episode area.
type EpisodeRenderer struct {
	item *template.Template
}

func NewEpisodeRenderer() *EpisodeRenderer {
	return &EpisodeRenderer{item: episodeItemTemplate}
}

// Render replaces the items of list with the given episodes, then shows area.
func (r *EpisodeRenderer) Render(list, area *goquery.Selection, episodes []models.Episode) error {
	list.Empty()

	var buf bytes.Buffer
	for _, ep := range episodes {
		buf.Reset()
		if err := r.item.Execute(&buf, ep); err != nil {
			return fmt.Errorf("render episode %d: %w", ep.ID, err)
		}
		list.AppendHtml(buf.String())
	}

	dom.Show(area)
	return nil
}
