// Package dom holds the server-side document of the search page and the
// element references the renderers and the controller operate on.
package dom

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Stable selectors of the elements the page must contain.
const (
	SearchFormSelector   = "#searchForm"
	TermInputSelector    = "#searchForm-term"
	ClickFormSelector    = "#clickForm"
	ShowsListSelector    = "#showsList"
	EpisodesAreaSelector = "#episodesArea"
	EpisodesListSelector = "#episodesList"
)

// ClickFormID is the id of the form that episode actions submit.
const ClickFormID = "clickForm"

//go:embed index.html
var indexHTML []byte

// Page is a parsed search page with its interactive elements resolved once.
type Page struct {
	Doc          *goquery.Document
	SearchForm   *goquery.Selection
	TermInput    *goquery.Selection
	ShowsList    *goquery.Selection
	EpisodesArea *goquery.Selection
	EpisodesList *goquery.Selection
}

// NewPage returns a fresh page: no shows and a hidden episode area.
func NewPage() (*Page, error) {
	return Load(indexHTML)
}

// Load parses a previously rendered page.
func Load(document []byte) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(document))
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	p := &Page{Doc: doc}
	elements := []struct {
		selector string
		target   **goquery.Selection
	}{
		{SearchFormSelector, &p.SearchForm},
		{TermInputSelector, &p.TermInput},
		{ShowsListSelector, &p.ShowsList},
		{EpisodesAreaSelector, &p.EpisodesArea},
		{EpisodesListSelector, &p.EpisodesList},
	}
	for _, el := range elements {
		sel := doc.Find(el.selector)
		if sel.Length() != 1 {
			return nil, fmt.Errorf("page must contain exactly one %s element, found %d", el.selector, sel.Length())
		}
		*el.target = sel
	}

	return p, nil
}

// Render writes the whole document, doctype included.
func (p *Page) Render(w io.Writer) error {
	for _, n := range p.Doc.Nodes {
		if err := html.Render(w, n); err != nil {
			return fmt.Errorf("render page: %w", err)
		}
	}
	return nil
}

// Bytes renders the document into a byte slice.
func (p *Page) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := p.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SetTerm reflects the submitted search term into the term input.
func (p *Page) SetTerm(term string) {
	p.TermInput.SetAttr("value", term)
}

// Hide sets display: none on every element of sel.
func Hide(sel *goquery.Selection) {
	sel.Each(func(_ int, s *goquery.Selection) {
		s.SetAttr("style", withDisplay(s.AttrOr("style", ""), "none"))
	})
}

// Show removes any display: none from every element of sel.
func Show(sel *goquery.Selection) {
	sel.Each(func(_ int, s *goquery.Selection) {
		style := withDisplay(s.AttrOr("style", ""), "")
		if style == "" {
			s.RemoveAttr("style")
			return
		}
		s.SetAttr("style", style)
	})
}

// IsVisible reports whether the first element of sel is not hidden by an inline display: none.
func IsVisible(sel *goquery.Selection) bool {
	if sel.Length() == 0 {
		return false
	}
	for _, decl := range strings.Split(sel.First().AttrOr("style", ""), ";") {
		prop, value, ok := strings.Cut(decl, ":")
		if ok && strings.EqualFold(strings.TrimSpace(prop), "display") && strings.EqualFold(strings.TrimSpace(value), "none") {
			return false
		}
	}
	return true
}

// withDisplay rewrites the display declaration of an inline style.
// An empty display drops the declaration.
func withDisplay(style, display string) string {
	var decls []string
	for _, decl := range strings.Split(style, ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		prop, _, _ := strings.Cut(decl, ":")
		if strings.EqualFold(strings.TrimSpace(prop), "display") {
			continue
		}
		decls = append(decls, decl)
	}
	if display != "" {
		decls = append(decls, "display: "+display)
	}
	if len(decls) == 0 {
		return ""
	}
	return strings.Join(decls, "; ") + ";"
}
