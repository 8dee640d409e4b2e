package ui

import (
	"context"
	"errors"
	"net/url"

	"github.com/Belphemur/ShowFinder/internal/dom"
)

// EventType names a browser event the controller can handle.
type EventType string

const (
	EventSubmit EventType = "submit"
	EventClick  EventType = "click"
)

// ErrNoHandler is returned by Dispatch before any handler has been attached.
var ErrNoHandler = errors.New("no event handlers attached")

// Event is one user interaction forwarded from the browser.
// Target is a selector resolving the element the event originated from.
type Event struct {
	Type   EventType
	Target string
	Values url.Values
}

// SubmitEvent builds the event fired by submitting the search form.
func SubmitEvent(term string) Event {
	return Event{
		Type:   EventSubmit,
		Target: dom.SearchFormSelector,
		Values: url.Values{"term": {term}},
	}
}

// ClickEvent builds a click on the element matched by target.
func ClickEvent(target string) Event {
	return Event{Type: EventClick, Target: target}
}

// Handler runs an event after it has been matched to a binding.
type Handler func(ctx context.Context, ev Event) error

// binding ties an event type to the element it is registered on.
// A non-empty filter makes it a delegated binding: it fires for descendants
// of root matching filter, including elements added after registration.
type binding struct {
	event   EventType
	root    string
	filter  string
	handler Handler
}

// matches reports whether ev, resolved against p, is handled by b.
func (b binding) matches(p *dom.Page, ev Event) bool {
	if ev.Type != b.event || ev.Target == "" {
		return false
	}

	el := p.Doc.Find(ev.Target).First()
	if el.Length() == 0 {
		return false
	}

	if b.filter == "" {
		return el.Closest(b.root).Length() > 0
	}

	el = el.Closest(b.filter)
	if el.Length() == 0 {
		return false
	}
	return el.ParentsFiltered(b.root).Length() > 0
}
