package web

import (
	"net/http"

	"github.com/rs/zerolog/hlog"

	"github.com/Belphemur/ShowFinder/internal/session"
	"github.com/Belphemur/ShowFinder/internal/ui"
)

// sessionID returns the caller's session id, issuing a new cookie when the
// request carries none or an invalid one.
func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(s.cookieName); err == nil && session.ValidID(c.Value) {
		return c.Value
	}
	id := session.NewID()
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func (s *Server) page(w http.ResponseWriter, r *http.Request) {
	id := s.sessionID(w, r)

	body, err := s.sessions.Page(r.Context(), id)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("session", session.LogID(id)).Msg("Failed to render page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(body)
}

func (s *Server) submit(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, r, ui.SubmitEvent(r.PostFormValue("term")))
}

func (s *Server) click(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, r, ui.ClickEvent(r.PostFormValue("target")))
}

// dispatch runs ev against the caller's page and sends the browser back to it.
func (s *Server) dispatch(w http.ResponseWriter, r *http.Request, ev ui.Event) {
	id := s.sessionID(w, r)
	logger := hlog.FromRequest(r).With().Str("session", session.LogID(id)).Logger()

	controller := ui.NewController(s.catalog, s.sessions.View(id), logger)
	controller.Attach()

	if err := controller.Dispatch(r.Context(), ev); err != nil {
		logger.Error().Err(err).Str("event", string(ev.Type)).Msg("Failed to handle event")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) reset(w http.ResponseWriter, r *http.Request) {
	s.sessions.Reset(s.sessionID(w, r))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
