// Package web serves the search page and its event endpoints, plus a JSON
// view of the catalog.
package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/Belphemur/ShowFinder/internal/client"
	"github.com/Belphemur/ShowFinder/internal/session"
)

const defaultCookieName = "showfinder_session"

// Server routes browser requests to per-session controllers.
type Server struct {
	catalog    client.Client
	sessions   *session.Manager
	cookieName string
	logger     zerolog.Logger
	router     chi.Router
}

func NewServer(catalog client.Client, sessions *session.Manager, cookieName string, logger zerolog.Logger) *Server {
	if cookieName == "" {
		cookieName = defaultCookieName
	}
	s := &Server{
		catalog:    catalog,
		sessions:   sessions,
		cookieName: cookieName,
		logger:     logger,
	}
	s.router = s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(hlog.NewHandler(s.logger))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Debug().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("Request handled")
	}))
	r.Use(middleware.Recoverer)

	r.Get("/", s.page)
	r.Get("/healthz", s.healthz)
	r.Route("/events", func(r chi.Router) {
		r.Post("/submit", s.submit)
		r.Post("/click", s.click)
	})
	r.Post("/session/reset", s.reset)
	r.Route("/api/shows", func(r chi.Router) {
		r.Get("/", s.searchShows)
		r.Get("/{id}/episodes", s.listEpisodes)
	})
	return r
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}
