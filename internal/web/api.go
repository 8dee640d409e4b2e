package web

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("Failed to write response")
	}
}

func (s *Server) searchShows(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.catalog.SearchShows(r.Context(), r.URL.Query().Get("q")))
}

func (s *Server) listEpisodes(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, r, http.StatusBadRequest, errorBody{Error: "show id must be an integer"})
		return
	}
	writeJSON(w, r, http.StatusOK, s.catalog.ListEpisodes(r.Context(), id))
}
