package httpserver

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/onlinedenker/denker/internal/daily"
)

// mountAdmin registers /admin routes. All of them sit behind requireAdmin.
func (s *Server) mountAdmin(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Get("/results", s.handleResults)
		r.Get("/stats", s.handleStats)
	})
}

type resultsRes struct {
	Date    string         `json:"date"`
	Results []daily.Result `json:"results"`
}

// handleResults returns the fastest completions for ?date= (default today).
func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(s.now())
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	rows, err := s.results.Results(r.Context(), date, limit)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("load results")
		writeError(w, http.StatusInternalServerError, "db_error", "")
		return
	}
	writeJSON(w, resultsRes{Date: date, Results: rows})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]int{
		"sessions": s.store.Len(),
		"puzzles":  s.catalog.Len(),
	})
}
