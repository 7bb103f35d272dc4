package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// SetupRoutes registers the API routes of s on router.
func SetupRoutes(router chi.Router, s *Server) {
	h := NewHandlers(s)

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	router.Route("/v1", func(r chi.Router) {
		r.Use(limitBody)

		r.Post("/parse", h.Parse)
		r.Post("/format", h.Format)
		r.Post("/tokens", h.Tokens)

		r.Get("/dialects", h.Dialects)
		r.Get("/dialects/{name}", h.Dialect)

		r.Route("/stats", func(r chi.Router) {
			r.Get("/", h.Stats)
			r.Post("/", h.Record)
			r.Delete("/", h.ResetStats)
			r.Get("/{id}", h.StatDetail)
		})
	})
}
