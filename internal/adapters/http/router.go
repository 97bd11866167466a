package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { writeSuccess(w, http.StatusOK, "ok", nil) })
	r.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) { writeSuccess(w, http.StatusOK, "ready", nil) })
	r.Route("/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/escrow/holds", handler.createHold)
			r.Post("/escrow/sweep", handler.sweep)
			r.Get("/escrow/{escrow_id}", handler.getEscrow)
			r.Post("/escrow/{escrow_id}/release", handler.release)
			r.Post("/escrow/{escrow_id}/force-release", handler.forceRelease)
			r.Post("/escrow/{escrow_id}/disputes", handler.createDispute)
			r.Get("/disputes/{dispute_id}", handler.getDispute)
			r.Get("/tracking", handler.getTracking)
		})
	})
	return r
}
