package records

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts the records endpoints under /api/records.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/api/records", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Delete("/{id}", h.Delete)
	})
}
