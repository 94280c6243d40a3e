package settings

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers settings routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/api/settings", func(r chi.Router) {
		r.Get("/", h.GetSettings)
		r.Post("/", h.SaveSettings)
		r.Post("/clear", h.ClearSettings)
	})
}
