package catalog

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers catalog routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/api/blocks", func(r chi.Router) {
		r.Post("/upload", h.UploadBlocks)
		r.Get("/template", h.DownloadTemplate)
	})
}
