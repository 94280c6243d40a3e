package export

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers export routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/api/proposal/export", h.ExportProposal)
}
