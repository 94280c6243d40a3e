package settings

import (
	"encoding/json"
	"net/http"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/rverdelli/PlatformVA/internal/entity"
	"github.com/rverdelli/PlatformVA/internal/pkg/logger"
	"github.com/rverdelli/PlatformVA/internal/pkg/response"
	"go.uber.org/zap"
)

type Handler struct {
	store   SettingsStore
	catalog CatalogStore
}

func NewHandler(store SettingsStore, catalog CatalogStore) *Handler {
	return &Handler{
		store:   store,
		catalog: catalog,
	}
}

// GetSettings handles GET /api/settings - read persisted settings
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GetSettings")

	settings := h.store.Load(ctx)
	blocks := h.catalog.Load(ctx)

	response.Success(w, entity.SettingsResponse{
		APIKey:          settings.APIKey,
		TechnicalChecks: settings.TechnicalChecks,
		BlocksCount:     len(blocks),
	})
}

// SaveSettings handles POST /api/settings - overwrite persisted settings
func (h *Handler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "SaveSettings")

	var req entity.SaveSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.store.Save(ctx, entity.Settings{
		APIKey:          req.APIKey,
		TechnicalChecks: req.TechnicalChecks,
	})
	if err != nil {
		ctxzap.Error(ctx, "failed to save settings", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "failed to save settings")
		return
	}

	response.Success(w, entity.OKResponse{OK: true})
}

// ClearSettings handles POST /api/settings/clear - delete persisted settings
func (h *Handler) ClearSettings(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ClearSettings")

	if err := h.store.Clear(ctx); err != nil {
		ctxzap.Error(ctx, "failed to clear settings", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "failed to clear settings")
		return
	}

	response.Success(w, entity.OKResponse{OK: true})
}
