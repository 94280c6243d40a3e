package catalog

import (
	"io"
	"net/http"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/rverdelli/PlatformVA/internal/entity"
	"github.com/rverdelli/PlatformVA/internal/pkg/logger"
	"github.com/rverdelli/PlatformVA/internal/pkg/response"
	"github.com/rverdelli/PlatformVA/internal/pkg/validator"
	"go.uber.org/zap"
)

const templateFilename = "blocks_template.csv"

type Handler struct {
	store     CatalogStore
	validator *validator.Validator
}

func NewHandler(store CatalogStore, validator *validator.Validator) *Handler {
	return &Handler{
		store:     store,
		validator: validator,
	}
}

// UploadBlocks handles POST /api/blocks/upload - replace the block catalog
func (h *Handler) UploadBlocks(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "UploadBlocks")

	file, header, err := r.FormFile("file")
	if err != nil {
		ctxzap.Error(ctx, "missing catalog file", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	if err := h.validator.ValidateCatalogUpload(header); err != nil {
		ctxzap.Error(ctx, "failed to validate upload", zap.Error(err))
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	raw, err := io.ReadAll(file)
	if err != nil {
		ctxzap.Error(ctx, "failed to read uploaded file", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "failed to read uploaded file")
		return
	}

	blocks, err := h.store.Replace(ctx, raw)
	if err != nil {
		// The raw upload is already persisted for inspection; the catalog
		// stays empty until a valid file arrives.
		ctxzap.Error(ctx, "catalog upload rejected", zap.Error(err))
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	response.Success(w, entity.UploadBlocksResponse{OK: true, Rows: len(blocks)})
}

// DownloadTemplate handles GET /api/blocks/template - header-only CSV
func (h *Handler) DownloadTemplate(w http.ResponseWriter, r *http.Request) {
	response.Attachment(w, templateFilename, "text/csv", h.store.TemplateBytes())
}
