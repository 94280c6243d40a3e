package export

import (
	"encoding/json"
	"net/http"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/rverdelli/PlatformVA/internal/entity"
	"github.com/rverdelli/PlatformVA/internal/pkg/formatter"
	"github.com/rverdelli/PlatformVA/internal/pkg/logger"
	"github.com/rverdelli/PlatformVA/internal/pkg/response"
	"github.com/rverdelli/PlatformVA/internal/pkg/validator"
	"go.uber.org/zap"
)

const exportBasename = "proposal"

type Handler struct {
	factory   *formatter.Factory
	validator *validator.Validator
}

func NewHandler(factory *formatter.Factory, validator *validator.Validator) *Handler {
	return &Handler{
		factory:   factory,
		validator: validator,
	}
}

// ExportProposal handles POST /api/proposal/export - download the proposal
// text as a named attachment in the requested format.
func (h *Handler) ExportProposal(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ExportProposal")

	var req entity.ExportProposalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validator.ValidateExport(&req); err != nil {
		ctxzap.Error(ctx, "failed to validate request", zap.Error(err))
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	f, err := h.factory.Create(req.Format)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	data, err := f.Format(req.Content)
	if err != nil {
		ctxzap.Error(ctx, "failed to format proposal", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "failed to format proposal")
		return
	}

	ctxzap.Info(ctx, "proposal exported",
		zap.String("format", string(req.Format)),
		zap.Int("bytes", len(data)),
	)

	response.Attachment(w, exportBasename+f.FileExtension(), f.ContentType(), data)
}
