package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/rverdelli/PlatformVA/internal/entity"
	"github.com/rverdelli/PlatformVA/internal/pkg/logger"
	"github.com/rverdelli/PlatformVA/internal/pkg/response"
	"github.com/rverdelli/PlatformVA/internal/pkg/validator"
	"go.uber.org/zap"
)

const missingCredentialMessage = "Please save OpenAI API key in Settings."

type Handler struct {
	usecase   ConversationUsecase
	settings  SettingsStore
	catalog   CatalogStore
	validator *validator.Validator
}

func NewHandler(
	usecase ConversationUsecase,
	settings SettingsStore,
	catalog CatalogStore,
	validator *validator.Validator,
) *Handler {
	return &Handler{
		usecase:   usecase,
		settings:  settings,
		catalog:   catalog,
		validator: validator,
	}
}

// PostTurn handles POST /api/chat - one conversation turn
func (h *Handler) PostTurn(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "PostTurn")

	var req entity.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// Configuration errors are detected before any generation call.
	settings := h.settings.Load(ctx)
	if settings.APIKey == "" {
		ctxzap.Info(ctx, "rejecting turn: no api key configured")
		response.Error(w, http.StatusBadRequest, missingCredentialMessage)
		return
	}

	if err := h.validator.ValidateChat(&req); err != nil {
		ctxzap.Error(ctx, "failed to validate request", zap.Error(err))
		if errors.Is(err, entity.ErrEmptyInput) {
			response.Error(w, http.StatusBadRequest, "Empty input.")
			return
		}
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx = logger.AddFields(ctx, zap.String("phase", string(req.State.Phase)))

	result, err := h.usecase.Advance(ctx, &entity.AdvanceRequest{
		Credential:      settings.APIKey,
		UserInput:       req.UserInput,
		TechnicalChecks: settings.TechnicalChecks,
		Catalog:         h.catalog.Load(ctx),
		State:           req.State,
	})
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, entity.ChatResponse{
		OK:                true,
		AssistantMessages: result.Messages,
		State:             result.State,
	})
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	var genErr *entity.GenerationError

	switch {
	case errors.Is(err, entity.ErrEmptyInput):
		response.Error(w, http.StatusBadRequest, "Empty input.")
	case errors.Is(err, entity.ErrInvalidPhase):
		response.Error(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &genErr):
		ctxzap.Error(ctx, "generation failed", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, genErr.Error())
	default:
		ctxzap.Error(ctx, "conversation turn failed", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "internal error")
	}
}
