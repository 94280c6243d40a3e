package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rverdelli/PlatformVA/internal/config"
	"github.com/rverdelli/PlatformVA/internal/entity"
	"github.com/rverdelli/PlatformVA/internal/pkg/response"
	"github.com/rverdelli/PlatformVA/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsecase struct {
	result *entity.AdvanceResult
	err    error

	calls []*entity.AdvanceRequest
}

func (f *fakeUsecase) Advance(ctx context.Context, req *entity.AdvanceRequest) (*entity.AdvanceResult, error) {
	f.calls = append(f.calls, req)
	return f.result, f.err
}

type fakeSettings struct {
	settings entity.Settings
}

func (f *fakeSettings) Load(ctx context.Context) entity.Settings {
	return f.settings
}

type fakeCatalog struct {
	blocks []entity.CatalogBlock
}

func (f *fakeCatalog) Load(ctx context.Context) []entity.CatalogBlock {
	return f.blocks
}

func newTestHandler(uc *fakeUsecase, settings entity.Settings, blocks []entity.CatalogBlock) *Handler {
	return NewHandler(
		uc,
		&fakeSettings{settings: settings},
		&fakeCatalog{blocks: blocks},
		validator.NewValidator(config.UploadConfig{MaxFileSize: 5 << 20}),
	)
}

func postTurn(t *testing.T, handler *Handler, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))

	req := httptest.NewRequest(http.MethodPost, "/api/chat", &buf)
	rec := httptest.NewRecorder()
	handler.PostTurn(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) response.ErrorResponse {
	t.Helper()

	var resp response.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestPostTurn_Success(t *testing.T) {
	uc := &fakeUsecase{
		result: &entity.AdvanceResult{
			Messages: []string{"the design"},
			State: entity.ConversationState{
				Phase:               entity.PhaseBlockProposal,
				BaseRequest:         "a CRM",
				RequirementMessages: []string{"a CRM", "with SSO"},
			},
		},
	}
	settings := entity.Settings{APIKey: "sk-test", TechnicalChecks: "security"}
	blocks := []entity.CatalogBlock{{BlockName: "Auth", FunctionalityDescription: "Login"}}
	handler := newTestHandler(uc, settings, blocks)

	rec := postTurn(t, handler, entity.ChatRequest{
		UserInput: "with SSO",
		State: entity.ConversationState{
			Phase:               entity.PhaseFunctionalDesign,
			BaseRequest:         "a CRM",
			RequirementMessages: []string{"a CRM"},
		},
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp entity.ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.Equal(t, []string{"the design"}, resp.AssistantMessages)
	assert.Equal(t, entity.PhaseBlockProposal, resp.State.Phase)

	// The handler enriches the turn with server-side settings and catalog.
	require.Len(t, uc.calls, 1)
	assert.Equal(t, "sk-test", uc.calls[0].Credential)
	assert.Equal(t, "security", uc.calls[0].TechnicalChecks)
	assert.Equal(t, blocks, uc.calls[0].Catalog)
}

func TestPostTurn_MissingAPIKey(t *testing.T) {
	uc := &fakeUsecase{}
	handler := newTestHandler(uc, entity.Settings{}, nil)

	rec := postTurn(t, handler, entity.ChatRequest{UserInput: "hello"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeError(t, rec)
	assert.False(t, resp.OK)
	assert.Equal(t, missingCredentialMessage, resp.Error)
	assert.Empty(t, uc.calls, "the engine is never reached without a credential")
}

func TestPostTurn_EmptyInput(t *testing.T) {
	uc := &fakeUsecase{}
	handler := newTestHandler(uc, entity.Settings{APIKey: "sk-test"}, nil)

	rec := postTurn(t, handler, entity.ChatRequest{UserInput: "   "})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Empty input.", decodeError(t, rec).Error)
	assert.Empty(t, uc.calls)
}

func TestPostTurn_InvalidPhase(t *testing.T) {
	uc := &fakeUsecase{}
	handler := newTestHandler(uc, entity.Settings{APIKey: "sk-test"}, nil)

	rec := postTurn(t, handler, entity.ChatRequest{
		UserInput: "hello",
		State:     entity.ConversationState{Phase: "negotiation"},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Error, "negotiation")
	assert.Empty(t, uc.calls)
}

func TestPostTurn_MalformedBody(t *testing.T) {
	handler := newTestHandler(&fakeUsecase{}, entity.Settings{APIKey: "sk-test"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	handler.PostTurn(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPostTurn_GenerationFailure(t *testing.T) {
	uc := &fakeUsecase{
		result: &entity.AdvanceResult{
			State: entity.ConversationState{
				Phase:               entity.PhaseClarification,
				RequirementMessages: []string{"hello"},
			},
		},
		err: &entity.GenerationError{Err: errors.New("quota exceeded")},
	}
	handler := newTestHandler(uc, entity.Settings{APIKey: "sk-test"}, nil)

	rec := postTurn(t, handler, entity.ChatRequest{UserInput: "hello"})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeError(t, rec)
	assert.False(t, resp.OK)
	assert.Contains(t, resp.Error, "error while contacting generation API")
	assert.Contains(t, resp.Error, "quota exceeded")
}

func TestPostTurn_UnexpectedFailure(t *testing.T) {
	uc := &fakeUsecase{err: errors.New("boom")}
	handler := newTestHandler(uc, entity.Settings{APIKey: "sk-test"}, nil)

	rec := postTurn(t, handler, entity.ChatRequest{UserInput: "hello"})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal error", decodeError(t, rec).Error)
}
