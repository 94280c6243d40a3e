package catalog

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/rverdelli/PlatformVA/internal/config"
	"github.com/rverdelli/PlatformVA/internal/entity"
	"github.com/rverdelli/PlatformVA/internal/pkg/response"
	"github.com/rverdelli/PlatformVA/internal/pkg/validator"
	"github.com/rverdelli/PlatformVA/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T, maxFileSize int64) *Handler {
	t.Helper()

	store := repository.NewCatalogFile(filepath.Join(t.TempDir(), "catalog.csv"), time.Minute)
	return NewHandler(store, validator.NewValidator(config.UploadConfig{MaxFileSize: maxFileSize}))
}

func uploadRequest(t *testing.T, content string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "catalog.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/blocks/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadBlocks_Valid(t *testing.T) {
	handler := newTestHandler(t, 5<<20)

	rec := httptest.NewRecorder()
	handler.UploadBlocks(rec, uploadRequest(t, "block_name,functionality_description\nAuth,Login\nBilling,Invoices\n"))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp entity.UploadBlocksResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.Equal(t, 2, resp.Rows)
}

func TestUploadBlocks_MissingColumns(t *testing.T) {
	handler := newTestHandler(t, 5<<20)

	rec := httptest.NewRecorder()
	handler.UploadBlocks(rec, uploadRequest(t, "name,description\nAuth,Login\n"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp response.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.OK)
	assert.Contains(t, resp.Error, "missing required columns")
}

func TestUploadBlocks_NoFile(t *testing.T) {
	handler := newTestHandler(t, 5<<20)

	req := httptest.NewRequest(http.MethodPost, "/api/blocks/upload", nil)
	rec := httptest.NewRecorder()
	handler.UploadBlocks(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp response.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "No file uploaded", resp.Error)
}

func TestUploadBlocks_FileTooLarge(t *testing.T) {
	handler := newTestHandler(t, 16)

	rec := httptest.NewRecorder()
	handler.UploadBlocks(rec, uploadRequest(t, "block_name,functionality_description\nAuth,Login\n"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDownloadTemplate(t *testing.T) {
	handler := newTestHandler(t, 5<<20)

	req := httptest.NewRequest(http.MethodGet, "/api/blocks/template", nil)
	rec := httptest.NewRecorder()
	handler.DownloadTemplate(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "blocks_template.csv")
	assert.Equal(t, "block_name,functionality_description\n", rec.Body.String())
}
