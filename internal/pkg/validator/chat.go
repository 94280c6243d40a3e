package validator

import (
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/rverdelli/PlatformVA/internal/entity"
)

// ValidateChat rejects empty turns before the conversation engine or the
// generation backend is touched.
func (v *Validator) ValidateChat(req *entity.ChatRequest) error {
	if strings.TrimSpace(req.UserInput) == "" {
		return entity.ErrEmptyInput
	}

	if req.State.Phase != "" && !req.State.Phase.Valid() {
		return fmt.Errorf("%w: %q", entity.ErrInvalidPhase, req.State.Phase)
	}

	return nil
}

// ValidateExport validates a proposal export request.
func (v *Validator) ValidateExport(req *entity.ExportProposalRequest) error {
	if strings.TrimSpace(req.Content) == "" {
		return fmt.Errorf("%w: content", entity.ErrMissingField)
	}

	switch req.Format {
	case entity.FormatMarkdown, entity.FormatPDF, entity.FormatDOCX:
		return nil
	default:
		return fmt.Errorf("%w: %q", entity.ErrUnsupportedFormat, req.Format)
	}
}

// ValidateCatalogUpload validates the uploaded catalog file header.
func (v *Validator) ValidateCatalogUpload(file *multipart.FileHeader) error {
	if file == nil {
		return entity.ErrNoFile
	}

	if file.Size > v.cfg.MaxFileSize {
		return fmt.Errorf("%w: file '%s' is %d bytes (max %d)", entity.ErrFileTooLarge, file.Filename, file.Size, v.cfg.MaxFileSize)
	}

	return nil
}
