package validator

import (
	"github.com/rverdelli/PlatformVA/internal/config"
)

// Validator validates inbound API requests against configured limits.
type Validator struct {
	cfg config.UploadConfig
}

func NewValidator(cfg config.UploadConfig) *Validator {
	return &Validator{cfg: cfg}
}
