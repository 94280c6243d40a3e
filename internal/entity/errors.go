package entity

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	// Input errors
	ErrEmptyInput        = errors.New("empty input")
	ErrMissingCredential = errors.New("api key is not configured")
	ErrInvalidPhase      = errors.New("invalid conversation phase")

	// Catalog errors
	ErrMissingColumns   = errors.New("CSV file is missing required columns")
	ErrMalformedCatalog = errors.New("unable to read CSV file")
	ErrNoFile           = errors.New("no file uploaded")

	// Validation errors
	ErrMissingField      = errors.New("required field is missing")
	ErrFileTooLarge      = errors.New("file too large")
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// GenerationError wraps any failure raised by the generation backend. The
// engine does not retry; the error carries the underlying cause verbatim.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("error while contacting generation API: %v", e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
