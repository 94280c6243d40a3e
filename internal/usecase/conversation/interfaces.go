package conversation

import (
	"context"
)

// GenerationConnector produces one text completion per call. Implementations
// must not retry; failures propagate to the engine unchanged.
type GenerationConnector interface {
	Generate(ctx context.Context, credential, prompt string, temperature float64) (string, error)
}
