package generation

import (
	"context"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector is a canned generation backend for local development.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) Generate(ctx context.Context, credential, prompt string, temperature float64) (string, error) {
	ctxzap.Info(ctx, "[MOCK] generating text",
		zap.Float64("temperature", temperature),
		zap.Int("prompt_length", len(prompt)),
	)

	// The clarification prompt asks for a JSON object; everything else gets
	// plain text.
	if strings.Contains(prompt, "Return ONLY valid JSON") {
		return `{"complete": true, "assistant_message": "All technical checks are covered. Moving on to functional design."}`, nil
	}

	return "This is a mock response. Configure ENABLE_MOCKS=false to talk to the real generation backend.", nil
}
