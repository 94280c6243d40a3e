package generation

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/rverdelli/PlatformVA/internal/config"
	"github.com/rverdelli/PlatformVA/internal/entity"
	pkghttp "github.com/rverdelli/PlatformVA/pkg/http"
	"go.uber.org/zap"
)

// APIShape selects the call shape of the generation backend. It is resolved
// once at construction, never probed per call.
type APIShape string

const (
	ShapeResponses APIShape = "responses"
	ShapeChat      APIShape = "chat"
)

const (
	responsesEndpoint       = "/responses"
	chatCompletionsEndpoint = "/chat/completions"
)

// Connector performs single text completions against an OpenAI-compatible
// backend. One call per turn, no retries; any failure propagates unchanged.
type Connector struct {
	cfg       config.GenerationConnectorConfig
	shape     APIShape
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(cfg config.GenerationConnectorConfig, logger *zap.Logger) *Connector {
	connCfg := &pkghttp.ConnectorConfig{
		Logger:  logger,
		BaseURL: strings.TrimSuffix(cfg.Url, "/"),
	}

	connector := pkghttp.NewConnector(
		connCfg,
		pkghttp.WithRequestTimeout(cfg.RequestTimeout),
		pkghttp.WithConnClientTimeout(cfg.ConnTimeout),
		pkghttp.WithClientKeepAlive(cfg.KeepAlive),
		pkghttp.WithIdleConnTimeout(cfg.IdleConnTimeout),
		pkghttp.WithResponseHeaderTimeout(cfg.ResponseHeaderTimeout),
		pkghttp.WithRequestLogging(),
	)

	return &Connector{
		cfg:       cfg,
		shape:     APIShape(cfg.APIShape),
		connector: connector,
		logger:    logger,
	}
}

// Generate produces one trimmed text completion for the prompt. The
// credential is operator-configured at runtime and therefore passed per call.
func (c *Connector) Generate(ctx context.Context, credential, prompt string, temperature float64) (string, error) {
	switch c.shape {
	case ShapeChat:
		return c.generateChat(ctx, credential, prompt, temperature)
	default:
		return c.generateResponses(ctx, credential, prompt, temperature)
	}
}

func (c *Connector) generateResponses(ctx context.Context, credential, prompt string, temperature float64) (string, error) {
	ctxzap.Info(ctx, "generating text via responses API",
		zap.String("model", c.cfg.ReasoningModel),
		zap.Float64("temperature", temperature),
	)

	req := &entity.ResponsesRequest{
		Model:       c.cfg.ReasoningModel,
		Input:       prompt,
		Reasoning:   &entity.ReasoningParams{Effort: c.cfg.ReasoningEffort},
		Temperature: temperature,
	}

	var resp entity.ResponsesResponse
	err := c.connector.DoRequest(ctx, http.MethodPost, responsesEndpoint, req, &resp, pkghttp.WithBearer(credential))
	if err != nil {
		return "", fmt.Errorf("responses request: %w", err)
	}

	text := resp.OutputText
	if text == "" {
		text = collectOutputText(resp.Output)
	}

	ctxzap.Info(ctx, "text generated successfully", zap.Int("result_length", len(text)))

	return strings.TrimSpace(text), nil
}

func (c *Connector) generateChat(ctx context.Context, credential, prompt string, temperature float64) (string, error) {
	ctxzap.Info(ctx, "generating text via chat completions API",
		zap.String("model", c.cfg.FallbackChatModel),
		zap.Float64("temperature", temperature),
	)

	req := &entity.ChatCompletionRequest{
		Model:       c.cfg.FallbackChatModel,
		Messages:    []entity.ChatMessage{{Role: "user", Content: prompt}},
		Temperature: temperature,
	}

	var resp entity.ChatCompletionResponse
	err := c.connector.DoRequest(ctx, http.MethodPost, chatCompletionsEndpoint, req, &resp, pkghttp.WithBearer(credential))
	if err != nil {
		return "", fmt.Errorf("chat completion request: %w", err)
	}

	// Empty content is a valid (empty) completion, not an error.
	if len(resp.Choices) == 0 {
		return "", nil
	}

	ctxzap.Info(ctx, "text generated successfully", zap.Int("result_length", len(resp.Choices[0].Message.Content)))

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// collectOutputText joins the output_text parts of the response message
// items, for backends that do not aggregate output server-side.
func collectOutputText(items []entity.ResponsesOutputItem) string {
	var sb strings.Builder
	for _, item := range items {
		if item.Type != "message" {
			continue
		}
		for _, part := range item.Content {
			if part.Type != "output_text" {
				continue
			}
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}
