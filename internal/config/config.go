package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR" envDefault:":8000"`

	// Store configuration
	SettingsPath  string        `env:"SETTINGS_PATH" envDefault:"app_settings.json"`
	CatalogPath   string        `env:"CATALOG_PATH" envDefault:"app_blocks_catalog.csv"`
	StoreCacheTTL time.Duration `env:"STORE_CACHE_TTL" envDefault:"1m"`

	// Generation backend configuration
	GenerationCfg GenerationConnectorConfig `envPrefix:"LLM_"`

	// Conversation engine configuration
	ChatCfg ChatConfig `envPrefix:"CHAT_"`

	// Upload limits
	UploadCfg UploadConfig `envPrefix:"UPLOAD_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Telegram bot configuration (used only by the telegram-bot binary)
	TelegramCfg TelegramConfig `envPrefix:"TELEGRAM_"`

	// Environment (set from flag, not from env var)
	Environment string
}

// GenerationConnectorConfig configures the generation backend client. The
// API shape is resolved once here, not probed per call.
type GenerationConnectorConfig struct {
	HTTPClientConfig
	APIShape          string `env:"API_SHAPE" envDefault:"responses"` // responses | chat
	ReasoningModel    string `env:"REASONING_MODEL" envDefault:"o4-mini"`
	FallbackChatModel string `env:"FALLBACK_CHAT_MODEL" envDefault:"gpt-4o-mini"`
	ReasoningEffort   string `env:"REASONING_EFFORT" envDefault:"medium"`
}

// ChatConfig configures conversation-engine behavior.
type ChatConfig struct {
	// GateOnComplete keeps the session in the clarification phase until the
	// backend reports complete=true. Off by default: the phase then advances
	// unconditionally after the first clarification exchange.
	GateOnComplete bool `env:"GATE_ON_COMPLETE" envDefault:"false"`
}

// UploadConfig holds catalog upload limits.
type UploadConfig struct {
	MaxFileSize int64 `env:"MAX_FILE_SIZE" envDefault:"5242880"` // 5 MiB
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken           string        `env:"BOT_TOKEN"`
	UpdateTimeout      int           `env:"UPDATE_TIMEOUT" envDefault:"30"`
	SessionTTL         time.Duration `env:"SESSION_TTL" envDefault:"2h"`
	SendRetries        uint          `env:"SEND_RETRIES" envDefault:"3"`
	SendRetryDelay     time.Duration `env:"SEND_RETRY_DELAY" envDefault:"500ms"`
	RateLimitPerMinute int           `env:"RATE_LIMIT_PER_MINUTE" envDefault:"20"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"120s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"120s"`
	Url                   string        `env:"SERVICE_URL" envDefault:"https://api.openai.com/v1"`
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errs []string

	switch cfg.GenerationCfg.APIShape {
	case "responses", "chat":
	default:
		errs = append(errs, fmt.Sprintf("LLM_API_SHAPE must be 'responses' or 'chat', got %q", cfg.GenerationCfg.APIShape))
	}

	switch cfg.GenerationCfg.ReasoningEffort {
	case "low", "medium", "high":
	default:
		errs = append(errs, fmt.Sprintf("LLM_REASONING_EFFORT must be low, medium or high, got %q", cfg.GenerationCfg.ReasoningEffort))
	}

	if cfg.UploadCfg.MaxFileSize < 1 {
		errs = append(errs, fmt.Sprintf("UPLOAD_MAX_FILE_SIZE must be positive, got %d", cfg.UploadCfg.MaxFileSize))
	}

	if cfg.TelegramCfg.UpdateTimeout < 1 || cfg.TelegramCfg.UpdateTimeout > 300 {
		errs = append(errs, fmt.Sprintf("TELEGRAM_UPDATE_TIMEOUT must be between 1 and 300 seconds, got %d", cfg.TelegramCfg.UpdateTimeout))
	}

	if cfg.TelegramCfg.SendRetries < 1 || cfg.TelegramCfg.SendRetries > 10 {
		errs = append(errs, fmt.Sprintf("TELEGRAM_SEND_RETRIES must be between 1 and 10, got %d", cfg.TelegramCfg.SendRetries))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
