package builder

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rverdelli/PlatformVA/internal/api"
	catalogapi "github.com/rverdelli/PlatformVA/internal/api/catalog"
	chatapi "github.com/rverdelli/PlatformVA/internal/api/chat"
	exportapi "github.com/rverdelli/PlatformVA/internal/api/export"
	settingsapi "github.com/rverdelli/PlatformVA/internal/api/settings"
	"github.com/rverdelli/PlatformVA/internal/config"
	"github.com/rverdelli/PlatformVA/internal/integration/generation"
	"github.com/rverdelli/PlatformVA/internal/pkg/formatter"
	"github.com/rverdelli/PlatformVA/internal/pkg/validator"
	"github.com/rverdelli/PlatformVA/internal/repository"
	"github.com/rverdelli/PlatformVA/internal/telegram"
	"github.com/rverdelli/PlatformVA/internal/usecase/conversation"
	"go.uber.org/zap"
)

// components holds the shared wiring used by both binaries.
type components struct {
	cfg            *config.Config
	logger         *zap.Logger
	settingsStore  *repository.SettingsFile
	catalogStore   *repository.CatalogFile
	conversationUC *conversation.Usecase
}

func buildComponents() (*components, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("api_shape", cfg.GenerationCfg.APIShape),
	)

	// Initialize stores
	settingsStore := repository.NewSettingsFile(cfg.SettingsPath, cfg.StoreCacheTTL)
	catalogStore := repository.NewCatalogFile(cfg.CatalogPath, cfg.StoreCacheTTL)
	logger.Info("Stores initialized",
		zap.String("settings_path", cfg.SettingsPath),
		zap.String("catalog_path", cfg.CatalogPath),
	)

	// Initialize generation connector (with mock support)
	var generator conversation.GenerationConnector
	if cfg.EnableMocks {
		logger.Info("Using mock generation connector")
		generator = generation.NewMockConnector(logger)
	} else {
		logger.Info("Using real generation connector",
			zap.String("base_url", cfg.GenerationCfg.Url),
		)
		generator = generation.NewConnector(cfg.GenerationCfg, logger)
	}

	// Initialize the conversation engine
	conversationUC := conversation.NewUsecase(generator, cfg.ChatCfg, logger)
	logger.Info("Conversation engine initialized",
		zap.Bool("gate_on_complete", cfg.ChatCfg.GateOnComplete),
	)

	return &components{
		cfg:            cfg,
		logger:         logger,
		settingsStore:  settingsStore,
		catalogStore:   catalogStore,
		conversationUC: conversationUC,
	}, nil
}

// Build assembles the HTTP API application.
func Build() (*App, error) {
	c, err := buildComponents()
	if err != nil {
		return nil, err
	}

	// Initialize validators
	reqValidator := validator.NewValidator(c.cfg.UploadCfg)

	// Setup API handlers
	settingsHandler := settingsapi.NewHandler(c.settingsStore, c.catalogStore)
	catalogHandler := catalogapi.NewHandler(c.catalogStore, reqValidator)
	chatHandler := chatapi.NewHandler(c.conversationUC, c.settingsStore, c.catalogStore, reqValidator)
	exportHandler := exportapi.NewHandler(formatter.NewFactory(), reqValidator)
	c.logger.Info("API handlers initialized")

	// Setup router
	router := api.SetupRouter(settingsHandler, catalogHandler, chatHandler, exportHandler, c.logger)
	c.logger.Info("HTTP router configured")

	server := &http.Server{
		Addr:         c.cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 180 * time.Second, // generation turns block the response
		IdleTimeout:  60 * time.Second,
	}

	c.logger.Info("Application built successfully",
		zap.String("environment", c.cfg.Environment),
	)

	return &App{
		server: server,
		logger: c.logger,
	}, nil
}

// BuildTelegramBot creates and initializes the Telegram bot shell.
func BuildTelegramBot() (*telegram.Bot, *zap.Logger, error) {
	c, err := buildComponents()
	if err != nil {
		return nil, nil, err
	}

	if c.cfg.TelegramCfg.BotToken == "" {
		return nil, nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is not set")
	}

	bot, err := telegram.New(&c.cfg.TelegramCfg, c.conversationUC, c.settingsStore, c.catalogStore, c.logger)
	if err != nil {
		return nil, nil, fmt.Errorf("initialize telegram bot: %w", err)
	}

	c.logger.Info("Telegram bot built successfully",
		zap.String("environment", c.cfg.Environment),
	)

	return bot, c.logger, nil
}
