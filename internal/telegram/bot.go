package telegram

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rverdelli/PlatformVA/internal/config"
	"github.com/rverdelli/PlatformVA/internal/entity"
	"github.com/rverdelli/PlatformVA/internal/pkg/logger"
	"go.uber.org/zap"
)

const (
	greetingMessage = "Hi! Describe the system you need and I will walk you through clarification, functional design and a block proposal."
	resetMessage    = "Conversation reset. Describe the system you need."
	noKeyMessage    = "The assistant is not configured yet: ask the administrator to save an API key in Settings."
	rateMessage     = "Too many messages, please slow down."
	failureMessage  = "Something went wrong while contacting the generation backend. Your message was recorded; please try again."
)

// Bot is the interactive presentation shell: it holds per-chat conversation
// state and relays turns to the conversation engine.
type Bot struct {
	api          *tgbotapi.BotAPI
	cfg          *config.TelegramConfig
	sessions     *sessionStore
	rates        *gocache.Cache
	conversation ConversationUsecase
	settings     SettingsStore
	catalog      CatalogStore
	logger       *zap.Logger
	stopChan     chan struct{}
	wg           sync.WaitGroup
}

// New creates a new Telegram bot shell
func New(
	cfg *config.TelegramConfig,
	conversation ConversationUsecase,
	settings SettingsStore,
	catalog CatalogStore,
	logger *zap.Logger,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create bot API: %w", err)
	}

	api.Debug = false

	logger.Info("telegram bot authorized",
		zap.String("username", api.Self.UserName),
		zap.Int64("id", api.Self.ID),
	)

	return &Bot{
		api:          api,
		cfg:          cfg,
		sessions:     newSessionStore(cfg.SessionTTL),
		rates:        gocache.New(time.Minute, 2*time.Minute),
		conversation: conversation,
		settings:     settings,
		catalog:      catalog,
		logger:       logger,
		stopChan:     make(chan struct{}),
	}, nil
}

// Start runs the long-polling update loop until the context is cancelled or
// Stop is called.
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("starting telegram bot")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.UpdateTimeout

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-b.stopChan:
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil || update.Message.Text == "" {
				continue
			}

			b.wg.Add(1)
			go func(msg *tgbotapi.Message) {
				defer b.wg.Done()
				b.handleMessage(ctx, msg)
			}(update.Message)
		}
	}
}

// Stop stops the update loop and waits for in-flight turns to finish.
func (b *Bot) Stop() error {
	close(b.stopChan)
	b.api.StopReceivingUpdates()
	b.wg.Wait()
	return nil
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	ctx = ctxzap.ToContext(ctx, b.logger)
	ctx = logger.AddFields(ctx, zap.Int64("chat_id", chatID))

	defer func() {
		if r := recover(); r != nil {
			ctxzap.Error(ctx, "panic while handling telegram message", zap.Any("panic", r))
		}
	}()

	if !b.allowMessage(chatID) {
		b.send(ctx, chatID, rateMessage)
		return
	}

	switch msg.Command() {
	case "start":
		b.sessions.reset(chatID)
		b.send(ctx, chatID, greetingMessage)
		return
	case "reset":
		b.sessions.reset(chatID)
		b.send(ctx, chatID, resetMessage)
		return
	}

	b.handleTurn(ctx, chatID, msg.Text)
}

// handleTurn runs one conversation turn. Turns within a chat are serialized
// by the per-chat mutex; turns for different chats run concurrently.
func (b *Bot) handleTurn(ctx context.Context, chatID int64, text string) {
	lock := b.sessions.lock(chatID)
	lock.Lock()
	defer lock.Unlock()

	settings := b.settings.Load(ctx)
	if settings.APIKey == "" {
		b.send(ctx, chatID, noKeyMessage)
		return
	}

	session := b.sessions.get(chatID)
	ctx = logger.AddFields(ctx,
		zap.String("session_id", session.ID),
		zap.String("phase", string(session.State.Phase)),
	)

	result, err := b.conversation.Advance(ctx, &entity.AdvanceRequest{
		Credential:      settings.APIKey,
		UserInput:       text,
		TechnicalChecks: settings.TechnicalChecks,
		Catalog:         b.catalog.Load(ctx),
		State:           session.State,
	})

	// A failed turn still consumed the message into history.
	if result != nil {
		session.State = result.State
		b.sessions.put(chatID, session)
	}

	if err != nil {
		ctxzap.Error(ctx, "conversation turn failed", zap.Error(err))
		b.send(ctx, chatID, failureMessage)
		return
	}

	for _, message := range result.Messages {
		b.send(ctx, chatID, message)
	}
}

// allowMessage enforces a per-chat messages-per-minute cap.
func (b *Bot) allowMessage(chatID int64) bool {
	key := strconv.FormatInt(chatID, 10)

	if err := b.rates.Add(key, int64(1), gocache.DefaultExpiration); err == nil {
		return true
	}

	count, err := b.rates.IncrementInt64(key, 1)
	if err != nil {
		return true
	}

	return count <= int64(b.cfg.RateLimitPerMinute)
}
