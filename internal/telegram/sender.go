package telegram

import (
	"context"

	"github.com/avast/retry-go/v4"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// telegramMessageLimit is the hard cap Telegram enforces per message.
const telegramMessageLimit = 4096

// send delivers text to a chat, splitting messages over the Telegram limit
// and retrying transient delivery failures.
func (b *Bot) send(ctx context.Context, chatID int64, text string) {
	for _, chunk := range splitMessage(text, telegramMessageLimit) {
		msg := tgbotapi.NewMessage(chatID, chunk)

		err := retry.Do(
			func() error {
				_, sendErr := b.api.Send(msg)
				return sendErr
			},
			retry.Context(ctx),
			retry.Attempts(b.cfg.SendRetries),
			retry.Delay(b.cfg.SendRetryDelay),
			retry.LastErrorOnly(true),
		)
		if err != nil {
			ctxzap.Error(ctx, "failed to send telegram message",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			return
		}
	}
}

// splitMessage cuts text into chunks of at most limit runes, preferring line
// boundaries.
func splitMessage(text string, limit int) []string {
	runes := []rune(text)
	if len(runes) <= limit {
		return []string{text}
	}

	var chunks []string
	for len(runes) > limit {
		cut := limit
		for i := limit; i > limit/2; i-- {
			if runes[i-1] == '\n' {
				cut = i
				break
			}
		}
		chunks = append(chunks, string(runes[:cut]))
		runes = runes[cut:]
	}

	if len(runes) > 0 {
		chunks = append(chunks, string(runes))
	}

	return chunks
}
