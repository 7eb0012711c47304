package notify

import (
	"context"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/amitkumarsingh01/ACS-Cyber/internal/model"
)

// TelegramSink mirrors event notifications to a user's linked Telegram chat.
// Users without a linked chat are skipped.
type TelegramSink struct {
	api *tgbotapi.BotAPI
}

func NewTelegramSink(token string) (*TelegramSink, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	log.Printf("[info] telegram sink authorized on account %s", api.Self.UserName)

	return &TelegramSink{api: api}, nil
}

func (s *TelegramSink) Notify(ctx context.Context, user model.User, subject, body string) error {
	if user.TelegramChatID == 0 {
		return nil
	}

	msg := tgbotapi.NewMessage(user.TelegramChatID, subject+"\n\n"+body)
	if _, err := s.api.Send(msg); err != nil {
		return fmt.Errorf("%w: telegram chat %d: %v", ErrDelivery, user.TelegramChatID, err)
	}
	return nil
}
