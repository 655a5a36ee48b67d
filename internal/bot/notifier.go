// Package bot delivers reminders as Telegram messages.
package bot

import (
	"context"
	"html"
	"log/slog"

	"todo_reminder/internal/reminder"
	"todo_reminder/internal/view"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// sender is the part of *tgbotapi.BotAPI the notifier uses.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier sends each reminder to a single chat.
type TelegramNotifier struct {
	bot    sender
	chatID int64
	log    *slog.Logger
}

// NewTelegramNotifier authorizes the bot token against the Telegram API.
func NewTelegramNotifier(token string, chatID int64, log *slog.Logger) (*TelegramNotifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	log = log.With("component", "telegram_notifier")
	log.Info("telegram bot authorized", "username", api.Self.UserName)
	return newTelegramNotifier(api, chatID, log), nil
}

func newTelegramNotifier(s sender, chatID int64, log *slog.Logger) *TelegramNotifier {
	return &TelegramNotifier{bot: s, chatID: chatID, log: log}
}

func (n *TelegramNotifier) Notify(_ context.Context, r reminder.Reminder) error {
	msg := tgbotapi.NewMessage(n.chatID, formatMessage(r))
	msg.ParseMode = tgbotapi.ModeHTML

	if _, err := n.bot.Send(msg); err != nil {
		n.log.Error("error sending reminder", "id", r.Task.ID, "error", err)
		return err
	}
	return nil
}

func formatMessage(r reminder.Reminder) string {
	return "<b>🔔 Reminder!</b>\n" + html.EscapeString(r.Task.Text) + "\n\n" + view.FormatSchedule(r.Due)
}
