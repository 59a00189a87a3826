// Package telegram notifies the broadcast desk's Telegram chat about stored
// reports.
package telegram

import (
	"context"
	"fmt"
	"laporantdx/backend/internal/config"
	"laporantdx/backend/internal/localization"
	"laporantdx/backend/internal/logger"
	"laporantdx/backend/internal/models"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender is the part of the bot API the notifier needs.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Notifier struct {
	sender    Sender
	chatID    int64
	localizer *localization.Localizer
	lang      string
	log       *logger.Logger
}

// NewBotAPI authorizes the bot token.
func NewBotAPI(token string) (*tgbotapi.BotAPI, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram authorize: %w", err)
	}
	bot.Debug = false
	return bot, nil
}

func NewNotifier(sender Sender, chatID int64, localizer *localization.Localizer, log *logger.Logger) *Notifier {
	return &Notifier{
		sender:    sender,
		chatID:    chatID,
		localizer: localizer,
		lang:      localization.DefaultLanguage,
		log:       log.With("service", "TelegramNotifier", "chat_id", chatID),
	}
}

// NotifyReport posts a short summary of r to the desk chat. The bot API is
// not context aware, so ctx only bounds how long the caller waits.
func (n *Notifier) NotifyReport(ctx context.Context, r *models.Report) error {
	msg := tgbotapi.NewMessage(n.chatID, n.Text(r))
	msg.ParseMode = tgbotapi.ModeMarkdownV2

	done := make(chan error, 1)
	go func() {
		_, err := n.sender.Send(msg)
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("telegram send: %w", err)
		}
		n.log.Debug("desk notified", "report_id", r.ID)
		return nil
	case <-ctx.Done():
		return fmt.Errorf("telegram send: %w", ctx.Err())
	}
}

// Text renders the notification body as MarkdownV2.
func (n *Notifier) Text(r *models.Report) string {
	esc := func(s string) string { return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s) }
	line := func(key, value string) string {
		return "*" + esc(n.localizer.GetString(n.lang, key)) + ":* " + esc(value)
	}

	incidents := 0
	for _, inc := range r.Incidents {
		if !inc.Blank() {
			incidents++
		}
	}

	lines := []string{
		"✅ *" + esc(n.localizer.Format(n.lang, "notify_title", r.ID)) + "*",
		line("notify_date", time.Time(r.ReportDate).Format(config.DateLayout)),
		line("notify_officer_td", orDash(r.OfficerTD)),
		line("notify_outcome", r.Outcome),
		line("notify_incidents", fmt.Sprint(incidents)),
		line("notify_document", fmt.Sprintf("/download_pdf/%d", r.ID)),
	}
	return strings.Join(lines, "\n")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
