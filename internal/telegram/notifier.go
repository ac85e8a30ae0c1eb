// Package telegram pushes moderation alerts to a Telegram chat watched by
// the student-support team.
package telegram

import (
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"studyzen/backend/internal/models"
)

// Notifier sends report alerts to a single admin chat.
type Notifier struct {
	bot       *tgbotapi.BotAPI
	adminChat int64
}

// NewNotifier authorises the bot and returns a notifier bound to adminChat.
func NewNotifier(token string, adminChat int64) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to authorise telegram bot: %w", err)
	}
	log.Printf("telegram alerts enabled, bot %s", bot.Self.UserName)
	return &Notifier{bot: bot, adminChat: adminChat}, nil
}

// ReportFiled pushes a summary of a new partner report to the admin chat.
// Delivery is best-effort; a failed alert is logged and dropped.
func (n *Notifier) ReportFiled(r *models.Report) {
	text := fmt.Sprintf(
		"New partner report (severity %d, %s)\nRoom: %s\nReported: %s\nReasons: %s",
		r.Severity, r.Status, r.RoomID, r.ReportedID, strings.Join(r.Reasons, ", "),
	)
	msg := tgbotapi.NewMessage(n.adminChat, text)
	if _, err := n.bot.Send(msg); err != nil {
		log.Printf("failed to send report alert: %v", err)
	}
}
