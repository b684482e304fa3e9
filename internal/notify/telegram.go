package notify

import (
	"fmt"
	"html"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"task-reminder/internal/model"
)

// TelegramNotifier pushes escalation messages to a Telegram chat. Enabled
// only when a token and chat id are configured.
type TelegramNotifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegram(token string, chatID int64) (*TelegramNotifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}
	log.Printf("[info] telegram notifier authorized on account %s", api.Self.UserName)
	return &TelegramNotifier{api: api, chatID: chatID}, nil
}

// TaskEscalated sends a short summary of the task that just flipped into
// the attention-needed status.
func (n *TelegramNotifier) TaskEscalated(task model.Task) error {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("⚠️ <b>%s</b> needs taking care\n", escape(task.Name)))
	b.WriteString(fmt.Sprintf("No progress for %d hours.\n", task.ReminderInterval))
	if task.JiraID != "" {
		b.WriteString(fmt.Sprintf("• Ticket: %s\n", escape(task.JiraID)))
	}
	if task.URL != "" {
		b.WriteString(fmt.Sprintf("• %s\n", escape(task.URL)))
	}

	msg := tgbotapi.NewMessage(n.chatID, strings.TrimSpace(b.String()))
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("send escalation: %w", err)
	}
	return nil
}

func escape(s string) string {
	return html.EscapeString(s)
}
