// Package alert pushes best-effort operational alerts to administrators.
package alert

import (
	"fmt"

	"github.com/go-resty/resty/v2"
)

// Notifier delivers an operational alert. Failures are for the caller to log
// and ignore; alerting never blocks the workflow that raised it.
type Notifier interface {
	Alert(text string) error
}

// TelegramNotifier sends alerts to an admin chat via the Telegram Bot API.
type TelegramNotifier struct {
	chatID string
	client *resty.Client
}

func NewTelegramNotifier(token, chatID string) *TelegramNotifier {
	return &TelegramNotifier{
		chatID: chatID,
		client: resty.New().SetBaseURL("https://api.telegram.org/bot" + token),
	}
}

func (t *TelegramNotifier) Alert(text string) error {
	resp, err := t.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"chat_id":    t.chatID,
			"text":       text,
			"parse_mode": "HTML",
		}).
		Post("/sendMessage")
	if err != nil {
		return fmt.Errorf("telegram alert failed: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("telegram alert failed: status %d", resp.StatusCode())
	}
	return nil
}

// NopNotifier discards alerts. Used when no alert channel is configured.
type NopNotifier struct{}

func (NopNotifier) Alert(string) error { return nil }
