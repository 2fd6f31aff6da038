package notify

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"maintrack/internal/pkg/httpclient"
)

// HTTPMailer implements Dispatcher against an HTTP mail-delivery API.
type HTTPMailer struct {
	from   string
	client *httpclient.Client
}

func NewHTTPMailer(baseURL, apiKey, from string) *HTTPMailer {
	return &HTTPMailer{
		from: from,
		client: httpclient.New().
			WithTimeout(30 * time.Second).
			WithBaseURL(baseURL).
			WithBearerToken(apiKey),
	}
}

func (m *HTTPMailer) Send(ctx context.Context, msg Message) error {
	attachments := make([]map[string]string, 0, len(msg.Attachments))
	for _, a := range msg.Attachments {
		attachments = append(attachments, map[string]string{
			"filename":     a.Filename,
			"content_type": a.ContentType,
			"content":      base64.StdEncoding.EncodeToString(a.Data),
		})
	}

	body := map[string]interface{}{
		"from":        m.from,
		"to":          msg.To,
		"subject":     msg.Subject,
		"html":        msg.HTMLBody,
		"attachments": attachments,
	}

	if _, err := m.client.Post("/messages", body); err != nil {
		return fmt.Errorf("send notification to %s: %w", msg.To, err)
	}
	return nil
}
