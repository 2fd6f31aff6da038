package notify

import "context"

// Attachment is a rendered document attached to a message.
type Attachment struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"data"`
}

// Message is an email-like notification.
type Message struct {
	To          string       `json:"to"`
	Subject     string       `json:"subject"`
	HTMLBody    string       `json:"html_body"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Dispatcher delivers notifications. The execution engine treats delivery
// failure as non-fatal: the cycle still succeeds, only the emailSent flag
// stays false.
type Dispatcher interface {
	Send(ctx context.Context, msg Message) error
}
