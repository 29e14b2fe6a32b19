package mailer

import (
	"context"

	"go.uber.org/zap"
)

// Attachment is an optional file carried with a message.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Message is a single outbound email.
type Message struct {
	To          string
	Subject     string
	HTML        string
	Text        string
	Attachments []Attachment
}

// Mailer delivers messages through some out-of-band channel. Failures
// propagate as errors the caller must handle.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// LogMailer is used when no SMTP host is configured. It records that a
// message would have been sent without the body, so secrets embedded in
// reset links never reach the logs.
type LogMailer struct {
	logger *zap.Logger
}

// NewLogMailer builds the fallback mailer.
func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Send logs the message envelope.
func (m *LogMailer) Send(_ context.Context, msg Message) error {
	m.logger.Info("mail delivery skipped (no SMTP configured)",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject))
	return nil
}
