package mailer

import (
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"net/smtp"
	"strings"

	"github.com/spec-kit/bizops-service/internal/config"
)

// SMTPMailer sends messages through a plain SMTP relay.
type SMTPMailer struct {
	addr string
	auth smtp.Auth
	from string
}

// NewSMTPMailer builds a mailer from config. The caller is expected to have
// checked that SMTPHost is set.
func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	var auth smtp.Auth
	if cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPHost)
	}
	return &SMTPMailer{
		addr: cfg.SMTPHost + ":" + cfg.SMTPPort,
		auth: auth,
		from: cfg.From,
	}
}

// Send delivers the message. Attachments are ignored for now; nothing in the
// service sends any yet.
func (m *SMTPMailer) Send(_ context.Context, msg Message) error {
	if msg.To == "" {
		return fmt.Errorf("mail: empty recipient")
	}
	body := buildMIME(m.from, msg)
	return smtp.SendMail(m.addr, m.auth, m.from, []string{msg.To}, body)
}

func buildMIME(from string, msg Message) []byte {
	var b strings.Builder
	boundary := "bizops-alt-boundary"

	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	b.WriteString("MIME-Version: 1.0\r\n")

	if msg.Text != "" && msg.HTML != "" {
		fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary)
		writePart(&b, boundary, "text/plain", msg.Text)
		writePart(&b, boundary, "text/html", msg.HTML)
		fmt.Fprintf(&b, "--%s--\r\n", boundary)
		return []byte(b.String())
	}

	contentType := "text/html"
	content := msg.HTML
	if content == "" {
		contentType = "text/plain"
		content = msg.Text
	}
	fmt.Fprintf(&b, "Content-Type: %s; charset=utf-8\r\n", contentType)
	b.WriteString("Content-Transfer-Encoding: base64\r\n\r\n")
	b.WriteString(base64.StdEncoding.EncodeToString([]byte(content)))
	b.WriteString("\r\n")
	return []byte(b.String())
}

func writePart(b *strings.Builder, boundary, contentType, content string) {
	fmt.Fprintf(b, "--%s\r\n", boundary)
	fmt.Fprintf(b, "Content-Type: %s; charset=utf-8\r\n", contentType)
	b.WriteString("Content-Transfer-Encoding: base64\r\n\r\n")
	b.WriteString(base64.StdEncoding.EncodeToString([]byte(content)))
	b.WriteString("\r\n")
}
