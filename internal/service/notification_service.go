package service

import (
	"context"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"github.com/spec-kit/bizops-service/internal/config"
	"github.com/spec-kit/bizops-service/internal/events"
	"github.com/spec-kit/bizops-service/internal/mailer"
)

// NotificationService listens for domain events and fans out to the mail
// collaborator. It runs on the publishing request's context; a delivery
// failure is logged but never surfaced to the client, which keeps the
// forgot-password acknowledgment generic either way.
type NotificationService struct {
	dispatcher events.Dispatcher
	mail       mailer.Mailer
	logger     *zap.Logger
	cfg        config.MailConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, mail mailer.Mailer, logger *zap.Logger, cfg config.MailConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		mail:       mail,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventPasswordResetRequested, n.handlePasswordResetRequested)
	n.dispatcher.Subscribe(events.EventWorkerCreated, n.handleWorkerCreated)
	n.dispatcher.Subscribe(events.EventShiftClosed, n.handleShiftClosed)
	n.dispatcher.Subscribe(events.EventTransactionRecorded, n.handleTransactionRecorded)
}

func (n *NotificationService) handlePasswordResetRequested(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.PasswordResetRequestedPayload)
	if !ok {
		return nil
	}

	appLink := resetLink(n.cfg.ResetLinkBase, payload.RawToken)
	webLink := resetLink(n.cfg.ResetWebBase, payload.RawToken)

	msg := mailer.Message{
		To:      payload.Email,
		Subject: "Reset your password",
		HTML:    resetEmailHTML(payload.Name, appLink, webLink),
		Text: fmt.Sprintf(
			"Hi %s,\n\nTap the link below to reset your password. It expires in 30 minutes.\n\n%s\n\nIf the app link does not open, use:\n%s\n\nIf you did not request this, you can ignore this email.\n",
			payload.Name, appLink, webLink),
	}

	if err := n.mail.Send(ctx, msg); err != nil {
		n.logger.Error("reset email delivery failed",
			zap.String("account_id", payload.AccountID),
			zap.String("account_type", string(payload.AccountType)),
			zap.Error(err))
	}
	return nil
}

func (n *NotificationService) handleWorkerCreated(_ context.Context, event events.Event) error {
	n.logger.Info("WorkerCreated", zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleShiftClosed(_ context.Context, event events.Event) error {
	n.logger.Info("ShiftClosed", zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleTransactionRecorded(_ context.Context, event events.Event) error {
	n.logger.Info("TransactionRecorded", zap.Any("payload", event.Payload))
	return nil
}

// resetLink appends the raw secret as a query parameter to the delivery base.
func resetLink(base, rawToken string) string {
	values := url.Values{}
	values.Set("token", rawToken)
	return base + "?" + values.Encode()
}

func resetEmailHTML(name, appLink, webLink string) string {
	return fmt.Sprintf(`<p>Hi %s,</p>
<p>Tap the button below to reset your password. The link expires in 30 minutes.</p>
<p><a href=%q>Reset password</a></p>
<p>If the app link does not open, use this one instead:<br><a href=%q>%s</a></p>
<p>If you did not request this, you can ignore this email.</p>`,
		name, appLink, webLink, webLink)
}
