package mailer

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"attendance-monitor/internal/shared"
)

// SendgridSender delivers email through the SendGrid v3 API.
type SendgridSender struct {
	client   *sendgrid.Client
	from     *sgmail.Email
	fromName string
	logger   *zap.Logger
}

// NewSendgridSender creates a SendGrid-backed Sender.
func NewSendgridSender(cfg shared.EmailConfig, logger *zap.Logger) *SendgridSender {
	return &SendgridSender{
		client: sendgrid.NewSendClient(cfg.SendgridAPIKey),
		from:   sgmail.NewEmail(cfg.FromName, cfg.FromEmail),
		logger: logger.Named("mailer"),
	}
}

func (s *SendgridSender) SendPasswordReset(ctx context.Context, to, resetURL string) error {
	subject := "Password Reset Request"
	plain := fmt.Sprintf(
		"We received a request to reset your password.\n\n"+
			"Open the link below to choose a new one. The link expires in one hour.\n\n%s\n\n"+
			"If you did not request this, you can ignore this email.", resetURL)
	html := fmt.Sprintf(
		`<p>We received a request to reset your password.</p>`+
			`<p><a href="%s">Reset your password</a> (the link expires in one hour).</p>`+
			`<p>If you did not request this, you can ignore this email.</p>`, resetURL)

	message := sgmail.NewSingleEmail(s.from, subject, sgmail.NewEmail("", to), plain, html)
	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sending password reset email: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid rejected password reset email: status %d", resp.StatusCode)
	}

	s.logger.Info("password reset email sent", zap.String("to", to))
	return nil
}
