// ============================================================================
// internal/mailer/mailer.go
// Outbound email delivery for the password reset flow
// ============================================================================

package mailer

import (
	"context"

	"go.uber.org/zap"

	"attendance-monitor/internal/shared"
)

// Sender delivers account emails. Implementations must be safe for
// concurrent use.
type Sender interface {
	SendPasswordReset(ctx context.Context, to, resetURL string) error
}

// NewSender picks a delivery backend from configuration: SendGrid when an
// API key is configured, otherwise a console logger for local development.
func NewSender(cfg shared.EmailConfig, logger *zap.Logger) Sender {
	if cfg.SendgridAPIKey == "" {
		logger.Warn("no sendgrid api key configured, password reset emails will be logged instead of sent")
		return &ConsoleSender{logger: logger.Named("mailer")}
	}
	return NewSendgridSender(cfg, logger)
}

// ConsoleSender writes reset links to the log. Development only.
type ConsoleSender struct {
	logger *zap.Logger
}

func (c *ConsoleSender) SendPasswordReset(_ context.Context, to, resetURL string) error {
	c.logger.Info("password reset requested",
		zap.String("to", to),
		zap.String("reset_url", resetURL))
	return nil
}
