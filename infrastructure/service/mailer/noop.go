package mailer

import (
	"context"

	"github.com/shopcore/shopcore/infrastructure/service/logger"
)

// NoopMailer stands in when SMTP is unconfigured (development, tests). It
// logs instead of sending.
type NoopMailer struct {
	log logger.Logger
}

func NewNoopMailer(log logger.Logger) *NoopMailer {
	return &NoopMailer{log: log}
}

func (m *NoopMailer) Send(ctx context.Context, to, subject, _ string) error {
	m.log.Info(ctx, "mail suppressed (noop mailer)", map[string]interface{}{
		"to":      to,
		"subject": subject,
	})
	return nil
}
