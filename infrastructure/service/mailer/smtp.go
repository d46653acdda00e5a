package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/shopcore/shopcore/infrastructure/service/logger"
)

// SMTPMailer delivers notification mail over plain SMTP with AUTH PLAIN.
type SMTPMailer struct {
	host string
	port string
	user string
	pass string
	from string
	log  logger.Logger
}

func NewSMTPMailer(host, port, user, pass, from string, log logger.Logger) *SMTPMailer {
	return &SMTPMailer{host: host, port: port, user: user, pass: pass, from: from, log: log}
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	addr := fmt.Sprintf("%s:%s", m.host, m.port)
	auth := smtp.PlainAuth("", m.user, m.pass, m.host)

	msg := strings.Join([]string{
		"From: " + m.from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		body,
	}, "\r\n")

	if err := smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg)); err != nil {
		m.log.Error(ctx, "failed to send mail", err, map[string]interface{}{
			"to": to,
		})
		return fmt.Errorf("failed to send mail: %w", err)
	}

	m.log.Info(ctx, "mail dispatched", map[string]interface{}{
		"to":      to,
		"subject": subject,
	})
	return nil
}
