package outbound

import "context"

// Mailer is the notification sink for password-reset links.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
