// Package mailer delivers recovery emails over SMTP.
package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"
)

// Mailer dispatches a plain-text message to a single recipient.
// Delivery is synchronous; the context bounds how long a send may take.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Config holds the SMTP connection settings. Username doubles as the
// sender address when From is empty, matching the original deployment.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Timeout  time.Duration
}

// SMTPMailer sends mail through a single authenticated SMTP account.
type SMTPMailer struct {
	client *mail.Client
	from   string
}

var _ Mailer = (*SMTPMailer)(nil)

// NewSMTP builds a mailer from cfg. The connection is dialed per send,
// not here, so a misconfigured relay surfaces as a delivery failure on
// the request that needs it rather than at startup.
func NewSMTP(cfg Config) (*SMTPMailer, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
		mail.WithTimeout(timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("configure smtp client: %w", err)
	}
	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	return &SMTPMailer{client: client, from: from}, nil
}

// Send delivers one message, honoring ctx for the whole dial-and-send.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("set sender %q: %w", m.from, err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("set recipient %q: %w", to, err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail to %q: %w", to, err)
	}
	return nil
}
