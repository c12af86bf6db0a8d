// Package mail relays contact submissions to the outbound email
// provider. Nothing here is persisted; a failed send is reported to
// the caller and the user retries.
package mail

import (
	"context"
	"errors"
	"fmt"

	"github.com/mailgun/mailgun-go/v4"
)

// ErrNotConfigured reports that the transport credentials are absent.
// It behaves as a permanent rejection.
var ErrNotConfigured = errors.New("mail transport not configured")

// Message is one outbound email.
type Message struct {
	To      string
	From    string
	Subject string
	Text    string
	HTML    string
}

// Sender is the outbound transport. A send either gets an immediate
// accept (nil) or reject (error); there is no delivery confirmation
// beyond that.
type Sender interface {
	Send(ctx context.Context, m Message) error
}

// MailgunSender delivers through the Mailgun messages API.
type MailgunSender struct {
	mg mailgun.Mailgun
}

var _ Sender = (*MailgunSender)(nil)

func NewMailgunSender(domain, apiKey string) *MailgunSender {
	return &MailgunSender{mg: mailgun.NewMailgun(domain, apiKey)}
}

func (s *MailgunSender) Send(ctx context.Context, m Message) error {
	msg := s.mg.NewMessage(m.From, m.Subject, m.Text, m.To)
	if m.HTML != "" {
		msg.SetHtml(m.HTML)
	}

	if _, _, err := s.mg.Send(ctx, msg); err != nil {
		return fmt.Errorf("mailgun send to %s: %w", m.To, err)
	}

	return nil
}

// DisabledSender rejects every send. It stands in for Mailgun when
// MAILGUN_API_KEY or MAILGUN_DOMAIN is unset.
type DisabledSender struct{}

var _ Sender = DisabledSender{}

func (DisabledSender) Send(context.Context, Message) error {
	return ErrNotConfigured
}

// SenderFor picks the transport for the given credentials.
func SenderFor(domain, apiKey string) Sender {
	if domain == "" || apiKey == "" {
		return DisabledSender{}
	}

	return NewMailgunSender(domain, apiKey)
}
