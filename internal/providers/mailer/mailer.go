// Package mailer sends the customer confirmation mail over SMTP.
package mailer

import (
	"context"
	"errors"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/brian-kiplagat/image-resizer/internal/domain"
)

// Mailer delivers order confirmation messages. The workflow treats delivery
// as best-effort; callers log failures instead of propagating them.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// New constructs an SMTP mailer. Host may be empty, in which case every send
// fails fast with a configuration error.
func New(host string, port int, user, password, from string) *Mailer {
	m := &Mailer{from: from}
	if host != "" {
		m.dialer = gomail.NewDialer(host, port, user, password)
	}
	return m
}

// SendOrderConfirmed emails the customer that the order is confirmed. gomail
// has no context support, so the dial runs in a goroutine and the call
// returns early when ctx expires.
func (m *Mailer) SendOrderConfirmed(ctx context.Context, to string, order *domain.Order) error {
	if m == nil || m.dialer == nil {
		return errors.New("mailer: smtp is not configured")
	}
	if to == "" {
		return errors.New("mailer: recipient address is empty")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("Your print order #%s is confirmed", order.Number))
	msg.SetBody("text/plain", fmt.Sprintf(
		"Hi %s,\n\nYour print order #%s has been confirmed and is on its way to production.\n\nShipping to: %s\n\nThank you for your order!\n",
		order.CustomerName, order.Number, order.ShippingAddress))

	done := make(chan error, 1)
	go func() { done <- m.dialer.DialAndSend(msg) }()
	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("mailer: send: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: mail send", domain.ErrTimeout)
	}
}

var _ domain.Mailer = (*Mailer)(nil)
