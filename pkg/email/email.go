// Package email builds contact-form messages and delivers them through a mail transport.
//
// Two transports are available: an SMTP relay (net/smtp) and the Resend HTTP API.
package email

import (
	"context"
	"net/mail"

	"portfolio-backend/config"
)

// Message is a fully rendered email ready for a transport.
type Message struct {
	From    mail.Address
	To      []string
	ReplyTo string
	Subject string
	Text    string
	HTML    string
}

// Transport delivers a message and returns the identifier the transport assigned to it.
type Transport interface {
	Name() string
	Send(ctx context.Context, msg Message) (string, error)
}

// Verifier is implemented by transports that can check connectivity and credentials without sending.
type Verifier interface {
	Verify(ctx context.Context) error
}

// NewTransport builds the transport selected by cfg.Transport
func NewTransport(cfg config.MailConfig) Transport {
	if cfg.Transport == config.TransportResend {
		return NewResendTransport(cfg.ResendAPIKey)
	}
	return NewSMTPTransport(cfg)
}
