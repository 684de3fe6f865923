package email

import (
	"context"
	"fmt"
	"net/url"

	"portfolio-backend/config"

	"github.com/resend/resend-go/v2"
)

// ResendTransport sends mail through the Resend HTTP API
type ResendTransport struct {
	client *resend.Client
}

// ResendOption customizes the underlying Resend client
type ResendOption func(*resend.Client)

// WithBaseURL points the client at a different API endpoint
func WithBaseURL(rawURL string) ResendOption {
	return func(c *resend.Client) {
		if u, err := url.Parse(rawURL); err == nil {
			c.BaseURL = u
		}
	}
}

// NewResendTransport creates a Resend transport authenticated with apiKey
func NewResendTransport(apiKey string, opts ...ResendOption) *ResendTransport {
	client := resend.NewClient(apiKey)
	for _, opt := range opts {
		opt(client)
	}
	return &ResendTransport{client: client}
}

func (t *ResendTransport) Name() string {
	return config.TransportResend
}

// Send posts msg to the Resend API and returns the email ID Resend assigned
func (t *ResendTransport) Send(ctx context.Context, msg Message) (string, error) {
	params := &resend.SendEmailRequest{
		From:    msg.From.String(),
		To:      msg.To,
		ReplyTo: msg.ReplyTo,
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
	}

	sent, err := t.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return "", fmt.Errorf("failed to send email via resend: %w", err)
	}
	if sent == nil || sent.Id == "" {
		return "", fmt.Errorf("resend returned no email id")
	}

	return sent.Id, nil
}
