package domain

import (
	"context"
	"errors"
)

// MaxMessageLength is the inclusive upper bound on message length, in characters.
const MaxMessageLength = 1000

// ContactRequest represents a contact form submission as it arrives on the wire
type ContactRequest struct {
	Name    string `json:"name" validate:"notblank"`
	Email   string `json:"email" validate:"notblank"`
	Message string `json:"message" validate:"notblank,max=1000"`
}

// ContactSubmission is a validated request. It lives for one request and is never stored.
type ContactSubmission struct {
	Name    string
	Email   string
	Message string
}

// ContactResult is returned after the confirmation message was accepted by the transport
type ContactResult struct {
	ID string `json:"id"`
}

var (
	ErrMissingFields        = errors.New("missing required fields")
	ErrMessageTooLong       = errors.New("message too long")
	ErrNotConfigured        = errors.New("mail transport credentials are not configured")
	ErrTransportUnavailable = errors.New("mail transport unavailable")
)

// DispatchError carries the transport failure for a message that could not be sent.
type DispatchError struct {
	Recipient string // "sender" or "owner"
	Err       error
}

func (e *DispatchError) Error() string {
	return "dispatch to " + e.Recipient + " failed: " + e.Err.Error()
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}

// ContactUsecase defines the interface for contact form operations
type ContactUsecase interface {
	// SendContactMessage validates the request and sends the confirmation (and optional owner copy)
	SendContactMessage(ctx context.Context, req *ContactRequest) (*ContactResult, error)
}

// HealthUsecase reports liveness of the service
type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}
