package usecase

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"portfolio-backend/config"
	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/email"
	"portfolio-backend/pkg/security"
	"portfolio-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type contactUsecase struct {
	mail      config.MailConfig
	transport email.Transport
	validate  *validator.Validate
	audit     *security.AuditLogger
}

// NewContactUsecase creates a new contact usecase.
// mail is copied; later changes to the caller's config have no effect.
func NewContactUsecase(mail config.MailConfig, transport email.Transport, validate *validator.Validate, audit *security.AuditLogger) domain.ContactUsecase {
	if validate == nil {
		validate = validation.New()
	}
	if audit == nil {
		audit = security.NopAuditLogger()
	}
	return &contactUsecase{
		mail:      mail,
		transport: transport,
		validate:  validate,
		audit:     audit,
	}
}

// ValidateContact checks the request and returns the trimmed submission.
// Blank fields are reported before an over-long message.
func ValidateContact(validate *validator.Validate, req *domain.ContactRequest) (*domain.ContactSubmission, error) {
	if req == nil {
		return nil, domain.ErrMissingFields
	}
	if err := validate.Struct(req); err != nil {
		return nil, validation.Classify(err)
	}

	return &domain.ContactSubmission{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Message: strings.TrimSpace(req.Message),
	}, nil
}

// SendContactMessage validates the request, sends the confirmation and, when enabled, the owner copy
func (uc *contactUsecase) SendContactMessage(ctx context.Context, req *domain.ContactRequest) (*domain.ContactResult, error) {
	submission, err := ValidateContact(uc.validate, req)
	if err != nil {
		uc.logRejected(ctx, req, err)
		return nil, err
	}

	// Credentials are checked before any network call
	if !uc.mail.IsConfigured() {
		uc.log(ctx, security.EventContactConfigError, submission, nil)
		return nil, domain.ErrNotConfigured
	}

	// A client disconnect must not abort a send that is already in flight
	sendCtx := context.WithoutCancel(ctx)

	if uc.mail.VerifyOnSend {
		if verifier, ok := uc.transport.(email.Verifier); ok {
			if err := verifier.Verify(sendCtx); err != nil {
				uc.log(ctx, security.EventContactTransportUnavailable, submission, map[string]interface{}{"error": err.Error()})
				return nil, fmt.Errorf("%w: %v", domain.ErrTransportUnavailable, err)
			}
		}
	}

	sender := email.Sender{Name: uc.mail.FromName, Account: uc.mail.Account}
	data := email.ContactEmailData{
		SenderName:  submission.Name,
		SenderEmail: submission.Email,
		Message:     submission.Message,
		OwnerName:   uc.mail.FromName,
	}

	confirmation, err := email.BuildConfirmation(sender, data)
	if err != nil {
		return nil, uc.dispatchFailed(ctx, submission, "sender", err)
	}
	id, err := uc.transport.Send(sendCtx, confirmation)
	if err != nil {
		return nil, uc.dispatchFailed(ctx, submission, "sender", err)
	}

	if uc.mail.SendOwnerCopy {
		ownerCopy, err := email.BuildOwnerCopy(sender, data)
		if err != nil {
			return nil, uc.dispatchFailed(ctx, submission, "owner", err)
		}
		if _, err := uc.transport.Send(sendCtx, ownerCopy); err != nil {
			return nil, uc.dispatchFailed(ctx, submission, "owner", err)
		}
	}

	uc.log(ctx, security.EventContactDispatched, submission, map[string]interface{}{
		"message_id": id,
		"owner_copy": uc.mail.SendOwnerCopy,
	})

	return &domain.ContactResult{ID: id}, nil
}

func (uc *contactUsecase) dispatchFailed(ctx context.Context, submission *domain.ContactSubmission, recipient string, err error) error {
	uc.log(ctx, security.EventContactDispatchFailed, submission, map[string]interface{}{
		"recipient": recipient,
		"error":     err.Error(),
	})
	return &domain.DispatchError{Recipient: recipient, Err: err}
}

func (uc *contactUsecase) logRejected(ctx context.Context, req *domain.ContactRequest, err error) {
	details := map[string]interface{}{"reason": err.Error()}
	event := security.AuditEvent{Event: security.EventContactRejected}
	if req != nil {
		details["message_length"] = utf8.RuneCountInString(req.Message)
		if e := strings.TrimSpace(req.Email); e != "" {
			event.SubjectType = "email"
			event.SubjectValue = security.MaskEmail(e)
		}
	}
	event.Details = details
	uc.emit(ctx, event)
}

func (uc *contactUsecase) log(ctx context.Context, eventType security.EventType, submission *domain.ContactSubmission, details map[string]interface{}) {
	if details == nil {
		details = map[string]interface{}{}
	}
	details["transport"] = uc.transportName()
	details["name_hash"] = security.HashValue(submission.Name)
	details["message_length"] = utf8.RuneCountInString(submission.Message)

	uc.emit(ctx, security.AuditEvent{
		Event:        eventType,
		SubjectType:  "email",
		SubjectValue: security.MaskEmail(submission.Email),
		Details:      details,
	})
}

func (uc *contactUsecase) emit(ctx context.Context, event security.AuditEvent) {
	event.RequestID, _ = ctx.Value(domain.KeyRequestID).(string)
	event.IP, _ = ctx.Value(domain.KeyClientIP).(string)
	uc.audit.Log(ctx, event)
}

func (uc *contactUsecase) transportName() string {
	if uc.transport == nil {
		return ""
	}
	return uc.transport.Name()
}

