package v1

import (
	"errors"
	"net/http"

	"portfolio-backend/internal/delivery/http/response"
	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// maxContactBodyBytes caps the request body before it is decoded
const maxContactBodyBytes = 1 << 20

const (
	msgMissingFields = "Missing required fields."
	msgTooLong       = "Message too long."
	msgConfigError   = "Server configuration error."
	msgSendFailed    = "Failed to send email."
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
}

// NewContactHandler registers the contact routes (public, no auth required)
func NewContactHandler(public *gin.RouterGroup, contactUC domain.ContactUsecase) {
	handler := &ContactHandler{
		contactUC: contactUC,
	}

	public.POST("/contact", handler.SubmitContact)
}

// SubmitContact godoc
// @Summary      Submit Contact Form
// @Description  Validates the submission, emails a confirmation to the sender and optionally a copy to the site owner.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        contact  body      domain.ContactRequest  true  "Contact Form Data"
// @Success      200      {object}  response.ContactResponse
// @Failure      400      {object}  response.ErrorResponse
// @Failure      500      {object}  response.ErrorResponse
// @Router       /contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxContactBodyBytes)

	var req domain.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.Error(apperror.Validation(msgTooLong, err))
			return
		}
		// An unreadable body is treated like an empty one
		c.Error(apperror.Validation(msgMissingFields, err))
		return
	}

	result, err := h.contactUC.SendContactMessage(c.Request.Context(), &req)
	if err != nil {
		c.Error(contactError(err))
		return
	}

	response.Success(c, http.StatusOK, response.ContactResponse{Success: true, ID: result.ID})
}

// contactError maps domain failures to the client-facing error
func contactError(err error) *apperror.AppError {
	switch {
	case errors.Is(err, domain.ErrMissingFields):
		return apperror.Validation(msgMissingFields, err)
	case errors.Is(err, domain.ErrMessageTooLong):
		return apperror.Validation(msgTooLong, err)
	case errors.Is(err, domain.ErrNotConfigured):
		return apperror.Configuration(msgConfigError, err)
	default:
		// ErrTransportUnavailable, *DispatchError and anything unexpected
		return apperror.Dispatch(msgSendFailed, err)
	}
}
