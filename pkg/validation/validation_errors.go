package validation

import (
	"errors"

	"portfolio-backend/internal/domain"

	"github.com/go-playground/validator/v10"
)

// Classify maps validator output to the contact domain errors.
// A blank field always wins over a length violation.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	tooLong := false
	for _, e := range validationErrors {
		switch e.Tag() {
		case "notblank", "required":
			return domain.ErrMissingFields
		case "max":
			tooLong = true
		}
	}
	if tooLong {
		return domain.ErrMessageTooLong
	}
	return domain.ErrMissingFields
}
