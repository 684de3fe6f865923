package apperror

import "net/http"

// Kind groups errors by who can fix them.
type Kind string

const (
	KindValidation    Kind = "validation"    // client-fixable
	KindConfiguration Kind = "configuration" // operator-fixable
	KindDispatch      Kind = "dispatch"      // transport-side
	KindInternal      Kind = "internal"
)

type AppError struct {
	Code    int    `json:"code"`
	Kind    Kind   `json:"-"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Kind:    KindInternal,
		Message: message,
		Err:     err,
	}
}

func Validation(message string, err error) *AppError {
	return &AppError{Code: http.StatusBadRequest, Kind: KindValidation, Message: message, Err: err}
}

func Configuration(message string, err error) *AppError {
	return &AppError{Code: http.StatusInternalServerError, Kind: KindConfiguration, Message: message, Err: err}
}

func Dispatch(message string, err error) *AppError {
	return &AppError{Code: http.StatusInternalServerError, Kind: KindDispatch, Message: message, Err: err}
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, message, nil)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, "Internal server error.", err)
}
