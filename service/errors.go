package service

import "errors"

// Domain errors. Handlers translate these to HTTP status codes; anything
// else is treated as an internal failure.
var (
	ErrNotFound     = errors.New("application not found")
	ErrForbidden    = errors.New("access denied")
	ErrInvalidState = errors.New("application can only be updated when returned")
)

// ValidationError rejects bad input (unknown subject, oversized message,
// bad status value). Maps to 400.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func invalid(msg string) error { return &ValidationError{Msg: msg} }

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
