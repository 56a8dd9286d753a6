package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors. Messages double as the wire-level "message" field, so
// they keep the phrasing existing clients match on.
var (
	ErrUserNotFound       = errors.New("User not found")
	ErrEventNotFound      = errors.New("Event not found")
	ErrAdminNotFound      = errors.New("Admin not found")
	ErrDuplicateUser      = errors.New("User with this ID already exists")
	ErrAlreadyCheckedIn   = errors.New("User already checked in")
	ErrAdminExists        = errors.New("Admin already exists")
	ErrInvalidCredentials = errors.New("Invalid credentials")
)

// ValidationError reports a rejected payload. The message names the
// offending field or id.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
