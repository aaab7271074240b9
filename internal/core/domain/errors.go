package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("session is not authorized")
	ErrForbidden          = errors.New("access forbidden")
	ErrNotFound           = errors.New("resource not found")
	ErrConflict           = errors.New("resource already exists")
	ErrRejected           = errors.New("request rejected")
	ErrUpstream           = errors.New("rental api unavailable")
	ErrUnknownRole        = errors.New("unknown role")
	ErrInvalidDateRange   = errors.New("end date must not be before start date")
	ErrDuplicateBooking   = errors.New("booking already submitted")
)

// PublicMessage returns the user-facing message carried by err, or "".
// Errors opt in by implementing PublicMessage() string.
func PublicMessage(err error) string {
	var pm interface{ PublicMessage() string }
	if errors.As(err, &pm) {
		return pm.PublicMessage()
	}
	return ""
}

// Rejection is a user-correctable input error. It matches ErrRejected.
type Rejection struct {
	Message string
}

// Reject builds a Rejection with a formatted message.
func Reject(format string, args ...any) error {
	return &Rejection{Message: fmt.Sprintf(format, args...)}
}

func (r *Rejection) Error() string         { return ErrRejected.Error() + ": " + r.Message }
func (r *Rejection) Unwrap() error         { return ErrRejected }
func (r *Rejection) PublicMessage() string { return r.Message }
