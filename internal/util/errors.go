package util

import (
	"net/http"

	"github.com/pkg/errors"
)

type ErrorKind int

const (
	KindBadRequest ErrorKind = iota + 1
	KindUnauthenticated
	KindUnauthorized
	KindNotFound
	KindConflict
	KindTooManyRequests
)

// AppError is an error that carries its HTTP meaning. Anything that is not
// an AppError is reported as an internal error.
type AppError struct {
	Kind    ErrorKind
	Message string
	Errors  []string
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Status() int {
	switch e.Kind {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindUnauthorized:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindTooManyRequests:
		return http.StatusTooManyRequests
	}
	return http.StatusInternalServerError
}

func newAppError(kind ErrorKind, msg string, details []string) error {
	return errors.WithStack(&AppError{Kind: kind, Message: msg, Errors: details})
}

func NewBadRequest(msg string, details ...string) error {
	return newAppError(KindBadRequest, msg, details)
}

func NewUnauthenticated(msg string) error {
	return newAppError(KindUnauthenticated, msg, nil)
}

func NewUnauthorized(msg string) error {
	return newAppError(KindUnauthorized, msg, nil)
}

func NewNotFound(msg string) error {
	return newAppError(KindNotFound, msg, nil)
}

func NewConflict(msg string) error {
	return newAppError(KindConflict, msg, nil)
}

func NewTooManyRequests(msg string) error {
	return newAppError(KindTooManyRequests, msg, nil)
}

// IsKind reports whether err wraps an AppError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}

var (
	ErrInvalidCredentials = NewUnauthenticated("Invalid credentials")
	ErrInvalidOTP         = NewUnauthenticated("Invalid OTP code or expired")
	ErrUserNotFound       = NewNotFound("User not found")
	ErrExamOrUserNotFound = NewNotFound("Exam or user not found")
	ErrInvalidID          = NewBadRequest("Invalid id provided")
	ErrPermissionDenied   = NewUnauthorized("Not authorized to access this route")
	ErrNotAuthenticated   = NewUnauthenticated("Authentication invalid")
	ErrTooManyLogins      = NewTooManyRequests("Too many failed login attempts, try again later")
)
