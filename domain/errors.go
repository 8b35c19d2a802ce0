package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error that crosses the service boundary wraps one of these.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrNotFound     = errors.New("not found")
)

// Error pairs a kind with the message shown to clients.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func NewError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Errorf(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

var (
	ErrUserNotFound       = NewError(ErrNotFound, "user not found")
	ErrStoreNotFound      = NewError(ErrNotFound, "store not found")
	ErrEmailRegistered    = NewError(ErrConflict, "email already registered")
	ErrEmailInUse         = NewError(ErrConflict, "email already in use")
	ErrInvalidCredentials = NewError(ErrUnauthorized, "invalid credentials")
	ErrWrongPassword      = NewError(ErrInvalidInput, "current password is incorrect")
	ErrInvalidRating      = NewError(ErrInvalidInput, "rating must be between 1 and 5")
	ErrInvalidRole        = NewError(ErrInvalidInput, "invalid role")
	ErrInvalidStoreOwner  = NewError(ErrInvalidInput, "invalid store owner")
	ErrSelfDelete         = NewError(ErrForbidden, "cannot delete your own account")
	ErrReferenceMissing   = NewError(ErrInvalidInput, "referenced record does not exist")
)
