package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Match them with errors.Is.
var (
	ErrNotFound           = errors.New("not found")
	ErrIntegrityViolation = errors.New("integrity violation")
	ErrStore              = errors.New("store error")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnavailable        = errors.New("source unavailable")
)

// Error is a catalog failure of a given kind with a message fit for users
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Is matches the error kind
func (e *Error) Is(target error) bool {
	return e.Kind == target
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound builds an ErrNotFound error
func NotFound(message string) *Error {
	return &Error{Kind: ErrNotFound, Message: message}
}

// IntegrityViolation builds an ErrIntegrityViolation error
func IntegrityViolation(message string, err error) *Error {
	return &Error{Kind: ErrIntegrityViolation, Message: message, Err: err}
}

// StoreFailure builds an ErrStore error
func StoreFailure(message string, err error) *Error {
	return &Error{Kind: ErrStore, Message: message, Err: err}
}

// InvalidInput builds an ErrInvalidInput error
func InvalidInput(message string) *Error {
	return &Error{Kind: ErrInvalidInput, Message: message}
}

// Unavailable builds an ErrUnavailable error
func Unavailable(message string, err error) *Error {
	return &Error{Kind: ErrUnavailable, Message: message, Err: err}
}

// MessageOf returns the user-facing message of err
func MessageOf(err error) string {
	var catalogErr *Error
	if errors.As(err, &catalogErr) {
		return catalogErr.Message
	}
	return err.Error()
}

// KindOf returns the kind of err, ErrStore for unclassified errors
func KindOf(err error) error {
	for _, kind := range []error{ErrNotFound, ErrIntegrityViolation, ErrInvalidInput, ErrUnavailable} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return ErrStore
}
