package utils

import (
	"errors"

	"gorm.io/gorm"
)

// ErrorKind classifies a failure so the HTTP boundary can pick a status code
// without string matching. Domain operations return kinded errors for every
// expected failure; anything unclassified is treated as internal.
type ErrorKind int

const (
	ErrorKindInternal ErrorKind = iota
	ErrorKindValidation
	ErrorKindNotFound
	ErrorKindConflict
	ErrorKindUnauthorized
	ErrorKindForbidden
)

type AppError struct {
	Kind    ErrorKind
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewValidationError(message string) error {
	return &AppError{Kind: ErrorKindValidation, Message: message}
}

func NewNotFoundError(message string) error {
	return &AppError{Kind: ErrorKindNotFound, Message: message}
}

func NewConflictError(message string) error {
	return &AppError{Kind: ErrorKindConflict, Message: message}
}

func NewUnauthorizedError(message string) error {
	return &AppError{Kind: ErrorKindUnauthorized, Message: message}
}

func NewForbiddenError(message string) error {
	return &AppError{Kind: ErrorKindForbidden, Message: message}
}

var ErrorRecordNotFound = NewNotFoundError("record not found")

// KindOf unwraps err into an ErrorKind. Driver-level not-found errors are
// re-mapped so callers never see gorm internals.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ErrorKindInternal
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorKindNotFound
	}
	return ErrorKindInternal
}
