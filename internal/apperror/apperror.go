// Package apperror defines the error kinds reported to API callers.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindInvalidInput        Kind = "InvalidInput"
	KindNotFound            Kind = "NotFound"
	KindInvalidOrder        Kind = "InvalidOrder"
	KindInvalidTransition   Kind = "InvalidTransition"
	KindAlreadySubmitted    Kind = "AlreadySubmitted"
	KindInvalidRating       Kind = "InvalidRating"
	KindInsufficientBalance Kind = "InsufficientBalance"
	KindLimitExceeded       Kind = "LimitExceeded"
	KindInvalidAmount       Kind = "InvalidAmount"
	KindStorage             Kind = "StorageError"
	KindUnauthorized        Kind = "Unauthorized"
	KindForbidden           Kind = "Forbidden"
)

// Error carries a user-facing message. Err, when set, is the underlying cause
// and is never shown to callers.
type Error struct {
	Kind    Kind
	Message string
	Details map[string]any
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// WithDetail attaches an extra response field.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Storage wraps a backing store failure. The message describes the failed
// operation, the cause stays internal.
func Storage(err error, operation string) *Error {
	return &Error{Kind: KindStorage, Message: operation, Err: err}
}

// KindOf returns the kind of err. Errors that did not originate here are
// treated as storage failures.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStorage
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Retryable reports whether the caller may safely retry the operation.
func Retryable(err error) bool {
	return KindOf(err) == KindStorage
}

func HTTPStatus(kind Kind) int {
	switch kind {
	case KindInvalidInput, KindInvalidOrder, KindInvalidRating,
		KindInsufficientBalance, KindLimitExceeded, KindInvalidAmount:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidTransition, KindAlreadySubmitted:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
