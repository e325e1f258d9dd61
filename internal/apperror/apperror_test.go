package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOfUnwrapsWrappedErrors(t *testing.T) {
	base := New(KindInsufficientBalance, "Insufficient balance: you have %s", "200")
	wrapped := fmt.Errorf("debit: %w", base)

	assert.Equal(t, KindInsufficientBalance, KindOf(wrapped))
	assert.True(t, Is(wrapped, KindInsufficientBalance))
	assert.False(t, Retryable(wrapped))
}

func TestForeignErrorsAreStorageFailures(t *testing.T) {
	err := errors.New("connection reset")

	assert.Equal(t, KindStorage, KindOf(err))
	assert.True(t, Retryable(err))
}

func TestStorageKeepsCauseOutOfMessage(t *testing.T) {
	cause := errors.New("server selection timeout")
	err := Storage(cause, "failed to create order")

	assert.Equal(t, "failed to create order", err.Message)
	assert.ErrorIs(t, err, cause)
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		KindInvalidInput:        http.StatusBadRequest,
		KindNotFound:            http.StatusNotFound,
		KindInvalidTransition:   http.StatusConflict,
		KindAlreadySubmitted:    http.StatusConflict,
		KindInvalidRating:       http.StatusBadRequest,
		KindInsufficientBalance: http.StatusBadRequest,
		KindLimitExceeded:       http.StatusBadRequest,
		KindInvalidAmount:       http.StatusBadRequest,
		KindStorage:             http.StatusInternalServerError,
		KindUnauthorized:        http.StatusUnauthorized,
		KindForbidden:           http.StatusForbidden,
	}
	for kind, want := range cases {
		assert.Equal(t, want, HTTPStatus(kind), string(kind))
	}
}
