package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/recitelabs/recite-api/internal/domain"
	"github.com/recitelabs/recite-api/internal/generation"
	"github.com/recitelabs/recite-api/internal/service/auth"
	"github.com/recitelabs/recite-api/internal/task"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"missing token", auth.ErrMissingToken, http.StatusUnauthorized},
		{"bad credentials", auth.ErrBadCredentials, http.StatusUnauthorized},
		{"not found", domain.ErrNotFound, http.StatusNotFound},
		{"task not found", task.ErrTaskNotFound, http.StatusNotFound},
		{"empty input", domain.ErrInputEmpty, http.StatusBadRequest},
		{"parse failure", domain.ErrParseFailure, http.StatusBadRequest},
		{"validation failure", domain.ErrValidationFailure, http.StatusUnprocessableEntity},
		{"generation disabled", generation.ErrDisabled, http.StatusNotImplemented},
		{"queue full", task.ErrQueueFull, http.StatusTooManyRequests},
		{"storage failure", domain.ErrStorageFailure, http.StatusInternalServerError},
		{"unknown error", errors.New("something else"), http.StatusInternalServerError},
		{
			"wrapped error keeps its mapping",
			fmt.Errorf("course %s: %w", "abc", domain.ErrNotFound),
			http.StatusNotFound,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("parse errors keep their detail", func(t *testing.T) {
		t.Parallel()
		err := fmt.Errorf("%w: quiz item 3 has 3 options, want 4", domain.ErrParseFailure)
		assert.Equal(t, err.Error(), GetSafeErrorMessage(err))
	})

	t.Run("not found errors keep their detail", func(t *testing.T) {
		t.Parallel()
		err := fmt.Errorf("%w: course abc", domain.ErrNotFound)
		assert.Equal(t, err.Error(), GetSafeErrorMessage(err))
	})

	t.Run("auth errors are sanitized", func(t *testing.T) {
		t.Parallel()
		err := fmt.Errorf("%w: bcrypt mismatch for stored hash", auth.ErrBadCredentials)
		assert.Equal(t, "Invalid credentials", GetSafeErrorMessage(err))
	})

	t.Run("storage errors are sanitized", func(t *testing.T) {
		t.Parallel()
		err := fmt.Errorf("%w: open /var/data/recite.json: permission denied", domain.ErrStorageFailure)
		assert.Equal(t, "Failed to save data", GetSafeErrorMessage(err))
	})

	t.Run("unknown errors are sanitized", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(errors.New("internal detail")))
	})

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
	})
}
