package api

import (
	"errors"
	"net/http"

	"github.com/recitelabs/recite-api/internal/api/shared"
	"github.com/recitelabs/recite-api/internal/domain"
	"github.com/recitelabs/recite-api/internal/generation"
	"github.com/recitelabs/recite-api/internal/service/auth"
	"github.com/recitelabs/recite-api/internal/task"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes so
// handlers never leak internal error types to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrBadCredentials):
		return http.StatusUnauthorized

	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, task.ErrTaskNotFound):
		return http.StatusNotFound

	case errors.Is(err, domain.ErrInputEmpty),
		errors.Is(err, domain.ErrParseFailure):
		return http.StatusBadRequest

	case errors.Is(err, domain.ErrValidationFailure):
		return http.StatusUnprocessableEntity

	case errors.Is(err, generation.ErrDisabled):
		return http.StatusNotImplemented

	case errors.Is(err, task.ErrQueueFull):
		return http.StatusTooManyRequests

	case errors.Is(err, domain.ErrStorageFailure):
		return http.StatusInternalServerError

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for an error.
// Parse and validation failures keep their detail: the message is the
// user's only clue for fixing a rejected pasted response. Everything
// else is sanitized.
func GetSafeErrorMessage(err error) string {
	switch {
	case err == nil:
		return "An unexpected error occurred"

	case errors.Is(err, auth.ErrBadCredentials):
		return "Invalid credentials"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, domain.ErrInputEmpty),
		errors.Is(err, domain.ErrParseFailure),
		errors.Is(err, domain.ErrValidationFailure),
		errors.Is(err, domain.ErrNotFound):
		return err.Error()

	case errors.Is(err, generation.ErrDisabled):
		return "Content generation is not configured"

	case errors.Is(err, task.ErrQueueFull):
		return "Generation queue is full, try again later"

	case errors.Is(err, task.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, domain.ErrStorageFailure):
		return "Failed to save data"

	default:
		return "An unexpected error occurred"
	}
}

// respondWithMappedError maps err to a status and safe message and
// writes the error response.
func respondWithMappedError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
}
