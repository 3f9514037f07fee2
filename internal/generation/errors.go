package generation

import "errors"

// Generation error types
var (
	// ErrDisabled is returned when no generator is configured. Pasted
	// responses keep working; only the generate endpoints are affected.
	ErrDisabled = errors.New("content generation is not configured")

	// ErrInvalidConfig is returned when generator configuration is
	// incomplete or invalid.
	ErrInvalidConfig = errors.New("invalid generator configuration")

	// ErrGenerationFailed is returned when the provider call fails
	// after exhausting retries.
	ErrGenerationFailed = errors.New("content generation failed")

	// ErrInvalidResponse is returned when the provider responds with
	// something unusable (empty, truncated, or malformed).
	ErrInvalidResponse = errors.New("invalid generation response")

	// ErrContentBlocked is returned when the provider's safety filters
	// block the response. Not retryable.
	ErrContentBlocked = errors.New("content blocked by safety filters")
)
