package domain

import "errors"

// Core error taxonomy shared by the parsing and scheduling engine.
// Components wrap these with fmt.Errorf("%w: ...") so callers can
// classify failures with errors.Is instead of string matching.
var (
	// ErrInputEmpty is returned when a user submission is blank.
	ErrInputEmpty = errors.New("input is empty")

	// ErrParseFailure is returned when text does not match the expected
	// marker or JSON grammar. The wrapped message names the schema that
	// was expected.
	ErrParseFailure = errors.New("parse failure")

	// ErrValidationFailure is returned when input is schema-shaped but
	// semantically incomplete, e.g. a quiz item without exactly four
	// options or a resolved correct flag.
	ErrValidationFailure = errors.New("validation failure")

	// ErrNotFound is returned when a referenced course, topic, or slot
	// does not exist.
	ErrNotFound = errors.New("not found")

	// ErrStorageFailure is returned when a persistence call fails.
	// In-memory state is not rolled back; the session may retry the save.
	ErrStorageFailure = errors.New("storage failure")
)
