package domain

import (
	"errors"
	"time"
)

// CardState validation errors
var (
	ErrCardStateEase     = errors.New("ease must be at least 1.3")
	ErrCardStateReps     = errors.New("reps must be greater than or equal to 0")
	ErrCardStateInterval = errors.New("interval must be greater than or equal to 0")
)

// CardState tracks the spaced-repetition scheduling state of one
// flashcard within one topic. Created lazily on first review and
// mutated only by the scheduler; it is deleted only when its owning
// content or topic is deleted.
type CardState struct {
	Ease      float64   `json:"ease"`               // difficulty modifier, floor 1.3
	Reps      int       `json:"reps"`               // successful reviews since last lapse
	Interval  int       `json:"interval"`           // days until the next review
	Due       time.Time `json:"due"`                // next review date (midnight UTC)
	LastGrade *int      `json:"last_grade,omitempty"` // display only
}

// NewCardState returns the state of a never-reviewed card: default
// ease, no reps, due immediately.
func NewCardState(now time.Time) *CardState {
	return &CardState{
		Ease:     2.5,
		Reps:     0,
		Interval: 0,
		Due:      DateOnly(now),
	}
}

// Validate checks if the CardState has valid data.
func (s *CardState) Validate() error {
	if s.Ease < 1.3 {
		return ErrCardStateEase
	}
	if s.Reps < 0 {
		return ErrCardStateReps
	}
	if s.Interval < 0 {
		return ErrCardStateInterval
	}
	return nil
}

// IsDue reports whether the card should be reviewed on the given day.
// Due dates are stored at midnight UTC, so this is a date comparison,
// not an instant comparison.
func (s *CardState) IsDue(now time.Time) bool {
	return !s.Due.After(DateOnly(now))
}

// DateOnly truncates an instant to its UTC calendar date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
