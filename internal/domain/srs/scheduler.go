package srs

import (
	"errors"
	"time"

	"github.com/recitelabs/recite-api/internal/domain"
)

// Common errors
var (
	ErrInvalidGrade = errors.New("invalid review grade")
)

// Scheduler defines the interface for review-scheduling operations.
type Scheduler interface {
	// Grade computes the card state that follows one review. The input
	// state is not modified.
	Grade(state domain.CardState, grade Grade, now time.Time) (domain.CardState, error)
}

// defaultScheduler is the standard implementation of Scheduler.
type defaultScheduler struct {
	params *Params
}

// NewDefaultScheduler creates a scheduler with default parameters.
func NewDefaultScheduler() Scheduler {
	return &defaultScheduler{params: NewDefaultParams()}
}

// NewSchedulerWithParams creates a scheduler with custom parameters.
func NewSchedulerWithParams(params *Params) Scheduler {
	return &defaultScheduler{params: params}
}

// Grade implements the Scheduler interface.
func (s *defaultScheduler) Grade(
	state domain.CardState,
	grade Grade,
	now time.Time,
) (domain.CardState, error) {
	if !grade.IsValid() {
		return domain.CardState{}, ErrInvalidGrade
	}
	return calculateNextState(state, grade, now, s.params), nil
}
