package srs

import (
	"math"
	"time"

	"github.com/recitelabs/recite-api/internal/domain"
)

// calculateNewEase applies the SM-2 ease update for the given grade:
//
//	ease' = ease + (0.1 - (5-q) * (0.08 + (5-q)*0.02))
//
// clamped below by params.MinEase. Grades of 4 and above can only
// raise the ease; lower grades pull it down toward the floor.
func calculateNewEase(currentEase float64, grade Grade, params *Params) float64 {
	q := float64(grade)
	newEase := currentEase + (0.1 - (5-q)*(0.08+(5-q)*0.02))
	if newEase < params.MinEase {
		newEase = params.MinEase
	}
	return newEase
}

// calculateNewInterval determines the next interval in days for a
// successful review (grade >= 3). The progression is reps-dependent:
// first success 1 day, second success 6 days, afterwards the previous
// interval scaled by the updated ease.
func calculateNewInterval(currentInterval, reps int, ease float64, params *Params) int {
	switch {
	case reps == 0:
		return params.FirstInterval
	case reps == 1:
		return params.SecondInterval
	default:
		return int(math.Round(float64(currentInterval) * ease))
	}
}

// calculateNextState computes the card state after one graded review,
// following the immutable update pattern: the input state is never
// modified, a new value is returned.
func calculateNextState(state domain.CardState, grade Grade, now time.Time, params *Params) domain.CardState {
	next := state
	g := int(grade)
	next.LastGrade = &g

	if grade < GradeHard {
		// A lapse: the card is due again immediately. Ease still takes
		// the SM-2 penalty for the failed grade.
		next.Reps = 0
		next.Interval = 0
		next.Due = domain.DateOnly(now)
		next.Ease = calculateNewEase(state.Ease, grade, params)
		return next
	}

	// The interval grows with the ease the card had going into this
	// review; the ease adjustment below only affects future reviews.
	next.Interval = calculateNewInterval(state.Interval, state.Reps, state.Ease, params)
	next.Reps = state.Reps + 1
	next.Ease = calculateNewEase(state.Ease, grade, params)
	next.Due = domain.DateOnly(now).AddDate(0, 0, next.Interval)
	return next
}
