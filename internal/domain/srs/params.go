package srs

// Grade is the quality rating of a flashcard review. The numeric
// values feed the SM-2 ease update formula directly.
type Grade int

// The four grades a reviewer can give.
const (
	GradeAgain Grade = 1
	GradeHard  Grade = 3
	GradeGood  Grade = 4
	GradeEasy  Grade = 5
)

// IsValid reports whether g is one of the four review grades.
func (g Grade) IsValid() bool {
	switch g {
	case GradeAgain, GradeHard, GradeGood, GradeEasy:
		return true
	default:
		return false
	}
}

// Params defines the configurable parameters of the scheduling
// algorithm.
type Params struct {
	// MinEase is the floor for the ease factor.
	MinEase float64

	// FirstInterval is the interval in days after the first successful
	// review (reps == 0).
	FirstInterval int

	// SecondInterval is the interval in days after the second
	// successful review (reps == 1).
	SecondInterval int

	// ReinsertOffset is how far ahead of the current position a failed
	// card is reinserted into the active session deck.
	ReinsertOffset int
}

// NewDefaultParams returns the standard SM-2-derived parameters.
func NewDefaultParams() *Params {
	return &Params{
		MinEase:        1.3,
		FirstInterval:  1,
		SecondInterval: 6,
		ReinsertOffset: 2,
	}
}
