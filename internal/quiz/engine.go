// Package quiz implements the single-attempt quiz session state
// machine: question sequencing, answer capture, scoring, and mastery
// detection.
package quiz

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/recitelabs/recite-api/internal/domain"
)

// MasteryThreshold is the bestScore percentage at or above which a
// quiz slot is auto-marked completed.
const MasteryThreshold = 70

// Session errors
var (
	ErrNoQuestions     = errors.New("quiz has no questions")
	ErrNotInProgress   = errors.New("quiz session is not in progress")
	ErrAlreadyAnswered = errors.New("current question already answered")
	ErrNoSelection     = errors.New("no option selected")
	ErrAnswerMismatch  = errors.New("answer sheet length does not match question count")
)

// State is the lifecycle phase of a quiz session.
type State string

const (
	StateNotStarted State = "not_started"
	StateInProgress State = "in_progress"
	StateFinished   State = "finished"
)

// Session is one interactive quiz run over a fixed question set.
// Answers are captured once per question and become immutable when the
// session finishes; review mode replays them without touching attempt
// history.
type Session struct {
	questions []domain.Question
	answers   []*int
	index     int
	startedAt time.Time
	state     State
}

// NewSession creates a session in the NotStarted state.
func NewSession(questions []domain.Question) (*Session, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	qs := make([]domain.Question, len(questions))
	copy(qs, questions)
	return &Session{
		questions: qs,
		state:     StateNotStarted,
	}, nil
}

// Start moves to InProgress at question zero with a fresh answer sheet
// and records the start time, the time source of record for the
// attempt's elapsed seconds.
func (s *Session) Start(now time.Time) {
	s.answers = make([]*int, len(s.questions))
	s.index = 0
	s.startedAt = now
	s.state = StateInProgress
}

// State returns the current lifecycle phase.
func (s *Session) State() State { return s.state }

// Index returns the current question position.
func (s *Session) Index() int { return s.index }

// Question returns the question at the current position.
func (s *Session) Question() domain.Question { return s.questions[s.index] }

// Answers returns a copy of the answer sheet, for review mode.
func (s *Session) Answers() []*int {
	out := make([]*int, len(s.answers))
	copy(out, s.answers)
	return out
}

// SubmitResult is the feedback emitted for one submitted answer.
type SubmitResult struct {
	Correct       bool
	CorrectAnswer int
	Feedback      string
}

// Submit records the answer for the current question. Valid only in
// InProgress and only once per question; the options lock as soon as
// an answer is recorded. Feedback is the correct option's feedback
// text, with a correct-answer notice added on a miss.
func (s *Session) Submit(selected int) (SubmitResult, error) {
	if s.state != StateInProgress {
		return SubmitResult{}, ErrNotInProgress
	}
	if s.answers[s.index] != nil {
		return SubmitResult{}, ErrAlreadyAnswered
	}
	if selected < 0 || selected >= len(s.questions[s.index].Options) {
		return SubmitResult{}, fmt.Errorf("%w: option %d out of range", ErrNoSelection, selected)
	}

	answer := selected
	s.answers[s.index] = &answer

	question := s.questions[s.index]
	result := SubmitResult{
		Correct:       selected == question.CorrectAnswer,
		CorrectAnswer: question.CorrectAnswer,
		Feedback:      question.Feedback[question.CorrectAnswer],
	}
	if !result.Correct {
		notice := fmt.Sprintf("The correct answer is %c) %s",
			'A'+question.CorrectAnswer, question.Options[question.CorrectAnswer])
		if result.Feedback != "" {
			result.Feedback += " " + notice
		} else {
			result.Feedback = notice
		}
	}
	return result, nil
}

// Advance moves to the next question. At the last question it is a
// no-op and returns false: the caller finishes the session instead.
func (s *Session) Advance() bool {
	if s.state != StateInProgress || s.index >= len(s.questions)-1 {
		return false
	}
	s.index++
	return true
}

// Retreat moves to the previous question; a no-op at position zero.
func (s *Session) Retreat() bool {
	if s.state != StateInProgress || s.index == 0 {
		return false
	}
	s.index--
	return true
}

// Finish scores the session and returns the immutable attempt record.
// Score counts answers equal to the matching question's correct index;
// percentage is the rounded score share; elapsed time is the wall-clock
// delta since Start.
func (s *Session) Finish(now time.Time) (domain.Attempt, error) {
	if s.state != StateInProgress {
		return domain.Attempt{}, ErrNotInProgress
	}

	score := 0
	for i, answer := range s.answers {
		if answer != nil && *answer == s.questions[i].CorrectAnswer {
			score++
		}
	}
	elapsed := int(math.Round(now.Sub(s.startedAt).Seconds()))
	if elapsed < 0 {
		elapsed = 0
	}
	s.state = StateFinished
	return domain.NewAttempt(score, len(s.questions), elapsed, now.UTC(), s.answers), nil
}

// Retake restarts the session over the same question set with a fresh
// answer sheet and start time. Prior attempts live in the slot's
// history and are unaffected.
func (s *Session) Retake(now time.Time) error {
	if s.state != StateFinished {
		return fmt.Errorf("%w: retake requires a finished session", ErrNotInProgress)
	}
	s.Start(now)
	return nil
}

// Replay scores a complete answer sheet against a question set in one
// call, for callers that collect all answers before submitting. The
// elapsed time is supplied by the caller's own start checkpoint.
func Replay(
	questions []domain.Question,
	answers []*int,
	timeSpentSeconds int,
	now time.Time,
) (domain.Attempt, error) {
	if len(questions) == 0 {
		return domain.Attempt{}, ErrNoQuestions
	}
	if len(answers) != len(questions) {
		return domain.Attempt{}, ErrAnswerMismatch
	}
	score := 0
	for i, answer := range answers {
		if answer != nil && *answer == questions[i].CorrectAnswer {
			score++
		}
	}
	if timeSpentSeconds < 0 {
		timeSpentSeconds = 0
	}
	return domain.NewAttempt(score, len(questions), timeSpentSeconds, now.UTC(), answers), nil
}
