package quiz

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recitelabs/recite-api/internal/domain"
)

func testQuestions() []domain.Question {
	return []domain.Question{
		{
			ID:            "q1",
			Text:          "What is 2+2?",
			Options:       []string{"3", "4", "5", "22"},
			CorrectAnswer: 1,
			Feedback:      map[int]string{1: "Basic addition."},
		},
		{
			ID:            "q2",
			Text:          "What is 3*3?",
			Options:       []string{"6", "8", "9", "12"},
			CorrectAnswer: 2,
		},
	}
}

func intPtr(v int) *int { return &v }

func TestSessionLifecycle(t *testing.T) {
	t.Parallel()
	start := time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)

	session, err := NewSession(testQuestions())
	require.NoError(t, err)
	assert.Equal(t, StateNotStarted, session.State())

	session.Start(start)
	assert.Equal(t, StateInProgress, session.State())
	assert.Equal(t, 0, session.Index())

	result, err := session.Submit(1)
	require.NoError(t, err)
	assert.True(t, result.Correct)
	assert.Equal(t, "Basic addition.", result.Feedback)

	require.True(t, session.Advance())
	result, err = session.Submit(0)
	require.NoError(t, err)
	assert.False(t, result.Correct)
	assert.Contains(t, result.Feedback, "The correct answer is C) 9")

	assert.False(t, session.Advance(), "no question after the last")

	attempt, err := session.Finish(start.Add(90 * time.Second))
	require.NoError(t, err)
	assert.Equal(t, 1, attempt.Score)
	assert.Equal(t, 2, attempt.Total)
	assert.Equal(t, 50, attempt.Percentage)
	assert.Equal(t, 90, attempt.TimeSpentSeconds)
	assert.Equal(t, StateFinished, session.State())
}

func TestSubmitLocksAnswer(t *testing.T) {
	t.Parallel()
	session, err := NewSession(testQuestions())
	require.NoError(t, err)
	session.Start(time.Now())

	_, err = session.Submit(0)
	require.NoError(t, err)

	_, err = session.Submit(1)
	assert.ErrorIs(t, err, ErrAlreadyAnswered, "options lock after the first answer")
}

func TestSubmitValidation(t *testing.T) {
	t.Parallel()
	session, err := NewSession(testQuestions())
	require.NoError(t, err)

	_, err = session.Submit(0)
	assert.ErrorIs(t, err, ErrNotInProgress, "cannot answer before Start")

	session.Start(time.Now())
	_, err = session.Submit(7)
	assert.ErrorIs(t, err, ErrNoSelection)
}

func TestRetreatRevisitsWithoutUnlocking(t *testing.T) {
	t.Parallel()
	session, err := NewSession(testQuestions())
	require.NoError(t, err)
	session.Start(time.Now())

	_, err = session.Submit(1)
	require.NoError(t, err)
	require.True(t, session.Advance())
	require.True(t, session.Retreat())

	assert.Equal(t, 0, session.Index())
	_, err = session.Submit(2)
	assert.ErrorIs(t, err, ErrAlreadyAnswered)
}

func TestRetakeStartsFresh(t *testing.T) {
	t.Parallel()
	now := time.Now()
	session, err := NewSession(testQuestions())
	require.NoError(t, err)

	session.Start(now)
	_, err = session.Submit(1)
	require.NoError(t, err)
	session.Advance()
	_, err = session.Submit(2)
	require.NoError(t, err)
	_, err = session.Finish(now.Add(time.Minute))
	require.NoError(t, err)

	require.NoError(t, session.Retake(now.Add(2*time.Minute)))
	assert.Equal(t, StateInProgress, session.State())
	assert.Equal(t, 0, session.Index())

	_, err = session.Submit(0)
	require.NoError(t, err, "answers unlock on a retake")
}

func TestNewSessionRequiresQuestions(t *testing.T) {
	t.Parallel()
	_, err := NewSession(nil)
	assert.ErrorIs(t, err, ErrNoQuestions)
}

func TestReplay(t *testing.T) {
	t.Parallel()
	now := time.Now()

	t.Run("perfect sheet scores 100", func(t *testing.T) {
		t.Parallel()
		attempt, err := Replay(testQuestions(), []*int{intPtr(1), intPtr(2)}, 45, now)
		require.NoError(t, err)
		assert.Equal(t, 2, attempt.Score)
		assert.Equal(t, 100, attempt.Percentage)
		assert.Equal(t, 45, attempt.TimeSpentSeconds)
	})

	t.Run("unanswered questions score as wrong", func(t *testing.T) {
		t.Parallel()
		attempt, err := Replay(testQuestions(), []*int{intPtr(1), nil}, 30, now)
		require.NoError(t, err)
		assert.Equal(t, 1, attempt.Score)
		assert.Equal(t, 50, attempt.Percentage)
	})

	t.Run("sheet length must match", func(t *testing.T) {
		t.Parallel()
		_, err := Replay(testQuestions(), []*int{intPtr(1)}, 30, now)
		assert.ErrorIs(t, err, ErrAnswerMismatch)
	})
}

func TestMasteryViaRecordAttempt(t *testing.T) {
	t.Parallel()
	now := time.Now()
	slot := domain.NewContentSlot()

	// 50%: below the threshold.
	slot.RecordAttempt(domain.NewAttempt(1, 2, 30, now, nil), MasteryThreshold)
	assert.Equal(t, 50, slot.BestScore)
	assert.False(t, slot.Completed)

	// 100%: mastery reached.
	slot.RecordAttempt(domain.NewAttempt(2, 2, 30, now, nil), MasteryThreshold)
	assert.Equal(t, 100, slot.BestScore)
	assert.True(t, slot.Completed)

	// 0%: best score and completion never regress.
	slot.RecordAttempt(domain.NewAttempt(0, 2, 30, now, nil), MasteryThreshold)
	assert.Equal(t, 100, slot.BestScore)
	assert.True(t, slot.Completed)
	assert.Len(t, slot.Attempts, 3, "every attempt stays in the history")
}
