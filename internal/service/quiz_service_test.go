package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recitelabs/recite-api/internal/domain"
	"github.com/recitelabs/recite-api/internal/quiz"
)

func TestSubmitAttempt(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	engine, _ := newTestEngine(t)
	contentSvc := NewContentService(engine, nil)
	quizSvc := NewQuizService(engine, nil)
	course, topic := seedCourse(t, contentSvc)

	_, _, err := contentSvc.SaveContent(ctx, course.ID, topic.ID, domain.ContentTypeQuiz, quizResponse)
	require.NoError(t, err)

	// One of two correct: 50%, below the mastery threshold.
	attempt, err := quizSvc.SubmitAttempt(ctx, course.ID, topic.ID, []*int{intPtr(0), intPtr(0)}, 40)
	require.NoError(t, err)
	assert.Equal(t, 1, attempt.Score)
	assert.Equal(t, 50, attempt.Percentage)

	_, slot, err := quizSvc.GetQuiz(ctx, course.ID, topic.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, slot.BestScore)
	assert.False(t, slot.Completed)

	// Perfect sheet: mastery reached.
	attempt, err = quizSvc.SubmitAttempt(ctx, course.ID, topic.ID, []*int{intPtr(0), intPtr(1)}, 35)
	require.NoError(t, err)
	assert.Equal(t, 100, attempt.Percentage)

	_, slot, err = quizSvc.GetQuiz(ctx, course.ID, topic.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, slot.BestScore)
	assert.True(t, slot.Completed)

	// A later zero does not regress anything.
	_, err = quizSvc.SubmitAttempt(ctx, course.ID, topic.ID, []*int{nil, nil}, 5)
	require.NoError(t, err)

	_, slot, err = quizSvc.GetQuiz(ctx, course.ID, topic.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, slot.BestScore)
	assert.True(t, slot.Completed)
	assert.Len(t, slot.Attempts, 3)
}

func TestSubmitAttemptValidation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	engine, _ := newTestEngine(t)
	contentSvc := NewContentService(engine, nil)
	quizSvc := NewQuizService(engine, nil)
	course, topic := seedCourse(t, contentSvc)

	t.Run("no quiz generated yet", func(t *testing.T) {
		_, err := quizSvc.SubmitAttempt(ctx, course.ID, topic.ID, []*int{intPtr(0)}, 10)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("answer sheet length mismatch", func(t *testing.T) {
		_, _, err := contentSvc.SaveContent(ctx, course.ID, topic.ID, domain.ContentTypeQuiz, quizResponse)
		require.NoError(t, err)

		_, err = quizSvc.SubmitAttempt(ctx, course.ID, topic.ID, []*int{intPtr(0)}, 10)
		assert.ErrorIs(t, err, domain.ErrValidationFailure)

		_, slot, err := quizSvc.GetQuiz(ctx, course.ID, topic.ID)
		require.NoError(t, err)
		assert.Empty(t, slot.Attempts, "rejected sheets leave no history")
	})

	t.Run("unknown topic", func(t *testing.T) {
		_, err := quizSvc.SubmitAttempt(ctx, course.ID, "missing", []*int{intPtr(0)}, 10)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestMasteryThresholdBoundary(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 70, quiz.MasteryThreshold)

	now := time.Now()
	slot := domain.NewContentSlot()
	// 7/10 = 70%: exactly at the threshold counts as mastery.
	slot.RecordAttempt(domain.NewAttempt(7, 10, 60, now, nil), quiz.MasteryThreshold)
	assert.True(t, slot.Completed)

	slot = domain.NewContentSlot()
	// 69% stays below.
	slot.RecordAttempt(domain.NewAttempt(69, 100, 60, now, nil), quiz.MasteryThreshold)
	assert.False(t, slot.Completed)
}
