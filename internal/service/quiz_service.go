package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/recitelabs/recite-api/internal/domain"
	"github.com/recitelabs/recite-api/internal/quiz"
)

// QuizService scores quiz attempts against stored quiz slots and
// records them in the slot's history.
type QuizService struct {
	engine   *Engine
	timeFunc func() time.Time // injectable for testing
	logger   *slog.Logger
}

// NewQuizService creates a QuizService.
func NewQuizService(engine *Engine, logger *slog.Logger) *QuizService {
	if logger == nil {
		logger = slog.Default()
	}
	return &QuizService{
		engine:   engine,
		timeFunc: time.Now,
		logger:   logger.With(slog.String("component", "quiz_service")),
	}
}

// GetQuiz returns the quiz payload plus the slot's attempt history
// for one topic.
func (s *QuizService) GetQuiz(
	ctx context.Context,
	courseID, topicID string,
) (*domain.QuizPayload, *domain.ContentSlot, error) {
	var (
		payload *domain.QuizPayload
		slot    *domain.ContentSlot
	)
	err := s.engine.View(func(data *domain.Data) error {
		_, found, err := findSlot(data, courseID, topicID, domain.ContentTypeQuiz)
		if err != nil {
			return err
		}
		quiz, err := found.Quiz()
		if err != nil {
			return fmt.Errorf("%w: quiz not generated for topic %s", domain.ErrNotFound, topicID)
		}
		payload = quiz
		slot = found
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return payload, slot, nil
}

// SubmitAttempt scores a complete answer sheet against the stored quiz
// and appends the attempt to the slot's history. BestScore only moves
// up, and the slot flips to completed once the best score reaches the
// mastery threshold.
func (s *QuizService) SubmitAttempt(
	ctx context.Context,
	courseID, topicID string,
	answers []*int,
	timeSpentSeconds int,
) (domain.Attempt, error) {
	var attempt domain.Attempt
	err := s.engine.Update(ctx, func(data *domain.Data) error {
		_, slot, err := findSlot(data, courseID, topicID, domain.ContentTypeQuiz)
		if err != nil {
			return err
		}
		payload, err := slot.Quiz()
		if err != nil {
			return fmt.Errorf("%w: quiz not generated for topic %s", domain.ErrNotFound, topicID)
		}
		attempt, err = quiz.Replay(payload.Questions, answers, timeSpentSeconds, s.timeFunc())
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrValidationFailure, err)
		}
		slot.RecordAttempt(attempt, quiz.MasteryThreshold)
		return nil
	})
	if err != nil {
		return domain.Attempt{}, err
	}
	s.logger.Info("quiz attempt recorded",
		"course_id", courseID,
		"topic_id", topicID,
		"score", attempt.Score,
		"total", attempt.Total,
		"percentage", attempt.Percentage)
	return attempt, nil
}
