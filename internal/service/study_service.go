package service

import (
	"context"

	"github.com/recitelabs/recite-api/internal/domain"
	"github.com/recitelabs/recite-api/internal/study"
)

// StudyService exposes the cross-course study queue.
type StudyService struct {
	engine *Engine
}

// NewStudyService creates a StudyService.
func NewStudyService(engine *Engine) *StudyService {
	return &StudyService{engine: engine}
}

// Queue builds the current study queue from the full data tree.
func (s *StudyService) Queue(ctx context.Context) (study.Queue, error) {
	var queue study.Queue
	err := s.engine.View(func(data *domain.Data) error {
		queue = study.Build(data)
		return nil
	})
	return queue, err
}
