package task

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/recitelabs/recite-api/internal/domain"
	"github.com/recitelabs/recite-api/internal/generation"
)

// StructureWriter is the slice of the content service a structure task
// needs: installing a parsed outline on a course.
type StructureWriter interface {
	AnalyzeStructure(ctx context.Context, courseID, responseText string) ([]*domain.Topic, error)
}

// StructureAnalysisTask generates a course outline and installs it.
// A response the structure parser rejects fails the task and leaves
// the course's existing topics untouched.
type StructureAnalysisTask struct {
	id          uuid.UUID
	courseID    string
	courseName  string
	description string
	generator   generation.StructureGenerator
	writer      StructureWriter
}

// NewStructureAnalysisTask creates a structure task for one course.
func NewStructureAnalysisTask(
	courseID, courseName, description string,
	generator generation.StructureGenerator,
	writer StructureWriter,
) (*StructureAnalysisTask, error) {
	if generator == nil {
		return nil, generation.ErrDisabled
	}
	if writer == nil {
		return nil, fmt.Errorf("structure writer cannot be nil")
	}
	return &StructureAnalysisTask{
		id:          uuid.New(),
		courseID:    courseID,
		courseName:  courseName,
		description: description,
		generator:   generator,
		writer:      writer,
	}, nil
}

// ID implements the Task interface.
func (t *StructureAnalysisTask) ID() uuid.UUID { return t.id }

// Type implements the Task interface.
func (t *StructureAnalysisTask) Type() string { return TypeStructureAnalysis }

// Execute implements the Task interface.
func (t *StructureAnalysisTask) Execute(ctx context.Context) error {
	raw, err := t.generator.GenerateStructure(ctx, t.courseName, t.description)
	if err != nil {
		return fmt.Errorf("generate course outline: %w", err)
	}
	if _, err := t.writer.AnalyzeStructure(ctx, t.courseID, raw); err != nil {
		return fmt.Errorf("install course outline: %w", err)
	}
	return nil
}
