package task

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/recitelabs/recite-api/internal/domain"
	"github.com/recitelabs/recite-api/internal/generation"
)

// ContentWriter is the slice of the content service a generation task
// needs: assembling the generation request for a slot, and saving the
// generated response through the normal parse-and-persist path.
type ContentWriter interface {
	GenerationRequest(ctx context.Context, courseID, topicID string, contentType domain.ContentType) (generation.Request, error)
	SaveContent(ctx context.Context, courseID, topicID string, contentType domain.ContentType, raw string) (domain.Payload, []string, error)
}

// ContentGenerationTask generates content for one topic slot. A parse
// failure of the provider's response fails the task and leaves the
// slot untouched, same as a bad pasted response.
type ContentGenerationTask struct {
	id          uuid.UUID
	courseID    string
	topicID     string
	contentType domain.ContentType
	generator   generation.Generator
	writer      ContentWriter
}

// NewContentGenerationTask creates a generation task for one slot.
func NewContentGenerationTask(
	courseID, topicID string,
	contentType domain.ContentType,
	generator generation.Generator,
	writer ContentWriter,
) (*ContentGenerationTask, error) {
	if generator == nil {
		return nil, generation.ErrDisabled
	}
	if writer == nil {
		return nil, fmt.Errorf("content writer cannot be nil")
	}
	return &ContentGenerationTask{
		id:          uuid.New(),
		courseID:    courseID,
		topicID:     topicID,
		contentType: contentType,
		generator:   generator,
		writer:      writer,
	}, nil
}

// ID implements the Task interface.
func (t *ContentGenerationTask) ID() uuid.UUID { return t.id }

// Type implements the Task interface.
func (t *ContentGenerationTask) Type() string { return TypeContentGeneration }

// Execute implements the Task interface.
func (t *ContentGenerationTask) Execute(ctx context.Context) error {
	req, err := t.writer.GenerationRequest(ctx, t.courseID, t.topicID, t.contentType)
	if err != nil {
		return fmt.Errorf("assemble generation request: %w", err)
	}

	raw, err := t.generator.GenerateContent(ctx, req)
	if err != nil {
		return fmt.Errorf("generate %s content: %w", t.contentType, err)
	}

	if _, _, err := t.writer.SaveContent(ctx, t.courseID, t.topicID, t.contentType, raw); err != nil {
		return fmt.Errorf("save generated %s content: %w", t.contentType, err)
	}
	return nil
}
