package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/recitelabs/recite-api/internal/domain"
	"github.com/recitelabs/recite-api/internal/generation"
	"github.com/recitelabs/recite-api/internal/parser"
	"github.com/recitelabs/recite-api/internal/reading"
)

// ContentService manages the content lifecycle: course CRUD, structure
// analysis, slot saves, and export/import of the whole tree.
type ContentService struct {
	engine   *Engine
	timeFunc func() time.Time // injectable for testing
	logger   *slog.Logger
}

// NewContentService creates a ContentService.
func NewContentService(engine *Engine, logger *slog.Logger) *ContentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ContentService{
		engine:   engine,
		timeFunc: time.Now,
		logger:   logger.With(slog.String("component", "content_service")),
	}
}

// CreateCourse adds a new course with no topics.
func (s *ContentService) CreateCourse(ctx context.Context, name, description string) (*domain.Course, error) {
	course, err := domain.NewCourse(name, description)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidationFailure, err)
	}
	err = s.engine.Update(ctx, func(data *domain.Data) error {
		data.Courses = append(data.Courses, course)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("course created", "course_id", course.ID, "name", course.Name)
	return course, nil
}

// ListCourses returns all courses.
func (s *ContentService) ListCourses(ctx context.Context) ([]*domain.Course, error) {
	var courses []*domain.Course
	err := s.engine.View(func(data *domain.Data) error {
		courses = append(courses, data.Courses...)
		return nil
	})
	return courses, err
}

// GetCourse returns one course by ID.
func (s *ContentService) GetCourse(ctx context.Context, courseID string) (*domain.Course, error) {
	var course *domain.Course
	err := s.engine.View(func(data *domain.Data) error {
		course = data.Course(courseID)
		if course == nil {
			return fmt.Errorf("%w: course %s", domain.ErrNotFound, courseID)
		}
		return nil
	})
	return course, err
}

// DeleteCourse removes a course and everything it owns.
func (s *ContentService) DeleteCourse(ctx context.Context, courseID string) error {
	return s.engine.Update(ctx, func(data *domain.Data) error {
		if !data.RemoveCourse(courseID) {
			return fmt.Errorf("%w: course %s", domain.ErrNotFound, courseID)
		}
		return nil
	})
}

// AnalyzeStructure parses a structure response into topics and
// installs them on the course. A parse failure leaves the course's
// existing topic list untouched.
func (s *ContentService) AnalyzeStructure(
	ctx context.Context,
	courseID, responseText string,
) ([]*domain.Topic, error) {
	topics, err := parser.ParseStructure(responseText)
	if err != nil {
		return nil, err
	}
	err = s.engine.Update(ctx, func(data *domain.Data) error {
		course := data.Course(courseID)
		if course == nil {
			return fmt.Errorf("%w: course %s", domain.ErrNotFound, courseID)
		}
		course.Topics = topics
		course.StructureAnalyzed = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("structure analyzed", "course_id", courseID, "topics", len(topics))
	return topics, nil
}

// SaveContent parses a response for one slot and persists the result
// together with the raw text. The returned warnings are the reading
// validator's missing sections, advisory only: content is saved
// regardless. Parse and validation failures leave the slot untouched.
func (s *ContentService) SaveContent(
	ctx context.Context,
	courseID, topicID string,
	contentType domain.ContentType,
	raw string,
) (domain.Payload, []string, error) {
	payload, err := parser.ParseContent(raw, contentType)
	if err != nil {
		return nil, nil, err
	}

	var warnings []string
	if md, ok := payload.(*domain.MarkdownPayload); ok {
		warnings = reading.MissingSections(md.Markdown, contentType)
	}

	err = s.engine.Update(ctx, func(data *domain.Data) error {
		_, slot, err := findSlot(data, courseID, topicID, contentType)
		if err != nil {
			return err
		}
		return slot.Fill(payload, raw, s.timeFunc())
	})
	if err != nil {
		return nil, nil, err
	}
	s.logger.Info("content saved",
		"course_id", courseID,
		"topic_id", topicID,
		"content_type", contentType,
		"warnings", len(warnings))
	return payload, warnings, nil
}

// GetSlot returns the slot record for one content type.
func (s *ContentService) GetSlot(
	ctx context.Context,
	courseID, topicID string,
	contentType domain.ContentType,
) (*domain.ContentSlot, error) {
	var slot *domain.ContentSlot
	err := s.engine.View(func(data *domain.Data) error {
		_, found, err := findSlot(data, courseID, topicID, contentType)
		if err != nil {
			return err
		}
		slot = found
		return nil
	})
	return slot, err
}

// SetCompleted marks a slot's mastery chip by hand. Quiz slots also
// flip automatically at the mastery threshold; the manual path exists
// for the reading types. Completion is topic-type-local: it never
// affects the other slots of the topic.
func (s *ContentService) SetCompleted(
	ctx context.Context,
	courseID, topicID string,
	contentType domain.ContentType,
	completed bool,
) error {
	return s.engine.Update(ctx, func(data *domain.Data) error {
		_, slot, err := findSlot(data, courseID, topicID, contentType)
		if err != nil {
			return err
		}
		slot.Completed = completed
		return nil
	})
}

// GenerationRequest assembles the generation request for a slot,
// including a snapshot of the current preferences.
func (s *ContentService) GenerationRequest(
	ctx context.Context,
	courseID, topicID string,
	contentType domain.ContentType,
) (generation.Request, error) {
	var req generation.Request
	err := s.engine.View(func(data *domain.Data) error {
		course, topic, err := findTopic(data, courseID, topicID)
		if err != nil {
			return err
		}
		if !domain.IsValidContentType(contentType) {
			return fmt.Errorf("%w: content type %q", domain.ErrValidationFailure, contentType)
		}
		prefs := *data.Prefs
		req = generation.Request{
			CourseName:  course.Name,
			Topic:       topic,
			ContentType: contentType,
			Prefs:       &prefs,
		}
		return nil
	})
	return req, err
}

// Export renders the full data tree as a JSON document.
func (s *ContentService) Export(ctx context.Context) ([]byte, error) {
	var raw []byte
	err := s.engine.View(func(data *domain.Data) error {
		var encodeErr error
		raw, encodeErr = json.MarshalIndent(data, "", "  ")
		return encodeErr
	})
	return raw, err
}

// Import replaces the data tree with an exported document. The
// document must carry a courses key; anything else is rejected before
// any state changes.
func (s *ContentService) Import(ctx context.Context, raw []byte) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return fmt.Errorf("%w: import document is not valid JSON: %v", domain.ErrParseFailure, err)
	}
	if _, ok := probe["courses"]; !ok {
		return fmt.Errorf("%w: import document has no courses key", domain.ErrValidationFailure)
	}

	var incoming domain.Data
	if err := json.Unmarshal(raw, &incoming); err != nil {
		return fmt.Errorf("%w: decode import document: %v", domain.ErrParseFailure, err)
	}
	if incoming.Prefs == nil {
		incoming.Prefs = domain.DefaultPrefs()
	}
	incoming.Prefs.Clamp()
	upgradeLegacySlots(&incoming, s.logger)

	return s.engine.Update(ctx, func(data *domain.Data) error {
		data.Courses = incoming.Courses
		data.Prefs = incoming.Prefs
		return nil
	})
}
