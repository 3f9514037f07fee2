package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Course-specific validation errors
var (
	// ErrCourseIDEmpty is returned when a course ID is empty.
	ErrCourseIDEmpty = errors.New("course ID cannot be empty")

	// ErrCourseNameEmpty is returned when a course name is empty.
	ErrCourseNameEmpty = errors.New("course name cannot be empty")

	// ErrTopicNameEmpty is returned when a topic name is empty.
	ErrTopicNameEmpty = errors.New("topic name cannot be empty")
)

// ContentType identifies one of the six content slots every topic carries.
type ContentType string

// The fixed slot keys. StructureParser guarantees all six exist on
// every topic it produces.
const (
	ContentTypeSummary    ContentType = "summary"
	ContentTypeFlashcards ContentType = "flashcards"
	ContentTypeQuiz       ContentType = "quiz"
	ContentTypeExplainer  ContentType = "explainer"
	ContentTypePractice   ContentType = "practice"
	ContentTypeReview     ContentType = "review"
)

// ContentTypes lists all slot keys in canonical order.
func ContentTypes() []ContentType {
	return []ContentType{
		ContentTypeSummary,
		ContentTypeFlashcards,
		ContentTypeQuiz,
		ContentTypeExplainer,
		ContentTypePractice,
		ContentTypeReview,
	}
}

// IsValidContentType reports whether t is one of the six slot keys.
func IsValidContentType(t ContentType) bool {
	switch t {
	case ContentTypeSummary, ContentTypeFlashcards, ContentTypeQuiz,
		ContentTypeExplainer, ContentTypePractice, ContentTypeReview:
		return true
	default:
		return false
	}
}

// IsReadingContentType reports whether t holds markdown reading content
// rather than structured quiz/flashcard payloads.
func IsReadingContentType(t ContentType) bool {
	switch t {
	case ContentTypeSummary, ContentTypeExplainer, ContentTypePractice, ContentTypeReview:
		return true
	default:
		return false
	}
}

// SlotStatus is the fill state of a content slot.
type SlotStatus string

const (
	SlotStatusEmpty  SlotStatus = "empty"
	SlotStatusFilled SlotStatus = "filled"
)

// Course is the top-level unit of study material. It exclusively owns
// its topics; deleting a course cascades to everything below it.
type Course struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	StructureAnalyzed bool      `json:"structure_analyzed"`
	Topics            []*Topic  `json:"topics"`
}

// NewCourse creates a course with no topics. Structure analysis fills
// the topic list later.
func NewCourse(name, description string) (*Course, error) {
	course := &Course{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		CreatedAt:   time.Now().UTC(),
		Topics:      []*Topic{},
	}
	if err := course.Validate(); err != nil {
		return nil, err
	}
	return course, nil
}

// Validate checks if the Course has valid data.
func (c *Course) Validate() error {
	if c.ID == "" {
		return ErrCourseIDEmpty
	}
	if c.Name == "" {
		return ErrCourseNameEmpty
	}
	return nil
}

// Topic returns the topic with the given ID, or nil if absent.
func (c *Course) Topic(id string) *Topic {
	for _, t := range c.Topics {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// Subtopic is a named subdivision of a topic with its key concepts.
type Subtopic struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Concepts []string `json:"concepts"`
}

// Topic groups the six content slots for one unit of a course.
type Topic struct {
	ID         string                       `json:"id"`
	Name       string                       `json:"name"`
	Difficulty string                       `json:"difficulty"`
	Category   string                       `json:"category"`
	Subtopics  []*Subtopic                  `json:"subtopics"`
	Content    map[ContentType]*ContentSlot `json:"content"`
}

// NewTopic creates a topic with all six content slots present and
// empty. Difficulty and category fall back to "Medium"/"General".
func NewTopic(name, difficulty, category string) (*Topic, error) {
	if name == "" {
		return nil, ErrTopicNameEmpty
	}
	if difficulty == "" {
		difficulty = "Medium"
	}
	if category == "" {
		category = "General"
	}
	topic := &Topic{
		ID:         NewLocalID(),
		Name:       name,
		Difficulty: difficulty,
		Category:   category,
		Subtopics:  []*Subtopic{},
		Content:    map[ContentType]*ContentSlot{},
	}
	for _, ct := range ContentTypes() {
		topic.Content[ct] = NewContentSlot()
	}
	return topic, nil
}

// Slot returns the content slot for the given type, or nil when the
// type is not one of the six slot keys.
func (t *Topic) Slot(ct ContentType) *ContentSlot {
	return t.Content[ct]
}

// Data is the full persisted tree: every course plus the process-wide
// personalization preferences. The engine assumes exclusive
// single-writer access between persistence checkpoints.
type Data struct {
	Courses []*Course             `json:"courses"`
	Prefs   *PersonalizationPrefs `json:"prefs"`
}

// NewData returns a fresh default tree, used when the store has
// nothing saved yet.
func NewData() *Data {
	return &Data{
		Courses: []*Course{},
		Prefs:   DefaultPrefs(),
	}
}

// Course returns the course with the given ID, or nil if absent.
func (d *Data) Course(id string) *Course {
	for _, c := range d.Courses {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// RemoveCourse deletes the course with the given ID and reports
// whether it existed. Owned topics and slots go with it.
func (d *Data) RemoveCourse(id string) bool {
	for i, c := range d.Courses {
		if c.ID == id {
			d.Courses = append(d.Courses[:i], d.Courses[i+1:]...)
			return true
		}
	}
	return false
}
