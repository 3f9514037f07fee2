package api

import (
	"time"

	"github.com/recitelabs/recite-api/internal/domain"
)

// Common request/response structures

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for the login endpoint.
type AuthResponse struct {
	// AccessToken is the JWT token used for API authorization.
	AccessToken string `json:"token"`

	// ExpiresAt is the RFC 3339 timestamp when the token expires.
	ExpiresAt string `json:"expires_at,omitempty"`
}

// CreateCourseRequest defines the payload for creating a course.
type CreateCourseRequest struct {
	Name        string `json:"name"        validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=2000"`
}

// AnalyzeStructureRequest carries a pasted course-outline response.
type AnalyzeStructureRequest struct {
	ResponseText string `json:"response_text" validate:"required"`
}

// SaveContentRequest carries a pasted content response for one slot.
type SaveContentRequest struct {
	ResponseText string `json:"response_text" validate:"required"`
}

// SaveContentResponse reports the save result. Warnings list expected
// reading sections the content is missing; the content is saved
// regardless.
type SaveContentResponse struct {
	SchemaVersion string   `json:"schema_version"`
	Warnings      []string `json:"warnings,omitempty"`
}

// CompletedRequest sets a slot's completion chip.
type CompletedRequest struct {
	Completed bool `json:"completed"`
}

// GenerateRequest queues background generation for one slot.
type GenerateRequest struct {
	ContentType string `json:"content_type" validate:"required"`
}

// TaskResponse reports a queued task's ID for status polling.
type TaskResponse struct {
	TaskID string `json:"task_id"`
}

// SubmitQuizRequest carries a complete answer sheet for scoring. A nil
// entry means the question was left unanswered.
type SubmitQuizRequest struct {
	Answers          []*int `json:"answers"            validate:"required,min=1"`
	TimeSpentSeconds int    `json:"time_spent_seconds" validate:"gte=0"`
}

// AttemptResponse reports one scored attempt plus the slot's updated
// standing.
type AttemptResponse struct {
	Score      int       `json:"score"`
	Total      int       `json:"total"`
	Percentage int       `json:"percentage"`
	Date       time.Time `json:"date"`
	BestScore  int       `json:"best_score"`
	Completed  bool      `json:"completed"`
}

// StartReviewRequest opens a review session over a flashcard slot.
type StartReviewRequest struct {
	CourseID string `json:"course_id" validate:"required"`
	TopicID  string `json:"topic_id"  validate:"required"`
}

// GradeRequest applies a review grade to the session's current card.
type GradeRequest struct {
	Grade int `json:"grade" validate:"required,oneof=1 3 4 5"`
}

// SlotResponse is the client view of one content slot.
type SlotResponse struct {
	ContentType string                       `json:"content_type"`
	Status      string                       `json:"status"`
	Completed   bool                         `json:"completed"`
	LastUpdated *time.Time                   `json:"last_updated,omitempty"`
	BestScore   int                          `json:"best_score,omitempty"`
	Attempts    int                          `json:"attempts,omitempty"`
	Content     interface{}                  `json:"content,omitempty"`
	SRS         map[string]*domain.CardState `json:"srs,omitempty"`
}

// PrefsResponse mirrors the stored preferences.
type PrefsResponse struct {
	Prefs domain.PersonalizationPrefs `json:"prefs"`
}
