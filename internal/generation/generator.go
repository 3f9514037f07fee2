package generation

import (
	"context"

	"github.com/recitelabs/recite-api/internal/domain"
)

// Request describes one content-generation job: which topic, which of
// the six content types, and the user's personalization preferences.
type Request struct {
	CourseName  string
	Topic       *domain.Topic
	ContentType domain.ContentType
	Prefs       *domain.PersonalizationPrefs
}

// Generator produces a raw AI response for a generation request. The
// response text then flows through the same parser as a pasted
// response, so a provider that drifts off-format fails the identical
// validation a human paste would.
type Generator interface {
	GenerateContent(ctx context.Context, req Request) (string, error)
}

// StructureGenerator produces a course-outline response in the marker
// grammar the structure parser accepts.
type StructureGenerator interface {
	GenerateStructure(ctx context.Context, courseName, description string) (string, error)
}
