package domain

import (
	"encoding/json"
	"fmt"
)

// SchemaVersion tags mutually incompatible payload shapes for the same
// content type. Current generations always write the _v1 versions; the
// legacy tags only ever appear when reading older saved data.
type SchemaVersion string

const (
	SchemaQuizV1           SchemaVersion = "quiz_mcq_v1"
	SchemaQuizLegacy       SchemaVersion = "quiz_mcq_legacy"
	SchemaFlashcardsV1     SchemaVersion = "flashcards_v1"
	SchemaFlashcardsLegacy SchemaVersion = "flashcards_legacy"
	SchemaMarkdownV1       SchemaVersion = "md_v1"
	SchemaReadingV1        SchemaVersion = "reading_content_v1"
	SchemaGenericLegacy    SchemaVersion = "generic_legacy"
)

// Payload is the tagged union of slot content variants. Concrete types
// are QuizPayload, FlashcardPayload, MarkdownPayload, and ReadingPayload.
type Payload interface {
	Version() SchemaVersion
}

// Question is a single multiple-choice quiz question. Options always
// has exactly four entries and CorrectAnswer indexes into it; the
// parser drops anything that cannot satisfy that invariant.
type Question struct {
	ID            string         `json:"id"`
	Text          string         `json:"text"`
	Options       []string       `json:"options"`
	CorrectAnswer int            `json:"correct_answer"`
	Feedback      map[int]string `json:"feedback,omitempty"`
	Difficulty    string         `json:"difficulty,omitempty"`
	CitationIDs   []string       `json:"citation_ids,omitempty"`
}

// QuizPayload holds the questions of one quiz slot.
type QuizPayload struct {
	SchemaVersion SchemaVersion `json:"schema_version"`
	Title         string        `json:"title,omitempty"`
	Questions     []Question    `json:"questions"`
}

func (p *QuizPayload) Version() SchemaVersion { return p.SchemaVersion }

// Card is a single flashcard.
type Card struct {
	ID          string   `json:"id"`
	Front       string   `json:"front"`
	Back        string   `json:"back"`
	Tags        []string `json:"tags,omitempty"`
	CitationIDs []string `json:"citation_ids,omitempty"`
}

// FlashcardPayload holds the cards of one flashcards slot.
type FlashcardPayload struct {
	SchemaVersion SchemaVersion `json:"schema_version"`
	Cards         []Card        `json:"cards"`
}

func (p *FlashcardPayload) Version() SchemaVersion { return p.SchemaVersion }

// MarkdownPayload holds a single markdown document for the reading
// content types (summary, explainer, practice, review).
type MarkdownPayload struct {
	SchemaVersion SchemaVersion `json:"schema_version"`
	Markdown      string        `json:"markdown"`
}

func (p *MarkdownPayload) Version() SchemaVersion { return p.SchemaVersion }

// ReadingSection is one structured section of a reading_content_v1
// payload, optionally carrying embedded micro-check questions in the
// same shape as quiz items.
type ReadingSection struct {
	Title  string     `json:"title"`
	Body   string     `json:"body"`
	Checks []Question `json:"checks,omitempty"`
}

// ReadingPayload is the structured alternative to MarkdownPayload,
// kept for reading older saved data.
type ReadingPayload struct {
	SchemaVersion SchemaVersion    `json:"schema_version"`
	Sections      []ReadingSection `json:"sections"`
}

func (p *ReadingPayload) Version() SchemaVersion { return p.SchemaVersion }

// EncodePayload marshals a payload for storage inside a content slot.
func EncodePayload(p Payload) (json.RawMessage, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: nil payload", ErrValidationFailure)
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("%w: encode %s: %v", ErrValidationFailure, p.Version(), err)
	}
	return raw, nil
}

// versionProbe reads only the discriminator tag of a stored payload.
type versionProbe struct {
	SchemaVersion SchemaVersion `json:"schema_version"`
}

// DecodePayload reads the schema_version tag of a stored payload and
// dispatches to the matching concrete type. Stored payloads always
// carry a tag; anything else is a parse failure.
func DecodePayload(raw json.RawMessage) (Payload, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty payload document", ErrParseFailure)
	}

	var probe versionProbe
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("%w: payload is not valid JSON: %v", ErrParseFailure, err)
	}

	switch probe.SchemaVersion {
	case SchemaQuizV1, SchemaQuizLegacy:
		var p QuizPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("%w: decode %s: %v", ErrParseFailure, probe.SchemaVersion, err)
		}
		return &p, nil
	case SchemaFlashcardsV1, SchemaFlashcardsLegacy:
		var p FlashcardPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("%w: decode %s: %v", ErrParseFailure, probe.SchemaVersion, err)
		}
		return &p, nil
	case SchemaMarkdownV1:
		var p MarkdownPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("%w: decode %s: %v", ErrParseFailure, probe.SchemaVersion, err)
		}
		return &p, nil
	case SchemaReadingV1, SchemaGenericLegacy:
		var p ReadingPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("%w: decode %s: %v", ErrParseFailure, probe.SchemaVersion, err)
		}
		return &p, nil
	default:
		return nil, fmt.Errorf("%w: unknown schema_version %q", ErrParseFailure, probe.SchemaVersion)
	}
}
