package parser

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/recitelabs/recite-api/internal/domain"
)

// Wire shapes for the versioned JSON formats quiz_mcq_v1 and
// flashcards_v1.
type quizOption struct {
	Text      string `json:"text"`
	Feedback  string `json:"feedback"`
	IsCorrect bool   `json:"isCorrect"`
}

type quizItem struct {
	ID          string       `json:"id"`
	Stem        string       `json:"stem"`
	Options     []quizOption `json:"options"`
	Difficulty  string       `json:"difficulty"`
	CitationIDs []string     `json:"citation_ids"`
}

type quizDocument struct {
	SchemaVersion string     `json:"schema_version"`
	TopicID       string     `json:"topic_id"`
	Title         string     `json:"title"`
	Items         []quizItem `json:"items"`
}

type cardEntry struct {
	ID          string   `json:"id"`
	Front       string   `json:"front"`
	Back        string   `json:"back"`
	Tags        []string `json:"tags"`
	CitationIDs []string `json:"citation_ids"`
}

type flashcardsDocument struct {
	SchemaVersion string      `json:"schema_version"`
	TopicID       string      `json:"topic_id"`
	Cards         []cardEntry `json:"cards"`
	Total         int         `json:"total"`
}

// ParseContent converts an AI response into the typed payload for the
// given content type. It is a pure transform: the caller persists the
// result alongside a copy of the raw response. On any error the input
// is left uncommitted and the user can retry.
func ParseContent(raw string, contentType domain.ContentType) (domain.Payload, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("%w: response is blank", domain.ErrInputEmpty)
	}
	switch contentType {
	case domain.ContentTypeQuiz:
		return parseQuiz(raw)
	case domain.ContentTypeFlashcards:
		return parseFlashcards(raw)
	case domain.ContentTypeSummary, domain.ContentTypeExplainer,
		domain.ContentTypePractice, domain.ContentTypeReview:
		return parseMarkdown(raw, contentType)
	default:
		return nil, fmt.Errorf("%w: unknown content type %q", domain.ErrValidationFailure, contentType)
	}
}

// parseQuiz decodes a quiz_mcq_v1 document, or an untagged legacy JSON
// document carrying an items array. Items survive only with exactly
// four options and exactly one isCorrect flag; partial keeps never
// happen.
func parseQuiz(raw string) (domain.Payload, error) {
	doc, ok := ExtractJSON(raw)
	if !ok {
		return nil, fmt.Errorf("%w: expected quiz_mcq_v1 JSON", domain.ErrParseFailure)
	}

	var probe versionTag
	_ = json.Unmarshal(doc, &probe)
	switch probe.SchemaVersion {
	case string(domain.SchemaQuizV1):
		if err := validateDocument(doc, quizSchema, "quiz_mcq_v1"); err != nil {
			return nil, err
		}
	case "":
		// Untagged document: accept only the legacy items-array shape.
		if !hasArrayField(doc, "items") {
			return nil, fmt.Errorf("%w: expected quiz_mcq_v1 JSON with an items array", domain.ErrParseFailure)
		}
	default:
		return nil, fmt.Errorf("%w: expected quiz_mcq_v1, got %q", domain.ErrParseFailure, probe.SchemaVersion)
	}

	var parsed quizDocument
	if err := json.Unmarshal(doc, &parsed); err != nil {
		return nil, fmt.Errorf("%w: quiz_mcq_v1: %v", domain.ErrParseFailure, err)
	}

	questions := make([]domain.Question, 0, len(parsed.Items))
	for i, item := range parsed.Items {
		question, ok := convertQuizItem(item, i)
		if !ok {
			continue
		}
		questions = append(questions, question)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf(
			"%w: no valid items: need 4 options with feedback and one isCorrect",
			domain.ErrValidationFailure)
	}
	return &domain.QuizPayload{
		SchemaVersion: domain.SchemaQuizV1,
		Title:         parsed.Title,
		Questions:     questions,
	}, nil
}

// convertQuizItem maps one wire item to a Question. The correct index
// is the position of the single isCorrect option; items with any other
// count of correct flags, or without exactly four options, are dropped
// whole.
func convertQuizItem(item quizItem, index int) (domain.Question, bool) {
	if len(item.Options) != 4 {
		return domain.Question{}, false
	}
	correct := -1
	for i, opt := range item.Options {
		if opt.IsCorrect {
			if correct >= 0 {
				return domain.Question{}, false
			}
			correct = i
		}
	}
	if correct < 0 {
		return domain.Question{}, false
	}

	options := make([]string, 4)
	feedback := map[int]string{}
	for i, opt := range item.Options {
		options[i] = opt.Text
		if opt.Feedback != "" {
			feedback[i] = opt.Feedback
		}
	}
	id := item.ID
	if id == "" {
		id = fmt.Sprintf("q%d", index+1)
	}
	return domain.Question{
		ID:            id,
		Text:          item.Stem,
		Options:       options,
		CorrectAnswer: correct,
		Feedback:      feedback,
		Difficulty:    item.Difficulty,
		CitationIDs:   item.CitationIDs,
	}, true
}

// parseFlashcards decodes a flashcards_v1 document, or an untagged
// legacy JSON document carrying a cards array. The old markdown card
// format is not accepted for new writes; parseFlashcardsLegacy exists
// only for reading previously stored data.
func parseFlashcards(raw string) (domain.Payload, error) {
	doc, ok := ExtractJSON(raw)
	if !ok {
		return nil, fmt.Errorf("%w: expected flashcards_v1 JSON", domain.ErrParseFailure)
	}

	var probe versionTag
	_ = json.Unmarshal(doc, &probe)
	switch probe.SchemaVersion {
	case string(domain.SchemaFlashcardsV1):
		if err := validateDocument(doc, flashcardsSchema, "flashcards_v1"); err != nil {
			return nil, err
		}
	case "":
		if !hasArrayField(doc, "cards") {
			return nil, fmt.Errorf("%w: expected flashcards_v1 JSON with a cards array", domain.ErrParseFailure)
		}
	default:
		return nil, fmt.Errorf("%w: expected flashcards_v1, got %q", domain.ErrParseFailure, probe.SchemaVersion)
	}

	var parsed flashcardsDocument
	if err := json.Unmarshal(doc, &parsed); err != nil {
		return nil, fmt.Errorf("%w: flashcards_v1: %v", domain.ErrParseFailure, err)
	}
	if len(parsed.Cards) == 0 {
		return nil, fmt.Errorf("%w: flashcards_v1 document has no cards", domain.ErrValidationFailure)
	}

	cards := make([]domain.Card, 0, len(parsed.Cards))
	for i, entry := range parsed.Cards {
		card := domain.Card{
			ID:          entry.ID,
			Front:       entry.Front,
			Back:        entry.Back,
			Tags:        entry.Tags,
			CitationIDs: entry.CitationIDs,
		}
		if card.ID == "" {
			card.ID = fmt.Sprintf("c%d", i+1)
		}
		if card.Tags == nil {
			card.Tags = []string{}
		}
		if card.CitationIDs == nil {
			card.CitationIDs = []string{}
		}
		cards = append(cards, card)
	}
	return &domain.FlashcardPayload{
		SchemaVersion: domain.SchemaFlashcardsV1,
		Cards:         cards,
	}, nil
}

// parseMarkdown accepts the reading content types. JSON input is
// rejected outright, and at least one markdown heading is required so
// that a stray chat reply does not land in a reading slot.
func parseMarkdown(raw string, contentType domain.ContentType) (domain.Payload, error) {
	trimmed := strings.TrimSpace(raw)
	if json.Valid([]byte(trimmed)) {
		return nil, fmt.Errorf(
			"%w: %s content must be markdown, not JSON", domain.ErrParseFailure, contentType)
	}
	if !hasHeading(trimmed) {
		return nil, fmt.Errorf(
			"%w: %s markdown needs at least one # heading", domain.ErrValidationFailure, contentType)
	}
	return &domain.MarkdownPayload{
		SchemaVersion: domain.SchemaMarkdownV1,
		Markdown:      raw,
	}, nil
}

// versionTag reads only the discriminator of a wire document.
type versionTag struct {
	SchemaVersion string `json:"schema_version"`
}

// hasArrayField reports whether the document has a non-null array at
// the given top-level key.
func hasArrayField(doc json.RawMessage, key string) bool {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(doc, &fields); err != nil {
		return false
	}
	value, ok := fields[key]
	if !ok {
		return false
	}
	var arr []json.RawMessage
	return json.Unmarshal(value, &arr) == nil
}

// hasHeading reports whether any line starts with a # heading marker.
func hasHeading(text string) bool {
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			return true
		}
	}
	return false
}
