package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/recitelabs/recite-api/internal/domain"
)

// Legacy text formats. Earlier releases stored AI responses in
// delimiter-based text instead of versioned JSON. These decoders exist
// solely so older saved data keeps loading; new writes always go
// through the _v1 parsers.

var (
	optionLine     = regexp.MustCompile(`^([A-D])\)\s*(.*)$`)
	legacyCardLine = regexp.MustCompile(`^\*\*Card\s+(\d+):?.*$`)
)

const (
	legacyFeedbackMarker = "## FEEDBACK:"
	legacyCorrectMarker  = "## CORRECT"
)

// ParseQuizLegacy decodes the old quiz text format:
//
//	<stem line(s)>
//	A) <option> ## FEEDBACK: <text>
//	B) <option> ## FEEDBACK: <text> ## CORRECT
//	...
//
// Questions are separated by their option blocks; an option carrying
// the CORRECT marker fixes the answer index. Questions without exactly
// four options or without a marked answer are dropped whole, same as
// the v1 filter.
func ParseQuizLegacy(raw string) (*domain.QuizPayload, error) {
	var questions []domain.Question
	var stemLines []string
	var options []string
	feedback := map[int]string{}
	correct := -1

	flush := func() {
		if len(options) == 4 && correct >= 0 {
			questions = append(questions, domain.Question{
				ID:            fmt.Sprintf("q%d", len(questions)+1),
				Text:          strings.TrimSpace(strings.Join(stemLines, "\n")),
				Options:       options,
				CorrectAnswer: correct,
				Feedback:      feedback,
			})
		}
		stemLines = nil
		options = nil
		feedback = map[int]string{}
		correct = -1
	}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		m := optionLine.FindStringSubmatch(line)
		if m == nil {
			// A non-option line after options closes the question.
			if len(options) > 0 {
				flush()
			}
			if line != "" {
				stemLines = append(stemLines, line)
			}
			continue
		}

		body := m[2]
		if strings.Contains(body, legacyCorrectMarker) {
			correct = len(options)
			body = strings.ReplaceAll(body, legacyCorrectMarker, "")
		}
		if idx := strings.Index(body, legacyFeedbackMarker); idx >= 0 {
			feedback[len(options)] = strings.TrimSpace(body[idx+len(legacyFeedbackMarker):])
			body = body[:idx]
		}
		options = append(options, strings.TrimSpace(body))
	}
	flush()

	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: no valid legacy quiz questions", domain.ErrParseFailure)
	}
	return &domain.QuizPayload{
		SchemaVersion: domain.SchemaQuizLegacy,
		Questions:     questions,
	}, nil
}

// ParseFlashcardsLegacy decodes the old card list format:
//
//	**Card 1:**
//	- Front: <text>
//	- Back: <text>
func ParseFlashcardsLegacy(raw string) (*domain.FlashcardPayload, error) {
	var cards []domain.Card
	var current *domain.Card

	flush := func() {
		if current != nil && current.Front != "" && current.Back != "" {
			cards = append(cards, *current)
		}
		current = nil
	}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case legacyCardLine.MatchString(line):
			flush()
			current = &domain.Card{
				ID:          fmt.Sprintf("c%d", len(cards)+1),
				Tags:        []string{},
				CitationIDs: []string{},
			}
		case current != nil && strings.HasPrefix(line, "- Front:"):
			current.Front = strings.TrimSpace(strings.TrimPrefix(line, "- Front:"))
		case current != nil && strings.HasPrefix(line, "- Back:"):
			current.Back = strings.TrimSpace(strings.TrimPrefix(line, "- Back:"))
		}
	}
	flush()

	if len(cards) == 0 {
		return nil, fmt.Errorf("%w: no valid legacy flashcards", domain.ErrParseFailure)
	}
	return &domain.FlashcardPayload{
		SchemaVersion: domain.SchemaFlashcardsLegacy,
		Cards:         cards,
	}, nil
}

// ParseGenericLegacy decodes heading-delimited generic text into
// structured sections: each ##/### heading opens a section, the lines
// below it form the body.
func ParseGenericLegacy(raw string) (*domain.ReadingPayload, error) {
	var sections []domain.ReadingSection
	var current *domain.ReadingSection
	var body []string

	flush := func() {
		if current != nil {
			current.Body = strings.TrimSpace(strings.Join(body, "\n"))
			sections = append(sections, *current)
		}
		current = nil
		body = nil
	}

	for _, line := range strings.Split(raw, "\n") {
		if m := headingLine.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			flush()
			current = &domain.ReadingSection{Title: strings.TrimSpace(m[1])}
			continue
		}
		if current != nil {
			body = append(body, line)
		}
	}
	flush()

	if len(sections) == 0 {
		return nil, fmt.Errorf("%w: no heading-delimited sections", domain.ErrParseFailure)
	}
	return &domain.ReadingPayload{
		SchemaVersion: domain.SchemaGenericLegacy,
		Sections:      sections,
	}, nil
}

// ReparseStored recovers a payload for a slot whose stored content
// predates the versioned formats, trying the matching legacy decoder
// for the slot's content type.
func ReparseStored(raw string, contentType domain.ContentType) (domain.Payload, error) {
	switch contentType {
	case domain.ContentTypeQuiz:
		return ParseQuizLegacy(raw)
	case domain.ContentTypeFlashcards:
		return ParseFlashcardsLegacy(raw)
	default:
		return ParseGenericLegacy(raw)
	}
}
