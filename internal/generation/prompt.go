package generation

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/recitelabs/recite-api/internal/domain"
)

// Prompt templates. Each instructs the model to answer in exactly the
// wire format the parser accepts, so generation and pasting share one
// validation path.

const structurePromptText = `You are designing a course outline for "{{.CourseName}}".
{{if .Description}}Course description: {{.Description}}{{end}}

Produce a topic outline using exactly this line format, one topic per line group:

TOPIC_START: <topic name> ## DIFFICULTY: <Beginner|Intermediate|Advanced> ## CATEGORY: <category>
SUBTOPIC: <subtopic name> ## CONCEPTS: <concept one, concept two, concept three>

Use 4-8 topics with 2-4 subtopics each. Output the outline lines only, no commentary.`

const quizPromptText = `Create a multiple-choice quiz for the topic "{{.Topic.Name}}" ({{.Topic.Difficulty}}, {{.Topic.Category}}).
{{if .Concepts}}Cover these concepts: {{.Concepts}}.{{end}}
Target difficulty: {{.Prefs.Difficulty}}. Rigor: {{.Prefs.Rigor}}.

Respond with a single JSON document in this exact shape and nothing else:

{
  "schema_version": "quiz_mcq_v1",
  "topic_id": "{{.Topic.ID}}",
  "title": "<quiz title>",
  "items": [
    {
      "id": "q1",
      "stem": "<question text>",
      "options": [
        {"text": "<option>", "feedback": "<why right/wrong>", "isCorrect": false},
        {"text": "<option>", "feedback": "<why right/wrong>", "isCorrect": true},
        {"text": "<option>", "feedback": "<why right/wrong>", "isCorrect": false},
        {"text": "<option>", "feedback": "<why right/wrong>", "isCorrect": false}
      ],
      "difficulty": "{{.Prefs.Difficulty}}",
      "citation_ids": []
    }
  ],
  "metadata": {"count": <number of items>}
}

Every item must have exactly 4 options and exactly one option with "isCorrect": true.`

const flashcardsPromptText = `Create {{.Prefs.FlashcardsCount}} flashcards for the topic "{{.Topic.Name}}" ({{.Topic.Difficulty}}, {{.Topic.Category}}).
{{if .Concepts}}Cover these concepts: {{.Concepts}}.{{end}}

Respond with a single JSON document in this exact shape and nothing else:

{
  "schema_version": "flashcards_v1",
  "topic_id": "{{.Topic.ID}}",
  "cards": [
    {"id": "c1", "front": "<prompt side>", "back": "<answer side>", "tags": [], "citation_ids": []}
  ],
  "total": {{.Prefs.FlashcardsCount}}
}`

const readingPromptText = `Write {{.ContentType}} content in markdown for the topic "{{.Topic.Name}}" ({{.Topic.Difficulty}}, {{.Topic.Category}}).
{{if .Concepts}}Cover these concepts: {{.Concepts}}.{{end}}
Depth: {{.Prefs.Depth}}. Examples: {{.Prefs.Examples}}. Rigor: {{.Prefs.Rigor}}.
Citation style: {{.Prefs.CitationStyle}}. Target read time: {{.Prefs.ReadTimeMinutes}} minutes.
{{if .Sections}}Include these sections as ## headings: {{.Sections}}.{{end}}

Respond with markdown only, starting with a # heading. No JSON, no code fences.`

// Expected section lists mirrored from the reading validator so the
// model is told up front what the completeness check will look for.
var readingSections = map[domain.ContentType]string{
	domain.ContentTypeSummary:   "Scope Map, Quick Reference, TL;DR, Self-Check",
	domain.ContentTypeExplainer: "Overview, Key Ideas, Worked Example, Common Pitfalls",
	domain.ContentTypePractice:  "Warm-Up, Core Problems (each with a Solution:), Challenge",
	domain.ContentTypeReview:    "Recap, Connections, Self-Check",
}

var promptTemplates = template.Must(template.New("structure").Parse(structurePromptText))

func init() {
	template.Must(promptTemplates.New("quiz").Parse(quizPromptText))
	template.Must(promptTemplates.New("flashcards").Parse(flashcardsPromptText))
	template.Must(promptTemplates.New("reading").Parse(readingPromptText))
}

type promptData struct {
	CourseName  string
	Description string
	Topic       *domain.Topic
	ContentType domain.ContentType
	Prefs       *domain.PersonalizationPrefs
	Concepts    string
	Sections    string
}

// BuildStructurePrompt renders the course-outline prompt.
func BuildStructurePrompt(courseName, description string) (string, error) {
	return render("structure", promptData{CourseName: courseName, Description: description})
}

// BuildContentPrompt renders the prompt for one content slot. The
// preferences are clamped defensively so an out-of-range flashcard
// count never reaches the provider.
func BuildContentPrompt(req Request) (string, error) {
	if req.Topic == nil {
		return "", fmt.Errorf("%w: request has no topic", ErrInvalidConfig)
	}
	prefs := req.Prefs
	if prefs == nil {
		prefs = domain.DefaultPrefs()
	}
	clamped := *prefs
	clamped.Clamp()

	data := promptData{
		CourseName:  req.CourseName,
		Topic:       req.Topic,
		ContentType: req.ContentType,
		Prefs:       &clamped,
		Concepts:    topicConcepts(req.Topic),
		Sections:    readingSections[req.ContentType],
	}

	switch req.ContentType {
	case domain.ContentTypeQuiz:
		return render("quiz", data)
	case domain.ContentTypeFlashcards:
		return render("flashcards", data)
	case domain.ContentTypeSummary, domain.ContentTypeExplainer,
		domain.ContentTypePractice, domain.ContentTypeReview:
		return render("reading", data)
	default:
		return "", fmt.Errorf("%w: unknown content type %q", ErrInvalidConfig, req.ContentType)
	}
}

func render(name string, data promptData) (string, error) {
	var buf bytes.Buffer
	if err := promptTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("execute %s prompt template: %w", name, err)
	}
	return buf.String(), nil
}

func topicConcepts(topic *domain.Topic) string {
	var concepts []string
	for _, sub := range topic.Subtopics {
		concepts = append(concepts, sub.Concepts...)
	}
	return strings.Join(concepts, ", ")
}
