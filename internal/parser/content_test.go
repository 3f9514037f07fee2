package parser

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recitelabs/recite-api/internal/domain"
)

// quizDoc builds a quiz_mcq_v1 document from option tuples.
func quizDoc(items string) string {
	return fmt.Sprintf(`{"schema_version": "quiz_mcq_v1", "topic_id": "t1", "title": "Test Quiz", "items": [%s]}`, items)
}

const validItem = `{
	"id": "q1",
	"stem": "What is 2+2?",
	"options": [
		{"text": "3", "feedback": "Off by one.", "isCorrect": false},
		{"text": "4", "feedback": "Basic addition.", "isCorrect": true},
		{"text": "5", "feedback": "Off by one.", "isCorrect": false},
		{"text": "22", "feedback": "That is concatenation.", "isCorrect": false}
	],
	"difficulty": "easy",
	"citation_ids": []
}`

func TestParseQuiz(t *testing.T) {
	t.Parallel()

	payload, err := ParseContent(quizDoc(validItem), domain.ContentTypeQuiz)
	require.NoError(t, err)

	quiz, ok := payload.(*domain.QuizPayload)
	require.True(t, ok)
	assert.Equal(t, domain.SchemaQuizV1, quiz.SchemaVersion)
	assert.Equal(t, "Test Quiz", quiz.Title)
	require.Len(t, quiz.Questions, 1)

	q := quiz.Questions[0]
	assert.Equal(t, "What is 2+2?", q.Text)
	assert.Equal(t, 1, q.CorrectAnswer, "correct index is the position of the isCorrect option")
	assert.Equal(t, []string{"3", "4", "5", "22"}, q.Options)
	assert.Equal(t, "Basic addition.", q.Feedback[1])
}

func TestParseQuizItemFilter(t *testing.T) {
	t.Parallel()

	threeOptions := `{"stem": "Short?", "options": [
		{"text": "a", "isCorrect": true},
		{"text": "b", "isCorrect": false},
		{"text": "c", "isCorrect": false}
	]}`
	twoCorrect := `{"stem": "Which?", "options": [
		{"text": "a", "isCorrect": true},
		{"text": "b", "isCorrect": true},
		{"text": "c", "isCorrect": false},
		{"text": "d", "isCorrect": false}
	]}`
	noCorrect := `{"stem": "None?", "options": [
		{"text": "a", "isCorrect": false},
		{"text": "b", "isCorrect": false},
		{"text": "c", "isCorrect": false},
		{"text": "d", "isCorrect": false}
	]}`

	t.Run("bad items drop, good items survive", func(t *testing.T) {
		t.Parallel()
		doc := quizDoc(validItem + "," + threeOptions + "," + twoCorrect + "," + noCorrect)

		payload, err := ParseContent(doc, domain.ContentTypeQuiz)
		require.NoError(t, err)
		quiz := payload.(*domain.QuizPayload)
		require.Len(t, quiz.Questions, 1, "only the valid item survives")
		assert.Equal(t, "What is 2+2?", quiz.Questions[0].Text)
	})

	t.Run("zero survivors rejects the document", func(t *testing.T) {
		t.Parallel()
		doc := quizDoc(threeOptions + "," + twoCorrect)

		_, err := ParseContent(doc, domain.ContentTypeQuiz)
		assert.ErrorIs(t, err, domain.ErrValidationFailure)
	})
}

func TestParseQuizFencedBlock(t *testing.T) {
	t.Parallel()

	raw := "Sure! Here is your quiz:\n\n```json\n" + quizDoc(validItem) + "\n```\n\nLet me know if you need more."
	payload, err := ParseContent(raw, domain.ContentTypeQuiz)
	require.NoError(t, err)
	assert.Len(t, payload.(*domain.QuizPayload).Questions, 1)
}

func TestParseQuizWrongTag(t *testing.T) {
	t.Parallel()

	doc := `{"schema_version": "flashcards_v1", "cards": []}`
	_, err := ParseContent(doc, domain.ContentTypeQuiz)
	assert.ErrorIs(t, err, domain.ErrParseFailure)
}

func TestParseQuizUntaggedItemsArray(t *testing.T) {
	t.Parallel()

	doc := `{"items": [` + validItem + `]}`
	payload, err := ParseContent(doc, domain.ContentTypeQuiz)
	require.NoError(t, err)
	assert.Equal(t, domain.SchemaQuizV1, payload.Version(), "untagged documents are normalized on save")
}

func TestParseFlashcards(t *testing.T) {
	t.Parallel()

	doc := `{"schema_version": "flashcards_v1", "topic_id": "t1", "cards": [
		{"id": "c1", "front": "Term", "back": "Definition", "tags": ["core"], "citation_ids": []},
		{"front": "No ID", "back": "Gets a default"}
	], "total": 2}`

	payload, err := ParseContent(doc, domain.ContentTypeFlashcards)
	require.NoError(t, err)

	cards := payload.(*domain.FlashcardPayload)
	require.Len(t, cards.Cards, 2)
	assert.Equal(t, "c1", cards.Cards[0].ID)
	assert.Equal(t, "c2", cards.Cards[1].ID, "missing IDs default to position")
	assert.NotNil(t, cards.Cards[1].Tags)
	assert.NotNil(t, cards.Cards[1].CitationIDs)
}

func TestParseFlashcardsEmpty(t *testing.T) {
	t.Parallel()

	doc := `{"schema_version": "flashcards_v1", "cards": []}`
	_, err := ParseContent(doc, domain.ContentTypeFlashcards)
	assert.ErrorIs(t, err, domain.ErrValidationFailure)
}

func TestParseMarkdown(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		input   string
		wantErr error
	}{
		{
			name:  "valid markdown",
			input: "# Limits\n\n## Overview\nA limit describes behavior near a point.",
		},
		{
			name:    "JSON rejected for reading types",
			input:   `{"schema_version": "quiz_mcq_v1", "items": []}`,
			wantErr: domain.ErrParseFailure,
		},
		{
			name:    "plain prose without headings rejected",
			input:   "Just some text without any structure to it.",
			wantErr: domain.ErrValidationFailure,
		},
		{
			name:    "blank input",
			input:   "  ",
			wantErr: domain.ErrInputEmpty,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			payload, err := ParseContent(tc.input, domain.ContentTypeExplainer)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			md := payload.(*domain.MarkdownPayload)
			assert.Equal(t, domain.SchemaMarkdownV1, md.SchemaVersion)
			assert.Equal(t, tc.input, md.Markdown, "raw markdown is stored verbatim")
		})
	}
}

func TestParseContentUnknownType(t *testing.T) {
	t.Parallel()

	_, err := ParseContent("# Something", domain.ContentType("podcast"))
	assert.ErrorIs(t, err, domain.ErrValidationFailure)
}

// TestQuizRoundTrip runs the full storage path: parse,
// store, decode, score a perfect answer sheet.
func TestQuizRoundTrip(t *testing.T) {
	t.Parallel()

	payload, err := ParseContent(quizDoc(validItem), domain.ContentTypeQuiz)
	require.NoError(t, err)

	raw, err := domain.EncodePayload(payload)
	require.NoError(t, err)

	decoded, err := domain.DecodePayload(raw)
	require.NoError(t, err)

	quiz := decoded.(*domain.QuizPayload)
	require.Len(t, quiz.Questions, 1)
	assert.Equal(t, 1, quiz.Questions[0].CorrectAnswer)
}
