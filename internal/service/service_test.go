package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/recitelabs/recite-api/internal/domain"
	"github.com/recitelabs/recite-api/internal/platform/filestore"
	"github.com/recitelabs/recite-api/internal/store"
)

// newTestEngine builds an engine over a file store in a temp dir.
func newTestEngine(t *testing.T) (*Engine, store.DataStore) {
	t.Helper()
	fs, err := filestore.New(filepath.Join(t.TempDir(), "data.json"))
	require.NoError(t, err)
	engine, err := NewEngine(context.Background(), fs, nil)
	require.NoError(t, err)
	return engine, fs
}

// seedCourse creates a course with one analyzed topic and returns both.
func seedCourse(t *testing.T, svc *ContentService) (*domain.Course, *domain.Topic) {
	t.Helper()
	ctx := context.Background()

	course, err := svc.CreateCourse(ctx, "Calculus", "Single-variable calculus")
	require.NoError(t, err)

	topics, err := svc.AnalyzeStructure(ctx, course.ID,
		"TOPIC_START: Limits ## DIFFICULTY: Beginner ## CATEGORY: Foundations\n"+
			"SUBTOPIC: Epsilon-Delta ## CONCEPTS: limits, epsilon")
	require.NoError(t, err)
	require.Len(t, topics, 1)
	return course, topics[0]
}

const quizResponse = `{
	"schema_version": "quiz_mcq_v1",
	"title": "Limits Quiz",
	"items": [
		{"stem": "Q1?", "options": [
			{"text": "a", "isCorrect": true},
			{"text": "b", "isCorrect": false},
			{"text": "c", "isCorrect": false},
			{"text": "d", "isCorrect": false}
		]},
		{"stem": "Q2?", "options": [
			{"text": "a", "isCorrect": false},
			{"text": "b", "isCorrect": true},
			{"text": "c", "isCorrect": false},
			{"text": "d", "isCorrect": false}
		]}
	]
}`

const flashcardsResponse = `{
	"schema_version": "flashcards_v1",
	"cards": [
		{"id": "c1", "front": "limit", "back": "value approached"},
		{"id": "c2", "front": "continuity", "back": "no jumps"},
		{"id": "c3", "front": "derivative", "back": "rate of change"}
	],
	"total": 3
}`

func intPtr(v int) *int { return &v }
