package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recitelabs/recite-api/internal/domain"
)

func TestCreateAndListCourses(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	engine, _ := newTestEngine(t)
	svc := NewContentService(engine, nil)

	_, err := svc.CreateCourse(ctx, "", "")
	assert.ErrorIs(t, err, domain.ErrValidationFailure)

	created, err := svc.CreateCourse(ctx, "Calculus", "desc")
	require.NoError(t, err)

	courses, err := svc.ListCourses(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, created.ID, courses[0].ID)

	fetched, err := svc.GetCourse(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Calculus", fetched.Name)

	_, err = svc.GetCourse(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, svc.DeleteCourse(ctx, created.ID))
	assert.ErrorIs(t, svc.DeleteCourse(ctx, created.ID), domain.ErrNotFound)
}

func TestAnalyzeStructure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	engine, _ := newTestEngine(t)
	svc := NewContentService(engine, nil)

	course, topic := seedCourse(t, svc)
	assert.Equal(t, "Limits", topic.Name)

	fetched, err := svc.GetCourse(ctx, course.ID)
	require.NoError(t, err)
	assert.True(t, fetched.StructureAnalyzed)

	// A rejected outline leaves the existing topics untouched.
	_, err = svc.AnalyzeStructure(ctx, course.ID, "no structure here at all")
	assert.ErrorIs(t, err, domain.ErrParseFailure)

	fetched, err = svc.GetCourse(ctx, course.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Topics, 1)
	assert.Equal(t, topic.ID, fetched.Topics[0].ID)
}

func TestSaveContent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	engine, _ := newTestEngine(t)
	svc := NewContentService(engine, nil)
	course, topic := seedCourse(t, svc)

	t.Run("quiz save fills the slot", func(t *testing.T) {
		payload, warnings, err := svc.SaveContent(ctx, course.ID, topic.ID, domain.ContentTypeQuiz, quizResponse)
		require.NoError(t, err)
		assert.Empty(t, warnings)
		assert.Equal(t, domain.SchemaQuizV1, payload.Version())

		slot, err := svc.GetSlot(ctx, course.ID, topic.ID, domain.ContentTypeQuiz)
		require.NoError(t, err)
		assert.Equal(t, domain.SlotStatusFilled, slot.Status)
		assert.Equal(t, quizResponse, slot.RawResponse, "raw response is kept verbatim")
	})

	t.Run("incomplete reading content saves with warnings", func(t *testing.T) {
		_, warnings, err := svc.SaveContent(ctx, course.ID, topic.ID, domain.ContentTypeExplainer,
			"# Limits\n## Overview\nJust an overview.")
		require.NoError(t, err)
		assert.Equal(t, []string{"Key Ideas", "Worked Example", "Common Pitfalls"}, warnings)

		slot, err := svc.GetSlot(ctx, course.ID, topic.ID, domain.ContentTypeExplainer)
		require.NoError(t, err)
		assert.Equal(t, domain.SlotStatusFilled, slot.Status, "warnings never block the save")
	})

	t.Run("parse failure leaves the slot untouched", func(t *testing.T) {
		_, _, err := svc.SaveContent(ctx, course.ID, topic.ID, domain.ContentTypeFlashcards, "not json at all")
		assert.ErrorIs(t, err, domain.ErrParseFailure)

		slot, err := svc.GetSlot(ctx, course.ID, topic.ID, domain.ContentTypeFlashcards)
		require.NoError(t, err)
		assert.Equal(t, domain.SlotStatusEmpty, slot.Status)
	})

	t.Run("unknown slot key rejected", func(t *testing.T) {
		_, _, err := svc.SaveContent(ctx, course.ID, topic.ID, domain.ContentType("podcast"), "# Doc")
		assert.ErrorIs(t, err, domain.ErrValidationFailure)
	})
}

func TestSetCompletedIsTypeLocal(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	engine, _ := newTestEngine(t)
	svc := NewContentService(engine, nil)
	course, topic := seedCourse(t, svc)

	require.NoError(t, svc.SetCompleted(ctx, course.ID, topic.ID, domain.ContentTypeSummary, true))

	summary, err := svc.GetSlot(ctx, course.ID, topic.ID, domain.ContentTypeSummary)
	require.NoError(t, err)
	assert.True(t, summary.Completed)

	for _, other := range domain.ContentTypes() {
		if other == domain.ContentTypeSummary {
			continue
		}
		slot, err := svc.GetSlot(ctx, course.ID, topic.ID, other)
		require.NoError(t, err)
		assert.False(t, slot.Completed, "completion of %s must not leak to %s",
			domain.ContentTypeSummary, other)
	}
}

func TestGenerationRequestSnapshotsPrefs(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	engine, _ := newTestEngine(t)
	svc := NewContentService(engine, nil)
	prefsSvc := NewPrefsService(engine, nil)
	course, topic := seedCourse(t, svc)

	req, err := svc.GenerationRequest(ctx, course.ID, topic.ID, domain.ContentTypeFlashcards)
	require.NoError(t, err)
	assert.Equal(t, "Calculus", req.CourseName)
	assert.Equal(t, topic.ID, req.Topic.ID)
	firstCount := req.Prefs.FlashcardsCount

	// Changing prefs after the snapshot does not affect the request.
	prefs, err := prefsSvc.Get(ctx)
	require.NoError(t, err)
	prefs.FlashcardsCount = firstCount + 5
	_, err = prefsSvc.Update(ctx, prefs)
	require.NoError(t, err)
	assert.Equal(t, firstCount, req.Prefs.FlashcardsCount)
}

func TestExportImportRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	engine, _ := newTestEngine(t)
	svc := NewContentService(engine, nil)
	course, topic := seedCourse(t, svc)

	_, _, err := svc.SaveContent(ctx, course.ID, topic.ID, domain.ContentTypeQuiz, quizResponse)
	require.NoError(t, err)

	exported, err := svc.Export(ctx)
	require.NoError(t, err)
	assert.True(t, json.Valid(exported))

	// Import into a fresh engine.
	engine2, _ := newTestEngine(t)
	svc2 := NewContentService(engine2, nil)
	require.NoError(t, svc2.Import(ctx, exported))

	courses, err := svc2.ListCourses(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, course.ID, courses[0].ID)

	slot, err := svc2.GetSlot(ctx, course.ID, topic.ID, domain.ContentTypeQuiz)
	require.NoError(t, err)
	assert.Equal(t, domain.SlotStatusFilled, slot.Status)
}

func TestImportValidation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	engine, _ := newTestEngine(t)
	svc := NewContentService(engine, nil)
	seedCourse(t, svc)

	t.Run("not JSON", func(t *testing.T) {
		err := svc.Import(ctx, []byte("not json"))
		assert.ErrorIs(t, err, domain.ErrParseFailure)
	})

	t.Run("missing courses key", func(t *testing.T) {
		err := svc.Import(ctx, []byte(`{"prefs": {}}`))
		assert.ErrorIs(t, err, domain.ErrValidationFailure)
	})

	t.Run("rejected import changes nothing", func(t *testing.T) {
		_ = svc.Import(ctx, []byte(`{"wrong": true}`))
		courses, err := svc.ListCourses(ctx)
		require.NoError(t, err)
		assert.Len(t, courses, 1)
	})

	t.Run("imported prefs are clamped", func(t *testing.T) {
		err := svc.Import(ctx, []byte(`{"courses": [], "prefs": {"flashcards_count": 500}}`))
		require.NoError(t, err)

		prefs, err := NewPrefsService(engine, nil).Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.MaxFlashcardsCount, prefs.FlashcardsCount)
	})
}
