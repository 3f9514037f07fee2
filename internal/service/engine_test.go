package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recitelabs/recite-api/internal/domain"
)

func TestEngineFreshStart(t *testing.T) {
	t.Parallel()
	engine, _ := newTestEngine(t)

	err := engine.View(func(data *domain.Data) error {
		assert.Empty(t, data.Courses)
		require.NotNil(t, data.Prefs)
		assert.Equal(t, domain.DefaultPrefs().FlashcardsCount, data.Prefs.FlashcardsCount)
		return nil
	})
	require.NoError(t, err)
}

func TestEngineUpdatePersists(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	engine, dataStore := newTestEngine(t)

	course, err := domain.NewCourse("Persisted", "")
	require.NoError(t, err)
	err = engine.Update(ctx, func(data *domain.Data) error {
		data.Courses = append(data.Courses, course)
		return nil
	})
	require.NoError(t, err)

	// Reload straight from the store, bypassing the engine.
	loaded, err := dataStore.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Courses, 1)
	assert.Equal(t, "Persisted", loaded.Courses[0].Name)
}

func TestEngineUpdateErrorSavesNothing(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	engine, dataStore := newTestEngine(t)

	wantErr := domain.ErrValidationFailure
	err := engine.Update(ctx, func(data *domain.Data) error {
		return wantErr
	})
	assert.ErrorIs(t, err, wantErr)

	_, err = dataStore.Load(ctx)
	assert.Error(t, err, "nothing was checkpointed")
}

func TestEngineRecoversLegacySlots(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	// Build a tree whose quiz slot has undecodable content but a
	// legacy-format raw response, then hand it to a fresh engine.
	course, err := domain.NewCourse("Old Data", "")
	require.NoError(t, err)
	topic, err := domain.NewTopic("Limits", "", "")
	require.NoError(t, err)
	course.Topics = append(course.Topics, topic)

	slot := topic.Slot(domain.ContentTypeQuiz)
	slot.Status = domain.SlotStatusFilled
	slot.Content = []byte(`{"no_schema_version": true}`)
	slot.RawResponse = "What is 2+2?\nA) 3\nB) 4 ## CORRECT\nC) 5\nD) 6"

	data := domain.NewData()
	data.Courses = append(data.Courses, course)

	engine, dataStore := newTestEngine(t)
	require.NoError(t, dataStore.Save(ctx, data))
	engine, err = NewEngine(ctx, dataStore, nil)
	require.NoError(t, err)

	err = engine.View(func(d *domain.Data) error {
		recovered := d.Courses[0].Topics[0].Slot(domain.ContentTypeQuiz)
		payload, err := recovered.Quiz()
		require.NoError(t, err, "legacy content decodes after recovery")
		require.Len(t, payload.Questions, 1)
		assert.Equal(t, 1, payload.Questions[0].CorrectAnswer)
		return nil
	})
	require.NoError(t, err)
}

func TestEngineEmptiesUnrecoverableSlots(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	course, err := domain.NewCourse("Broken Data", "")
	require.NoError(t, err)
	topic, err := domain.NewTopic("Limits", "", "")
	require.NoError(t, err)
	course.Topics = append(course.Topics, topic)

	slot := topic.Slot(domain.ContentTypeQuiz)
	slot.Status = domain.SlotStatusFilled
	slot.Content = []byte(`{"no_schema_version": true}`)
	slot.RawResponse = "nothing resembling a quiz"
	now := time.Now()
	slot.RecordAttempt(domain.NewAttempt(2, 2, 30, now, nil), 70)

	data := domain.NewData()
	data.Courses = append(data.Courses, course)

	_, dataStore := newTestEngine(t)
	require.NoError(t, dataStore.Save(ctx, data))
	engine, err := NewEngine(ctx, dataStore, nil)
	require.NoError(t, err)

	err = engine.View(func(d *domain.Data) error {
		cleared := d.Courses[0].Topics[0].Slot(domain.ContentTypeQuiz)
		assert.Equal(t, domain.SlotStatusEmpty, cleared.Status)
		assert.Nil(t, cleared.Content)
		assert.Len(t, cleared.Attempts, 1, "history survives even when content cannot be recovered")
		return nil
	})
	require.NoError(t, err)
}
