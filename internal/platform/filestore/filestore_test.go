package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recitelabs/recite-api/internal/domain"
	"github.com/recitelabs/recite-api/internal/store"
)

func TestNewRequiresPath(t *testing.T) {
	t.Parallel()
	_, err := New("")
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()
	s, err := New(filepath.Join(t.TempDir(), "nothing-here.json"))
	require.NoError(t, err)

	_, err = s.Load(context.Background())
	assert.ErrorIs(t, err, store.ErrNoData)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "dir", "data.json")
	s, err := New(path)
	require.NoError(t, err)

	data := domain.NewData()
	course, err := domain.NewCourse("Calculus", "Limits and derivatives")
	require.NoError(t, err)
	topic, err := domain.NewTopic("Limits", "Beginner", "Foundations")
	require.NoError(t, err)
	course.Topics = append(course.Topics, topic)
	data.Courses = append(data.Courses, course)
	data.Prefs.FlashcardsCount = 25

	require.NoError(t, s.Save(ctx, data))

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Courses, 1)
	assert.Equal(t, course.ID, loaded.Courses[0].ID)
	assert.Equal(t, 25, loaded.Prefs.FlashcardsCount)

	reloadedTopic := loaded.Courses[0].Topic(topic.ID)
	require.NotNil(t, reloadedTopic)
	assert.Len(t, reloadedTopic.Content, 6, "all six slots survive the round trip")
}

func TestSaveOverwritesAtomically(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	s, err := New(path)
	require.NoError(t, err)

	first := domain.NewData()
	require.NoError(t, s.Save(ctx, first))

	second := domain.NewData()
	course, err := domain.NewCourse("Updated", "")
	require.NoError(t, err)
	second.Courses = append(second.Courses, course)
	require.NoError(t, s.Save(ctx, second))

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded.Courses, 1)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestLoadCorruptFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s, err := New(path)
	require.NoError(t, err)
	_, err = s.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrStorageFailure, "corruption is loud, not ErrNoData")
}
