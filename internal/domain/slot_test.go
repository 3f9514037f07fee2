package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFillPreservesProgress(t *testing.T) {
	t.Parallel()
	now := time.Now()
	slot := NewContentSlot()

	slot.RecordAttempt(NewAttempt(8, 10, 120, now, nil), 70)
	slot.CardSRS("c1", now).Reps = 3
	require.True(t, slot.Completed)

	err := slot.Fill(&MarkdownPayload{SchemaVersion: SchemaMarkdownV1, Markdown: "# New"}, "# New", now)
	require.NoError(t, err)

	assert.Equal(t, SlotStatusFilled, slot.Status)
	assert.Len(t, slot.Attempts, 1, "attempt history survives a refill")
	assert.Equal(t, 80, slot.BestScore)
	assert.True(t, slot.Completed)
	assert.Equal(t, 3, slot.SRS["c1"].Reps, "SRS state survives a refill")
	require.NotNil(t, slot.LastUpdated)
}

func TestPayloadDecoding(t *testing.T) {
	t.Parallel()
	now := time.Now()

	t.Run("empty slot has no payload", func(t *testing.T) {
		t.Parallel()
		_, err := NewContentSlot().Payload()
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("typed accessors reject the wrong payload kind", func(t *testing.T) {
		t.Parallel()
		slot := NewContentSlot()
		require.NoError(t, slot.Fill(
			&MarkdownPayload{SchemaVersion: SchemaMarkdownV1, Markdown: "# Doc"}, "# Doc", now))

		_, err := slot.Quiz()
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = slot.Flashcards()
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("quiz payload round-trips through storage", func(t *testing.T) {
		t.Parallel()
		slot := NewContentSlot()
		payload := &QuizPayload{
			SchemaVersion: SchemaQuizV1,
			Questions: []Question{{
				ID:            "q1",
				Text:          "Pick one",
				Options:       []string{"a", "b", "c", "d"},
				CorrectAnswer: 2,
			}},
		}
		require.NoError(t, slot.Fill(payload, "raw", now))

		decoded, err := slot.Quiz()
		require.NoError(t, err)
		require.Len(t, decoded.Questions, 1)
		assert.Equal(t, 2, decoded.Questions[0].CorrectAnswer)
	})
}

func TestCardSRSLazyCreation(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	slot := NewContentSlot()

	state := slot.CardSRS("c1", now)
	require.NotNil(t, state)
	assert.InDelta(t, 2.5, state.Ease, 0.0001)
	assert.Equal(t, 0, state.Reps)
	assert.Equal(t, DateOnly(now), state.Due, "a fresh card is due immediately")

	again := slot.CardSRS("c1", now.AddDate(0, 0, 5))
	assert.Same(t, state, again, "second lookup returns the stored state")
}

func TestDecodePayloadDispatch(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		raw     string
		want    SchemaVersion
		wantErr bool
	}{
		{
			name: "quiz v1",
			raw:  `{"schema_version": "quiz_mcq_v1", "questions": []}`,
			want: SchemaQuizV1,
		},
		{
			name: "flashcards v1",
			raw:  `{"schema_version": "flashcards_v1", "cards": []}`,
			want: SchemaFlashcardsV1,
		},
		{
			name: "markdown v1",
			raw:  `{"schema_version": "md_v1", "markdown": "# Doc"}`,
			want: SchemaMarkdownV1,
		},
		{
			name: "legacy reading",
			raw:  `{"schema_version": "generic_legacy", "sections": []}`,
			want: SchemaGenericLegacy,
		},
		{
			name:    "unknown tag",
			raw:     `{"schema_version": "quiz_mcq_v9"}`,
			wantErr: true,
		},
		{
			name:    "missing tag",
			raw:     `{"questions": []}`,
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			payload, err := DecodePayload([]byte(tc.raw))
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrParseFailure)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, payload.Version())
		})
	}
}

func TestNewAttemptPercentage(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		score, total, want int
	}{
		{0, 4, 0},
		{1, 3, 33},
		{2, 3, 67},
		{2, 2, 100},
		{0, 0, 0},
	}
	for _, tc := range testCases {
		attempt := NewAttempt(tc.score, tc.total, 10, time.Now(), nil)
		assert.Equal(t, tc.want, attempt.Percentage, "%d/%d", tc.score, tc.total)
	}
}
