package reading

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/recitelabs/recite-api/internal/domain"
)

func TestMissingSections(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		contentType domain.ContentType
		markdown    string
		missing     []string
	}{
		{
			name:        "complete explainer",
			contentType: domain.ContentTypeExplainer,
			markdown: `# Limits
## Overview
## Key Ideas
## Worked Example
## Common Pitfalls`,
			missing: nil,
		},
		{
			name:        "explainer missing two sections",
			contentType: domain.ContentTypeExplainer,
			markdown: `# Limits
## Overview
## Key Ideas`,
			missing: []string{"Worked Example", "Common Pitfalls"},
		},
		{
			name:        "heading match is case-insensitive and partial",
			contentType: domain.ContentTypeReview,
			markdown: `# Review
## Quick recap of the unit
## CONNECTIONS
### Self-check questions`,
			missing: nil,
		},
		{
			name:        "practice requires a solution marker",
			contentType: domain.ContentTypePractice,
			markdown: `# Practice
## Warm-Up
## Core Problems
## Challenge`,
			missing: []string{"Solution:"},
		},
		{
			name:        "practice with solutions passes",
			contentType: domain.ContentTypePractice,
			markdown: `# Practice
## Warm-Up
## Core Problems
Problem 1.
Solution: add the exponents.
## Challenge`,
			missing: nil,
		},
		{
			name:        "quiz content has no expectations",
			contentType: domain.ContentTypeQuiz,
			markdown:    "anything",
			missing:     nil,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.missing, MissingSections(tc.markdown, tc.contentType))
		})
	}
}

func TestFormatWarnings(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", FormatWarnings(nil))
	assert.Equal(t,
		"possibly incomplete, missing: Overview",
		FormatWarnings([]string{"Overview"}))
	assert.Equal(t,
		"possibly incomplete, missing: A, B, C +2 more",
		FormatWarnings([]string{"A", "B", "C", "D", "E"}))
}
