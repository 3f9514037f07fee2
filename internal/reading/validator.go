// Package reading provides a heuristic completeness check for markdown
// reading content. It is advisory only: a missing section produces a
// warning for the user, never a rejected save.
package reading

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/recitelabs/recite-api/internal/domain"
)

// Expected heading phrases per reading content type. Matching is
// case-insensitive against level 2-4 headings.
var expectedSections = map[domain.ContentType][]string{
	domain.ContentTypeSummary:   {"Scope Map", "Quick Reference", "TL;DR", "Self-Check"},
	domain.ContentTypeExplainer: {"Overview", "Key Ideas", "Worked Example", "Common Pitfalls"},
	domain.ContentTypePractice:  {"Warm-Up", "Core Problems", "Challenge"},
	domain.ContentTypeReview:    {"Recap", "Connections", "Self-Check"},
}

// solutionMarker counts worked solutions in practice content.
const solutionMarker = "solution:"

var validatorHeading = regexp.MustCompile(`^#{2,4}\s+(.+)$`)

// MissingSections returns the expected section names absent from the
// markdown, in their canonical order. Practice content additionally
// reports a missing "Solution:" when no literal solution marker occurs
// anywhere in the text. Content types with no expectations return nil.
func MissingSections(markdown string, contentType domain.ContentType) []string {
	expected, ok := expectedSections[contentType]
	if !ok {
		return nil
	}

	headings := collectHeadings(markdown)
	var missing []string
	for _, section := range expected {
		if !containsHeading(headings, section) {
			missing = append(missing, section)
		}
	}

	if contentType == domain.ContentTypePractice &&
		strings.Count(strings.ToLower(markdown), solutionMarker) == 0 {
		missing = append(missing, "Solution:")
	}
	return missing
}

// FormatWarnings renders at most three missing items plus a "+N more"
// suffix, the form surfaced to the user as a non-blocking warning.
// Returns "" when nothing is missing.
func FormatWarnings(missing []string) string {
	if len(missing) == 0 {
		return ""
	}
	shown := missing
	if len(shown) > 3 {
		shown = shown[:3]
	}
	warning := "possibly incomplete, missing: " + strings.Join(shown, ", ")
	if extra := len(missing) - len(shown); extra > 0 {
		warning += fmt.Sprintf(" +%d more", extra)
	}
	return warning
}

func collectHeadings(markdown string) []string {
	var headings []string
	for _, line := range strings.Split(markdown, "\n") {
		if m := validatorHeading.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			headings = append(headings, strings.ToLower(strings.TrimSpace(m[1])))
		}
	}
	return headings
}

func containsHeading(headings []string, phrase string) bool {
	phrase = strings.ToLower(phrase)
	for _, h := range headings {
		if strings.Contains(h, phrase) {
			return true
		}
	}
	return false
}
