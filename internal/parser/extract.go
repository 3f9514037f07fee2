// Package parser turns semi-structured AI responses into typed content
// records: course structure outlines, quiz and flashcard JSON, and
// markdown reading documents. Decoding is discriminated on the payload's
// schema_version tag; legacy text formats are only ever read, never
// written.
package parser

import (
	"encoding/json"
	"regexp"
	"strings"
)

// fencedBlock matches the first fenced code block, optionally tagged as
// json, capturing its interior.
var fencedBlock = regexp.MustCompile("(?s)```(?:json)?\\s*\\n(.*?)```")

// ExtractJSON pulls a JSON document out of free-form text. It prefers
// the interior of the first fenced block; when no block is present it
// tries the trimmed text as a whole. The ok result is false when no
// parseable JSON was found; this function never fails hard on
// malformed input.
func ExtractJSON(text string) (json.RawMessage, bool) {
	candidate := strings.TrimSpace(text)
	if m := fencedBlock.FindStringSubmatch(text); m != nil {
		candidate = strings.TrimSpace(m[1])
	}
	if candidate == "" {
		return nil, false
	}
	var probe any
	if err := json.Unmarshal([]byte(candidate), &probe); err != nil {
		return nil, false
	}
	return json.RawMessage(candidate), true
}
