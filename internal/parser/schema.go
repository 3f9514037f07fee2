package parser

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/recitelabs/recite-api/internal/domain"
)

// JSON Schemas for the versioned wire formats. Structural checks only:
// the semantic invariants (exactly four options, exactly one correct
// flag) are enforced by the item filter so that a single bad item
// drops out instead of rejecting the whole document.
const quizDocumentSchema = `{
	"type": "object",
	"required": ["schema_version", "items"],
	"properties": {
		"schema_version": {"const": "quiz_mcq_v1"},
		"topic_id": {"type": "string"},
		"title": {"type": "string"},
		"items": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["stem", "options"],
				"properties": {
					"id": {"type": "string"},
					"stem": {"type": "string"},
					"options": {
						"type": "array",
						"items": {
							"type": "object",
							"required": ["text"],
							"properties": {
								"text": {"type": "string"},
								"feedback": {"type": "string"},
								"isCorrect": {"type": "boolean"}
							}
						}
					},
					"difficulty": {"type": "string"},
					"citation_ids": {"type": "array", "items": {"type": "string"}}
				}
			}
		},
		"metadata": {"type": "object"}
	}
}`

const flashcardsDocumentSchema = `{
	"type": "object",
	"required": ["schema_version", "cards"],
	"properties": {
		"schema_version": {"const": "flashcards_v1"},
		"topic_id": {"type": "string"},
		"cards": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["front", "back"],
				"properties": {
					"id": {"type": "string"},
					"front": {"type": "string"},
					"back": {"type": "string"},
					"tags": {"type": "array", "items": {"type": "string"}},
					"citation_ids": {"type": "array", "items": {"type": "string"}}
				}
			}
		},
		"total": {"type": "integer"}
	}
}`

var (
	quizSchema       = gojsonschema.NewStringLoader(quizDocumentSchema)
	flashcardsSchema = gojsonschema.NewStringLoader(flashcardsDocumentSchema)
)

// validateDocument checks a raw document against one of the wire
// schemas and folds any violations into a single parse failure naming
// the expected schema.
func validateDocument(raw json.RawMessage, schema gojsonschema.JSONLoader, name string) error {
	result, err := gojsonschema.Validate(schema, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("%w: %s document is not valid JSON: %v", domain.ErrParseFailure, name, err)
	}
	if result.Valid() {
		return nil
	}
	details := make([]string, 0, len(result.Errors()))
	for _, violation := range result.Errors() {
		details = append(details, violation.String())
	}
	return fmt.Errorf("%w: document does not match %s: %s",
		domain.ErrParseFailure, name, strings.Join(details, "; "))
}
