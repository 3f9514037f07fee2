// Package api implements the HTTP handlers for the recite API:
// authentication, course and topic management, content slot saves,
// background generation, quiz attempts, flashcard review sessions,
// the study queue, preferences, and data export/import.
//
// Handlers translate between HTTP and the service layer and never
// touch the data tree directly. Internal errors are mapped to status
// codes and sanitized messages in errors.go.
package api
