// Package task provides background processing for content-generation
// jobs. A single worker drains an in-memory queue, which also
// serializes every data-tree mutation the tasks perform.
package task

import (
	"context"

	"github.com/google/uuid"
)

// Status represents the current state of a task.
type Status string

// Possible task status values
const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Task type constants
const (
	// TypeContentGeneration generates content for one topic slot.
	TypeContentGeneration = "content_generation"

	// TypeStructureAnalysis generates and installs a course outline.
	TypeStructureAnalysis = "structure_analysis"
)

// Task represents a unit of background work.
type Task interface {
	// ID returns the task's unique identifier.
	ID() uuid.UUID

	// Type returns the task type identifier.
	Type() string

	// Execute runs the task logic.
	Execute(ctx context.Context) error
}
