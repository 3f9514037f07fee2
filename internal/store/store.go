// Package store defines the persistence contract for the data tree.
// The interface abstracts the underlying storage mechanism so the
// engine stays independent of the chosen backend (file, Redis, or
// Postgres document store).
package store

import (
	"context"
	"errors"

	"github.com/recitelabs/recite-api/internal/domain"
)

// Common store errors used across all implementations.
var (
	// ErrNoData is returned by Load when nothing has been saved yet.
	// Callers start from a fresh default tree in that case.
	ErrNoData = errors.New("no saved data")
)

// DataStore persists the full data tree as one document. The engine
// invokes Save synchronously after every state-mutating operation that
// must survive a reload: content save, quiz finish, flashcard grade,
// preference change.
type DataStore interface {
	// Load returns the saved tree, or ErrNoData when the store is empty.
	Load(ctx context.Context) (*domain.Data, error)

	// Save writes the tree, replacing any previous document.
	Save(ctx context.Context, data *domain.Data) error
}
