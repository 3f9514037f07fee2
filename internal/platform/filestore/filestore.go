// Package filestore persists the data tree as a single JSON document
// on local disk. This is the default store for a single-user local
// deployment.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/recitelabs/recite-api/internal/domain"
	"github.com/recitelabs/recite-api/internal/store"
)

// Store implements store.DataStore on a JSON file.
type Store struct {
	path string
}

// New creates a file store writing to the given path. Parent
// directories are created on the first save.
func New(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("file store path cannot be empty")
	}
	return &Store{path: path}, nil
}

// Load reads and decodes the document. A missing file is ErrNoData; a
// corrupt file is a storage failure rather than silent data loss.
func (s *Store) Load(ctx context.Context) (*domain.Data, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, store.ErrNoData
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", domain.ErrStorageFailure, s.path, err)
	}

	var data domain.Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", domain.ErrStorageFailure, s.path, err)
	}
	return &data, nil
}

// Save writes the document atomically: encode to a temp file in the
// same directory, then rename over the target. A crash mid-save never
// leaves a half-written tree behind.
func (s *Store) Save(ctx context.Context, data *domain.Data) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode data tree: %v", domain.ErrStorageFailure, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: create %s: %v", domain.ErrStorageFailure, dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %v", domain.ErrStorageFailure, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: write %s: %v", domain.ErrStorageFailure, tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %v", domain.ErrStorageFailure, tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("%w: rename to %s: %v", domain.ErrStorageFailure, s.path, err)
	}
	return nil
}
