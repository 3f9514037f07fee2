// Package redisstore persists the data tree as a single JSON document
// in Redis, for deployments that already run one.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/recitelabs/recite-api/internal/domain"
	"github.com/recitelabs/recite-api/internal/store"
)

// defaultKey is the Redis key holding the document.
const defaultKey = "recite:data"

// Store implements store.DataStore on a Redis string key.
type Store struct {
	client *redis.Client
	key    string
}

// New creates a Redis store from a redis:// URL.
func New(url string) (*Store, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	return &Store{
		client: redis.NewClient(opts),
		key:    defaultKey,
	}, nil
}

// Ping verifies connectivity at startup.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: redis ping: %v", domain.ErrStorageFailure, err)
	}
	return nil
}

// Load reads and decodes the document. A missing key is ErrNoData.
func (s *Store) Load(ctx context.Context) (*domain.Data, error) {
	raw, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, store.ErrNoData
	}
	if err != nil {
		return nil, fmt.Errorf("%w: redis get %s: %v", domain.ErrStorageFailure, s.key, err)
	}

	var data domain.Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", domain.ErrStorageFailure, s.key, err)
	}
	return &data, nil
}

// Save writes the document, replacing any previous value.
func (s *Store) Save(ctx context.Context, data *domain.Data) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("%w: encode data tree: %v", domain.ErrStorageFailure, err)
	}
	if err := s.client.Set(ctx, s.key, raw, 0).Err(); err != nil {
		return fmt.Errorf("%w: redis set %s: %v", domain.ErrStorageFailure, s.key, err)
	}
	return nil
}

// Close releases the client connection pool.
func (s *Store) Close() error {
	return s.client.Close()
}
