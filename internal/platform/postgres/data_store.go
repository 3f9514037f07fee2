// Package postgres persists the data tree as a single JSONB document
// in a PostgreSQL table. Heavier than the file store, but gives the
// deployment real durability and observability.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver
	"github.com/pressly/goose/v3"

	"github.com/recitelabs/recite-api/internal/domain"
	"github.com/recitelabs/recite-api/internal/store"
)

// documentName keys the single-user document in the datasets table.
const documentName = "default"

// Store implements store.DataStore on PostgreSQL.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open connects to the database, verifies the connection, and runs any
// pending migrations.
func Open(ctx context.Context, url string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("%w: open database: %v", domain.ErrStorageFailure, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: ping database: %v", domain.ErrStorageFailure, err)
	}

	if err := runMigrations(db, logger); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, logger: logger.With(slog.String("component", "postgres_store"))}, nil
}

// runMigrations applies the embedded goose migrations.
func runMigrations(db *sql.DB, logger *slog.Logger) error {
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("%w: set migration dialect: %v", domain.ErrStorageFailure, err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("%w: run migrations: %v", domain.ErrStorageFailure, err)
	}
	logger.Info("database migrations up to date")
	return nil
}

// Load reads and decodes the document. An absent row is ErrNoData.
func (s *Store) Load(ctx context.Context) (*domain.Data, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx,
		"SELECT document FROM datasets WHERE name = $1", documentName,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNoData
	}
	if err != nil {
		return nil, fmt.Errorf("%w: select dataset: %v", domain.ErrStorageFailure, err)
	}

	var data domain.Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("%w: decode dataset: %v", domain.ErrStorageFailure, err)
	}
	return &data, nil
}

// Save upserts the document.
func (s *Store) Save(ctx context.Context, data *domain.Data) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("%w: encode data tree: %v", domain.ErrStorageFailure, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO datasets (name, document, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name)
		DO UPDATE SET document = EXCLUDED.document, updated_at = now()`,
		documentName, raw,
	)
	if err != nil {
		return fmt.Errorf("%w: upsert dataset: %v", domain.ErrStorageFailure, err)
	}
	return nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}
