// Package store provides optional PostgreSQL persistence of batch runs and
// their records, for auditing scrapes after the CSV has been shipped.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/profile-harvester/internal/types"
)

// Store wraps a PostgreSQL connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool and makes sure the schema exists.
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) ensureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS scrape_runs (
			id UUID PRIMARY KEY,
			input_path TEXT NOT NULL,
			target_count INT NOT NULL,
			status TEXT NOT NULL,
			started_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			completed_at TIMESTAMPTZ
		);

		CREATE TABLE IF NOT EXISTS scrape_records (
			run_id UUID NOT NULL REFERENCES scrape_runs(id),
			position INT NOT NULL,
			target TEXT NOT NULL,
			status TEXT NOT NULL,
			record JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (run_id, position)
		);
	`)
	return err
}

// CreateRun registers a batch run under the caller's run ID so log lines and
// stored rows correlate.
func (s *Store) CreateRun(ctx context.Context, runID uuid.UUID, inputPath string, targetCount int) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO scrape_runs (id, input_path, target_count, status)
		 VALUES ($1, $2, $3, 'running')`,
		runID, inputPath, targetCount,
	)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}
	return nil
}

// CompleteRun marks a batch run finished with the given status.
func (s *Store) CompleteRun(ctx context.Context, runID uuid.UUID, status string) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE scrape_runs SET status = $1, completed_at = NOW() WHERE id = $2`,
		status, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	return nil
}

// SaveRecord stores one profile record at its input position. Re-saving the
// same position overwrites the earlier row.
func (s *Store) SaveRecord(ctx context.Context, runID uuid.UUID, position int, rec types.ProfileRecord) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal record for %s: %w", rec.Target, err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO scrape_records (run_id, position, target, status, record)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (run_id, position) DO UPDATE SET target = $3, status = $4, record = $5, created_at = NOW()`,
		runID, position, rec.Target, string(rec.Status), payload,
	)
	if err != nil {
		return fmt.Errorf("failed to save record for %s: %w", rec.Target, err)
	}
	return nil
}

// GetRecord retrieves the stored record at position, or nil when absent.
func (s *Store) GetRecord(ctx context.Context, runID uuid.UUID, position int) (*types.ProfileRecord, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx,
		`SELECT record FROM scrape_records WHERE run_id = $1 AND position = $2`,
		runID, position,
	).Scan(&payload)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get record at %d: %w", position, err)
	}

	var rec types.ProfileRecord
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record at %d: %w", position, err)
	}
	return &rec, nil
}
