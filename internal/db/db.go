// Package db provides PostgreSQL persistence for fix runs and their
// artifacts. Persistence is best-effort throughout the pipeline: a missing
// database degrades to in-memory operation, it never fails a fix.
package db

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

// Artifact step names used by the pipeline.
const (
	StepOriginalText = "original_text"
	StepImprovedText = "improved_text"
	StepScoreReport  = "score_report"
	StepResultPDF    = "result_pdf"
)

// Run is one recorded fix run.
type Run struct {
	ID                uuid.UUID  `json:"id"`
	Status            string     `json:"status"`
	ATSScore          *float64   `json:"ats_score,omitempty"`
	Tier              *string    `json:"tier,omitempty"`
	PreservationRatio *float64   `json:"preservation_ratio,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
}

// Store wraps a PostgreSQL connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool and applies the schema.
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// CreateRun records a new fix run and returns its ID.
func (s *Store) CreateRun(ctx context.Context, atsScore float64) (uuid.UUID, error) {
	var id uuid.UUID
	err := s.pool.QueryRow(ctx,
		`INSERT INTO fix_runs (ats_score, status) VALUES ($1, 'running') RETURNING id`,
		atsScore,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create run: %w", err)
	}
	return id, nil
}

// CompleteRun marks a run finished with its outcome metrics.
func (s *Store) CompleteRun(ctx context.Context, runID uuid.UUID, status, tier string, preservationRatio float64) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE fix_runs
		 SET status = $1, tier = $2, preservation_ratio = $3, completed_at = NOW()
		 WHERE id = $4`,
		status, tier, preservationRatio, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	return nil
}

// SaveTextArtifact stores a text artifact for a run, replacing any previous
// artifact for the same step.
func (s *Store) SaveTextArtifact(ctx context.Context, runID uuid.UUID, step, text string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO artifacts (run_id, step, text_content)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (run_id, step) DO UPDATE SET text_content = $3, created_at = NOW()`,
		runID, step, text,
	)
	if err != nil {
		return fmt.Errorf("failed to save text artifact %s: %w", step, err)
	}
	return nil
}

// SaveBlobArtifact stores a binary artifact (the result PDF) for a run.
func (s *Store) SaveBlobArtifact(ctx context.Context, runID uuid.UUID, step string, blob []byte) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO artifacts (run_id, step, blob_content)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (run_id, step) DO UPDATE SET blob_content = $3, created_at = NOW()`,
		runID, step, blob,
	)
	if err != nil {
		return fmt.Errorf("failed to save blob artifact %s: %w", step, err)
	}
	return nil
}

// GetTextArtifact retrieves a text artifact; empty string when absent.
func (s *Store) GetTextArtifact(ctx context.Context, runID uuid.UUID, step string) (string, error) {
	var text *string
	err := s.pool.QueryRow(ctx,
		`SELECT text_content FROM artifacts WHERE run_id = $1 AND step = $2`,
		runID, step,
	).Scan(&text)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("failed to get text artifact %s: %w", step, err)
	}
	if text == nil {
		return "", nil
	}
	return *text, nil
}

// GetBlobArtifact retrieves a binary artifact; nil when absent.
func (s *Store) GetBlobArtifact(ctx context.Context, runID uuid.UUID, step string) ([]byte, error) {
	var blob []byte
	err := s.pool.QueryRow(ctx,
		`SELECT blob_content FROM artifacts WHERE run_id = $1 AND step = $2`,
		runID, step,
	).Scan(&blob)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get blob artifact %s: %w", step, err)
	}
	return blob, nil
}

// GetRun retrieves a run by ID; nil when absent.
func (s *Store) GetRun(ctx context.Context, runID uuid.UUID) (*Run, error) {
	var run Run
	err := s.pool.QueryRow(ctx,
		`SELECT id, status, ats_score, tier, preservation_ratio, created_at, completed_at
		 FROM fix_runs WHERE id = $1`,
		runID,
	).Scan(&run.ID, &run.Status, &run.ATSScore, &run.Tier, &run.PreservationRatio, &run.CreatedAt, &run.CompletedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &run, nil
}

// ListRuns retrieves recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, status, ats_score, tier, preservation_ratio, created_at, completed_at
		 FROM fix_runs ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.Status, &run.ATSScore, &run.Tier, &run.PreservationRatio, &run.CreatedAt, &run.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, nil
}
