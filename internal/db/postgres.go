package db

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/resume-tailor/internal/logger"
)

const postgresSchema = `CREATE TABLE IF NOT EXISTS runs (
	id            UUID PRIMARY KEY,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	profile_name  TEXT NOT NULL,
	job_source    TEXT NOT NULL,
	job_hash      TEXT NOT NULL,
	keyword_count INTEGER NOT NULL DEFAULT 0,
	top_category  TEXT NOT NULL DEFAULT '',
	summary       TEXT NOT NULL DEFAULT '',
	resume        JSONB
);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at DESC);`

// PostgresStore keeps run history in PostgreSQL
type PostgresStore struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// OpenPostgres establishes a connection pool and creates the runs table if needed.
func OpenPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, &StoreError{Op: "open", Message: "failed to connect to database", Cause: err}
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, &StoreError{Op: "open", Message: "failed to ping database", Cause: err}
	}

	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, &StoreError{Op: "open", Message: "failed to initialise schema", Cause: err}
	}

	logger.Debug().Msg("connected to postgres run store")
	return &PostgresStore{pool: pool, now: time.Now}, nil
}

// SaveRun inserts run, assigning an ID and timestamp when missing.
func (s *PostgresStore) SaveRun(ctx context.Context, run *Run) error {
	prepare(run, s.now())

	var resume []byte
	if len(run.ResumeJSON) > 0 {
		resume = run.ResumeJSON
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO runs (id, created_at, profile_name, job_source, job_hash, keyword_count, top_category, summary, resume)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		run.ID, run.CreatedAt, run.ProfileName, run.JobSource, run.JobHash,
		run.KeywordCount, run.TopCategory, run.Summary, resume,
	)
	if err != nil {
		return &StoreError{Op: "save", Message: "failed to insert run " + run.ID.String(), Cause: err}
	}
	return nil
}

// ListRuns retrieves recent runs without their resume bodies
func (s *PostgresStore) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, created_at, profile_name, job_source, job_hash, keyword_count, top_category, summary
		 FROM runs ORDER BY created_at DESC LIMIT $1`,
		normalizeLimit(limit),
	)
	if err != nil {
		return nil, &StoreError{Op: "list", Message: "failed to query runs", Cause: err}
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.CreatedAt, &run.ProfileName, &run.JobSource, &run.JobHash,
			&run.KeywordCount, &run.TopCategory, &run.Summary); err != nil {
			return nil, &StoreError{Op: "list", Message: "failed to scan run", Cause: err}
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreError{Op: "list", Message: "failed to iterate runs", Cause: err}
	}
	return runs, nil
}

// GetRun retrieves a run by ID
func (s *PostgresStore) GetRun(ctx context.Context, id uuid.UUID) (*Run, error) {
	var run Run
	var resume []byte
	err := s.pool.QueryRow(ctx,
		`SELECT id, created_at, profile_name, job_source, job_hash, keyword_count, top_category, summary, resume
		 FROM runs WHERE id = $1`,
		id,
	).Scan(&run.ID, &run.CreatedAt, &run.ProfileName, &run.JobSource, &run.JobHash,
		&run.KeywordCount, &run.TopCategory, &run.Summary, &resume)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, &StoreError{Op: "get", Message: "failed to get run " + id.String(), Cause: err}
	}
	if len(resume) > 0 {
		run.ResumeJSON = resume
	}
	return &run, nil
}

// Close closes the connection pool
func (s *PostgresStore) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

var _ Store = (*PostgresStore)(nil)
