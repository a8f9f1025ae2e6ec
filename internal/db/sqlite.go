package db

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/jonathan/resume-tailor/internal/logger"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS runs (
	id            TEXT PRIMARY KEY,
	created_at    TEXT NOT NULL,
	profile_name  TEXT NOT NULL,
	job_source    TEXT NOT NULL,
	job_hash      TEXT NOT NULL,
	keyword_count INTEGER NOT NULL DEFAULT 0,
	top_category  TEXT NOT NULL DEFAULT '',
	summary       TEXT NOT NULL DEFAULT '',
	resume        TEXT
);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at DESC);`

const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore keeps run history in a local SQLite file
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLite opens (or creates) the SQLite database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, &StoreError{Op: "open", Message: "sqlite path is empty"}
	}
	if dir := filepath.Dir(path); dir != "." && path != ":memory:" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, &StoreError{Op: "open", Message: "failed to create database directory", Cause: err}
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &StoreError{Op: "open", Message: "failed to open sqlite database", Cause: err}
	}
	conn.SetMaxOpenConns(1) // single writer

	if _, err := conn.ExecContext(ctx, sqliteSchema); err != nil {
		_ = conn.Close()
		return nil, &StoreError{Op: "open", Message: "failed to initialise schema", Cause: err}
	}

	logger.Debug().Str("path", path).Msg("opened sqlite run store")
	return &SQLiteStore{db: conn, now: time.Now}, nil
}

// SaveRun inserts run, assigning an ID and timestamp when missing.
func (s *SQLiteStore) SaveRun(ctx context.Context, run *Run) error {
	prepare(run, s.now())

	var resume any
	if len(run.ResumeJSON) > 0 {
		resume = string(run.ResumeJSON)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, created_at, profile_name, job_source, job_hash, keyword_count, top_category, summary, resume)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID.String(), run.CreatedAt.Format(sqliteTimeLayout), run.ProfileName, run.JobSource,
		run.JobHash, run.KeywordCount, run.TopCategory, run.Summary, resume,
	)
	if err != nil {
		return &StoreError{Op: "save", Message: "failed to insert run " + run.ID.String(), Cause: err}
	}
	return nil
}

// ListRuns returns the most recent runs first. Resume bodies are not loaded.
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, profile_name, job_source, job_hash, keyword_count, top_category, summary
		 FROM runs ORDER BY created_at DESC LIMIT ?`,
		normalizeLimit(limit),
	)
	if err != nil {
		return nil, &StoreError{Op: "list", Message: "failed to query runs", Cause: err}
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var run Run
		var id, createdAt string
		if err := rows.Scan(&id, &createdAt, &run.ProfileName, &run.JobSource, &run.JobHash,
			&run.KeywordCount, &run.TopCategory, &run.Summary); err != nil {
			return nil, &StoreError{Op: "list", Message: "failed to scan run", Cause: err}
		}
		if err := decodeSQLiteKeys(&run, id, createdAt); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreError{Op: "list", Message: "failed to iterate runs", Cause: err}
	}
	return runs, nil
}

// GetRun returns the run with the given ID, including its resume JSON.
func (s *SQLiteStore) GetRun(ctx context.Context, id uuid.UUID) (*Run, error) {
	var run Run
	var rawID, createdAt string
	var resume sql.NullString

	err := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, profile_name, job_source, job_hash, keyword_count, top_category, summary, resume
		 FROM runs WHERE id = ?`,
		id.String(),
	).Scan(&rawID, &createdAt, &run.ProfileName, &run.JobSource, &run.JobHash,
		&run.KeywordCount, &run.TopCategory, &run.Summary, &resume)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, &StoreError{Op: "get", Message: "failed to get run " + id.String(), Cause: err}
	}

	if err := decodeSQLiteKeys(&run, rawID, createdAt); err != nil {
		return nil, err
	}
	if resume.Valid {
		run.ResumeJSON = []byte(resume.String)
	}
	return &run, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func decodeSQLiteKeys(run *Run, id, createdAt string) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return &StoreError{Op: "decode", Message: "invalid run id " + id, Cause: err}
	}
	ts, err := time.Parse(sqliteTimeLayout, createdAt)
	if err != nil {
		return &StoreError{Op: "decode", Message: "invalid timestamp " + createdAt, Cause: err}
	}
	run.ID = parsed
	run.CreatedAt = ts
	return nil
}

var _ Store = (*SQLiteStore)(nil)
