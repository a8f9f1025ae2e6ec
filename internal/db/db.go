// Package db provides run history storage backed by SQLite or PostgreSQL.
package db

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Drivers understood by Open.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverNone     = "none"
)

// DefaultListLimit is used when ListRuns is called with a non-positive limit.
const DefaultListLimit = 20

// Run is one recorded tailoring run
type Run struct {
	ID           uuid.UUID       `json:"id"`
	CreatedAt    time.Time       `json:"created_at"`
	ProfileName  string          `json:"profile_name"`
	JobSource    string          `json:"job_source"`
	JobHash      string          `json:"job_hash"`
	KeywordCount int             `json:"keyword_count"`
	TopCategory  string          `json:"top_category,omitempty"`
	Summary      string          `json:"summary"`
	ResumeJSON   json.RawMessage `json:"resume,omitempty"`
}

// Store persists tailoring runs.
//
// GetRun returns (nil, nil) when no run has the given ID.
type Store interface {
	SaveRun(ctx context.Context, run *Run) error
	ListRuns(ctx context.Context, limit int) ([]Run, error)
	GetRun(ctx context.Context, id uuid.UUID) (*Run, error)
	Close() error
}

// Config selects a store backend.
type Config struct {
	Driver string
	DSN    string
}

// Open connects to the configured backend and makes sure the schema exists.
// DriverNone returns a nil Store and no error.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Driver {
	case DriverSQLite:
		return OpenSQLite(ctx, cfg.DSN)
	case DriverPostgres:
		return OpenPostgres(ctx, cfg.DSN)
	case DriverNone, "":
		return nil, nil
	default:
		return nil, &StoreError{Op: "open", Message: "unknown driver " + cfg.Driver}
	}
}

// prepare fills in the ID and creation time of a run that does not have them.
func prepare(run *Run, now time.Time) {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = now
	}
	run.CreatedAt = run.CreatedAt.UTC()
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}
