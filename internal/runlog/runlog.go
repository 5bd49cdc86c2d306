// Package runlog persists run history for the Correlation Orchestrator:
// one row per Generate invocation, with its start/end time and whether it
// finished clean. This is metadata about runs, not generated records
// themselves — persisting generated output durably is explicitly out of
// scope (spec.md §1) and runlog never touches it.
//
// Grounded on the teacher's internal/store/db.go (sqlite3 + a jobs table
// keyed by an opaque ID, status transitions written as the job
// progresses), adapted from a package-level global *sql.DB to a Store
// value so multiple runs (e.g. under cmd/corrgen-api) don't share process
// state implicitly.
package runlog

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/google/uuid"
)

// Store wraps the sqlite-backed run-history table.
type Store struct {
	db    *sql.DB
	runID string
}

// Open creates (or reuses) the sqlite database at path and ensures the
// runs table exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		status TEXT,
		started_at DATETIME,
		finished_at DATETIME
	);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, runID: uuid.New().String()}, nil
}

// RunStarted records the start of a new run, generating a fresh run ID.
func (s *Store) RunStarted() error {
	s.runID = uuid.New().String()
	_, err := s.db.Exec(`INSERT INTO runs (id, status, started_at) VALUES (?, ?, ?)`,
		s.runID, "running", time.Now().UTC())
	return err
}

// RunFinished records the end of the current run, marking it failed if
// failed is true.
func (s *Store) RunFinished(failed bool) error {
	status := "completed"
	if failed {
		status = "failed"
	}
	_, err := s.db.Exec(`UPDATE runs SET status = ?, finished_at = ? WHERE id = ?`,
		status, time.Now().UTC(), s.runID)
	return err
}

// RunID returns the current run's identifier.
func (s *Store) RunID() string { return s.runID }

// Recent returns the most recently started runs, newest first.
func (s *Store) Recent(limit int) ([]Run, error) {
	rows, err := s.db.Query(`SELECT id, status, started_at, finished_at FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var finishedAt sql.NullTime
		if err := rows.Scan(&r.ID, &r.Status, &r.StartedAt, &finishedAt); err != nil {
			return nil, err
		}
		if finishedAt.Valid {
			r.FinishedAt = finishedAt.Time
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func (s *Store) Close() error { return s.db.Close() }

// Run is one row of run history.
type Run struct {
	ID         string
	Status     string
	StartedAt  time.Time
	FinishedAt time.Time
}
