// Package state persists check-run history in SQLite with goose-managed
// migrations. One row per run: severity counts, file count, completeness.
package state

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/complyhq/comply/pkg/report"
)

// Store records and lists check runs.
type Store struct {
	db   *sql.DB
	path string
}

// RunRecord is one persisted check run.
type RunRecord struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	Files      int       `json:"files"`
	Violations int       `json:"violations"`
	Errors     int       `json:"errors"`
	Warnings   int       `json:"warnings"`
	Infos      int       `json:"infos"`
	Hints      int       `json:"hints"`
	Incomplete bool      `json:"incomplete"`
}

// Open opens (creating if needed) the history database at path.
// Use ":memory:" for an in-memory database.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create state directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping history database: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordRun persists one run summary and returns its generated id.
func (s *Store) RecordRun(r *report.Report) (string, error) {
	id := uuid.New().String()
	_, err := s.db.Exec(`
		INSERT INTO check_runs (id, created_at, files, violations, errors, warnings, infos, hints, incomplete)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, time.Now().UTC().Format(time.RFC3339Nano), r.FilesProcessed, r.Summary.Total,
		r.Summary.Errors, r.Summary.Warnings, r.Summary.Infos, r.Summary.Hints, r.Incomplete,
	)
	if err != nil {
		return "", fmt.Errorf("failed to record run: %w", err)
	}
	return id, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT id, created_at, files, violations, errors, warnings, infos, hints, incomplete
		FROM check_runs
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var rec RunRecord
		var createdAt string
		if err := rows.Scan(&rec.ID, &createdAt, &rec.Files, &rec.Violations,
			&rec.Errors, &rec.Warnings, &rec.Infos, &rec.Hints, &rec.Incomplete); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		records = append(records, rec)
	}
	return records, rows.Err()
}
