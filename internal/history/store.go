// Package history records every render run in a local SQLite database.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Status classifies how a run ended
type Status string

const (
	StatusOK          Status = "ok"
	StatusInputError  Status = "input_error"
	StatusRenderError Status = "render_error"
)

// Run is one recorded invocation
type Run struct {
	ID            string
	Source        string
	Output        string
	Status        Status
	DistinctTerms int
	TotalTokens   int
	Error         string
	Duration      time.Duration
	CreatedAt     time.Time
}

// Store persists runs in SQLite
type Store struct {
	db   *sql.DB
	path string
}

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond

	// Fixed width so created_at sorts lexically
	timeLayout = "2006-01-02T15:04:05.000000000Z"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id             TEXT PRIMARY KEY,
	source         TEXT NOT NULL,
	output         TEXT NOT NULL,
	status         TEXT NOT NULL,
	distinct_terms INTEGER NOT NULL DEFAULT 0,
	total_tokens   INTEGER NOT NULL DEFAULT 0,
	error          TEXT NOT NULL DEFAULT '',
	duration_ms    INTEGER NOT NULL DEFAULT 0,
	created_at     TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`

// Open initializes or connects to the history database at path
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Path returns the database file location
func (s *Store) Path() string {
	return s.path
}

// Close releases the database handle
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts run, assigning an ID and timestamp when missing
func (s *Store) Record(ctx context.Context, run Run) (Run, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	err := retryOnBusy(ctx, func() error {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO runs (id, source, output, status, distinct_terms, total_tokens, error, duration_ms, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID, run.Source, run.Output, string(run.Status), run.DistinctTerms, run.TotalTokens,
			run.Error, run.Duration.Milliseconds(), run.CreatedAt.UTC().Format(timeLayout),
		)
		return err
	})
	if err != nil {
		return run, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// Recent returns up to limit runs, newest first. limit <= 0 returns all.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, source, output, status, distinct_terms, total_tokens, error, duration_ms, created_at
		FROM runs ORDER BY created_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var (
			run        Run
			status     string
			durationMS int64
			createdAt  string
		)
		if err := rows.Scan(&run.ID, &run.Source, &run.Output, &status, &run.DistinctTerms,
			&run.TotalTokens, &run.Error, &durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.Status = Status(status)
		run.Duration = time.Duration(durationMS) * time.Millisecond
		if ts, err := time.Parse(timeLayout, createdAt); err == nil {
			run.CreatedAt = ts
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code()&0xff == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}
