// Package history records backup and restore runs in a local SQLite
// database so `brew-backup history` can show what ran and how it went.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Run kinds.
const (
	KindBackup  = "backup"
	KindRestore = "restore"
)

// Run is one recorded backup or restore operation.
type Run struct {
	ID         string
	Kind       string // backup|restore
	StartedAt  time.Time
	FinishedAt time.Time
	Manifest   string // file path or snapshot directory
	Packages   int    // total entries in the manifest
	Installed  int
	Failed     int
	Skipped    int
}

// Store persists runs. Use ":memory:" for tests.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed creates) the history database at dbPath,
// creating parent directories for file-backed databases.
func Open(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize history schema: %w", err)
	}
	return s, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		started_at INTEGER NOT NULL,
		finished_at INTEGER NOT NULL,
		manifest TEXT NOT NULL,
		packages INTEGER NOT NULL,
		installed INTEGER NOT NULL,
		failed INTEGER NOT NULL,
		skipped INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Append records a run. The ID is assigned when empty.
func (s *Store) Append(ctx context.Context, run Run) (Run, error) {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO runs (id, kind, started_at, finished_at, manifest, packages, installed, failed, skipped) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		run.ID, run.Kind, run.StartedAt.Unix(), run.FinishedAt.Unix(), run.Manifest,
		run.Packages, run.Installed, run.Failed, run.Skipped,
	)
	if err != nil {
		return Run{}, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, kind, started_at, finished_at, manifest, packages, installed, failed, skipped FROM runs ORDER BY started_at DESC, id LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var started, finished int64
		if err := rows.Scan(&r.ID, &r.Kind, &started, &finished, &r.Manifest, &r.Packages, &r.Installed, &r.Failed, &r.Skipped); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.StartedAt = time.Unix(started, 0).UTC()
		r.FinishedAt = time.Unix(finished, 0).UTC()
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return runs, nil
}
