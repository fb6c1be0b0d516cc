// Package history persists validation runs in SQLite so past results can be
// queried after the fact.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"git.home.luguber.info/inful/doclink/internal/check"
)

// ErrRunNotFound is returned when a run ID is not present in the store.
var ErrRunNotFound = errors.New("run not found")

// Run is one recorded validation pass.
type Run struct {
	ID         string    `json:"id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Files      int       `json:"files"`
	Links      int       `json:"links"`
	Problems   int       `json:"problems"`
}

// Problem is one recorded validation problem. Kind is stored as its string
// form so rows stay readable with plain sqlite tooling.
type Problem struct {
	SourceFile string `json:"source_file"`
	SourceLine int    `json:"source_line"`
	Link       string `json:"link,omitempty"`
	Message    string `json:"message"`
	Kind       string `json:"kind"`
}

// Store records validation runs in a SQLite database.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open creates or opens the run history database at path.
// Use ":memory:" for an in-memory database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close() // Best effort cleanup on initialization error
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return store, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started_at INTEGER NOT NULL,
		finished_at INTEGER NOT NULL,
		files INTEGER NOT NULL,
		links INTEGER NOT NULL,
		problems INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS problems (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		source_file TEXT NOT NULL,
		source_line INTEGER NOT NULL,
		link TEXT,
		message TEXT NOT NULL,
		kind TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
	CREATE INDEX IF NOT EXISTS idx_problems_run_id ON problems(run_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record appends one run and its problems in a single transaction.
func (s *Store) Record(ctx context.Context, run Run, problems []check.Problem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO runs (id, started_at, finished_at, files, links, problems) VALUES (?, ?, ?, ?, ?, ?)",
		run.ID, run.StartedAt.UnixMilli(), run.FinishedAt.UnixMilli(), run.Files, run.Links, run.Problems,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, p := range problems {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO problems (run_id, source_file, source_line, link, message, kind) VALUES (?, ?, ?, ?, ?, ?)",
			run.ID, p.SourceFile, p.SourceLine, p.Link, p.Message, p.Kind.String(),
		)
		if err != nil {
			return fmt.Errorf("insert problem: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

// LastRuns returns up to n runs, most recent first.
func (s *Store) LastRuns(ctx context.Context, n int) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, started_at, finished_at, files, links, problems FROM runs ORDER BY started_at DESC, id DESC LIMIT ?",
		n,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// FindRun returns the run with the given ID, or ErrRunNotFound.
func (s *Store) FindRun(ctx context.Context, id string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		"SELECT id, started_at, finished_at, files, links, problems FROM runs WHERE id = ?",
		id,
	)

	var r Run
	var started, finished int64
	err := row.Scan(&r.ID, &started, &finished, &r.Files, &r.Links, &r.Problems)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("scan run: %w", err)
	}
	r.StartedAt = time.UnixMilli(started)
	r.FinishedAt = time.UnixMilli(finished)
	return &r, nil
}

// Problems returns the recorded problems of a run in insertion order.
func (s *Store) Problems(ctx context.Context, runID string) ([]Problem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT source_file, source_line, link, message, kind FROM problems WHERE run_id = ? ORDER BY id",
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query problems: %w", err)
	}
	defer rows.Close()

	var problems []Problem
	for rows.Next() {
		var p Problem
		if err := rows.Scan(&p.SourceFile, &p.SourceLine, &p.Link, &p.Message, &p.Kind); err != nil {
			return nil, fmt.Errorf("scan problem: %w", err)
		}
		problems = append(problems, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return problems, nil
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	var runs []Run
	for rows.Next() {
		var r Run
		var started, finished int64
		if err := rows.Scan(&r.ID, &started, &finished, &r.Files, &r.Links, &r.Problems); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.StartedAt = time.UnixMilli(started)
		r.FinishedAt = time.UnixMilli(finished)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return runs, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
