package journal

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

// Status values stored per outcome.
const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
	StatusSkipped   = "skipped"
)

// ErrRunNotFound is returned when a run identifier is unknown.
var ErrRunNotFound = errors.New("run not found")

// Store is the SQLite-backed run journal.
type Store struct {
	db   *sql.DB
	path string
}

// Run is one recorded invocation.
type Run struct {
	ID         string    `json:"id"`
	Command    string    `json:"command"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at,omitzero"`
	Succeeded  int       `json:"succeeded"`
	Failed     int       `json:"failed"`
	Skipped    int       `json:"skipped"`
	Note       string    `json:"note,omitempty"`
}

// Finished reports whether the run was closed.
func (r Run) Finished() bool {
	return !r.FinishedAt.IsZero()
}

// Entry is one per-track outcome.
type Entry struct {
	TrackID     string        `json:"track_id"`
	Status      string        `json:"status"`
	Failure     string        `json:"failure,omitempty"`
	Destination string        `json:"destination,omitempty"`
	Detail      string        `json:"detail,omitempty"`
	Elapsed     time.Duration `json:"elapsed_ns"`
	RecordedAt  time.Time     `json:"recorded_at"`
}

// Open initializes or connects to the journal database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("journal: empty database path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure journal directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// Workers record concurrently; a single connection serializes writers.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// BeginRun opens a run for command and returns its identifier.
func (s *Store) BeginRun(ctx context.Context, command string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO runs (id, command, started_at) VALUES (?, ?, ?)",
		id, command, formatTime(time.Now()),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return id, nil
}

// RecordOutcome appends one track outcome to a run.
func (s *Store) RecordOutcome(ctx context.Context, runID string, entry Entry) error {
	recorded := entry.RecordedAt
	if recorded.IsZero() {
		recorded = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO outcomes (
            run_id, track_id, status, failure, destination, detail, elapsed_ms, recorded_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		runID,
		entry.TrackID,
		entry.Status,
		nullableString(entry.Failure),
		nullableString(entry.Destination),
		nullableString(entry.Detail),
		entry.Elapsed.Milliseconds(),
		formatTime(recorded),
	)
	if err != nil {
		return fmt.Errorf("insert outcome for %s: %w", entry.TrackID, err)
	}
	return nil
}

// FinishRun closes a run, storing counts derived from its recorded outcomes.
func (s *Store) FinishRun(ctx context.Context, runID, note string) (Run, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET
            finished_at = ?,
            succeeded = (SELECT COUNT(1) FROM outcomes WHERE run_id = runs.id AND status = ?),
            failed = (SELECT COUNT(1) FROM outcomes WHERE run_id = runs.id AND status = ?),
            skipped = (SELECT COUNT(1) FROM outcomes WHERE run_id = runs.id AND status = ?),
            note = ?
        WHERE id = ?`,
		formatTime(time.Now()), StatusSucceeded, StatusFailed, StatusSkipped, nullableString(note), runID,
	)
	if err != nil {
		return Run{}, fmt.Errorf("finish run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return s.GetRun(ctx, runID)
}

// GetRun loads a run by identifier.
func (s *Store) GetRun(ctx context.Context, runID string) (Run, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, command, started_at, finished_at, succeeded, failed, skipped, note FROM runs WHERE id = ?", runID)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return run, err
}

// RecentRuns returns up to limit runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, command, started_at, finished_at, succeeded, failed, skipped, note
         FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// RunOutcomes returns the outcomes recorded for a run in insertion order.
func (s *Store) RunOutcomes(ctx context.Context, runID string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT track_id, status, failure, destination, detail, elapsed_ms, recorded_at
         FROM outcomes WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query outcomes: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry                        Entry
			failure, destination, detail sql.NullString
			elapsedMS                    int64
			recorded                     string
		)
		if err := rows.Scan(&entry.TrackID, &entry.Status, &failure, &destination, &detail, &elapsedMS, &recorded); err != nil {
			return nil, fmt.Errorf("scan outcome: %w", err)
		}
		entry.Failure = failure.String
		entry.Destination = destination.String
		entry.Detail = detail.String
		entry.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		entry.RecordedAt = parseTime(recorded)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var (
		run            Run
		started        string
		finished, note sql.NullString
	)
	if err := row.Scan(&run.ID, &run.Command, &started, &finished, &run.Succeeded, &run.Failed, &run.Skipped, &note); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	run.StartedAt = parseTime(started)
	if finished.Valid {
		run.FinishedAt = parseTime(finished.String)
	}
	run.Note = note.String
	return run, nil
}

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(value string) time.Time {
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}
