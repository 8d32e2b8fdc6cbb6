// Package stats persists practice-session summaries to a local SQLite
// database so progress can be reviewed across runs.
package stats

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/zjrosen/keytrain/internal/log"
)

// schema creates the session_stats table on first open.
const schema = `
CREATE TABLE IF NOT EXISTS session_stats (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL,
	started_at INTEGER NOT NULL,
	ended_at INTEGER NOT NULL,
	keys_handled INTEGER NOT NULL DEFAULT 0,
	edits_applied INTEGER NOT NULL DEFAULT 0,
	mode_switches INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_session_stats_started_at ON session_stats(started_at);
`

// summaryColumns is the list of columns to select for summary queries.
const summaryColumns = `id, session_id, started_at, ended_at, keys_handled, edits_applied, mode_switches`

// Summary is one recorded practice session.
type Summary struct {
	ID           int64
	SessionID    string
	StartedAt    time.Time
	EndedAt      time.Time
	KeysHandled  int
	EditsApplied int
	ModeSwitches int
}

// Duration returns the wall-clock length of the session.
func (s Summary) Duration() time.Duration {
	return s.EndedAt.Sub(s.StartedAt)
}

// Totals aggregates counters across all recorded sessions.
type Totals struct {
	Sessions     int
	KeysHandled  int
	EditsApplied int
	ModeSwitches int
}

// Store wraps the SQLite database holding session summaries.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the stats database at dbPath, creating
// parent directories and running the schema as needed.
func NewStore(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("failed to create stats directory: %w", err)
	}

	db, err := sql.Open("sqlite3", "file:"+dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open stats database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply stats schema: %w", err)
	}

	log.Debug(log.CatStats, "stats store opened", "path", dbPath)
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save inserts a session summary and sets its ID.
func (s *Store) Save(sum *Summary) error {
	result, err := s.db.Exec(
		`INSERT INTO session_stats (session_id, started_at, ended_at, keys_handled, edits_applied, mode_switches)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		sum.SessionID, sum.StartedAt.Unix(), sum.EndedAt.Unix(),
		sum.KeysHandled, sum.EditsApplied, sum.ModeSwitches,
	)
	if err != nil {
		return fmt.Errorf("failed to insert session summary: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	sum.ID = id
	return nil
}

// scanSummary scans a row into a Summary.
func scanSummary(scanner interface{ Scan(...any) error }) (Summary, error) {
	var sum Summary
	var startedAt, endedAt int64
	err := scanner.Scan(
		&sum.ID, &sum.SessionID, &startedAt, &endedAt,
		&sum.KeysHandled, &sum.EditsApplied, &sum.ModeSwitches,
	)
	if err != nil {
		return Summary{}, err
	}
	sum.StartedAt = time.Unix(startedAt, 0)
	sum.EndedAt = time.Unix(endedAt, 0)
	return sum, nil
}

// Recent returns up to limit summaries, newest first.
func (s *Store) Recent(limit int) ([]Summary, error) {
	rows, err := s.db.Query(
		`SELECT `+summaryColumns+` FROM session_stats ORDER BY started_at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent summaries: %w", err)
	}
	defer rows.Close()

	var summaries []Summary
	for rows.Next() {
		sum, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan summary: %w", err)
		}
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

// Totals aggregates counters across every recorded session.
func (s *Store) Totals() (Totals, error) {
	var t Totals
	err := s.db.QueryRow(
		`SELECT COUNT(*),
			COALESCE(SUM(keys_handled), 0),
			COALESCE(SUM(edits_applied), 0),
			COALESCE(SUM(mode_switches), 0)
		 FROM session_stats`,
	).Scan(&t.Sessions, &t.KeysHandled, &t.EditsApplied, &t.ModeSwitches)
	if err != nil {
		return Totals{}, fmt.Errorf("failed to aggregate session stats: %w", err)
	}
	return t, nil
}
