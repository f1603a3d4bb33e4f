// Package storage provides SQLite-based persistence for the run journal.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
//
// The journal records how each run was played (seed, field, jump ticks)
// so it can be replayed. It keeps no ranking.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultRecentLimit is used when RecentRuns is called with limit <= 0.
const DefaultRecentLimit = 20

// ErrNotFound is returned by GetRun for an unknown ID.
var ErrNotFound = errors.New("storage: run not found")

// Store manages the SQLite database connection for the run journal.
type Store struct {
	db *sql.DB
}

// RunRecord is one journaled run.
type RunRecord struct {
	ID          int64
	Player      string
	Seed        int64
	Theme       string
	Width       int
	Height      int
	JumpHeight  int
	ActorColumn int
	SpawnNum    int
	SpawnDen    int
	Ticks       int
	Score       int
	Outcome     string // Phase name: "game_over" or "terminated"
	Jumps       []int  // Admitted tick each effective jump preceded
	CreatedAt   time.Time
}

// MemoryPath opens a private in-memory journal.
const MemoryPath = ":memory:"

// Open creates or opens the journal at dbPath, creating parent
// directories and the schema as needed. A leading ~ is the home directory.
func Open(dbPath string) (*Store, error) {
	if dbPath != MemoryPath {
		resolved, err := resolvePath(dbPath)
		if err != nil {
			return nil, err
		}
		dbPath = resolved
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// One connection keeps an in-memory journal alive and serializes writers.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.init(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func resolvePath(dbPath string) (string, error) {
	if dbPath == "" {
		return "", errors.New("storage: empty database path")
	}
	if dbPath == "~" || strings.HasPrefix(dbPath, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}
	return dbPath, nil
}

func (s *Store) init() error {
	if err := s.db.Ping(); err != nil {
		return fmt.Errorf("storage: cannot connect to database: %w", err)
	}
	if _, err := s.db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		return fmt.Errorf("storage: cannot enable foreign keys: %w", err)
	}
	if err := s.migrate(); err != nil {
		return fmt.Errorf("storage: migration failed: %w", err)
	}
	return nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT NOT NULL DEFAULT '',
			seed INTEGER NOT NULL,
			theme TEXT NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			jump_height INTEGER NOT NULL,
			actor_column INTEGER NOT NULL,
			spawn_num INTEGER NOT NULL,
			spawn_den INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			score INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_player ON runs(player);

		CREATE TABLE IF NOT EXISTS run_jumps (
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			tick INTEGER NOT NULL,
			PRIMARY KEY (run_id, seq)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a run and its jump trace in one transaction.
// Returns the ID of the inserted run.
func (s *Store) SaveRun(r RunRecord) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	res, err := tx.Exec(
		`INSERT INTO runs
		 (player, seed, theme, width, height, jump_height, actor_column,
		  spawn_num, spawn_den, ticks, score, outcome)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Player, r.Seed, r.Theme, r.Width, r.Height, r.JumpHeight, r.ActorColumn,
		r.SpawnNum, r.SpawnDen, r.Ticks, r.Score, r.Outcome,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	if len(r.Jumps) > 0 {
		stmt, err := tx.Prepare("INSERT INTO run_jumps (run_id, seq, tick) VALUES (?, ?, ?)")
		if err != nil {
			return 0, fmt.Errorf("storage: cannot prepare jump insert: %w", err)
		}
		defer stmt.Close()

		for i, tick := range r.Jumps {
			if _, err := stmt.Exec(id, i, tick); err != nil {
				return 0, fmt.Errorf("storage: cannot save jump: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit run: %w", err)
	}
	return id, nil
}

const runColumns = `id, player, seed, theme, width, height, jump_height, actor_column,
	spawn_num, spawn_den, ticks, score, outcome, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (RunRecord, error) {
	var r RunRecord
	var createdAt any
	err := row.Scan(
		&r.ID, &r.Player, &r.Seed, &r.Theme, &r.Width, &r.Height, &r.JumpHeight,
		&r.ActorColumn, &r.SpawnNum, &r.SpawnDen, &r.Ticks, &r.Score, &r.Outcome,
		&createdAt,
	)
	if err != nil {
		return r, err
	}
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// GetRun retrieves a run with its jump trace.
// Returns ErrNotFound if no run has the given ID.
func (s *Store) GetRun(id int64) (RunRecord, error) {
	r, err := scanRun(s.db.QueryRow("SELECT "+runColumns+" FROM runs WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return RunRecord{}, ErrNotFound
	}
	if err != nil {
		return RunRecord{}, fmt.Errorf("storage: cannot query run: %w", err)
	}

	r.Jumps, err = s.jumps(id)
	if err != nil {
		return RunRecord{}, err
	}
	return r, nil
}

func (s *Store) jumps(runID int64) ([]int, error) {
	rows, err := s.db.Query("SELECT tick FROM run_jumps WHERE run_id = ? ORDER BY seq", runID)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query jumps: %w", err)
	}
	defer rows.Close()

	var ticks []int
	for rows.Next() {
		var tick int
		if err := rows.Scan(&tick); err != nil {
			return nil, fmt.Errorf("storage: cannot scan jump: %w", err)
		}
		ticks = append(ticks, tick)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return ticks, nil
}

// RecentRuns retrieves the most recent runs, newest first.
// Jump traces are not loaded; use GetRun for a single run.
func (s *Store) RecentRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	rows, err := s.db.Query(
		"SELECT "+runColumns+" FROM runs ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// CountRuns returns the number of journaled runs.
func (s *Store) CountRuns() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: cannot count runs: %w", err)
	}
	return n, nil
}
