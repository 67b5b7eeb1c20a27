// Package storage provides SQLite-based persistence for solve history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for solve history.
type Store struct {
	db *sql.DB
}

// SolveRecord is one successfully answered solve request.
type SolveRecord struct {
	ID        int64
	BoardKey  string
	Mode      string
	Bound     int
	Solution  string
	Moves     int
	Elapsed   time.Duration
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS solves (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			board_key TEXT NOT NULL,
			mode TEXT NOT NULL,
			bound INTEGER NOT NULL DEFAULT 0,
			solution TEXT NOT NULL,
			moves INTEGER NOT NULL,
			elapsed_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_solves_board_key ON solves(board_key);
		CREATE INDEX IF NOT EXISTS idx_solves_recent ON solves(created_at DESC);
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

// SaveSolve records an answered solve request.
// Returns the ID of the inserted record.
func (s *Store) SaveSolve(r SolveRecord) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO solves (board_key, mode, bound, solution, moves, elapsed_ms) VALUES (?, ?, ?, ?, ?, ?)",
		r.BoardKey, r.Mode, r.Bound, r.Solution, r.Moves, r.Elapsed.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save solve: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// Recent retrieves the latest N solve records, newest first.
func (s *Store) Recent(limit int) ([]SolveRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, board_key, mode, bound, solution, moves, elapsed_ms, created_at
		 FROM solves ORDER BY created_at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query solves: %w", err)
	}
	defer rows.Close()

	var records []SolveRecord
	for rows.Next() {
		var r SolveRecord
		var elapsedMS int64
		if err := rows.Scan(&r.ID, &r.BoardKey, &r.Mode, &r.Bound, &r.Solution, &r.Moves, &elapsedMS, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan solve row: %w", err)
		}
		r.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: error iterating solve rows: %w", err)
	}

	return records, nil
}

// ForBoard retrieves past solves of the given board layout, newest
// first.
func (s *Store) ForBoard(boardKey string, limit int) ([]SolveRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, board_key, mode, bound, solution, moves, elapsed_ms, created_at
		 FROM solves WHERE board_key = ? ORDER BY created_at DESC, id DESC LIMIT ?`,
		boardKey, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query solves: %w", err)
	}
	defer rows.Close()

	var records []SolveRecord
	for rows.Next() {
		var r SolveRecord
		var elapsedMS int64
		if err := rows.Scan(&r.ID, &r.BoardKey, &r.Mode, &r.Bound, &r.Solution, &r.Moves, &elapsedMS, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan solve row: %w", err)
		}
		r.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: error iterating solve rows: %w", err)
	}

	return records, nil
}
