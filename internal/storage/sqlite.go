// Package storage provides SQLite-based persistence for the run archive.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"botcircuit/internal/sim"
)

// Store manages the SQLite database connection for run archiving.
type Store struct {
	db *sql.DB
}

// RunRecord is one archived run.
type RunRecord struct {
	ID           int64
	RunID        string
	BotName      string
	Archetype    string
	Distance     float64
	SurvivalSecs float64
	Collectibles int
	Completed    bool
	Reason       string
	CreatedAt    time.Time
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

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			bot_name TEXT NOT NULL,
			archetype TEXT NOT NULL,
			distance REAL NOT NULL,
			survival_secs REAL NOT NULL,
			collectibles INTEGER NOT NULL DEFAULT 0,
			completed INTEGER NOT NULL DEFAULT 0,
			reason TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_bot ON runs(bot_name);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(bot_name, distance DESC);
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

// SaveRun archives one finalized run.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(rs sim.RunStatistics) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs
		 (run_id, bot_name, archetype, distance, survival_secs, collectibles, completed, reason)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rs.RunID,
		rs.BotName,
		rs.Archetype,
		rs.Distance,
		rs.SurvivalTime,
		rs.Collectibles,
		rs.Completed,
		rs.Reason,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopRuns retrieves the N longest runs for the given bot.
// Results are ordered by distance descending.
func (s *Store) TopRuns(botName string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT id, run_id, bot_name, archetype, distance, survival_secs, collectibles, completed, reason, created_at
		 FROM runs
		 WHERE bot_name = ?
		 ORDER BY distance DESC
		 LIMIT ?`,
		botName, limit,
	)
}

// RecentRuns retrieves the N most recent runs across all bots.
func (s *Store) RecentRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT id, run_id, bot_name, archetype, distance, survival_secs, collectibles, completed, reason, created_at
		 FROM runs
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
}

func (s *Store) queryRuns(query string, args ...any) ([]RunRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var r RunRecord
		var createdAt any
		if err := rows.Scan(&r.ID, &r.RunID, &r.BotName, &r.Archetype, &r.Distance,
			&r.SurvivalSecs, &r.Collectibles, &r.Completed, &r.Reason, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		// Parse the datetime - handle both time.Time and string
		switch v := createdAt.(type) {
		case time.Time:
			r.CreatedAt = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				r.CreatedAt = parsed
			}
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// BestDistance returns the longest archived distance for the given bot.
// Returns 0 if no runs exist.
func (s *Store) BestDistance(botName string) (float64, error) {
	var best sql.NullFloat64
	err := s.db.QueryRow(
		"SELECT MAX(distance) FROM runs WHERE bot_name = ?",
		botName,
	).Scan(&best)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best distance: %w", err)
	}
	if !best.Valid {
		return 0, nil
	}
	return best.Float64, nil
}

// ClearRuns deletes all archived runs for the given bot.
func (s *Store) ClearRuns(botName string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE bot_name = ?", botName)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}
