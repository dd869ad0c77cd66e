// Package storage keeps a history of simulation reports in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/catchase/internal/sim"
)

// Store manages the SQLite database holding simulation batches.
type Store struct {
	db *sql.DB
}

// Batch is one saved `sim` invocation.
type Batch struct {
	ID             int64
	Runs           int
	Ticks          int
	Seed           int64
	ExpectedSpawns float64
	SpawnMean      float64
	SpawnStdDev    float64
	KillMean       float64
	KillStdDev     float64
	CreatedAt      time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
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

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sim_batches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			runs INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			expected_spawns REAL NOT NULL,
			spawn_mean REAL NOT NULL,
			spawn_stddev REAL NOT NULL,
			kill_mean REAL NOT NULL,
			kill_stddev REAL NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS sim_runs (
			batch_id INTEGER NOT NULL REFERENCES sim_batches(id) ON DELETE CASCADE,
			run INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			spawns INTEGER NOT NULL,
			kills INTEGER NOT NULL,
			removals INTEGER NOT NULL,
			peak_alive INTEGER NOT NULL,
			PRIMARY KEY (batch_id, run)
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

// SaveReport stores a report and its runs in one transaction.
// Returns the ID of the new batch.
func (s *Store) SaveReport(r sim.Report, ticks int, seed int64) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.Exec(
		`INSERT INTO sim_batches
		 (runs, ticks, seed, expected_spawns, spawn_mean, spawn_stddev, kill_mean, kill_stddev)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		len(r.Runs), ticks, seed,
		r.ExpectedSpawns, r.SpawnMean, r.SpawnStdDev, r.KillMean, r.KillStdDev,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save batch: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO sim_runs (batch_id, run, seed, spawns, kills, removals, peak_alive)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot prepare run insert: %w", err)
	}
	defer stmt.Close()

	for _, run := range r.Runs {
		if _, err := stmt.Exec(id, run.Run, run.Seed, run.Spawns, run.Kills, run.Removals, run.PeakAlive); err != nil {
			return 0, fmt.Errorf("storage: cannot save run %d: %w", run.Run, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit batch: %w", err)
	}
	return id, nil
}

// RecentBatches returns the newest batches first.
func (s *Store) RecentBatches(limit int) ([]Batch, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, runs, ticks, seed, expected_spawns, spawn_mean, spawn_stddev,
		        kill_mean, kill_stddev, created_at
		 FROM sim_batches
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query batches: %w", err)
	}
	defer rows.Close()

	var batches []Batch
	for rows.Next() {
		var b Batch
		var createdAt any
		if err := rows.Scan(
			&b.ID, &b.Runs, &b.Ticks, &b.Seed, &b.ExpectedSpawns,
			&b.SpawnMean, &b.SpawnStdDev, &b.KillMean, &b.KillStdDev, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		b.CreatedAt = parseTime(createdAt)
		batches = append(batches, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return batches, nil
}

// BatchRuns returns the runs of one batch in run order. A missing batch
// yields sql.ErrNoRows.
func (s *Store) BatchRuns(batchID int64) ([]sim.RunStats, error) {
	var exists int
	err := s.db.QueryRow("SELECT 1 FROM sim_batches WHERE id = ?", batchID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: batch %d: %w", batchID, err)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query batch: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT run, seed, spawns, kills, removals, peak_alive
		 FROM sim_runs
		 WHERE batch_id = ?
		 ORDER BY run`,
		batchID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []sim.RunStats
	for rows.Next() {
		var r sim.RunStats
		if err := rows.Scan(&r.Run, &r.Seed, &r.Spawns, &r.Kills, &r.Removals, &r.PeakAlive); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// ClearBatches deletes every saved batch.
func (s *Store) ClearBatches() error {
	if _, err := s.db.Exec("DELETE FROM sim_runs; DELETE FROM sim_batches"); err != nil {
		return fmt.Errorf("storage: cannot clear history: %w", err)
	}
	return nil
}

// parseTime handles drivers returning either time.Time or text.
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
