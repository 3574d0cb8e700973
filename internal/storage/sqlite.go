// Package storage provides SQLite-based persistence for recorded sessions.
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

	"github.com/vovakirdan/tui-flappy/internal/replay"
)

// Store manages the SQLite database connection for replay persistence.
type Store struct {
	db *sql.DB
}

// ReplayEntry is a replay header as listed in the browser.
type ReplayEntry struct {
	ID        int64
	GameID    string
	Seed      int64
	Ticks     int
	TickRate  int
	Flaps     int
	CreatedAt time.Time
}

// Duration returns the session length at its tick rate.
func (e ReplayEntry) Duration() time.Duration {
	if e.TickRate <= 0 {
		return 0
	}
	return time.Duration(e.Ticks) * time.Second / time.Duration(e.TickRate)
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
		CREATE TABLE IF NOT EXISTS replays (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			seed INTEGER NOT NULL,
			screen_w INTEGER NOT NULL,
			screen_h INTEGER NOT NULL,
			tick_rate INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			flaps INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_replays_game_id ON replays(game_id);

		CREATE TABLE IF NOT EXISTS replay_inputs (
			replay_id INTEGER NOT NULL REFERENCES replays(id) ON DELETE CASCADE,
			tick INTEGER NOT NULL,
			actions TEXT NOT NULL DEFAULT '',
			screen_w INTEGER NOT NULL DEFAULT 0,
			screen_h INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (replay_id, tick)
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

// SaveReplay stores a recording and its input frames in one transaction.
// Returns the ID of the inserted replay.
func (s *Store) SaveReplay(rec replay.Recording) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	res, err := tx.Exec(
		`INSERT INTO replays (game_id, seed, screen_w, screen_h, tick_rate, ticks, flaps)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.GameID, rec.Seed, rec.ScreenW, rec.ScreenH, rec.TickRate, rec.Ticks, rec.Flaps(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save replay: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO replay_inputs (replay_id, tick, actions, screen_w, screen_h)
		 VALUES (?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot prepare input insert: %w", err)
	}
	defer stmt.Close()

	for _, f := range rec.Frames {
		if _, err := stmt.Exec(id, f.Tick, replay.EncodeActions(f.Actions), f.ScreenW, f.ScreenH); err != nil {
			return 0, fmt.Errorf("storage: cannot save input at tick %d: %w", f.Tick, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit replay: %w", err)
	}
	return id, nil
}

// Ensure Store implements replay.Saver
var _ replay.Saver = (*Store)(nil)

// ListReplays retrieves the most recent replays, newest first.
// An empty gameID lists every variant.
func (s *Store) ListReplays(gameID string, limit int) ([]ReplayEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, seed, ticks, tick_rate, flaps, created_at
		 FROM replays
		 WHERE ? = '' OR game_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var entries []ReplayEntry
	for rows.Next() {
		var e ReplayEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &e.Seed, &e.Ticks, &e.TickRate, &e.Flaps, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// LoadReplay retrieves a full recording by ID.
// Returns nil without error when no such replay exists.
func (s *Store) LoadReplay(id int64) (*replay.Recording, error) {
	var rec replay.Recording
	var createdAt any

	err := s.db.QueryRow(
		`SELECT id, game_id, seed, screen_w, screen_h, tick_rate, ticks, created_at
		 FROM replays
		 WHERE id = ?`,
		id,
	).Scan(&rec.ID, &rec.GameID, &rec.Seed, &rec.ScreenW, &rec.ScreenH, &rec.TickRate, &rec.Ticks, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replay: %w", err)
	}
	rec.CreatedAt = parseTime(createdAt)

	rows, err := s.db.Query(
		`SELECT tick, actions, screen_w, screen_h
		 FROM replay_inputs
		 WHERE replay_id = ?
		 ORDER BY tick`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replay inputs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var f replay.Frame
		var actions string
		if err := rows.Scan(&f.Tick, &actions, &f.ScreenW, &f.ScreenH); err != nil {
			return nil, fmt.Errorf("storage: cannot scan input row: %w", err)
		}
		f.Actions = replay.DecodeActions(actions)
		rec.Frames = append(rec.Frames, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return &rec, nil
}

// DeleteReplay removes a replay and its inputs.
func (s *Store) DeleteReplay(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec("DELETE FROM replay_inputs WHERE replay_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete replay inputs: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM replays WHERE id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete replay: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return nil
}

// VariantStats contains aggregated replay statistics for a variant.
type VariantStats struct {
	GameID     string
	Replays    int
	TotalTicks int64
	TotalFlaps int64
	LastPlayed time.Time
}

// GetAllVariantStats retrieves statistics for every variant with replays.
func (s *Store) GetAllVariantStats() (map[string]*VariantStats, error) {
	rows, err := s.db.Query(
		`SELECT game_id, COUNT(*), SUM(ticks), SUM(flaps), MAX(created_at)
		 FROM replays
		 GROUP BY game_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get variant stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*VariantStats)
	for rows.Next() {
		var v VariantStats
		var lastPlayed any
		if err := rows.Scan(&v.GameID, &v.Replays, &v.TotalTicks, &v.TotalFlaps, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		v.LastPlayed = parseTime(lastPlayed)
		stats[v.GameID] = &v
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// parseTime handles the datetime column as either time.Time or string.
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
