// Package persistence records the colony metrics time series to SQLite
// for the observation API. The table is append-only; nothing in the
// simulation reads it back.
package persistence

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/anthill/internal/engine"
)

// DB wraps a SQLite connection for metrics storage.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS metrics (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		tick INTEGER NOT NULL,
		population INTEGER NOT NULL,
		food_storage REAL NOT NULL,
		nest_radius INTEGER NOT NULL,
		building_progress REAL NOT NULL,
		harvests INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_metrics_tick ON metrics(tick);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// Record appends one stats sample.
func (db *DB) Record(st engine.SimStats) error {
	_, err := db.conn.Exec(
		`INSERT INTO metrics (tick, population, food_storage, nest_radius, building_progress, harvests)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		st.Tick, st.Population, st.FoodStorage, st.NestRadius, st.BuildingProgress, st.Harvests,
	)
	if err != nil {
		return fmt.Errorf("record metrics: %w", err)
	}
	return nil
}

// History returns the most recent samples, newest first.
func (db *DB) History(limit int) ([]engine.SimStats, error) {
	var rows []engine.SimStats
	err := db.conn.Select(&rows,
		`SELECT tick, population, food_storage, nest_radius, building_progress, harvests
		 FROM metrics ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("metrics history: %w", err)
	}
	return rows, nil
}
