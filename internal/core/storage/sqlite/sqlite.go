// Package sqlite provides a SQLite-backed implementation of storage.Backend.
//
// Schema is auto-migrated on New. Use ":memory:" for a throwaway database;
// the connection pool is pinned to one connection so every statement sees the
// same in-memory database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sonijitendra/vehicle-registrations/internal/core/storage/sqlstore"
)

// Store implements storage.Backend using SQLite.
type Store struct {
	*sqlstore.Store
	db     *sql.DB
	logger *slog.Logger
}

// New opens (creating if needed) the database at dbPath and migrates it.
func New(dbPath string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite allows a single writer; one connection also keeps ":memory:" coherent.
	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	store, err := sqlstore.New(db, "SQLite", logger)
	if err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("[SQLite] Store opened", "path", dbPath)
	return &Store{Store: store, db: db, logger: logger}, nil
}

// Ping reports whether the database file is usable. Used by the health endpoint.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the prepared statements and the database connection.
func (s *Store) Close() error {
	if err := s.Store.Close(); err != nil {
		s.db.Close()
		return err
	}
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

// migrate creates the database schema.
// Growth values are stored as TEXT so decimals round-trip exactly.
func migrate(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS vehicle_registrations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date DATE NOT NULL,
		year INTEGER NOT NULL,
		quarter INTEGER NOT NULL CHECK (quarter BETWEEN 1 AND 4),
		vehicle_category TEXT NOT NULL,
		manufacturer TEXT NOT NULL,
		registrations INTEGER NOT NULL CHECK (registrations >= 0),
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_registrations_series_period
		ON vehicle_registrations(manufacturer, vehicle_category, year, quarter);
	CREATE INDEX IF NOT EXISTS idx_registrations_year
		ON vehicle_registrations(year);

	CREATE TABLE IF NOT EXISTS growth_metrics (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		manufacturer TEXT NOT NULL,
		vehicle_category TEXT NOT NULL,
		year INTEGER NOT NULL,
		quarter INTEGER NOT NULL,
		registrations INTEGER NOT NULL,
		yoy_growth TEXT,
		qoq_growth TEXT,
		calculated_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_growth_series
		ON growth_metrics(manufacturer, vehicle_category);
	`

	_, err := db.Exec(schema)
	return err
}
