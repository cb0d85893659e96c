// Package sqlite provides a SQLite-backed implementation of the storage.Table interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/hourbook/internal/models"
	"github.com/mmynk/hourbook/internal/storage"
)

// Ensure SQLiteStore implements storage.Table
var _ storage.Table = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Table using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open database with pure Go driver
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One writer at a time; SQLite serializes anyway and this avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	// Run migrations
	if err := runMigrations(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load returns all entries ordered by insertion.
func (s *SQLiteStore) Load(ctx context.Context) ([]models.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name, location, event, hours, timestamp FROM entries ORDER BY position",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	var entries []models.Entry
	for rows.Next() {
		var e models.Entry
		if err := rows.Scan(&e.Name, &e.Location, &e.Event, &e.Hours, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}

	return entries, nil
}

// Save replaces every stored entry inside a single transaction.
func (s *SQLiteStore) Save(ctx context.Context, entries []models.Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM entries"); err != nil {
		return fmt.Errorf("failed to clear entries: %w", err)
	}
	// Restart positions so the table does not grow its counter forever.
	if _, err := tx.ExecContext(ctx, "DELETE FROM sqlite_sequence WHERE name = 'entries'"); err != nil {
		return fmt.Errorf("failed to reset entry positions: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO entries (name, location, event, hours, timestamp) VALUES (?, ?, ?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, e.Name, e.Location, e.Event, e.Hours, e.Timestamp); err != nil {
			return fmt.Errorf("failed to insert entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
