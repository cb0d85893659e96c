package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/mmynk/hourbook/internal/storage"
)

// migrations are applied in order, once each. The index+1 of a statement is
// its schema version, recorded in schema_migrations after it succeeds.
var migrations = []string{
	// 1: entries table. position keeps insertion order, which callers rely on.
	`CREATE TABLE IF NOT EXISTS entries (
    position INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL DEFAULT '',
    location TEXT NOT NULL DEFAULT '',
    event TEXT NOT NULL DEFAULT '',
    hours TEXT NOT NULL DEFAULT '',
    timestamp TEXT NOT NULL DEFAULT ''
);`,

	// 2: case-insensitive lookups by name.
	`CREATE INDEX IF NOT EXISTS idx_entries_name ON entries(name COLLATE NOCASE);`,
}

// schemaVersion is the version this build migrates to.
var schemaVersion = len(migrations)

// runMigrations brings the database up to schemaVersion.
func runMigrations(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
    version INTEGER PRIMARY KEY,
    applied_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
)`); err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	var current int
	if err := db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&current); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current > schemaVersion {
		return fmt.Errorf("%w: database at %d, build supports %d", storage.ErrSchemaTooNew, current, schemaVersion)
	}

	for v := current + 1; v <= schemaVersion; v++ {
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", v, err)
		}
		if _, err := tx.ExecContext(ctx, migrations[v-1]); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to apply migration %d: %w", v, err)
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES (?)", v); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", v, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", v, err)
		}
		slog.Info("Applied database migration", "version", v)
	}
	return nil
}
