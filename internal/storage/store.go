// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/hourbook/internal/models"
)

// ErrSchemaTooNew is returned when the backing data was written by a newer
// schema version than this build understands.
var ErrSchemaTooNew = errors.New("stored schema version is newer than supported")

// Table defines whole-table storage for volunteer entries.
// Every Record Store operation loads the full table, edits it in memory and
// saves it back, so a backend only needs these two primitives.
// This abstraction allows swapping storage backends (CSV, SQLite, etc.)
// without changing the record store.
type Table interface {
	// Load returns every entry in insertion order.
	Load(ctx context.Context) ([]models.Entry, error)

	// Save replaces the stored table with entries.
	Save(ctx context.Context, entries []models.Entry) error

	// Close releases any resources held by the table.
	Close() error
}
