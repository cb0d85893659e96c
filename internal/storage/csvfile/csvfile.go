// Package csvfile provides a CSV-backed implementation of the storage.Table interface.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/mmynk/hourbook/internal/models"
	"github.com/mmynk/hourbook/internal/storage"
)

// Ensure Table implements storage.Table
var _ storage.Table = (*Table)(nil)

// Table implements storage.Table on a single CSV file with a header row.
// Nothing is cached: every Load reads the whole file and every Save rewrites it.
type Table struct {
	path string
	mu   sync.Mutex
}

// New opens the CSV table at path.
// It creates the file (and parent directories) with the canonical header if
// it does not exist, and upgrades an existing file to the current schema.
func New(path string) (*Table, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	t := &Table{path: path}

	header, rows, err := ReadRows(path)
	if errors.Is(err, os.ErrNotExist) {
		if err := t.write(nil); err != nil {
			return nil, fmt.Errorf("failed to create data file: %w", err)
		}
		slog.Info("Created data file", "path", path)
		return t, nil
	}
	if err != nil {
		return nil, err
	}

	entries, applied := upgrade(header, rows)
	if len(applied) > 0 {
		if err := t.write(entries); err != nil {
			return nil, fmt.Errorf("failed to upgrade data file: %w", err)
		}
		slog.Info("Upgraded data file schema",
			"path", path,
			"version", schemaVersion,
			"migrations", applied,
		)
	}

	return t, nil
}

// Path returns the location of the backing file.
func (t *Table) Path() string {
	return t.path
}

// Load reads every entry from the file.
func (t *Table) Load(ctx context.Context) ([]models.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	header, rows, err := ReadRows(t.path)
	if err != nil {
		return nil, err
	}
	return storage.EntriesFromRows(header, rows), nil
}

// Save rewrites the file with entries.
func (t *Table) Save(ctx context.Context, entries []models.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.write(entries)
}

// Close is a no-op; the file is not held open between calls.
func (t *Table) Close() error {
	return nil
}

// write replaces the file through a temp file and rename so readers never
// observe a half-written table.
func (t *Table) write(entries []models.Entry) error {
	tmp, err := os.CreateTemp(filepath.Dir(t.path), ".hourbook-*.csv")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := WriteEntries(tmp, entries); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, t.path); err != nil {
		return fmt.Errorf("failed to replace data file: %w", err)
	}
	return nil
}

// ReadRows reads a CSV file into its header and data rows.
// Rows may have any number of fields. An empty file yields a nil header.
func ReadRows(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}

	var rows [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		rows = append(rows, row)
	}
	return header, rows, nil
}

// WriteEntries writes the canonical header followed by entries.
func WriteEntries(w io.Writer, entries []models.Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(models.Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, e := range entries {
		if err := cw.Write(e.Values()); err != nil {
			return fmt.Errorf("failed to write entry: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush entries: %w", err)
	}
	return nil
}

// WriteFile writes entries to path as CSV, replacing any existing file.
func WriteFile(path string, entries []models.Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WriteEntries(f, entries); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
