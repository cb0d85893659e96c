// Package recordstore implements the volunteer record operations over a
// whole-table storage backend.
//
// Every operation loads the full table, edits it in memory and writes it
// back; nothing is cached between calls. Operations are serialized within
// one process. Nothing coordinates separate processes sharing the same
// backing file.
package recordstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mmynk/hourbook/internal/calculator"
	"github.com/mmynk/hourbook/internal/metrics"
	"github.com/mmynk/hourbook/internal/mirror"
	"github.com/mmynk/hourbook/internal/models"
	"github.com/mmynk/hourbook/internal/spreadsheet"
	"github.com/mmynk/hourbook/internal/storage"
	"github.com/mmynk/hourbook/internal/storage/csvfile"
)

// Credentials verifies and changes the admin password.
type Credentials interface {
	Verify(ctx context.Context, password string) error
	Change(ctx context.Context, current, next string) error
}

// Store implements the record operations.
type Store struct {
	table       storage.Table
	mirror      *mirror.Mirror
	credentials Credentials
	metrics     *metrics.Metrics
	logger      *slog.Logger
	now         func() time.Time

	mu sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithMirror enables automatic workbook mirroring after every mutation.
func WithMirror(m *mirror.Mirror) Option {
	return func(s *Store) { s.mirror = m }
}

// WithCredentials sets the provider used by the password operations.
func WithCredentials(c Credentials) Option {
	return func(s *Store) { s.credentials = c }
}

// WithMetrics records operation counts and timings.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithClock overrides the source of the current date.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates a Store over table.
func New(table storage.Table, opts ...Option) *Store {
	s := &Store{
		table:  table,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ImportResult summarizes an ImportAndMerge call.
type ImportResult struct {
	// Imported is the number of rows read from the source file.
	Imported int
	// Total is the number of rows in the table after duplicates were removed.
	Total int
}

func (r ImportResult) String() string {
	return fmt.Sprintf("Successfully imported %d entries. After removing duplicates, database now has %d entries.",
		r.Imported, r.Total)
}

// ListPeople returns every distinct person, first-seen casing, sorted
// case-insensitively. Blank names are skipped.
func (s *Store) ListPeople(ctx context.Context) ([]string, error) {
	entries, err := s.read(ctx, "list_people")
	if err != nil {
		return nil, err
	}
	names := models.DistinctNames(entries)
	sort.SliceStable(names, func(i, j int) bool {
		return models.NameKey(names[i]) < models.NameKey(names[j])
	})
	return names, nil
}

// AddPerson registers a new person by appending a placeholder row.
// It returns ErrEmptyName for a blank name and ErrDuplicate when the person
// already exists under any casing.
func (s *Store) AddPerson(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	return s.mutate(ctx, "add_person", func(entries []models.Entry) ([]models.Entry, error) {
		if name == "" {
			return nil, ErrEmptyName
		}
		if _, ok := canonicalName(entries, name); ok {
			return nil, ErrDuplicate
		}
		s.logger.Info("Person added", "name", name)
		return append(entries, models.Entry{Name: name}), nil
	})
}

// AddInformation records activity for name. The date is used when it parses
// as YYYY-MM-DD, with month and day optionally unpadded; otherwise today's date is recorded. When the person has a
// placeholder row, the first one is filled in place; otherwise a new row is
// appended under the person's stored casing.
func (s *Store) AddInformation(ctx context.Context, name, location, event, hours, date string) error {
	name = strings.TrimSpace(name)
	location = strings.TrimSpace(location)
	event = strings.TrimSpace(event)
	hours = strings.TrimSpace(hours)

	return s.mutate(ctx, "add_information", func(entries []models.Entry) ([]models.Entry, error) {
		if location == "" && event == "" && hours == "" {
			return nil, ErrNothingToAdd
		}
		if name == "" {
			return nil, ErrEmptyName
		}

		timestamp := s.entryDate(date)

		for i := range entries {
			if models.SameName(entries[i].Name, name) && entries[i].IsEmpty() {
				entries[i].Location = location
				entries[i].Event = event
				entries[i].Hours = hours
				entries[i].Timestamp = timestamp
				s.logger.Info("Placeholder filled", "name", entries[i].Name, "date", timestamp)
				return entries, nil
			}
		}

		if stored, ok := canonicalName(entries, name); ok {
			name = stored
		}
		s.logger.Info("Entry added", "name", name, "date", timestamp)
		return append(entries, models.Entry{
			Name:      name,
			Location:  location,
			Event:     event,
			Hours:     hours,
			Timestamp: timestamp,
		}), nil
	})
}

// AddEntry appends a fully specified row as given. It is the second half of
// editing a row (delete, then re-add).
func (s *Store) AddEntry(ctx context.Context, entry models.Entry) error {
	return s.mutate(ctx, "add_entry", func(entries []models.Entry) ([]models.Entry, error) {
		if strings.TrimSpace(entry.Name) == "" {
			return nil, ErrEmptyName
		}
		return append(entries, entry), nil
	})
}

// GetPersonInfo returns every row for name (case-insensitive) in file order.
func (s *Store) GetPersonInfo(ctx context.Context, name string) ([]models.Entry, error) {
	entries, err := s.read(ctx, "get_person_info")
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	matches := []models.Entry{}
	if name == "" {
		return matches, nil
	}
	for _, e := range entries {
		if models.SameName(e.Name, name) {
			matches = append(matches, e)
		}
	}
	return matches, nil
}

// GetAllEntries returns every row in file order.
func (s *Store) GetAllEntries(ctx context.Context) ([]models.Entry, error) {
	entries, err := s.read(ctx, "get_all_entries")
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []models.Entry{}
	}
	return entries, nil
}

// ImportAndMerge appends the rows of a CSV, XLSX or XLS file to the table
// and drops rows that are exact duplicates of an earlier row.
// It returns ErrImportNotFound when path does not exist and *SchemaError
// when the file lacks required columns; the table is unchanged in both cases.
func (s *Store) ImportAndMerge(ctx context.Context, path string) (ImportResult, error) {
	var result ImportResult
	err := s.mutate(ctx, "import_and_merge", func(entries []models.Entry) ([]models.Entry, error) {
		imported, err := readImport(path)
		if err != nil {
			return nil, err
		}
		merged := dedupe(append(entries, imported...))
		result = ImportResult{Imported: len(imported), Total: len(merged)}
		s.logger.Info("Entries imported",
			"path", path,
			"imported", result.Imported,
			"total", result.Total,
		)
		return merged, nil
	})
	if err != nil {
		return ImportResult{}, err
	}
	return result, nil
}

// DeleteEntry removes every row equal to target and returns how many were
// removed. Names match case-insensitively, as everywhere else in the store;
// location, event, hours and timestamp must match exactly.
func (s *Store) DeleteEntry(ctx context.Context, target models.Entry) (int, error) {
	var removed int
	err := s.mutate(ctx, "delete_entry", func(entries []models.Entry) ([]models.Entry, error) {
		kept := entries[:0]
		for _, e := range entries {
			if matches(e, target) {
				removed++
				continue
			}
			kept = append(kept, e)
		}
		s.logger.Info("Entries deleted", "name", target.Name, "removed", removed)
		return kept, nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// CleanEmptyEntries removes every row without location, event and hours,
// including placeholders, and returns how many were removed. A person whose
// only row was a placeholder disappears from ListPeople.
func (s *Store) CleanEmptyEntries(ctx context.Context) (int, error) {
	var removed int
	err := s.mutate(ctx, "clean_empty_entries", func(entries []models.Entry) ([]models.Entry, error) {
		kept := entries[:0]
		for _, e := range entries {
			if e.IsEmpty() {
				removed++
				continue
			}
			kept = append(kept, e)
		}
		s.logger.Info("Empty entries cleaned", "removed", removed)
		return kept, nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// ExportCSV writes the current table to path as CSV.
func (s *Store) ExportCSV(ctx context.Context, path string) error {
	entries, err := s.read(ctx, "export_csv")
	if err != nil {
		return err
	}
	if err := csvfile.WriteFile(path, entries); err != nil {
		s.logger.Error("CSV export failed", "path", path, "error", err)
		return ioError("export csv", err)
	}
	s.logger.Info("CSV export completed", "path", path, "entries", len(entries))
	return nil
}

// ExportExcel writes the current table to path as a workbook with an
// "All Data" sheet and one sheet per person.
func (s *Store) ExportExcel(ctx context.Context, path string) error {
	entries, err := s.read(ctx, "export_excel")
	if err != nil {
		return err
	}
	if err := spreadsheet.WriteWorkbook(path, entries); err != nil {
		s.logger.Error("Excel export failed", "path", path, "error", err)
		return ioError("export excel", err)
	}
	s.logger.Info("Excel export completed", "path", path, "entries", len(entries))
	return nil
}

// SetupMirror writes the workbook at path now and keeps it updated after
// every subsequent change, remembering the path across restarts.
func (s *Store) SetupMirror(ctx context.Context, path string) error {
	if s.mirror == nil {
		return ErrNoMirror
	}
	entries, err := s.read(ctx, "setup_mirror")
	if err != nil {
		return err
	}
	if err := s.mirror.Configure(path, entries); err != nil {
		s.logger.Error("Mirror setup failed", "path", path, "error", err)
		return ioError("configure excel mirror", err)
	}
	return nil
}

// MirrorPath returns the mirrored workbook path, or "" when disabled.
func (s *Store) MirrorPath() string {
	return s.mirror.Path()
}

// Summary returns per-person hour totals.
func (s *Store) Summary(ctx context.Context) ([]calculator.PersonTotal, error) {
	entries, err := s.read(ctx, "summary")
	if err != nil {
		return nil, err
	}
	return calculator.SummarizeHours(entries), nil
}

// VerifyPassword checks password against the admin credentials.
func (s *Store) VerifyPassword(ctx context.Context, password string) error {
	if s.credentials == nil {
		return ErrNoCredentials
	}
	return s.credentials.Verify(ctx, password)
}

// ChangePassword replaces the admin password after checking current.
func (s *Store) ChangePassword(ctx context.Context, current, next string) error {
	if s.credentials == nil {
		return ErrNoCredentials
	}
	start := time.Now()
	err := s.credentials.Change(ctx, current, next)
	s.observe("change_password", start, err)
	if err != nil {
		s.logger.Warn("Password change failed", "error", err)
		return err
	}
	s.logger.Info("Admin password changed")
	return nil
}

// read loads the table under the store lock.
func (s *Store) read(ctx context.Context, op string) ([]models.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	entries, err := s.table.Load(ctx)
	if err != nil {
		err = ioError("load entries", err)
		s.logger.Error("Load failed", "operation", op, "error", err)
	}
	s.observe(op, start, err)
	return entries, err
}

// mutate runs one read-modify-write cycle. When edit fails nothing is
// written. After a successful save the mirror is updated.
func (s *Store) mutate(ctx context.Context, op string, edit func([]models.Entry) ([]models.Entry, error)) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	defer func() { s.observe(op, start, err) }()

	entries, err := s.table.Load(ctx)
	if err != nil {
		err = ioError("load entries", err)
		s.logger.Error("Load failed", "operation", op, "error", err)
		return err
	}

	entries, err = edit(entries)
	if err != nil {
		return err
	}

	if err = s.table.Save(ctx, entries); err != nil {
		err = ioError("save entries", err)
		s.logger.Error("Save failed", "operation", op, "error", err)
		return err
	}

	s.metrics.SetEntries(len(entries))
	if s.mirror != nil {
		s.mirror.Update(entries)
	}
	return nil
}

func (s *Store) observe(op string, start time.Time, err error) {
	result := metrics.ResultOK
	switch {
	case err == nil:
	case isRejection(err):
		result = metrics.ResultRejected
	default:
		result = metrics.ResultError
	}
	s.metrics.ObserveOperation(op, start, result)
}

// entryDateLayouts are the accepted input forms of an entry date. The second
// allows an unpadded month or day, as in 2024-1-5.
var entryDateLayouts = []string{models.DateLayout, "2006-1-2"}

// entryDate returns date normalized to YYYY-MM-DD when it is a valid
// calendar date, otherwise today's date.
func (s *Store) entryDate(date string) string {
	date = strings.TrimSpace(date)
	for _, layout := range entryDateLayouts {
		if d, err := time.Parse(layout, date); err == nil {
			return d.Format(models.DateLayout)
		}
	}
	return s.now().Format(models.DateLayout)
}

// canonicalName returns the stored casing of name, if the person exists.
func canonicalName(entries []models.Entry, name string) (string, bool) {
	for _, e := range entries {
		if models.SameName(e.Name, name) {
			return e.Name, true
		}
	}
	return "", false
}

func matches(e, target models.Entry) bool {
	return models.SameName(e.Name, target.Name) &&
		e.Location == target.Location &&
		e.Event == target.Event &&
		e.Hours == target.Hours &&
		e.Timestamp == target.Timestamp
}

// dedupe drops rows equal in every field to an earlier row.
func dedupe(entries []models.Entry) []models.Entry {
	seen := make(map[models.Entry]struct{}, len(entries))
	out := make([]models.Entry, 0, len(entries))
	for _, e := range entries {
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}

// readImport reads the entries of a CSV or spreadsheet file.
func readImport(path string) ([]models.Entry, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrImportNotFound
		}
		return nil, ioError("open import file", err)
	}

	var (
		header []string
		rows   [][]string
		err    error
	)
	if spreadsheet.IsWorkbook(path) {
		header, rows, err = spreadsheet.ReadRows(path)
	} else {
		header, rows, err = csvfile.ReadRows(path)
	}
	if err != nil {
		return nil, ioError("read import file", err)
	}

	if _, missing := storage.HeaderIndex(header); len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}
	return storage.EntriesFromRows(header, rows), nil
}
