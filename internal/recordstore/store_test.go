package recordstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/mmynk/hourbook/internal/auth"
	"github.com/mmynk/hourbook/internal/metrics"
	"github.com/mmynk/hourbook/internal/mirror"
	"github.com/mmynk/hourbook/internal/models"
	"github.com/mmynk/hourbook/internal/spreadsheet"
	"github.com/mmynk/hourbook/internal/storage/csvfile"
)

var fixedNow = time.Date(2024, time.March, 9, 15, 4, 5, 0, time.UTC)

// setupStore creates a Store over a fresh CSV file in a temp directory.
func setupStore(t *testing.T, opts ...Option) (*Store, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "personal_data.csv")
	table, err := csvfile.New(path)
	if err != nil {
		t.Fatalf("failed to create table: %v", err)
	}
	t.Cleanup(func() { table.Close() })

	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return New(table, opts...), path
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func mustEntries(t *testing.T, s *Store) []models.Entry {
	t.Helper()
	entries, err := s.GetAllEntries(context.Background())
	if err != nil {
		t.Fatalf("GetAllEntries failed: %v", err)
	}
	return entries
}

func TestListPeople(t *testing.T) {
	ctx := context.Background()

	t.Run("empty table", func(t *testing.T) {
		s, _ := setupStore(t)
		people, err := s.ListPeople(ctx)
		if err != nil {
			t.Fatalf("ListPeople failed: %v", err)
		}
		if len(people) != 0 {
			t.Errorf("expected no people, got %v", people)
		}
	})

	t.Run("dedupes case-insensitively and sorts", func(t *testing.T) {
		s, path := setupStore(t)
		writeFile(t, path, "Name,Location,Event,Hours,Timestamp\n"+
			"charlie,Park,Cleanup,2,2024-01-01\n"+
			"Alice,,,,\n"+
			"CHARLIE,Park,Cleanup,1,2024-01-02\n"+
			",Lost,Row,1,2024-01-03\n"+
			"   ,Blank,Name,1,2024-01-03\n"+
			"bob,Library,Reading,3,2024-01-04\n")

		people, err := s.ListPeople(ctx)
		if err != nil {
			t.Fatalf("ListPeople failed: %v", err)
		}
		want := []string{"Alice", "bob", "charlie"}
		if !slices.Equal(people, want) {
			t.Errorf("ListPeople = %v, want %v", people, want)
		}
	})
}

func TestAddPerson(t *testing.T) {
	ctx := context.Background()

	t.Run("adds placeholder", func(t *testing.T) {
		s, _ := setupStore(t)
		if err := s.AddPerson(ctx, "Alice"); err != nil {
			t.Fatalf("AddPerson failed: %v", err)
		}

		entries := mustEntries(t, s)
		if len(entries) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(entries))
		}
		if entries[0] != (models.Entry{Name: "Alice"}) {
			t.Errorf("expected placeholder for Alice, got %+v", entries[0])
		}
	})

	t.Run("rejects blank name", func(t *testing.T) {
		s, _ := setupStore(t)
		for _, name := range []string{"", "   ", "\t"} {
			if err := s.AddPerson(ctx, name); !errors.Is(err, ErrEmptyName) {
				t.Errorf("AddPerson(%q) error = %v, want ErrEmptyName", name, err)
			}
		}
		if n := len(mustEntries(t, s)); n != 0 {
			t.Errorf("expected no rows written, got %d", n)
		}
	})

	t.Run("duplicate under different case", func(t *testing.T) {
		s, _ := setupStore(t)
		if err := s.AddPerson(ctx, "Alice"); err != nil {
			t.Fatalf("AddPerson failed: %v", err)
		}
		if err := s.AddPerson(ctx, "alice"); !errors.Is(err, ErrDuplicate) {
			t.Fatalf("second AddPerson error = %v, want ErrDuplicate", err)
		}

		people, err := s.ListPeople(ctx)
		if err != nil {
			t.Fatalf("ListPeople failed: %v", err)
		}
		if !slices.Equal(people, []string{"Alice"}) {
			t.Errorf("ListPeople = %v, want [Alice]", people)
		}
	})

	t.Run("no case-insensitive duplicates for any sequence", func(t *testing.T) {
		s, _ := setupStore(t)
		for _, name := range []string{"Bob", "bob", "BOB", "Ann", "aNN", "Zoe", "zoe ", " Zoe"} {
			_ = s.AddPerson(ctx, name)
		}
		people, err := s.ListPeople(ctx)
		if err != nil {
			t.Fatalf("ListPeople failed: %v", err)
		}
		seen := map[string]bool{}
		for _, p := range people {
			key := strings.ToLower(p)
			if seen[key] {
				t.Errorf("duplicate person %q in %v", p, people)
			}
			seen[key] = true
		}
		if len(people) != 3 {
			t.Errorf("expected 3 people, got %v", people)
		}
	})
}

func TestAddInformation(t *testing.T) {
	ctx := context.Background()

	t.Run("all fields blank is a no-op", func(t *testing.T) {
		s, _ := setupStore(t)
		if err := s.AddPerson(ctx, "Alice"); err != nil {
			t.Fatalf("AddPerson failed: %v", err)
		}
		err := s.AddInformation(ctx, "Alice", "", " ", "", "")
		if !errors.Is(err, ErrNothingToAdd) {
			t.Fatalf("error = %v, want ErrNothingToAdd", err)
		}
		if n := len(mustEntries(t, s)); n != 1 {
			t.Errorf("row count changed: got %d, want 1", n)
		}
	})

	t.Run("consumes placeholder", func(t *testing.T) {
		s, _ := setupStore(t)
		if err := s.AddPerson(ctx, "Bob"); err != nil {
			t.Fatalf("AddPerson failed: %v", err)
		}
		if err := s.AddInformation(ctx, "bob", "Park", "Cleanup", "3", ""); err != nil {
			t.Fatalf("AddInformation failed: %v", err)
		}

		rows, err := s.GetPersonInfo(ctx, "BOB")
		if err != nil {
			t.Fatalf("GetPersonInfo failed: %v", err)
		}
		if len(rows) != 1 {
			t.Fatalf("expected exactly one row for Bob, got %d: %+v", len(rows), rows)
		}
		want := models.Entry{Name: "Bob", Location: "Park", Event: "Cleanup", Hours: "3", Timestamp: "2024-03-09"}
		if rows[0] != want {
			t.Errorf("row = %+v, want %+v", rows[0], want)
		}
	})

	t.Run("only the first placeholder is consumed", func(t *testing.T) {
		s, path := setupStore(t)
		writeFile(t, path, "Name,Location,Event,Hours,Timestamp\nBob,,,,\nbob,,,,\n")

		if err := s.AddInformation(ctx, "Bob", "Park", "", "", "2024-02-01"); err != nil {
			t.Fatalf("AddInformation failed: %v", err)
		}
		entries := mustEntries(t, s)
		if len(entries) != 2 {
			t.Fatalf("expected 2 rows, got %d", len(entries))
		}
		if entries[0].Location != "Park" || entries[0].Timestamp != "2024-02-01" {
			t.Errorf("first placeholder not filled: %+v", entries[0])
		}
		if !entries[1].IsEmpty() {
			t.Errorf("second placeholder should remain empty: %+v", entries[1])
		}
	})

	t.Run("appends under stored casing", func(t *testing.T) {
		s, _ := setupStore(t)
		if err := s.AddInformation(ctx, "Carol", "Shelter", "Meals", "2", "2024-01-05"); err != nil {
			t.Fatalf("AddInformation failed: %v", err)
		}
		if err := s.AddInformation(ctx, "CAROL", "Shelter", "Meals", "4", "2024-01-06"); err != nil {
			t.Fatalf("AddInformation failed: %v", err)
		}
		entries := mustEntries(t, s)
		if len(entries) != 2 {
			t.Fatalf("expected 2 rows, got %d", len(entries))
		}
		for _, e := range entries {
			if e.Name != "Carol" {
				t.Errorf("expected stored casing Carol, got %q", e.Name)
			}
		}
	})

	t.Run("date handling", func(t *testing.T) {
		tests := []struct {
			date string
			want string
		}{
			{"2023-12-31", "2023-12-31"},
			{" 2023-07-04 ", "2023-07-04"},
			{"", "2024-03-09"},
			{"2023-02-30", "2024-03-09"},
			{"31/12/2023", "2024-03-09"},
			{"yesterday", "2024-03-09"},
			{"2024-1-5", "2024-01-05"},
			{"2024-01-5", "2024-01-05"},
			{"2023-2-29", "2024-03-09"},
		}
		for _, tt := range tests {
			t.Run(tt.date, func(t *testing.T) {
				s, _ := setupStore(t)
				if err := s.AddInformation(ctx, "Dan", "Zoo", "", "1", tt.date); err != nil {
					t.Fatalf("AddInformation failed: %v", err)
				}
				if got := mustEntries(t, s)[0].Timestamp; got != tt.want {
					t.Errorf("timestamp = %q, want %q", got, tt.want)
				}
			})
		}
	})
}

func TestGetPersonInfo(t *testing.T) {
	ctx := context.Background()
	s, path := setupStore(t)
	writeFile(t, path, "Name,Location,Event,Hours,Timestamp\n"+
		"Alice,Park,Cleanup,2,2024-01-01\n"+
		",Lost,Row,1,2024-01-02\n"+
		"   ,Blank,Name,1,2024-01-03\n"+
		"alice,Zoo,Feeding,1,2024-01-04\n")

	t.Run("matches case-insensitively", func(t *testing.T) {
		rows, err := s.GetPersonInfo(ctx, " ALICE ")
		if err != nil {
			t.Fatalf("GetPersonInfo failed: %v", err)
		}
		if len(rows) != 2 {
			t.Errorf("expected 2 rows, got %d: %+v", len(rows), rows)
		}
	})

	for _, name := range []string{"", "   "} {
		t.Run("blank name "+strconv.Quote(name), func(t *testing.T) {
			rows, err := s.GetPersonInfo(ctx, name)
			if err != nil {
				t.Fatalf("GetPersonInfo failed: %v", err)
			}
			if rows == nil || len(rows) != 0 {
				t.Errorf("expected empty non-nil result, got %+v", rows)
			}
		})
	}
}

func TestExportExcelQuotedName(t *testing.T) {
	ctx := context.Background()
	s, _ := setupStore(t)
	if err := s.AddInformation(ctx, "'Bob", "Park", "Cleanup", "2", "2024-01-01"); err != nil {
		t.Fatalf("AddInformation failed: %v", err)
	}
	if err := s.AddInformation(ctx, "Ann'", "Zoo", "", "1", "2024-01-02"); err != nil {
		t.Fatalf("AddInformation failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "export.xlsx")
	if err := s.ExportExcel(ctx, path); err != nil {
		t.Fatalf("ExportExcel failed: %v", err)
	}
	_, rows, err := spreadsheet.ReadRows(path)
	if err != nil {
		t.Fatalf("ReadRows failed: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("expected 2 exported rows, got %d", len(rows))
	}
}

func TestImportAndMerge(t *testing.T) {
	ctx := context.Background()

	t.Run("missing file", func(t *testing.T) {
		s, _ := setupStore(t)
		_, err := s.ImportAndMerge(ctx, filepath.Join(t.TempDir(), "nope.csv"))
		if !errors.Is(err, ErrImportNotFound) {
			t.Errorf("error = %v, want ErrImportNotFound", err)
		}
	})

	t.Run("missing column leaves target unchanged", func(t *testing.T) {
		s, path := setupStore(t)
		if err := s.AddInformation(ctx, "Alice", "Park", "Cleanup", "2", "2024-01-01"); err != nil {
			t.Fatalf("AddInformation failed: %v", err)
		}
		before, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read data file: %v", err)
		}

		src := filepath.Join(t.TempDir(), "import.csv")
		writeFile(t, src, "Name,Location,Event,Timestamp\nBob,Park,Cleanup,2024-01-02\n")

		_, err = s.ImportAndMerge(ctx, src)
		var schemaErr *SchemaError
		if !errors.As(err, &schemaErr) {
			t.Fatalf("error = %v, want *SchemaError", err)
		}
		if !strings.Contains(err.Error(), "Hours") {
			t.Errorf("error %q should name the Hours column", err)
		}

		after, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read data file: %v", err)
		}
		if string(before) != string(after) {
			t.Errorf("target file changed:\nbefore: %q\nafter:  %q", before, after)
		}
	})

	t.Run("duplicate rows are dropped", func(t *testing.T) {
		s, _ := setupStore(t)
		if err := s.AddInformation(ctx, "Alice", "Park", "Cleanup", "2", "2024-01-01"); err != nil {
			t.Fatalf("AddInformation failed: %v", err)
		}
		if err := s.AddInformation(ctx, "Bob", "Library", "Reading", "1", "2024-01-02"); err != nil {
			t.Fatalf("AddInformation failed: %v", err)
		}

		src := filepath.Join(t.TempDir(), "import.csv")
		writeFile(t, src, "Name,Location,Event,Hours,Timestamp\nAlice,Park,Cleanup,2,2024-01-01\n")

		result, err := s.ImportAndMerge(ctx, src)
		if err != nil {
			t.Fatalf("ImportAndMerge failed: %v", err)
		}
		if result.Imported != 1 {
			t.Errorf("Imported = %d, want 1", result.Imported)
		}
		if result.Total != 2 {
			t.Errorf("Total = %d, want 2", result.Total)
		}
		if n := len(mustEntries(t, s)); n != 2 {
			t.Errorf("table has %d rows, want 2", n)
		}
	})

	t.Run("columns in any order", func(t *testing.T) {
		s, _ := setupStore(t)
		src := filepath.Join(t.TempDir(), "import.csv")
		writeFile(t, src, "Timestamp,Hours,Event,Location,Name,Notes\n2024-05-01,3,Cleanup,Park,Eve,ignored\n")

		if _, err := s.ImportAndMerge(ctx, src); err != nil {
			t.Fatalf("ImportAndMerge failed: %v", err)
		}
		want := models.Entry{Name: "Eve", Location: "Park", Event: "Cleanup", Hours: "3", Timestamp: "2024-05-01"}
		if got := mustEntries(t, s); len(got) != 1 || got[0] != want {
			t.Errorf("entries = %+v, want [%+v]", got, want)
		}
	})

	t.Run("xlsx source", func(t *testing.T) {
		s, _ := setupStore(t)
		src := filepath.Join(t.TempDir(), "import.xlsx")
		rows := []models.Entry{
			{Name: "Finn", Location: "Beach", Event: "Cleanup", Hours: "2", Timestamp: "2024-06-01"},
			{Name: "Gail", Location: "Park", Event: "Planting", Hours: "5", Timestamp: "2024-06-02"},
		}
		if err := spreadsheet.WriteWorkbook(src, rows); err != nil {
			t.Fatalf("WriteWorkbook failed: %v", err)
		}

		result, err := s.ImportAndMerge(ctx, src)
		if err != nil {
			t.Fatalf("ImportAndMerge failed: %v", err)
		}
		if result.Imported != 2 || result.Total != 2 {
			t.Errorf("result = %+v, want 2 imported, 2 total", result)
		}
		if got := mustEntries(t, s); !slices.Equal(got, rows) {
			t.Errorf("entries = %+v, want %+v", got, rows)
		}
	})
}

func TestExportCSVRoundTrip(t *testing.T) {
	ctx := context.Background()
	src, _ := setupStore(t)

	if err := src.AddPerson(ctx, "Alice"); err != nil {
		t.Fatalf("AddPerson failed: %v", err)
	}
	if err := src.AddInformation(ctx, "Bob", "Park, North", `The "Big" Cleanup`, "2.5", "2024-01-01"); err != nil {
		t.Fatalf("AddInformation failed: %v", err)
	}
	if err := src.AddInformation(ctx, "Carol", "Library", "", "", "2024-01-02"); err != nil {
		t.Fatalf("AddInformation failed: %v", err)
	}

	exported := filepath.Join(t.TempDir(), "export.csv")
	if err := src.ExportCSV(ctx, exported); err != nil {
		t.Fatalf("ExportCSV failed: %v", err)
	}

	dst, _ := setupStore(t)
	if _, err := dst.ImportAndMerge(ctx, exported); err != nil {
		t.Fatalf("ImportAndMerge failed: %v", err)
	}

	want := mustEntries(t, src)
	got := mustEntries(t, dst)
	if !sameRowSet(got, want) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, want)
	}
}

func sameRowSet(a, b []models.Entry) bool {
	set := func(rows []models.Entry) map[models.Entry]bool {
		m := make(map[models.Entry]bool, len(rows))
		for _, r := range rows {
			m[r] = true
		}
		return m
	}
	sa, sb := set(a), set(b)
	if len(sa) != len(sb) {
		return false
	}
	for r := range sa {
		if !sb[r] {
			return false
		}
	}
	return true
}

func TestCleanEmptyEntries(t *testing.T) {
	ctx := context.Background()
	s, path := setupStore(t)
	writeFile(t, path, "Name,Location,Event,Hours,Timestamp\n"+
		"Alice,,,,\n"+
		"Bob,Park,Cleanup,2,2024-01-01\n"+
		"Carol,,,,2024-01-01\n"+
		",,,,\n"+
		"Dan,,,1,2024-01-02\n")

	removed, err := s.CleanEmptyEntries(ctx)
	if err != nil {
		t.Fatalf("CleanEmptyEntries failed: %v", err)
	}
	if removed != 3 {
		t.Errorf("removed = %d, want 3", removed)
	}
	if n := len(mustEntries(t, s)); n != 2 {
		t.Errorf("table has %d rows, want 2", n)
	}

	people, err := s.ListPeople(ctx)
	if err != nil {
		t.Fatalf("ListPeople failed: %v", err)
	}
	if !slices.Equal(people, []string{"Bob", "Dan"}) {
		t.Errorf("ListPeople = %v, want [Bob Dan]", people)
	}
}

func TestDeleteEntry(t *testing.T) {
	ctx := context.Background()
	s, path := setupStore(t)
	writeFile(t, path, "Name,Location,Event,Hours,Timestamp\n"+
		"Alice,Park,Cleanup,2,2024-01-01\n"+
		"alice,Park,Cleanup,2,2024-01-01\n"+
		"Alice,Park,Cleanup,3,2024-01-01\n")

	t.Run("matches name case-insensitively and other fields exactly", func(t *testing.T) {
		removed, err := s.DeleteEntry(ctx, models.Entry{
			Name: "ALICE", Location: "Park", Event: "Cleanup", Hours: "2", Timestamp: "2024-01-01",
		})
		if err != nil {
			t.Fatalf("DeleteEntry failed: %v", err)
		}
		if removed != 2 {
			t.Errorf("removed = %d, want 2", removed)
		}
		entries := mustEntries(t, s)
		if len(entries) != 1 || entries[0].Hours != "3" {
			t.Errorf("remaining = %+v, want the 3-hour row", entries)
		}
	})

	t.Run("no match is not an error", func(t *testing.T) {
		removed, err := s.DeleteEntry(ctx, models.Entry{Name: "Alice", Location: "park"})
		if err != nil {
			t.Fatalf("DeleteEntry failed: %v", err)
		}
		if removed != 0 {
			t.Errorf("removed = %d, want 0", removed)
		}
	})
}

func TestAddEntry(t *testing.T) {
	ctx := context.Background()
	s, _ := setupStore(t)

	entry := models.Entry{Name: "Alice", Location: "Park", Event: "Cleanup", Hours: "2", Timestamp: "2020-01-01"}
	if err := s.AddEntry(ctx, entry); err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}
	if got := mustEntries(t, s); len(got) != 1 || got[0] != entry {
		t.Errorf("entries = %+v, want [%+v]", got, entry)
	}
	if err := s.AddEntry(ctx, models.Entry{Location: "Park"}); !errors.Is(err, ErrEmptyName) {
		t.Errorf("error = %v, want ErrEmptyName", err)
	}
}

func TestMirrorUpdatedAfterMutation(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	m := metrics.New()
	mr := mirror.New(filepath.Join(dir, "excel_config.json"), m, nil)
	s, _ := setupStore(t, WithMirror(mr), WithMetrics(m))

	workbook := filepath.Join(dir, "mirror.xlsx")
	if err := s.SetupMirror(ctx, workbook); err != nil {
		t.Fatalf("SetupMirror failed: %v", err)
	}
	if s.MirrorPath() != workbook {
		t.Errorf("MirrorPath = %q, want %q", s.MirrorPath(), workbook)
	}

	if err := s.AddInformation(ctx, "Alice", "Park", "Cleanup", "2", "2024-01-01"); err != nil {
		t.Fatalf("AddInformation failed: %v", err)
	}

	header, rows, err := spreadsheet.ReadRows(workbook)
	if err != nil {
		t.Fatalf("ReadRows failed: %v", err)
	}
	if !slices.Equal(header, models.Columns) {
		t.Errorf("header = %v, want %v", header, models.Columns)
	}
	if len(rows) != 1 || rows[0][0] != "Alice" {
		t.Errorf("mirror rows = %v, want one row for Alice", rows)
	}
}

func TestMirrorFailureDoesNotFailOperation(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	configPath := filepath.Join(dir, "excel_config.json")

	// The mirror target is a directory, so every workbook write fails.
	target := filepath.Join(dir, "blocked.xlsx")
	if err := os.Mkdir(target, 0755); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}
	if err := mirror.SaveConfig(configPath, mirror.Config{ExcelFilePath: target}); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	s, _ := setupStore(t, WithMirror(mirror.New(configPath, nil, nil)))
	if err := s.AddPerson(ctx, "Alice"); err != nil {
		t.Errorf("AddPerson should succeed despite mirror failure, got %v", err)
	}
}

type fakeCredentials struct {
	password string
}

func (f *fakeCredentials) Verify(ctx context.Context, password string) error {
	if password != f.password {
		return auth.ErrIncorrectPassword
	}
	return nil
}

func (f *fakeCredentials) Change(ctx context.Context, current, next string) error {
	if err := f.Verify(ctx, current); err != nil {
		return err
	}
	f.password = next
	return nil
}

func TestPasswordOperations(t *testing.T) {
	ctx := context.Background()

	t.Run("without provider", func(t *testing.T) {
		s, _ := setupStore(t)
		if err := s.VerifyPassword(ctx, "x"); !errors.Is(err, ErrNoCredentials) {
			t.Errorf("error = %v, want ErrNoCredentials", err)
		}
	})

	t.Run("change requires current password", func(t *testing.T) {
		creds := &fakeCredentials{password: "correct horse"}
		s, _ := setupStore(t, WithCredentials(creds))

		if err := s.ChangePassword(ctx, "wrong", "battery staple"); !errors.Is(err, auth.ErrIncorrectPassword) {
			t.Errorf("error = %v, want ErrIncorrectPassword", err)
		}
		if err := s.ChangePassword(ctx, "correct horse", "battery staple"); err != nil {
			t.Fatalf("ChangePassword failed: %v", err)
		}
		if err := s.VerifyPassword(ctx, "battery staple"); err != nil {
			t.Errorf("VerifyPassword with new password failed: %v", err)
		}
	})
}

func TestSummary(t *testing.T) {
	ctx := context.Background()
	s, _ := setupStore(t)
	if err := s.AddInformation(ctx, "Alice", "Park", "Cleanup", "2", "2024-01-01"); err != nil {
		t.Fatalf("AddInformation failed: %v", err)
	}
	if err := s.AddInformation(ctx, "alice", "Park", "Cleanup", "1.5", "2024-01-03"); err != nil {
		t.Fatalf("AddInformation failed: %v", err)
	}

	totals, err := s.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if len(totals) != 1 || totals[0].Hours != 3.5 || totals[0].Entries != 2 {
		t.Errorf("totals = %+v, want Alice with 3.5 hours over 2 entries", totals)
	}
}
