package csvfile

import (
	"slices"

	"github.com/mmynk/hourbook/internal/models"
	"github.com/mmynk/hourbook/internal/storage"
)

// schemaVersion is the current layout of the backing file.
//
//	0: any header lacking one or more canonical columns (early files)
//	1: exactly models.Columns, in order
const schemaVersion = 1

// migration upgrades a table from version from to from+1.
type migration struct {
	from  int
	name  string
	apply func(header []string, rows [][]string) []models.Entry
}

var migrations = []migration{
	{from: 0, name: "backfill required columns", apply: storage.EntriesFromRows},
}

// detectVersion infers the schema version of a file from its header.
func detectVersion(header []string) int {
	if slices.Equal(header, models.Columns) {
		return 1
	}
	return 0
}

// upgrade runs every migration needed to bring header/rows to
// schemaVersion. It returns the names of the migrations applied, which is
// empty when the file was already current.
func upgrade(header []string, rows [][]string) ([]models.Entry, []string) {
	version := detectVersion(header)
	if version == schemaVersion {
		return storage.EntriesFromRows(header, rows), nil
	}

	var entries []models.Entry
	var applied []string
	for _, m := range migrations {
		if m.from < version {
			continue
		}
		entries = m.apply(header, rows)
		version = m.from + 1
		header = models.Columns
		rows = toRows(entries)
		applied = append(applied, m.name)
	}
	return entries, applied
}

func toRows(entries []models.Entry) [][]string {
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = e.Values()
	}
	return rows
}
