package storage

import (
	"strings"

	"github.com/mmynk/hourbook/internal/models"
)

// HeaderIndex maps each canonical column to its position in header.
// Columns absent from header are returned in missing, in canonical order.
func HeaderIndex(header []string) (index map[string]int, missing []string) {
	index = make(map[string]int, len(models.Columns))
	for i, col := range header {
		col = strings.TrimSpace(strings.TrimPrefix(col, "\ufeff"))
		if _, dup := index[col]; !dup {
			index[col] = i
		}
	}
	for _, col := range models.Columns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	return index, missing
}

// EntriesFromRows converts rows laid out according to header into entries.
// Missing columns and short rows yield empty values; unknown columns are
// ignored.
func EntriesFromRows(header []string, rows [][]string) []models.Entry {
	index, _ := HeaderIndex(header)
	cell := func(row []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	entries := make([]models.Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, models.Entry{
			Name:      cell(row, models.ColumnName),
			Location:  cell(row, models.ColumnLocation),
			Event:     cell(row, models.ColumnEvent),
			Hours:     cell(row, models.ColumnHours),
			Timestamp: cell(row, models.ColumnTimestamp),
		})
	}
	return entries
}
