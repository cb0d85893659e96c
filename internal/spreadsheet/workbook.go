// Package spreadsheet reads and writes Excel workbooks of volunteer entries.
package spreadsheet

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"github.com/mmynk/hourbook/internal/models"
)

// AllDataSheet is the name of the first sheet, holding every entry.
const AllDataSheet = "All Data"

// maxSheetName is Excel's limit on sheet name length.
const maxSheetName = 31

// maxXLSRows bounds how many rows are read from a legacy .xls sheet.
const maxXLSRows = 100000

// maxXLSCols is the BIFF8 column limit.
const maxXLSCols = 256

var sheetNameReplacer = strings.NewReplacer(
	":", "_", `\`, "_", "/", "_", "?", "_", "*", "_", "[", "_", "]", "_",
)

// SheetName converts a volunteer name into a valid sheet name: truncated to
// 31 characters with : \ / ? * [ ] replaced by an underscore. Excel rejects
// names that begin or end with an apostrophe, so those are stripped. The
// result may be empty, in which case no sheet should be written.
func SheetName(name string) string {
	runes := []rune(name)
	if len(runes) > maxSheetName {
		runes = runes[:maxSheetName]
	}
	return strings.Trim(sheetNameReplacer.Replace(string(runes)), "'")
}

// WriteWorkbook writes entries to an .xlsx file at path. The first sheet is
// AllDataSheet with every entry; each distinct person (case-insensitive,
// first-seen casing) then gets a sheet with only their rows.
// People whose sanitized names collide share one sheet.
func WriteWorkbook(path string, entries []models.Entry) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), AllDataSheet); err != nil {
		return fmt.Errorf("failed to name %q sheet: %w", AllDataSheet, err)
	}
	if err := writeSheet(f, AllDataSheet, entries); err != nil {
		return err
	}

	byName := make(map[string][]models.Entry)
	for _, e := range entries {
		key := models.NameKey(e.Name)
		byName[key] = append(byName[key], e)
	}

	// Sheet names compare case-insensitively in Excel.
	sheets := map[string][]models.Entry{}
	var order []string
	for _, person := range models.DistinctNames(entries) {
		sheet := SheetName(person)
		if sheet == "" {
			continue
		}
		key := strings.ToLower(sheet)
		if key == strings.ToLower(AllDataSheet) {
			slog.Warn("Skipping person sheet that collides with the summary sheet", "person", person)
			continue
		}
		if _, ok := sheets[key]; !ok {
			order = append(order, sheet)
		}
		sheets[key] = append(sheets[key], byName[models.NameKey(person)]...)
	}

	for _, sheet := range order {
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("failed to create sheet %q: %w", sheet, err)
		}
		if err := writeSheet(f, sheet, sheets[strings.ToLower(sheet)]); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create workbook directory: %w", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, entries []models.Entry) error {
	header := make([]interface{}, len(models.Columns))
	for i, col := range models.Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header of %q: %w", sheet, err)
	}

	for i, e := range entries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{e.Name, e.Location, e.Event, e.Hours, e.Timestamp}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d of %q: %w", i+1, sheet, err)
		}
	}
	return nil
}

// ReadRows reads the first sheet of an .xlsx or .xls file into its header
// row and data rows.
func ReadRows(path string) ([]string, [][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	var rows [][]string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xls":
		workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open workbook: %w", err)
		}
		sheet := workbook.GetSheet(0)
		if sheet == nil {
			return nil, nil, fmt.Errorf("no worksheet found")
		}
		rows = readXLSSheet(sheet)
	default:
		file, err := excelize.OpenReader(bytes.NewReader(data))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open workbook: %w", err)
		}
		defer func() { _ = file.Close() }()

		sheetName := file.GetSheetName(0)
		if sheetName == "" {
			return nil, nil, fmt.Errorf("no worksheet found")
		}
		rows, err = file.GetRows(sheetName)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
		}
	}

	if len(rows) == 0 {
		return nil, nil, nil
	}
	return rows[0], rows[1:], nil
}

// readXLSSheet returns the cells of a single .xls sheet, with missing rows
// read as empty and trailing blank cells dropped.
func readXLSSheet(sheet *xls.WorkSheet) [][]string {
	n := int(sheet.MaxRow) + 1
	if n > maxXLSRows {
		n = maxXLSRows
	}
	rows := make([][]string, 0, n)
	for i := 0; i < n; i++ {
		row := xlsRow(sheet, i)
		if row == nil {
			rows = append(rows, []string{})
			continue
		}
		cells := make([]string, maxXLSCols)
		last := -1
		for c := range cells {
			cells[c] = row.Col(c)
			if cells[c] != "" {
				last = c
			}
		}
		rows = append(rows, cells[:last+1])
	}
	return rows
}

// xlsRow returns row i of sheet, or nil when the sheet has no such row.
// WorkSheet.Row dereferences the missing row instead of returning nil.
func xlsRow(sheet *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return sheet.Row(i)
}

// IsWorkbook reports whether path names a spreadsheet ReadRows understands.
func IsWorkbook(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xls":
		return true
	}
	return false
}
