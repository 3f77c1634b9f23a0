package dataprocessing

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"bevcli/internal/pipeerrors"
	"bevcli/pkg/contracts/domain"
)

// headerScanLimit bounds how deep into a sheet the loader looks for the
// header row.
const headerScanLimit = 10

// Loader reads a measurement workbook into an observation table.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a loader. A nil logger falls back to slog.Default.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load reads the workbook at path and returns the observation table.
// When sheetName is empty the loader scans for a sheet whose header row
// carries every required column.
func (l *Loader) Load(ctx context.Context, path, sheetName string) (*domain.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, pipeerrors.IOWrap("loader", "open workbook "+path, err)
	}
	defer f.Close()

	rows, headerRow, sheet, err := l.findDataSheet(f, sheetName)
	if err != nil {
		return nil, err
	}

	l.logger.InfoContext(ctx, "located data sheet",
		"sheet", sheet,
		"header_row", headerRow,
		"total_rows", len(rows),
	)

	table, err := l.buildTable(rows, headerRow)
	if err != nil {
		return nil, err
	}

	l.logger.InfoContext(ctx, "workbook loaded",
		"rows", table.NumRows(),
		"columns", table.NumCols(),
	)
	return table, nil
}

// findDataSheet returns the rows of the sheet holding the measurement
// data together with the index of its header row.
func (l *Loader) findDataSheet(f *excelize.File, sheetName string) ([][]string, int, string, error) {
	if sheetName != "" {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			return nil, 0, "", pipeerrors.Format("loader", "sheet "+sheetName+" not found in workbook")
		}
		header := findHeaderRow(rows)
		if header < 0 {
			return nil, 0, "", pipeerrors.Format("loader", "sheet "+sheetName+" has no header row with the required columns")
		}
		return rows, header, sheetName, nil
	}

	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			continue
		}
		if header := findHeaderRow(rows); header >= 0 {
			return rows, header, name, nil
		}
	}
	return nil, 0, "", pipeerrors.Format("loader", "no sheet contains the required measurement columns")
}

// findHeaderRow returns the index of the first row that names every
// required column, or -1.
func findHeaderRow(rows [][]string) int {
	limit := len(rows)
	if limit > headerScanLimit {
		limit = headerScanLimit
	}
	for i := 0; i < limit; i++ {
		names := make(map[string]bool, len(rows[i]))
		for _, cell := range rows[i] {
			names[strings.TrimSpace(cell)] = true
		}
		found := true
		for _, required := range domain.RequiredColumns {
			if !names[required] {
				found = false
				break
			}
		}
		if found {
			return i
		}
	}
	return -1
}

// buildTable converts raw sheet rows into a typed table. A column is
// numeric when every non-empty cell parses as a float after stripping
// thousands separators; otherwise it is text. Fully empty rows are
// skipped.
func (l *Loader) buildTable(rows [][]string, headerRow int) (*domain.Table, error) {
	header := rows[headerRow]

	dataRows := make([][]string, 0, len(rows)-headerRow-1)
	for _, row := range rows[headerRow+1:] {
		if rowEmpty(row) {
			continue
		}
		dataRows = append(dataRows, row)
	}
	if len(dataRows) == 0 {
		return nil, pipeerrors.Format("loader", "sheet has a header row but no data rows")
	}

	table := domain.NewTable()
	seen := make(map[string]bool, len(header))
	for j, rawName := range header {
		name := strings.TrimSpace(rawName)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		cells := make([]string, len(dataRows))
		for i, row := range dataRows {
			if j < len(row) {
				cells[i] = strings.TrimSpace(row[j])
			}
		}
		if err := table.AddColumn(typeColumn(name, cells)); err != nil {
			return nil, pipeerrors.Format("loader", "assemble column "+name+": "+err.Error())
		}
	}

	if missing := table.HasColumns(domain.RequiredColumns); missing != "" {
		return nil, pipeerrors.Format("loader", "required column "+missing+" absent from sheet")
	}
	for _, name := range domain.RequiredColumns {
		if c, _ := table.Column(name); c.Kind != domain.KindNumeric {
			return nil, pipeerrors.Format("loader", "required column "+name+" is not numeric")
		}
	}
	return table, nil
}

// typeColumn decides numeric vs text for one column and parses its cells.
func typeColumn(name string, cells []string) domain.Column {
	numeric := true
	nonEmpty := 0
	for _, cell := range cells {
		if cell == "" {
			continue
		}
		nonEmpty++
		if _, err := parseCell(cell); err != nil {
			numeric = false
			break
		}
	}
	// A column with no values at all is kept numeric so the cleaner can
	// report it as degenerate rather than silently passing it through.
	if numeric || nonEmpty == 0 {
		floats := make([]float64, len(cells))
		for i, cell := range cells {
			if cell == "" {
				floats[i] = domain.Missing()
				continue
			}
			floats[i], _ = parseCell(cell)
		}
		return domain.Column{Name: name, Kind: domain.KindNumeric, Floats: floats}
	}
	return domain.Column{Name: name, Kind: domain.KindText, Strings: cells}
}

func parseCell(cell string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(cell, ",", ""), 64)
}

func rowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
