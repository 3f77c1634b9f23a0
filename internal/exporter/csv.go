// Package exporter writes pipeline tables to delimited files. Output is
// deterministic: column order follows the table, and floats use the
// shortest decimal form that round-trips, so identical inputs produce
// byte-identical files.
package exporter

import (
	"context"
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"bevcli/internal/pipeerrors"
	"bevcli/pkg/contracts/domain"
)

// PredictionHeader is the column header of the final predictions file.
var PredictionHeader = []string{"PH", "Rule_PH", "LM_PH"}

// CSVWriter exports tables as comma-separated UTF-8 files.
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a writer. A nil logger falls back to slog.Default.
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger}
}

// WriteTable writes the table with a header row to path, creating parent
// directories and truncating any previous file.
func (w *CSVWriter) WriteTable(ctx context.Context, path string, table *domain.Table) error {
	records := make([][]string, 0, table.NumRows())
	names := table.Names()

	for i := 0; i < table.NumRows(); i++ {
		record := make([]string, len(names))
		for j, name := range names {
			col, _ := table.Column(name)
			if col.Kind == domain.KindNumeric {
				record[j] = formatFloat(col.Floats[i])
			} else {
				record[j] = col.Strings[i]
			}
		}
		records = append(records, record)
	}

	if err := w.write(path, names, records); err != nil {
		return err
	}
	w.logger.InfoContext(ctx, "table exported",
		"path", path,
		"rows", len(records),
		"columns", len(names),
	)
	return nil
}

// WritePredictions writes the observed target and both model predictions
// to path.
func (w *CSVWriter) WritePredictions(ctx context.Context, path string, p *domain.PredictionTable) error {
	if err := p.Validate(); err != nil {
		return pipeerrors.Data("exporter", err.Error())
	}

	records := make([][]string, p.Len())
	for i := range records {
		records[i] = []string{
			formatFloat(p.Observed[i]),
			formatFloat(p.RulePH[i]),
			formatFloat(p.LMPH[i]),
		}
	}

	if err := w.write(path, PredictionHeader, records); err != nil {
		return err
	}
	w.logger.InfoContext(ctx, "predictions exported", "path", path, "rows", len(records))
	return nil
}

func (w *CSVWriter) write(path string, header []string, records [][]string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return pipeerrors.IOWrap("exporter", "create directory "+dir, err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return pipeerrors.IOWrap("exporter", "create "+path, err)
	}
	defer file.Close()

	cw := csv.NewWriter(file)
	if err := cw.Write(header); err != nil {
		return pipeerrors.IOWrap("exporter", "write header", err)
	}
	for i, record := range records {
		if err := cw.Write(record); err != nil {
			return pipeerrors.IOWrap("exporter", "write record "+strconv.Itoa(i), err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return pipeerrors.IOWrap("exporter", "flush "+path, err)
	}
	return nil
}

// ReadTable reads a CSV written by WriteTable back into a table, typing
// columns the same way the workbook loader does.
func ReadTable(path string) (*domain.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, pipeerrors.IOWrap("exporter", "open "+path, err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, pipeerrors.IOWrap("exporter", "read "+path, err)
	}
	if len(rows) < 1 {
		return nil, pipeerrors.Format("exporter", path+" has no header row")
	}

	header := rows[0]
	data := rows[1:]
	table := domain.NewTable()
	for j, name := range header {
		cells := make([]string, len(data))
		numeric := true
		for i, row := range data {
			cells[i] = row[j]
			if cells[i] != "" {
				if _, perr := strconv.ParseFloat(strings.ReplaceAll(cells[i], ",", ""), 64); perr != nil {
					numeric = false
				}
			}
		}
		col := domain.Column{Name: name}
		if numeric {
			col.Kind = domain.KindNumeric
			col.Floats = make([]float64, len(cells))
			for i, cell := range cells {
				if cell == "" {
					col.Floats[i] = domain.Missing()
					continue
				}
				col.Floats[i], _ = strconv.ParseFloat(strings.ReplaceAll(cell, ",", ""), 64)
			}
		} else {
			col.Kind = domain.KindText
			col.Strings = cells
		}
		if err := table.AddColumn(col); err != nil {
			return nil, pipeerrors.Format("exporter", "assemble column "+name+": "+err.Error())
		}
	}
	return table, nil
}

// formatFloat renders a float deterministically and round-trippably.
// Missing cells render as the empty string.
func formatFloat(v float64) string {
	if domain.IsMissing(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
