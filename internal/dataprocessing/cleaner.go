package dataprocessing

import (
	"context"
	"log/slog"

	"github.com/montanaflynn/stats"

	"bevcli/internal/pipeerrors"
	"bevcli/pkg/contracts/domain"
)

// ColumnCleanStats records what the cleaner observed and did to one
// column.
type ColumnCleanStats struct {
	Name    string
	Kind    domain.Kind
	Missing int // missing cells before cleaning
	Zeros   int // zero cells before cleaning (numeric only)
	Flagged bool
	Median  float64 // imputation value, when Imputed > 0
	Imputed int     // cells filled with the median
}

// CleanReport summarizes a cleaning pass.
type CleanReport struct {
	Columns     []ColumnCleanStats
	RowsIn      int
	RowsOut     int
	RowsDropped int
}

// Cleaner imputes missing measurements and drops incomplete rows.
type Cleaner struct {
	logger *slog.Logger
}

// NewCleaner creates a cleaner. A nil logger falls back to slog.Default.
func NewCleaner(logger *slog.Logger) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cleaner{logger: logger}
}

// Clean runs the cleaning pass over a copy of the input table:
//
//  1. Count missing and zero cells per numeric column; any column with
//     either is flagged.
//  2. In flagged columns, zeros become missing. A zero here is the
//     instrument's "not recorded" sentinel, not a physical measurement.
//  3. Every numeric predictor column has its missing cells replaced by
//     the median of its currently-present values. The target column is
//     left unimputed so unmeasured pH never becomes a training label.
//  4. Rows still holding a missing cell (unmeasured target, empty text
//     cell) are dropped.
//
// The returned table has no missing cells. A numeric column with no
// present values at all has no median and fails the run.
func (c *Cleaner) Clean(ctx context.Context, in *domain.Table) (*domain.Table, *CleanReport, error) {
	table := in.Clone()
	report := &CleanReport{RowsIn: table.NumRows()}

	for _, name := range table.Names() {
		col, _ := table.Column(name)
		cs := ColumnCleanStats{
			Name:    name,
			Kind:    col.Kind,
			Missing: col.MissingCount(),
			Zeros:   col.ZeroCount(),
		}

		if col.Kind == domain.KindNumeric {
			cs.Flagged = cs.Missing > 0 || cs.Zeros > 0
			if cs.Flagged {
				for i, v := range col.Floats {
					if v == 0 {
						col.Floats[i] = domain.Missing()
					}
				}
			}

			present := col.Present()
			if len(present) == 0 {
				return nil, nil, pipeerrors.Data("cleaner", "column "+name+" has no recorded values, median undefined")
			}

			if name != domain.ColPH {
				holes := col.MissingCount()
				if holes > 0 {
					median, err := stats.Median(present)
					if err != nil {
						return nil, nil, pipeerrors.Data("cleaner", "median of column "+name+": "+err.Error())
					}
					for i, v := range col.Floats {
						if domain.IsMissing(v) {
							col.Floats[i] = median
						}
					}
					cs.Median = median
					cs.Imputed = holes
				}
			}

			if cs.Flagged {
				c.logger.DebugContext(ctx, "column flagged",
					"column", name,
					"missing", cs.Missing,
					"zeros", cs.Zeros,
					"imputed", cs.Imputed,
				)
			}
		}

		report.Columns = append(report.Columns, cs)
	}

	keep := make([]bool, table.NumRows())
	for i := range keep {
		keep[i] = true
	}
	for _, name := range table.Names() {
		col, _ := table.Column(name)
		for i := 0; i < col.Len(); i++ {
			if col.CellMissing(i) {
				keep[i] = false
			}
		}
	}

	out, err := table.Filter(keep)
	if err != nil {
		return nil, nil, pipeerrors.Data("cleaner", "drop incomplete rows: "+err.Error())
	}

	report.RowsOut = out.NumRows()
	report.RowsDropped = report.RowsIn - report.RowsOut

	c.logger.InfoContext(ctx, "cleaning completed",
		"rows_in", report.RowsIn,
		"rows_out", report.RowsOut,
		"rows_dropped", report.RowsDropped,
	)
	return out, report, nil
}
