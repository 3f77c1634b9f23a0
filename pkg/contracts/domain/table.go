// Package domain defines the shared data contracts for the beverage
// measurement pipeline: the column schema, the in-memory observation
// table, and the model output types exchanged between stages.
package domain

import (
	"fmt"
	"math"
)

// Well-known column names in the beverage measurement dataset.
const (
	ColCarbVolume   = "Carb Volume"
	ColCarbPressure = "Carb Pressure"
	ColBalling      = "Balling"
	ColDensity      = "Density"
	ColOxygenFiller = "Oxygen Filler"
	ColTemperature  = "Temperature"
	ColPH           = "PH"
)

// RequiredColumns lists the columns every input workbook must provide.
// The loader fails fast when any of them is absent.
var RequiredColumns = []string{
	ColCarbVolume,
	ColCarbPressure,
	ColBalling,
	ColDensity,
	ColOxygenFiller,
	ColTemperature,
	ColPH,
}

// Kind describes how a column's cells are typed.
type Kind int

const (
	// KindNumeric columns store float64 values; NaN marks a missing cell.
	KindNumeric Kind = iota
	// KindText columns store strings; the empty string marks a missing cell.
	KindText
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Missing is the sentinel stored in numeric columns for absent cells.
func Missing() float64 { return math.NaN() }

// IsMissing reports whether a numeric cell is absent.
func IsMissing(v float64) bool { return math.IsNaN(v) }

// Column is a single named, typed column of the observation table.
// Exactly one of Floats/Strings is populated, matching Kind.
type Column struct {
	Name    string
	Kind    Kind
	Floats  []float64
	Strings []string
}

// Len returns the number of cells in the column.
func (c *Column) Len() int {
	if c.Kind == KindNumeric {
		return len(c.Floats)
	}
	return len(c.Strings)
}

// CellMissing reports whether the cell at row i is absent.
func (c *Column) CellMissing(i int) bool {
	if c.Kind == KindNumeric {
		return IsMissing(c.Floats[i])
	}
	return c.Strings[i] == ""
}

// MissingCount returns the number of absent cells in the column.
func (c *Column) MissingCount() int {
	n := 0
	for i := 0; i < c.Len(); i++ {
		if c.CellMissing(i) {
			n++
		}
	}
	return n
}

// ZeroCount returns the number of exactly-zero cells in a numeric column.
// Text columns always report zero.
func (c *Column) ZeroCount() int {
	if c.Kind != KindNumeric {
		return 0
	}
	n := 0
	for _, v := range c.Floats {
		if v == 0 {
			n++
		}
	}
	return n
}

// Present returns the non-missing values of a numeric column.
func (c *Column) Present() []float64 {
	out := make([]float64, 0, len(c.Floats))
	for _, v := range c.Floats {
		if !IsMissing(v) {
			out = append(out, v)
		}
	}
	return out
}

// Table is an ordered collection of equal-length columns. Column order is
// preserved from the source workbook so exports are deterministic.
type Table struct {
	cols  []Column
	index map[string]int
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{index: make(map[string]int)}
}

// AddColumn appends a column to the table. The first column fixes the row
// count; subsequent columns must match it.
func (t *Table) AddColumn(c Column) error {
	if c.Name == "" {
		return fmt.Errorf("column name must not be empty")
	}
	if _, exists := t.index[c.Name]; exists {
		return fmt.Errorf("duplicate column %q", c.Name)
	}
	if len(t.cols) > 0 && c.Len() != t.NumRows() {
		return fmt.Errorf("column %q has %d rows, table has %d", c.Name, c.Len(), t.NumRows())
	}
	t.index[c.Name] = len(t.cols)
	t.cols = append(t.cols, c)
	return nil
}

// NumRows returns the number of rows in the table.
func (t *Table) NumRows() int {
	if len(t.cols) == 0 {
		return 0
	}
	return t.cols[0].Len()
}

// NumCols returns the number of columns in the table.
func (t *Table) NumCols() int { return len(t.cols) }

// Names returns the column names in table order.
func (t *Table) Names() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name
	}
	return names
}

// Column returns the named column, or false when absent.
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return &t.cols[i], true
}

// Floats returns the value slice of a numeric column. It errors when the
// column is absent or text-typed.
func (t *Table) Floats(name string) ([]float64, error) {
	c, ok := t.Column(name)
	if !ok {
		return nil, fmt.Errorf("no column %q", name)
	}
	if c.Kind != KindNumeric {
		return nil, fmt.Errorf("column %q is %s, not numeric", name, c.Kind)
	}
	return c.Floats, nil
}

// HasColumns reports the first name from the given list that is not
// present in the table, or "" when all are present.
func (t *Table) HasColumns(names []string) string {
	for _, name := range names {
		if _, ok := t.index[name]; !ok {
			return name
		}
	}
	return ""
}

// Filter returns a new table holding only the rows where keep is true.
// keep must have one entry per row.
func (t *Table) Filter(keep []bool) (*Table, error) {
	if len(keep) != t.NumRows() {
		return nil, fmt.Errorf("keep mask has %d entries, table has %d rows", len(keep), t.NumRows())
	}
	out := NewTable()
	for _, c := range t.cols {
		nc := Column{Name: c.Name, Kind: c.Kind}
		if c.Kind == KindNumeric {
			nc.Floats = make([]float64, 0, len(c.Floats))
			for i, v := range c.Floats {
				if keep[i] {
					nc.Floats = append(nc.Floats, v)
				}
			}
		} else {
			nc.Strings = make([]string, 0, len(c.Strings))
			for i, v := range c.Strings {
				if keep[i] {
					nc.Strings = append(nc.Strings, v)
				}
			}
		}
		if err := out.AddColumn(nc); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := NewTable()
	for _, c := range t.cols {
		nc := Column{Name: c.Name, Kind: c.Kind}
		if c.Kind == KindNumeric {
			nc.Floats = append([]float64(nil), c.Floats...)
		} else {
			nc.Strings = append([]string(nil), c.Strings...)
		}
		// AddColumn cannot fail on a clone of a valid table.
		_ = out.AddColumn(nc)
	}
	return out
}

// ModelScore pairs a model name with its root-mean-squared-error against
// the observed target.
type ModelScore struct {
	Model string
	RMSE  float64
}

// PredictionTable holds the observed target alongside each model's
// per-row predictions, aligned by row.
type PredictionTable struct {
	Observed []float64
	RulePH   []float64
	LMPH     []float64
}

// Len returns the number of prediction rows.
func (p *PredictionTable) Len() int { return len(p.Observed) }

// Validate checks that all three series are aligned.
func (p *PredictionTable) Validate() error {
	if len(p.RulePH) != len(p.Observed) || len(p.LMPH) != len(p.Observed) {
		return fmt.Errorf("prediction series misaligned: observed=%d rule=%d lm=%d",
			len(p.Observed), len(p.RulePH), len(p.LMPH))
	}
	return nil
}
