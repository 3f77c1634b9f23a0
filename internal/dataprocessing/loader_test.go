package dataprocessing

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"bevcli/internal/pipeerrors"
	"bevcli/pkg/contracts/domain"
)

// measurementHeader is a minimal header carrying every required column
// plus one text and one extra numeric column.
var measurementHeader = []any{
	"Brand Code", "Carb Volume", "Carb Pressure", "Balling", "Density",
	"Oxygen Filler", "Temperature", "Fill Ounces", "PH",
}

// writeWorkbook writes rows (header first) into sheet of a new workbook
// at path. Nil cells are left empty.
func writeWorkbook(t *testing.T, path, sheet string, rows [][]any) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		require.NoError(t, f.SetSheetName("Sheet1", sheet))
	}
	for r, row := range rows {
		for c, val := range row {
			if val == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, val))
		}
	}
	require.NoError(t, f.SaveAs(path))
}

func fixtureRows() [][]any {
	return [][]any{
		measurementHeader,
		{"A", 5.34, 68.2, 2.5, 0.92, 0.022, 65.4, 23.9, 8.36},
		{"B", 5.42, 68.4, 2.6, 0.95, 0.026, 65.6, 24.0, 8.26},
		{"A", 5.29, 70.1, 3.1, 1.01, 0.031, 66.2, 23.8, 8.94},
	}
}

func TestLoaderLoad(t *testing.T) {
	ctx := context.Background()
	loader := NewLoader(nil)

	t.Run("typed columns", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "measurements.xlsx")
		writeWorkbook(t, path, "Sheet1", fixtureRows())

		table, err := loader.Load(ctx, path, "")
		require.NoError(t, err)

		assert.Equal(t, 3, table.NumRows())
		assert.Equal(t, 9, table.NumCols())

		brand, ok := table.Column("Brand Code")
		require.True(t, ok)
		assert.Equal(t, domain.KindText, brand.Kind)
		assert.Equal(t, []string{"A", "B", "A"}, brand.Strings)

		ph, err := table.Floats(domain.ColPH)
		require.NoError(t, err)
		assert.Equal(t, []float64{8.36, 8.26, 8.94}, ph)
	})

	t.Run("empty cells load as missing", func(t *testing.T) {
		rows := fixtureRows()
		rows[2][8] = nil // PH of second row
		rows[1][4] = nil // Density of first row
		path := filepath.Join(t.TempDir(), "measurements.xlsx")
		writeWorkbook(t, path, "Sheet1", rows)

		table, err := loader.Load(ctx, path, "")
		require.NoError(t, err)

		ph, err := table.Floats(domain.ColPH)
		require.NoError(t, err)
		assert.True(t, domain.IsMissing(ph[1]))

		density, err := table.Floats(domain.ColDensity)
		require.NoError(t, err)
		assert.True(t, domain.IsMissing(density[0]))
	})

	t.Run("thousands separators stripped", func(t *testing.T) {
		rows := fixtureRows()
		rows[1][6] = "1,065.5" // Temperature as formatted text
		path := filepath.Join(t.TempDir(), "measurements.xlsx")
		writeWorkbook(t, path, "Sheet1", rows)

		table, err := loader.Load(ctx, path, "")
		require.NoError(t, err)

		temp, err := table.Floats(domain.ColTemperature)
		require.NoError(t, err)
		assert.Equal(t, 1065.5, temp[0])
	})

	t.Run("blank rows skipped", func(t *testing.T) {
		rows := fixtureRows()
		rows = append(rows[:2], append([][]any{{nil, nil, nil}}, rows[2:]...)...)
		path := filepath.Join(t.TempDir(), "measurements.xlsx")
		writeWorkbook(t, path, "Sheet1", rows)

		table, err := loader.Load(ctx, path, "")
		require.NoError(t, err)
		assert.Equal(t, 3, table.NumRows())
	})

	t.Run("preamble before header row", func(t *testing.T) {
		rows := append([][]any{{"Beverage plant measurements"}, {}}, fixtureRows()...)
		path := filepath.Join(t.TempDir(), "measurements.xlsx")
		writeWorkbook(t, path, "Sheet1", rows)

		table, err := loader.Load(ctx, path, "")
		require.NoError(t, err)
		assert.Equal(t, 3, table.NumRows())
	})

	t.Run("configured sheet name", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "measurements.xlsx")
		writeWorkbook(t, path, "Measurements", fixtureRows())

		_, err := loader.Load(ctx, path, "Measurements")
		require.NoError(t, err)

		_, err = loader.Load(ctx, path, "Absent")
		require.Error(t, err)
		assert.Equal(t, pipeerrors.CategoryFormat, pipeerrors.CategoryOf(err))
	})
}

func TestLoaderErrors(t *testing.T) {
	ctx := context.Background()
	loader := NewLoader(nil)

	t.Run("missing file is an IO error", func(t *testing.T) {
		_, err := loader.Load(ctx, filepath.Join(t.TempDir(), "absent.xlsx"), "")
		require.Error(t, err)
		assert.Equal(t, pipeerrors.CategoryIO, pipeerrors.CategoryOf(err))
	})

	t.Run("missing required column is a format error", func(t *testing.T) {
		rows := fixtureRows()
		rows[0] = append([]any{}, rows[0]...)
		rows[0][8] = "Acidity" // replaces PH
		path := filepath.Join(t.TempDir(), "measurements.xlsx")
		writeWorkbook(t, path, "Sheet1", rows)

		_, err := loader.Load(ctx, path, "")
		require.Error(t, err)
		assert.Equal(t, pipeerrors.CategoryFormat, pipeerrors.CategoryOf(err))
	})

	t.Run("header with no data rows is a format error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "measurements.xlsx")
		writeWorkbook(t, path, "Measurements", [][]any{measurementHeader})

		_, err := loader.Load(ctx, path, "Measurements")
		require.Error(t, err)
		assert.Equal(t, pipeerrors.CategoryFormat, pipeerrors.CategoryOf(err))
	})
}
