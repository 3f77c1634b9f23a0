package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bevcli/pkg/contracts/domain"
)

func TestRuleModelPredictRow(t *testing.T) {
	m := NewRuleModel()

	tests := []struct {
		name string
		row  RuleRow
		want float64
	}{
		{
			name: "high carbonation fires first rule",
			row:  RuleRow{CarbVolume: 6.0, CarbPressure: 75, Balling: 5, Density: 1.2, OxygenFiller: 0.01, Temperature: 60},
			want: 7.2,
		},
		{
			name: "low balling and density",
			row:  RuleRow{CarbVolume: 4.0, CarbPressure: 60, Balling: 2, Density: 0.8, OxygenFiller: 0.01, Temperature: 60},
			want: 8.5,
		},
		{
			name: "high oxygen filler",
			row:  RuleRow{CarbVolume: 5.0, CarbPressure: 60, Balling: 4, Density: 1.2, OxygenFiller: 0.05, Temperature: 60},
			want: 7.9,
		},
		{
			name: "warm high-volume fill",
			row:  RuleRow{CarbVolume: 5.45, CarbPressure: 60, Balling: 4, Density: 1.2, OxygenFiller: 0.01, Temperature: 70},
			want: 7.5,
		},
		{
			name: "no rule matches",
			row:  RuleRow{CarbVolume: 5.0, CarbPressure: 60, Balling: 4, Density: 1.2, OxygenFiller: 0.01, Temperature: 60},
			want: 8.2,
		},
		{
			name: "boundary values do not fire strict thresholds",
			row:  RuleRow{CarbVolume: 5.5, CarbPressure: 70, Balling: 3, Density: 1, OxygenFiller: 0.03, Temperature: 66},
			want: 8.2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.PredictRow(tt.row))
		})
	}
}

func TestRuleModelFirstMatchWins(t *testing.T) {
	m := NewRuleModel()

	// Satisfies both the carbonation rule and the balling/density rule;
	// the earlier rule decides.
	row := RuleRow{CarbVolume: 6.0, CarbPressure: 75, Balling: 2, Density: 0.8, OxygenFiller: 0.05, Temperature: 70}
	assert.Equal(t, 7.2, m.PredictRow(row))
}

func TestRuleModelIsPure(t *testing.T) {
	m := NewRuleModel()
	row := RuleRow{CarbVolume: 5.45, CarbPressure: 60, Balling: 4, Density: 1.2, OxygenFiller: 0.01, Temperature: 70}

	first := m.PredictRow(row)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, m.PredictRow(row))
	}
}

func TestRuleModelPredictTable(t *testing.T) {
	tbl := domain.NewTable()
	cols := map[string][]float64{
		domain.ColCarbVolume:   {6.0, 4.0, 5.0},
		domain.ColCarbPressure: {75, 60, 60},
		domain.ColBalling:      {5, 2, 4},
		domain.ColDensity:      {1.2, 0.8, 1.2},
		domain.ColOxygenFiller: {0.01, 0.01, 0.01},
		domain.ColTemperature:  {60, 60, 60},
	}
	for _, name := range []string{
		domain.ColCarbVolume, domain.ColCarbPressure, domain.ColBalling,
		domain.ColDensity, domain.ColOxygenFiller, domain.ColTemperature,
	} {
		require.NoError(t, tbl.AddColumn(domain.Column{Name: name, Kind: domain.KindNumeric, Floats: cols[name]}))
	}

	preds, err := NewRuleModel().Predict(tbl)
	require.NoError(t, err)
	assert.Equal(t, []float64{7.2, 8.5, 8.2}, preds)
}

func TestRuleModelPredictMissingColumn(t *testing.T) {
	tbl := domain.NewTable()
	require.NoError(t, tbl.AddColumn(domain.Column{
		Name: domain.ColCarbVolume, Kind: domain.KindNumeric, Floats: []float64{5.0},
	}))

	_, err := NewRuleModel().Predict(tbl)
	assert.Error(t, err)
}
