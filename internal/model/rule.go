// Package model implements the two pH predictors: an ordered
// threshold-rule lookup and an ordinary least squares regression, plus
// the evaluator comparing them.
package model

import (
	"bevcli/internal/pipeerrors"
	"bevcli/pkg/contracts/domain"
)

// RuleRow is the view of one observation the rule model reads.
type RuleRow struct {
	CarbVolume   float64
	CarbPressure float64
	Balling      float64
	Density      float64
	OxygenFiller float64
	Temperature  float64
}

// Rule pairs a condition with the pH it predicts when it fires.
type Rule struct {
	Name  string
	Match func(RuleRow) bool
	PH    float64
}

// RuleModel predicts pH by evaluating its rules in order; the first
// match wins and later rules are not evaluated. Rows matching no rule
// get the default.
type RuleModel struct {
	rules     []Rule
	defaultPH float64
}

// NewRuleModel returns the production rule set.
func NewRuleModel() *RuleModel {
	return &RuleModel{
		rules: []Rule{
			{
				Name:  "high carbonation",
				Match: func(r RuleRow) bool { return r.CarbVolume > 5.5 && r.CarbPressure > 70 },
				PH:    7.2,
			},
			{
				Name:  "low balling and density",
				Match: func(r RuleRow) bool { return r.Balling < 3 && r.Density < 1 },
				PH:    8.5,
			},
			{
				Name:  "high oxygen filler",
				Match: func(r RuleRow) bool { return r.OxygenFiller > 0.03 },
				PH:    7.9,
			},
			{
				Name:  "warm high-volume fill",
				Match: func(r RuleRow) bool { return r.Temperature > 66 && r.CarbVolume > 5.4 },
				PH:    7.5,
			},
		},
		defaultPH: 8.2,
	}
}

// PredictRow returns the pH for one observation. It is a pure function:
// the model holds no per-row state.
func (m *RuleModel) PredictRow(r RuleRow) float64 {
	for _, rule := range m.rules {
		if rule.Match(r) {
			return rule.PH
		}
	}
	return m.defaultPH
}

// Predict returns one prediction per table row. The cleaner guarantees
// the input columns exist and hold no missing values; an absent column
// still fails rather than panicking.
func (m *RuleModel) Predict(table *domain.Table) ([]float64, error) {
	cols := make(map[string][]float64, 6)
	for _, name := range []string{
		domain.ColCarbVolume, domain.ColCarbPressure, domain.ColBalling,
		domain.ColDensity, domain.ColOxygenFiller, domain.ColTemperature,
	} {
		vals, err := table.Floats(name)
		if err != nil {
			return nil, pipeerrors.Data("rule model", err.Error())
		}
		cols[name] = vals
	}

	out := make([]float64, table.NumRows())
	for i := range out {
		out[i] = m.PredictRow(RuleRow{
			CarbVolume:   cols[domain.ColCarbVolume][i],
			CarbPressure: cols[domain.ColCarbPressure][i],
			Balling:      cols[domain.ColBalling][i],
			Density:      cols[domain.ColDensity][i],
			OxygenFiller: cols[domain.ColOxygenFiller][i],
			Temperature:  cols[domain.ColTemperature][i],
		})
	}
	return out, nil
}
