// Package analysis provides the descriptive statistics used by the
// pipeline: target-distribution skewness, prediction error, and
// per-column summaries for the console report.
package analysis

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"bevcli/internal/pipeerrors"
)

// Skewness returns the population third standardized moment of x:
// m3 / m2^(3/2) over central moments. It fails on fewer than two values
// and on a zero-variance series, where the moment is undefined.
func Skewness(x []float64) (float64, error) {
	if len(x) < 2 {
		return 0, pipeerrors.Data("explorer", fmt.Sprintf("skewness needs at least 2 values, got %d", len(x)))
	}
	m2 := stat.Moment(2, x, nil)
	if m2 == 0 {
		return 0, pipeerrors.Data("explorer", "skewness undefined for a zero-variance series")
	}
	m3 := stat.Moment(3, x, nil)
	return m3 / math.Pow(m2, 1.5), nil
}

// RMSE returns the root-mean-squared-error of predicted against
// observed. The two series must be aligned and non-empty.
func RMSE(observed, predicted []float64) (float64, error) {
	if len(observed) != len(predicted) {
		return 0, pipeerrors.Data("evaluator", fmt.Sprintf("series misaligned: observed=%d predicted=%d", len(observed), len(predicted)))
	}
	if len(observed) == 0 {
		return 0, pipeerrors.Data("evaluator", "no rows to evaluate")
	}
	sq := make([]float64, len(observed))
	for i := range observed {
		d := observed[i] - predicted[i]
		sq[i] = d * d
	}
	mean, err := stats.Mean(sq)
	if err != nil {
		return 0, pipeerrors.Data("evaluator", "mean squared error: "+err.Error())
	}
	return math.Sqrt(mean), nil
}

// ColumnSummary describes one numeric column's distribution.
type ColumnSummary struct {
	Name   string
	Count  int
	Mean   float64
	Median float64
	Min    float64
	Max    float64
	StdDev float64
}

// Summarize computes a summary for a named series. It fails on empty
// input.
func Summarize(name string, x []float64) (ColumnSummary, error) {
	if len(x) == 0 {
		return ColumnSummary{}, pipeerrors.Data("summary", "column "+name+" has no values")
	}
	data := stats.Float64Data(x)

	mean, err := data.Mean()
	if err != nil {
		return ColumnSummary{}, pipeerrors.Data("summary", "mean of "+name+": "+err.Error())
	}
	median, err := data.Median()
	if err != nil {
		return ColumnSummary{}, pipeerrors.Data("summary", "median of "+name+": "+err.Error())
	}
	min, err := data.Min()
	if err != nil {
		return ColumnSummary{}, pipeerrors.Data("summary", "min of "+name+": "+err.Error())
	}
	max, err := data.Max()
	if err != nil {
		return ColumnSummary{}, pipeerrors.Data("summary", "max of "+name+": "+err.Error())
	}
	sd, err := data.StandardDeviation()
	if err != nil {
		return ColumnSummary{}, pipeerrors.Data("summary", "stddev of "+name+": "+err.Error())
	}

	return ColumnSummary{
		Name:   name,
		Count:  len(x),
		Mean:   mean,
		Median: median,
		Min:    min,
		Max:    max,
		StdDev: sd,
	}, nil
}
