package model

import (
	"context"
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/mat"

	"bevcli/internal/pipeerrors"
	"bevcli/pkg/contracts/domain"
)

// linearPredictors are the regressors of the pH model, in coefficient
// order after the intercept.
var linearPredictors = []string{
	domain.ColCarbVolume,
	domain.ColBalling,
	domain.ColOxygenFiller,
}

// LinearModel is an ordinary least squares fit of pH on carbonation
// volume, balling and oxygen filler. Fit once, then Predict.
type LinearModel struct {
	logger *slog.Logger

	// Coeffs holds the fitted coefficients: intercept first, then one
	// per predictor in linearPredictors order. Nil until Fit succeeds.
	Coeffs []float64
}

// NewLinearModel creates an unfitted model. A nil logger falls back to
// slog.Default.
func NewLinearModel(logger *slog.Logger) *LinearModel {
	if logger == nil {
		logger = slog.Default()
	}
	return &LinearModel{logger: logger}
}

// Fit estimates the coefficients by QR-factorizing the design matrix
// and solving the least squares system. A rank-deficient or severely
// ill-conditioned design fails the fit.
func (m *LinearModel) Fit(ctx context.Context, table *domain.Table) error {
	X, y, err := m.design(table)
	if err != nil {
		return err
	}

	rows, params := X.Dims()
	if rows < params {
		return pipeerrors.Data("linear model",
			fmt.Sprintf("need at least %d rows to fit %d coefficients, got %d", params, params, rows))
	}

	var qr mat.QR
	qr.Factorize(X)

	var beta mat.Dense
	if err := qr.SolveTo(&beta, false, y); err != nil {
		return pipeerrors.Numeric("linear model", "design matrix is rank deficient or ill conditioned", err)
	}

	coeffs := make([]float64, params)
	for i := range coeffs {
		coeffs[i] = beta.At(i, 0)
	}
	m.Coeffs = coeffs

	m.logger.InfoContext(ctx, "linear model fitted",
		"intercept", coeffs[0],
		"carb_volume", coeffs[1],
		"balling", coeffs[2],
		"oxygen_filler", coeffs[3],
		"rows", rows,
	)
	return nil
}

// Predict returns the fitted values for each table row.
func (m *LinearModel) Predict(table *domain.Table) ([]float64, error) {
	if m.Coeffs == nil {
		return nil, pipeerrors.Data("linear model", "model is not fitted")
	}

	cols := make([][]float64, len(linearPredictors))
	for i, name := range linearPredictors {
		vals, err := table.Floats(name)
		if err != nil {
			return nil, pipeerrors.Data("linear model", err.Error())
		}
		cols[i] = vals
	}

	out := make([]float64, table.NumRows())
	for i := range out {
		v := m.Coeffs[0]
		for j, col := range cols {
			v += m.Coeffs[j+1] * col[i]
		}
		out[i] = v
	}
	return out, nil
}

// design assembles the intercept-augmented design matrix and target
// vector.
func (m *LinearModel) design(table *domain.Table) (*mat.Dense, *mat.VecDense, error) {
	y, err := table.Floats(domain.ColPH)
	if err != nil {
		return nil, nil, pipeerrors.Data("linear model", err.Error())
	}

	rows := table.NumRows()
	X := mat.NewDense(rows, len(linearPredictors)+1, nil)
	for i := 0; i < rows; i++ {
		X.Set(i, 0, 1)
	}
	for j, name := range linearPredictors {
		vals, err := table.Floats(name)
		if err != nil {
			return nil, nil, pipeerrors.Data("linear model", err.Error())
		}
		for i, v := range vals {
			X.Set(i, j+1, v)
		}
	}
	return X, mat.NewVecDense(rows, append([]float64(nil), y...)), nil
}
