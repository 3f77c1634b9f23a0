package model

import (
	"context"
	"log/slog"

	"bevcli/internal/analysis"
	"bevcli/pkg/contracts/domain"
)

// Model names as reported in the comparison table and prediction CSV.
const (
	RuleModelName   = "Rule model"
	LinearModelName = "Linear model"
)

// Evaluator scores each model's predictions against the observed target.
type Evaluator struct {
	logger *slog.Logger
}

// NewEvaluator creates an evaluator. A nil logger falls back to
// slog.Default.
func NewEvaluator(logger *slog.Logger) *Evaluator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Evaluator{logger: logger}
}

// Compare computes RMSE for both models against the same observed
// series and returns the scores in a fixed order. It reports the
// numbers; it does not pick a winner.
func (e *Evaluator) Compare(ctx context.Context, p *domain.PredictionTable) ([]domain.ModelScore, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	ruleRMSE, err := analysis.RMSE(p.Observed, p.RulePH)
	if err != nil {
		return nil, err
	}
	lmRMSE, err := analysis.RMSE(p.Observed, p.LMPH)
	if err != nil {
		return nil, err
	}

	e.logger.InfoContext(ctx, "model comparison",
		"rule_rmse", ruleRMSE,
		"lm_rmse", lmRMSE,
		"rows", p.Len(),
	)

	return []domain.ModelScore{
		{Model: RuleModelName, RMSE: ruleRMSE},
		{Model: LinearModelName, RMSE: lmRMSE},
	}, nil
}
