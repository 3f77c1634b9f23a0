// Package app wires the pipeline stages together and runs them in
// order. Each stage reads and extends a shared run state; the first
// failure aborts the run.
package app

import (
	"context"
	"log/slog"
	"time"

	"bevcli/internal/analysis"
	"bevcli/internal/dataprocessing"
	"bevcli/internal/exporter"
	"bevcli/internal/model"
	"bevcli/pkg/contracts/domain"
)

// Options configures one pipeline run.
type Options struct {
	WorkbookPath   string
	SheetName      string
	CleanCSV       string
	PredictionsCSV string
	// Seed is the deterministic source for any stage that needs one.
	// Every current stage is deterministic by construction, so it is
	// only logged.
	Seed int64
}

// Result collects everything the console report renders.
type Result struct {
	CleanReport *dataprocessing.CleanReport
	Summaries   []analysis.ColumnSummary
	Skewness    float64
	Scores      []domain.ModelScore
	Predictions *domain.PredictionTable
}

// runState is the data flowing between stages.
type runState struct {
	raw      *domain.Table
	clean    *domain.Table
	result   *Result
	rulePH   []float64
	linPH    []float64
	observed []float64
}

// stage is one named step of the pipeline.
type stage struct {
	name string
	run  func(ctx context.Context, s *runState) error
}

// Pipeline executes the fixed stage sequence: load, clean, export the
// cleaned table, explore the target, predict with both models, evaluate,
// export predictions.
type Pipeline struct {
	opts   Options
	logger *slog.Logger

	loader    *dataprocessing.Loader
	cleaner   *dataprocessing.Cleaner
	writer    *exporter.CSVWriter
	ruleModel *model.RuleModel
	linModel  *model.LinearModel
	evaluator *model.Evaluator
}

// NewPipeline builds a pipeline with all stages wired. A nil logger
// falls back to slog.Default.
func NewPipeline(opts Options, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		opts:      opts,
		logger:    logger,
		loader:    dataprocessing.NewLoader(logger),
		cleaner:   dataprocessing.NewCleaner(logger),
		writer:    exporter.NewCSVWriter(logger),
		ruleModel: model.NewRuleModel(),
		linModel:  model.NewLinearModel(logger),
		evaluator: model.NewEvaluator(logger),
	}
}

// Run executes every stage in order and returns the collected results.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	p.logger.InfoContext(ctx, "pipeline starting",
		"workbook", p.opts.WorkbookPath,
		"seed", p.opts.Seed,
	)

	state := &runState{result: &Result{}}
	stages := []stage{
		{"load", p.load},
		{"clean", p.clean},
		{"export-clean", p.exportClean},
		{"explore", p.explore},
		{"predict", p.predict},
		{"evaluate", p.evaluate},
		{"export-predictions", p.exportPredictions},
	}

	for _, st := range stages {
		stageStart := time.Now()
		if err := st.run(ctx, state); err != nil {
			p.logger.ErrorContext(ctx, "stage failed", "stage", st.name, "error", err)
			return nil, err
		}
		p.logger.DebugContext(ctx, "stage completed",
			"stage", st.name,
			"duration", time.Since(stageStart),
		)
	}

	p.logger.InfoContext(ctx, "pipeline completed", "duration", time.Since(start))
	return state.result, nil
}

func (p *Pipeline) load(ctx context.Context, s *runState) error {
	table, err := p.loader.Load(ctx, p.opts.WorkbookPath, p.opts.SheetName)
	if err != nil {
		return err
	}
	s.raw = table
	return nil
}

func (p *Pipeline) clean(ctx context.Context, s *runState) error {
	clean, report, err := p.cleaner.Clean(ctx, s.raw)
	if err != nil {
		return err
	}
	s.clean = clean
	s.result.CleanReport = report
	return nil
}

func (p *Pipeline) exportClean(ctx context.Context, s *runState) error {
	return p.writer.WriteTable(ctx, p.opts.CleanCSV, s.clean)
}

func (p *Pipeline) explore(ctx context.Context, s *runState) error {
	for _, name := range domain.RequiredColumns {
		vals, err := s.clean.Floats(name)
		if err != nil {
			return err
		}
		summary, err := analysis.Summarize(name, vals)
		if err != nil {
			return err
		}
		s.result.Summaries = append(s.result.Summaries, summary)
	}

	ph, err := s.clean.Floats(domain.ColPH)
	if err != nil {
		return err
	}
	s.observed = ph

	skew, err := analysis.Skewness(ph)
	if err != nil {
		return err
	}
	s.result.Skewness = skew
	p.logger.InfoContext(ctx, "target distribution explored",
		"skewness", skew,
		"rows", len(ph),
	)
	return nil
}

func (p *Pipeline) predict(ctx context.Context, s *runState) error {
	rulePH, err := p.ruleModel.Predict(s.clean)
	if err != nil {
		return err
	}
	s.rulePH = rulePH

	if err := p.linModel.Fit(ctx, s.clean); err != nil {
		return err
	}
	linPH, err := p.linModel.Predict(s.clean)
	if err != nil {
		return err
	}
	s.linPH = linPH
	return nil
}

func (p *Pipeline) evaluate(ctx context.Context, s *runState) error {
	predictions := &domain.PredictionTable{
		Observed: s.observed,
		RulePH:   s.rulePH,
		LMPH:     s.linPH,
	}
	scores, err := p.evaluator.Compare(ctx, predictions)
	if err != nil {
		return err
	}
	s.result.Predictions = predictions
	s.result.Scores = scores
	return nil
}

func (p *Pipeline) exportPredictions(ctx context.Context, s *runState) error {
	return p.writer.WritePredictions(ctx, p.opts.PredictionsCSV, s.result.Predictions)
}
