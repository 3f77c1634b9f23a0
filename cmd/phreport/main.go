// Command phreport runs the beverage pH analysis pipeline: it loads the
// measurement workbook, cleans it, fits the rule and regression models,
// and writes the cleaned table and the predictions as CSV alongside a
// console report.
//
// Configuration comes from BEV_* environment variables, with an optional
// YAML file named by BEV_CONFIG. There are no command-line flags.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"bevcli/internal/app"
	"bevcli/internal/config"
	"bevcli/internal/infrastructure"
	"bevcli/internal/pipeerrors"
	"bevcli/internal/report"
)

func main() {
	if err := run(); err != nil {
		slog.Error("run aborted",
			"error", err,
			"category", string(pipeerrors.CategoryOf(err)),
		)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("BEV_CONFIG"))
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logger := infrastructure.NewLogger(cfg.Logging, os.Stderr)
	slog.SetDefault(logger)

	ctx := infrastructure.EnsureRunID(context.Background())

	pipeline := app.NewPipeline(app.Options{
		WorkbookPath:   cfg.Input.WorkbookPath,
		SheetName:      cfg.Input.SheetName,
		CleanCSV:       cfg.Output.CleanCSV,
		PredictionsCSV: cfg.Output.PredictionsCSV,
		Seed:           cfg.Seed,
	}, logger)

	result, err := pipeline.Run(ctx)
	if err != nil {
		return err
	}

	r := report.NewReporter(os.Stdout)
	r.PrintCleaning(result.CleanReport)
	r.PrintSummaries(result.Summaries)
	r.PrintSkewness(result.Skewness)
	r.PrintComparison(result.Scores)
	return nil
}
