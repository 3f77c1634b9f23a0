// Package dataprocessing handles ingestion and cleaning of beverage
// manufacturing measurements.
//
// The package has two components:
//
//  1. Loader: reads the measurement workbook, locates the data sheet and
//     header row, and types each column numeric or text.
//  2. Cleaner: treats zeros in affected columns as unrecorded values,
//     imputes missing predictors with the column median, and drops rows
//     that remain incomplete.
//
// Basic usage:
//
//	loader := dataprocessing.NewLoader(logger)
//	table, err := loader.Load(ctx, "data/StudentData.xlsx", "")
//	if err != nil {
//	    return err
//	}
//	cleaner := dataprocessing.NewCleaner(logger)
//	clean, report, err := cleaner.Clean(ctx, table)
package dataprocessing
