// Package report renders the human-readable run summary: distribution
// statistics, cleaning results, target skewness, and the model
// comparison. Nothing downstream parses this output.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"bevcli/internal/analysis"
	"bevcli/internal/dataprocessing"
	"bevcli/pkg/contracts/domain"
)

// Reporter writes report sections to a single output stream.
type Reporter struct {
	out io.Writer
}

// NewReporter creates a reporter writing to out.
func NewReporter(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

// PrintSummaries renders a distribution summary table for the given
// columns.
func (r *Reporter) PrintSummaries(summaries []analysis.ColumnSummary) {
	fmt.Fprintln(r.out, "Column summary (cleaned data):")
	table := tablewriter.NewWriter(r.out)
	table.SetHeader([]string{"Column", "Count", "Mean", "Median", "Min", "Max", "StdDev"})
	for _, s := range summaries {
		table.Append([]string{
			s.Name,
			strconv.Itoa(s.Count),
			formatStat(s.Mean),
			formatStat(s.Median),
			formatStat(s.Min),
			formatStat(s.Max),
			formatStat(s.StdDev),
		})
	}
	table.Render()
	fmt.Fprintln(r.out)
}

// PrintCleaning renders what the cleaner observed and did, listing the
// flagged columns only.
func (r *Reporter) PrintCleaning(cr *dataprocessing.CleanReport) {
	fmt.Fprintf(r.out, "Cleaning: %d rows in, %d rows out, %d dropped\n",
		cr.RowsIn, cr.RowsOut, cr.RowsDropped)

	table := tablewriter.NewWriter(r.out)
	table.SetHeader([]string{"Flagged Column", "Missing", "Zeros", "Imputed", "Median"})
	for _, cs := range cr.Columns {
		if !cs.Flagged {
			continue
		}
		median := ""
		if cs.Imputed > 0 {
			median = formatStat(cs.Median)
		}
		table.Append([]string{
			cs.Name,
			strconv.Itoa(cs.Missing),
			strconv.Itoa(cs.Zeros),
			strconv.Itoa(cs.Imputed),
			median,
		})
	}
	table.Render()
	fmt.Fprintln(r.out)
}

// PrintSkewness renders the target distribution's skewness.
func (r *Reporter) PrintSkewness(skew float64) {
	fmt.Fprintf(r.out, "PH skewness: %s\n\n", formatStat(skew))
}

// PrintComparison renders the model comparison table.
func (r *Reporter) PrintComparison(scores []domain.ModelScore) {
	fmt.Fprintln(r.out, "Model comparison:")
	table := tablewriter.NewWriter(r.out)
	table.SetHeader([]string{"Model", "RMSE"})
	for _, s := range scores {
		table.Append([]string{s.Model, formatStat(s.RMSE)})
	}
	table.Render()
}

func formatStat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
