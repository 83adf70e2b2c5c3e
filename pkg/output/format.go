// Package output provides utilities for formatting and displaying fee
// schedule results.
package output

import (
	"fmt"
	"strings"

	"github.com/dfmgold/goldfees/internal/fees"
	"github.com/dfmgold/goldfees/pkg/constants"
	"github.com/dfmgold/goldfees/pkg/format"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var hundred = decimal.NewFromInt(100)

// SupportedFormats lists the output formats the CLI accepts.
var SupportedFormats = []string{constants.OutputFormatPretty, constants.OutputFormatCSV}

// ValidateFormat checks that format names a supported output format.
func ValidateFormat(format string) error {
	for _, supported := range SupportedFormats {
		if format == supported {
			return nil
		}
	}
	return fmt.Errorf("unsupported output format %q, expected one of %s",
		format, strings.Join(SupportedFormats, ", "))
}

// displayFloat rounds at the display precision before converting, so the
// float conversion cannot reintroduce drift into what is printed.
func displayFloat(d decimal.Decimal, places int32) float64 {
	f, _ := d.Round(places).Float64()
	return f
}

// Result pairs a named scenario with its computed fee schedule.
type Result struct {
	Name     string
	Schedule *fees.Schedule
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
// Per-year amounts are shown at 4 decimals, summary totals at 2.
func PrettyFormat(results []Result, comparison *fees.Comparison) {
	p := message.NewPrinter(language.English)
	for _, result := range results {
		fmt.Printf("--- Fee schedule for %s ---\n", result.Name)
		fmt.Printf("Year | Custody     | Management  | Paid        | Accrued Unpaid\n")
		fmt.Printf("____ | ___________ | ___________ | ___________ | ______________\n")
		for _, year := range result.Schedule.Years {
			_, _ = p.Printf("%4d | %11.4f | %11.4f | %11.4f | %14.4f\n",
				year.Year,
				displayFloat(year.Custody, constants.TablePrecision),
				displayFloat(year.Management, constants.TablePrecision),
				displayFloat(year.Paid, constants.TablePrecision),
				displayFloat(year.AccruedUnpaid, constants.TablePrecision),
			)
		}
		summary := result.Schedule.Summary
		fmt.Printf("Acquisition: %s | Arrangement: %s | Custody: %s | Management: %s | Redemption: %s\n",
			format.AED(summary.Acquisition, constants.TablePrecision),
			format.AED(summary.Arrangement, constants.TablePrecision),
			format.AED(summary.Custody, constants.TablePrecision),
			format.AED(summary.Management, constants.TablePrecision),
			format.AED(summary.Redemption, constants.TablePrecision),
		)
		fmt.Printf("Total fees: %s (%s of notional %s)\n\n",
			format.AED(summary.Total, constants.SummaryPrecision),
			format.Percent(summary.PctOfNotional, constants.SummaryPrecision),
			format.AED(result.Schedule.Notional, constants.SummaryPrecision),
		)
	}

	if comparison != nil {
		fmt.Printf("--- %s ---\n", comparison.Label)
		fmt.Printf("Benchmark fees: %s (%s of notional)\n",
			format.AED(comparison.BenchmarkTotal, constants.SummaryPrecision),
			format.Percent(comparison.BenchmarkPct, constants.SummaryPrecision),
		)
		fmt.Printf("Model fees:     %s (%s of notional)\n",
			format.AED(comparison.ModelTotal, constants.SummaryPrecision),
			format.Percent(comparison.ModelPct, constants.SummaryPrecision),
		)
		fmt.Printf("Difference:     %s\n",
			format.AED(comparison.Difference, constants.SummaryPrecision),
		)
	}
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(results []Result, comparison *fees.Comparison) {
	fmt.Print(CsvString(results, comparison))
}

// CsvString renders the results as CSV: a per-year table at 4 decimals,
// a summary table at 2 decimals, and the comparison row when present.
func CsvString(results []Result, comparison *fees.Comparison) string {
	var builder strings.Builder

	builder.WriteString(`"scenario","year","custody","management","paid","accrued unpaid"` + "\n")
	for _, result := range results {
		for _, year := range result.Schedule.Years {
			builder.WriteString(fmt.Sprintf(`"%s","%d","%s","%s","%s","%s"`+"\n",
				result.Name,
				year.Year,
				year.Custody.StringFixed(constants.TablePrecision),
				year.Management.StringFixed(constants.TablePrecision),
				year.Paid.StringFixed(constants.TablePrecision),
				year.AccruedUnpaid.StringFixed(constants.TablePrecision),
			))
		}
	}

	builder.WriteString(`"scenario","acquisition","arrangement","custody","management","redemption","total","pct of notional"` + "\n")
	for _, result := range results {
		summary := result.Schedule.Summary
		builder.WriteString(fmt.Sprintf(`"%s","%s","%s","%s","%s","%s","%s","%s"`+"\n",
			result.Name,
			summary.Acquisition.StringFixed(constants.TablePrecision),
			summary.Arrangement.StringFixed(constants.TablePrecision),
			summary.Custody.StringFixed(constants.TablePrecision),
			summary.Management.StringFixed(constants.TablePrecision),
			summary.Redemption.StringFixed(constants.TablePrecision),
			summary.Total.StringFixed(constants.SummaryPrecision),
			summary.PctOfNotional.Mul(hundred).StringFixed(constants.SummaryPrecision),
		))
	}

	if comparison != nil {
		builder.WriteString(`"comparison","benchmark total","model total","difference"` + "\n")
		builder.WriteString(fmt.Sprintf(`"%s","%s","%s","%s"`+"\n",
			comparison.Label,
			comparison.BenchmarkTotal.StringFixed(constants.SummaryPrecision),
			comparison.ModelTotal.StringFixed(constants.SummaryPrecision),
			comparison.Difference.StringFixed(constants.SummaryPrecision),
		))
	}

	return builder.String()
}
