package fees

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Comparison contrasts the configured model's total fees against a
// benchmark scenario over a comparable holding period.
type Comparison struct {
	Label          string
	BenchmarkYears int
	BenchmarkTotal decimal.Decimal
	ModelTotal     decimal.Decimal
	Difference     decimal.Decimal
	BenchmarkPct   decimal.Decimal
	ModelPct       decimal.Decimal
}

// CompareAgainstBenchmark picks the benchmark scenario matching the
// model's holding period (scenario 1 for 5 years, scenario 2 for 10) and
// returns the fee difference. Other holding periods compare against the
// 5-year scenario. Difference is model minus benchmark, so a negative
// value means the model is cheaper.
func CompareAgainstBenchmark(scenario1, scenario2, model *Schedule) Comparison {
	benchmark := scenario1
	label := fmt.Sprintf("Model (%dyr) vs Benchmark (%dyr)", model.HoldingYears, benchmark.HoldingYears)
	switch model.HoldingYears {
	case scenario1.HoldingYears:
		label = fmt.Sprintf("Model vs Benchmark (%d-year)", scenario1.HoldingYears)
	case scenario2.HoldingYears:
		benchmark = scenario2
		label = fmt.Sprintf("Model vs Benchmark (%d-year)", scenario2.HoldingYears)
	}

	return Comparison{
		Label:          label,
		BenchmarkYears: benchmark.HoldingYears,
		BenchmarkTotal: benchmark.Summary.Total,
		ModelTotal:     model.Summary.Total,
		Difference:     model.Summary.Total.Sub(benchmark.Summary.Total),
		BenchmarkPct:   benchmark.Summary.PctOfNotional,
		ModelPct:       model.Summary.PctOfNotional,
	}
}
