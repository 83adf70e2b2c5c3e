package output

import (
	"strings"
	"testing"

	"github.com/dfmgold/goldfees/internal/fees"
	"github.com/shopspring/decimal"
)

func computeBenchmark(t *testing.T, holdingYears int) *fees.Schedule {
	t.Helper()
	engine := fees.NewEngine(nil)
	schedule, err := engine.Calculate(fees.BenchmarkInput(
		decimal.RequireFromString("596"),
		decimal.RequireFromString("1"),
		holdingYears,
	))
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	return schedule
}

func TestCsvString(t *testing.T) {
	schedule := computeBenchmark(t, 5)
	results := []Result{{Name: "Benchmark 5-Year Hold", Schedule: schedule}}

	csv := CsvString(results, nil)
	lines := strings.Split(strings.TrimRight(csv, "\n"), "\n")

	// Header + 5 yearly rows + summary header + 1 summary row.
	if len(lines) != 8 {
		t.Fatalf("got %d CSV lines, expected 8:\n%s", len(lines), csv)
	}
	if lines[0] != `"scenario","year","custody","management","paid","accrued unpaid"` {
		t.Errorf("unexpected yearly header: %s", lines[0])
	}
	if lines[1] != `"Benchmark 5-Year Hold","1","1.8774","0.0000","0.0000","1.8774"` {
		t.Errorf("unexpected year 1 row: %s", lines[1])
	}
	if lines[5] != `"Benchmark 5-Year Hold","5","1.8774","0.0000","12.5160","0.0000"` {
		t.Errorf("unexpected redemption year row: %s", lines[5])
	}
	if !strings.Contains(lines[7], `"25.19"`) {
		t.Errorf("summary row missing rounded total: %s", lines[7])
	}
	if !strings.Contains(lines[7], `"0.1575"`) || !strings.Contains(lines[7], `"12.5160"`) {
		t.Errorf("summary row missing one-time fee components: %s", lines[7])
	}
}

func TestCsvStringWithComparison(t *testing.T) {
	scenario1 := computeBenchmark(t, 5)
	scenario2 := computeBenchmark(t, 10)
	comparison := fees.CompareAgainstBenchmark(scenario1, scenario2, scenario1)

	csv := CsvString([]Result{{Name: "Benchmark 5-Year Hold", Schedule: scenario1}}, &comparison)

	if !strings.Contains(csv, `"comparison","benchmark total","model total","difference"`) {
		t.Errorf("CSV missing comparison header:\n%s", csv)
	}
	if !strings.Contains(csv, `"25.19","25.19","0.00"`) {
		t.Errorf("CSV missing comparison totals:\n%s", csv)
	}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"pretty", false},
		{"csv", false},
		{"", true},
		{"json", true},
		{"CSV", true},
	}

	for _, tt := range tests {
		t.Run("format "+tt.format, func(t *testing.T) {
			err := ValidateFormat(tt.format)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
			}
		})
	}
}

func TestCsvStringEmptySchedule(t *testing.T) {
	schedule := computeBenchmark(t, 0)
	csv := CsvString([]Result{{Name: "Immediate Redemption", Schedule: schedule}}, nil)

	lines := strings.Split(strings.TrimRight(csv, "\n"), "\n")
	// Yearly header with no rows, then the summary table.
	if len(lines) != 3 {
		t.Fatalf("got %d CSV lines, expected 3:\n%s", len(lines), csv)
	}
	if !strings.Contains(lines[2], `"0.0000","0.0000"`) {
		t.Errorf("summary row should show zero custody and management: %s", lines[2])
	}
}
