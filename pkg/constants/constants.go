// Package constants provides shared constants for the goldfees application.
package constants

// Fee schedule constants
const (
	// CustodyTierBoundaryYear is the last holding year the tier-1 custody
	// rate applies to; later years use the tier-2 rate.
	CustodyTierBoundaryYear = 5

	// BenchmarkScenario1Years is the holding period for benchmark scenario 1.
	BenchmarkScenario1Years = 5

	// BenchmarkScenario2Years is the holding period for benchmark scenario 2.
	BenchmarkScenario2Years = 10

	// MaxReasonableHoldingYears is the holding period above which the
	// configuration validator emits a warning.
	MaxReasonableHoldingYears = 50
)

// Display precision constants
const (
	// TablePrecision is the number of fractional digits for per-year tables.
	TablePrecision = 4

	// SummaryPrecision is the number of fractional digits for summary totals.
	SummaryPrecision = 2
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the web UI
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML configs (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)
