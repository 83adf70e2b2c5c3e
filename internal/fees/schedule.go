// Package fees implements the fee schedule calculations for a gold
// investment product: one-time purchase fees, annual custody and management
// accruals, and the redemption charge, with exact decimal arithmetic
// throughout. All rates are fractions (0.00315 means 0.315%), never
// float64 for money.
package fees

import (
	"fmt"

	"github.com/dfmgold/goldfees/pkg/constants"
	"github.com/shopspring/decimal"
)

// PaymentTiming controls when an annually accruing fee is actually paid.
type PaymentTiming string

const (
	// PayAtRedemption accrues the fee each year and settles the full
	// accrued amount at redemption.
	PayAtRedemption PaymentTiming = "atRedemption"

	// PayAnnually pays the fee in the year it accrues.
	PayAnnually PaymentTiming = "annual"
)

// ParsePaymentTiming converts a configuration string into a PaymentTiming.
// The empty string defaults to PayAtRedemption, matching the benchmark
// product behavior.
func ParsePaymentTiming(value string) (PaymentTiming, error) {
	switch value {
	case "", string(PayAtRedemption):
		return PayAtRedemption, nil
	case string(PayAnnually):
		return PayAnnually, nil
	}
	return "", fmt.Errorf("%w: payment timing must be %q or %q, got %q",
		ErrInvalidInput, PayAnnually, PayAtRedemption, value)
}

// TimingPolicy pairs the payment timings for the two annually accruing fees.
// Custody and management are toggled independently.
type TimingPolicy struct {
	Custody    PaymentTiming
	Management PaymentTiming
}

// custody returns the custody timing, defaulting to PayAtRedemption.
func (p TimingPolicy) custody() PaymentTiming {
	if p.Custody == "" {
		return PayAtRedemption
	}
	return p.Custody
}

func (p TimingPolicy) management() PaymentTiming {
	if p.Management == "" {
		return PayAtRedemption
	}
	return p.Management
}

// FeeRateSchedule is an immutable set of fee rates for a gold product.
// The custody rate is tiered: CustodyTier1Rate applies through the tier
// boundary year, CustodyTier2Rate afterwards. A zero CustodyTier2Rate
// means the schedule has a single tier and the tier-1 rate applies to
// every year. A zero CustodyTierBoundary defaults to year 5.
type FeeRateSchedule struct {
	AcquisitionPerGram  decimal.Decimal
	ArrangementRate     decimal.Decimal
	CustodyTier1Rate    decimal.Decimal
	CustodyTier2Rate    decimal.Decimal
	CustodyTierBoundary int
	ManagementRate      decimal.Decimal
	RedemptionRate      decimal.Decimal
}

// CustodyRate resolves the custody rate applicable to the given 1-based
// holding year.
func (s FeeRateSchedule) CustodyRate(year int) decimal.Decimal {
	boundary := s.CustodyTierBoundary
	if boundary == 0 {
		boundary = constants.CustodyTierBoundaryYear
	}
	if year <= boundary || s.CustodyTier2Rate.IsZero() {
		return s.CustodyTier1Rate
	}
	return s.CustodyTier2Rate
}

// Benchmark rates: ENBD "Precious Metal - Gold" published fee card.
// The arrangement fee is documented as "up to 2.10%"; the benchmark pins
// the full rate since the published validation figures assume it.
var (
	benchmarkAcquisitionPerGram = decimal.RequireFromString("0.1575")
	benchmarkArrangementRate    = decimal.RequireFromString("0.021")
	benchmarkCustodyTier1Rate   = decimal.RequireFromString("0.00315")
	benchmarkCustodyTier2Rate   = decimal.RequireFromString("0.0105")
	benchmarkRedemptionRate     = decimal.RequireFromString("0.00525")
)

// BenchmarkSchedule returns the fixed benchmark fee schedule: acquisition
// AED 0.1575 per gram, arrangement 2.10%, custody 0.315% p.a. for years
// 1-5 and 1.05% p.a. from year 6, redemption 0.525%, no management fee.
func BenchmarkSchedule() FeeRateSchedule {
	return FeeRateSchedule{
		AcquisitionPerGram:  benchmarkAcquisitionPerGram,
		ArrangementRate:     benchmarkArrangementRate,
		CustodyTier1Rate:    benchmarkCustodyTier1Rate,
		CustodyTier2Rate:    benchmarkCustodyTier2Rate,
		CustodyTierBoundary: constants.CustodyTierBoundaryYear,
		RedemptionRate:      benchmarkRedemptionRate,
	}
}

// BenchmarkPolicy returns the benchmark payment timing: custody accrues
// yearly and is paid at redemption.
func BenchmarkPolicy() TimingPolicy {
	return TimingPolicy{
		Custody:    PayAtRedemption,
		Management: PayAtRedemption,
	}
}

// RateCardEntry is a display-friendly row of the benchmark rate card.
type RateCardEntry struct {
	FeeType string `json:"feeType"`
	Rate    string `json:"rate"`
	Timing  string `json:"timing"`
}

// BenchmarkRateCard returns the benchmark fee schedule as display rows.
func BenchmarkRateCard() []RateCardEntry {
	return []RateCardEntry{
		{FeeType: "Acquisition Fee", Rate: "AED 0.1575 per gram", Timing: "One-time at purchase"},
		{FeeType: "Arrangement Fee", Rate: "2.10% of notional", Timing: "One-time at purchase"},
		{FeeType: "Custody (Years 1-5)", Rate: "0.315% p.a.", Timing: "Accrues yearly, paid at redemption"},
		{FeeType: "Custody (Years 6+)", Rate: "1.05% p.a.", Timing: "Accrues yearly, paid at redemption"},
		{FeeType: "Redemption Fee", Rate: "0.525% of notional", Timing: "Paid at redemption"},
	}
}
