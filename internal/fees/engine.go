package fees

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrInvalidInput indicates a calculation input that fails validation.
// No partial results are produced when it is returned.
var ErrInvalidInput = errors.New("invalid input")

// Input carries everything needed to compute one fee schedule.
type Input struct {
	PricePerGram decimal.Decimal
	Grams        decimal.Decimal
	HoldingYears int
	Schedule     FeeRateSchedule
	Timing       TimingPolicy
}

// YearlyFeeRecord is the fee breakdown for a single 1-based holding year.
// Paid is the amount actually paid that year under the timing policy;
// AccruedUnpaid is the cumulative accrued-but-unpaid balance after the
// year's payment.
type YearlyFeeRecord struct {
	Year          int
	Custody       decimal.Decimal
	Management    decimal.Decimal
	Paid          decimal.Decimal
	AccruedUnpaid decimal.Decimal
}

// FeeSummary aggregates all fee components for a holding period.
// Total always equals the exact sum of the five named components.
type FeeSummary struct {
	Acquisition   decimal.Decimal
	Arrangement   decimal.Decimal
	Custody       decimal.Decimal
	Management    decimal.Decimal
	Redemption    decimal.Decimal
	Total         decimal.Decimal
	PctOfNotional decimal.Decimal
}

// Schedule is the complete result of a fee calculation: one record per
// holding year in ascending order plus the aggregate summary.
type Schedule struct {
	Notional     decimal.Decimal
	HoldingYears int
	Years        []YearlyFeeRecord
	Summary      FeeSummary
}

// Engine computes fee schedules. It holds no mutable state and is safe
// for concurrent use.
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates a fee calculation engine with the given logger.
// If logger is nil, it will use a no-op logger to prevent panics.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// Calculate produces the year-by-year fee schedule and summary for the
// given input. Each year's fees are computed independently against the
// constant notional; there is no compounding across years. Amounts are
// kept at full internal precision, no rounding happens before
// aggregation.
func (e *Engine) Calculate(in Input) (*Schedule, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	notional := in.PricePerGram.Mul(in.Grams)
	acquisition := in.Schedule.AcquisitionPerGram.Mul(in.Grams)
	arrangement := notional.Mul(in.Schedule.ArrangementRate)
	redemption := notional.Mul(in.Schedule.RedemptionRate)

	years := make([]YearlyFeeRecord, 0, in.HoldingYears)
	custodyTotal := decimal.Zero
	managementTotal := decimal.Zero
	accrued := decimal.Zero
	for year := 1; year <= in.HoldingYears; year++ {
		custody := notional.Mul(in.Schedule.CustodyRate(year))
		management := notional.Mul(in.Schedule.ManagementRate)
		custodyTotal = custodyTotal.Add(custody)
		managementTotal = managementTotal.Add(management)

		paid := decimal.Zero
		if in.Timing.custody() == PayAnnually {
			paid = paid.Add(custody)
		} else {
			accrued = accrued.Add(custody)
		}
		if in.Timing.management() == PayAnnually {
			paid = paid.Add(management)
		} else {
			accrued = accrued.Add(management)
		}

		// Redemption settles the accrued balance plus the redemption charge.
		if year == in.HoldingYears {
			paid = paid.Add(accrued).Add(redemption)
			accrued = decimal.Zero
		}

		years = append(years, YearlyFeeRecord{
			Year:          year,
			Custody:       custody,
			Management:    management,
			Paid:          paid,
			AccruedUnpaid: accrued,
		})
	}

	total := acquisition.Add(arrangement).Add(custodyTotal).Add(managementTotal).Add(redemption)
	pct := decimal.Zero
	if notional.IsPositive() {
		pct = total.Div(notional)
	}

	e.logger.Debug("fee schedule computed",
		zap.String("op", "fees.Calculate"),
		zap.Int("holdingYears", in.HoldingYears),
		zap.String("notional", notional.String()),
		zap.String("totalFees", total.String()),
	)

	return &Schedule{
		Notional:     notional,
		HoldingYears: in.HoldingYears,
		Years:        years,
		Summary: FeeSummary{
			Acquisition:   acquisition,
			Arrangement:   arrangement,
			Custody:       custodyTotal,
			Management:    managementTotal,
			Redemption:    redemption,
			Total:         total,
			PctOfNotional: pct,
		},
	}, nil
}

// BenchmarkInput returns the engine input for a benchmark scenario with
// the given gold position and holding period.
func BenchmarkInput(pricePerGram, grams decimal.Decimal, holdingYears int) Input {
	return Input{
		PricePerGram: pricePerGram,
		Grams:        grams,
		HoldingYears: holdingYears,
		Schedule:     BenchmarkSchedule(),
		Timing:       BenchmarkPolicy(),
	}
}

func validateInput(in Input) error {
	if in.PricePerGram.IsNegative() {
		return fmt.Errorf("%w: price per gram %s is negative", ErrInvalidInput, in.PricePerGram)
	}
	if in.Grams.IsNegative() {
		return fmt.Errorf("%w: grams %s is negative", ErrInvalidInput, in.Grams)
	}
	if in.HoldingYears < 0 {
		return fmt.Errorf("%w: holding years %d is negative", ErrInvalidInput, in.HoldingYears)
	}
	rates := []struct {
		name  string
		value decimal.Decimal
	}{
		{"acquisition fee per gram", in.Schedule.AcquisitionPerGram},
		{"arrangement rate", in.Schedule.ArrangementRate},
		{"custody tier-1 rate", in.Schedule.CustodyTier1Rate},
		{"custody tier-2 rate", in.Schedule.CustodyTier2Rate},
		{"management rate", in.Schedule.ManagementRate},
		{"redemption rate", in.Schedule.RedemptionRate},
	}
	for _, rate := range rates {
		if rate.value.IsNegative() {
			return fmt.Errorf("%w: %s %s is negative", ErrInvalidInput, rate.name, rate.value)
		}
	}
	if in.Schedule.CustodyTierBoundary < 0 {
		return fmt.Errorf("%w: custody tier boundary %d is negative", ErrInvalidInput, in.Schedule.CustodyTierBoundary)
	}
	if _, err := ParsePaymentTiming(string(in.Timing.Custody)); err != nil {
		return err
	}
	if _, err := ParsePaymentTiming(string(in.Timing.Management)); err != nil {
		return err
	}
	return nil
}
