// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"fmt"
	"io"

	"github.com/dfmgold/goldfees/internal/fees"
	"github.com/dfmgold/goldfees/pkg/constants"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for goldfees.
//
// Prices and rates are YAML strings so that they reach the decimal parser
// without passing through binary floating point.
type Configuration struct {
	Gold         GoldConfig    `yaml:"gold"`
	HoldingYears int           `yaml:"holdingYears"`
	Model        ModelConfig   `yaml:"model"`
	Logging      LoggingConfig `yaml:"logging,omitempty"`
	Output       OutputConfig  `yaml:"output,omitempty"`
}

// GoldConfig describes the gold position being priced.
type GoldConfig struct {
	PricePerGram string `yaml:"pricePerGram"`
	Grams        string `yaml:"grams"`
}

// ModelConfig holds the user-configurable fee model rates. All rates are
// decimal fractions, e.g. "0.021" for 2.1%. Timings accept "annual" or
// "atRedemption"; empty means atRedemption.
type ModelConfig struct {
	PurchaseFeePerGram string `yaml:"purchaseFeePerGram"`
	PurchaseFeePct     string `yaml:"purchaseFeePct"`
	CustodyFeePct      string `yaml:"custodyFeePct"`
	ManagementFeePct   string `yaml:"managementFeePct"`
	RedemptionFeePct   string `yaml:"redemptionFeePct"`
	CustodyTiming      string `yaml:"custodyTiming,omitempty"`
	ManagementTiming   string `yaml:"managementTiming,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.AutomaticEnv()

	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return unmarshalConfiguration(v)
}

// LoadConfigurationFromReader loads a YAML configuration from an in-memory
// reader; used by the HTTP server for uploaded configs.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return unmarshalConfiguration(v)
}

func unmarshalConfiguration(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// GoldPosition parses the configured gold price and quantity into exact
// decimals. Empty values default to zero.
func (c *Configuration) GoldPosition() (price, grams decimal.Decimal, err error) {
	price, err = parseDecimal("gold.pricePerGram", c.Gold.PricePerGram)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	grams, err = parseDecimal("gold.grams", c.Gold.Grams)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return price, grams, nil
}

// ModelInput converts the configuration into a fee engine input for the
// configurable model. The model's custody rate is single-tier, so the
// tier-2 rate resolves to the tier-1 rate for every year.
func (c *Configuration) ModelInput() (fees.Input, error) {
	price, grams, err := c.GoldPosition()
	if err != nil {
		return fees.Input{}, err
	}

	schedule := fees.FeeRateSchedule{
		CustodyTierBoundary: constants.CustodyTierBoundaryYear,
	}
	for _, field := range []struct {
		name  string
		value string
		dst   *decimal.Decimal
	}{
		{"model.purchaseFeePerGram", c.Model.PurchaseFeePerGram, &schedule.AcquisitionPerGram},
		{"model.purchaseFeePct", c.Model.PurchaseFeePct, &schedule.ArrangementRate},
		{"model.custodyFeePct", c.Model.CustodyFeePct, &schedule.CustodyTier1Rate},
		{"model.managementFeePct", c.Model.ManagementFeePct, &schedule.ManagementRate},
		{"model.redemptionFeePct", c.Model.RedemptionFeePct, &schedule.RedemptionRate},
	} {
		parsed, err := parseDecimal(field.name, field.value)
		if err != nil {
			return fees.Input{}, err
		}
		*field.dst = parsed
	}

	custodyTiming, err := fees.ParsePaymentTiming(c.Model.CustodyTiming)
	if err != nil {
		return fees.Input{}, fmt.Errorf("model.custodyTiming: %w", err)
	}
	managementTiming, err := fees.ParsePaymentTiming(c.Model.ManagementTiming)
	if err != nil {
		return fees.Input{}, fmt.Errorf("model.managementTiming: %w", err)
	}

	return fees.Input{
		PricePerGram: price,
		Grams:        grams,
		HoldingYears: c.HoldingYears,
		Schedule:     schedule,
		Timing: fees.TimingPolicy{
			Custody:    custodyTiming,
			Management: managementTiming,
		},
	}, nil
}

func parseDecimal(name, value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	parsed, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: cannot parse %q as a decimal: %w", name, value, err)
	}
	return parsed, nil
}

// ValidateConfiguration performs general validation of the configuration
// and returns warnings.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if price, grams, err := c.GoldPosition(); err == nil {
		if price.Mul(grams).IsZero() {
			warnings = append(warnings, "gold notional is zero; all percentage-based fees will be zero")
		}
	}
	if c.HoldingYears > constants.MaxReasonableHoldingYears {
		warnings = append(warnings, fmt.Sprintf("holding period of %d years exceeds %d; results are extrapolated well beyond the product's published scenarios",
			c.HoldingYears, constants.MaxReasonableHoldingYears))
	}
	if in, err := c.ModelInput(); err == nil {
		zeroRates := in.Schedule.AcquisitionPerGram.IsZero() &&
			in.Schedule.ArrangementRate.IsZero() &&
			in.Schedule.CustodyTier1Rate.IsZero() &&
			in.Schedule.ManagementRate.IsZero() &&
			in.Schedule.RedemptionRate.IsZero()
		if zeroRates {
			warnings = append(warnings, "all model fee rates are zero; the model schedule will show no fees")
		}
	}

	return warnings
}
