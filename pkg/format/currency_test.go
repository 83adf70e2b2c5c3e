package format

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestAED(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		places   int32
		expected string
	}{
		{"table precision", "25.1895", 4, "AED 25.1895"},
		{"summary precision rounds", "25.1895", 2, "AED 25.19"},
		{"padding", "3.129", 4, "AED 3.1290"},
		{"thousands separators", "1234567.5", 2, "AED 1,234,567.50"},
		{"zero", "0", 2, "AED 0.00"},
		{"negative", "-1234.5", 2, "-AED 1,234.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AED(decimal.RequireFromString(tt.amount), tt.places)
			if got != tt.expected {
				t.Errorf("AED(%s, %d) = %q, expected %q", tt.amount, tt.places, got, tt.expected)
			}
		})
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		name     string
		rate     string
		places   int32
		expected string
	}{
		{"arrangement rate", "0.021", 2, "2.10%"},
		{"custody rate", "0.00315", 3, "0.315%"},
		{"zero", "0", 2, "0.00%"},
		{"whole", "1", 2, "100.00%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percent(decimal.RequireFromString(tt.rate), tt.places)
			if got != tt.expected {
				t.Errorf("Percent(%s, %d) = %q, expected %q", tt.rate, tt.places, got, tt.expected)
			}
		})
	}
}
