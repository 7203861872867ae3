package domain

import "github.com/shopspring/decimal"

// RateTable maps a referral generation to the commission rate the account
// owner earns on that referral's cycle earnings. Generations are open-ended
// positive integers and the table may be sparse; a generation with no entry
// pays no commission rather than producing an error.
type RateTable map[int]decimal.Decimal

// DefaultRateTable returns the standard commission schedule:
// 20% for generation 1, 10% for generation 2, 5% for generations 3-7.
func DefaultRateTable() RateTable {
	table := RateTable{
		1: decimal.NewFromFloat(0.20),
		2: decimal.NewFromFloat(0.10),
	}
	for gen := 3; gen <= 7; gen++ {
		table[gen] = decimal.NewFromFloat(0.05)
	}
	return table
}

// Rate returns the commission rate for a generation, or zero when the
// generation is not configured.
func (rt RateTable) Rate(generation int) decimal.Decimal {
	if rate, ok := rt[generation]; ok {
		return rate
	}
	return decimal.Zero
}

// MaxGeneration returns the highest generation with a configured rate,
// or 0 for an empty table.
func (rt RateTable) MaxGeneration() int {
	max := 0
	for gen := range rt {
		if gen > max {
			max = gen
		}
	}
	return max
}

// CycleConfig holds the investment cycle parameters. Both values are
// configuration, not algorithm constants.
type CycleConfig struct {
	// EarningsRate is the fraction of principal earned per completed cycle.
	EarningsRate decimal.Decimal `json:"earningsRate" yaml:"earnings_rate"`
	// CycleDays is the calendar length of one cycle.
	CycleDays int `json:"cycleDays" yaml:"cycle_days"`
}

// DefaultCycleConfig returns the reference configuration of 24% per 28-day cycle.
func DefaultCycleConfig() CycleConfig {
	return CycleConfig{
		EarningsRate: decimal.NewFromFloat(0.24),
		CycleDays:    28,
	}
}
