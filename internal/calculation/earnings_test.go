package calculation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/refdash/refdash/internal/domain"
)

func TestCalculateEarnings(t *testing.T) {
	tests := []struct {
		name      string
		principal decimal.Decimal
		rate      decimal.Decimal
		expected  decimal.Decimal
	}{
		{
			name:      "reference rate",
			principal: decimal.NewFromInt(10000),
			rate:      decimal.NewFromFloat(0.24),
			expected:  decimal.NewFromInt(2400),
		},
		{
			name:      "zero principal",
			principal: decimal.Zero,
			rate:      decimal.NewFromFloat(0.24),
			expected:  decimal.Zero,
		},
		{
			name:      "zero rate",
			principal: decimal.NewFromInt(10000),
			rate:      decimal.Zero,
			expected:  decimal.Zero,
		},
		{
			name:      "fractional principal",
			principal: decimal.NewFromFloat(1234.56),
			rate:      decimal.NewFromFloat(0.24),
			expected:  decimal.NewFromFloat(296.2944),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateEarnings(tt.principal, tt.rate)
			assert.True(t, got.Equal(tt.expected), "expected %s, got %s", tt.expected, got)
		})
	}
}

func TestCalculateCommission(t *testing.T) {
	table := domain.DefaultRateTable()
	earnings := decimal.NewFromInt(3600)

	tests := []struct {
		name       string
		generation int
		expected   decimal.Decimal
	}{
		{name: "generation 1 pays 20%", generation: 1, expected: decimal.NewFromInt(720)},
		{name: "generation 2 pays 10%", generation: 2, expected: decimal.NewFromInt(360)},
		{name: "generation 3 pays 5%", generation: 3, expected: decimal.NewFromInt(180)},
		{name: "generation 7 pays 5%", generation: 7, expected: decimal.NewFromInt(180)},
		{name: "generation 8 beyond table pays zero", generation: 8, expected: decimal.Zero},
		{name: "generation 17 pays zero", generation: 17, expected: decimal.Zero},
		{name: "generation 0 pays zero", generation: 0, expected: decimal.Zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateCommission(earnings, tt.generation, table)
			assert.True(t, got.Equal(tt.expected), "expected %s, got %s", tt.expected, got)
		})
	}
}

func TestCommissionBeyondTableIsExactlyZeroForAnyAmount(t *testing.T) {
	table := domain.DefaultRateTable()
	for _, amount := range []decimal.Decimal{
		decimal.Zero,
		decimal.NewFromFloat(0.01),
		decimal.NewFromInt(1000000),
	} {
		got := CalculateCommission(amount, table.MaxGeneration()+1, table)
		assert.True(t, got.Equal(decimal.Zero), "amount %s: expected zero, got %s", amount, got)
	}
}

func TestRecomputeReferralIsDeterministic(t *testing.T) {
	cycle := domain.DefaultCycleConfig()
	table := domain.DefaultRateTable()

	ref := domain.Referral{
		Name:       "Alice",
		Generation: 1,
		Amount:     decimal.NewFromInt(15000),
		StartDate:  time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
	}

	RecomputeReferral(&ref, cycle, table)
	firstEarnings := ref.Earnings
	firstIncome := ref.UserIncome

	// Recomputing without changing inputs must yield identical results.
	RecomputeReferral(&ref, cycle, table)
	assert.True(t, ref.Earnings.Equal(firstEarnings))
	assert.True(t, ref.UserIncome.Equal(firstIncome))

	assert.True(t, ref.Earnings.Equal(decimal.NewFromInt(3600)))
	assert.True(t, ref.UserIncome.Equal(decimal.NewFromInt(720)))
}

func TestRecomputeReferralFollowsGenerationChange(t *testing.T) {
	cycle := domain.DefaultCycleConfig()
	table := domain.DefaultRateTable()

	ref := domain.Referral{Generation: 1, Amount: decimal.NewFromInt(10000)}
	RecomputeReferral(&ref, cycle, table)
	assert.True(t, ref.UserIncome.Equal(decimal.NewFromInt(480)))

	ref.Generation = 2
	RecomputeReferral(&ref, cycle, table)
	assert.True(t, ref.UserIncome.Equal(decimal.NewFromInt(240)))
}

func TestRecomputeInvestment(t *testing.T) {
	cycle := domain.DefaultCycleConfig()
	inv := domain.PersonalInvestment{Amount: decimal.NewFromInt(5000)}

	RecomputeInvestment(&inv, cycle)
	assert.True(t, inv.Earnings.Equal(decimal.NewFromInt(1200)))

	inv.Amount = decimal.NewFromInt(6000)
	RecomputeInvestment(&inv, cycle)
	assert.True(t, inv.Earnings.Equal(decimal.NewFromInt(1440)))
}
