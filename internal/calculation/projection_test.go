package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refdash/refdash/internal/domain"
)

func TestProjectPersonalIncomeCompounds(t *testing.T) {
	rate := decimal.NewFromFloat(0.24)
	projection := ProjectPersonalIncome(decimal.NewFromInt(10000), 3, rate)

	require.Len(t, projection.Breakdown, 3)

	// Cycle 1: 10000 * 0.24 = 2400, total 12400.
	assert.Equal(t, 1, projection.Breakdown[0].Cycle)
	assert.True(t, projection.Breakdown[0].Earnings.Equal(decimal.NewFromInt(2400)))
	assert.True(t, projection.Breakdown[0].Total.Equal(decimal.NewFromInt(12400)))

	// Cycle 2 earns on cycle 1's total: 12400 * 0.24 = 2976, total 15376.
	assert.Equal(t, 2, projection.Breakdown[1].Cycle)
	assert.True(t, projection.Breakdown[1].Earnings.Equal(decimal.NewFromInt(2976)))
	assert.True(t, projection.Breakdown[1].Total.Equal(decimal.NewFromInt(15376)))

	// Cycle 3: 15376 * 0.24 = 3690.24, total 19066.24.
	assert.Equal(t, 3, projection.Breakdown[2].Cycle)
	assert.True(t, projection.Breakdown[2].Earnings.Equal(decimal.NewFromFloat(3690.24)))
	assert.True(t, projection.Breakdown[2].Total.Equal(decimal.NewFromFloat(19066.24)))

	assert.True(t, projection.InitialAmount.Equal(decimal.NewFromInt(10000)))
	assert.True(t, projection.TotalEarnings.Equal(decimal.NewFromFloat(9066.24)))
	assert.True(t, projection.FinalAmount.Equal(decimal.NewFromFloat(19066.24)))
}

func TestProjectPersonalIncomeMatchesClosedForm(t *testing.T) {
	// finalAmount == principal * (1 + rate)^N within floating point tolerance.
	principal := decimal.NewFromInt(10000)
	rate := decimal.NewFromFloat(0.24)

	for _, cycles := range []int{1, 2, 5, 12} {
		projection := ProjectPersonalIncome(principal, cycles, rate)
		expected := principal.Mul(decimal.NewFromInt(1).Add(rate).Pow(decimal.NewFromInt(int64(cycles))))
		diff := projection.FinalAmount.Sub(expected).Abs()
		assert.True(t, diff.LessThan(decimal.NewFromFloat(0.0001)),
			"cycles %d: expected %s, got %s", cycles, expected, projection.FinalAmount)
	}
}

func TestProjectPersonalIncomeBreakdownIsMonotonic(t *testing.T) {
	projection := ProjectPersonalIncome(decimal.NewFromInt(5000), 10, decimal.NewFromFloat(0.24))

	require.Len(t, projection.Breakdown, 10)
	for i := 1; i < len(projection.Breakdown); i++ {
		assert.True(t, projection.Breakdown[i].Total.GreaterThan(projection.Breakdown[i-1].Total),
			"breakdown[%d].Total must exceed breakdown[%d].Total", i, i-1)
	}
}

func TestProjectPersonalIncomeDegenerateInputs(t *testing.T) {
	tests := []struct {
		name      string
		principal decimal.Decimal
		cycles    int
	}{
		{name: "zero cycles", principal: decimal.NewFromInt(10000), cycles: 0},
		{name: "negative cycles", principal: decimal.NewFromInt(10000), cycles: -3},
		{name: "zero principal", principal: decimal.Zero, cycles: 5},
		{name: "negative principal", principal: decimal.NewFromInt(-100), cycles: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			projection := ProjectPersonalIncome(tt.principal, tt.cycles, decimal.NewFromFloat(0.24))
			assert.True(t, projection.InitialAmount.IsZero())
			assert.True(t, projection.TotalEarnings.IsZero())
			assert.True(t, projection.FinalAmount.IsZero())
			assert.Empty(t, projection.Breakdown)
		})
	}
}

func TestProjectReferralIncome(t *testing.T) {
	cycle := domain.DefaultCycleConfig()
	table := domain.DefaultRateTable()

	// One group of five generation-1 referrals at 15000 each:
	// earnings 3600 per referral, income 3600 * 0.20 * 5 = 3600.
	projection := ProjectReferralIncome([]domain.ReferralGroupInput{
		{Generation: 1, AmountPerReferral: decimal.NewFromInt(15000), Count: 5},
	}, cycle, table)

	require.Len(t, projection.Breakdown, 1)
	group := projection.Breakdown[0]
	assert.True(t, group.ReferralEarnings.Equal(decimal.NewFromInt(3600)))
	assert.True(t, group.UserIncome.Equal(decimal.NewFromInt(3600)))
	assert.True(t, projection.TotalIncome.Equal(decimal.NewFromInt(3600)))
}

func TestProjectReferralIncomeSumsGroups(t *testing.T) {
	cycle := domain.DefaultCycleConfig()
	table := domain.DefaultRateTable()

	projection := ProjectReferralIncome([]domain.ReferralGroupInput{
		{Generation: 1, AmountPerReferral: decimal.NewFromInt(10000), Count: 2}, // 2400*0.20*2 = 960
		{Generation: 2, AmountPerReferral: decimal.NewFromInt(10000), Count: 3}, // 2400*0.10*3 = 720
		{Generation: 9, AmountPerReferral: decimal.NewFromInt(10000), Count: 4}, // beyond table: 0
	}, cycle, table)

	require.Len(t, projection.Breakdown, 3)
	assert.True(t, projection.TotalIncome.Equal(decimal.NewFromInt(1680)),
		"expected 1680, got %s", projection.TotalIncome)
}

func TestProjectReferralIncomeFiltersEmptyGroups(t *testing.T) {
	cycle := domain.DefaultCycleConfig()
	table := domain.DefaultRateTable()

	projection := ProjectReferralIncome([]domain.ReferralGroupInput{
		{Generation: 1, AmountPerReferral: decimal.NewFromInt(15000), Count: 0},
		{Generation: 1, AmountPerReferral: decimal.Zero, Count: 5},
		{Generation: 1, AmountPerReferral: decimal.NewFromInt(15000), Count: -2},
		{Generation: 2, AmountPerReferral: decimal.NewFromInt(8000), Count: 1},
	}, cycle, table)

	// Non-contributing groups are filtered, not zero-computed: the breakdown
	// lists only the group that contributed.
	require.Len(t, projection.Breakdown, 1)
	assert.Equal(t, 2, projection.Breakdown[0].Generation)
	assert.True(t, projection.TotalIncome.Equal(decimal.NewFromInt(192)),
		"expected 192, got %s", projection.TotalIncome)
}

func TestProjectReferralIncomeEmptyInput(t *testing.T) {
	projection := ProjectReferralIncome(nil, domain.DefaultCycleConfig(), domain.DefaultRateTable())
	assert.True(t, projection.TotalIncome.IsZero())
	assert.Empty(t, projection.Breakdown)
}
