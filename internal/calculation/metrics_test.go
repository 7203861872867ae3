package calculation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refdash/refdash/internal/domain"
)

func newTestReferral(name string, generation int, amount int64, start, expiration time.Time, status domain.ReferralStatus) domain.Referral {
	ref := domain.Referral{
		Name:       name,
		Generation: generation,
		Amount:     decimal.NewFromInt(amount),
		StartDate:  start,
		Expiration: expiration,
		Status:     status,
	}
	RecomputeReferral(&ref, domain.DefaultCycleConfig(), domain.DefaultRateTable())
	return ref
}

func newTestInvestment(id string, amount int64, start, expiration time.Time, status domain.ReferralStatus) domain.PersonalInvestment {
	inv := domain.PersonalInvestment{
		ID:         id,
		Amount:     decimal.NewFromInt(amount),
		StartDate:  start,
		Expiration: expiration,
		Status:     status,
	}
	RecomputeInvestment(&inv, domain.DefaultCycleConfig())
	return inv
}

func TestCalculateDashboardMetrics(t *testing.T) {
	reference := time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC)
	thisMonth := time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC)
	lastMonth := time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)
	today := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	tomorrow := time.Date(2026, 6, 16, 0, 0, 0, 0, time.UTC)

	referrals := []domain.Referral{
		newTestReferral("Alice", 1, 15000, thisMonth, tomorrow, domain.ReferralStatusActive), // income 720
		newTestReferral("Bob", 2, 10000, lastMonth, today, domain.ReferralStatusActive),      // income 240
		newTestReferral("Carol", 17, 5000, lastMonth, tomorrow, domain.ReferralStatusActive), // income 0 (beyond table)
	}
	investments := []domain.PersonalInvestment{
		newTestInvestment("inv-1", 10000, thisMonth, today, domain.ReferralStatusActive),    // earnings 2400
		newTestInvestment("inv-2", 5000, lastMonth, tomorrow, domain.ReferralStatusExpired), // earnings 1200
	}
	leads := []domain.Lead{
		{Name: "Dana", Status: domain.LeadStatusInterested},
		{Name: "Evan", Status: domain.LeadStatusDoubtful},
		{Name: "Faye", Status: domain.LeadStatusInterested},
		{Name: "Gus", Status: domain.LeadStatusRejected},
	}

	metrics := CalculateDashboardMetrics(referrals, investments, leads, reference)

	assert.True(t, metrics.TotalInvested.Equal(decimal.NewFromInt(15000)),
		"expected 15000, got %s", metrics.TotalInvested)
	assert.Equal(t, 3, metrics.TotalReferrals)
	assert.Equal(t, map[int]int{1: 1, 2: 1, 17: 1}, metrics.ReferralsByGeneration)

	// Lifetime totals count every status: 720 + 240 + 0 + 2400 + 1200.
	assert.True(t, metrics.TotalEarnings.Equal(decimal.NewFromInt(4560)),
		"expected 4560, got %s", metrics.TotalEarnings)

	// June starters only: Alice's 720 + inv-1's 2400.
	assert.True(t, metrics.MonthlyEarnings.Equal(decimal.NewFromInt(3120)),
		"expected 3120, got %s", metrics.MonthlyEarnings)

	// Bob and inv-1 expire on the reference day; status does not matter here.
	assert.Equal(t, 2, metrics.ExpiringToday)
	assert.Equal(t, 2, metrics.ActiveLeads)
}

func TestCalculateDashboardMetricsEmptyCollections(t *testing.T) {
	metrics := CalculateDashboardMetrics(nil, nil, nil, time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC))

	assert.True(t, metrics.TotalInvested.IsZero())
	assert.Zero(t, metrics.TotalReferrals)
	assert.Empty(t, metrics.ReferralsByGeneration)
	assert.True(t, metrics.TotalEarnings.IsZero())
	assert.True(t, metrics.MonthlyEarnings.IsZero())
	assert.Zero(t, metrics.ExpiringToday)
	assert.Zero(t, metrics.ActiveLeads)
}

func TestCalculateDashboardMetricsIsSnapshotPure(t *testing.T) {
	reference := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	referrals := []domain.Referral{
		newTestReferral("Alice", 1, 15000, reference, reference, domain.ReferralStatusActive),
	}

	first := CalculateDashboardMetrics(referrals, nil, nil, reference)
	second := CalculateDashboardMetrics(referrals, nil, nil, reference)

	assert.Equal(t, first, second)
}

func TestTopReferralsRanksByUserIncome(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	exp := time.Date(2026, 1, 29, 0, 0, 0, 0, time.UTC)

	referrals := []domain.Referral{
		newTestReferral("small gen1", 1, 1000, start, exp, domain.ReferralStatusActive),  // 48
		newTestReferral("big gen2", 2, 50000, start, exp, domain.ReferralStatusActive),   // 1200
		newTestReferral("mid gen1", 1, 10000, start, exp, domain.ReferralStatusActive),   // 480
		newTestReferral("huge gen9", 9, 900000, start, exp, domain.ReferralStatusActive), // 0
	}

	top := TopReferrals(referrals, 2)
	require.Len(t, top, 2)
	// Ranking follows the owner's income, not the referral's own earnings:
	// the generation-9 whale earns the owner nothing and must not rank.
	assert.Equal(t, "big gen2", top[0].Name)
	assert.Equal(t, "mid gen1", top[1].Name)
}

func TestTopReferralsTiesKeepInsertionOrder(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	exp := time.Date(2026, 1, 29, 0, 0, 0, 0, time.UTC)

	// Incomes 100, 100, 50: the two ties must come back in insertion order.
	a := newTestReferral("first", 1, 1, start, exp, domain.ReferralStatusActive)
	a.UserIncome = decimal.NewFromInt(100)
	b := newTestReferral("second", 1, 1, start, exp, domain.ReferralStatusActive)
	b.UserIncome = decimal.NewFromInt(100)
	c := newTestReferral("third", 1, 1, start, exp, domain.ReferralStatusActive)
	c.UserIncome = decimal.NewFromInt(50)

	referrals := []domain.Referral{a, b, c}

	for i := 0; i < 3; i++ {
		top := TopReferrals(referrals, 2)
		require.Len(t, top, 2)
		assert.Equal(t, "first", top[0].Name)
		assert.Equal(t, "second", top[1].Name)
	}
}

func TestTopReferralsBounds(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	referrals := []domain.Referral{
		newTestReferral("only", 1, 1000, start, start, domain.ReferralStatusActive),
	}

	assert.Nil(t, TopReferrals(referrals, 0))
	assert.Nil(t, TopReferrals(nil, 5))
	assert.Len(t, TopReferrals(referrals, 5), 1)
}

func TestTopReferralsDoesNotMutateInput(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	referrals := []domain.Referral{
		newTestReferral("low", 2, 1000, start, start, domain.ReferralStatusActive),
		newTestReferral("high", 1, 50000, start, start, domain.ReferralStatusActive),
	}

	TopReferrals(referrals, 2)
	assert.Equal(t, "low", referrals[0].Name)
	assert.Equal(t, "high", referrals[1].Name)
}

func TestExpiringToday(t *testing.T) {
	reference := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	today := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	tomorrow := time.Date(2026, 6, 16, 0, 0, 0, 0, time.UTC)
	start := time.Date(2026, 5, 18, 0, 0, 0, 0, time.UTC)

	referrals := []domain.Referral{
		newTestReferral("expires today A", 1, 1000, start, today, domain.ReferralStatusActive),
		newTestReferral("expires today B", 1, 2000, start, today, domain.ReferralStatusActive),
		newTestReferral("expires tomorrow", 1, 3000, start, tomorrow, domain.ReferralStatusActive),
		newTestReferral("already completed", 1, 4000, start, today, domain.ReferralStatusCompleted),
	}
	investments := []domain.PersonalInvestment{
		newTestInvestment("inv-1", 5000, start, today, domain.ReferralStatusActive),
		newTestInvestment("inv-2", 6000, start, today, domain.ReferralStatusExpired),
	}

	bucket := ExpiringToday(referrals, investments, reference)

	// Only active records expiring on the reference day qualify.
	require.Len(t, bucket.Referrals, 2)
	assert.Equal(t, "expires today A", bucket.Referrals[0].Name)
	assert.Equal(t, "expires today B", bucket.Referrals[1].Name)
	require.Len(t, bucket.Investments, 1)
	assert.Equal(t, "inv-1", bucket.Investments[0].ID)
}

func TestGenerationSummaries(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	exp := time.Date(2026, 1, 29, 0, 0, 0, 0, time.UTC)

	referrals := []domain.Referral{
		newTestReferral("a", 2, 10000, start, exp, domain.ReferralStatusActive),
		newTestReferral("b", 1, 15000, start, exp, domain.ReferralStatusActive),
		newTestReferral("c", 1, 5000, start, exp, domain.ReferralStatusActive),
	}

	summaries := GenerationSummaries(referrals)
	require.Len(t, summaries, 2)

	assert.Equal(t, 1, summaries[0].Generation)
	assert.Equal(t, 2, summaries[0].Count)
	assert.True(t, summaries[0].TotalPrincipal.Equal(decimal.NewFromInt(20000)))
	assert.True(t, summaries[0].TotalIncome.Equal(decimal.NewFromInt(960)),
		"expected 960, got %s", summaries[0].TotalIncome)

	assert.Equal(t, 2, summaries[1].Generation)
	assert.Equal(t, 1, summaries[1].Count)
}
