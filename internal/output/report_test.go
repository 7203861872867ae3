package output

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refdash/refdash/internal/domain"
)

func sampleReport() *Report {
	metrics := domain.ZeroDashboardMetrics()
	metrics.TotalInvested = decimal.NewFromInt(25000)
	metrics.TotalReferrals = 2
	metrics.ReferralsByGeneration = map[int]int{1: 1, 2: 1}
	metrics.TotalEarnings = decimal.NewFromFloat(3120.50)
	metrics.MonthlyEarnings = decimal.NewFromInt(720)
	metrics.ExpiringToday = 1
	metrics.ActiveLeads = 3

	alice := domain.Referral{
		ID:         "ref-1",
		Name:       "Alice",
		Generation: 1,
		Amount:     decimal.NewFromInt(15000),
		Earnings:   decimal.NewFromInt(3600),
		UserIncome: decimal.NewFromInt(720),
		Status:     domain.ReferralStatusActive,
		StartDate:  time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		Expiration: time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC),
	}

	return &Report{
		GeneratedAt:  time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
		Metrics:      metrics,
		TopReferrals: []domain.Referral{alice},
		Expiring: domain.ExpiringBucket{
			Referrals: []domain.Referral{alice},
		},
		Generations: []domain.GenerationSummary{
			{Generation: 1, Count: 1, TotalPrincipal: decimal.NewFromInt(15000), TotalIncome: decimal.NewFromInt(720)},
		},
	}
}

func TestGetFormatterByName(t *testing.T) {
	assert.NotNil(t, GetFormatterByName("console"))
	assert.NotNil(t, GetFormatterByName("json"))
	assert.NotNil(t, GetFormatterByName("csv"))
	assert.Nil(t, GetFormatterByName("html"))
}

func TestConsoleFormatter(t *testing.T) {
	data, err := ConsoleFormatter{}.Format(sampleReport())
	require.NoError(t, err)
	text := string(data)

	assert.Contains(t, text, "REFERRAL INVESTMENT DASHBOARD")
	assert.Contains(t, text, "Total invested:    $25,000.00")
	assert.Contains(t, text, "Total earnings:    $3,120.50")
	assert.Contains(t, text, "Generation  1: 1")
	assert.Contains(t, text, "TOP REFERRALS BY INCOME")
	assert.Contains(t, text, "Alice")
	assert.Contains(t, text, "EXPIRING TODAY")
}

func TestJSONFormatterRoundTrips(t *testing.T) {
	data, err := JSONFormatter{}.Format(sampleReport())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "metrics")
	assert.Contains(t, decoded, "topReferrals")

	metrics := decoded["metrics"].(map[string]any)
	assert.Equal(t, "25000", metrics["totalInvested"])
}

func TestCSVFormatter(t *testing.T) {
	data, err := CSVFormatter{}.Format(sampleReport())
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Name", records[0][0])
	assert.Equal(t, "Alice", records[1][0])
	assert.Equal(t, "720.00", records[1][4])
	assert.Equal(t, "2026-01-05", records[1][6])
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount   decimal.Decimal
		expected string
	}{
		{decimal.Zero, "$0.00"},
		{decimal.NewFromInt(5), "$5.00"},
		{decimal.NewFromFloat(1234.5), "$1,234.50"},
		{decimal.NewFromInt(1000000), "$1,000,000.00"},
		{decimal.NewFromFloat(-42.75), "-$42.75"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatCurrency(tt.amount), "amount %s", tt.amount)
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "24.00%", FormatPercent(decimal.NewFromFloat(0.24)))
	assert.Equal(t, "5.00%", FormatPercent(decimal.NewFromFloat(0.05)))
}

func TestFormatPersonalProjection(t *testing.T) {
	text := FormatPersonalProjection(domain.PersonalProjection{
		InitialAmount: decimal.NewFromInt(10000),
		TotalEarnings: decimal.NewFromFloat(9066.24),
		FinalAmount:   decimal.NewFromFloat(19066.24),
		Breakdown: []domain.CycleBreakdown{
			{Cycle: 1, Earnings: decimal.NewFromInt(2400), Total: decimal.NewFromInt(12400)},
			{Cycle: 2, Earnings: decimal.NewFromInt(2976), Total: decimal.NewFromInt(15376)},
			{Cycle: 3, Earnings: decimal.NewFromFloat(3690.24), Total: decimal.NewFromFloat(19066.24)},
		},
	})

	assert.Contains(t, text, "PERSONAL INCOME PROJECTION")
	assert.Contains(t, text, "$12,400.00")
	assert.Contains(t, text, "$19,066.24")
}

func TestFormatReferralProjection(t *testing.T) {
	text := FormatReferralProjection(domain.ReferralProjection{
		TotalIncome: decimal.NewFromInt(3600),
		Breakdown: []domain.GroupBreakdown{
			{
				Generation:        1,
				Count:             5,
				AmountPerReferral: decimal.NewFromInt(15000),
				ReferralEarnings:  decimal.NewFromInt(3600),
				UserIncome:        decimal.NewFromInt(3600),
			},
		},
	})

	assert.Contains(t, text, "REFERRAL INCOME PROJECTION")
	assert.Contains(t, text, "$15,000.00")
	assert.Contains(t, text, "Total income per cycle: $3,600.00")
}
