package domain

import "github.com/shopspring/decimal"

// DashboardMetrics is a point-in-time rollup of the whole portfolio. It is
// derived, never persisted, and depends only on the input snapshot and the
// reference date supplied by the caller.
type DashboardMetrics struct {
	// TotalInvested is the sum of principal across all personal investments.
	TotalInvested decimal.Decimal `json:"totalInvested"`
	// TotalReferrals is the count of referral records of any status.
	TotalReferrals int `json:"totalReferrals"`
	// ReferralsByGeneration counts referrals per generation. Generations
	// outside the configured rate table still get their own bucket; only the
	// rate table defaults unknown generations to zero commission.
	ReferralsByGeneration map[int]int `json:"referralsByGeneration"`
	// TotalEarnings sums personal earnings plus referral commissions across
	// records of every status (lifetime totals).
	TotalEarnings decimal.Decimal `json:"totalEarnings"`
	// MonthlyEarnings sums earnings and commissions for records whose start
	// date falls in the reference date's calendar month.
	MonthlyEarnings decimal.Decimal `json:"monthlyEarnings"`
	// ExpiringToday counts referrals and investments whose expiration date is
	// the reference date's calendar day.
	ExpiringToday int `json:"expiringToday"`
	// ActiveLeads counts leads with status "interested".
	ActiveLeads int `json:"activeLeads"`
}

// ZeroDashboardMetrics returns an all-zero rollup with an initialized
// generation map.
func ZeroDashboardMetrics() DashboardMetrics {
	return DashboardMetrics{
		TotalInvested:         decimal.Zero,
		ReferralsByGeneration: make(map[int]int),
		TotalEarnings:         decimal.Zero,
		MonthlyEarnings:       decimal.Zero,
	}
}

// ExpiringBucket holds the records expiring on a given calendar day, kept as
// two independent lists rather than a merged one.
type ExpiringBucket struct {
	Referrals   []Referral           `json:"referrals"`
	Investments []PersonalInvestment `json:"investments"`
}

// GenerationSummary is a reportable per-generation rollup of the referral
// collection.
type GenerationSummary struct {
	Generation     int             `json:"generation"`
	Count          int             `json:"count"`
	TotalPrincipal decimal.Decimal `json:"totalPrincipal"`
	TotalIncome    decimal.Decimal `json:"totalIncome"`
}
