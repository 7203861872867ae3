package calculation

import (
	"sort"
	"time"

	"github.com/refdash/refdash/internal/domain"
)

// CalculateDashboardMetrics folds the full portfolio snapshot into a
// dashboard rollup. It is stateless and snapshot-pure: calling it repeatedly
// with the same inputs and reference date yields the same result, so it is
// safe to invoke on every storage update.
//
// Total earnings include records of every status; lifetime totals keep
// counting completed and expired cycles. Only the expiring-today views filter
// to active records.
func CalculateDashboardMetrics(referrals []domain.Referral, investments []domain.PersonalInvestment, leads []domain.Lead, reference time.Time) domain.DashboardMetrics {
	metrics := domain.ZeroDashboardMetrics()

	for _, inv := range investments {
		metrics.TotalInvested = metrics.TotalInvested.Add(inv.Amount)
		metrics.TotalEarnings = metrics.TotalEarnings.Add(inv.Earnings)
		if IsInCurrentMonth(inv.StartDate, reference) {
			metrics.MonthlyEarnings = metrics.MonthlyEarnings.Add(inv.Earnings)
		}
		if IsExpiringToday(inv.Expiration, reference) {
			metrics.ExpiringToday++
		}
	}

	for _, ref := range referrals {
		metrics.TotalReferrals++
		// Unknown generations keep their own bucket; the rate table, not the
		// counter, decides they pay no commission.
		metrics.ReferralsByGeneration[ref.Generation]++
		metrics.TotalEarnings = metrics.TotalEarnings.Add(ref.UserIncome)
		if IsInCurrentMonth(ref.StartDate, reference) {
			metrics.MonthlyEarnings = metrics.MonthlyEarnings.Add(ref.UserIncome)
		}
		if IsExpiringToday(ref.Expiration, reference) {
			metrics.ExpiringToday++
		}
	}

	for _, lead := range leads {
		if lead.Status == domain.LeadStatusInterested {
			metrics.ActiveLeads++
		}
	}

	return metrics
}

// TopReferrals returns the n referrals with the highest user income, ranked
// by the income accruing to the account owner rather than the referral's own
// earnings. The sort is stable so ties keep their insertion order across
// repeated calls with unchanged input.
func TopReferrals(referrals []domain.Referral, n int) []domain.Referral {
	if n <= 0 || len(referrals) == 0 {
		return nil
	}

	ranked := make([]domain.Referral, len(referrals))
	copy(ranked, referrals)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].UserIncome.GreaterThan(ranked[j].UserIncome)
	})

	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}

// ExpiringToday returns the active referrals and active investments whose
// expiration date falls on the reference date's calendar day, as two
// independent lists.
func ExpiringToday(referrals []domain.Referral, investments []domain.PersonalInvestment, reference time.Time) domain.ExpiringBucket {
	var bucket domain.ExpiringBucket

	for _, ref := range referrals {
		if ref.IsActive() && IsExpiringToday(ref.Expiration, reference) {
			bucket.Referrals = append(bucket.Referrals, ref)
		}
	}
	for _, inv := range investments {
		if inv.IsActive() && IsExpiringToday(inv.Expiration, reference) {
			bucket.Investments = append(bucket.Investments, inv)
		}
	}

	return bucket
}

// GenerationSummaries rolls the referral collection up per generation,
// ordered by ascending generation.
func GenerationSummaries(referrals []domain.Referral) []domain.GenerationSummary {
	byGen := make(map[int]*domain.GenerationSummary)
	for _, ref := range referrals {
		summary, ok := byGen[ref.Generation]
		if !ok {
			summary = &domain.GenerationSummary{Generation: ref.Generation}
			byGen[ref.Generation] = summary
		}
		summary.Count++
		summary.TotalPrincipal = summary.TotalPrincipal.Add(ref.Amount)
		summary.TotalIncome = summary.TotalIncome.Add(ref.UserIncome)
	}

	summaries := make([]domain.GenerationSummary, 0, len(byGen))
	for _, summary := range byGen {
		summaries = append(summaries, *summary)
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Generation < summaries[j].Generation
	})
	return summaries
}
