package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/refdash/refdash/internal/domain"
)

// ProjectPersonalIncome simulates cycles compounding cycles of a personal
// investment. Cycle 1 earns principal * rate; each following cycle earns on
// the previous cycle's running total, producing geometric growth. A
// non-positive principal or cycle count yields a zero-valued projection
// rather than an error, since these inputs typically come from half-typed
// form fields.
func ProjectPersonalIncome(principal decimal.Decimal, cycles int, rate decimal.Decimal) domain.PersonalProjection {
	if cycles <= 0 || !principal.IsPositive() {
		return domain.PersonalProjection{
			InitialAmount: decimal.Zero,
			TotalEarnings: decimal.Zero,
			FinalAmount:   decimal.Zero,
		}
	}

	projection := domain.PersonalProjection{
		InitialAmount: principal,
		Breakdown:     make([]domain.CycleBreakdown, 0, cycles),
	}

	running := principal
	total := decimal.Zero
	for cycle := 1; cycle <= cycles; cycle++ {
		earnings := CalculateEarnings(running, rate)
		running = running.Add(earnings)
		total = total.Add(earnings)
		projection.Breakdown = append(projection.Breakdown, domain.CycleBreakdown{
			Cycle:    cycle,
			Earnings: earnings,
			Total:    running,
		})
	}

	projection.TotalEarnings = total
	projection.FinalAmount = running
	return projection
}

// ProjectReferralIncome aggregates the periodic income from a set of
// hypothetical referral groups. Groups with a non-positive amount or count
// are filtered out before computation, so the breakdown only lists groups
// that contributed.
func ProjectReferralIncome(groups []domain.ReferralGroupInput, cycle domain.CycleConfig, table domain.RateTable) domain.ReferralProjection {
	projection := domain.ReferralProjection{
		TotalIncome: decimal.Zero,
	}

	for _, g := range groups {
		if g.Count <= 0 || !g.AmountPerReferral.IsPositive() {
			continue
		}
		earnings := CalculateEarnings(g.AmountPerReferral, cycle.EarningsRate)
		income := CalculateCommission(earnings, g.Generation, table).Mul(decimal.NewFromInt(int64(g.Count)))
		projection.Breakdown = append(projection.Breakdown, domain.GroupBreakdown{
			Generation:        g.Generation,
			Count:             g.Count,
			AmountPerReferral: g.AmountPerReferral,
			ReferralEarnings:  earnings,
			UserIncome:        income,
		})
		projection.TotalIncome = projection.TotalIncome.Add(income)
	}

	return projection
}
