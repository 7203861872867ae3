package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/refdash/refdash/internal/domain"
)

// CalculateEarnings returns the amount earned on a principal over one cycle.
// The caller is responsible for validating the principal; the engine assumes
// non-negative numeric input.
func CalculateEarnings(principal, rate decimal.Decimal) decimal.Decimal {
	return principal.Mul(rate)
}

// CalculateCommission returns the commission the account owner earns on a
// referral's cycle earnings. Generations without a configured rate pay zero
// commission.
func CalculateCommission(referralEarnings decimal.Decimal, generation int, table domain.RateTable) decimal.Decimal {
	return referralEarnings.Mul(table.Rate(generation))
}

// RecomputeReferral refreshes the derived Earnings and UserIncome fields from
// the referral's current Amount and Generation. The derived fields are never
// written anywhere else.
func RecomputeReferral(r *domain.Referral, cycle domain.CycleConfig, table domain.RateTable) {
	r.Earnings = CalculateEarnings(r.Amount, cycle.EarningsRate)
	r.UserIncome = CalculateCommission(r.Earnings, r.Generation, table)
}

// RecomputeInvestment refreshes the derived Earnings field from the
// investment's current Amount.
func RecomputeInvestment(p *domain.PersonalInvestment, cycle domain.CycleConfig) {
	p.Earnings = CalculateEarnings(p.Amount, cycle.EarningsRate)
}
