package calculation

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/refdash/refdash/internal/domain"
	"github.com/refdash/refdash/pkg/dateutil"
)

// Engine binds the cycle configuration and commission rate table to the pure
// calculators and owns the record lifecycle operations. It carries no mutable
// state beyond its configuration, so a single engine is safe to share across
// snapshots.
type Engine struct {
	Cycle domain.CycleConfig
	Rates domain.RateTable
}

// NewEngine creates an engine with the reference configuration (24% per
// 28-day cycle, standard commission schedule).
func NewEngine() *Engine {
	return &Engine{
		Cycle: domain.DefaultCycleConfig(),
		Rates: domain.DefaultRateTable(),
	}
}

// NewEngineWithConfig creates an engine with explicit cycle and commission
// configuration. Zero-valued fields fall back to the defaults.
func NewEngineWithConfig(cycle domain.CycleConfig, rates domain.RateTable) *Engine {
	if cycle.CycleDays <= 0 {
		cycle.CycleDays = domain.DefaultCycleConfig().CycleDays
	}
	if cycle.EarningsRate.IsZero() {
		cycle.EarningsRate = domain.DefaultCycleConfig().EarningsRate
	}
	if len(rates) == 0 {
		rates = domain.DefaultRateTable()
	}
	return &Engine{Cycle: cycle, Rates: rates}
}

// NewReferral builds a referral record with its derived fields computed. The
// referral starts its first cycle active.
func (e *Engine) NewReferral(name, wallet string, generation int, amount decimal.Decimal, start time.Time) (domain.Referral, error) {
	if generation < 1 {
		return domain.Referral{}, fmt.Errorf("generation must be a positive integer, got %d", generation)
	}

	ref := domain.Referral{
		Name:       name,
		Wallet:     wallet,
		Generation: generation,
		Amount:     amount,
		CycleDays:  e.Cycle.CycleDays,
		StartDate:  start,
		Expiration: ExpirationDate(start, e.Cycle.CycleDays),
		Status:     domain.ReferralStatusActive,
	}
	RecomputeReferral(&ref, e.Cycle, e.Rates)
	return ref, nil
}

// EditReferral applies a new principal, generation and start date to an
// existing referral and recomputes every derived field.
func (e *Engine) EditReferral(ref *domain.Referral, amount decimal.Decimal, generation int, start time.Time) error {
	if generation < 1 {
		return fmt.Errorf("generation must be a positive integer, got %d", generation)
	}

	ref.Amount = amount
	ref.Generation = generation
	ref.StartDate = start
	if ref.CycleDays <= 0 {
		ref.CycleDays = e.Cycle.CycleDays
	}
	ref.Expiration = ExpirationDate(start, ref.CycleDays)
	RecomputeReferral(ref, e.Cycle, e.Rates)
	return nil
}

// NewInvestment builds a personal investment record with its derived earnings
// computed.
func (e *Engine) NewInvestment(amount decimal.Decimal, start time.Time) domain.PersonalInvestment {
	inv := domain.PersonalInvestment{
		Amount:     amount,
		CycleDays:  e.Cycle.CycleDays,
		StartDate:  start,
		Expiration: ExpirationDate(start, e.Cycle.CycleDays),
		Status:     domain.ReferralStatusActive,
	}
	RecomputeInvestment(&inv, e.Cycle)
	return inv
}

// EditInvestment applies a new principal and start date and recomputes the
// derived fields.
func (e *Engine) EditInvestment(inv *domain.PersonalInvestment, amount decimal.Decimal, start time.Time) {
	inv.Amount = amount
	inv.StartDate = start
	if inv.CycleDays <= 0 {
		inv.CycleDays = e.Cycle.CycleDays
	}
	inv.Expiration = ExpirationDate(start, inv.CycleDays)
	RecomputeInvestment(inv, e.Cycle)
}

// Reinvest folds the finished cycle's earnings into the principal and
// restarts the cycle from the given date. The completed cycle accrues to
// CycleCount and TotalEarned.
func (e *Engine) Reinvest(inv *domain.PersonalInvestment, restart time.Time) {
	inv.CycleCount++
	inv.TotalEarned = inv.TotalEarned.Add(inv.Earnings)
	inv.Amount = inv.Amount.Add(inv.Earnings)
	inv.StartDate = restart
	inv.Expiration = ExpirationDate(restart, inv.CycleDays)
	inv.Status = domain.ReferralStatusActive
	RecomputeInvestment(inv, e.Cycle)
}

// CompleteInvestment closes the investment at the end of its cycle, accruing
// the final cycle's earnings.
func (e *Engine) CompleteInvestment(inv *domain.PersonalInvestment) {
	inv.CycleCount++
	inv.TotalEarned = inv.TotalEarned.Add(inv.Earnings)
	inv.Status = domain.ReferralStatusCompleted
}

// CompleteReferral closes a referral cycle, accruing the owner's commission.
func (e *Engine) CompleteReferral(ref *domain.Referral) {
	ref.CycleCount++
	ref.TotalEarned = ref.TotalEarned.Add(ref.UserIncome)
	ref.Status = domain.ReferralStatusCompleted
}

// Reactivate returns a completed or expired referral to the active state with
// a fresh cycle starting at the given date.
func (e *Engine) Reactivate(ref *domain.Referral, restart time.Time) {
	ref.StartDate = restart
	if ref.CycleDays <= 0 {
		ref.CycleDays = e.Cycle.CycleDays
	}
	ref.Expiration = ExpirationDate(restart, ref.CycleDays)
	ref.Status = domain.ReferralStatusActive
	RecomputeReferral(ref, e.Cycle, e.Rates)
}

// MarkExpired flips active referrals whose expiration day is strictly before
// the reference day to expired. Records expiring on the reference day stay
// active so they still surface in the expiring-today bucket for action.
// Returns the number of records transitioned.
func (e *Engine) MarkExpired(referrals []domain.Referral, reference time.Time) int {
	today := dateutil.StartOfDay(reference)
	expired := 0
	for i := range referrals {
		if !referrals[i].IsActive() {
			continue
		}
		if !dateutil.StartOfDay(referrals[i].Expiration).Before(today) {
			continue
		}
		referrals[i].Status = domain.ReferralStatusExpired
		expired++
	}
	return expired
}

// Dashboard computes the aggregate rollup for the given snapshot.
func (e *Engine) Dashboard(referrals []domain.Referral, investments []domain.PersonalInvestment, leads []domain.Lead, reference time.Time) domain.DashboardMetrics {
	return CalculateDashboardMetrics(referrals, investments, leads, reference)
}

// ProjectPersonal runs the compounding projection with the engine's cycle
// rate.
func (e *Engine) ProjectPersonal(principal decimal.Decimal, cycles int) domain.PersonalProjection {
	return ProjectPersonalIncome(principal, cycles, e.Cycle.EarningsRate)
}

// ProjectReferrals runs the referral income projection with the engine's
// configuration.
func (e *Engine) ProjectReferrals(groups []domain.ReferralGroupInput) domain.ReferralProjection {
	return ProjectReferralIncome(groups, e.Cycle, e.Rates)
}
