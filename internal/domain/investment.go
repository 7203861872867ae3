package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PersonalInvestment is the account owner's own investment. It follows the
// same cycle earnings formula as a referral but has no generation or
// commission dimension.
type PersonalInvestment struct {
	ID         string          `json:"id" yaml:"id,omitempty"`
	Amount     decimal.Decimal `json:"amount" yaml:"amount"`
	CycleDays  int             `json:"cycleDays" yaml:"cycle_days,omitempty"`
	StartDate  time.Time       `json:"startDate" yaml:"-"`
	Expiration time.Time       `json:"expiration" yaml:"-"`
	Status     ReferralStatus  `json:"status" yaml:"status,omitempty"`

	// Earnings is derived from Amount and the configured cycle rate.
	Earnings decimal.Decimal `json:"earnings" yaml:"-"`

	CycleCount  int             `json:"cycleCount" yaml:"cycle_count,omitempty"`
	TotalEarned decimal.Decimal `json:"totalEarned" yaml:"-"`
}

// IsActive reports whether the investment is in its active cycle.
func (p *PersonalInvestment) IsActive() bool {
	return p.Status == ReferralStatusActive
}
