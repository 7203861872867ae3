package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReferralStatus is the lifecycle state of a referral's investment.
type ReferralStatus string

const (
	ReferralStatusActive    ReferralStatus = "active"
	ReferralStatusCompleted ReferralStatus = "completed"
	ReferralStatusExpired   ReferralStatus = "expired"
)

// ValidReferralStatus reports whether s is one of the known lifecycle states.
func ValidReferralStatus(s ReferralStatus) bool {
	switch s {
	case ReferralStatusActive, ReferralStatusCompleted, ReferralStatusExpired:
		return true
	}
	return false
}

// Referral is a referred investor's investment record. Earnings and
// UserIncome are derived from Amount and Generation and are recomputed
// whenever either changes; they are never mutated independently.
type Referral struct {
	ID         string          `json:"id" yaml:"id,omitempty"`
	Name       string          `json:"name" yaml:"name"`
	Wallet     string          `json:"wallet,omitempty" yaml:"wallet,omitempty"`
	Generation int             `json:"generation" yaml:"generation"`
	Amount     decimal.Decimal `json:"amount" yaml:"amount"`
	CycleDays  int             `json:"cycleDays" yaml:"cycle_days,omitempty"`
	StartDate  time.Time       `json:"startDate" yaml:"-"`
	Expiration time.Time       `json:"expiration" yaml:"-"`
	Status     ReferralStatus  `json:"status" yaml:"status,omitempty"`
	ReferrerID string          `json:"referrerId,omitempty" yaml:"referrer_id,omitempty"`

	// Derived per-cycle figures.
	Earnings   decimal.Decimal `json:"earnings" yaml:"-"`
	UserIncome decimal.Decimal `json:"userIncome" yaml:"-"`

	CycleCount  int             `json:"cycleCount" yaml:"cycle_count,omitempty"`
	TotalEarned decimal.Decimal `json:"totalEarned" yaml:"-"`
}

// IsActive reports whether the referral is in its active cycle.
func (r *Referral) IsActive() bool {
	return r.Status == ReferralStatusActive
}
