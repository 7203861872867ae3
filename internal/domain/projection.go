package domain

import "github.com/shopspring/decimal"

// CycleBreakdown is one entry of a personal income projection. Entries are
// ordered and indexed from 1; each entry's Total is the base for the next
// cycle's earnings.
type CycleBreakdown struct {
	Cycle    int             `json:"cycle"`
	Earnings decimal.Decimal `json:"earnings"`
	Total    decimal.Decimal `json:"total"`
}

// PersonalProjection is the result of simulating N compounding cycles of a
// personal investment.
type PersonalProjection struct {
	InitialAmount decimal.Decimal  `json:"initialAmount"`
	TotalEarnings decimal.Decimal  `json:"totalEarnings"`
	FinalAmount   decimal.Decimal  `json:"finalAmount"`
	Breakdown     []CycleBreakdown `json:"breakdown"`
}

// ReferralGroupInput describes a homogeneous group of hypothetical referrals
// for income projection.
type ReferralGroupInput struct {
	Generation        int             `json:"generation" yaml:"generation"`
	AmountPerReferral decimal.Decimal `json:"amountPerReferral" yaml:"amount_per_referral"`
	Count             int             `json:"count" yaml:"count"`
}

// GroupBreakdown is the computed contribution of one referral group. Only
// groups that actually contribute appear in a projection's breakdown.
type GroupBreakdown struct {
	Generation        int             `json:"generation"`
	Count             int             `json:"count"`
	AmountPerReferral decimal.Decimal `json:"amountPerReferral"`
	ReferralEarnings  decimal.Decimal `json:"referralEarnings"`
	UserIncome        decimal.Decimal `json:"userIncome"`
}

// ReferralProjection is the aggregate periodic income across all referral
// groups.
type ReferralProjection struct {
	TotalIncome decimal.Decimal  `json:"totalIncome"`
	Breakdown   []GroupBreakdown `json:"breakdown"`
}
