// Package output renders dashboard reports and projection breakdowns in
// console, JSON and CSV form.
package output

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/refdash/refdash/internal/domain"
)

// Report is the complete renderable dashboard: the aggregate rollup plus the
// derived views computed from the same snapshot.
type Report struct {
	GeneratedAt  time.Time                  `json:"generatedAt"`
	Metrics      domain.DashboardMetrics    `json:"metrics"`
	TopReferrals []domain.Referral          `json:"topReferrals"`
	Expiring     domain.ExpiringBucket      `json:"expiring"`
	Generations  []domain.GenerationSummary `json:"generations"`
}

// Formatter renders a dashboard report as bytes.
type Formatter interface {
	Name() string
	Format(report *Report) ([]byte, error)
}

// GetFormatterByName returns the formatter registered under the given name,
// or nil when the name is unknown.
func GetFormatterByName(name string) Formatter {
	switch name {
	case "console":
		return ConsoleFormatter{}
	case "json":
		return JSONFormatter{}
	case "csv":
		return CSVFormatter{}
	}
	return nil
}

// FormatCurrency renders a decimal amount as a dollar figure with two
// decimal places and thousands separators.
func FormatCurrency(amount decimal.Decimal) string {
	s := amount.StringFixed(2)
	negative := false
	if len(s) > 0 && s[0] == '-' {
		negative = true
		s = s[1:]
	}

	intPart := s[:len(s)-3]
	fracPart := s[len(s)-3:]

	var grouped []byte
	for i, digit := range []byte(intPart) {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped = append(grouped, ',')
		}
		grouped = append(grouped, digit)
	}

	out := "$" + string(grouped) + fracPart
	if negative {
		out = "-" + out
	}
	return out
}

// FormatPercent renders a decimal rate (0.24) as a percentage (24.00%).
func FormatPercent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}
