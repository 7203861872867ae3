package output

import (
	"bytes"
	"fmt"

	"github.com/refdash/refdash/internal/domain"
)

// FormatPersonalProjection renders a compounding projection breakdown as a
// console table.
func FormatPersonalProjection(p domain.PersonalProjection) string {
	buf := &bytes.Buffer{}

	fmt.Fprintln(buf, "PERSONAL INCOME PROJECTION")
	fmt.Fprintln(buf, "--------------------------")
	fmt.Fprintf(buf, "Initial amount: %s\n", FormatCurrency(p.InitialAmount))
	fmt.Fprintln(buf)
	fmt.Fprintf(buf, "%-6s %15s %15s\n", "Cycle", "Earnings", "Total")
	for _, cycle := range p.Breakdown {
		fmt.Fprintf(buf, "%-6d %15s %15s\n",
			cycle.Cycle, FormatCurrency(cycle.Earnings), FormatCurrency(cycle.Total))
	}
	fmt.Fprintln(buf)
	fmt.Fprintf(buf, "Total earnings: %s\n", FormatCurrency(p.TotalEarnings))
	fmt.Fprintf(buf, "Final amount:   %s\n", FormatCurrency(p.FinalAmount))

	return buf.String()
}

// FormatReferralProjection renders a referral income projection as a console
// table.
func FormatReferralProjection(p domain.ReferralProjection) string {
	buf := &bytes.Buffer{}

	fmt.Fprintln(buf, "REFERRAL INCOME PROJECTION")
	fmt.Fprintln(buf, "--------------------------")
	fmt.Fprintf(buf, "%-11s %6s %15s %15s %15s\n",
		"Generation", "Count", "Amount", "Earnings", "Your income")
	for _, group := range p.Breakdown {
		fmt.Fprintf(buf, "%-11d %6d %15s %15s %15s\n",
			group.Generation, group.Count,
			FormatCurrency(group.AmountPerReferral),
			FormatCurrency(group.ReferralEarnings),
			FormatCurrency(group.UserIncome))
	}
	fmt.Fprintln(buf)
	fmt.Fprintf(buf, "Total income per cycle: %s\n", FormatCurrency(p.TotalIncome))

	return buf.String()
}
