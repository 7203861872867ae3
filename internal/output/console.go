package output

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/refdash/refdash/pkg/dateutil"
)

// ConsoleFormatter renders a plain-text dashboard report.
type ConsoleFormatter struct{}

func (ConsoleFormatter) Name() string { return "console" }

func (ConsoleFormatter) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}

	fmt.Fprintln(buf, "=========================================================")
	fmt.Fprintln(buf, "REFERRAL INVESTMENT DASHBOARD")
	fmt.Fprintf(buf, "Generated: %s\n", report.GeneratedAt.Format(dateutil.Layout))
	fmt.Fprintln(buf, "=========================================================")
	fmt.Fprintln(buf)

	m := report.Metrics
	fmt.Fprintln(buf, "SUMMARY")
	fmt.Fprintln(buf, "-------")
	fmt.Fprintf(buf, "Total invested:    %s\n", FormatCurrency(m.TotalInvested))
	fmt.Fprintf(buf, "Total referrals:   %d\n", m.TotalReferrals)
	fmt.Fprintf(buf, "Total earnings:    %s\n", FormatCurrency(m.TotalEarnings))
	fmt.Fprintf(buf, "Monthly earnings:  %s\n", FormatCurrency(m.MonthlyEarnings))
	fmt.Fprintf(buf, "Expiring today:    %d\n", m.ExpiringToday)
	fmt.Fprintf(buf, "Active leads:      %d\n", m.ActiveLeads)
	fmt.Fprintln(buf)

	if len(m.ReferralsByGeneration) > 0 {
		fmt.Fprintln(buf, "REFERRALS BY GENERATION")
		fmt.Fprintln(buf, "-----------------------")
		generations := make([]int, 0, len(m.ReferralsByGeneration))
		for gen := range m.ReferralsByGeneration {
			generations = append(generations, gen)
		}
		sort.Ints(generations)
		for _, gen := range generations {
			fmt.Fprintf(buf, "Generation %2d: %d\n", gen, m.ReferralsByGeneration[gen])
		}
		fmt.Fprintln(buf)
	}

	if len(report.Generations) > 0 {
		fmt.Fprintln(buf, "GENERATION ROLLUP")
		fmt.Fprintln(buf, "-----------------")
		for _, g := range report.Generations {
			fmt.Fprintf(buf, "Gen %2d: %3d referrals, principal %s, income %s\n",
				g.Generation, g.Count, FormatCurrency(g.TotalPrincipal), FormatCurrency(g.TotalIncome))
		}
		fmt.Fprintln(buf)
	}

	if len(report.TopReferrals) > 0 {
		fmt.Fprintln(buf, "TOP REFERRALS BY INCOME")
		fmt.Fprintln(buf, "-----------------------")
		for i, ref := range report.TopReferrals {
			fmt.Fprintf(buf, "%d. %-20s gen %-2d %s\n",
				i+1, ref.Name, ref.Generation, FormatCurrency(ref.UserIncome))
		}
		fmt.Fprintln(buf)
	}

	if len(report.Expiring.Referrals) > 0 || len(report.Expiring.Investments) > 0 {
		fmt.Fprintln(buf, "EXPIRING TODAY")
		fmt.Fprintln(buf, "--------------")
		for _, ref := range report.Expiring.Referrals {
			fmt.Fprintf(buf, "referral   %-20s %s\n", ref.Name, FormatCurrency(ref.Amount))
		}
		for _, inv := range report.Expiring.Investments {
			fmt.Fprintf(buf, "investment %-20s %s\n", inv.ID, FormatCurrency(inv.Amount))
		}
		fmt.Fprintln(buf)
	}

	return buf.Bytes(), nil
}
