package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/refdash/refdash/internal/output"
	"github.com/refdash/refdash/pkg/dateutil"
)

// View renders the dashboard.
func (m Model) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) +
			helpStyle.Render("\n[r] retry  [q] quit\n")
	}
	if m.loading || m.report == nil {
		return titleStyle.Render("Referral Dashboard") + "\nLoading portfolio...\n"
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Referral Dashboard — %s",
		m.referenceDate.Format(dateutil.Layout))))
	b.WriteString("\n")
	b.WriteString(m.metricCards())
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Top referrals by income"))
	b.WriteString("\n")
	b.WriteString(m.topTable.View())
	b.WriteString("\n")

	b.WriteString(m.expiringSection())

	b.WriteString(helpStyle.Render("[r] reload  [↑/↓] scroll  [q] quit"))
	b.WriteString("\n")

	return b.String()
}

func (m Model) metricCards() string {
	metrics := m.report.Metrics

	cards := []string{
		m.card("Invested", output.FormatCurrency(metrics.TotalInvested)),
		m.card("Referrals", fmt.Sprintf("%d", metrics.TotalReferrals)),
		m.card("Earnings", output.FormatCurrency(metrics.TotalEarnings)),
		m.card("This month", output.FormatCurrency(metrics.MonthlyEarnings)),
		m.card("Leads", fmt.Sprintf("%d", metrics.ActiveLeads)),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (m Model) card(label, value string) string {
	content := metricLabelStyle.Render(label) + "\n" + metricValueStyle.Render(value)
	return cardStyle.Render(content)
}

func (m Model) expiringSection() string {
	expiring := m.report.Expiring
	total := len(expiring.Referrals) + len(expiring.Investments)
	if total == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(alertStyle.Render(fmt.Sprintf("⚠ %d expiring today", total)))
	b.WriteString("\n")
	for _, ref := range expiring.Referrals {
		b.WriteString(fmt.Sprintf("  referral   %-20s %s\n",
			ref.Name, output.FormatCurrency(ref.Amount)))
	}
	for _, inv := range expiring.Investments {
		b.WriteString(fmt.Sprintf("  investment %-20s %s\n",
			inv.ID, output.FormatCurrency(inv.Amount)))
	}
	return b.String()
}
