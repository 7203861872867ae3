// Package tui is the interactive dashboard: it loads a portfolio file,
// computes the rollup and renders it with live reload.
package tui

import (
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/refdash/refdash/internal/calculation"
	"github.com/refdash/refdash/internal/config"
	"github.com/refdash/refdash/internal/domain"
	"github.com/refdash/refdash/internal/output"
)

const topReferralCount = 10

// Model is the dashboard application state.
type Model struct {
	portfolioPath string

	// Wall clock is read once per load; every calculation below takes this
	// value explicitly.
	referenceDate time.Time

	report *output.Report

	topTable table.Model

	width  int
	height int

	loading bool
	err     error
}

// portfolioLoadedMsg carries a freshly parsed portfolio.
type portfolioLoadedMsg struct {
	portfolio *config.Portfolio
}

// errMsg carries a load failure.
type errMsg struct {
	err error
}

// NewModel creates the dashboard model for a portfolio file.
func NewModel(portfolioPath string) Model {
	columns := []table.Column{
		{Title: "Name", Width: 20},
		{Title: "Gen", Width: 4},
		{Title: "Amount", Width: 14},
		{Title: "Your income", Width: 14},
		{Title: "Status", Width: 10},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithHeight(topReferralCount),
		table.WithFocused(true),
	)
	t.SetStyles(tableStyles())

	return Model{
		portfolioPath: portfolioPath,
		topTable:      t,
		loading:       true,
		width:         80,
		height:        24,
	}
}

// Init kicks off the initial portfolio load.
func (m Model) Init() tea.Cmd {
	return loadPortfolioCmd(m.portfolioPath)
}

func loadPortfolioCmd(path string) tea.Cmd {
	return func() tea.Msg {
		parser := config.NewInputParser()
		portfolio, err := parser.LoadFromFile(path)
		if err != nil {
			return errMsg{err: err}
		}
		return portfolioLoadedMsg{portfolio: portfolio}
	}
}

// buildReport computes the dashboard views from the loaded snapshot.
func buildReport(p *config.Portfolio, reference time.Time) *output.Report {
	return &output.Report{
		GeneratedAt:  reference,
		Metrics:      calculation.CalculateDashboardMetrics(p.Referrals, p.Investments, p.Leads, reference),
		TopReferrals: calculation.TopReferrals(p.Referrals, topReferralCount),
		Expiring:     calculation.ExpiringToday(p.Referrals, p.Investments, reference),
		Generations:  calculation.GenerationSummaries(p.Referrals),
	}
}

func topReferralRows(refs []domain.Referral) []table.Row {
	rows := make([]table.Row, 0, len(refs))
	for _, ref := range refs {
		rows = append(rows, table.Row{
			ref.Name,
			strconv.Itoa(ref.Generation),
			output.FormatCurrency(ref.Amount),
			output.FormatCurrency(ref.UserIncome),
			string(ref.Status),
		})
	}
	return rows
}
