package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages and keyboard input.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.err = nil
			return m, loadPortfolioCmd(m.portfolioPath)
		}

	case portfolioLoadedMsg:
		m.loading = false
		m.err = nil
		m.referenceDate = time.Now()
		m.report = buildReport(msg.portfolio, m.referenceDate)
		m.topTable.SetRows(topReferralRows(m.report.TopReferrals))
		return m, nil

	case errMsg:
		m.loading = false
		m.err = msg.err
		return m, nil
	}

	var cmd tea.Cmd
	m.topTable, cmd = m.topTable.Update(msg)
	return m, cmd
}
