package tui

import (
	"strings"

	"github.com/Veraticus/tally/internal/render"
	"github.com/charmbracelet/lipgloss"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		render.Balances(m.dash, m.theme, 24),
		" ",
		render.Breakdown(m.dash, m.theme),
	)

	sections := []string{
		m.theme.Title.Render("tally · " + m.theme.Name),
		top,
		m.renderTransactions(),
	}

	switch m.state {
	case StateForm:
		sections = append(sections, m.form.view(m.theme))
	case StateConfirmDelete:
		sections = append(sections, m.theme.StatusWarning.Render(
			"Are you sure you want to delete this transaction? (y/n)"))
	}

	if m.notice != nil {
		sections = append(sections, m.theme.Notice(m.notice.Level).Render(m.notice.Message))
	}
	sections = append(sections, m.help.View(m.keymap))

	return strings.Join(sections, "\n")
}

// renderTransactions shows the window of rows around the selection.
func (m Model) renderTransactions() string {
	rows := m.dash.Transactions
	visible := max(m.height-24, 5)

	offset := 0
	if m.selected >= visible {
		offset = m.selected - visible + 1
	}
	end := min(offset+visible, len(rows))
	if offset > end {
		offset = end
	}

	body := render.TransactionList(rows[offset:end], m.theme, m.selected-offset, 0, false)
	return m.theme.RoundedBox.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Subtitle.Render("Transactions"),
		body,
	))
}
