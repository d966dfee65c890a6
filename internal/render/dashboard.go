// Package render draws the dashboard for terminals and image files.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/tui/themes"
	"github.com/Veraticus/tally/internal/tui/viewmodel"
	"github.com/charmbracelet/lipgloss"
)

// DefaultRecent is how many transactions the dashboard lists.
const DefaultRecent = 10

// Balances renders the balance and settings panel.
func Balances(dash viewmodel.Dashboard, theme themes.Theme, barWidth int) string {
	label := theme.Faint.Width(18)
	line := func(name, value string) string {
		return label.Render(name) + theme.Bold.Render(value)
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		theme.Subtitle.Render("Balances"),
		line("Cash", dash.Balance),
		line("Bank", dash.BankBalance),
		line("Savings", dash.Savings),
		"",
		line("Daily deposit", dash.DailyTarget),
		line("Daily allowance", dash.DailyAllowance),
		line("Savings goal", dash.SavingsGoal),
		"",
		theme.Faint.Render("Progress ")+theme.Income.Render(ProgressBar(dash.SavingsProgress, barWidth)),
	)
	return theme.RoundedBox.Render(body)
}

// Breakdown renders this month's expenses by category.
func Breakdown(dash viewmodel.Dashboard, theme themes.Theme) string {
	lines := []string{theme.Subtitle.Render("This month")}
	for _, row := range dash.Breakdown {
		lines = append(lines, theme.Faint.Width(14).Render(row.Category)+theme.Normal.Render(row.Amount))
	}
	lines = append(lines, theme.Faint.Width(14).Render("total")+theme.Bold.Render(dash.MonthTotal))
	return theme.RoundedBox.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// TransactionList renders up to limit rows, highlighting selected.
// A limit of zero or less shows every row; a selected index of -1 highlights nothing.
func TransactionList(rows []viewmodel.TransactionRow, theme themes.Theme, selected, limit int, showIDs bool) string {
	if len(rows) == 0 {
		return theme.Faint.Render("No transactions yet")
	}
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	lines := make([]string, 0, len(rows))
	for i, row := range rows {
		amountStyle := theme.Expense
		if row.IsIncome() {
			amountStyle = theme.Income
		}
		line := fmt.Sprintf("%-10s  %-14s %s",
			row.Date,
			row.Category,
			amountStyle.Render(row.Sign+" "+row.Amount))
		if showIDs {
			line = theme.Faint.Render(row.ID) + "  " + line
		}
		if i == selected {
			line = theme.Selected.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// Dashboard writes the full terminal dashboard to w.
func Dashboard(w io.Writer, dash viewmodel.Dashboard, theme themes.Theme) error {
	if w == nil {
		return common.Render("Nothing to draw on", nil)
	}

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		Balances(dash, theme, 30),
		" ",
		Breakdown(dash, theme),
	)
	recent := theme.RoundedBox.Render(lipgloss.JoinVertical(lipgloss.Left,
		theme.Subtitle.Render("Recent transactions"),
		TransactionList(dash.Transactions, theme, -1, DefaultRecent, false),
	))

	out := lipgloss.JoinVertical(lipgloss.Left, theme.Title.Render("tally"), top, recent)
	if _, err := fmt.Fprintln(w, out); err != nil {
		return common.Render("Error drawing dashboard", err)
	}
	return nil
}

// Transactions writes every row with its id, newest first.
func Transactions(w io.Writer, rows []viewmodel.TransactionRow, theme themes.Theme) error {
	if _, err := fmt.Fprintln(w, TransactionList(rows, theme, -1, 0, true)); err != nil {
		return common.Render("Error listing transactions", err)
	}
	return nil
}
