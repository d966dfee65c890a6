// Package viewmodel turns ledger state into display-ready data.
package viewmodel

import (
	"cmp"
	"slices"
	"time"

	"github.com/Veraticus/tally/internal/derive"
	"github.com/Veraticus/tally/internal/model"
	"github.com/shopspring/decimal"
)

// Dashboard is everything a renderer needs to draw the ledger.
type Dashboard struct {
	Balance         string
	BankBalance     string
	Savings         string
	DailyTarget     string
	DailyAllowance  string
	SavingsGoal     string
	MonthTotal      string
	Transactions    []TransactionRow
	Breakdown       []BreakdownRow
	Series          []SeriesPoint
	Cumulative      []SeriesPoint
	SavingsProgress float64
	DarkMode        bool
}

// TransactionRow is one line of the history list.
type TransactionRow struct {
	ID       string
	Date     string
	Kind     model.Kind
	Category string
	Sign     string
	Amount   string
	// Index is the transaction's position in the stored history.
	Index int
}

// IsIncome reports whether the row should be styled as money coming in.
func (r TransactionRow) IsIncome() bool {
	return r.Kind == model.KindIncome
}

// BreakdownRow is one category of the monthly expense breakdown.
type BreakdownRow struct {
	Category string
	Amount   string
	Value    decimal.Decimal
	Share    float64
}

// SeriesPoint is one point of the savings chart.
type SeriesPoint struct {
	Date  time.Time
	Label string
	Value float64
}

// Build assembles the dashboard for state as of now.
func Build(state *model.State, now time.Time, f *Formatter) Dashboard {
	monthly := state.MonthlyExpenses
	if monthly == nil {
		monthly = derive.MonthlyExpenses(state.Transactions, now)
	}

	d := Dashboard{
		Balance:         f.Money(state.CashBalance),
		BankBalance:     f.Money(state.BankBalance),
		Savings:         f.Money(state.Savings),
		DailyTarget:     f.Money(state.DailyTarget),
		DailyAllowance:  f.Money(state.DailyAllowance),
		SavingsGoal:     f.Money(state.SavingsGoal),
		SavingsProgress: SavingsProgress(state.Savings, state.SavingsGoal),
		Transactions:    TransactionRows(state.Transactions, f),
		DarkMode:        state.DarkMode,
	}

	var total decimal.Decimal
	d.Breakdown, total = BreakdownRows(monthly, f)
	d.MonthTotal = f.Money(total)

	series := derive.SavingsSeries(state.Transactions)
	d.Series = seriesPoints(series, f)
	d.Cumulative = seriesPoints(derive.CumulativeSavings(series), f)
	return d
}

// SavingsProgress returns savings as a percentage of goal, clamped to [0, 100].
// A goal that is not positive yields 0.
func SavingsProgress(savings, goal decimal.Decimal) float64 {
	if !goal.IsPositive() || !savings.IsPositive() {
		return 0
	}
	pct, _ := savings.Div(goal).Mul(decimal.NewFromInt(100)).Float64()
	return min(max(pct, 0), 100)
}

// TransactionRows lists txns newest first. Equal dates put the later
// insertion first so the order is total.
func TransactionRows(txns []model.Transaction, f *Formatter) []TransactionRow {
	rows := make([]TransactionRow, len(txns))
	order := make([]int, len(txns))
	for i := range txns {
		order[i] = i
	}
	slices.SortFunc(order, func(a, b int) int {
		if c := txns[b].Date.Compare(txns[a].Date); c != 0 {
			return c
		}
		return cmp.Compare(b, a)
	})

	for i, idx := range order {
		t := txns[idx]
		rows[i] = TransactionRow{
			ID:       t.ID,
			Date:     f.Date(t.Date),
			Kind:     t.Kind,
			Category: t.Category,
			Sign:     t.Kind.Sign(),
			Amount:   f.Money(t.Amount),
			Index:    idx,
		}
	}
	return rows
}

// BreakdownRows lists the monthly buckets in display order: known categories
// first, then any others by name. It also returns the month's total.
func BreakdownRows(monthly map[string]decimal.Decimal, f *Formatter) ([]BreakdownRow, decimal.Decimal) {
	names := slices.Clone(model.ExpenseCategories)
	var extras []string
	for name := range monthly {
		if !slices.Contains(model.ExpenseCategories, name) {
			extras = append(extras, name)
		}
	}
	slices.Sort(extras)
	names = append(names, extras...)

	total := decimal.Zero
	for _, v := range monthly {
		total = total.Add(v)
	}

	rows := make([]BreakdownRow, 0, len(names))
	for _, name := range names {
		v := monthly[name]
		var share float64
		if total.IsPositive() {
			share, _ = v.Div(total).Float64()
		}
		rows = append(rows, BreakdownRow{
			Category: name,
			Amount:   f.Money(v),
			Value:    v,
			Share:    share,
		})
	}
	return rows, total
}

func seriesPoints(points []derive.Point, f *Formatter) []SeriesPoint {
	out := make([]SeriesPoint, len(points))
	for i, p := range points {
		v, _ := p.Amount.Float64()
		out[i] = SeriesPoint{Date: p.Date, Label: f.Date(p.Date), Value: v}
	}
	return out
}
