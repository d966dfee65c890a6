package viewmodel

import (
	"testing"
	"time"

	"github.com/Veraticus/tally/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func testFormatter() *Formatter {
	return NewFormatter(language.English, "MAD", "2006-01-02", time.UTC)
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestFormatter_Money(t *testing.T) {
	f := testFormatter()

	tests := []struct {
		in   string
		want string
	}{
		{in: "0", want: "0.00 MAD"},
		{in: "1234.5", want: "1,234.50 MAD"},
		{in: "1000000", want: "1,000,000.00 MAD"},
		{in: "0.005", want: "0.01 MAD"},
		{in: "-30", want: "-30.00 MAD"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Money(d(tt.in)))
		})
	}
}

func TestFormatter_MoneyWithoutCurrency(t *testing.T) {
	f := NewFormatter(language.English, "", "", nil)
	assert.Equal(t, "12.00", f.Money(d("12")))
}

func TestSavingsProgress(t *testing.T) {
	tests := []struct {
		name    string
		savings string
		goal    string
		want    float64
	}{
		{name: "halfway", savings: "5000", goal: "10000", want: 50},
		{name: "no savings", savings: "0", goal: "10000", want: 0},
		{name: "goal exceeded", savings: "25000", goal: "10000", want: 100},
		{name: "zero goal", savings: "10", goal: "0", want: 0},
		{name: "negative goal", savings: "10", goal: "-5", want: 0},
		{name: "negative savings", savings: "-10", goal: "100", want: 0},
		{name: "fraction", savings: "1", goal: "3", want: 33.333},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SavingsProgress(d(tt.savings), d(tt.goal))
			assert.InDelta(t, tt.want, got, 0.001)
			assert.LessOrEqual(t, got, 100.0)
			assert.GreaterOrEqual(t, got, 0.0)
		})
	}
}

func TestTransactionRows_NewestFirstWithStableTiebreak(t *testing.T) {
	day1 := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	day2 := day1.Add(24 * time.Hour)
	txns := []model.Transaction{
		{ID: "a", Kind: model.KindIncome, Amount: d("100"), Category: "salary", Date: day1},
		{ID: "b", Kind: model.KindExpense, Amount: d("5"), Category: "food", Date: day2},
		{ID: "c", Kind: model.KindExpense, Amount: d("7"), Category: "food", Date: day1},
		{ID: "d", Kind: model.KindSavings, Amount: d("15"), Category: "deposit", Date: day2},
	}

	rows := TransactionRows(txns, testFormatter())

	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	assert.Equal(t, []string{"d", "b", "c", "a"}, ids)
	assert.Equal(t, 3, rows[0].Index)
	assert.Equal(t, "2026-10-02", rows[0].Date)
	assert.Equal(t, "-", rows[0].Sign)
	assert.Equal(t, "+", rows[3].Sign)
	assert.True(t, rows[3].IsIncome())
	assert.Equal(t, "100.00 MAD", rows[3].Amount)
}

func TestBreakdownRows_Order(t *testing.T) {
	monthly := model.EmptyMonthlyExpenses()
	monthly["food"] = d("30")
	monthly["other"] = d("10")
	monthly["zoo"] = d("0")
	monthly["books"] = d("0")

	rows, total := BreakdownRows(monthly, testFormatter())

	names := make([]string, len(rows))
	for i, r := range rows {
		names[i] = r.Category
	}
	assert.Equal(t, []string{"food", "transport", "leisure", "other", "books", "zoo"}, names)
	assert.True(t, total.Equal(d("40")))
	assert.InDelta(t, 0.75, rows[0].Share, 0.0001)
	assert.Equal(t, "30.00 MAD", rows[0].Amount)
}

func TestBreakdownRows_EmptyMonth(t *testing.T) {
	rows, total := BreakdownRows(model.EmptyMonthlyExpenses(), testFormatter())

	require.Len(t, rows, len(model.ExpenseCategories))
	assert.True(t, total.IsZero())
	for _, r := range rows {
		assert.Zero(t, r.Share)
	}
}

func TestBuild(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	state := model.NewState()
	state.CashBalance = d("55")
	state.Savings = d("15")
	state.SavingsGoal = d("60")
	state.Transactions = []model.Transaction{
		{ID: "1", Kind: model.KindIncome, Amount: d("100"), Category: "salary", Date: now.Add(-3 * time.Hour)},
		{ID: "2", Kind: model.KindExpense, Amount: d("30"), Category: "food", Date: now.Add(-2 * time.Hour)},
		{ID: "3", Kind: model.KindSavings, Amount: d("10"), Category: "deposit", Date: now.AddDate(0, -1, 0)},
		{ID: "4", Kind: model.KindSavings, Amount: d("5"), Category: "deposit", Date: now.Add(-time.Hour)},
	}
	state.MonthlyExpenses = nil

	dash := Build(state, now, testFormatter())

	assert.Equal(t, "55.00 MAD", dash.Balance)
	assert.Equal(t, "15.00 MAD", dash.Savings)
	assert.Equal(t, "60.00 MAD", dash.SavingsGoal)
	assert.InDelta(t, 25.0, dash.SavingsProgress, 0.0001)
	assert.Equal(t, "30.00 MAD", dash.MonthTotal)
	require.Len(t, dash.Transactions, 4)
	assert.Equal(t, "4", dash.Transactions[0].ID)

	require.Len(t, dash.Series, 2)
	assert.Equal(t, "2026-09-16", dash.Series[0].Label)
	assert.InDelta(t, 10.0, dash.Series[0].Value, 0.0001)
	assert.InDelta(t, 5.0, dash.Series[1].Value, 0.0001)
	require.Len(t, dash.Cumulative, 2)
	assert.InDelta(t, 15.0, dash.Cumulative[1].Value, 0.0001)
}
