// Package derive computes views from the transaction history.
// Nothing here is cached; callers recompute after every change.
package derive

import (
	"slices"
	"time"

	"github.com/Veraticus/tally/internal/model"
	"github.com/shopspring/decimal"
)

// Point is one entry of a dated series.
type Point struct {
	Date   time.Time
	Amount decimal.Decimal
}

// FirstOfMonth returns midnight on the first day of now's month, in now's location.
func FirstOfMonth(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}

// MonthlyExpenses totals expenses dated on or after the first of now's month,
// by category. Every known bucket is present; unknown categories land in "other".
func MonthlyExpenses(txns []model.Transaction, now time.Time) map[string]decimal.Decimal {
	totals := model.EmptyMonthlyExpenses()
	start := FirstOfMonth(now)

	for _, t := range txns {
		if t.Kind != model.KindExpense || t.Date.Before(start) {
			continue
		}
		bucket := t.Category
		if _, known := totals[bucket]; !known {
			bucket = model.CategoryOther
		}
		totals[bucket] = totals[bucket].Add(t.Amount)
	}
	return totals
}

// SavingsSeries returns savings transactions in ascending date order.
// Transactions with equal dates keep their history order.
func SavingsSeries(txns []model.Transaction) []Point {
	var series []Point
	for _, t := range txns {
		if t.Kind == model.KindSavings {
			series = append(series, Point{Date: t.Date, Amount: t.Amount})
		}
	}
	slices.SortStableFunc(series, func(a, b Point) int {
		return a.Date.Compare(b.Date)
	})
	return series
}

// CumulativeSavings turns a savings series into a running total.
func CumulativeSavings(series []Point) []Point {
	out := make([]Point, len(series))
	total := decimal.Zero
	for i, p := range series {
		total = total.Add(p.Amount)
		out[i] = Point{Date: p.Date, Amount: total}
	}
	return out
}

// SavingsTotal sums the savings transactions in txns.
func SavingsTotal(txns []model.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txns {
		if t.Kind == model.KindSavings {
			total = total.Add(t.Amount)
		}
	}
	return total
}
