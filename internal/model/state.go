package model

import (
	"maps"

	"github.com/shopspring/decimal"
)

// MaxAmount is the largest amount accepted from user input.
var MaxAmount = decimal.NewFromInt(1_000_000)

// CategoryOther collects expenses whose category has no bucket of its own.
const CategoryOther = "other"

// ExpenseCategories are the monthly expense buckets, in display order.
var ExpenseCategories = []string{"food", "transport", "leisure", CategoryOther}

// Defaults for a fresh ledger.
var (
	DefaultDailyTarget    = decimal.NewFromInt(15)
	DefaultDailyAllowance = decimal.NewFromInt(20)
	DefaultSavingsGoal    = decimal.NewFromInt(10000)
)

// State is the single authoritative record of balances, preferences and
// transaction history. It has no behavior of its own beyond lookups; the
// engine mutates it.
type State struct {
	MonthlyExpenses map[string]decimal.Decimal
	CashBalance     decimal.Decimal
	BankBalance     decimal.Decimal
	Savings         decimal.Decimal
	DailyTarget     decimal.Decimal
	DailyAllowance  decimal.Decimal
	SavingsGoal     decimal.Decimal
	Transactions    []Transaction
	DarkMode        bool
}

// NewState returns a ledger with default settings and empty balances.
func NewState() *State {
	return &State{
		CashBalance:     decimal.Zero,
		BankBalance:     decimal.Zero,
		Savings:         decimal.Zero,
		DailyTarget:     DefaultDailyTarget,
		DailyAllowance:  DefaultDailyAllowance,
		SavingsGoal:     DefaultSavingsGoal,
		MonthlyExpenses: EmptyMonthlyExpenses(),
	}
}

// EmptyMonthlyExpenses returns every known bucket set to zero.
func EmptyMonthlyExpenses() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(ExpenseCategories))
	for _, c := range ExpenseCategories {
		out[c] = decimal.Zero
	}
	return out
}

// IndexOf returns the position of the transaction with id, or -1.
func (s *State) IndexOf(id string) int {
	for i := range s.Transactions {
		if s.Transactions[i].ID == id {
			return i
		}
	}
	return -1
}

// Find returns the transaction with id.
func (s *State) Find(id string) (Transaction, bool) {
	if i := s.IndexOf(id); i >= 0 {
		return s.Transactions[i], true
	}
	return Transaction{}, false
}

// Clone returns a deep copy, safe to hand to renderers.
func (s *State) Clone() *State {
	c := *s
	c.Transactions = append([]Transaction(nil), s.Transactions...)
	c.MonthlyExpenses = maps.Clone(s.MonthlyExpenses)
	return &c
}
